package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/archtopo/rdf2ifc/pkg/diag"
	"github.com/archtopo/rdf2ifc/pkg/layout"
)

func TestBuildDebugLayoutGroupsByStorey(t *testing.T) {
	dl := BuildDebugLayout(testTopology(), testLayout())

	if len(dl.Storeys) != 2 {
		t.Fatalf("expected 2 storeys, got %d", len(dl.Storeys))
	}
	for _, st := range dl.Storeys {
		switch st.ID {
		case "storey-1":
			if len(st.Rects) != 2 {
				t.Errorf("storey-1: expected 2 rects, got %d", len(st.Rects))
			}
		case "storey-0":
			if len(st.Rects) != 1 {
				t.Errorf("storey-0: expected 1 rect, got %d", len(st.Rects))
			}
		}
	}
}

func TestSaveLayoutJSONRoundTrips(t *testing.T) {
	dl := BuildDebugLayout(testTopology(), testLayout())
	path := filepath.Join(t.TempDir(), "layout.json")

	if err := SaveLayoutJSON(dl, path); err != nil {
		t.Fatalf("SaveLayoutJSON: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	var got DebugLayout
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if len(got.Storeys) != len(dl.Storeys) {
		t.Fatalf("round-tripped storey count mismatch: got %d want %d", len(got.Storeys), len(dl.Storeys))
	}
}

func TestBuildDebugReportSummarizesOverlapsAndArea(t *testing.T) {
	report := layout.Report{
		TotalSpaces:    3,
		AreaDeviations: map[string]float64{"space-a": 0.1, "space-b": 0.3},
	}
	diags := diag.List{
		diag.Warning("LAYOUT_OVERLAP", "overlap", "space-a", "space-b"),
		diag.Warning("LAYOUT_CP_FALLBACK", "fell back to heuristic solver"),
	}

	dr := BuildDebugReport(report, diags)

	if len(dr.OverlapPairs) != 1 {
		t.Fatalf("expected 1 overlap pair, got %d", len(dr.OverlapPairs))
	}
	if dr.OverlapPairs[0] != [2]string{"space-a", "space-b"} {
		t.Errorf("unexpected overlap pair: %v", dr.OverlapPairs[0])
	}
	if dr.AreaDeviation.Max != 0.3 {
		t.Errorf("expected max deviation 0.3, got %v", dr.AreaDeviation.Max)
	}
	wantMean := 0.2
	if dr.AreaDeviation.Mean != wantMean {
		t.Errorf("expected mean deviation %v, got %v", wantMean, dr.AreaDeviation.Mean)
	}
	if len(dr.Warnings) != 1 || dr.Warnings[0].Code != "LAYOUT_CP_FALLBACK" {
		t.Fatalf("expected exactly the WARNING-severity diagnostic to surface, got %v", dr.Warnings)
	}
}
