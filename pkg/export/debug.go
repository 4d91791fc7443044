package export

import (
	"encoding/json"
	"os"
	"sort"

	"github.com/archtopo/rdf2ifc/pkg/diag"
	"github.com/archtopo/rdf2ifc/pkg/layout"
	"github.com/archtopo/rdf2ifc/pkg/topology"
)

// DebugLayout is the JSON debug artifact for a solved layout: one entry
// per storey, each carrying its solved rects.
type DebugLayout struct {
	Storeys []DebugStorey `json:"storeys"`
}

// DebugStorey is one storey's entry in a DebugLayout.
type DebugStorey struct {
	ID        string      `json:"id"`
	Elevation float64     `json:"elevation"`
	Rects     []DebugRect `json:"rects"`
}

// DebugRect is one placed space's rectangle in a DebugStorey.
type DebugRect struct {
	SpaceID string  `json:"space_id"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	W       float64 `json:"w"`
	H       float64 `json:"h"`
}

// BuildDebugLayout assembles the layout debug artifact from a solved
// Layout and the Topology it was built from.
func BuildDebugLayout(topo *topology.Topology, l *layout.Layout) DebugLayout {
	byStorey := make(map[string][]DebugRect)
	for _, sp := range topo.Spaces {
		p, ok := l.Placements[sp.ID]
		if !ok {
			continue
		}
		byStorey[p.StoreyID] = append(byStorey[p.StoreyID], DebugRect{
			SpaceID: sp.ID, X: p.Rect.X, Y: p.Rect.Y, W: p.Rect.Width, H: p.Rect.Height,
		})
	}
	for _, rects := range byStorey {
		sort.Slice(rects, func(i, j int) bool { return rects[i].SpaceID < rects[j].SpaceID })
	}

	out := DebugLayout{}
	for _, st := range topo.Storeys {
		out.Storeys = append(out.Storeys, DebugStorey{
			ID: st.ID, Elevation: st.Elevation, Rects: byStorey[st.ID],
		})
	}
	return out
}

// ExportLayoutJSON serializes a DebugLayout to 2-space-indented JSON.
func ExportLayoutJSON(l DebugLayout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// SaveLayoutJSON writes a DebugLayout to path as indented JSON with 0644
// permissions.
func SaveLayoutJSON(l DebugLayout, path string) error {
	data, err := ExportLayoutJSON(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// DebugReport is the JSON debug artifact for the layout constraints
// report: overlap pairs, area deviation summary, adjacency satisfaction,
// and structured warnings.
type DebugReport struct {
	OverlapPairs       [][2]string        `json:"overlap_pairs"`
	AreaDeviation      DebugAreaDeviation `json:"area_deviation"`
	AdjacencySatisfied float64            `json:"adjacency_satisfied"`
	Warnings           []DebugDiagnostic  `json:"warnings"`
}

// DebugAreaDeviation summarizes per-space area deviation from target.
type DebugAreaDeviation struct {
	Mean     float64            `json:"mean"`
	Max      float64            `json:"max"`
	PerSpace map[string]float64 `json:"per_space"`
}

// DebugDiagnostic is one diag.Diagnostic flattened for JSON output.
type DebugDiagnostic struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Refs    []string `json:"refs,omitempty"`
}

// BuildDebugReport assembles the report debug artifact from a layout
// Report and the diagnostics accumulated while producing it. Overlap pairs
// are recovered from LAYOUT_OVERLAP diagnostics (the Report itself only
// carries a count); warnings are every other WARNING-severity diagnostic
// in diags, not just layout ones, so a single debug artifact covers the
// whole run without repeating the overlap pairs.
func BuildDebugReport(report layout.Report, diags diag.List) DebugReport {
	out := DebugReport{
		AreaDeviation:      DebugAreaDeviation{PerSpace: map[string]float64{}},
		AdjacencySatisfied: report.AdjacencyScore(),
	}

	for _, d := range diags {
		if d.Code == "LAYOUT_OVERLAP" && len(d.Refs) == 2 {
			out.OverlapPairs = append(out.OverlapPairs, [2]string{d.Refs[0], d.Refs[1]})
		}
	}

	var sum, max float64
	for id, dev := range report.AreaDeviations {
		out.AreaDeviation.PerSpace[id] = dev
		sum += dev
		if dev > max {
			max = dev
		}
	}
	if n := len(report.AreaDeviations); n > 0 {
		out.AreaDeviation.Mean = sum / float64(n)
	}
	out.AreaDeviation.Max = max

	for _, d := range diags.Warnings() {
		if d.Code == "LAYOUT_OVERLAP" {
			continue // already structured as overlap_pairs above
		}
		out.Warnings = append(out.Warnings, DebugDiagnostic{Code: d.Code, Message: d.Message, Refs: d.Refs})
	}

	return out
}

// ExportReportJSON serializes a DebugReport to indented JSON.
func ExportReportJSON(r DebugReport) ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// SaveReportJSON writes a DebugReport to path as indented JSON with 0644
// permissions.
func SaveReportJSON(r DebugReport, path string) error {
	data, err := ExportReportJSON(r)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
