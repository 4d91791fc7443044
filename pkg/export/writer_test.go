package export

import (
	"context"
	"testing"

	"github.com/archtopo/rdf2ifc/pkg/geometry"
	"github.com/archtopo/rdf2ifc/pkg/layout"
	"github.com/archtopo/rdf2ifc/pkg/topology"
)

func testTopology() *topology.Topology {
	return &topology.Topology{
		Storeys: []topology.Storey{
			{ID: "storey-1", Name: "Ground Floor", Elevation: 0, Order: 0},
			{ID: "storey-0", Name: "Basement", Elevation: -3, Order: -1},
		},
		Spaces: []topology.Space{
			{ID: "space-a", Name: "Living Room", Category: "Room", TargetArea: 20, HasTargetArea: true, StoreyID: "storey-1"},
			{ID: "space-b", Name: "Kitchen", Category: "Room", TargetArea: 12, HasTargetArea: true, StoreyID: "storey-1"},
			{ID: "space-c", Name: "Storage", Category: "Room", TargetArea: 8, HasTargetArea: true, StoreyID: "storey-0"},
		},
		Adjacencies: []topology.Edge{topology.NewEdge(topology.EdgeAdjacency, "space-a", "space-b")},
		Connections: []topology.Edge{topology.NewEdge(topology.EdgeConnection, "space-a", "space-b")},
	}
}

func testLayout() *layout.Layout {
	l := layout.NewLayout()
	l.Placements["space-a"] = layout.Placement{SpaceID: "space-a", StoreyID: "storey-1", Rect: layout.Rect{X: 0, Y: 0, Width: 5, Height: 4}}
	l.Placements["space-b"] = layout.Placement{SpaceID: "space-b", StoreyID: "storey-1", Rect: layout.Rect{X: 5, Y: 0, Width: 3, Height: 4}}
	l.Placements["space-c"] = layout.Placement{SpaceID: "space-c", StoreyID: "storey-0", Rect: layout.Rect{X: 0, Y: 0, Width: 4, Height: 2}}
	return l
}

func testGeometry() map[string]StoreyGeometry {
	return map[string]StoreyGeometry{
		"storey-1": {
			Walls: []geometry.WallSegment{
				{StoreyID: "storey-1", Kind: geometry.WallInterior, A: geometry.Point{X: 5, Y: 0}, B: geometry.Point{X: 5, Y: 4}, Thickness: 0.2, SpaceIDs: []string{"space-a", "space-b"}},
			},
			Slabs: []geometry.SlabPolygon{{StoreyID: "storey-1", Ring: []geometry.Point{{X: 0, Y: 0}, {X: 8, Y: 0}, {X: 8, Y: 4}, {X: 0, Y: 4}}}},
			Roofs: []geometry.Roof{{StoreyID: "storey-1", Ring: []geometry.Point{{X: 0, Y: 0}, {X: 8, Y: 0}, {X: 8, Y: 4}, {X: 0, Y: 4}}}},
			Doors: []geometry.Door{{StoreyID: "storey-1", SpaceA: "space-a", SpaceB: "space-b", Center: geometry.Point{X: 5, Y: 2}, Width: 0.9, Vertical: true}},
		},
		"storey-0": {
			Slabs: []geometry.SlabPolygon{{StoreyID: "storey-0", Ring: []geometry.Point{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 2}, {X: 0, Y: 2}}}},
		},
	}
}

func TestRunOrdersStoreysByElevation(t *testing.T) {
	w := NewRecordingWriter()
	if err := Run(context.Background(), testTopology(), testLayout(), testGeometry(), w); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	var storeyOrder []string
	for _, c := range w.Calls {
		if c.Kind == "storey" {
			storeyOrder = append(storeyOrder, c.StoreyID)
		}
	}
	if len(storeyOrder) != 2 || storeyOrder[0] != "storey-0" || storeyOrder[1] != "storey-1" {
		t.Fatalf("expected storeys in elevation order [storey-0 storey-1], got %v", storeyOrder)
	}
}

func TestRunHandsOffEveryElement(t *testing.T) {
	w := NewRecordingWriter()
	if err := Run(context.Background(), testTopology(), testLayout(), testGeometry(), w); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if got := w.CountKind("space"); got != 3 {
		t.Errorf("expected 3 space writes, got %d", got)
	}
	if got := w.CountKind("wall"); got != 1 {
		t.Errorf("expected 1 wall write, got %d", got)
	}
	if got := w.CountKind("door"); got != 1 {
		t.Errorf("expected 1 door write, got %d", got)
	}
	if got := w.CountKind("slab"); got != 2 {
		t.Errorf("expected 2 slab writes, got %d", got)
	}
	if !w.Finished {
		t.Error("expected Finish to have been called")
	}
}

type failingWriter struct{ *RecordingWriter }

func (f failingWriter) WriteWall(ctx context.Context, storeyID string, wall geometry.WallSegment) error {
	return context.DeadlineExceeded
}

func TestRunStopsAtFirstError(t *testing.T) {
	w := failingWriter{NewRecordingWriter()}
	err := Run(context.Background(), testTopology(), testLayout(), testGeometry(), w)
	if err == nil {
		t.Fatal("expected an error from a failing WriteWall")
	}
	if w.CountKind("finish") != 0 {
		t.Error("Finish must not be called once a write fails")
	}
}
