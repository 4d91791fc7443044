package layout

import (
	"testing"

	"github.com/archtopo/rdf2ifc/pkg/topology"
)

func TestPostProcessReOrigins(t *testing.T) {
	topo := &topology.Topology{
		Storeys: []topology.Storey{{ID: "s0", Order: 0}},
		Spaces: []topology.Space{
			{ID: "a", StoreyID: "s0"},
			{ID: "b", StoreyID: "s0"},
		},
	}
	l := NewLayout()
	l.Placements["a"] = Placement{SpaceID: "a", StoreyID: "s0", Rect: Rect{X: 5, Y: 5, Width: 3, Height: 3}}
	l.Placements["b"] = Placement{SpaceID: "b", StoreyID: "s0", Rect: Rect{X: 8, Y: 5, Width: 3, Height: 3}}

	out := PostProcess(l, topo, 0.05, false)

	a := out.Placements["a"].Rect
	if a.X != 0 || a.Y != 0 {
		t.Errorf("expected space a re-origined to (0,0), got (%v, %v)", a.X, a.Y)
	}
	b := out.Placements["b"].Rect
	if b.X != 3 {
		t.Errorf("expected space b re-origined X=3, got %v", b.X)
	}
}

func TestPostProcessSnapsOutwardWithoutOverlap(t *testing.T) {
	topo := &topology.Topology{
		Storeys: []topology.Storey{{ID: "s0", Order: 0}},
		Spaces: []topology.Space{
			{ID: "a", StoreyID: "s0"},
			{ID: "b", StoreyID: "s0"},
		},
	}
	l := NewLayout()
	// Off-grid abutting rects: outward rounding alone would push them into
	// each other by one grid unit.
	l.Placements["a"] = Placement{SpaceID: "a", StoreyID: "s0", Rect: Rect{X: 0.02, Y: 0, Width: 2.99, Height: 3}}
	l.Placements["b"] = Placement{SpaceID: "b", StoreyID: "s0", Rect: Rect{X: 3.01, Y: 0, Width: 3, Height: 3}}

	out := PostProcess(l, topo, 0.05, false)

	a := out.Placements["a"].Rect
	b := out.Placements["b"].Rect
	if a.Overlaps(b) {
		t.Fatalf("snapping must not introduce overlap: a=%+v b=%+v", a, b)
	}
	if a.Width < 2.99 {
		t.Errorf("outward snapping must not shrink a below its solved footprint, got width %v", a.Width)
	}
}

func TestStoreyBounds(t *testing.T) {
	l := NewLayout()
	l.Placements["a"] = Placement{SpaceID: "a", StoreyID: "s0", Rect: Rect{X: 0, Y: 0, Width: 3, Height: 3}}
	l.Placements["b"] = Placement{SpaceID: "b", StoreyID: "s0", Rect: Rect{X: 3, Y: 0, Width: 3, Height: 4}}
	l.Placements["c"] = Placement{SpaceID: "c", StoreyID: "s1", Rect: Rect{X: 0, Y: 0, Width: 2, Height: 2}}

	bounds := StoreyBounds(l)
	if len(bounds) != 2 {
		t.Fatalf("expected bounds for 2 storeys, got %d", len(bounds))
	}
	if b := bounds["s0"]; b.Width != 6 || b.Height != 4 {
		t.Errorf("expected s0 bounds 6x4, got %vx%v", b.Width, b.Height)
	}
	if b := bounds["s1"]; b.Width != 2 || b.Height != 2 {
		t.Errorf("expected s1 bounds 2x2, got %vx%v", b.Width, b.Height)
	}
}

func TestPostProcessSingleStoreyMode(t *testing.T) {
	topo := &topology.Topology{
		Storeys: []topology.Storey{{ID: "s0", Order: 0}, {ID: "s1", Order: 1}},
		Spaces: []topology.Space{
			{ID: "a", StoreyID: "s0"},
			{ID: "b", StoreyID: "s1"},
		},
	}
	l := NewLayout()
	l.Placements["a"] = Placement{SpaceID: "a", StoreyID: "s0", Rect: Rect{Width: 2, Height: 2}}
	l.Placements["b"] = Placement{SpaceID: "b", StoreyID: "s1", Rect: Rect{Width: 2, Height: 2}}

	out := PostProcess(l, topo, 0.05, true)

	if len(out.Placements) != 1 {
		t.Fatalf("expected 1 placement in single-storey mode, got %d", len(out.Placements))
	}
	if _, ok := out.Placements["a"]; !ok {
		t.Errorf("expected the lowest storey's space to survive single-storey filtering")
	}
}
