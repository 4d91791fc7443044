package geometry

import (
	"sort"

	"github.com/archtopo/rdf2ifc/pkg/layout"
)

// ExtractSlabsAndRoofs computes one SlabPolygon (and matching Roof) per
// connected component of a storey's rectangle union, so a storey whose
// spaces form two disjoint wings gets two slabs rather than a single
// polygon that isn't actually contiguous.
func ExtractSlabsAndRoofs(storeyID string, placements map[string]layout.Placement, slabThickness, elevation, ceilingHeight float64) ([]SlabPolygon, []Roof) {
	ids := make([]string, 0, len(placements))
	for id := range placements {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	rects := make([]layout.Rect, len(ids))
	for i, id := range ids {
		rects[i] = placements[id].Rect
	}

	components := connectedRectComponents(rects)

	var slabs []SlabPolygon
	var roofs []Roof
	for _, comp := range components {
		for _, ring := range UnionBoundary(comp) {
			slabs = append(slabs, SlabPolygon{
				StoreyID: storeyID, Ring: ring, Thickness: slabThickness, Elevation: elevation,
			})
			roofs = append(roofs, Roof{
				StoreyID: storeyID, Ring: ring, Elevation: elevation + ceilingHeight,
			})
		}
	}

	return slabs, roofs
}

// connectedRectComponents groups rectangles that touch (share a boundary
// or overlap) into connected components, via union-find over the
// touches-or-overlaps relation.
func connectedRectComponents(rects []layout.Rect) [][]layout.Rect {
	n := len(rects)
	parent := make([]int, n)
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(x int) int {
		if parent[x] != x {
			parent[x] = find(parent[x])
		}
		return parent[x]
	}
	union := func(a, b int) {
		ra, rb := find(a), find(b)
		if ra != rb {
			parent[ra] = rb
		}
	}

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if touchesOrOverlaps(rects[i], rects[j]) {
				union(i, j)
			}
		}
	}

	groups := make(map[int][]layout.Rect)
	var order []int
	for i := 0; i < n; i++ {
		root := find(i)
		if _, ok := groups[root]; !ok {
			order = append(order, root)
		}
		groups[root] = append(groups[root], rects[i])
	}
	sort.Ints(order)

	out := make([][]layout.Rect, 0, len(order))
	for _, root := range order {
		out = append(out, groups[root])
	}
	return out
}

func touchesOrOverlaps(a, b layout.Rect) bool {
	const eps = 1e-6
	xTouch := a.X <= b.X+b.Width+eps && b.X <= a.X+a.Width+eps
	yTouch := a.Y <= b.Y+b.Height+eps && b.Y <= a.Y+a.Height+eps
	return xTouch && yTouch
}
