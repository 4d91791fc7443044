package geometry

import (
	"fmt"
	"sort"

	"github.com/archtopo/rdf2ifc/pkg/diag"
	"github.com/archtopo/rdf2ifc/pkg/layout"
)

// minWallLength is the degenerate-wall threshold: any would-be wall
// segment shorter than this is fused with a neighbor or, failing that,
// dropped.
const minWallLength = 0.05

// ExtractWalls derives exterior and interior wall segments for one storey
// from its placements. Rectangle iteration is in sorted space-ID order so
// output is stable across runs.
func ExtractWalls(storeyID string, placements map[string]layout.Placement, thickness, ceilingHeight float64) ([]WallSegment, diag.List) {
	var diags diag.List

	ids := make([]string, 0, len(placements))
	for id := range placements {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	rects := make([]layout.Rect, len(ids))
	for i, id := range ids {
		rects[i] = placements[id].Rect
	}

	exterior, extDiags := extractExteriorWalls(storeyID, rects, thickness, ceilingHeight)
	diags = append(diags, extDiags...)

	interior, intDiags := extractInteriorWalls(storeyID, ids, placements, thickness, ceilingHeight)
	diags = append(diags, intDiags...)

	return append(exterior, interior...), diags
}

func extractExteriorWalls(storeyID string, rects []layout.Rect, thickness, ceilingHeight float64) ([]WallSegment, diag.List) {
	var diags diag.List
	var walls []WallSegment

	for _, ring := range UnionBoundary(rects) {
		n := len(ring)
		if n < 3 {
			continue
		}
		segments := make([]WallSegment, 0, n)
		for i := 0; i < n; i++ {
			a, b := ring[i], ring[(i+1)%n]
			segments = append(segments, WallSegment{
				StoreyID: storeyID, Kind: WallExterior, A: a, B: b,
				Thickness: thickness, CeilingHeight: ceilingHeight,
			})
		}
		walls = append(walls, fuseDegenerate(segments, &diags)...)
	}

	return walls, diags
}

// fuseDegenerate merges any wall segment shorter than minWallLength into
// its successor (dropping its own vertex), and drops it outright with a
// warning if no successor remains long enough after merging.
func fuseDegenerate(segments []WallSegment, diags *diag.List) []WallSegment {
	if len(segments) == 0 {
		return segments
	}
	out := make([]WallSegment, 0, len(segments))
	for i, seg := range segments {
		if seg.Length() >= minWallLength || i == len(segments)-1 {
			out = append(out, seg)
			continue
		}
		// Fuse into the next segment by starting it at this one's start.
		segments[i+1].A = seg.A
	}
	if len(out) > 1 && out[len(out)-1].Length() < minWallLength {
		// Wrap-around fuse: merge a too-short last segment into the first.
		out[0].A = out[len(out)-1].A
		out = out[:len(out)-1]
	}

	final := out[:0]
	for _, seg := range out {
		if seg.Length() < minWallLength {
			*diags = append(*diags, diag.Warning("GEOMETRY_DEGENERATE_WALL_DROPPED",
				fmt.Sprintf("dropped exterior wall segment shorter than %.2fm", minWallLength)))
			continue
		}
		final = append(final, seg)
	}
	return final
}

func extractInteriorWalls(storeyID string, ids []string, placements map[string]layout.Placement, thickness, ceilingHeight float64) ([]WallSegment, diag.List) {
	var diags diag.List
	var walls []WallSegment

	for i := 0; i < len(ids); i++ {
		for j := i + 1; j < len(ids); j++ {
			a, b := placements[ids[i]].Rect, placements[ids[j]].Rect
			if seg, ok := sharedBoundary(storeyID, ids[i], a, ids[j], b, thickness, ceilingHeight); ok {
				if seg.Length() < minWallLength {
					diags = append(diags, diag.Warning("GEOMETRY_DEGENERATE_WALL_DROPPED",
						fmt.Sprintf("spaces %q/%q share only a %.3fm boundary; dropped", ids[i], ids[j], seg.Length())))
					continue
				}
				walls = append(walls, seg)
			}
		}
	}
	return walls, diags
}

// sharedBoundary returns the interior wall segment along a and b's shared
// boundary, if any, treating them as adjacent when one's edge exactly
// meets the other's opposite edge.
func sharedBoundary(storeyID, idA string, a layout.Rect, idB string, b layout.Rect, thickness, ceilingHeight float64) (WallSegment, bool) {
	const eps = 1e-6

	// a's right edge meets b's left edge (side by side in X).
	if almostEq(a.X+a.Width, b.X, eps) {
		lo, hi := overlap(a.Y, a.Y+a.Height, b.Y, b.Y+b.Height)
		if hi > lo {
			return WallSegment{
				StoreyID: storeyID, Kind: WallInterior,
				A: Point{a.X + a.Width, lo}, B: Point{a.X + a.Width, hi},
				Thickness: thickness, CeilingHeight: ceilingHeight,
				SpaceIDs: []string{idA, idB},
			}, true
		}
	}
	// b's right edge meets a's left edge.
	if almostEq(b.X+b.Width, a.X, eps) {
		lo, hi := overlap(a.Y, a.Y+a.Height, b.Y, b.Y+b.Height)
		if hi > lo {
			return WallSegment{
				StoreyID: storeyID, Kind: WallInterior,
				A: Point{a.X, lo}, B: Point{a.X, hi},
				Thickness: thickness, CeilingHeight: ceilingHeight,
				SpaceIDs: []string{idA, idB},
			}, true
		}
	}
	// a's top edge meets b's bottom edge (stacked in Y).
	if almostEq(a.Y+a.Height, b.Y, eps) {
		lo, hi := overlap(a.X, a.X+a.Width, b.X, b.X+b.Width)
		if hi > lo {
			return WallSegment{
				StoreyID: storeyID, Kind: WallInterior,
				A: Point{lo, a.Y + a.Height}, B: Point{hi, a.Y + a.Height},
				Thickness: thickness, CeilingHeight: ceilingHeight,
				SpaceIDs: []string{idA, idB},
			}, true
		}
	}
	// b's top edge meets a's bottom edge.
	if almostEq(b.Y+b.Height, a.Y, eps) {
		lo, hi := overlap(a.X, a.X+a.Width, b.X, b.X+b.Width)
		if hi > lo {
			return WallSegment{
				StoreyID: storeyID, Kind: WallInterior,
				A: Point{lo, a.Y}, B: Point{hi, a.Y},
				Thickness: thickness, CeilingHeight: ceilingHeight,
				SpaceIDs: []string{idA, idB},
			}, true
		}
	}

	return WallSegment{}, false
}

func overlap(lo1, hi1, lo2, hi2 float64) (float64, float64) {
	lo := lo1
	if lo2 > lo {
		lo = lo2
	}
	hi := hi1
	if hi2 < hi {
		hi = hi2
	}
	return lo, hi
}

func almostEq(a, b, eps float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < eps
}
