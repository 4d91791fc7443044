package layout

import (
	"math"
	"sort"

	"github.com/archtopo/rdf2ifc/pkg/topology"
)

// PostProcess snaps every placement to the configured grid unit, re-origins
// each storey so its minimum X/Y is zero, and, if singleStoreyMode is set,
// keeps only the lowest storey's placements (by Storey.Order) and drops the
// rest: the "export only the ground floor" escape hatch for callers that
// don't want a multi-level IFC model.
func PostProcess(l *Layout, topo *topology.Topology, gridUnit float64, singleStoreyMode bool) *Layout {
	out := NewLayout()

	byStorey := make(map[string][]string)
	for id, p := range l.Placements {
		byStorey[p.StoreyID] = append(byStorey[p.StoreyID], id)
	}

	keepStorey := map[string]bool{}
	if singleStoreyMode {
		lowest := lowestStorey(topo)
		if lowest != "" {
			keepStorey[lowest] = true
		}
	}

	for storeyID, ids := range byStorey {
		if singleStoreyMode && !keepStorey[storeyID] {
			continue
		}

		minX, minY := math.Inf(1), math.Inf(1)
		for _, id := range ids {
			r := l.Placements[id].Rect
			minX = math.Min(minX, r.X)
			minY = math.Min(minY, r.Y)
		}

		sort.Strings(ids)
		snapped := make(map[string]Rect, len(ids))
		for _, id := range ids {
			r := l.Placements[id].Rect
			// Round outward: floor the origin, ceil the far corner, so a
			// space never shrinks below its solved footprint.
			x0 := floorTo(r.X-minX, gridUnit)
			y0 := floorTo(r.Y-minY, gridUnit)
			x1 := ceilTo(r.X-minX+r.Width, gridUnit)
			y1 := ceilTo(r.Y-minY+r.Height, gridUnit)
			snapped[id] = Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
		}
		resolveSnapConflicts(ids, snapped, gridUnit)

		for _, id := range ids {
			out.Placements[id] = Placement{SpaceID: id, StoreyID: storeyID, Rect: snapped[id]}
		}
	}

	return out
}

// resolveSnapConflicts restores non-overlap after outward snapping, which
// can push two abutting rectangles at most one grid unit into each other.
// The lexicographically later rectangle of each overlapping pair is shrunk
// by one grid unit on the axis of least penetration until the pair
// separates again, never below one grid unit per side.
func resolveSnapConflicts(ids []string, rects map[string]Rect, gridUnit float64) {
	if gridUnit <= 0 {
		return
	}
	for i := 0; i < len(ids); i++ {
		for j := i + 1; j < len(ids); j++ {
			a := rects[ids[i]]
			b := rects[ids[j]]
			for a.Overlaps(b) && b.Width > gridUnit && b.Height > gridUnit {
				penX := math.Min(a.X+a.Width, b.X+b.Width) - math.Max(a.X, b.X)
				penY := math.Min(a.Y+a.Height, b.Y+b.Height) - math.Max(a.Y, b.Y)
				if penX <= penY {
					if b.X >= a.X {
						b.X += gridUnit
					}
					b.Width -= gridUnit
				} else {
					if b.Y >= a.Y {
						b.Y += gridUnit
					}
					b.Height -= gridUnit
				}
			}
			rects[ids[j]] = b
		}
	}
}

func floorTo(v, unit float64) float64 {
	if unit <= 0 {
		return v
	}
	return math.Floor(v/unit+1e-9) * unit
}

func ceilTo(v, unit float64) float64 {
	if unit <= 0 {
		return v
	}
	return math.Ceil(v/unit-1e-9) * unit
}

// StoreyBounds returns each storey's bounding box over its placements, for
// downstream consumers that size canvases or envelopes per storey. After
// PostProcess every box's origin is (0, 0).
func StoreyBounds(l *Layout) map[string]Rect {
	minX := map[string]float64{}
	minY := map[string]float64{}
	maxX := map[string]float64{}
	maxY := map[string]float64{}

	for _, p := range l.Placements {
		r := p.Rect
		id := p.StoreyID
		if _, ok := minX[id]; !ok {
			minX[id], minY[id] = r.X, r.Y
			maxX[id], maxY[id] = r.X+r.Width, r.Y+r.Height
			continue
		}
		minX[id] = math.Min(minX[id], r.X)
		minY[id] = math.Min(minY[id], r.Y)
		maxX[id] = math.Max(maxX[id], r.X+r.Width)
		maxY[id] = math.Max(maxY[id], r.Y+r.Height)
	}

	out := make(map[string]Rect, len(minX))
	for id := range minX {
		out[id] = Rect{X: minX[id], Y: minY[id], Width: maxX[id] - minX[id], Height: maxY[id] - minY[id]}
	}
	return out
}

func lowestStorey(topo *topology.Topology) string {
	if len(topo.Storeys) == 0 {
		return ""
	}
	lowest := topo.Storeys[0]
	for _, st := range topo.Storeys[1:] {
		if st.Order < lowest.Order {
			lowest = st
		}
	}
	return lowest.ID
}
