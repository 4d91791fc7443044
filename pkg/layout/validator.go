package layout

import (
	"fmt"
	"sort"

	"github.com/archtopo/rdf2ifc/pkg/diag"
	"github.com/archtopo/rdf2ifc/pkg/topology"
)

// Report summarizes a solved Layout's conformance to the topology it was
// built from: overlap-free, fully placed, adjacency-satisfying, and within
// the configured area tolerance.
type Report struct {
	TotalSpaces        int
	PlacedSpaces       int
	OverlapCount       int
	AdjacencySatisfied int
	AdjacencyTotal     int
	AreaDeviations     map[string]float64 // spaceID -> |actual-target|/target, only when it exceeds slack
}

// AdjacencyScore returns the fraction of topology adjacency+connection
// edges whose placements actually touch, in [0, 1]. Returns 1 when there
// are no edges to satisfy.
func (r Report) AdjacencyScore() float64 {
	if r.AdjacencyTotal == 0 {
		return 1
	}
	return float64(r.AdjacencySatisfied) / float64(r.AdjacencyTotal)
}

// Validate checks a solved Layout against its source Topology: every space
// placed exactly once, placements stay on their assigned storey, no two
// placements on the same storey overlap, and footprint areas within the
// configured slack of their targets. Findings here are post-hoc layout
// violations, recovered rather than fatal, so every diagnostic is emitted
// at WARNING severity and surfaced through the Report; callers that want
// to treat them as fatal inspect the Report's counts.
func Validate(l *Layout, topo *topology.Topology, areaSlackFactor float64) (Report, diag.List) {
	var diags diag.List
	report := Report{TotalSpaces: len(topo.Spaces), AreaDeviations: map[string]float64{}}

	for _, sp := range topo.Spaces {
		p, ok := l.Placements[sp.ID]
		if !ok {
			diags = append(diags, diag.Warning("LAYOUT_SPACE_UNPLACED",
				fmt.Sprintf("space %q has no placement", sp.ID), sp.ID))
			continue
		}
		report.PlacedSpaces++

		if p.StoreyID != sp.StoreyID {
			diags = append(diags, diag.Warning("LAYOUT_STOREY_MISMATCH",
				fmt.Sprintf("space %q placed on storey %q but belongs to %q", sp.ID, p.StoreyID, sp.StoreyID),
				sp.ID))
		}

		if sp.HasTargetArea && sp.TargetArea > 0 {
			actual := p.Rect.Area()
			deviation := (actual - sp.TargetArea) / sp.TargetArea
			if deviation < 0 {
				deviation = -deviation
			}
			if areaSlackFactor > 1 && deviation > areaSlackFactor-1 {
				report.AreaDeviations[sp.ID] = deviation
				diags = append(diags, diag.Warning("LAYOUT_AREA_DEVIATION",
					fmt.Sprintf("space %q placed area %.2f deviates %.0f%% from target %.2f", sp.ID, actual, deviation*100, sp.TargetArea),
					sp.ID))
			}
		}
	}

	report.OverlapCount, diags = countOverlaps(l, diags)

	report.AdjacencyTotal, report.AdjacencySatisfied = scoreAdjacency(l, topo)
	if report.AdjacencyTotal > 0 && report.AdjacencySatisfied < report.AdjacencyTotal {
		diags = append(diags, diag.Warning("LAYOUT_ADJACENCY_UNSATISFIED",
			fmt.Sprintf("%d of %d adjacency/connection edges are not touching in the solved layout", report.AdjacencyTotal-report.AdjacencySatisfied, report.AdjacencyTotal)))
	}

	return report, diags
}

func countOverlaps(l *Layout, diags diag.List) (int, diag.List) {
	byStorey := make(map[string][]Placement)
	for _, p := range l.Placements {
		byStorey[p.StoreyID] = append(byStorey[p.StoreyID], p)
	}

	count := 0
	for _, placements := range byStorey {
		sort.Slice(placements, func(i, j int) bool { return placements[i].SpaceID < placements[j].SpaceID })
		for i := 0; i < len(placements); i++ {
			for j := i + 1; j < len(placements); j++ {
				if placements[i].Rect.Overlaps(placements[j].Rect) {
					count++
					diags = append(diags, diag.Warning("LAYOUT_OVERLAP",
						fmt.Sprintf("spaces %q and %q overlap", placements[i].SpaceID, placements[j].SpaceID),
						placements[i].SpaceID, placements[j].SpaceID))
				}
			}
		}
	}
	return count, diags
}

// touchEpsilon is the tolerance, in meters, within which two rectangle
// edges are considered touching rather than merely close.
const touchEpsilon = 1e-6

func touches(a, b Rect) bool {
	xOverlap := a.X < b.X+b.Width+touchEpsilon && b.X < a.X+a.Width+touchEpsilon
	yOverlap := a.Y < b.Y+b.Height+touchEpsilon && b.Y < a.Y+a.Height+touchEpsilon
	if !xOverlap || !yOverlap {
		return false
	}
	xTouch := almostEqual(a.X+a.Width, b.X) || almostEqual(b.X+b.Width, a.X)
	yTouch := almostEqual(a.Y+a.Height, b.Y) || almostEqual(b.Y+b.Height, a.Y)
	return xTouch || yTouch
}

func almostEqual(a, b float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < touchEpsilon
}

func scoreAdjacency(l *Layout, topo *topology.Topology) (total, satisfied int) {
	check := func(edges []topology.Edge) {
		for _, e := range edges {
			pa, okA := l.Placements[e.A]
			pb, okB := l.Placements[e.B]
			total++
			if okA && okB && touches(pa.Rect, pb.Rect) {
				satisfied++
			}
		}
	}
	check(topo.Adjacencies)
	check(topo.Connections)
	return total, satisfied
}
