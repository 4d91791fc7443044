package layout

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/archtopo/rdf2ifc/pkg/detrand"
	"github.com/archtopo/rdf2ifc/pkg/diag"
	"github.com/archtopo/rdf2ifc/pkg/topology"
)

// CPSolver places spaces on an integer grid via a bounded constraint-
// directed search: each space is placed, in adjacency order, at the first
// free grid cell that satisfies non-overlap, preferring cells touching an
// already-placed neighbor it must be adjacent to. There is no off-the-shelf
// constraint solver in this module's dependency set, so this is a
// hand-rolled, deterministic greedy placer (an already-placed space is
// never moved again; there is no backtracking) bounded by both a
// candidate-count budget and ctx's deadline; either limit reached falls
// back to HeuristicSolver for the affected storey, with a diagnostic
// recording the fallback.
type CPSolver struct {
	fallback Solver
}

// NewCPSolver constructs a CPSolver, falling back to a fresh
// HeuristicSolver whenever the constraint search can't complete in time.
func NewCPSolver() *CPSolver {
	return &CPSolver{fallback: NewHeuristicSolver()}
}

func (s *CPSolver) Name() string { return "CP" }

const cpMaxCandidatesPerSpace = 4096

func (s *CPSolver) Solve(ctx context.Context, topo *topology.Topology, cfg SolverConfig, rng *detrand.Source) (*Layout, diag.List) {
	var diags diag.List
	result := NewLayout()

	timeLimit := cfg.TimeLimit
	if timeLimit <= 0 {
		timeLimit = 30
	}
	cctx, cancel := context.WithTimeout(ctx, time.Duration(timeLimit)*time.Second)
	defer cancel()

	byStorey := make(map[string][]topology.Space)
	for _, sp := range topo.Spaces {
		byStorey[sp.StoreyID] = append(byStorey[sp.StoreyID], sp)
	}
	storeyIDs := make([]string, 0, len(byStorey))
	for id := range byStorey {
		storeyIDs = append(storeyIDs, id)
	}
	sort.Strings(storeyIDs)

	graph := topology.NewGraph(topo)

	for _, storeyID := range storeyIDs {
		spaces := byStorey[storeyID]
		rects, sizeDiags := dimensionsFor(spaces, cfg)
		diags = append(diags, sizeDiags...)

		order := bfsOrder(spaces, graph)
		placed, ok := s.placeStorey(cctx, order, rects, graph, cfg.GridUnit)
		if !ok {
			diags = append(diags, diag.Warning("LAYOUT_CP_FALLBACK",
				fmt.Sprintf("CP solver could not place storey %q within its time/candidate budget; falling back to the heuristic solver", storeyID),
				storeyID))

			sub := &topology.Topology{Spaces: spaces}
			fallbackLayout, fallbackDiags := s.fallback.Solve(ctx, sub, cfg, rng)
			diags = append(diags, fallbackDiags...)
			for id, p := range fallbackLayout.Placements {
				result.Placements[id] = Placement{SpaceID: id, StoreyID: storeyID, Rect: p.Rect}
			}
			continue
		}

		for id, rect := range placed {
			result.Placements[id] = Placement{SpaceID: id, StoreyID: storeyID, Rect: rect}
		}
	}

	return result, diags
}

// placeStorey runs the bounded greedy placement for one storey's
// spaces. Returns ok=false if the candidate or time budget is exhausted
// before every space is placed.
func (s *CPSolver) placeStorey(ctx context.Context, order []string, rects map[string]Rect, graph *topology.Graph, gridUnit float64) (map[string]Rect, bool) {
	unit := gridUnit
	if unit <= 0 {
		unit = 0.1
	}

	placed := make(map[string]Rect, len(order))

	for _, id := range order {
		select {
		case <-ctx.Done():
			return nil, false
		default:
		}

		r := rects[id]
		found := false
		checked := 0
		for _, c := range candidateOrigins(placed, graph, id, r, unit) {
			if checked >= cpMaxCandidatesPerSpace {
				break
			}
			checked++
			trial := Rect{X: c.x, Y: c.y, Width: r.Width, Height: r.Height}
			if !overlapsExisting(placed, trial) {
				placed[id] = trial
				found = true
				break
			}
		}

		if !found {
			return nil, false
		}
	}

	return placed, true
}

type origin struct{ x, y float64 }

// candidateOrigins proposes grid-aligned origins for the next space,
// preferring positions touching an already-placed neighbor (so adjacency
// constraints tend to be satisfied for free), then falling back to a
// row-major scan of an expanding bounding square.
func candidateOrigins(placed map[string]Rect, graph *topology.Graph, id string, r Rect, unit float64) []origin {
	var candidates []origin

	neighborIDs := graph.Neighbors(id)
	sort.Strings(neighborIDs)
	for _, n := range neighborIDs {
		nr, ok := placed[n]
		if !ok {
			continue
		}
		candidates = append(candidates,
			origin{nr.X + nr.Width, nr.Y},
			origin{nr.X - r.Width, nr.Y},
			origin{nr.X, nr.Y + nr.Height},
			origin{nr.X, nr.Y - r.Height},
		)
	}

	if len(placed) == 0 {
		candidates = append(candidates, origin{0, 0})
		return candidates
	}

	maxX, maxY := 0.0, 0.0
	for _, pr := range placed {
		maxX = math.Max(maxX, pr.X+pr.Width)
		maxY = math.Max(maxY, pr.Y+pr.Height)
	}
	span := math.Max(maxX, maxY) + r.Width + r.Height
	steps := int(span/unit) + 2
	if maxSteps := int(math.Sqrt(cpMaxCandidatesPerSpace)); steps > maxSteps {
		steps = maxSteps
	}
	for row := 0; row <= steps; row++ {
		for col := 0; col <= steps; col++ {
			candidates = append(candidates, origin{float64(col) * unit, float64(row) * unit})
		}
	}

	return candidates
}

func overlapsExisting(placed map[string]Rect, trial Rect) bool {
	for _, r := range placed {
		if r.Overlaps(trial) {
			return true
		}
	}
	return false
}

func init() {
	Register("CP", func() Solver { return NewCPSolver() })
}
