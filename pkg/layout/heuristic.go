package layout

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/archtopo/rdf2ifc/pkg/detrand"
	"github.com/archtopo/rdf2ifc/pkg/diag"
	"github.com/archtopo/rdf2ifc/pkg/topology"
)

// HeuristicSolver packs spaces into a compact grid per storey using a
// BFS-ordered shelf packing pass, then refines the result with a bounded
// number of randomized swap-and-keep-if-better iterations (a hill climb).
// It never fails: given any topology it produces some layout, possibly
// with WARNING diagnostics if a space's side had to be raised to
// MinSideLength.
type HeuristicSolver struct{}

// NewHeuristicSolver constructs a HeuristicSolver.
func NewHeuristicSolver() *HeuristicSolver { return &HeuristicSolver{} }

func (s *HeuristicSolver) Name() string { return "HEURISTIC" }

func (s *HeuristicSolver) Solve(ctx context.Context, topo *topology.Topology, cfg SolverConfig, rng *detrand.Source) (*Layout, diag.List) {
	var diags diag.List
	result := NewLayout()

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
		select {
		case <-ctx.Done():
			diags = append(diags, diag.Warning("LAYOUT_HEURISTIC_TIMEOUT",
				fmt.Sprintf("heuristic solver stopped before placing storey %q: %v", storeyID, ctx.Err()), storeyID))
			continue
		default:
		}

		spaces := byStorey[storeyID]
		order := bfsOrder(spaces, graph)
		rects, sizeDiags := dimensionsFor(spaces, cfg)
		diags = append(diags, sizeDiags...)

		placed := shelfPack(order, rects)
		placed = hillClimb(ctx, placed, storeyAdjacency(spaces, graph), rng, cfg.HeuristicMaxIterPerSpace)

		for id, rect := range placed {
			result.Placements[id] = Placement{SpaceID: id, StoreyID: storeyID, Rect: rect}
		}
	}

	return result, diags
}

// bfsOrder returns space IDs ordered by breadth-first traversal of the
// adjacency/connection graph, each traversal rooted at the unvisited space
// with the most on-storey edges (ties broken by smaller ID). Disconnected
// components come out in descending size order, so the big wing packs
// first and smaller annexes fill in after it. Deterministic packing order
// is what makes the whole solver reproducible given a fixed seed.
func bfsOrder(spaces []topology.Space, graph *topology.Graph) []string {
	ids := make([]string, 0, len(spaces))
	onStorey := make(map[string]bool, len(spaces))
	for _, sp := range spaces {
		ids = append(ids, sp.ID)
		onStorey[sp.ID] = true
	}
	sort.Strings(ids)
	if len(ids) == 0 {
		return ids
	}

	degree := make(map[string]int, len(ids))
	for _, id := range ids {
		for _, n := range graph.Neighbors(id) {
			if onStorey[n] {
				degree[id]++
			}
		}
	}

	visited := make(map[string]bool, len(ids))
	var components [][]string

	for {
		root := ""
		for _, id := range ids {
			if visited[id] {
				continue
			}
			if root == "" || degree[id] > degree[root] {
				root = id
			}
		}
		if root == "" {
			break
		}

		queue := []string{root}
		visited[root] = true
		var component []string
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			component = append(component, cur)
			for _, n := range graph.Neighbors(cur) {
				if onStorey[n] && !visited[n] {
					visited[n] = true
					queue = append(queue, n)
				}
			}
		}
		components = append(components, component)
	}

	sort.SliceStable(components, func(i, j int) bool { return len(components[i]) > len(components[j]) })

	var order []string
	for _, c := range components {
		order = append(order, c...)
	}
	return order
}

// dimensionsFor computes an (approximately square) rectangle for each space
// from its target area, clamped so neither side falls below MinSideLength.
func dimensionsFor(spaces []topology.Space, cfg SolverConfig) (map[string]Rect, diag.List) {
	var diags diag.List
	rects := make(map[string]Rect, len(spaces))

	for _, sp := range spaces {
		area := cfg.DefaultTargetArea
		if sp.HasTargetArea {
			area = sp.TargetArea
		}
		side := math.Sqrt(area)
		if side < cfg.MinSideLength {
			diags = append(diags, diag.Warning("LAYOUT_SPACE_BELOW_MIN_SIDE",
				fmt.Sprintf("space %q target area %.2f implies side %.2f below minimum %.2f; clamped", sp.ID, area, side, cfg.MinSideLength),
				sp.ID))
			side = cfg.MinSideLength
		}
		rects[sp.ID] = Rect{Width: snap(side, cfg.GridUnit), Height: snap(side, cfg.GridUnit)}
	}
	return rects, diags
}

func snap(v, unit float64) float64 {
	if unit <= 0 {
		return v
	}
	return math.Round(v/unit) * unit
}

// shelfPack places rectangles in the given order using next-fit shelf
// packing (the rectangles are not sorted by height first): rows are filled
// left to right until the row width would exceed targetWidth (the square
// root of total area, a reasonable default aspect ratio), then a new row
// starts at the current row's y plus the height of the tallest rect placed
// in that row.
func shelfPack(order []string, rects map[string]Rect) map[string]Rect {
	if len(order) == 0 {
		return map[string]Rect{}
	}

	total := 0.0
	for _, r := range rects {
		total += r.Area()
	}
	targetWidth := math.Max(math.Sqrt(total), 1.0)

	placed := make(map[string]Rect, len(order))
	var x, y, rowHeight float64

	for _, id := range order {
		r := rects[id]
		if x > 0 && x+r.Width > targetWidth {
			x = 0
			y += rowHeight
			rowHeight = 0
		}
		placed[id] = Rect{X: x, Y: y, Width: r.Width, Height: r.Height}
		x += r.Width
		if r.Height > rowHeight {
			rowHeight = r.Height
		}
	}

	return placed
}

// storeyAdjacency collects the adjacency/connection pairs whose endpoints
// are both on the given storey's space list, in sorted order.
func storeyAdjacency(spaces []topology.Space, graph *topology.Graph) [][2]string {
	onStorey := make(map[string]bool, len(spaces))
	ids := make([]string, 0, len(spaces))
	for _, sp := range spaces {
		onStorey[sp.ID] = true
		ids = append(ids, sp.ID)
	}
	sort.Strings(ids)

	var pairs [][2]string
	for _, id := range ids {
		for _, n := range graph.Neighbors(id) {
			if n > id && onStorey[n] {
				pairs = append(pairs, [2]string{id, n})
			}
		}
	}
	return pairs
}

// hillClimb performs up to maxIterPerSpace*len(placed) randomized position
// swaps, keeping any swap that does not introduce an overlap and improves
// the objective: adjacency edges satisfied minus a tenth of the layout's
// bounding-box perimeter. The shelf pack already guarantees no overlap;
// this pass trades the wasted space it leaves behind for adjacency
// satisfaction without the cost of a full combinatorial search.
func hillClimb(ctx context.Context, placed map[string]Rect, pairs [][2]string, rng *detrand.Source, maxIterPerSpace int) map[string]Rect {
	if len(placed) < 2 || rng == nil {
		return placed
	}

	ids := make([]string, 0, len(placed))
	for id := range placed {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	objective := func(rects map[string]Rect) float64 {
		satisfied := 0
		for _, p := range pairs {
			if touches(rects[p[0]], rects[p[1]]) {
				satisfied++
			}
		}
		return float64(satisfied) - 0.1*boundingPerimeter(rects)
	}

	current := objective(placed)
	iterations := maxIterPerSpace * len(ids)
	for i := 0; i < iterations; i++ {
		if i%64 == 0 {
			select {
			case <-ctx.Done():
				return placed
			default:
			}
		}

		a := ids[rng.IntRange(0, len(ids)-1)]
		b := ids[rng.IntRange(0, len(ids)-1)]
		if a == b {
			continue
		}

		ra, rb := placed[a], placed[b]
		swappedA := Rect{X: rb.X, Y: rb.Y, Width: ra.Width, Height: ra.Height}
		swappedB := Rect{X: ra.X, Y: ra.Y, Width: rb.Width, Height: rb.Height}

		trial := cloneRects(placed)
		trial[a] = swappedA
		trial[b] = swappedB

		if overlapsAny(trial, a, b) {
			continue
		}
		if next := objective(trial); next > current {
			placed = trial
			current = next
		}
	}

	return placed
}

func cloneRects(in map[string]Rect) map[string]Rect {
	out := make(map[string]Rect, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func overlapsAny(rects map[string]Rect, ids ...string) bool {
	for _, id := range ids {
		r := rects[id]
		for other, or := range rects {
			if other == id {
				continue
			}
			if r.Overlaps(or) {
				return true
			}
		}
	}
	return false
}

func boundingPerimeter(rects map[string]Rect) float64 {
	if len(rects) == 0 {
		return 0
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, r := range rects {
		minX = math.Min(minX, r.X)
		minY = math.Min(minY, r.Y)
		maxX = math.Max(maxX, r.X+r.Width)
		maxY = math.Max(maxY, r.Y+r.Height)
	}
	return 2 * ((maxX - minX) + (maxY - minY))
}

func init() {
	Register("HEURISTIC", func() Solver { return NewHeuristicSolver() })
}
