// Package geometry derives wall segments, slabs, roofs, and doors from a
// storey's solved rectangle placements.
package geometry

import (
	"math"
	"sort"

	"github.com/archtopo/rdf2ifc/pkg/layout"
)

// Point is a 2D coordinate in meters, storey-local.
type Point struct{ X, Y float64 }

// interval is a half-open [Lo, Hi) range on one axis, tagged with the
// owning space so callers can tell which rectangle a boundary segment
// belongs to.
type interval struct {
	Lo, Hi  float64
	SpaceID string
}

const epsilon = 1e-9

// unionIntervals merges a set of (generally non-overlapping, per the
// layout's no-overlap invariant) intervals that are contiguous or
// overlapping into maximal runs. Each run keeps the tag of its first
// interval only; the tags of the other intervals merged into it are not kept.
func unionIntervals(in []interval) []interval {
	if len(in) == 0 {
		return nil
	}
	sort.Slice(in, func(i, j int) bool { return in[i].Lo < in[j].Lo })

	out := []interval{in[0]}
	for _, iv := range in[1:] {
		last := &out[len(out)-1]
		if iv.Lo <= last.Hi+epsilon {
			if iv.Hi > last.Hi {
				last.Hi = iv.Hi
			}
			continue
		}
		out = append(out, iv)
	}
	return out
}

// xorIntervals returns the symmetric difference of two interval sets: the
// sub-ranges covered by exactly one of a or b. Both a and b are assumed
// already internally non-overlapping (callers pass unionIntervals output).
// This is exactly the boundary-of-a-union test: a rectangle edge at a
// given line cancels against an abutting neighbor's edge at the same line
// and range (an interior wall), and survives where only one side has a
// rectangle (an exterior wall).
func xorIntervals(a, b []interval) []interval {
	type point struct {
		x      float64
		deltaA int
		deltaB int
	}
	var points []point
	for _, iv := range a {
		points = append(points, point{iv.Lo, 1, 0}, point{iv.Hi, -1, 0})
	}
	for _, iv := range b {
		points = append(points, point{iv.Lo, 0, 1}, point{iv.Hi, 0, -1})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].x < points[j].x })

	var out []interval
	depthA, depthB := 0, 0
	var runStart float64
	inRun := false

	flush := func(end float64) {
		if inRun && end-runStart > epsilon {
			out = append(out, interval{Lo: runStart, Hi: end})
		}
		inRun = false
	}

	for i := 0; i < len(points); {
		x := points[i].x
		for i < len(points) && points[i].x == x {
			depthA += points[i].deltaA
			depthB += points[i].deltaB
			i++
		}
		exclusive := (depthA > 0) != (depthB > 0)
		if exclusive && !inRun {
			runStart = x
			inRun = true
		} else if !exclusive && inRun {
			flush(x)
		}
	}
	return out
}

// edge is a directed unit of a rectilinear polygon boundary.
type edge struct {
	A, B Point
}

// UnionBoundary computes the outer boundary (and, for disconnected
// placements, one boundary per connected component) of the union of
// rects, returning each as a closed ring of points in traversal order.
// Rectangles are assumed pairwise non-overlapping (the layout validator
// enforces this); boundary edges are found by XOR-ing, at every distinct
// horizontal and vertical grid line, the intervals where a rectangle
// starts against the intervals where a rectangle ends: edges shared by two
// abutting rectangles cancel, leaving only the union's true perimeter.
func UnionBoundary(rects []layout.Rect) [][]Point {
	if len(rects) == 0 {
		return nil
	}

	var edges []edge
	edges = append(edges, horizontalBoundaryEdges(rects)...)
	edges = append(edges, verticalBoundaryEdges(rects)...)

	return assembleRings(edges)
}

func horizontalBoundaryEdges(rects []layout.Rect) []edge {
	byY := make(map[float64][]interval)
	for i, r := range rects {
		id := spaceTag(i)
		byY[r.Y] = append(byY[r.Y], interval{Lo: r.X, Hi: r.X + r.Width, SpaceID: id + ":bottom"})
		byY[r.Y+r.Height] = append(byY[r.Y+r.Height], interval{Lo: r.X, Hi: r.X + r.Width, SpaceID: id + ":top"})
	}

	var edges []edge
	for y, ivs := range byY {
		var bottoms, tops []interval
		for _, iv := range ivs {
			if len(iv.SpaceID) >= 7 && iv.SpaceID[len(iv.SpaceID)-6:] == "bottom" {
				bottoms = append(bottoms, iv)
			} else {
				tops = append(tops, iv)
			}
		}
		boundary := xorIntervals(unionIntervals(bottoms), unionIntervals(tops))
		for _, b := range boundary {
			edges = append(edges, edge{A: Point{b.Lo, y}, B: Point{b.Hi, y}})
		}
	}
	return edges
}

func verticalBoundaryEdges(rects []layout.Rect) []edge {
	byX := make(map[float64][]interval)
	for i, r := range rects {
		id := spaceTag(i)
		byX[r.X] = append(byX[r.X], interval{Lo: r.Y, Hi: r.Y + r.Height, SpaceID: id + ":left"})
		byX[r.X+r.Width] = append(byX[r.X+r.Width], interval{Lo: r.Y, Hi: r.Y + r.Height, SpaceID: id + ":right"})
	}

	var edges []edge
	for x, ivs := range byX {
		var lefts, rights []interval
		for _, iv := range ivs {
			if len(iv.SpaceID) >= 5 && iv.SpaceID[len(iv.SpaceID)-4:] == "left" {
				lefts = append(lefts, iv)
			} else {
				rights = append(rights, iv)
			}
		}
		boundary := xorIntervals(unionIntervals(lefts), unionIntervals(rights))
		for _, b := range boundary {
			edges = append(edges, edge{A: Point{x, b.Lo}, B: Point{x, b.Hi}})
		}
	}
	return edges
}

func spaceTag(i int) string {
	const digits = "0123456789"
	if i == 0 {
		return string(digits[0])
	}
	buf := make([]byte, 0, 8)
	for i > 0 {
		buf = append([]byte{digits[i%10]}, buf...)
		i /= 10
	}
	return string(buf)
}

// assembleRings walks the undirected edge graph, where every vertex has
// even degree (each edge-using side contributes exactly one crossing),
// into closed polygon rings, then simplifies consecutive collinear edges.
// Start vertices and half-edge lists are visited in sorted coordinate
// order, so ring order and each ring's starting point are stable across
// runs despite the intermediate maps.
func assembleRings(edges []edge) [][]Point {
	type halfEdge struct {
		to   Point
		used bool
	}
	adj := make(map[Point][]*halfEdge)
	for _, e := range edges {
		adj[e.A] = append(adj[e.A], &halfEdge{to: e.B})
		adj[e.B] = append(adj[e.B], &halfEdge{to: e.A})
	}

	vertices := make([]Point, 0, len(adj))
	for v := range adj {
		vertices = append(vertices, v)
	}
	sort.Slice(vertices, func(i, j int) bool {
		if vertices[i].X != vertices[j].X {
			return vertices[i].X < vertices[j].X
		}
		return vertices[i].Y < vertices[j].Y
	})
	for _, v := range vertices {
		hes := adj[v]
		sort.Slice(hes, func(i, j int) bool {
			if hes[i].to.X != hes[j].to.X {
				return hes[i].to.X < hes[j].to.X
			}
			return hes[i].to.Y < hes[j].to.Y
		})
	}

	var rings [][]Point
	for _, start := range vertices {
		for _, he := range adj[start] {
			if he.used {
				continue
			}
			var ring []Point
			cur := start
			next := he
			for {
				next.used = true
				ring = append(ring, cur)
				cur = next.to
				// find the reverse half-edge at cur pointing back, mark used too
				for _, back := range adj[next.to] {
					if !back.used && back.to == ring[len(ring)-1] {
						back.used = true
						break
					}
				}
				if cur == start {
					break
				}
				found := false
				for _, cand := range adj[cur] {
					if !cand.used {
						next = cand
						found = true
						break
					}
				}
				if !found {
					break
				}
			}
			if len(ring) >= 3 {
				rings = append(rings, simplifyCollinear(ring))
			}
		}
	}
	return rings
}

// simplifyCollinear drops vertices that lie on the straight line between
// their neighbors, so a wall spanning several original rectangle edges
// collapses into one segment.
func simplifyCollinear(ring []Point) []Point {
	n := len(ring)
	if n < 3 {
		return ring
	}
	var out []Point
	for i := 0; i < n; i++ {
		prev := ring[(i-1+n)%n]
		cur := ring[i]
		next := ring[(i+1)%n]
		if collinear(prev, cur, next) {
			continue
		}
		out = append(out, cur)
	}
	if len(out) < 3 {
		return ring
	}
	return out
}

func collinear(a, b, c Point) bool {
	cross := (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
	return math.Abs(cross) < epsilon
}
