package geometry

import (
	"testing"

	"pgregory.net/rapid"

	"github.com/archtopo/rdf2ifc/pkg/layout"
)

func ringArea(ring []Point) float64 {
	n := len(ring)
	var area float64
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		area += ring[i].X*ring[j].Y - ring[j].X*ring[i].Y
	}
	if area < 0 {
		area = -area
	}
	return area / 2
}

func TestUnionBoundarySingleRect(t *testing.T) {
	rings := UnionBoundary([]layout.Rect{{X: 0, Y: 0, Width: 4, Height: 3}})
	if len(rings) != 1 {
		t.Fatalf("expected 1 ring, got %d", len(rings))
	}
	if got := ringArea(rings[0]); got < 11.9 || got > 12.1 {
		t.Errorf("expected ring area ~12, got %v", got)
	}
}

func TestUnionBoundaryAbuttingRectsMergeToOneRing(t *testing.T) {
	rects := []layout.Rect{
		{X: 0, Y: 0, Width: 4, Height: 3},
		{X: 4, Y: 0, Width: 4, Height: 3},
	}
	rings := UnionBoundary(rects)
	if len(rings) != 1 {
		t.Fatalf("expected the two abutting rects to form 1 outer ring, got %d", len(rings))
	}
	if got := ringArea(rings[0]); got < 23.9 || got > 24.1 {
		t.Errorf("expected combined area ~24, got %v", got)
	}
}

func TestUnionBoundaryDisjointRectsYieldTwoRings(t *testing.T) {
	rects := []layout.Rect{
		{X: 0, Y: 0, Width: 2, Height: 2},
		{X: 10, Y: 10, Width: 2, Height: 2},
	}
	rings := UnionBoundary(rects)
	if len(rings) != 2 {
		t.Fatalf("expected 2 disjoint rings, got %d", len(rings))
	}
}

func TestUnionBoundaryEmptyInput(t *testing.T) {
	if rings := UnionBoundary(nil); rings != nil {
		t.Errorf("expected nil rings for empty input, got %v", rings)
	}
}

// TestPropertyUnionBoundaryGridArea checks that the boundary of a full
// grid of abutting rectangles is a single ring whose area equals the sum
// of the rectangle areas, for arbitrary grid shapes and cell sizes.
func TestPropertyUnionBoundaryGridArea(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		rows := rapid.IntRange(1, 4).Draw(t, "rows")
		cols := rapid.IntRange(1, 4).Draw(t, "cols")
		w := float64(rapid.IntRange(1, 6).Draw(t, "cellWidth"))
		h := float64(rapid.IntRange(1, 6).Draw(t, "cellHeight"))

		var rects []layout.Rect
		for r := 0; r < rows; r++ {
			for c := 0; c < cols; c++ {
				rects = append(rects, layout.Rect{X: float64(c) * w, Y: float64(r) * h, Width: w, Height: h})
			}
		}

		rings := UnionBoundary(rects)
		if len(rings) != 1 {
			t.Fatalf("expected 1 ring for a full %dx%d grid, got %d", rows, cols, len(rings))
		}

		want := float64(rows*cols) * w * h
		got := ringArea(rings[0])
		if diff := got - want; diff < -1e-6 || diff > 1e-6 {
			t.Fatalf("expected union area %v, got %v", want, got)
		}
	})
}

// TestPropertyUnionBoundarySpacedRectsRingCount checks that rectangles
// separated by a gap each get their own ring.
func TestPropertyUnionBoundarySpacedRectsRingCount(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 6).Draw(t, "count")
		side := float64(rapid.IntRange(1, 5).Draw(t, "side"))
		gap := float64(rapid.IntRange(1, 3).Draw(t, "gap"))

		var rects []layout.Rect
		for i := 0; i < n; i++ {
			rects = append(rects, layout.Rect{X: float64(i) * (side + gap), Y: 0, Width: side, Height: side})
		}

		rings := UnionBoundary(rects)
		if len(rings) != n {
			t.Fatalf("expected %d rings for %d gapped rects, got %d", n, n, len(rings))
		}
	})
}
