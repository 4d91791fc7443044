package layout

import (
	"context"
	"testing"

	"github.com/archtopo/rdf2ifc/pkg/detrand"
)

func TestCPSolverPlacesEverySpace(t *testing.T) {
	topo := chainTopology(5)
	rng := detrand.New(1, "layout_cp", []byte("cfg"))

	solver := NewCPSolver()
	l, diags := solver.Solve(context.Background(), topo, testSolverConfig(), rng)
	if diags.HasErrors() {
		t.Fatalf("unexpected errors: %v", diags.Errors())
	}
	if len(l.Placements) != len(topo.Spaces) {
		t.Fatalf("expected %d placements, got %d", len(topo.Spaces), len(l.Placements))
	}
}

func TestCPSolverNoOverlaps(t *testing.T) {
	topo := chainTopology(12)
	rng := detrand.New(2, "layout_cp", []byte("cfg"))

	l, _ := NewCPSolver().Solve(context.Background(), topo, testSolverConfig(), rng)
	report, diags := Validate(l, topo, 1.15)
	if report.OverlapCount != 0 {
		t.Errorf("expected no overlaps, got %d: %v", report.OverlapCount, diags.Errors())
	}
}

func TestCPSolverAdjacentSpacesTouch(t *testing.T) {
	topo := chainTopology(4)
	rng := detrand.New(3, "layout_cp", []byte("cfg"))

	l, _ := NewCPSolver().Solve(context.Background(), topo, testSolverConfig(), rng)
	report, _ := Validate(l, topo, 1.15)
	if report.AdjacencySatisfied != report.AdjacencyTotal {
		t.Errorf("expected every adjacency edge satisfied, got %d/%d", report.AdjacencySatisfied, report.AdjacencyTotal)
	}
}
