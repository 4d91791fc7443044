// Package layout places spaces onto rectangular footprints on their
// storey, via one of two interchangeable Solver implementations
// (HEURISTIC or CP), then post-processes and validates the result.
package layout

import (
	"context"
	"fmt"

	"github.com/archtopo/rdf2ifc/pkg/detrand"
	"github.com/archtopo/rdf2ifc/pkg/diag"
	"github.com/archtopo/rdf2ifc/pkg/topology"
)

// Rect is an axis-aligned footprint in storey-local coordinates, in
// meters. Width and Height are always positive once placed.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// Area returns the rectangle's area.
func (r Rect) Area() float64 { return r.Width * r.Height }

// Overlaps reports whether r and other share any positive area.
func (r Rect) Overlaps(other Rect) bool {
	return r.X < other.X+other.Width && other.X < r.X+r.Width &&
		r.Y < other.Y+other.Height && other.Y < r.Y+r.Height
}

// Placement is a solved footprint for one space.
type Placement struct {
	SpaceID  string
	StoreyID string
	Rect     Rect
}

// Layout is the complete solved set of placements for every space in a
// Topology, one Placement per space.
type Layout struct {
	Placements map[string]Placement
}

// NewLayout creates an empty Layout.
func NewLayout() *Layout {
	return &Layout{Placements: make(map[string]Placement)}
}

// Solver is the shared contract both layout algorithms implement, so the
// pipeline can swap one for the other purely by configuration.
type Solver interface {
	// Solve assigns a Rect to every space in topo. It must be deterministic
	// given the same topology, config, and random source. ctx governs the
	// solver's time budget; a solver that cannot finish within ctx's
	// deadline must return what it has plus a diagnostic, not block past it.
	Solve(ctx context.Context, topo *topology.Topology, cfg SolverConfig, rng *detrand.Source) (*Layout, diag.List)

	// Name returns the solver's registry identifier.
	Name() string
}

// SolverConfig carries the subset of pipelinecfg.Config a Solver needs,
// kept separate so pkg/layout does not import pkg/pipelinecfg.
type SolverConfig struct {
	DefaultTargetArea float64
	MinSideLength     float64
	GridUnit          float64
	AreaSlackFactor   float64
	TimeLimit         int // seconds

	HeuristicMaxIterPerSpace int
}

var registry = make(map[string]func() Solver)

// Register adds a solver factory under name. Panics on duplicate
// registration (and on a nil factory), so a name clash fails at init time.
func Register(name string, factory func() Solver) {
	if factory == nil {
		panic(fmt.Sprintf("layout: Register factory for %s is nil", name))
	}
	if _, exists := registry[name]; exists {
		panic(fmt.Sprintf("layout: Register called twice for %s", name))
	}
	registry[name] = factory
}

// Get retrieves a solver by its registered name.
func Get(name string) (Solver, error) {
	factory, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("layout: solver %q not registered", name)
	}
	return factory(), nil
}

// List returns the names of all registered solvers.
func List() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	return names
}
