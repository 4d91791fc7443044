package pipeline

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/archtopo/rdf2ifc/pkg/detrand"
	"github.com/archtopo/rdf2ifc/pkg/diag"
	"github.com/archtopo/rdf2ifc/pkg/export"
	"github.com/archtopo/rdf2ifc/pkg/geometry"
	"github.com/archtopo/rdf2ifc/pkg/layout"
	"github.com/archtopo/rdf2ifc/pkg/pipelinecfg"
	"github.com/archtopo/rdf2ifc/pkg/pipelinelog"
	"github.com/archtopo/rdf2ifc/pkg/topology"
	"github.com/archtopo/rdf2ifc/pkg/vocab"
)

// Result is the complete output of one pipeline run: the normalized
// topology, the solved layout, the per-storey geometry batches, the
// layout conformance report, and every diagnostic accumulated along the
// way (the pipeline's own plus every stage's).
type Result struct {
	Topology     *topology.Topology
	Layout       *layout.Layout
	Geometry     map[string]export.StoreyGeometry // storey id -> geometry
	LayoutReport layout.Report
	Diagnostics  diag.List
}

// Run executes the full pipeline: extract and validate the topology,
// solve the layout (the CP solver falls back to HEURISTIC per storey when
// its budget runs out), post-process and validate it, derive
// walls/slabs/roofs/doors per storey, and hand the result to writer in
// deterministic export order. writer may be nil, in which case Run stops
// after producing Result without exporting anything (useful for tests
// that only care about the geometry).
func Run(ctx context.Context, store topology.TripleStore, reg *vocab.Registry, cfg *pipelinecfg.Config, writer export.IFCWriter) (*Result, error) {
	if reg == nil {
		reg = vocab.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, NewError(KindInputInvalid, "invalid configuration").WithCause(err)
	}

	pipelinelog.Info("pipeline: extracting topology")
	topo, extractDiags := topology.Extract(store, reg)
	var diags diag.List
	diags = append(diags, extractDiags...)

	pipelinelog.Info("pipeline: validating topology")
	diags = append(diags, topology.Validate(topo)...)
	diags = append(diags, topology.ValidateContainment(store, reg)...)
	if errs := diags.Errors(); len(errs) > 0 {
		return nil, NewError(KindTopologyInconsistent, fmt.Sprintf("%d topology error(s) found", len(errs))).
			WithContext("errors", errs)
	}

	layoutResult, layoutDiags, err := solveLayout(ctx, topo, cfg)
	if err != nil {
		return nil, err
	}
	diags = append(diags, layoutDiags...)

	processed := layout.PostProcess(layoutResult, topo, cfg.GridUnit, cfg.SingleStoreyMode)
	if cfg.SingleStoreyMode {
		topo = singleStoreyView(topo)
	}

	pipelinelog.Info("pipeline: validating layout")
	report, validateDiags := layout.Validate(processed, topo, cfg.AreaSlackFactor)
	diags = append(diags, validateDiags...)

	pipelinelog.Info("pipeline: synthesizing geometry")
	geo, geoDiags := synthesizeGeometry(topo, processed, cfg)
	diags = append(diags, geoDiags...)

	result := &Result{
		Topology:     topo,
		Layout:       processed,
		Geometry:     geo,
		LayoutReport: report,
		Diagnostics:  diags,
	}

	if writer != nil {
		pipelinelog.Info("pipeline: exporting to IFC writer")
		if err := export.Run(ctx, topo, processed, geo, writer); err != nil {
			return result, NewError(KindExportFailure, "IFC export failed").WithCause(err)
		}
	}

	return result, nil
}

// singleStoreyView narrows a topology to its lowest storey (by Order),
// matching what PostProcess keeps in single-storey mode: the retained
// storey's elevation is normalized to zero while its id and name are
// preserved, every other storey's spaces are dropped, and edges touching a
// dropped space go with them. Validating and exporting against this view
// keeps the dropped spaces from being reported as unplaced.
func singleStoreyView(topo *topology.Topology) *topology.Topology {
	if len(topo.Storeys) == 0 {
		return topo
	}
	lowest := topo.Storeys[0]
	for _, st := range topo.Storeys[1:] {
		if st.Order < lowest.Order {
			lowest = st
		}
	}
	lowest.Elevation = 0
	lowest.Order = 0

	out := &topology.Topology{Storeys: []topology.Storey{lowest}}
	kept := make(map[string]bool)
	for _, sp := range topo.Spaces {
		if sp.StoreyID == lowest.ID {
			out.Spaces = append(out.Spaces, sp)
			kept[sp.ID] = true
		}
	}
	for _, e := range topo.Adjacencies {
		if kept[e.A] && kept[e.B] {
			out.Adjacencies = append(out.Adjacencies, e)
		}
	}
	for _, e := range topo.Connections {
		if kept[e.A] && kept[e.B] {
			out.Connections = append(out.Connections, e)
		}
	}
	return out
}

// solveLayout runs the configured solver. The CP solver (pkg/layout.CPSolver)
// already falls back to the heuristic solver per storey when its own
// candidate/time budget is exhausted, recording a LAYOUT_CP_FALLBACK
// diagnostic each time it does, so an infeasible layout is always
// recovered there; the pipeline does not add a second, coarser-grained
// retry on top.
func solveLayout(ctx context.Context, topo *topology.Topology, cfg *pipelinecfg.Config) (*layout.Layout, diag.List, error) {
	solverCfg := layout.SolverConfig{
		DefaultTargetArea:        cfg.DefaultTargetArea,
		MinSideLength:            cfg.MinSideLength,
		GridUnit:                 cfg.GridUnit,
		AreaSlackFactor:          cfg.AreaSlackFactor,
		TimeLimit:                cfg.SolverTimeLimitSec,
		HeuristicMaxIterPerSpace: cfg.HeuristicMaxIterPerSpace,
	}

	solver, err := layout.Get(string(cfg.Solver))
	if err != nil {
		return nil, nil, NewError(KindInputInvalid, "unknown solver").WithCause(err).WithContext("solver", cfg.Solver)
	}

	solveCtx := ctx
	var cancel context.CancelFunc
	if cfg.Solver == pipelinecfg.SolverCP {
		solveCtx, cancel = context.WithTimeout(ctx, time.Duration(cfg.SolverTimeLimitSec)*time.Second)
		defer cancel()
	}

	rng := detrand.New(cfg.Seed, solver.Name(), cfg.Hash())
	result, diags := solver.Solve(solveCtx, topo, solverCfg, rng)
	for _, d := range diags {
		if d.Code == "LAYOUT_CP_FALLBACK" {
			pipelinelog.Warn("pipeline: %s", d.Message)
		}
	}

	return result, diags, nil
}

// synthesizeGeometry derives walls, slabs, roofs, and doors for every
// storey that has at least one placed space.
func synthesizeGeometry(topo *topology.Topology, l *layout.Layout, cfg *pipelinecfg.Config) (map[string]export.StoreyGeometry, diag.List) {
	var diags diag.List
	out := make(map[string]export.StoreyGeometry)

	byStorey := make(map[string]map[string]layout.Placement)
	for spaceID, p := range l.Placements {
		if byStorey[p.StoreyID] == nil {
			byStorey[p.StoreyID] = make(map[string]layout.Placement)
		}
		byStorey[p.StoreyID][spaceID] = p
	}

	connectionsByStorey := make(map[string][]topology.Edge)
	for _, c := range topo.Connections {
		pa, okA := l.Placements[c.A]
		if !okA {
			continue
		}
		connectionsByStorey[pa.StoreyID] = append(connectionsByStorey[pa.StoreyID], c)
	}

	storeyIDs := make([]string, 0, len(byStorey))
	for id := range byStorey {
		storeyIDs = append(storeyIDs, id)
	}
	sort.Strings(storeyIDs)

	for _, storeyID := range storeyIDs {
		placements := byStorey[storeyID]
		st, ok := topo.StoreyByID(storeyID)
		elevation := 0.0
		if ok {
			elevation = st.Elevation
		}

		walls, wallDiags := geometry.ExtractWalls(storeyID, placements, cfg.WallThickness, cfg.CeilingHeight)
		diags = append(diags, wallDiags...)

		slabs, roofs := geometry.ExtractSlabsAndRoofs(storeyID, placements, cfg.SlabThickness, elevation, cfg.CeilingHeight)

		doors, doorDiags := geometry.ExtractDoors(storeyID, connectionsByStorey[storeyID], placements, cfg.DoorWidth, cfg.DoorHeight)
		diags = append(diags, doorDiags...)

		out[storeyID] = export.StoreyGeometry{Walls: walls, Slabs: slabs, Roofs: roofs, Doors: doors}
	}

	return out, diags
}
