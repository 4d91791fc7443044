package export

import (
	"context"
	"fmt"
	"sort"

	"github.com/archtopo/rdf2ifc/pkg/geometry"
	"github.com/archtopo/rdf2ifc/pkg/layout"
	"github.com/archtopo/rdf2ifc/pkg/topology"
)

// StoreyGeometry bundles the geometry batches derived for one storey,
// keyed by storey id by the caller.
type StoreyGeometry struct {
	Walls []geometry.WallSegment
	Slabs []geometry.SlabPolygon
	Roofs []geometry.Roof
	Doors []geometry.Door
}

// IFCWriter is the narrow consumer-side interface this module's export
// adapter drives. A concrete implementation, backed by an external
// buildingSMART-IFC writer library, is assumed but never imported here;
// RecordingWriter below is the test double this package ships instead.
type IFCWriter interface {
	WriteStorey(ctx context.Context, s topology.Storey) error
	WriteSpace(ctx context.Context, sp topology.Space, rect layout.Rect) error
	WriteSlab(ctx context.Context, storeyID string, slab geometry.SlabPolygon) error
	WriteRoof(ctx context.Context, storeyID string, roof geometry.Roof) error
	WriteWall(ctx context.Context, storeyID string, wall geometry.WallSegment) error
	WriteDoor(ctx context.Context, storeyID string, door geometry.Door) error
	Finish(ctx context.Context) error
}

// Run hands the solved topology, layout, and geometry off to w, in
// deterministic order: storeys sorted by elevation, each storey's spaces
// (in local coordinates relative to the storey, since pkg/layout.PostProcess
// already re-origins every storey to (0,0), so no double translation
// happens here), then that storey's slabs, roofs, walls, and doors. Each element's
// spatial-structure container is the storey it belongs to. Run is the only
// place in this module that calls an IFCWriter method, and it stops at the
// first error Finish or any Write* call returns.
func Run(ctx context.Context, topo *topology.Topology, l *layout.Layout, geo map[string]StoreyGeometry, w IFCWriter) error {
	storeys := make([]topology.Storey, len(topo.Storeys))
	copy(storeys, topo.Storeys)
	sort.Slice(storeys, func(i, j int) bool {
		if storeys[i].Elevation != storeys[j].Elevation {
			return storeys[i].Elevation < storeys[j].Elevation
		}
		return storeys[i].ID < storeys[j].ID
	})

	spacesByStorey := make(map[string][]topology.Space)
	for _, sp := range topo.Spaces {
		spacesByStorey[sp.StoreyID] = append(spacesByStorey[sp.StoreyID], sp)
	}
	for _, spaces := range spacesByStorey {
		sort.Slice(spaces, func(i, j int) bool { return spaces[i].ID < spaces[j].ID })
	}

	for _, st := range storeys {
		if err := w.WriteStorey(ctx, st); err != nil {
			return fmt.Errorf("export: writing storey %q: %w", st.ID, err)
		}

		for _, sp := range spacesByStorey[st.ID] {
			placement, ok := l.Placements[sp.ID]
			if !ok {
				continue
			}
			if err := w.WriteSpace(ctx, sp, placement.Rect); err != nil {
				return fmt.Errorf("export: writing space %q: %w", sp.ID, err)
			}
		}

		g := geo[st.ID]
		for _, slab := range g.Slabs {
			if err := w.WriteSlab(ctx, st.ID, slab); err != nil {
				return fmt.Errorf("export: writing slab on storey %q: %w", st.ID, err)
			}
		}
		for _, roof := range g.Roofs {
			if err := w.WriteRoof(ctx, st.ID, roof); err != nil {
				return fmt.Errorf("export: writing roof on storey %q: %w", st.ID, err)
			}
		}
		for _, wall := range g.Walls {
			if err := w.WriteWall(ctx, st.ID, wall); err != nil {
				return fmt.Errorf("export: writing wall on storey %q: %w", st.ID, err)
			}
		}
		for _, door := range g.Doors {
			if err := w.WriteDoor(ctx, st.ID, door); err != nil {
				return fmt.Errorf("export: writing door on storey %q: %w", st.ID, err)
			}
		}
	}

	if err := w.Finish(ctx); err != nil {
		return fmt.Errorf("export: finishing model: %w", err)
	}
	return nil
}
