package geometry

import (
	"fmt"

	"github.com/archtopo/rdf2ifc/pkg/diag"
	"github.com/archtopo/rdf2ifc/pkg/layout"
	"github.com/archtopo/rdf2ifc/pkg/topology"
)

// minJamb is the clearance kept between a door's edge and the end of the
// wall segment it sits in, so a door never touches a corner.
const minJamb = 0.10

// ExtractDoors places a Door for every connection edge whose endpoints
// share a boundary segment long enough to hold one, on the given storey's
// placements. A connection whose rectangles don't share enough boundary is
// dropped with a warning, never a fatal error.
func ExtractDoors(storeyID string, connections []topology.Edge, placements map[string]layout.Placement, doorWidth, doorHeight float64) ([]Door, diag.List) {
	var diags diag.List
	var doors []Door

	for _, conn := range connections {
		pa, okA := placements[conn.A]
		pb, okB := placements[conn.B]
		if !okA || !okB {
			continue // endpoint not on this storey
		}

		seg, ok := sharedBoundary(storeyID, conn.A, pa.Rect, conn.B, pb.Rect, 0, 0)
		if !ok {
			diags = append(diags, diag.Warning("GEOMETRY_DOOR_NO_SHARED_BOUNDARY",
				fmt.Sprintf("spaces %q and %q have a connection edge but share no boundary; door dropped", conn.A, conn.B),
				conn.A, conn.B))
			continue
		}

		length := seg.Length()
		if length < doorWidth {
			diags = append(diags, diag.Warning("GEOMETRY_DOOR_BOUNDARY_TOO_SHORT",
				fmt.Sprintf("spaces %q/%q share only %.2fm, less than door width %.2fm; door dropped", conn.A, conn.B, length, doorWidth),
				conn.A, conn.B))
			continue
		}

		width := doorWidth
		if clipped := length - 2*minJamb; clipped < width {
			if clipped <= 0 {
				diags = append(diags, diag.Warning("GEOMETRY_DOOR_NO_JAMB_CLEARANCE",
					fmt.Sprintf("spaces %q/%q shared boundary too short for door plus jamb clearance; door dropped", conn.A, conn.B),
					conn.A, conn.B))
				continue
			}
			width = clipped
		}

		vertical := seg.A.X == seg.B.X
		center := Point{(seg.A.X + seg.B.X) / 2, (seg.A.Y + seg.B.Y) / 2}

		doors = append(doors, Door{
			StoreyID: storeyID,
			SpaceA:   conn.A, SpaceB: conn.B,
			Center: center, Width: width, Height: doorHeight,
			Vertical: vertical,
		})
	}

	return doors, diags
}
