package export

import (
	"context"

	"github.com/google/uuid"

	"github.com/archtopo/rdf2ifc/pkg/geometry"
	"github.com/archtopo/rdf2ifc/pkg/layout"
	"github.com/archtopo/rdf2ifc/pkg/topology"
)

// RecordedCall is one IFCWriter method invocation captured by
// RecordingWriter, in call order.
type RecordedCall struct {
	Kind     string // "storey", "space", "slab", "roof", "wall", "door", "finish"
	StoreyID string
	GlobalID string // a synthetic GlobalId-like identifier, minted once per call
	Payload  any    // the topology.Storey / topology.Space / geometry.* value written
}

// RecordingWriter is an IFCWriter test double that appends every call it
// receives instead of talking to a real IFC writer library, for tests that
// want to assert on what Run would have handed off. It mints a fresh
// uuid-based GlobalID for each recorded element, standing in for the
// GlobalId a real IFC writer would assign; space and storey ids themselves
// are always the caller's original values, never rewritten.
type RecordingWriter struct {
	Calls    []RecordedCall
	Finished bool
}

// NewRecordingWriter constructs an empty RecordingWriter.
func NewRecordingWriter() *RecordingWriter {
	return &RecordingWriter{}
}

func (w *RecordingWriter) record(kind, storeyID string, payload any) {
	w.Calls = append(w.Calls, RecordedCall{
		Kind:     kind,
		StoreyID: storeyID,
		GlobalID: uuid.New().String(),
		Payload:  payload,
	})
}

func (w *RecordingWriter) WriteStorey(_ context.Context, s topology.Storey) error {
	w.record("storey", s.ID, s)
	return nil
}

func (w *RecordingWriter) WriteSpace(_ context.Context, sp topology.Space, rect layout.Rect) error {
	w.record("space", sp.StoreyID, struct {
		Space topology.Space
		Rect  layout.Rect
	}{sp, rect})
	return nil
}

func (w *RecordingWriter) WriteSlab(_ context.Context, storeyID string, slab geometry.SlabPolygon) error {
	w.record("slab", storeyID, slab)
	return nil
}

func (w *RecordingWriter) WriteRoof(_ context.Context, storeyID string, roof geometry.Roof) error {
	w.record("roof", storeyID, roof)
	return nil
}

func (w *RecordingWriter) WriteWall(_ context.Context, storeyID string, wall geometry.WallSegment) error {
	w.record("wall", storeyID, wall)
	return nil
}

func (w *RecordingWriter) WriteDoor(_ context.Context, storeyID string, door geometry.Door) error {
	w.record("door", storeyID, door)
	return nil
}

func (w *RecordingWriter) Finish(_ context.Context) error {
	w.Finished = true
	w.record("finish", "", nil)
	return nil
}

// CountKind returns how many recorded calls have the given Kind.
func (w *RecordingWriter) CountKind(kind string) int {
	n := 0
	for _, c := range w.Calls {
		if c.Kind == kind {
			n++
		}
	}
	return n
}
