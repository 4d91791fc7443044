// Package export is the pipeline's export adapter: it hands the solved
// topology, layout, and geometry off to an external IFC writer, in the
// deterministic order storeys, spaces, slabs, roofs, walls, doors, and
// depends on nothing in the core beyond the neutral data model of
// pkg/topology, pkg/layout, and pkg/geometry.
//
// No concrete IFCWriter ships outside tests; RecordingWriter is a test
// double standing in for the assumed external buildingSMART-IFC writer
// library. The JSON and SVG exporters in this package produce the optional
// debug artifacts instead.
package export
