package export

import (
	"bytes"
	"fmt"
	"os"
	"sort"

	svg "github.com/ajstarks/svgo"

	"github.com/archtopo/rdf2ifc/pkg/geometry"
	"github.com/archtopo/rdf2ifc/pkg/layout"
	"github.com/archtopo/rdf2ifc/pkg/topology"
)

// SVGOptions configures a per-storey floor-plan debug rendering, the
// visual companion to the JSON layout/report artifacts.
type SVGOptions struct {
	PixelsPerMeter int    // scale factor from storey-local meters to pixels
	Margin         int    // canvas margin in pixels
	ShowLabels     bool   // show space id labels
	Title          string // optional title drawn above the plan
}

// DefaultSVGOptions returns sensible defaults for a floor-plan rendering.
func DefaultSVGOptions() SVGOptions {
	return SVGOptions{
		PixelsPerMeter: 40,
		Margin:         40,
		ShowLabels:     true,
		Title:          "Storey Floor Plan",
	}
}

// ExportStoreySVG renders one storey's solved rects, walls, and doors as an
// SVG floor plan. Coordinates are storey-local (post pkg/layout.PostProcess
// re-origining), so the canvas is sized from the storey's own bounding box
// plus margin.
func ExportStoreySVG(storeyID string, topo *topology.Topology, l *layout.Layout, geo StoreyGeometry, opts SVGOptions) ([]byte, error) {
	if opts.PixelsPerMeter <= 0 {
		opts.PixelsPerMeter = 40
	}
	if opts.Margin <= 0 {
		opts.Margin = 40
	}

	type labeledRect struct {
		id   string
		rect layout.Rect
	}
	var rects []labeledRect
	maxX, maxY := 0.0, 0.0
	for _, sp := range topo.Spaces {
		if sp.StoreyID != storeyID {
			continue
		}
		p, ok := l.Placements[sp.ID]
		if !ok {
			continue
		}
		rects = append(rects, labeledRect{id: sp.ID, rect: p.Rect})
		if right := p.Rect.X + p.Rect.Width; right > maxX {
			maxX = right
		}
		if top := p.Rect.Y + p.Rect.Height; top > maxY {
			maxY = top
		}
	}
	sort.Slice(rects, func(i, j int) bool { return rects[i].id < rects[j].id })

	ppm := float64(opts.PixelsPerMeter)
	width := int(maxX*ppm) + 2*opts.Margin + 1
	height := int(maxY*ppm) + 2*opts.Margin + 60 // header band for the title

	toPx := func(x, y float64) (int, int) {
		px := opts.Margin + int(x*ppm)
		// SVG's y axis grows downward; storey-local y grows "up" the
		// footprint, so flip it within the drawable height.
		py := opts.Margin + 60 + int((maxY-y)*ppm)
		return px, py
	}

	buf := new(bytes.Buffer)
	canvas := svg.New(buf)
	canvas.Start(width, height)
	canvas.Rect(0, 0, width, height, "fill:#ffffff")

	if opts.Title != "" {
		canvas.Text(opts.Margin, 30, fmt.Sprintf("%s (storey %s)", opts.Title, storeyID), "font-size:18px;font-family:sans-serif;fill:#222")
	}

	for _, lr := range rects {
		x0, y0 := toPx(lr.rect.X, lr.rect.Y+lr.rect.Height)
		w := int(lr.rect.Width * ppm)
		h := int(lr.rect.Height * ppm)
		canvas.Rect(x0, y0, w, h, "fill:#e8f0fe;stroke:#9ab6f5;stroke-width:1")
		if opts.ShowLabels {
			cx, cy := toPx(lr.rect.X+lr.rect.Width/2, lr.rect.Y+lr.rect.Height/2)
			canvas.Text(cx, cy, lr.id, "font-size:12px;font-family:sans-serif;fill:#1a237e;text-anchor:middle")
		}
	}

	for _, wall := range geo.Walls {
		x1, y1 := toPx(wall.A.X, wall.A.Y)
		x2, y2 := toPx(wall.B.X, wall.B.Y)
		style := "stroke:#333;stroke-width:4"
		if wall.Kind == geometry.WallInterior {
			style = "stroke:#888;stroke-width:2"
		}
		canvas.Line(x1, y1, x2, y2, style)
	}

	for _, door := range geo.Doors {
		cx, cy := toPx(door.Center.X, door.Center.Y)
		canvas.Circle(cx, cy, 5, "fill:#c62828")
	}

	canvas.End()
	return buf.Bytes(), nil
}

// SaveStoreySVG renders and writes one storey's floor plan to path with
// 0644 permissions.
func SaveStoreySVG(storeyID string, topo *topology.Topology, l *layout.Layout, geo StoreyGeometry, opts SVGOptions, path string) error {
	data, err := ExportStoreySVG(storeyID, topo, l, geo, opts)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
