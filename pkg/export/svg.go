package export

import (
	"bytes"
	"fmt"
	"math"

	"honnef.co/go/curve"

	"github.com/chazu/surfhull/pkg/geom"
)

// SVGOption configures RenderSVG.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	precision   int
	strokeWidth float64
	margin      float64
}

// WithPrecision rounds coordinates to n decimal places.
func WithPrecision(n int) SVGOption { return func(r *svgRenderer) { r.precision = n } }

// WithStrokeWidth sets the line width in drawing units.
func WithStrokeWidth(w float64) SVGOption { return func(r *svgRenderer) { r.strokeWidth = w } }

// WithMargin pads the view box on every side.
func WithMargin(m float64) SVGOption { return func(r *svgRenderer) { r.margin = m } }

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{precision: 3, strokeWidth: 1, margin: 10}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

func (r svgRenderer) round(pts []geom.Point2) []geom.Point2 {
	f := math.Pow(10, float64(r.precision))
	out := make([]geom.Point2, len(pts))
	for i, p := range pts {
		out[i] = geom.Pt(math.Round(p.X*f)/f, math.Round(p.Y*f)/f)
	}
	return out
}

// RenderSVG writes d as a standalone SVG document. The drawing's y axis
// points up; it is flipped inside the document.
func RenderSVG(d Drawing, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)

	min, max, ok := d.Bounds()
	if !ok {
		min, max = geom.Point2{}, geom.Point2{}
	}
	x0, y0 := min.X-r.margin, -(max.Y + r.margin)
	w := max.X - min.X + 2*r.margin
	h := max.Y - min.Y + 2*r.margin

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%.3f %.3f %.3f %.3f" width="%.0f" height="%.0f">`+"\n",
		x0, y0, w, h, w, h)
	buf.WriteString(`  <g transform="scale(1,-1)">` + "\n")
	for _, l := range d.Layers {
		if len(l.Points) < 2 {
			continue
		}
		path := geom.Path(r.round(l.Points), l.Closed).SVG(curve.SVGOptions{})
		fmt.Fprintf(&buf, `    <path id="%s" d="%s" fill="none" stroke="%s" stroke-width="%g"/>`+"\n",
			l.Name, path, l.Color, r.strokeWidth)
	}
	buf.WriteString("  </g>\n")
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}
