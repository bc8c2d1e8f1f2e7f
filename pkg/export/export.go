// Package export renders hull curves as 2D previews: SVG documents
// built from curve.BezPath data and PNG images drawn with gg.
package export

import (
	"math"

	"github.com/chazu/surfhull/pkg/geom"
	"github.com/chazu/surfhull/pkg/outline"
	"github.com/chazu/surfhull/pkg/rail"
)

// Layer is one polyline of a drawing.
type Layer struct {
	Name   string
	Points []geom.Point2
	Closed bool
	Color  string // hex, e.g. "#1f77b4"
}

// Drawing is a set of layers in a y-up coordinate system.
type Drawing struct {
	Layers []Layer
}

// Bounds returns the extent of all layer points. ok is false for a
// drawing without points.
func (d Drawing) Bounds() (min, max geom.Point2, ok bool) {
	min = geom.Pt(math.Inf(1), math.Inf(1))
	max = geom.Pt(math.Inf(-1), math.Inf(-1))
	for _, l := range d.Layers {
		for _, p := range l.Points {
			min = geom.Pt(math.Min(min.X, p.X), math.Min(min.Y, p.Y))
			max = geom.Pt(math.Max(max.X, p.X), math.Max(max.Y, p.Y))
			ok = true
		}
	}
	if !ok {
		return geom.Point2{}, geom.Point2{}, false
	}
	return min, max, true
}

const (
	colorOutline = "#1f3a5f"
	colorCenter  = "#9a9a9a"
	colorRocker  = "#b5442b"
	colorSection = "#2b7a4b"
	colorShell   = "#6b4ca0"
)

// Plan is the top view of the board: length runs along x from the nose,
// width along y. The outline is closed across both halves.
func Plan(ref *outline.Reference) Drawing {
	pts := ref.Points()
	loop := make([]geom.Point2, 0, 2*len(pts))
	for _, p := range pts {
		loop = append(loop, geom.Pt(p.Z, p.X))
	}
	for i := len(pts) - 1; i >= 0; i-- {
		loop = append(loop, geom.Pt(pts[i].Z, -pts[i].X))
	}
	d := Drawing{Layers: []Layer{
		{Name: "outline", Points: geom.Dedupe(loop, 1e-9), Closed: true, Color: colorOutline},
	}}
	if ref.Len() > 0 {
		d.Layers = append(d.Layers, Layer{
			Name:   "centerline",
			Points: []geom.Point2{geom.Pt(0, 0), geom.Pt(ref.Length(), 0)},
			Color:  colorCenter,
		})
	}
	return d
}

// Rocker is the side view of a centerline path: z along x, height
// along y.
func Rocker(path geom.Curve) Drawing {
	pts := make([]geom.Point2, len(path))
	for i, p := range path {
		pts[i] = geom.Pt(p.Z, p.Y)
	}
	return Drawing{Layers: []Layer{{Name: "rocker", Points: pts, Color: colorRocker}}}
}

// Section draws a rail section as one closed loop, with the station's
// centerline marker when it has one.
func Section(s rail.Section) Drawing {
	d := Drawing{Layers: []Layer{
		{Name: "section", Points: s.Closed(), Closed: true, Color: colorSection},
	}}
	if s.Marker != nil && len(s.Ascending) > 0 {
		top := s.Ascending[len(s.Ascending)-1]
		d.Layers = append(d.Layers, Layer{
			Name:   "marker",
			Points: []geom.Point2{*s.Marker, geom.Pt(0, top.Y)},
			Color:  colorCenter,
		})
	}
	return d
}

// Shell draws the outer and inner skin loops of a shell section.
func Shell(s rail.Shell) Drawing {
	closeLoop := func(half []geom.Point2) []geom.Point2 {
		loop := append([]geom.Point2(nil), half...)
		loop = append(loop, geom.Mirror(geom.Reverse(half))...)
		return geom.Dedupe(loop, 1e-9)
	}
	return Drawing{Layers: []Layer{
		{Name: "outer", Points: closeLoop(s.Outer), Closed: true, Color: colorShell},
		{Name: "inner", Points: closeLoop(s.Inner), Closed: true, Color: colorSection},
	}}
}
