// Package rail generates rail cross-sections: the edge profile of the
// board at a longitudinal station, for the hull itself and for the outer
// shell skin.
package rail

import (
	"errors"
	"math"

	"github.com/chazu/surfhull/pkg/fault"
	"github.com/chazu/surfhull/pkg/geom"
	"github.com/chazu/surfhull/pkg/outline"
	"github.com/chazu/surfhull/pkg/params"
	"github.com/chazu/surfhull/pkg/profile"
)

// DefaultDivisions is the height step count of a hull rail section.
const DefaultDivisions = 30

// Generator builds rail sections from a board's bias and contour.
// Divisions and Shrink may be changed after construction; all other
// fields are derived from the board.
type Generator struct {
	Bias      profile.RailBias
	Contour   profile.Contour
	Divisions int
	Shrink    float64 // radial inset toward the section origin

	height  float64
	midBias float64
	length  float64
	count   int
}

// NewGenerator returns a generator with DefaultDivisions and no shrink.
func NewGenerator(b params.Board) (*Generator, error) {
	bias, err := profile.NewRailBias(b.RailStyle, b.RailMidBias)
	if err != nil {
		return nil, err
	}
	return &Generator{
		Bias:      bias,
		Contour:   profile.NewContour(b),
		Divisions: DefaultDivisions,
		height:    b.RailHeight(),
		midBias:   b.RailMidBias,
		length:    b.Length,
		count:     b.Stations(),
	}, nil
}

// Height returns the rail height.
func (g *Generator) Height() float64 { return g.height }

// Point returns height step j of the local profile for halfWidth. The
// profile is centred vertically on y = 0 before the shrink is applied.
func (g *Generator) Point(halfWidth float64, j int) geom.Point2 {
	h := g.height
	yLocal := float64(j) * h / float64(g.Divisions)
	x := halfWidth * g.Bias.WidthFraction(yLocal/h)
	var normX float64
	if halfWidth != 0 {
		normX = x / halfWidth
	}
	y := yLocal + g.Contour.Offset(yLocal, normX) - h/2
	return inset(geom.Pt(x, y), g.Shrink)
}

// inset moves p toward the origin along its own radius by d. The origin
// itself is left in place.
func inset(p geom.Point2, d float64) geom.Point2 {
	if d == 0 {
		return p
	}
	mag := math.Hypot(p.X, p.Y)
	if mag == 0 {
		return p
	}
	return geom.Pt(p.X-d*p.X/mag, p.Y-d*p.Y/mag)
}

// Edges returns the local profile for halfWidth in ascending height
// order (bottom center to top center) and in descending order.
func (g *Generator) Edges(halfWidth float64) (asc, desc []geom.Point2) {
	asc = make([]geom.Point2, g.Divisions+1)
	for j := range asc {
		asc[j] = g.Point(halfWidth, j)
	}
	return asc, geom.Reverse(asc)
}

// AlignOffset is the vertical shift that registers a local profile to
// the reference centerline at st.
func (g *Generator) AlignOffset(st outline.Station) float64 {
	return st.CenterY - g.height*g.midBias + g.height/2
}

// Section is a rail cross-section at one station.
type Section struct {
	Station    outline.Station
	Ascending  []geom.Point2 // bottom center to top center
	Descending []geom.Point2 // top center to bottom center
	Offset     float64       // vertical shift already applied to both edges
	Marker     *geom.Point2  // centerline point, set on the end stations
}

// Mirrored returns the section reflected across x = 0.
func (s Section) Mirrored() Section {
	s.Ascending = geom.Mirror(s.Ascending)
	s.Descending = geom.Mirror(s.Descending)
	return s
}

// Closed returns the full section as one loop: the ascending edge on
// x >= 0 followed by the mirrored descending edge.
func (s Section) Closed() []geom.Point2 {
	loop := make([]geom.Point2, 0, len(s.Ascending)+len(s.Descending))
	loop = append(loop, s.Ascending...)
	loop = append(loop, geom.Mirror(s.Descending)...)
	return geom.Dedupe(loop, 1e-9)
}

// Generate resolves zQuery against ref and returns the local,
// unaligned section there.
func (g *Generator) Generate(ref *outline.Reference, zQuery float64) (Section, error) {
	if g.Divisions <= 0 {
		return Section{}, fault.Degenerate("rail", fault.NoStation, "divisions must be positive, got %d", g.Divisions)
	}
	st, err := ref.Sample(zQuery)
	if err != nil {
		return Section{}, err
	}
	asc, desc := g.Edges(st.HalfWidth)
	return Section{Station: st, Ascending: asc, Descending: desc}, nil
}

// Stations returns one aligned section per reference station spacing,
// ceil(length/minSegmentLength)+1 in all. The first and last carry a
// centerline marker.
func (g *Generator) Stations(ref *outline.Reference) ([]Section, error) {
	n := g.count
	dz := g.length / float64(n-1)
	out := make([]Section, 0, n)
	for i := 0; i < n; i++ {
		s, err := g.Generate(ref, float64(i)*dz)
		if err != nil {
			var fe *fault.Error
			if errors.As(err, &fe) && fe.Kind == fault.DegenerateGeometry {
				fe.Station = i
			}
			return nil, err
		}
		s.Offset = g.AlignOffset(s.Station)
		s.Ascending = geom.ShiftY(s.Ascending, s.Offset)
		s.Descending = geom.ShiftY(s.Descending, s.Offset)
		if i == 0 || i == n-1 {
			m := geom.Pt(0, s.Station.CenterY)
			s.Marker = &m
		}
		out = append(out, s)
	}
	return out, nil
}
