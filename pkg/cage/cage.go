// Package cage builds the longitudinal lattice the hull skin is lofted
// through: one nose-to-tail curve per rail height level.
package cage

import (
	"github.com/chazu/surfhull/pkg/fault"
	"github.com/chazu/surfhull/pkg/geom"
	"github.com/chazu/surfhull/pkg/outline"
	"github.com/chazu/surfhull/pkg/params"
	"github.com/chazu/surfhull/pkg/profile"
)

// DefaultHeightLevels is the number of height steps between the bottom
// and top curves of the lattice.
const DefaultHeightLevels = 16

// Lattice holds numHeightLevels+1 curves. Point i of every curve lies at
// the same station, so same-index points form loftable rungs.
type Lattice struct {
	Curves []geom.Curve
}

// Stations returns the per-curve point count.
func (l Lattice) Stations() int {
	if len(l.Curves) == 0 {
		return 0
	}
	return len(l.Curves[0])
}

// Rung returns point i of every curve, bottom to top.
func (l Lattice) Rung(i int) []geom.Point3 {
	out := make([]geom.Point3, len(l.Curves))
	for d, c := range l.Curves {
		out[d] = c[i]
	}
	return out
}

// Generator evaluates the lattice against a reference outline.
type Generator struct {
	bias    profile.RailBias
	contour profile.Contour
	height  float64
	midBias float64
	length  float64
}

// NewGenerator returns a generator using b's bias and contour presets.
func NewGenerator(b params.Board) (*Generator, error) {
	bias, err := profile.NewRailBias(b.RailStyle, b.RailMidBias)
	if err != nil {
		return nil, err
	}
	return &Generator{
		bias:    bias,
		contour: profile.NewContour(b),
		height:  b.RailHeight(),
		midBias: b.RailMidBias,
		length:  b.Length,
	}, nil
}

// Flat returns a copy of g that ignores the deck and bottom presets.
func (g *Generator) Flat() *Generator {
	cp := *g
	cp.contour = g.contour.WithoutOffsets()
	return &cp
}

// Generate builds the lattice. Pass numStations <= 0 to use one station
// per reference sample and numHeightLevels <= 0 for DefaultHeightLevels.
func (g *Generator) Generate(ref *outline.Reference, numStations, numHeightLevels int) (Lattice, error) {
	if ref.Len() == 0 {
		return Lattice{}, fault.NotReady("cage")
	}
	if numStations <= 0 {
		numStations = ref.Len()
	}
	if numHeightLevels <= 0 {
		numHeightLevels = DefaultHeightLevels
	}
	if numStations < 2 {
		return Lattice{}, fault.Degenerate("cage", fault.NoStation, "need at least 2 stations, got %d", numStations)
	}

	// Resolve every station once; all levels share the lookups.
	dz := g.length / float64(numStations-1)
	stations := make([]outline.Station, numStations)
	for i := range stations {
		st, err := ref.Sample(float64(i) * dz)
		if err != nil {
			return Lattice{}, err
		}
		stations[i] = st
	}

	h := g.height
	curves := make([]geom.Curve, numHeightLevels+1)
	for d := range curves {
		yLocal := float64(d) * h / float64(numHeightLevels)
		frac := g.bias.WidthFraction(yLocal / h)
		c := make(geom.Curve, numStations)
		for i, st := range stations {
			x := st.HalfWidth * frac
			var normX float64
			if st.HalfWidth != 0 {
				normX = x / st.HalfWidth
			}
			y := yLocal + g.contour.Offset(yLocal, normX)
			c[i] = geom.Point3{
				X: x,
				Y: y + st.CenterY - h*g.midBias,
				Z: float64(i) * dz,
			}
		}
		curves[d] = c
	}
	return Lattice{Curves: curves}, nil
}
