package rail

import (
	"math"

	polyclip "github.com/akavel/polyclip-go"

	"github.com/chazu/surfhull/pkg/fault"
	"github.com/chazu/surfhull/pkg/geom"
	"github.com/chazu/surfhull/pkg/outline"
)

// Shell section constants.
const (
	ShellDivisions   = 8
	widestSearchStep = 100
)

// ShellGenerator builds the outer skin sections: a coarse rail curve and
// an inner curve inset radially by the shell thickness.
type ShellGenerator struct {
	rail      *Generator
	thickness float64
}

// NewShellGenerator derives a shell generator from g. g is copied, so
// later changes to g do not affect the shell.
func NewShellGenerator(g *Generator, thickness float64) *ShellGenerator {
	cp := *g
	cp.Divisions = ShellDivisions
	cp.Shrink = 0
	return &ShellGenerator{rail: &cp, thickness: thickness}
}

// Shell is the outer and inner skin curve at one station, both on the
// x >= 0 half, ascending in height.
type Shell struct {
	Station outline.Station
	Outer   []geom.Point2
	Inner   []geom.Point2
	Offset  float64
	Center  float64 // centerline height with the widest point aligned to it
	Marker  *geom.Point2
}

// widestY returns the local height at which the bias reaches its widest
// point, contour applied and centred on y = 0.
func (s *ShellGenerator) widestY() float64 {
	g := s.rail
	h := g.height
	var best, bestT float64
	for i := 0; i <= widestSearchStep; i++ {
		t := float64(i) / widestSearchStep
		if w := math.Abs(g.Bias.WidthFraction(t)); w > best {
			best, bestT = w, t
		}
	}
	yLocal := bestT * h
	n := g.Bias.WidthFraction(bestT)
	return yLocal + g.Contour.Offset(yLocal, n) - h/2
}

// Generate returns the aligned shell section nearest zQuery.
func (s *ShellGenerator) Generate(ref *outline.Reference, zQuery float64) (Shell, error) {
	st, err := ref.Sample(zQuery)
	if err != nil {
		return Shell{}, err
	}
	g := s.rail
	outer, _ := g.Edges(st.HalfWidth)
	inner := make([]geom.Point2, len(outer))
	var maxY float64
	for i, p := range outer {
		inner[i] = inset(p, s.thickness)
		maxY = math.Max(maxY, p.Y)
	}

	center := st.CenterY - (s.widestY() - g.height/2)
	off := center - maxY
	return Shell{
		Station: st,
		Outer:   geom.ShiftY(outer, off),
		Inner:   geom.ShiftY(inner, off),
		Offset:  off,
		Center:  center,
	}, nil
}

// Stations returns one shell section per rail station.
func (s *ShellGenerator) Stations(ref *outline.Reference) ([]Shell, error) {
	n := s.rail.count
	dz := s.rail.length / float64(n-1)
	out := make([]Shell, 0, n)
	for i := 0; i < n; i++ {
		sh, err := s.Generate(ref, float64(i)*dz)
		if err != nil {
			return nil, err
		}
		if i == 0 || i == n-1 {
			m := geom.Pt(0, sh.Center)
			sh.Marker = &m
		}
		out = append(out, sh)
	}
	return out, nil
}

// Wall is the region between the closed outer and inner skin loops.
type Wall struct {
	Contours [][]geom.Point2
	Area     float64
}

// closeHalf turns an ascending half-profile into a symmetric loop.
func closeHalf(half []geom.Point2) []geom.Point2 {
	loop := append([]geom.Point2{}, half...)
	loop = append(loop, geom.Reverse(geom.Mirror(half))...)
	return geom.Dedupe(loop, 1e-9)
}

func toContour(pts []geom.Point2) polyclip.Contour {
	c := make(polyclip.Contour, len(pts))
	for i, p := range pts {
		c[i] = polyclip.Point{X: p.X, Y: p.Y}
	}
	return c
}

func fromContour(c polyclip.Contour) []geom.Point2 {
	out := make([]geom.Point2, len(c))
	for i, p := range c {
		out[i] = geom.Pt(p.X, p.Y)
	}
	return out
}

// Wall subtracts the inner loop from the outer loop. Contours lying
// inside another contour of the result count as holes in Area.
func (s Shell) Wall() (Wall, error) {
	outer := closeHalf(s.Outer)
	inner := closeHalf(s.Inner)
	if len(outer) < 3 {
		return Wall{}, fault.Degenerate("shell", s.Station.Index, "outer loop has %d points", len(outer))
	}
	if geom.Area(outer) < 1e-12 {
		// Zero-width stations at the nose and tail have no wall.
		return Wall{}, nil
	}
	subject := polyclip.Polygon{toContour(outer)}
	result := subject
	if len(inner) >= 3 {
		result = subject.Construct(polyclip.DIFFERENCE, polyclip.Polygon{toContour(inner)})
	}

	w := Wall{Contours: make([][]geom.Point2, 0, len(result))}
	for i, c := range result {
		pts := fromContour(c)
		w.Contours = append(w.Contours, pts)
		a := geom.Area(pts)
		if len(c) > 0 && insideOther(result, i, c[0]) {
			a = -a
		}
		w.Area += a
	}
	return w, nil
}

func insideOther(p polyclip.Polygon, self int, pt polyclip.Point) bool {
	for i, c := range p {
		if i != self && c.Contains(pt) {
			return true
		}
	}
	return false
}
