// Package rib generates the transverse ribs: tapered, symmetric
// cross-sections spaced along the board and lifted onto the rocker.
package rib

import (
	"math"

	"github.com/chazu/surfhull/pkg/fault"
	"github.com/chazu/surfhull/pkg/geom"
	"github.com/chazu/surfhull/pkg/params"
	"github.com/chazu/surfhull/pkg/profile"
)

const (
	divisions        = 16
	minWidthFraction = 0.1  // narrower ribs are skipped
	shellInsetFactor = 0.95 // of ShellThickness, per side
)

// Rib is one emitted rib.
type Rib struct {
	Index     int // station index within Stations
	Z         float64
	Taper     float64
	Width     float64 // full width before the shell inset
	Elevation float64 // rocker height added to every point
	Points    []geom.Point2
}

// Generator evaluates ribs for one board.
type Generator struct {
	board   params.Board
	bias    profile.RailBias
	contour profile.Contour
	shape   profile.PlanShape
	rocker  *profile.Rocker

	flatStart, flatEnd float64
}

// NewGenerator returns a rib generator lifting ribs onto rocker.
func NewGenerator(b params.Board, rocker *profile.Rocker) (*Generator, error) {
	bias, err := profile.NewRailBias(b.RailStyle, b.RailMidBias)
	if err != nil {
		return nil, err
	}
	shape, err := profile.NewPlanShape(b.PlanShape)
	if err != nil {
		return nil, err
	}
	center := b.Length/2 + b.RockerMidOffset
	return &Generator{
		board:     b,
		bias:      bias,
		contour:   profile.NewContour(b),
		shape:     shape,
		rocker:    rocker,
		flatStart: math.Max(0, center-b.Length/6),
		flatEnd:   math.Min(b.Length, center+b.Length/6),
	}, nil
}

// Taper returns the width factor at z: 1 across the flat zone, falling
// quadratically to 0.5 at either end of the board.
func (g *Generator) Taper(z float64) float64 {
	length := g.board.Length
	switch {
	case z < g.flatStart:
		t := z / g.flatStart
		return 0.5 + 0.5*t*t
	case z > g.flatEnd:
		t := (length - z) / (length - g.flatEnd)
		return 0.5 + 0.5*t*t
	default:
		return 1
	}
}

// Generate returns the rib at z, or false when the tapered width falls
// below a tenth of the maximum width.
func (g *Generator) Generate(z float64) (Rib, bool, error) {
	b := g.board
	taper := g.Taper(z)
	width := 2 * taper * b.MaxWidth * g.shape.HalfWidthFraction(z/b.Length)
	if math.IsNaN(width) || math.IsInf(width, 0) {
		return Rib{}, false, fault.Degenerate("rib", fault.NoStation, "width at z=%g is %g", z, width)
	}
	if width < minWidthFraction*b.MaxWidth {
		return Rib{}, false, nil
	}

	half := g.halfProfile(width / 2)
	full := make([]geom.Point2, 0, 2*len(half))
	full = append(full, half...)
	full = append(full, geom.Mirror(geom.Reverse(half))...)

	inset := shellInsetFactor * b.ShellThickness
	lift := g.rocker.Elevation(z)
	for i, p := range full {
		switch {
		case p.X > 0:
			p.X -= inset
		case p.X < 0:
			p.X += inset
		}
		full[i] = p.Shift(lift)
	}
	return Rib{
		Z:         z,
		Taper:     taper,
		Width:     width,
		Elevation: lift,
		Points:    full,
	}, true, nil
}

func (g *Generator) halfProfile(xHalf float64) []geom.Point2 {
	h := g.board.RailHeight()
	pts := make([]geom.Point2, divisions+1)
	for j := range pts {
		t := float64(j) / divisions
		x := xHalf * g.bias.WidthFraction(t)
		var normX float64
		if xHalf != 0 {
			normX = x / xHalf
		}
		y := t*h + g.contour.Offset(t*h, normX) - h*g.board.RailMidBias
		pts[j] = geom.Pt(x, y)
	}
	return pts
}

// Count returns the odd rib station count, at least 3.
func (g *Generator) Count() int {
	n := max(3, int(g.board.Length/g.board.RibSpacing))
	if n%2 == 0 {
		n++
	}
	return n
}

// Set is the outcome of a full rib sweep.
type Set struct {
	Ribs    []Rib
	Skipped []int // station indices too narrow to emit
}

// Stations evaluates every rib station from nose to tail.
func (g *Generator) Stations() (Set, error) {
	n := g.Count()
	dz := g.board.Length / float64(n-1)
	var s Set
	for i := 0; i < n; i++ {
		r, ok, err := g.Generate(float64(i) * dz)
		if err != nil {
			if fe, isFault := err.(*fault.Error); isFault {
				fe.Station = i
			}
			return Set{}, err
		}
		if !ok {
			s.Skipped = append(s.Skipped, i)
			continue
		}
		r.Index = i
		s.Ribs = append(s.Ribs, r)
	}
	return s, nil
}
