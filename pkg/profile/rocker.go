package profile

import (
	"math"

	"github.com/chazu/surfhull/pkg/fault"
	"github.com/chazu/surfhull/pkg/geom"
	"github.com/chazu/surfhull/pkg/params"
)

// Rocker is the longitudinal elevation of the board centerline.
type Rocker struct {
	staged bool
	length float64

	// staged
	nose, tail         float64
	flatStart, flatEnd float64

	// parabolic, y = a*z^2 + b*z + c
	a, b, c float64
}

// NewRocker builds the rocker selected by b.UseStagedRocker.
//
// The staged rocker is flat across a region of length/3 centred on
// length/2 + midOffset and falls away quadratically on either side. The
// parabolic rocker passes through (0, nose), (midZ, 0) and
// (length, tail); a midZ on either end of the board has no solution and
// is reported as degenerate.
func NewRocker(b params.Board) (*Rocker, error) {
	r := &Rocker{
		staged: b.UseStagedRocker,
		length: b.Length,
		nose:   b.RockerNose,
		tail:   b.RockerTail,
	}
	center := b.Length/2 + b.RockerMidOffset
	if r.staged {
		flat := b.Length / 3
		r.flatStart = math.Max(0, center-flat/2)
		r.flatEnd = math.Min(b.Length, center+flat/2)
		return r, nil
	}

	z0, y0 := 0.0, b.RockerNose
	z1, y1 := center, 0.0
	z2, y2 := b.Length, b.RockerTail
	denom := (z0 - z1) * (z0 - z2) * (z1 - z2)
	if denom == 0 {
		return nil, fault.Degenerate("rocker", fault.NoStation,
			"parabola midpoint %g coincides with a board end (length %g)", center, b.Length)
	}
	r.a = (z2*(y1-y0) + z1*(y0-y2) + z0*(y2-y1)) / denom
	r.b = (z2*z2*(y0-y1) + z1*z1*(y2-y0) + z0*z0*(y1-y2)) / denom
	r.c = (z1*z2*(z1-z2)*y0 + z2*z0*(z2-z0)*y1 + z0*z1*(z0-z1)*y2) / denom
	return r, nil
}

// FlatRegion returns the staged flat span. It is empty for the
// parabolic rocker.
func (r *Rocker) FlatRegion() (start, end float64) {
	return r.flatStart, r.flatEnd
}

// Elevation returns the centerline height at z.
func (r *Rocker) Elevation(z float64) float64 {
	if !r.staged {
		return r.a*z*z + r.b*z + r.c
	}
	switch {
	case z < r.flatStart:
		t := z / r.flatStart
		return -r.tail * (1 - t) * (1 - t)
	case z > r.flatEnd:
		if r.length == r.flatEnd {
			return 0
		}
		t := (z - r.flatEnd) / (r.length - r.flatEnd)
		return -r.nose * t * t
	default:
		return 0
	}
}

// Sample returns n points of the rocker evenly spaced over [0, length]
// on the x = 0 plane. n below 2 is raised to 2.
func (r *Rocker) Sample(n int) geom.Curve {
	if n < 2 {
		n = 2
	}
	out := make(geom.Curve, n)
	for i := range out {
		z := float64(i) * r.length / float64(n-1)
		out[i] = geom.Point3{X: 0, Y: r.Elevation(z), Z: z}
	}
	return out
}
