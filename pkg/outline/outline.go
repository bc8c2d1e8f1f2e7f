// Package outline builds the reference plan outline and resolves any
// longitudinal position to its nearest reference sample. Every later
// generator reads half-width and centerline height through Sample so
// that all curves of a run agree station by station.
package outline

import (
	"math"

	"github.com/chazu/surfhull/pkg/fault"
	"github.com/chazu/surfhull/pkg/geom"
	"github.com/chazu/surfhull/pkg/params"
	"github.com/chazu/surfhull/pkg/profile"
)

// Sampler evaluates the plan shape and rocker at evenly spaced stations.
type Sampler struct {
	board  params.Board
	shape  profile.PlanShape
	rocker *profile.Rocker
}

// NewSampler prepares a sampler for b using rocker for the centerline.
func NewSampler(b params.Board, rocker *profile.Rocker) (*Sampler, error) {
	shape, err := profile.NewPlanShape(b.PlanShape)
	if err != nil {
		return nil, err
	}
	return &Sampler{board: b, shape: shape, rocker: rocker}, nil
}

// Build samples ceil(length/minSegmentLength)+1 stations from nose to
// tail. Point i has x = maxWidth*shape(z/length), y = rocker(z).
func (s *Sampler) Build() *Reference {
	n := s.board.Stations()
	dz := s.board.Length / float64(n-1)
	pts := make(geom.Curve, n)
	for i := range pts {
		z := float64(i) * dz
		pts[i] = geom.Point3{
			X: s.board.MaxWidth * s.shape.HalfWidthFraction(z/s.board.Length),
			Y: s.rocker.Elevation(z),
			Z: z,
		}
	}
	return &Reference{pts: pts, shape: s.shape.String()}
}

// Station is a resolved reference sample.
type Station struct {
	Index     int
	HalfWidth float64 // |x| of the sample
	CenterY   float64
	Z         float64 // z of the sample, not the query
}

// Reference is the read-only half outline shared by a run.
type Reference struct {
	pts   geom.Curve
	shape string
}

// NewReference wraps pts, copying them.
func NewReference(pts geom.Curve) *Reference {
	return &Reference{pts: pts.Clone()}
}

// Sample returns the reference point whose z is nearest zQuery. Ties go
// to the lower index. It never interpolates between samples.
func (r *Reference) Sample(zQuery float64) (Station, error) {
	if r == nil || len(r.pts) == 0 {
		return Station{}, fault.NotReady("reference lookup")
	}
	best := 0
	bestD := math.Abs(r.pts[0].Z - zQuery)
	for i := 1; i < len(r.pts); i++ {
		if d := math.Abs(r.pts[i].Z - zQuery); d < bestD {
			best, bestD = i, d
		}
	}
	p := r.pts[best]
	return Station{Index: best, HalfWidth: math.Abs(p.X), CenterY: p.Y, Z: p.Z}, nil
}

// Len returns the sample count; 0 for a nil reference.
func (r *Reference) Len() int {
	if r == nil {
		return 0
	}
	return len(r.pts)
}

// At returns sample i.
func (r *Reference) At(i int) geom.Point3 {
	return r.pts[i]
}

// Points returns a copy of the samples.
func (r *Reference) Points() geom.Curve {
	if r == nil {
		return nil
	}
	return r.pts.Clone()
}

// Shape names the plan shape the reference was sampled from.
func (r *Reference) Shape() string {
	return r.shape
}

// Length returns the z of the last sample.
func (r *Reference) Length() float64 {
	if r.Len() == 0 {
		return 0
	}
	return r.pts[len(r.pts)-1].Z
}
