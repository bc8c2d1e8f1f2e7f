package kernel

import (
	"fmt"
	"math"

	"github.com/chazu/surfhull/pkg/geom"
)

// Compile-time interface check.
var _ Kernel = (*Recorder)(nil)

// Recorder is a Kernel that keeps every emitted curve and profile in
// memory and builds bounding-box solids instead of real geometry. It
// backs dry runs, stage rehearsals and tests of the emission order.
type Recorder struct {
	// MinEdge, when positive, rejects closed profiles that keep fewer
	// than 3 points once edges shorter than MinEdge are dropped.
	MinEdge float64

	Curves   [][]geom.Point3
	Profiles []*RecordedProfile
	Solids   []RecordedSolid
}

// RecordedProfile is a profile passed to EmitClosedProfile.
type RecordedProfile struct {
	On     Plane
	Points []geom.Point2
}

// Plane implements Profile.
func (p *RecordedProfile) Plane() Plane { return p.On }

// RecordedSolid is the box a Recorder builds for a sweep or extrusion.
type RecordedSolid struct {
	Op       string
	Min, Max [3]float64
}

// BoundingBox implements Solid.
func (s *RecordedSolid) BoundingBox() (min, max [3]float64) {
	return s.Min, s.Max
}

type recordedCurve struct {
	pts []geom.Point3
}

func (c *recordedCurve) Len() int { return len(c.pts) }

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// EmitCurve records a copy of pts.
func (r *Recorder) EmitCurve(pts []geom.Point3) (Curve, error) {
	if len(pts) < 2 {
		return nil, fmt.Errorf("curve needs at least 2 points, got %d", len(pts))
	}
	cp := geom.Curve(pts).Clone()
	r.Curves = append(r.Curves, cp)
	return &recordedCurve{pts: cp}, nil
}

// EmitClosedProfile records a copy of pts on plane.
func (r *Recorder) EmitClosedProfile(plane Plane, pts []geom.Point2) (Profile, error) {
	if len(pts) < 3 {
		return nil, fmt.Errorf("closed profile needs at least 3 points, got %d", len(pts))
	}
	if r.MinEdge > 0 {
		if kept := geom.Dedupe(pts, r.MinEdge); len(kept) < 3 {
			return nil, fmt.Errorf("closed profile needs at least 3 distinct points, got %d of %d", len(kept), len(pts))
		}
	}
	p := &RecordedProfile{On: plane, Points: append([]geom.Point2(nil), pts...)}
	r.Profiles = append(r.Profiles, p)
	return p, nil
}

func (r *Recorder) profile(p Profile) (*RecordedProfile, error) {
	rp, ok := p.(*RecordedProfile)
	if !ok {
		return nil, fmt.Errorf("profile %T was not emitted by this kernel", p)
	}
	return rp, nil
}

func bounds2(pts []geom.Point2) (minX, minY, maxX, maxY float64) {
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	for _, p := range pts {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	return minX, minY, maxX, maxY
}

// Sweep records the box spanned by the profile moved along the path.
func (r *Recorder) Sweep(p Profile, path Curve, o Orientation) (Solid, error) {
	rp, err := r.profile(p)
	if err != nil {
		return nil, err
	}
	rc, ok := path.(*recordedCurve)
	if !ok {
		return nil, fmt.Errorf("path %T was not emitted by this kernel", path)
	}
	if geom.Curve(rc.pts).Length() == 0 {
		return nil, fmt.Errorf("sweep path has no segment of positive length")
	}
	minX, minY, maxX, maxY := bounds2(rp.Points)
	s := &RecordedSolid{
		Op:  "sweep/" + o.String(),
		Min: [3]float64{math.Inf(1), math.Inf(1), math.Inf(1)},
		Max: [3]float64{math.Inf(-1), math.Inf(-1), math.Inf(-1)},
	}
	for _, q := range rc.pts {
		s.Min = [3]float64{math.Min(s.Min[0], q.X+minX), math.Min(s.Min[1], q.Y+minY), math.Min(s.Min[2], q.Z)}
		s.Max = [3]float64{math.Max(s.Max[0], q.X+maxX), math.Max(s.Max[1], q.Y+maxY), math.Max(s.Max[2], q.Z)}
	}
	r.Solids = append(r.Solids, *s)
	return s, nil
}

// Extrude records the box of the profile pushed along z.
func (r *Recorder) Extrude(p Profile, distance float64, symmetric bool) (Solid, error) {
	rp, err := r.profile(p)
	if err != nil {
		return nil, err
	}
	if distance <= 0 {
		return nil, fmt.Errorf("extrude distance must be positive, got %g", distance)
	}
	minX, minY, maxX, maxY := bounds2(rp.Points)
	z0, z1 := rp.On.Z, rp.On.Z+distance
	if symmetric {
		z0, z1 = rp.On.Z-distance/2, rp.On.Z+distance/2
	}
	s := &RecordedSolid{
		Op:  "extrude",
		Min: [3]float64{minX, minY, z0},
		Max: [3]float64{maxX, maxY, z1},
	}
	r.Solids = append(r.Solids, *s)
	return s, nil
}

// Union returns the box enclosing a and b.
func (r *Recorder) Union(a, b Solid) Solid {
	amin, amax := a.BoundingBox()
	bmin, bmax := b.BoundingBox()
	s := &RecordedSolid{Op: "union"}
	for i := 0; i < 3; i++ {
		s.Min[i] = math.Min(amin[i], bmin[i])
		s.Max[i] = math.Max(amax[i], bmax[i])
	}
	return s
}

// OffsetPlane returns base moved along z by distance.
func (r *Recorder) OffsetPlane(base Plane, distance float64) Plane {
	return Plane{Z: base.Z + distance}
}

// ToMesh returns an empty mesh; a Recorder builds no triangles.
func (r *Recorder) ToMesh(_ Solid) (*Mesh, error) {
	return &Mesh{}, nil
}
