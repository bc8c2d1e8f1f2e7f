// Package sdfx implements the kernel.Kernel interface using the
// github.com/deadsy/sdfx SDF-based CAD library.
package sdfx

import (
	"errors"
	"fmt"
	"math"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/surfhull/pkg/geom"
	"github.com/chazu/surfhull/pkg/kernel"
)

// Compile-time interface check.
var _ kernel.Kernel = (*SdfxKernel)(nil)

const (
	// DefaultMeshCells controls marching cubes tessellation resolution
	// along the longest bounding box axis.
	DefaultMeshCells = 200
	// DefaultMinEdge is the shortest profile edge kept; closer points are
	// dropped before the polygon is built.
	DefaultMinEdge = 0.5
)

// sdfxSolid wraps an sdf.SDF3 to implement kernel.Solid.
type sdfxSolid struct {
	s sdf.SDF3
}

// BoundingBox returns the axis-aligned bounding box.
func (s *sdfxSolid) BoundingBox() (min, max [3]float64) {
	bb := s.s.BoundingBox()
	min = [3]float64{bb.Min.X, bb.Min.Y, bb.Min.Z}
	max = [3]float64{bb.Max.X, bb.Max.Y, bb.Max.Z}
	return min, max
}

// sdfxProfile is a closed polygon on a construction plane.
type sdfxProfile struct {
	plane kernel.Plane
	s     sdf.SDF2
}

func (p *sdfxProfile) Plane() kernel.Plane { return p.plane }

// sdfxCurve keeps the fit points of a path.
type sdfxCurve struct {
	pts []v3.Vec
}

func (c *sdfxCurve) Len() int { return len(c.pts) }

// SdfxKernel implements kernel.Kernel using sdfx.
type SdfxKernel struct {
	MeshCells int
	MinEdge   float64
}

// New returns a new SdfxKernel with default resolution.
func New() *SdfxKernel {
	return &SdfxKernel{MeshCells: DefaultMeshCells, MinEdge: DefaultMinEdge}
}

// ProfileMinEdge reports the edge length below which profile points are
// dropped.
func (k *SdfxKernel) ProfileMinEdge() float64 { return k.MinEdge }

// unwrap extracts the underlying sdf.SDF3 from a kernel.Solid.
func unwrap(s kernel.Solid) (sdf.SDF3, error) {
	ss, ok := s.(*sdfxSolid)
	if !ok {
		return nil, fmt.Errorf("solid %T was not built by the sdfx kernel", s)
	}
	return ss.s, nil
}

// wrap creates a kernel.Solid from an sdf.SDF3.
func wrap(s sdf.SDF3) kernel.Solid {
	return &sdfxSolid{s: s}
}

func unwrapProfile(p kernel.Profile) (*sdfxProfile, error) {
	sp, ok := p.(*sdfxProfile)
	if !ok {
		return nil, fmt.Errorf("profile %T was not built by the sdfx kernel", p)
	}
	return sp, nil
}

// EmitCurve stores the path points for a later sweep.
func (k *SdfxKernel) EmitCurve(pts []geom.Point3) (kernel.Curve, error) {
	if len(pts) < 2 {
		return nil, fmt.Errorf("curve needs at least 2 points, got %d", len(pts))
	}
	c := &sdfxCurve{pts: make([]v3.Vec, len(pts))}
	for i, p := range pts {
		c.pts[i] = v3.Vec{X: p.X, Y: p.Y, Z: p.Z}
	}
	return c, nil
}

// EmitClosedProfile builds a 2D polygon from pts. Points closer than
// MinEdge to their predecessor are dropped first.
func (k *SdfxKernel) EmitClosedProfile(plane kernel.Plane, pts []geom.Point2) (kernel.Profile, error) {
	kept := geom.Dedupe(pts, k.MinEdge)
	if len(kept) < 3 {
		return nil, fmt.Errorf("closed profile needs at least 3 distinct points, got %d of %d", len(kept), len(pts))
	}
	vs := make([]v2.Vec, len(kept))
	for i, p := range kept {
		vs[i] = v2.Vec{X: p.X, Y: p.Y}
	}
	s, err := sdf.Polygon2D(vs)
	if err != nil {
		return nil, fmt.Errorf("sdfx.Polygon2D: %w", err)
	}
	return &sdfxProfile{plane: plane, s: s}, nil
}

// Extrude pushes the profile along z from its plane. A symmetric
// extrusion is centred on the plane with total thickness distance.
func (k *SdfxKernel) Extrude(p kernel.Profile, distance float64, symmetric bool) (kernel.Solid, error) {
	sp, err := unwrapProfile(p)
	if err != nil {
		return nil, err
	}
	if distance <= 0 {
		return nil, fmt.Errorf("extrude distance must be positive, got %g", distance)
	}
	// sdf.Extrude3D centres the solid on z = 0.
	z := sp.plane.Z
	if !symmetric {
		z += distance / 2
	}
	s := sdf.Extrude3D(sp.s, distance)
	return wrap(sdf.Transform3D(s, sdf.Translate3d(v3.Vec{Z: z}))), nil
}

// Sweep moves the profile along path one segment at a time and unions
// the segments. With Perpendicular orientation each segment is rotated
// so the profile normal follows the segment direction.
func (k *SdfxKernel) Sweep(p kernel.Profile, path kernel.Curve, o kernel.Orientation) (kernel.Solid, error) {
	sp, err := unwrapProfile(p)
	if err != nil {
		return nil, err
	}
	c, ok := path.(*sdfxCurve)
	if !ok {
		return nil, fmt.Errorf("path %T was not built by the sdfx kernel", path)
	}

	segs := make([]sdf.SDF3, 0, len(c.pts)-1)
	for i := 1; i < len(c.pts); i++ {
		p0, p1 := c.pts[i-1], c.pts[i]
		d := p1.Sub(p0)
		length := d.Length()
		if length == 0 {
			continue
		}
		m := sdf.Translate3d(p0)
		switch o {
		case kernel.Perpendicular:
			pitch := math.Atan2(-d.Y, math.Hypot(d.X, d.Z))
			yaw := math.Atan2(d.X, d.Z)
			m = m.Mul(sdf.RotateY(yaw)).Mul(sdf.RotateX(pitch))
		case kernel.Parallel:
			length = math.Abs(d.Z)
			if length == 0 {
				continue
			}
		}
		m = m.Mul(sdf.Translate3d(v3.Vec{Z: length / 2}))
		segs = append(segs, sdf.Transform3D(sdf.Extrude3D(sp.s, length), m))
	}
	if len(segs) == 0 {
		return nil, errors.New("sweep path has no segment of positive length")
	}
	return wrap(sdf.Union3D(segs...)), nil
}

// Union returns the union of two solids. Solids from another kernel are
// ignored in favour of the other operand.
func (k *SdfxKernel) Union(a, b kernel.Solid) kernel.Solid {
	sa, errA := unwrap(a)
	sb, errB := unwrap(b)
	switch {
	case errA != nil:
		return b
	case errB != nil:
		return a
	}
	return wrap(sdf.Union3D(sa, sb))
}

// OffsetPlane returns base moved along z by distance.
func (k *SdfxKernel) OffsetPlane(base kernel.Plane, distance float64) kernel.Plane {
	return kernel.Plane{Z: base.Z + distance}
}

// ToMesh converts a solid to a triangle mesh using marching cubes.
func (k *SdfxKernel) ToMesh(s kernel.Solid) (*kernel.Mesh, error) {
	sdf3, err := unwrap(s)
	if err != nil {
		return nil, err
	}
	cells := k.MeshCells
	if cells <= 0 {
		cells = DefaultMeshCells
	}

	renderer := render.NewMarchingCubesUniform(cells)
	triangles := render.ToTriangles(sdf3, renderer)

	numTri := len(triangles)
	numVerts := numTri * 3

	vertices := make([]float32, 0, numVerts*3)
	normals := make([]float32, 0, numVerts*3)
	indices := make([]uint32, 0, numVerts)

	for i, tri := range triangles {
		// Compute face normal.
		n := tri.Normal()
		nx := float32(n.X)
		ny := float32(n.Y)
		nz := float32(n.Z)

		for j := 0; j < 3; j++ {
			v := tri[j]
			vertices = append(vertices, float32(v.X), float32(v.Y), float32(v.Z))
			normals = append(normals, nx, ny, nz)
			indices = append(indices, uint32(i*3+j))
		}
	}

	return &kernel.Mesh{
		Vertices: vertices,
		Normals:  normals,
		Indices:  indices,
	}, nil
}
