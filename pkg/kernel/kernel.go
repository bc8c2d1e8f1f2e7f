// Package kernel defines the geometry kernel the hull generators hand
// their curves to. Implementations (sdfx, the in-memory Recorder) turn
// sections and paths into solids and meshes behind this interface, so
// the generators never depend on a particular CAD backend.
package kernel

import (
	"fmt"

	"github.com/chazu/surfhull/pkg/geom"
)

// Plane is a construction plane perpendicular to the board's z axis,
// offset from the x/y origin plane by Z.
type Plane struct {
	Z float64
}

// OriginPlane is the z = 0 construction plane.
var OriginPlane = Plane{}

func (p Plane) String() string {
	return fmt.Sprintf("plane(z=%.3f)", p.Z)
}

// Orientation controls how a swept profile follows its path.
type Orientation int

const (
	// Perpendicular keeps the profile normal to the path tangent.
	Perpendicular Orientation = iota
	// Parallel keeps the profile parallel to its construction plane.
	Parallel
)

func (o Orientation) String() string {
	switch o {
	case Perpendicular:
		return "perpendicular"
	case Parallel:
		return "parallel"
	default:
		return fmt.Sprintf("Orientation(%d)", int(o))
	}
}

// Curve is an opaque handle to an emitted open curve.
type Curve interface {
	// Len returns the number of fit points.
	Len() int
}

// Profile is an opaque handle to a closed planar profile.
type Profile interface {
	// Plane returns the construction plane the profile lies in.
	Plane() Plane
}

// Solid is an opaque handle to a geometry kernel solid.
// Implementations wrap their internal representation.
type Solid interface {
	// BoundingBox returns the axis-aligned bounding box.
	BoundingBox() (min, max [3]float64)
}

// Kernel is the abstract geometry kernel interface.
type Kernel interface {
	// Curve and profile emission
	EmitCurve(pts []geom.Point3) (Curve, error)
	EmitClosedProfile(plane Plane, pts []geom.Point2) (Profile, error)

	// Solid construction
	Sweep(p Profile, path Curve, o Orientation) (Solid, error)
	Extrude(p Profile, distance float64, symmetric bool) (Solid, error)
	Union(a, b Solid) Solid

	// Construction planes
	OffsetPlane(base Plane, distance float64) Plane

	// Mesh output
	ToMesh(s Solid) (*Mesh, error)
}
