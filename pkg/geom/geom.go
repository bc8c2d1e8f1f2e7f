// Package geom holds the point and curve types shared by every hull
// generator. Coordinates are board local: z runs nose to tail, y is
// vertical and x is the lateral half (mirrored for the other side).
package geom

import (
	"fmt"
	"math"

	"honnef.co/go/curve"
)

// Point3 is a point in board coordinates.
type Point3 struct {
	X, Y, Z float64
}

func (p Point3) String() string {
	return fmt.Sprintf("(%.3f, %.3f, %.3f)", p.X, p.Y, p.Z)
}

// Point2 is a point in a cross-section plane at fixed z.
type Point2 struct {
	X, Y float64
}

// Pt returns the point (x, y).
func Pt(x, y float64) Point2 {
	return Point2{X: x, Y: y}
}

func (p Point2) String() string {
	return fmt.Sprintf("(%.3f, %.3f)", p.X, p.Y)
}

// At lifts p into the plane at z.
func (p Point2) At(z float64) Point3 {
	return Point3{X: p.X, Y: p.Y, Z: z}
}

// Shift returns p translated vertically by dy.
func (p Point2) Shift(dy float64) Point2 {
	return Point2{X: p.X, Y: p.Y + dy}
}

// Distance returns the euclidean distance between p and o.
func (p Point2) Distance(o Point2) float64 {
	return curve.Line{P0: p.cp(), P1: o.cp()}.Length()
}

func (p Point2) cp() curve.Point {
	return curve.Pt(p.X, p.Y)
}

func fromCP(p curve.Point) Point2 {
	return Point2{X: p.X, Y: p.Y}
}

// Curve is an ordered, finite sequence of points. It is open unless the
// producer says otherwise, and it is never mutated after creation.
type Curve []Point3

// Clone returns an independent copy of c.
func (c Curve) Clone() Curve {
	out := make(Curve, len(c))
	copy(out, c)
	return out
}

// Len returns the number of points.
func (c Curve) Len() int {
	return len(c)
}

// Length returns the polyline length of c.
func (c Curve) Length() float64 {
	var total float64
	for i := 1; i < len(c); i++ {
		d := Point3{X: c[i].X - c[i-1].X, Y: c[i].Y - c[i-1].Y, Z: c[i].Z - c[i-1].Z}
		total += math.Sqrt(d.X*d.X + d.Y*d.Y + d.Z*d.Z)
	}
	return total
}

// Lift places a 2D profile into the plane at z.
func Lift(pts []Point2, z float64) Curve {
	out := make(Curve, len(pts))
	for i, p := range pts {
		out[i] = p.At(z)
	}
	return out
}

// ShiftY returns pts translated vertically by dy.
func ShiftY(pts []Point2, dy float64) []Point2 {
	out := make([]Point2, len(pts))
	for i, p := range pts {
		out[i] = p.Shift(dy)
	}
	return out
}

// Reverse returns pts in reverse order.
func Reverse(pts []Point2) []Point2 {
	out := make([]Point2, len(pts))
	for i, p := range pts {
		out[len(pts)-1-i] = p
	}
	return out
}
