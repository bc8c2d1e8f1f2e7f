package geom

import (
	"math"
	"slices"

	"honnef.co/go/curve"
)

// Mirror reflects a half-profile across x = 0. Point i of the result is
// the exact reflection of point i of pts.
func Mirror(pts []Point2) []Point2 {
	out := make([]Point2, len(pts))
	for i, p := range pts {
		out[i] = fromCP(p.cp().Transform(curve.FlipX))
	}
	return out
}

// arcTolerance bounds the flattening error of join arcs.
const arcTolerance = 0.01

// ThreePointArc returns points along the circular arc that starts at a,
// passes through mid and ends at b. Both endpoints are included exactly.
// Collinear inputs yield the three points unchanged.
func ThreePointArc(a, mid, b Point2) []Point2 {
	center, ok := circumcenter(a, mid, b)
	if !ok {
		return []Point2{a, mid, b}
	}
	r := center.Distance(a)
	start := math.Atan2(a.Y-center.Y, a.X-center.X)
	through := math.Atan2(mid.Y-center.Y, mid.X-center.X)
	end := math.Atan2(b.Y-center.Y, b.X-center.X)

	// Sweep from start to end in whichever direction passes through mid.
	ccw := normAngle(end - start)
	sweep := ccw
	if normAngle(through-start) > ccw {
		sweep = ccw - 2*math.Pi
	}

	arc := curve.Arc{
		Center:     center.cp(),
		Radii:      curve.Vec(r, r),
		StartAngle: start,
		SweepAngle: sweep,
	}
	pts := []Point2{a}
	for el := range curve.Flatten(arc.PathElements(arcTolerance), arcTolerance) {
		if el.Kind == curve.MoveToKind {
			continue
		}
		if ep, ok := el.EndPoint(); ok {
			pts = append(pts, fromCP(ep))
		}
	}
	// Replace the flattened endpoint with the exact input.
	pts[len(pts)-1] = b
	return pts
}

func normAngle(a float64) float64 {
	for a < 0 {
		a += 2 * math.Pi
	}
	for a >= 2*math.Pi {
		a -= 2 * math.Pi
	}
	return a
}

func circumcenter(a, b, c Point2) (Point2, bool) {
	d := 2 * (a.X*(b.Y-c.Y) + b.X*(c.Y-a.Y) + c.X*(a.Y-b.Y))
	if math.Abs(d) < 1e-12 {
		return Point2{}, false
	}
	a2 := a.X*a.X + a.Y*a.Y
	b2 := b.X*b.X + b.Y*b.Y
	c2 := c.X*c.X + c.Y*c.Y
	return Point2{
		X: (a2*(b.Y-c.Y) + b2*(c.Y-a.Y) + c2*(a.Y-b.Y)) / d,
		Y: (a2*(c.X-b.X) + b2*(a.X-c.X) + c2*(b.X-a.X)) / d,
	}, true
}

// Path converts pts into a Bézier path of line segments, closing it when
// closed is true.
func Path(pts []Point2, closed bool) curve.BezPath {
	var p curve.BezPath
	for i, pt := range pts {
		if i == 0 {
			p.MoveTo(pt.cp())
			continue
		}
		p.LineTo(pt.cp())
	}
	if closed && len(pts) > 2 {
		p.ClosePath()
	}
	return p
}

// Area returns the unsigned area enclosed by the closed polygon pts.
func Area(pts []Point2) float64 {
	return math.Abs(Path(pts, true).SignedArea())
}

// Dedupe drops consecutive points closer than eps, including a closing
// point that repeats the first.
func Dedupe(pts []Point2, eps float64) []Point2 {
	out := make([]Point2, 0, len(pts))
	for _, p := range pts {
		if len(out) > 0 && out[len(out)-1].Distance(p) < eps {
			continue
		}
		out = append(out, p)
	}
	for len(out) > 1 && out[0].Distance(out[len(out)-1]) < eps {
		out = out[:len(out)-1]
	}
	return slices.Clip(out)
}
