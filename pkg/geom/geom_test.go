package geom

import (
	"math"
	"testing"
)

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestMirror(t *testing.T) {
	pts := []Point2{{X: 1, Y: 2}, {X: 0, Y: 5}, {X: -3, Y: -1}}
	got := Mirror(pts)
	for i, p := range got {
		if !near(p.X, -pts[i].X) || !near(p.Y, pts[i].Y) {
			t.Errorf("Mirror[%d] = %v, want (%g, %g)", i, p, -pts[i].X, pts[i].Y)
		}
	}
	back := Mirror(got)
	for i := range pts {
		if !near(back[i].X, pts[i].X) {
			t.Errorf("double mirror moved point %d to %v", i, back[i])
		}
	}
}

func TestLift(t *testing.T) {
	c := Lift([]Point2{{X: 1, Y: 2}, {X: 3, Y: 4}}, 7)
	if c.Len() != 2 || c[1] != (Point3{X: 3, Y: 4, Z: 7}) {
		t.Errorf("Lift = %v", c)
	}
	cp := c.Clone()
	cp[0].X = 99
	if c[0].X == 99 {
		t.Error("Clone shares storage")
	}
}

func TestCurveLength(t *testing.T) {
	c := Curve{{}, {X: 3, Y: 4}, {X: 3, Y: 4, Z: 12}}
	if got := c.Length(); !near(got, 17) {
		t.Errorf("Length = %g, want 17", got)
	}
	if got := (Curve{{Z: 5}, {Z: 5}}).Length(); got != 0 {
		t.Errorf("repeated point Length = %g", got)
	}
}

func TestThreePointArc(t *testing.T) {
	a, mid, b := Point2{X: 1}, Point2{Y: 1}, Point2{X: -1}
	pts := ThreePointArc(a, mid, b)
	if len(pts) < 4 {
		t.Fatalf("arc has only %d points", len(pts))
	}
	if pts[0] != a || pts[len(pts)-1] != b {
		t.Errorf("endpoints = %v, %v", pts[0], pts[len(pts)-1])
	}
	for i, p := range pts {
		if r := math.Hypot(p.X, p.Y); math.Abs(r-1) > 0.02 {
			t.Errorf("point %d radius %g", i, r)
		}
		if p.Y < -1e-6 {
			t.Errorf("point %d = %v is on the wrong side", i, p)
		}
	}

	line := ThreePointArc(Point2{}, Point2{X: 1}, Point2{X: 2})
	if len(line) != 3 {
		t.Errorf("collinear arc = %v", line)
	}
}

func TestArea(t *testing.T) {
	square := []Point2{{}, {X: 2}, {X: 2, Y: 2}, {Y: 2}}
	if got := Area(square); !near(got, 4) {
		t.Errorf("Area = %g, want 4", got)
	}
	if got := Area(Reverse(square)); !near(got, 4) {
		t.Errorf("reversed Area = %g, want 4", got)
	}
}

func TestDedupe(t *testing.T) {
	pts := []Point2{{}, {X: 0.1}, {X: 1}, {X: 1, Y: 1}, {Y: 0.05}}
	got := Dedupe(pts, 0.5)
	want := []Point2{{}, {X: 1}, {X: 1, Y: 1}}
	if len(got) != len(want) {
		t.Fatalf("Dedupe = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Dedupe[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestPathClosed(t *testing.T) {
	open := Path([]Point2{{}, {X: 1}, {X: 1, Y: 1}}, false)
	closed := Path([]Point2{{}, {X: 1}, {X: 1, Y: 1}}, true)
	if len(closed) != len(open)+1 {
		t.Errorf("closed path has %d elements, open has %d", len(closed), len(open))
	}
}
