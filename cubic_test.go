package hobby

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestCubicBezDeriv(t *testing.T) {
	// y = x^2
	c := CubicBez{
		Pt(0.0, 0.0),
		Pt(1.0/3.0, 0.0),
		Pt(2.0/3.0, 1.0/3.0),
		Pt(1.0, 1.0),
	}

	const n = 10
	const delta = 1e-6
	for i := range n + 1 {
		ts := float64(i) / float64(n)
		p := c.Eval(ts)
		p1 := c.Eval(ts + delta)
		dApprox := p1.Sub(p).Mul(1.0 / delta)
		d := c.Deriv(ts)
		if l := d.Sub(dApprox).Hypot(); l >= delta*2 {
			t.Errorf("got difference of %g, want at most %g", l, delta*2)
		}
	}
}

func TestCubicBezSplitAt(t *testing.T) {
	const epsilon = 1e-12
	c := CubicBez{Pt(0, 0), Pt(10, 30), Pt(40, -10), Pt(50, 20)}
	for _, ts := range []float64{0.1, 0.25, 0.5, 0.9} {
		l, r := c.SplitAt(ts)
		diff(t, l.P3, r.P0)
		diff(t, c.P0, l.P0)
		diff(t, c.P3, r.P3)
		assertNear(t, l.P3, c.Eval(ts), epsilon)
		for _, u := range []float64{0, 0.3, 0.7, 1} {
			assertNear(t, l.Eval(u), c.Eval(u*ts), epsilon)
			assertNear(t, r.Eval(u), c.Eval(ts+u*(1-ts)), epsilon)
		}
	}
}

func TestCubicBezSubsegment(t *testing.T) {
	const epsilon = 1e-12
	c := CubicBez{Pt(0, 0), Pt(10, 30), Pt(40, -10), Pt(50, 20)}
	diff(t, c, c.Subsegment(0, 1))

	s := c.Subsegment(0.2, 0.6)
	assertNear(t, s.P0, c.Eval(0.2), epsilon)
	diff(t, c.Eval(0.6), s.P3)
	for _, u := range []float64{0.25, 0.5, 0.75} {
		assertNear(t, s.Eval(u), c.Eval(0.2+u*0.4), epsilon)
	}

	rev := c.Subsegment(0.6, 0.2)
	diff(t, s.Reverse(), rev)
	diff(t, CubicBez{c.P3, c.P2, c.P1, c.P0}, c.Reverse())
}

func TestCubicBezExtrema(t *testing.T) {
	q := CubicBez{Pt(0.0, 0.0), Pt(0.0, 1.0), Pt(1.0, 1.0), Pt(1.0, 0.0)}
	extrema, n := q.Extrema()
	if n != 1 {
		t.Fatalf("got %d extrema, expected 1", n)
	}
	if want := 0.5; math.Abs(extrema[0]-want) > 1e-6 {
		t.Errorf("got extrema %v, want %v", extrema[0], want)
	}

	q = CubicBez{Pt(0.4, 0.5), Pt(0.0, 1.0), Pt(1.0, 0.0), Pt(0.5, 0.4)}
	_, n = q.Extrema()
	if n != 4 {
		t.Fatalf("got %d extrema, expected 4", n)
	}
}

func TestCubicBezBoundingBox(t *testing.T) {
	q := CubicBez{Pt(0.0, 0.0), Pt(0.0, 1.0), Pt(1.0, 1.0), Pt(1.0, 0.0)}
	diff(t, Rect{0, 0, 1, 0.75}, q.BoundingBox(), cmpopts.EquateApprox(0, 1e-12))
	diff(t, Rect{0, 0, 1, 1}, q.ControlBox())
}

func TestCubicBezArclen(t *testing.T) {
	c := CubicBez{
		Pt(0.0, 0.0),
		Pt(1.0/3.0, 0.0),
		Pt(2.0/3.0, 1.0/3.0),
		Pt(1.0, 1.0),
	}
	trueArclen := 0.5*math.Sqrt(5.0) + 0.25*math.Log(2.0+math.Sqrt(5.0))
	for i := range 12 {
		accuracy := math.Pow(0.1, float64(i))
		diff(t, trueArclen, c.Arclen(accuracy), cmpopts.EquateApprox(0, accuracy))
	}

	approx := c.ApproxLength(DefaultLengthSamples)
	if approx > trueArclen {
		t.Errorf("polyline length %v exceeds arc length %v", approx, trueArclen)
	}
	diff(t, trueArclen, approx, cmpopts.EquateApprox(0, 1e-3))
	if l := c.ApproxLength(0); l < math.Sqrt2 || l > trueArclen {
		t.Errorf("got length %v for 2 samples, want between chord and arc length", l)
	}
}

func TestCubicBezInvArclen(t *testing.T) {
	// y = x^2 / 100
	c := CubicBez{
		Pt(0.0, 0.0),
		Pt(100.0/3.0, 0.0),
		Pt(200.0/3.0, 100.0/3.0),
		Pt(100.0, 100.0),
	}
	trueArclen := 100.0 * (0.5*math.Sqrt(5.0) + 0.25*math.Log(2.0+math.Sqrt(5.0)))
	for i := range 12 {
		accuracy := math.Pow(0.1, float64(i))
		n := 10
		for j := range n + 1 {
			arc := float64(j) * (1.0 / float64(n) * trueArclen)
			tt := SolveForArclen(c, arc, accuracy*0.5)
			actualArc := c.Subsegment(0.0, tt).Arclen(accuracy * 0.5)
			diff(t, arc, actualArc, cmpopts.EquateApprox(0, accuracy))
		}
	}
}

func TestCubicBezFlatten(t *testing.T) {
	c := CubicBez{Pt(0, 0), Pt(30, 100), Pt(70, -100), Pt(100, 0)}
	for _, tol := range []float64{1, 0.1, 0.01} {
		pts := c.Flatten(tol)
		diff(t, c.P0, pts[0])
		diff(t, c.P3, pts[len(pts)-1])
		// Every sample of the curve must be close to the polyline.
		for i := range 101 {
			p := c.Eval(float64(i) / 100)
			best := math.Inf(1)
			for j := 1; j < len(pts); j++ {
				d, _ := Line{pts[j-1], pts[j]}.Nearest(p)
				best = min(best, d)
			}
			if d := math.Sqrt(best); d > tol {
				t.Errorf("tolerance %g: point %s is %g away from the polyline", tol, p, d)
			}
		}
	}

	line := Line{Pt(0, 0), Pt(10, 10)}.Cubic()
	diff(t, []Point{Pt(0, 0), Pt(10, 10)}, line.Flatten(0.1))
}

func TestCubicBezTangents(t *testing.T) {
	c := CubicBez{Pt(0, 0), Pt(0, 0), Pt(10, 0), Pt(10, 10)}
	d0, d1 := c.Tangents()
	diff(t, Vec(10, 0), d0)
	diff(t, Vec(0, 10), d1)

	p := CubicBez{Pt(1, 1), Pt(1, 1), Pt(1, 1), Pt(1, 1)}
	if !p.isPoint() {
		t.Error("point segment not detected")
	}
	d0, d1 = p.Tangents()
	diff(t, Vec2{}, d0)
	diff(t, Vec2{}, d1)
}
