package hobby

import (
	"math"
)

// Line represents a line segment. Flattened contours are made of lines, and
// lines are the primitive that curve intersection reduces to.
type Line struct {
	// The line's start point.
	P0 Point
	// The line's end point.
	P1 Point
}

var _ ParametricCurve = Line{}
var _ ArclenSolver = Line{}

// Length returns the length of the line.
func (l Line) Length() float64 {
	return l.P1.Sub(l.P0).Hypot()
}

// Arclen returns the length of the line
func (l Line) Arclen(accuracy float64) float64 {
	return l.Length()
}

func (l Line) SolveForArclen(arclen float64, accuracy float64) float64 {
	n := l.Length()
	if n == 0 {
		return 0
	}
	return min(max(arclen/n, 0), 1)
}

func (l Line) BoundingBox() Rect {
	return NewRectFromPoints(l.P0, l.P1)
}

func (l Line) Eval(t float64) Point {
	return l.P0.Lerp(l.P1, t)
}

// Nearest returns the squared distance from pt to the closest point on the
// line, and that point's parameter.
func (l Line) Nearest(pt Point) (distSq, t float64) {
	d := l.P1.Sub(l.P0)
	dotp := d.Dot(pt.Sub(l.P0))
	dSquared := d.Dot(d)
	if dotp <= 0.0 {
		return pt.DistanceSquared(l.P0), 0.0
	} else if dotp >= dSquared {
		return pt.DistanceSquared(l.P1), 1.0
	} else {
		t := dotp / dSquared
		dist := pt.DistanceSquared(l.Eval(t))
		return dist, t
	}
}

func (l Line) Start() Point { return l.P0 }
func (l Line) End() Point   { return l.P1 }

func (l Line) Subsegment(start, end float64) Line {
	return Line{l.Eval(start), l.Eval(end)}
}

func (l Line) SubsegmentCurve(start, end float64) ParametricCurve {
	return l.Subsegment(start, end)
}

func (l Line) Subdivide() (Line, Line) {
	return l.Subsegment(0.0, 0.5), l.Subsegment(0.5, 1.0)
}

func (l Line) SubdivideCurve() (ParametricCurve, ParametricCurve) {
	return l.Subdivide()
}

func (l Line) Extrema() ([MaxExtrema]float64, int) {
	return [MaxExtrema]float64{}, 0
}

// Cubic returns the line as a cubic Bézier with its control points at the
// thirds of the chord.
func (l Line) Cubic() CubicBez {
	return CubicBez{
		P0: l.P0,
		P1: l.P0.Lerp(l.P1, 1.0/3.0),
		P2: l.P0.Lerp(l.P1, 2.0/3.0),
		P3: l.P1,
	}
}

// LineIntersection describes where two lines cross, as the parameter on each.
type LineIntersection struct {
	// Parameter on the receiver of [Line.IntersectLine].
	T float64
	// Parameter on the argument of [Line.IntersectLine].
	U float64
}

// IntersectLine computes the crossing of l and o, if any. Both parameters must
// lie in [0, 1], widened by a tolerance of 1e-9. Parallel and coincident lines
// don't intersect.
func (l Line) IntersectLine(o Line) (LineIntersection, bool) {
	const epsilon = 1e-9
	d0 := l.P1.Sub(l.P0)
	d1 := o.P1.Sub(o.P0)
	det := d0.Cross(d1)
	scale := d0.Hypot() * d1.Hypot()
	if scale == 0 || math.Abs(det) <= epsilon*scale {
		return LineIntersection{}, false
	}
	w := o.P0.Sub(l.P0)
	t := w.Cross(d1) / det
	u := w.Cross(d0) / det
	if t < -epsilon || t > 1+epsilon || u < -epsilon || u > 1+epsilon {
		return LineIntersection{}, false
	}
	return LineIntersection{
		T: min(max(t, 0), 1),
		U: min(max(u, 0), 1),
	}, true
}
