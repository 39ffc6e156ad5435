package hobby

import (
	"iter"
	"math"
	"sort"
)

// DefaultLengthSamples is a number of chords for [CubicBez.ApproxLength] that
// is accurate enough for reporting, but not for arc length parameterization.
const DefaultLengthSamples = 32

// maxFlattenDepth bounds the recursion of [CubicBez.Flatten], which yields at
// most 2^maxFlattenDepth lines per segment.
const maxFlattenDepth = 16

var _ ParametricCurve = CubicBez{}
var _ Arclener = CubicBez{}

// CubicBez is a cubic Bézier segment: start point, two control points and end
// point. It is the building block of every [Contour].
type CubicBez struct {
	P0 Point
	P1 Point
	P2 Point
	P3 Point
}

func (c CubicBez) IsInf() bool {
	return c.P0.IsInf() || c.P1.IsInf() || c.P2.IsInf() || c.P3.IsInf()
}

func (c CubicBez) IsNaN() bool {
	return c.P0.IsNaN() || c.P1.IsNaN() || c.P2.IsNaN() || c.P3.IsNaN()
}

// isPoint reports whether all four control points coincide.
func (c CubicBez) isPoint() bool {
	return c.P0 == c.P1 && c.P0 == c.P2 && c.P0 == c.P3
}

func (c CubicBez) BoundingBox() Rect {
	return BoundingBox(c)
}

// ControlBox returns the smallest rectangle enclosing all four control points.
// It contains the segment and is cheaper to compute than the bounding box.
func (c CubicBez) ControlBox() Rect {
	return NewRectFromPoints(c.P0, c.P1).UnionPoint(c.P2).UnionPoint(c.P3)
}

// PathElements returns the segment as a move followed by a cubic.
func (c CubicBez) PathElements() iter.Seq[PathElement] {
	return func(yield func(PathElement) bool) {
		_ = yield(MoveTo(c.P0)) &&
			yield(CubicTo(c.P1, c.P2, c.P3))
	}
}

// Arclen returns the arclength of a cubic Bézier segment.
//
// This is an adaptive subdivision approach using Legendre-Gauss quadrature
func (c CubicBez) Arclen(accuracy float64) float64 {
	return c.arclen(accuracy, 0)
}

func (c CubicBez) arclen(accuracy float64, depth int) float64 {
	d03 := c.P3.Sub(c.P0)
	d01 := c.P1.Sub(c.P0)
	d12 := c.P2.Sub(c.P1)
	d23 := c.P3.Sub(c.P2)
	lplc := d01.Hypot() + d12.Hypot() + d23.Hypot() - d03.Hypot()
	dd1 := d12.Sub(d01)
	dd2 := d23.Sub(d12)
	// The following values don't have the factor of 3 for first deriv
	dm := d01.Add(d23).Mul(0.25).Add(d12.Mul(0.5)) // first derivative at midpoint
	dm1 := dd2.Add(dd1).Mul(0.5)                   // second derivative at midpoint
	dm2 := dd2.Sub(dd1).Mul(0.25)                  // 0.5 * (third derivative at midpoint)

	var est float64
	for _, coeff := range gaussLegendreCoeffs8 {
		wi, xi := coeff[0], coeff[1]
		dNorm2 := dm.Add(dm1.Mul(xi)).Add(dm2.Mul(xi * xi)).Hypot2()
		ddNorm2 := dm1.Add(dm2.Mul(2.0 * xi)).Hypot2()
		est += wi * (ddNorm2 / dNorm2)
	}
	if math.IsNaN(est) {
		// dNorm2 will be 0 as c approaches a singularity
		est = 0
	}

	estGauss8Error := min(math.Pow(est, 3)*2.5e-6, 3e-2) * lplc
	if estGauss8Error < accuracy {
		return arclenQuadratureCore(gaussLegendreCoeffs8Half[:], dm, dm1, dm2)
	}
	estGauss16Error := min(math.Pow(est, 6)*1.5e-11, 9e-3) * lplc
	if estGauss16Error < accuracy {
		return arclenQuadratureCore(gaussLegendreCoeffs16Half[:], dm, dm1, dm2)
	}
	estGauss24Error := min(math.Pow(est, 9)*3.5e-16, 3.5e-3) * lplc
	if estGauss24Error < accuracy || depth >= 20 {
		return arclenQuadratureCore(gaussLegendreCoeffs24Half[:], dm, dm1, dm2)
	}
	c0, c1 := c.Subdivide()
	return c0.arclen(accuracy*0.5, depth+1) + c1.arclen(accuracy*0.5, depth+1)
}

func arclenQuadratureCore(coeffs [][2]float64, dm Vec2, dm1 Vec2, dm2 Vec2) float64 {
	var sum float64
	for _, coeff := range coeffs {
		wi, xi := coeff[0], coeff[1]
		d := dm.Add(dm2.Mul(xi * xi))
		dpx := d.Add(dm1.Mul(xi)).Hypot()
		dmx := d.Sub(dm1.Mul(xi)).Hypot()
		sum += math.Sqrt(2.25) * wi * (dpx + dmx)
	}
	return sum
}

// ApproxLength returns the length of the polyline through samples+1 equally
// spaced parameter values. Values of samples below 2 are treated as 2.
//
// The result never exceeds the true arclength and converges to it as samples
// grows; [CubicBez.Arclen] is the accurate alternative.
func (c CubicBez) ApproxLength(samples int) float64 {
	samples = max(samples, 2)
	var total float64
	prev := c.P0
	for i := 1; i <= samples; i++ {
		p := c.Eval(float64(i) / float64(samples))
		total += p.Distance(prev)
		prev = p
	}
	return total
}

// Eval evaluates the Bernstein form of the segment at t.
func (c CubicBez) Eval(t float64) Point {
	mt := 1.0 - t
	a := Vec2(c.P0).Mul(mt * mt * mt)
	b := Vec2(c.P1).Mul(mt * mt * 3.0)
	cc := Vec2(c.P2).Mul(mt * 3.0)
	d := Vec2(c.P3)
	v := a.Add(b.Add(cc.Add(d.Mul(t)).Mul(t)).Mul(t))
	return Point(v)
}

// Deriv returns the (unnormalized) derivative B'(t).
func (c CubicBez) Deriv(t float64) Vec2 {
	mt := 1.0 - t
	d01 := c.P1.Sub(c.P0)
	d12 := c.P2.Sub(c.P1)
	d23 := c.P3.Sub(c.P2)
	return d01.Mul(3 * mt * mt).
		Add(d12.Mul(6 * mt * t)).
		Add(d23.Mul(3 * t * t))
}

// SplitAt splits the segment at t using de Casteljau's algorithm. The two
// halves meet exactly at c.Eval(t).
func (c CubicBez) SplitAt(t float64) (CubicBez, CubicBez) {
	p01 := c.P0.Lerp(c.P1, t)
	p12 := c.P1.Lerp(c.P2, t)
	p23 := c.P2.Lerp(c.P3, t)
	p012 := p01.Lerp(p12, t)
	p123 := p12.Lerp(p23, t)
	m := p012.Lerp(p123, t)
	return CubicBez{c.P0, p01, p012, m}, CubicBez{m, p123, p23, c.P3}
}

// Subdivide subdivides the cubic into halves, using de Casteljau.
func (c CubicBez) Subdivide() (CubicBez, CubicBez) {
	return c.SplitAt(0.5)
}

// SubdivideCurve subdivides the cubic into halves, using de Casteljau.
func (c CubicBez) SubdivideCurve() (ParametricCurve, ParametricCurve) {
	return c.Subdivide()
}

func (c CubicBez) Start() Point {
	return c.P0
}

func (c CubicBez) End() Point {
	return c.P3
}

// Subsegment returns the part of the segment between t0 and t1. If t0 > t1,
// the result runs backwards.
func (c CubicBez) Subsegment(t0, t1 float64) CubicBez {
	if t0 > t1 {
		return c.Subsegment(t1, t0).Reverse()
	}
	if t0 == 0 && t1 == 1 {
		return c
	}
	right := c
	if t0 > 0 {
		_, right = c.SplitAt(t0)
	}
	if t1 >= 1 {
		return right
	}
	left, _ := right.SplitAt((t1 - t0) / (1 - t0))
	left.P3 = c.Eval(t1)
	return left
}

func (c CubicBez) SubsegmentCurve(t0, t1 float64) ParametricCurve {
	return c.Subsegment(t0, t1)
}

// Reverse returns the same segment traversed from P3 to P0.
func (c CubicBez) Reverse() CubicBez {
	return CubicBez{c.P3, c.P2, c.P1, c.P0}
}

func (c CubicBez) Extrema() ([MaxExtrema]float64, int) {
	// two calls to oneCoord, up to 2 roots per call, for a total of 4 possible values.
	var out [MaxExtrema]float64
	var outN int
	oneCoord := func(d0, d1, d2 float64) {
		a := d0 - 2*d1 + d2
		b := 2 * (d1 - d0)
		c := d0
		roots, n := SolveQuadratic(c, b, a)
		for _, t := range roots[:n] {
			if t > 0.0 && t < 1.0 {
				out[outN] = t
				outN++
			}
		}
	}

	d0 := c.P1.Sub(c.P0)
	d1 := c.P2.Sub(c.P1)
	d2 := c.P3.Sub(c.P2)
	oneCoord(d0.X, d1.X, d2.X)
	oneCoord(d0.Y, d1.Y, d2.Y)
	sort.Float64s(out[:outN])
	return out, outN
}

func (c CubicBez) Transform(aff Affine) CubicBez {
	return CubicBez{
		P0: c.P0.Transform(aff),
		P1: c.P1.Transform(aff),
		P2: c.P2.Transform(aff),
		P3: c.P3.Transform(aff),
	}
}

func (c CubicBez) Translate(v Vec2) CubicBez {
	return CubicBez{
		P0: c.P0.Translate(v),
		P1: c.P1.Translate(v),
		P2: c.P2.Translate(v),
		P3: c.P3.Translate(v),
	}
}

// Tangents returns the (unnormalized) directions at the start and the end of
// the segment. When a control point coincides with its endpoint, the next
// distinct control point is used instead. A point segment yields zero vectors.
func (c CubicBez) Tangents() (Vec2, Vec2) {
	const epsilon = 1e-12
	d01 := c.P1.Sub(c.P0)
	var d0, d1 Vec2
	if d01.Hypot2() > epsilon {
		d0 = d01
	} else {
		d02 := c.P2.Sub(c.P0)
		if d02.Hypot2() > epsilon {
			d0 = d02
		} else {
			d0 = c.P3.Sub(c.P0)
		}
	}
	d23 := c.P3.Sub(c.P2)
	if d23.Hypot2() > epsilon {
		d1 = d23
	} else {
		d13 := c.P3.Sub(c.P1)
		if d13.Hypot2() > epsilon {
			d1 = d13
		} else {
			d1 = c.P3.Sub(c.P0)
		}
	}
	return d0, d1
}

// flatness returns 16 times the squared upper bound of the distance between
// the segment and its chord.
func (c CubicBez) flatness() float64 {
	ux := 3.0*c.P1.X - 2.0*c.P0.X - c.P3.X
	uy := 3.0*c.P1.Y - 2.0*c.P0.Y - c.P3.Y
	vx := 3.0*c.P2.X - c.P0.X - 2.0*c.P3.X
	vy := 3.0*c.P2.Y - c.P0.Y - 2.0*c.P3.Y
	return max(ux*ux, vx*vx) + max(uy*uy, vy*vy)
}

// isFlat reports whether the segment is within tolerance of its chord.
func (c CubicBez) isFlat(tolerance float64) bool {
	return c.flatness() <= 16*tolerance*tolerance
}

// Flatten approximates the segment by a polyline that stays within tolerance of
// the curve. The result starts at P0 and ends at P3.
func (c CubicBez) Flatten(tolerance float64) []Point {
	out := []Point{c.P0}
	return c.flattenInto(out, tolerance, 0)
}

func (c CubicBez) flattenInto(out []Point, tolerance float64, depth int) []Point {
	if depth >= maxFlattenDepth || c.isFlat(tolerance) {
		return append(out, c.P3)
	}
	c0, c1 := c.Subdivide()
	out = c0.flattenInto(out, tolerance, depth+1)
	return c1.flattenInto(out, tolerance, depth+1)
}
