package hobby

import (
	"fmt"
	"iter"
	"log/slog"
	"math"
	"sort"
	"strings"
)

const (
	// lengthAccuracy is the accuracy with which segment lengths are measured
	// when a contour is built.
	lengthAccuracy = 1e-9
	// continuityEpsilon is the relative distance up to which adjacent segment
	// endpoints are considered to coincide.
	continuityEpsilon = 1e-9
	// tangentEpsilon is the squared length below which a derivative is treated
	// as zero.
	tangentEpsilon = 1e-18
	// tangentStep is the parameter distance of the samples used to estimate a
	// tangent where the derivative vanishes.
	tangentStep = 1e-4
)

// Contour is a continuous path made of cubic Bézier segments, either open or
// closed. Contours are immutable; all operations return new values. The zero
// value is an empty contour that evaluates to the origin.
//
// # Parameterization
//
// A global parameter t ∈ [0, 1] maps uniformly onto segments: with N segments,
// segment i covers [i/N, (i+1)/N] and t = 1 is the end of the last segment.
// Values outside [0, 1] are clamped and NaN is treated as 0. Contours produced
// by [Fit] thus pass through input point i at t = i/N. Arc length
// parameterization is available through [Contour.ParamAtArclen] and
// [Contour.EvalArclen].
type Contour struct {
	segs   []CubicBez
	closed bool
	// cum[i] is the length of segments 0 through i-1.
	cum []float64
}

// NewContour returns a contour made of segs. The segments must be finite and
// each must start where the previous one ends. For a closed contour, the last
// segment must end where the first starts.
func NewContour(segs []CubicBez, closed bool) (Contour, error) {
	if len(segs) == 0 {
		return Contour{}, fmt.Errorf("%w: contour needs at least 1 segment", ErrInsufficientPoints)
	}
	var bbox Rect
	for i, s := range segs {
		if s.IsNaN() || s.IsInf() {
			return Contour{}, fmt.Errorf("%w: segment %d is not finite", ErrInvalidGeometry, i)
		}
		if i == 0 {
			bbox = s.BoundingBox()
		} else {
			bbox = bbox.Union(s.BoundingBox())
		}
	}
	eps := continuityEpsilon * max(1, bbox.MaxSide())
	for i := 1; i < len(segs); i++ {
		if d := segs[i-1].P3.Distance(segs[i].P0); d > eps {
			return Contour{}, fmt.Errorf("%w: segment %d starts %g away from the end of segment %d", ErrInvalidGeometry, i, d, i-1)
		}
	}
	if closed {
		if d := segs[len(segs)-1].P3.Distance(segs[0].P0); d > eps {
			return Contour{}, fmt.Errorf("%w: closed contour ends %g away from its start", ErrInvalidGeometry, d)
		}
	}
	return newContour(append([]CubicBez(nil), segs...), closed), nil
}

// newContour takes ownership of segs without validating them.
func newContour(segs []CubicBez, closed bool) Contour {
	cum := make([]float64, len(segs)+1)
	for i, s := range segs {
		cum[i+1] = cum[i] + s.Arclen(lengthAccuracy)
	}
	return Contour{segs: segs, closed: closed, cum: cum}
}

func (c Contour) String() string {
	sb := &strings.Builder{}
	fmt.Fprintf(sb, "Contour(closed=%t", c.closed)
	for _, s := range c.segs {
		fmt.Fprintf(sb, ", [%s %s %s %s]", s.P0, s.P1, s.P2, s.P3)
	}
	sb.WriteString(")")
	return sb.String()
}

// Closed reports whether the contour is closed.
func (c Contour) Closed() bool { return c.closed }

// NumSegments returns the number of segments.
func (c Contour) NumSegments() int { return len(c.segs) }

// Segment returns the i'th segment. It panics if i is out of range.
func (c Contour) Segment(i int) CubicBez { return c.segs[i] }

// Segments returns a copy of the contour's segments.
func (c Contour) Segments() []CubicBez {
	return append([]CubicBez(nil), c.segs...)
}

// Start returns the contour's first point.
func (c Contour) Start() Point {
	if len(c.segs) == 0 {
		return Point{}
	}
	return c.segs[0].P0
}

// End returns the contour's last point. For closed contours, this is the same
// as the start.
func (c Contour) End() Point {
	if len(c.segs) == 0 {
		return Point{}
	}
	return c.segs[len(c.segs)-1].P3
}

// Length returns the arc length of the contour, the sum of its segments'
// lengths.
func (c Contour) Length() float64 {
	if len(c.cum) == 0 {
		return 0
	}
	return c.cum[len(c.cum)-1]
}

// locate maps a global parameter to a segment and a parameter within it.
func (c Contour) locate(t float64) (int, float64) {
	n := len(c.segs)
	if math.IsNaN(t) {
		t = 0
	}
	t = min(max(t, 0), 1)
	s := t * float64(n)
	i := int(math.Floor(s))
	if i >= n {
		return n - 1, 1
	}
	return i, s - float64(i)
}

// globalParam is the inverse of locate.
func (c Contour) globalParam(i int, local float64) float64 {
	return (float64(i) + local) / float64(len(c.segs))
}

// Eval returns the point at global parameter t.
func (c Contour) Eval(t float64) Point {
	if len(c.segs) == 0 {
		return Point{}
	}
	i, lt := c.locate(t)
	return c.segs[i].Eval(lt)
}

// Tangent returns the unit tangent at global parameter t.
//
// Where the derivative vanishes, the direction is estimated from nearby
// samples, then from the segment's control points, then from the neighbouring
// segments. If all of these are degenerate, as for a contour whose points all
// coincide, Tangent returns ⟨1, 0⟩.
func (c Contour) Tangent(t float64) Vec2 {
	fallback := Vec(1, 0)
	if len(c.segs) == 0 {
		return fallback
	}
	i, lt := c.locate(t)
	seg := c.segs[i]
	if d := seg.Deriv(lt); d.Hypot2() > tangentEpsilon {
		return d.Normalize()
	}
	if !seg.isPoint() {
		a := seg.Eval(max(lt-tangentStep, 0))
		b := seg.Eval(min(lt+tangentStep, 1))
		if d := b.Sub(a); d.Hypot2() > tangentEpsilon {
			return d.Normalize()
		}
		d0, d1 := seg.Tangents()
		d := d0
		if lt >= 0.5 {
			d = d1
		}
		if d.Hypot2() > tangentEpsilon {
			return d.Normalize()
		}
	}
	if d, ok := c.neighbourTangent(i, lt < 0.5); ok {
		Logger().Debug("tangent taken from neighbouring segment", slog.Int("segment", i))
		return d
	}
	return fallback
}

// neighbourTangent returns the tangent of the closest non-point segment before
// (backward) or after segment i, falling back to the other direction.
func (c Contour) neighbourTangent(i int, backward bool) (Vec2, bool) {
	n := len(c.segs)
	for _, dir := range [2]bool{backward, !backward} {
		for step := 1; step < n; step++ {
			j := i + step
			if dir {
				j = i - step
			}
			if c.closed {
				j = (j + n) % n
			} else if j < 0 || j >= n {
				break
			}
			if c.segs[j].isPoint() {
				continue
			}
			d0, d1 := c.segs[j].Tangents()
			d := d0
			if dir {
				d = d1
			}
			return d.NormalizeOr(Vec(1, 0)), true
		}
	}
	return Vec2{}, false
}

// Normal returns the unit normal at global parameter t. It is the tangent
// rotated by +90°, see [Vec2.Turn90]: it points to the left of the direction
// of travel in a y-up coordinate system and to the right in a y-down one.
func (c Contour) Normal(t float64) Vec2 {
	return c.Tangent(t).Turn90()
}

// subRange returns the segments covering [t0, t1], with t0 <= t1.
func (c Contour) subRange(t0, t1 float64) []CubicBez {
	i0, l0 := c.locate(t0)
	i1, l1 := c.locate(t1)
	if l1 == 0 && i1 > i0 {
		i1, l1 = i1-1, 1
	}
	if i0 == i1 {
		return []CubicBez{c.segs[i0].Subsegment(l0, l1)}
	}
	out := make([]CubicBez, 0, i1-i0+1)
	out = append(out, c.segs[i0].Subsegment(l0, 1))
	out = append(out, c.segs[i0+1:i1]...)
	out = append(out, c.segs[i1].Subsegment(0, l1))
	return out
}

// Sub returns the open contour covering the global parameter range [t0, t1].
// Segments are split with de Casteljau's algorithm where the range ends inside
// a segment.
//
// If t0 > t1, a closed contour yields the range that wraps around through
// t = 0, while an open contour yields the range [t1, t0] reversed.
func (c Contour) Sub(t0, t1 float64) Contour {
	if len(c.segs) == 0 {
		return Contour{}
	}
	if math.IsNaN(t0) {
		t0 = 0
	}
	if math.IsNaN(t1) {
		t1 = 0
	}
	t0 = min(max(t0, 0), 1)
	t1 = min(max(t1, 0), 1)
	if t0 <= t1 {
		return newContour(c.subRange(t0, t1), false)
	}
	if !c.closed {
		return c.Sub(t1, t0).Reverse()
	}
	var segs []CubicBez
	if t0 < 1 {
		segs = append(segs, c.subRange(t0, 1)...)
	}
	if t1 > 0 {
		segs = append(segs, c.subRange(0, t1)...)
	}
	if len(segs) == 0 {
		p := c.Start()
		segs = []CubicBez{{p, p, p, p}}
	}
	return newContour(segs, false)
}

// Transform applies an affine transformation to all control points.
func (c Contour) Transform(aff Affine) Contour {
	segs := make([]CubicBez, len(c.segs))
	for i, s := range c.segs {
		segs[i] = s.Transform(aff)
	}
	return newContour(segs, c.closed)
}

// Translate moves the contour by v.
func (c Contour) Translate(v Vec2) Contour {
	segs := make([]CubicBez, len(c.segs))
	for i, s := range c.segs {
		segs[i] = s.Translate(v)
	}
	return Contour{segs: segs, closed: c.closed, cum: c.cum}
}

// Reverse returns the contour traversed in the opposite direction, so that
// c.Reverse().Eval(t) equals c.Eval(1-t).
func (c Contour) Reverse() Contour {
	n := len(c.segs)
	segs := make([]CubicBez, n)
	cum := make([]float64, len(c.cum))
	for i, s := range c.segs {
		segs[n-1-i] = s.Reverse()
	}
	for i := range n {
		cum[i+1] = cum[i] + (c.cum[n-i] - c.cum[n-i-1])
	}
	return Contour{segs: segs, closed: c.closed, cum: cum}
}

// BoundingBox returns the smallest rectangle enclosing the contour.
func (c Contour) BoundingBox() Rect {
	if len(c.segs) == 0 {
		return Rect{}
	}
	bbox := c.segs[0].BoundingBox()
	for _, s := range c.segs[1:] {
		bbox = bbox.Union(s.BoundingBox())
	}
	return bbox
}

// Polyline approximates the contour by points no further than tolerance from
// the curve. For closed contours, the last point repeats the first.
func (c Contour) Polyline(tolerance float64) []Point {
	if len(c.segs) == 0 {
		return nil
	}
	out := []Point{c.segs[0].P0}
	for _, s := range c.segs {
		out = append(out, s.Flatten(tolerance)[1:]...)
	}
	return out
}

// PathElements returns the contour as path elements: a move to the start, one
// cubic per segment, and a close for closed contours.
func (c Contour) PathElements() iter.Seq[PathElement] {
	return func(yield func(PathElement) bool) {
		if len(c.segs) == 0 {
			return
		}
		if !yield(MoveTo(c.segs[0].P0)) {
			return
		}
		for _, s := range c.segs {
			if !yield(CubicTo(s.P1, s.P2, s.P3)) {
				return
			}
		}
		if c.closed {
			yield(ClosePath())
		}
	}
}

// Path returns the contour as a [BezPath].
func (c Contour) Path() BezPath {
	var p BezPath
	for el := range c.PathElements() {
		p.Push(el)
	}
	return p
}

// SVG returns the contour as SVG path data.
func (c Contour) SVG(opts SVGOptions) string {
	return SVG(c.PathElements(), opts)
}

// ArclenAt returns the arc length from the start of the contour to global
// parameter t.
func (c Contour) ArclenAt(t float64) float64 {
	if len(c.segs) == 0 {
		return 0
	}
	i, lt := c.locate(t)
	if lt == 0 {
		return c.cum[i]
	}
	return c.cum[i] + c.segs[i].Subsegment(0, lt).Arclen(lengthAccuracy)
}

// ParamAtArclen returns the global parameter at which the arc length from the
// start reaches s. s is clamped to [0, Length()]. A contour of zero length
// returns 0.
func (c Contour) ParamAtArclen(s float64) float64 {
	total := c.Length()
	if total == 0 || math.IsNaN(s) || s <= 0 {
		return 0
	}
	if s >= total {
		return 1
	}
	n := len(c.segs)
	// First segment whose end lies beyond s.
	i := sort.Search(n, func(i int) bool { return c.cum[i+1] > s })
	if i >= n {
		return 1
	}
	local := SolveForArclen(c.segs[i], s-c.cum[i], DefaultAccuracy)
	return c.globalParam(i, local)
}

// EvalArclen returns the point at fraction u ∈ [0, 1] of the contour's arc
// length.
func (c Contour) EvalArclen(u float64) Point {
	return c.Eval(c.ParamAtArclen(u * c.Length()))
}

// ArclenSamples returns n global parameters whose points are spaced evenly by
// arc length, from the start to the end of the contour. Values of n below 2
// are treated as 2. A contour of zero length yields nil.
func (c Contour) ArclenSamples(n int) []float64 {
	total := c.Length()
	if total == 0 {
		return nil
	}
	n = max(n, 2)
	out := make([]float64, n)
	for i := range out {
		out[i] = c.ParamAtArclen(total * float64(i) / float64(n-1))
	}
	out[n-1] = 1
	return out
}
