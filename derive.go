package hobby

import (
	"fmt"
	"log/slog"
	"slices"
)

// WidthFunc returns a width or distance for a global contour parameter t.
type WidthFunc func(t float64) float64

// Constant returns a WidthFunc that always returns v.
func Constant(v float64) WidthFunc {
	return func(float64) float64 { return v }
}

// Taper returns a WidthFunc that grows linearly from 0 at both ends of the
// contour to w in the middle.
func Taper(w float64) WidthFunc {
	return func(t float64) float64 {
		return w * 2 * min(t, 1-t)
	}
}

// sampleParams returns n uniformly spaced parameters from 0 to 1, with n
// clamped to at least 2.
func sampleParams(n int) []float64 {
	n = max(n, 2)
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i) / float64(n-1)
	}
	return out
}

// BuildRibbon samples c at samples uniformly spaced global parameters and
// displaces each sample by half the width in both normal directions:
//
//	left[i]  = c.Eval(t) + c.Normal(t) * width(t)/2
//	right[i] = c.Eval(t) - c.Normal(t) * width(t)/2
//
// with t = i/(samples-1). Values of samples below 2 are treated as 2. "Left"
// is the side [Contour.Normal] points to. The two sides can be joined into a
// polygon with [RibbonOutline].
//
// A contour of zero length has no ribbon; BuildRibbon then returns nil, nil.
func BuildRibbon(c Contour, width WidthFunc, samples int) (left, right []Point) {
	if c.Length() == 0 {
		Logger().Debug("ribbon of zero-length contour is empty")
		return nil, nil
	}
	ts := sampleParams(samples)
	left = make([]Point, len(ts))
	right = make([]Point, len(ts))
	for i, t := range ts {
		p := c.Eval(t)
		off := c.Normal(t).Mul(0.5 * width(t))
		left[i] = p.Translate(off)
		right[i] = p.Translate(off.Negate())
	}
	return left, right
}

// RibbonOutline joins the two sides of a ribbon into a single closed polygon:
// left in order followed by right reversed.
func RibbonOutline(left, right []Point) []Point {
	out := make([]Point, 0, len(left)+len(right))
	out = append(out, left...)
	for _, p := range slices.Backward(right) {
		out = append(out, p)
	}
	return out
}

// BuildOffset samples c like [BuildRibbon] and displaces each sample by
// distance(t) along the normal. Negative distances displace to the other side.
// A contour of zero length yields nil.
func BuildOffset(c Contour, distance WidthFunc, samples int) []Point {
	if c.Length() == 0 {
		Logger().Debug("offset of zero-length contour is empty")
		return nil
	}
	ts := sampleParams(samples)
	out := make([]Point, len(ts))
	for i, t := range ts {
		out[i] = c.Eval(t).Translate(c.Normal(t).Mul(distance(t)))
	}
	return out
}

// OffsetContour builds an offset of c like [BuildOffset] and fits a smooth
// contour through the offset points with [Fit], using opts. The result is
// closed if c is.
//
// It returns an error wrapping [ErrDegenerateGeometry] if c has zero length.
func OffsetContour(c Contour, distance WidthFunc, samples int, opts *FitOptions) (Contour, error) {
	pts := BuildOffset(c, distance, samples)
	if pts == nil {
		return Contour{}, fmt.Errorf("%w: cannot offset a contour of zero length", ErrDegenerateGeometry)
	}
	if c.closed {
		// The last sample repeats the first.
		pts = pts[:len(pts)-1]
	}
	out, err := Fit(pts, c.closed, opts)
	if err != nil {
		return Contour{}, fmt.Errorf("fitting offset: %w", err)
	}
	Logger().Debug("fitted offset contour", slog.Int("points", len(pts)), slog.Float64("length", out.Length()))
	return out, nil
}
