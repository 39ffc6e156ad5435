package hobby

import (
	"fmt"
	"log/slog"
	"math"
)

const (
	// DefaultTension is the tension used when none is given. It produces
	// MetaFont's "..".
	DefaultTension = 1.0
	// MinTension and MaxTension bound the tension; values outside the range
	// are clamped. Below 3/4 the mock curvature equations become singular,
	// which is also MetaFont's lower bound.
	MinTension = 0.75
	MaxTension = 2.0
	// DefaultCurl is the curl at the ends of open curves when none is given.
	DefaultCurl = 1.0

	// maxVelocity caps the relative handle length of a single segment.
	maxVelocity = 4.0
	// minDenominator guards the end-curl solution against division by
	// (nearly) zero.
	minDenominator = 1e-12
)

// FitOptions configures [Fit]. A nil *FitOptions selects [DefaultFitOptions].
type FitOptions struct {
	// Tension scales all handle lengths by 1/Tension: higher tension gives
	// tighter curves. Zero selects [DefaultTension]; other values are clamped
	// to [MinTension, MaxTension].
	Tension float64
	// StartCurl and EndCurl bias the curvature at the two ends of an open
	// curve. A curl of 1 makes the end approximately circular, a curl of 0
	// makes it approximately straight. Negative values are treated as 0.
	// Both are ignored for closed curves.
	StartCurl float64
	EndCurl   float64
	// StartDir and EndDir, if non-zero, fix the tangent direction at the first
	// and last point of an open curve, overriding the respective curl. They are
	// ignored for closed curves.
	StartDir Vec2
	EndDir   Vec2
}

// DefaultFitOptions returns the options used when Fit is called with nil
// options.
func DefaultFitOptions() FitOptions {
	return FitOptions{
		Tension:   DefaultTension,
		StartCurl: DefaultCurl,
		EndCurl:   DefaultCurl,
	}
}

// FitTension fits a curve through points using a uniform tension and the
// default end curls. It is shorthand for calling [Fit] with only the tension
// set. A tension of 0 selects [DefaultTension]; other values outside
// [MinTension, MaxTension] are clamped.
func FitTension(points []Point, closed bool, tension float64) (Contour, error) {
	opts := DefaultFitOptions()
	opts.Tension = tension
	return Fit(points, closed, &opts)
}

// Fit computes a smooth curve through points using John Hobby's algorithm, as
// used by MetaFont and MetaPost.
//
// The result has one cubic segment per pair of consecutive points, plus one
// from the last point back to the first if closed is true. Point i therefore
// lies at global parameter i/N of the returned contour, where N is the number
// of segments.
//
// The tangent directions at all points are chosen so that the curve has
// continuous mock curvature, by solving a tridiagonal (open curves) or cyclic
// tridiagonal (closed curves) linear system. Handle lengths follow Hobby's
// velocity function.
//
// Consecutive duplicate points are tolerated: the curve is fitted through the
// distinct points and each zero-length chord becomes a point segment whose four
// control points coincide. If closed is true and the last point repeats the
// first, the repeated point is dropped.
//
// Fit returns an error wrapping [ErrInsufficientPoints] for fewer than two
// points, [ErrInvalidGeometry] for non-finite coordinates and
// [ErrInvalidParameter] for non-finite options. It never returns a partial
// contour, nor one with non-finite control points; the latter is reported as
// [ErrInvalidGeometry].
func Fit(points []Point, closed bool, opts *FitOptions) (Contour, error) {
	if len(points) < 2 {
		return Contour{}, fmt.Errorf("%w: need at least 2 points, got %d", ErrInsufficientPoints, len(points))
	}
	for i, pt := range points {
		if !pt.isFinite() {
			return Contour{}, fmt.Errorf("%w: point %d is %s", ErrInvalidGeometry, i, pt)
		}
	}
	o, err := resolveFitOptions(opts)
	if err != nil {
		return Contour{}, err
	}

	log := Logger()
	pts := points
	if closed && len(pts) > 2 && pts[len(pts)-1] == pts[0] {
		log.Debug("dropping repeated closing point", slog.Int("points", len(pts)))
		pts = pts[:len(pts)-1]
	}

	kn := collectKnots(pts, closed)
	var knotSegs []CubicBez
	switch {
	case len(kn.chords) == 0:
		// All points coincide.
	case closed && len(kn.chords) == 2:
		knotSegs = []CubicBez{
			Line{kn.knots[0], kn.knots[1]}.Cubic(),
			Line{kn.knots[1], kn.knots[0]}.Cubic(),
		}
	default:
		knotSegs = solveHobby(kn.knots, closed, o)
	}

	segs := make([]CubicBez, len(kn.zero))
	next := 0
	for i, z := range kn.zero {
		if z {
			p := pts[i]
			segs[i] = CubicBez{p, p, p, p}
			continue
		}
		segs[i] = knotSegs[next]
		next++
	}
	if n := len(kn.zero) - len(kn.chords); n > 0 {
		log.Debug("inserted point segments for duplicate points", slog.Int("count", n))
	}
	for i, s := range segs {
		if s.IsNaN() || s.IsInf() {
			return Contour{}, fmt.Errorf("%w: segment %d is not finite", ErrInvalidGeometry, i)
		}
	}
	return newContour(segs, closed), nil
}

func resolveFitOptions(opts *FitOptions) (FitOptions, error) {
	o := DefaultFitOptions()
	if opts != nil {
		o = *opts
	}
	for _, p := range []struct {
		name string
		v    float64
	}{
		{"tension", o.Tension},
		{"start curl", o.StartCurl},
		{"end curl", o.EndCurl},
	} {
		if math.IsNaN(p.v) || math.IsInf(p.v, 0) {
			return o, fmt.Errorf("%w: %s is %g", ErrInvalidParameter, p.name, p.v)
		}
	}
	if o.StartDir.IsNaN() || o.StartDir.IsInf() || o.EndDir.IsNaN() || o.EndDir.IsInf() {
		return o, fmt.Errorf("%w: end directions must be finite", ErrInvalidParameter)
	}

	if o.Tension == 0 {
		o.Tension = DefaultTension
	}
	if t := min(max(o.Tension, MinTension), MaxTension); t != o.Tension {
		Logger().Debug("clamped tension", slog.Float64("tension", o.Tension), slog.Float64("clamped", t))
		o.Tension = t
	}
	o.StartCurl = max(o.StartCurl, 0)
	o.EndCurl = max(o.EndCurl, 0)
	return o, nil
}

// knotSet holds the distinct knots of a point sequence.
type knotSet struct {
	// knots are the distinct points the curve is fitted through.
	knots []Point
	// chords holds the index into zero of every non-degenerate chord.
	chords []int
	// zero reports, for every input chord, whether it has zero length.
	zero []bool
}

func collectKnots(pts []Point, closed bool) knotSet {
	n := len(pts) - 1
	if closed {
		n = len(pts)
	}
	ks := knotSet{zero: make([]bool, n)}
	for i := range n {
		a, b := pts[i], pts[(i+1)%len(pts)]
		if a == b {
			ks.zero[i] = true
			continue
		}
		ks.chords = append(ks.chords, i)
		ks.knots = append(ks.knots, a)
	}
	if !closed && len(ks.chords) > 0 {
		ks.knots = append(ks.knots, pts[ks.chords[len(ks.chords)-1]+1])
	}
	return ks
}

// solveHobby fits segments through distinct knots. Open curves need at least
// two knots, closed curves at least three.
func solveHobby(z []Point, closed bool, o FitOptions) []CubicBez {
	n := len(z)
	nChords := n - 1
	if closed {
		nChords = n
	}
	delta := make([]Vec2, nChords)
	d := make([]float64, nChords)
	for k := range nChords {
		delta[k] = z[(k+1)%n].Sub(z[k])
		d[k] = delta[k].Hypot()
	}
	// psi[k] is the turning angle at knot k; it is zero at the ends of open
	// curves.
	psi := make([]float64, n)
	for k := range n {
		if !closed && (k == 0 || k == n-1) {
			continue
		}
		prev := delta[(k-1+nChords)%nChords]
		psi[k] = reduceAngle(delta[k].Angle() - prev.Angle())
	}

	var theta []float64
	if closed {
		theta = solveCyclic(d, psi, o.Tension)
	} else {
		theta = solveOpen(delta, d, psi, o)
	}

	segs := make([]CubicBez, nChords)
	for k := range nChords {
		next := (k + 1) % n
		th := theta[k]
		phi := -psi[next] - theta[next]
		segs[k] = hobbySegment(z[k], z[next], delta[k], th, phi, o.Tension)
	}
	return segs
}

// interiorRow returns the coefficients of the mock curvature equation
//
//	A θ[k-1] + (B+C) θ[k] + D θ[k+1] = R
//
// at a knot whose incoming chord has length dPrev and whose outgoing chord has
// length dNext, for a uniform tension.
func interiorRow(dPrev, dNext, psiK, psiNext, tension float64) (a, bc, dd, r float64) {
	alpha := 1 / tension
	beta := 1 / tension
	a = alpha / (beta * beta * dPrev)
	b := (3 - alpha) / (beta * beta * dPrev)
	c := (3 - beta) / (alpha * alpha * dNext)
	dd = beta / (alpha * alpha * dNext)
	return a, b + c, dd, -b*psiK - dd*psiNext
}

// curlRatio is the coefficient relating the two end angles of a segment whose
// first knot has the given curl.
func curlRatio(curl, alpha, beta float64) float64 {
	num := (3-alpha)*alpha*alpha*curl + beta*beta*beta
	den := alpha*alpha*alpha*curl + (3-beta)*beta*beta
	return num / den
}

func solveOpen(delta []Vec2, d, psi []float64, o FitOptions) []float64 {
	n := len(d) + 1
	theta := make([]float64, n)
	startDir := o.StartDir != Vec2{}
	endDir := o.EndDir != Vec2{}
	if n == 2 && !startDir && !endDir {
		// Both ends curled: the segment is straight.
		return theta
	}

	alpha := 1 / o.Tension
	beta := 1 / o.Tension
	u := make([]float64, n)
	v := make([]float64, n)
	if startDir {
		u[0] = 0
		v[0] = reduceAngle(o.StartDir.Angle() - delta[0].Angle())
	} else {
		u[0] = curlRatio(o.StartCurl, alpha, beta)
		v[0] = -u[0] * psi[1]
	}
	for k := 1; k < n-1; k++ {
		a, bc, dd, r := interiorRow(d[k-1], d[k], psi[k], psi[k+1], o.Tension)
		t := bc - a*u[k-1]
		u[k] = dd / t
		v[k] = (r - a*v[k-1]) / t
	}

	last := n - 1
	if endDir {
		theta[last] = reduceAngle(o.EndDir.Angle() - delta[last-1].Angle())
	} else {
		ff := curlRatio(o.EndCurl, beta, alpha)
		den := 1 - ff*u[last-1]
		if math.Abs(den) > minDenominator {
			theta[last] = -ff * v[last-1] / den
		}
	}
	for k := last - 1; k >= 0; k-- {
		theta[k] = v[k] - u[k]*theta[k+1]
	}
	return theta
}

func solveCyclic(d, psi []float64, tension float64) []float64 {
	n := len(d)
	// Rows 1..n, where row n is knot 0 again. Each θ[k] is expressed as
	// v[k] + w[k] θ[0] - u[k] θ[k+1].
	u := make([]float64, n+1)
	v := make([]float64, n+1)
	w := make([]float64, n+1)
	w[0] = 1
	for k := 1; k <= n; k++ {
		kk := k % n
		a, bc, dd, r := interiorRow(d[k-1], d[kk], psi[kk], psi[(k+1)%n], tension)
		t := bc - a*u[k-1]
		u[k] = dd / t
		v[k] = (r - a*v[k-1]) / t
		w[k] = -a * w[k-1] / t
	}

	// θ[k] = ak + bk θ[0], starting from θ[n] = θ[0].
	ak := make([]float64, n+1)
	bk := make([]float64, n+1)
	bk[n] = 1
	for k := n - 1; k >= 1; k-- {
		ak[k] = v[k] - u[k]*ak[k+1]
		bk[k] = w[k] - u[k]*bk[k+1]
	}
	theta := make([]float64, n)
	theta[0] = (v[n] - u[n]*ak[1]) / (1 - w[n] + u[n]*bk[1])
	for k := 1; k < n; k++ {
		theta[k] = ak[k] + bk[k]*theta[0]
	}
	return theta
}

// velocity is Hobby's function for the relative handle length of a segment
// leaving at angle theta and arriving at angle phi, both measured against the
// chord.
func velocity(theta, phi, tension float64) float64 {
	st, ct := math.Sincos(theta)
	sf, cf := math.Sincos(phi)
	num := 2 + math.Sqrt2*(st-sf/16)*(sf-st/16)*(ct-cf)
	den := 3 * (1 + 0.5*(math.Sqrt(5)-1)*ct + 0.5*(3-math.Sqrt(5))*cf)
	f := num / den
	// den vanishes when both angles approach π.
	if !(f >= 0 && f < maxVelocity) {
		f = maxVelocity
	}
	return f / tension
}

func hobbySegment(z0, z1 Point, delta Vec2, theta, phi, tension float64) CubicBez {
	rho := velocity(theta, phi, tension)
	sigma := velocity(phi, theta, tension)
	return CubicBez{
		P0: z0,
		P1: z0.Translate(delta.Rotate(theta).Mul(rho)),
		P2: z1.Translate(delta.Rotate(-phi).Mul(-sigma)),
		P3: z1,
	}
}
