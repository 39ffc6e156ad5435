package hobby

const (
	// boundaryEpsilon is the distance, relative to the size of the contour,
	// within which a point counts as lying on the boundary.
	boundaryEpsilon = 1e-9
	// maxBoundaryDepth bounds the subdivision depth of the boundary test.
	maxBoundaryDepth = 40
	// crossingAccuracy is the parameter accuracy with which ray crossings
	// are located.
	crossingAccuracy = 1e-12
)

// Contains reports whether pt lies inside c by the even-odd rule. Crossings of
// a horizontal ray with the segments are found on the curves themselves, so
// the result doesn't depend on a flattening tolerance. Open contours are
// treated as if closed by a straight line from their end to their start.
//
// Points on the boundary, that is within a tiny distance relative to the size
// of c, are outside. So are all points if c has no segments.
func Contains(c Contour, pt Point) bool {
	if len(c.segs) == 0 || !pt.isFinite() {
		return false
	}
	bbox := c.BoundingBox()
	eps := boundaryEpsilon * max(1, bbox.MaxSide())
	if !bbox.Inflate(eps, eps).ContainsInclusive(pt) {
		return false
	}
	if c.onBoundary(pt, eps) {
		return false
	}

	inside := false
	for _, s := range c.segs {
		if s.isPoint() {
			continue
		}
		ranges, n := ExtremaRanges(s)
		for _, r := range ranges[:n] {
			if crossesRay(s, r[0], r[1], pt) {
				inside = !inside
			}
		}
	}
	if !c.closed {
		if a, b := c.End(), c.Start(); (a.Y > pt.Y) != (b.Y > pt.Y) {
			x := a.X + (pt.Y-a.Y)*(b.X-a.X)/(b.Y-a.Y)
			if pt.X < x {
				inside = !inside
			}
		}
	}
	return inside
}

// Contains reports whether pt lies inside c. See [Contains].
func (c Contour) Contains(pt Point) bool {
	return Contains(c, pt)
}

// crossesRay reports whether the part of s between t0 and t1, which must be
// monotonic in y, crosses the ray from pt towards positive x. Like the usual
// polygon rule, a piece counts if exactly one of its ends lies above pt.
func crossesRay(s CubicBez, t0, t1 float64, pt Point) bool {
	y0, y1 := s.Eval(t0).Y, s.Eval(t1).Y
	if (y0 > pt.Y) == (y1 > pt.Y) {
		return false
	}
	// Orient f so that it rises from t0 to t1.
	sign := 1.0
	if y0 > y1 {
		sign = -1
	}
	f := func(t float64) float64 { return sign * (s.Eval(t).Y - pt.Y) }
	fa, fb := f(t0), f(t1)
	t := t0
	if fa != 0 {
		t = SolveITP(f, t0, t1, crossingAccuracy, 1, 0.2/(t1-t0), fa, fb)
	}
	return pt.X < s.Eval(t).X
}

// onBoundary reports whether pt lies within about eps of the contour, including
// the implicit closing line of an open contour.
func (c Contour) onBoundary(pt Point, eps float64) bool {
	for _, s := range c.segs {
		if nearCubic(s, pt, eps, 0) {
			return true
		}
	}
	if !c.closed {
		distSq, _ := Line{c.End(), c.Start()}.Nearest(pt)
		return distSq <= eps*eps
	}
	return false
}

// nearCubic subdivides s until its pieces are within eps of their chords and
// reports whether pt is within 2·eps of any chord near it.
func nearCubic(s CubicBez, pt Point, eps float64, depth int) bool {
	if !s.ControlBox().Inflate(2*eps, 2*eps).ContainsInclusive(pt) {
		return false
	}
	if depth >= maxBoundaryDepth || s.isFlat(eps) {
		distSq, _ := Line{s.P0, s.P3}.Nearest(pt)
		return distSq <= 4*eps*eps
	}
	l, r := s.Subdivide()
	return nearCubic(l, pt, eps, depth+1) || nearCubic(r, pt, eps, depth+1)
}

// Overlaps reports whether a and b share any point: either they cross, or one
// of them is closed and contains the other's start.
func Overlaps(a, b Contour) bool {
	if len(a.segs) == 0 || len(b.segs) == 0 {
		return false
	}
	if !a.BoundingBox().Overlaps(b.BoundingBox()) {
		return false
	}
	if a.closed && a.Contains(b.Start()) {
		return true
	}
	if b.closed && b.Contains(a.Start()) {
		return true
	}
	return len(Intersect(a, b)) > 0
}
