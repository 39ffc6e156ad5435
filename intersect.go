package hobby

import (
	"cmp"
	"math"
	"slices"
)

const (
	// intersectTolerance is the flatness, relative to the size of the
	// geometry, below which subdivided pieces are treated as lines.
	intersectTolerance = 1e-7
	// maxIntersectDepth bounds the subdivision depth per segment pair.
	maxIntersectDepth = 48
	// intersectParamEpsilon is the distance in global parameter below which
	// two hits are the same intersection.
	intersectParamEpsilon = 1e-7
	// refineIterations is the number of Newton steps used to polish a hit.
	refineIterations = 4
)

// Intersection is a point shared by two contours, or by two different parts
// of the same contour. TA and TB are global parameters on the respective
// contours.
type Intersection struct {
	TA    float64
	TB    float64
	Point Point
}

// Intersect returns the points where a and b cross, ordered by TA and then TB.
// On closed contours, a crossing at the start is reported with parameter 0.
// Segments are intersected by recursive subdivision with bounding box culling
// until the pieces are flat, and hits are then polished with Newton's method.
// Tangential contacts may be reported as a single hit; stretches where the
// contours coincide are not reported. Contours that don't meet yield an empty
// result.
func Intersect(a, b Contour) []Intersection {
	return a.Intersections(b)
}

// Intersections returns the points where c and other cross. See [Intersect].
func (c Contour) Intersections(other Contour) []Intersection {
	if len(c.segs) == 0 || len(other.segs) == 0 {
		return nil
	}
	bbA, bbB := c.BoundingBox(), other.BoundingBox()
	tol := intersectTolerance * max(1, bbA.Union(bbB).MaxSide())
	if !bbA.Inflate(tol, tol).Overlaps(bbB) {
		return nil
	}

	var hits []Intersection
	for i, sa := range c.segs {
		if sa.isPoint() {
			continue
		}
		for j, sb := range other.segs {
			if sb.isPoint() {
				continue
			}
			intersectCubics(sa, sb, tol, func(ta, tb float64) {
				hits = addHit(hits, Intersection{
					TA:    c.wrapParam(c.globalParam(i, ta)),
					TB:    other.wrapParam(other.globalParam(j, tb)),
					Point: sa.Eval(ta),
				})
			})
		}
	}
	sortHits(hits)
	return hits
}

// wrapParam maps the end of a closed contour to its start, so that a crossing
// there is reported once.
func (c Contour) wrapParam(t float64) float64 {
	if c.closed && t >= 1-intersectParamEpsilon {
		return 0
	}
	return t
}

// monotonePiece is the part of segment seg between parameters t0 and t1 in
// which the segment is monotonic in both x and y.
type monotonePiece struct {
	seg    int
	t0, t1 float64
	c      CubicBez
}

// SelfIntersections returns the points where the contour crosses itself, with
// TA < TB for every hit. The points where consecutive segments join are not
// intersections.
//
// Segments are first split at their extrema; a piece that is monotonic in both
// coordinates cannot cross itself, so only pairs of pieces are examined.
func (c Contour) SelfIntersections() []Intersection {
	if len(c.segs) == 0 || c.Length() == 0 {
		return nil
	}
	tol := intersectTolerance * max(1, c.BoundingBox().MaxSide())

	var pieces []monotonePiece
	for i, s := range c.segs {
		if s.isPoint() {
			continue
		}
		ranges, n := ExtremaRanges(s)
		for _, r := range ranges[:n] {
			if r[1]-r[0] <= 0 {
				continue
			}
			pieces = append(pieces, monotonePiece{seg: i, t0: r[0], t1: r[1], c: s.Subsegment(r[0], r[1])})
		}
	}

	var hits []Intersection
	for p := range pieces {
		for q := p + 1; q < len(pieces); q++ {
			pa, pb := pieces[p], pieces[q]
			intersectCubics(pa.c, pb.c, tol, func(sa, sb float64) {
				la := pa.t0 + sa*(pa.t1-pa.t0)
				lb := pb.t0 + sb*(pb.t1-pb.t0)
				ta := c.globalParam(pa.seg, la)
				tb := c.globalParam(pb.seg, lb)
				if c.arclenBetween(ta, tb) <= 10*tol {
					// The join of two neighbouring pieces.
					return
				}
				if ta > tb {
					ta, tb = tb, ta
				}
				hits = addHit(hits, Intersection{TA: ta, TB: tb, Point: pa.c.Eval(sa)})
			})
		}
	}
	sortHits(hits)
	return hits
}

// arclenBetween returns the length of the shorter stretch of the contour
// between global parameters t0 and t1. For open contours, there is only one
// such stretch.
func (c Contour) arclenBetween(t0, t1 float64) float64 {
	d := math.Abs(c.ArclenAt(t1) - c.ArclenAt(t0))
	if c.closed {
		d = min(d, c.Length()-d)
	}
	return d
}

// intersectCubics calls emit with the local parameters of every crossing of a
// and b. A crossing can be reported more than once.
func intersectCubics(a, b CubicBez, tol float64, emit func(ta, tb float64)) {
	var rec func(a CubicBez, a0, a1 float64, b CubicBez, b0, b1 float64, depth int)
	rec = func(pa CubicBez, a0, a1 float64, pb CubicBez, b0, b1 float64, depth int) {
		bbA, bbB := pa.ControlBox(), pb.ControlBox()
		if !bbA.Inflate(tol, tol).Overlaps(bbB) {
			return
		}
		flatA, flatB := pa.isFlat(tol), pb.isFlat(tol)
		if (flatA && flatB) || depth >= maxIntersectDepth {
			li, ok := Line{pa.P0, pa.P3}.IntersectLine(Line{pb.P0, pb.P3})
			if !ok {
				return
			}
			ta, tb := refineIntersection(a, b, a0+li.T*(a1-a0), b0+li.U*(b1-b0))
			emit(ta, tb)
			return
		}
		if !flatA && (flatB || bbA.MaxSide() >= bbB.MaxSide()) {
			l, r := pa.Subdivide()
			m := 0.5 * (a0 + a1)
			rec(l, a0, m, pb, b0, b1, depth+1)
			rec(r, m, a1, pb, b0, b1, depth+1)
			return
		}
		l, r := pb.Subdivide()
		m := 0.5 * (b0 + b1)
		rec(pa, a0, a1, l, b0, m, depth+1)
		rec(pa, a0, a1, r, m, b1, depth+1)
	}
	rec(a, 0, 1, b, 0, 1, 0)
}

// refineIntersection polishes the parameters of an approximate crossing with
// Newton's method on a(ta) - b(tb) = 0. Steps that don't reduce the distance
// are rejected.
func refineIntersection(a, b CubicBez, ta, tb float64) (float64, float64) {
	best := a.Eval(ta).DistanceSquared(b.Eval(tb))
	for range refineIterations {
		if best == 0 {
			break
		}
		f := a.Eval(ta).Sub(b.Eval(tb))
		da, db := a.Deriv(ta), b.Deriv(tb)
		det := -da.Cross(db)
		if det == 0 || math.IsNaN(det) {
			break
		}
		nta := min(max(ta+f.Cross(db)/det, 0), 1)
		ntb := min(max(tb-da.Cross(f)/det, 0), 1)
		d := a.Eval(nta).DistanceSquared(b.Eval(ntb))
		if !(d < best) {
			break
		}
		ta, tb, best = nta, ntb, d
	}
	return ta, tb
}

// addHit appends h unless an equivalent hit has been recorded.
func addHit(hits []Intersection, h Intersection) []Intersection {
	for _, o := range hits {
		if math.Abs(o.TA-h.TA) <= intersectParamEpsilon && math.Abs(o.TB-h.TB) <= intersectParamEpsilon {
			return hits
		}
	}
	return append(hits, h)
}

func sortHits(hits []Intersection) {
	slices.SortFunc(hits, func(a, b Intersection) int {
		if c := cmp.Compare(a.TA, b.TA); c != 0 {
			return c
		}
		return cmp.Compare(a.TB, b.TB)
	})
}
