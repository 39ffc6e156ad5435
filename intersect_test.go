package hobby

import (
	"testing"
)

var figureEight = []Point{
	Pt(0, 0), Pt(50, 50), Pt(100, 0), Pt(150, -50),
	Pt(200, 0), Pt(150, 50), Pt(100, 0), Pt(50, -50),
}

func TestIntersectLines(t *testing.T) {
	a := lineContour(t, Pt(0, 0), Pt(10, 10))
	b := lineContour(t, Pt(0, 10), Pt(10, 0))
	hits := Intersect(a, b)
	if len(hits) != 1 {
		t.Fatalf("got %d intersections, want 1: %v", len(hits), hits)
	}
	assertNear(t, hits[0].Point, Pt(5, 5), 1e-9)
	assertNear(t, Pt(hits[0].TA, hits[0].TB), Pt(0.5, 0.5), 1e-9)
}

func TestIntersectCircle(t *testing.T) {
	c := mustFit(t, square, true, nil)
	l := lineContour(t, Pt(-50, 50), Pt(150, 50))
	hits := Intersect(c, l)
	if len(hits) != 2 {
		t.Fatalf("got %d intersections, want 2: %v", len(hits), hits)
	}
	if !(hits[0].TA < hits[1].TA) {
		t.Errorf("intersections aren't ordered: %v", hits)
	}
	for _, h := range hits {
		assertNear(t, c.Eval(h.TA), l.Eval(h.TB), 1e-6)
		assertNear(t, h.Point, c.Eval(h.TA), 1e-6)
	}

	// Swapping the arguments swaps the parameters.
	swapped := Intersect(l, c)
	if len(swapped) != 2 {
		t.Fatalf("got %d intersections, want 2: %v", len(swapped), swapped)
	}
	for _, h := range swapped {
		found := false
		for _, o := range hits {
			if Pt(h.TA, h.TB).Distance(Pt(o.TB, o.TA)) < 1e-6 {
				found = true
			}
		}
		if !found {
			t.Errorf("intersection %v has no counterpart in %v", h, hits)
		}
	}
}

func TestIntersectDisjoint(t *testing.T) {
	a := mustFit(t, square, true, nil)
	b := a.Translate(Vec(500, 0))
	if hits := Intersect(a, b); len(hits) != 0 {
		t.Errorf("got intersections %v, want none", hits)
	}
	var empty Contour
	if hits := Intersect(a, empty); len(hits) != 0 {
		t.Errorf("got intersections %v, want none", hits)
	}
	// Touching ends don't count as crossings when the lines are parallel.
	l1 := lineContour(t, Pt(0, 0), Pt(10, 0))
	l2 := lineContour(t, Pt(0, 1), Pt(10, 1))
	if hits := Intersect(l1, l2); len(hits) != 0 {
		t.Errorf("got intersections %v, want none", hits)
	}
}

func TestSelfIntersections(t *testing.T) {
	c := mustFit(t, figureEight, true, nil)
	hits := c.SelfIntersections()
	if len(hits) != 1 {
		t.Fatalf("got %d self-intersections, want 1: %v", len(hits), hits)
	}
	h := hits[0]
	if !(h.TA < h.TB) {
		t.Errorf("got TA = %v, TB = %v, want TA < TB", h.TA, h.TB)
	}
	assertNear(t, Pt(h.TA, h.TB), Pt(0.25, 0.75), 1e-6)
	assertNear(t, h.Point, Pt(100, 0), 1e-6)
	assertNear(t, c.Eval(h.TA), c.Eval(h.TB), 1e-6)
}

func TestSelfIntersectionsNone(t *testing.T) {
	for _, c := range []Contour{
		mustFit(t, square, true, nil),
		mustFit(t, []Point{Pt(0, 0), Pt(30, 40), Pt(80, 10), Pt(120, 60)}, false, nil),
		lineContour(t, Pt(0, 0), Pt(10, 0), Pt(10, 10)),
	} {
		if hits := c.SelfIntersections(); len(hits) != 0 {
			t.Errorf("got self-intersections %v, want none", hits)
		}
	}
}

func BenchmarkSelfIntersections(b *testing.B) {
	c, err := Fit(figureEight, true, nil)
	if err != nil {
		b.Fatal(err)
	}
	for range b.N {
		c.SelfIntersections()
	}
}
