package hobby

// SplitN divides the contour into n open contours of equal arc length, in
// order. Values of n below 1 are treated as 1. A contour of zero length yields
// nil.
func (c Contour) SplitN(n int) []Contour {
	total := c.Length()
	if total == 0 {
		return nil
	}
	n = max(n, 1)
	out := make([]Contour, 0, n)
	t0 := 0.0
	for i := 1; i <= n; i++ {
		t1 := 1.0
		if i < n {
			t1 = c.ParamAtArclen(total * float64(i) / float64(n))
		}
		out = append(out, c.Sub(t0, t1))
		t0 = t1
	}
	return out
}

// Dashes splits the contour into n pieces of equal arc length, like
// [Contour.SplitN], and returns every other piece starting with the first.
func (c Contour) Dashes(n int) []Contour {
	parts := c.SplitN(n)
	out := parts[:0:0]
	for i, p := range parts {
		if i%2 == 0 {
			out = append(out, p)
		}
	}
	return out
}
