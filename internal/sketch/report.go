package sketch

import (
	"log/slog"

	"honnef.co/go/hobby"
)

// ShapeStats describes one contour of a built sketch.
type ShapeStats struct {
	Name              string
	Segments          int
	Length            float64
	SelfIntersections int
}

// Crossing records how often two contours cross.
type Crossing struct {
	A, B  string
	Count int
}

// Report summarizes the contours of a built sketch.
type Report struct {
	Shapes    []ShapeStats
	Crossings []Crossing
	// Overlapping counts pairs of contours that share any point, including
	// pairs where one closed contour contains the other.
	Overlapping int
}

// Analyze measures every contour item and intersects every pair of them.
// Other items are ignored.
func Analyze(items []Item) Report {
	var contours []ContourItem
	for _, it := range items {
		if c, ok := it.(ContourItem); ok {
			contours = append(contours, c)
		}
	}

	var r Report
	for _, c := range contours {
		r.Shapes = append(r.Shapes, ShapeStats{
			Name:              c.Name,
			Segments:          c.Contour.NumSegments(),
			Length:            c.Contour.Length(),
			SelfIntersections: len(c.Contour.SelfIntersections()),
		})
	}
	for i, a := range contours {
		for _, b := range contours[i+1:] {
			if n := len(hobby.Intersect(a.Contour, b.Contour)); n > 0 {
				r.Crossings = append(r.Crossings, Crossing{A: a.Name, B: b.Name, Count: n})
			}
			if hobby.Overlaps(a.Contour, b.Contour) {
				r.Overlapping++
			}
		}
	}
	return r
}

// Log writes the report to l at info level.
func (r Report) Log(l *slog.Logger) {
	for _, s := range r.Shapes {
		l.Info("contour",
			slog.String("shape", s.Name),
			slog.Int("segments", s.Segments),
			slog.Float64("length", s.Length),
			slog.Int("self_intersections", s.SelfIntersections))
	}
	for _, c := range r.Crossings {
		l.Info("crossing", slog.String("a", c.A), slog.String("b", c.B), slog.Int("count", c.Count))
	}
	l.Info("summary", slog.Int("contours", len(r.Shapes)), slog.Int("overlapping_pairs", r.Overlapping))
}
