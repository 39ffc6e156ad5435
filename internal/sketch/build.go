package sketch

import (
	"fmt"
	"image/color"
	"log/slog"
	"math"
	"math/rand/v2"

	"honnef.co/go/hobby"
)

// Style is the paint of an item. Transparent colors aren't drawn.
type Style struct {
	Name        string
	Fill        color.NRGBA
	Stroke      color.NRGBA
	StrokeWidth float64
}

// Item is a drawable result of building a sketch. It is one of [ContourItem],
// [PolygonItem], or [PolylineItem].
type Item interface {
	ItemStyle() Style
	isItem()
}

// ContourItem is a fitted curve.
type ContourItem struct {
	Style
	Contour hobby.Contour
}

// PolygonItem is a closed polygon, such as the outline of a ribbon.
type PolygonItem struct {
	Style
	Points []hobby.Point
}

// PolylineItem is an open polyline, such as an unsmoothed offset.
type PolylineItem struct {
	Style
	Points []hobby.Point
}

func (it ContourItem) ItemStyle() Style  { return it.Style }
func (it PolygonItem) ItemStyle() Style  { return it.Style }
func (it PolylineItem) ItemStyle() Style { return it.Style }

func (ContourItem) isItem()  {}
func (PolygonItem) isItem()  {}
func (PolylineItem) isItem() {}

// NewRand returns the random source Build uses when given nil.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Build fits every shape of s and derives its items, in shape order. All
// randomness comes from rng; a nil rng is seeded from s.Seed, so that the
// same sketch always builds the same items.
func Build(s *Sketch, rng *rand.Rand) ([]Item, error) {
	if rng == nil {
		rng = NewRand(s.Seed)
	}
	log := hobby.Logger()
	canvas := hobby.Identity
	if s.YUp {
		canvas = hobby.FlipY.ThenTranslate(hobby.Vec(0, s.Height))
	}
	var items []Item
	for _, sh := range s.Shapes {
		built, err := buildShape(sh, canvas, rng)
		if err != nil {
			return nil, fmt.Errorf("shape %q: %w", sh.Name, err)
		}
		log.Debug("built shape", slog.String("shape", sh.Name), slog.String("kind", sh.Kind), slog.Int("items", len(built)))
		items = append(items, built...)
	}
	return items, nil
}

func buildShape(sh Shape, canvas hobby.Affine, rng *rand.Rand) ([]Item, error) {
	style, err := sh.style()
	if err != nil {
		return nil, err
	}
	pts := jitter(sh.Points, sh.Jitter, rng)
	c, err := hobby.FitTension(pts, sh.Closed, sh.Tension)
	if err != nil {
		return nil, err
	}
	aff := canvas.Mul(sh.transform(c.BoundingBox()))
	if !aff.IsFinite() {
		return nil, fmt.Errorf("transform is not finite")
	}
	c = c.Transform(aff)
	if aff.Determinant() < 0 {
		// Mirroring swaps the sides of the curve; reversing it keeps
		// ribbons and offsets on the side they were described on.
		c = c.Reverse()
	}

	switch sh.Kind {
	case KindRibbon:
		width := hobby.Constant(sh.Width)
		if sh.Taper {
			width = hobby.Taper(sh.Width)
		}
		left, right := hobby.BuildRibbon(c, width, sh.Samples)
		if left == nil {
			return nil, nil
		}
		return []Item{PolygonItem{Style: style, Points: hobby.RibbonOutline(left, right)}}, nil

	case KindOffset:
		distance := hobby.Constant(sh.Width)
		if sh.Refit {
			opts := hobby.DefaultFitOptions()
			opts.Tension = sh.Tension
			off, err := hobby.OffsetContour(c, distance, sh.Samples, &opts)
			if err != nil {
				return nil, err
			}
			return []Item{ContourItem{Style: style, Contour: off}}, nil
		}
		pts := hobby.BuildOffset(c, distance, sh.Samples)
		if pts == nil {
			return nil, nil
		}
		if c.Closed() {
			return []Item{PolygonItem{Style: style, Points: pts[:len(pts)-1]}}, nil
		}
		return []Item{PolylineItem{Style: style, Points: pts}}, nil

	default:
		if sh.Dashes == 0 {
			return []Item{ContourItem{Style: style, Contour: c}}, nil
		}
		// Dashes are open, so they can't be filled.
		style.Fill = color.NRGBA{}
		var items []Item
		for i, d := range c.Dashes(sh.Dashes) {
			st := style
			st.Name = fmt.Sprintf("%s-%d", sh.Name, i+1)
			items = append(items, ContourItem{Style: st, Contour: d})
		}
		return items, nil
	}
}

// transform returns the placement of a curve with bounding box bbox.
func (sh Shape) transform(bbox hobby.Rect) hobby.Affine {
	center := bbox.Center()
	k := sh.Scale
	if k == 0 {
		k = 1
	}
	aff := hobby.RotateAbout(sh.Rotate*math.Pi/180, center).Mul(hobby.ScaleAbout(k, k, center))
	return aff.ThenTranslate(hobby.Vec(sh.Translate[0], sh.Translate[1]))
}

func (sh Shape) style() (Style, error) {
	fill, err := ParseColor(sh.Fill)
	if err != nil {
		return Style{}, err
	}
	stroke, err := ParseColor(sh.Stroke)
	if err != nil {
		return Style{}, err
	}
	return Style{Name: sh.Name, Fill: fill, Stroke: stroke, StrokeWidth: sh.StrokeWidth}, nil
}

// jitter displaces every point by a random vector of length at most amount.
func jitter(points [][2]float64, amount float64, rng *rand.Rand) []hobby.Point {
	out := make([]hobby.Point, len(points))
	for i, p := range points {
		out[i] = hobby.Pt(p[0], p[1])
		if amount > 0 {
			r := amount * math.Sqrt(rng.Float64())
			out[i] = out[i].Translate(hobby.VecFromAngle(2 * math.Pi * rng.Float64()).Mul(r))
		}
	}
	return out
}
