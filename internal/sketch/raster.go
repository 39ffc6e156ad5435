package sketch

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/vector"

	"honnef.co/go/hobby"
)

// rasterTolerance is the flattening tolerance, in pixels, of strokes.
const rasterTolerance = 0.1

// Rasterize renders the items at the given scale. Fills use the curves
// directly; strokes are built from one quad per flattened edge.
func Rasterize(s *Sketch, items []Item, scale float64) (*image.NRGBA, error) {
	if !(scale > 0) {
		return nil, fmt.Errorf("scale must be positive, got %g", scale)
	}
	bg, err := ParseColor(s.Background)
	if err != nil {
		return nil, err
	}
	w, h := int(math.Ceil(s.Width*scale)), int(math.Ceil(s.Height*scale))
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)

	aff := hobby.Scale(scale, scale)
	r := vector.NewRasterizer(w, h)
	paint := func(c color.NRGBA) {
		r.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{})
		r.Reset(w, h)
	}
	for _, it := range items {
		st := it.ItemStyle()
		path := itemPath(it).Transform(aff)
		if isFillable(it) && st.Fill.A > 0 {
			fillPath(r, path)
			paint(st.Fill)
		}
		if st.Stroke.A > 0 && st.StrokeWidth > 0 {
			strokePath(r, path, 0.5*st.StrokeWidth*scale)
			paint(st.Stroke)
		}
	}
	return img, nil
}

// WritePNG renders the items like [Rasterize] and encodes the image as PNG.
func WritePNG(w io.Writer, s *Sketch, items []Item, scale float64) error {
	img, err := Rasterize(s, items, scale)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

func fillPath(r *vector.Rasterizer, p hobby.BezPath) {
	for _, el := range p {
		switch el.Kind {
		case hobby.MoveToKind:
			r.MoveTo(float32(el.P0.X), float32(el.P0.Y))
		case hobby.LineToKind:
			r.LineTo(float32(el.P0.X), float32(el.P0.Y))
		case hobby.CubicToKind:
			r.CubeTo(
				float32(el.P0.X), float32(el.P0.Y),
				float32(el.P1.X), float32(el.P1.Y),
				float32(el.P2.X), float32(el.P2.Y))
		case hobby.ClosePathKind:
			r.ClosePath()
		}
	}
}

// strokePath adds a quad of half width hw around every edge of the flattened
// path. All quads wind the same way, so overlaps don't cancel.
func strokePath(r *vector.Rasterizer, p hobby.BezPath, hw float64) {
	var start, last hobby.Point
	edge := func(a, b hobby.Point) {
		n := b.Sub(a).NormalizeOr(hobby.Vec2{}).Turn90().Mul(hw)
		if n == (hobby.Vec2{}) {
			return
		}
		quad := [4]hobby.Point{a.Translate(n), b.Translate(n), b.Translate(n.Negate()), a.Translate(n.Negate())}
		r.MoveTo(float32(quad[0].X), float32(quad[0].Y))
		for _, q := range quad[1:] {
			r.LineTo(float32(q.X), float32(q.Y))
		}
		r.ClosePath()
	}
	for el := range hobby.Flatten(p.Elements(), rasterTolerance) {
		switch el.Kind {
		case hobby.MoveToKind:
			start, last = el.P0, el.P0
		case hobby.LineToKind:
			edge(last, el.P0)
			last = el.P0
		case hobby.ClosePathKind:
			edge(last, start)
			last = start
		}
	}
}
