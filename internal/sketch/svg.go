package sketch

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"strings"

	svg "github.com/ajstarks/svgo"

	"honnef.co/go/hobby"
)

// svgPrecision is the number of decimals written for coordinates.
const svgPrecision = 3

// errWriter remembers the first write error, which svgo discards.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) Write(b []byte) (int, error) {
	if ew.err != nil {
		return 0, ew.err
	}
	n, err := ew.w.Write(b)
	ew.err = err
	return n, err
}

// WriteSVG renders the items as an SVG document of the sketch's size. Each
// item becomes a group holding a title and a path.
func WriteSVG(w io.Writer, s *Sketch, items []Item) error {
	bg, err := ParseColor(s.Background)
	if err != nil {
		return err
	}
	ew := &errWriter{w: w}
	width, height := int(math.Ceil(s.Width)), int(math.Ceil(s.Height))
	canvas := svg.New(ew)
	canvas.Start(width, height)
	if s.Title != "" {
		canvas.Title(s.Title)
	}
	canvas.Rect(0, 0, width, height, "fill:"+svgColor(bg))
	for _, it := range items {
		st := it.ItemStyle()
		canvas.Gid(st.Name)
		canvas.Title(st.Name)
		canvas.Path(itemPath(it).SVG(hobby.SVGOptions{MaxPrecision: svgPrecision}), svgStyle(it, st))
		canvas.Gend()
	}
	canvas.End()
	return ew.err
}

// itemPath returns the outline of an item as path elements.
func itemPath(it Item) hobby.BezPath {
	switch it := it.(type) {
	case ContourItem:
		return it.Contour.Path()
	case PolygonItem:
		p := polylinePath(it.Points)
		if len(p) > 0 {
			p.ClosePath()
		}
		return p
	case PolylineItem:
		return polylinePath(it.Points)
	default:
		panic(fmt.Sprintf("unhandled item type %T", it))
	}
}

func polylinePath(pts []hobby.Point) hobby.BezPath {
	var p hobby.BezPath
	for i, pt := range pts {
		if i == 0 {
			p.MoveTo(pt)
		} else {
			p.LineTo(pt)
		}
	}
	return p
}

// isFillable reports whether an item encloses an area.
func isFillable(it Item) bool {
	switch it := it.(type) {
	case ContourItem:
		return it.Contour.Closed()
	case PolygonItem:
		return true
	default:
		return false
	}
}

func svgStyle(it Item, st Style) string {
	var sb strings.Builder
	if isFillable(it) && st.Fill.A > 0 {
		fmt.Fprintf(&sb, "fill:%s", svgColor(st.Fill))
	} else {
		sb.WriteString("fill:none")
	}
	if st.Stroke.A > 0 && st.StrokeWidth > 0 {
		fmt.Fprintf(&sb, ";stroke:%s;stroke-width:%g", svgColor(st.Stroke), st.StrokeWidth)
	}
	return sb.String()
}

func svgColor(c color.NRGBA) string {
	if c.A == 0 {
		return "none"
	}
	if c.A == 0xff {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("rgba(%d,%d,%d,%.3g)", c.R, c.G, c.B, float64(c.A)/255)
}
