// Package sketch turns sketch description files into fitted contours, ribbons
// and offsets, and renders them as SVG or PNG.
package sketch

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"
)

// ErrInvalidSketch is returned for sketch descriptions that can't be built.
var ErrInvalidSketch = errors.New("invalid sketch")

// Format is the encoding of a sketch description.
type Format int

const (
	FormatTOML Format = iota + 1
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	default:
		return "Format(" + strconv.Itoa(int(f)) + ")"
	}
}

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return 0, fmt.Errorf("%s: unknown sketch format %q", path, filepath.Ext(path))
	}
}

// Shape kinds.
const (
	KindContour = "contour"
	KindRibbon  = "ribbon"
	KindOffset  = "offset"
)

// Sketch is a drawing made of shapes on a canvas.
type Sketch struct {
	Title      string  `toml:"title" yaml:"title"`
	Width      float64 `toml:"width" yaml:"width"`
	Height     float64 `toml:"height" yaml:"height"`
	Background string  `toml:"background" yaml:"background"`
	// Seed seeds the jitter of all shapes.
	Seed uint64 `toml:"seed" yaml:"seed"`
	// YUp places the origin at the bottom left with y growing upwards, instead
	// of the canvas convention of y growing downwards.
	YUp    bool    `toml:"y_up" yaml:"y_up"`
	Shapes []Shape `toml:"shape" yaml:"shape"`
}

// Shape is one curve of a sketch and the geometry derived from it.
type Shape struct {
	Name   string       `toml:"name" yaml:"name"`
	Kind   string       `toml:"kind" yaml:"kind"`
	Closed bool         `toml:"closed" yaml:"closed"`
	Points [][2]float64 `toml:"points" yaml:"points"`
	// Tension of the fitted curve; 0 selects the default.
	Tension float64 `toml:"tension" yaml:"tension"`
	// Jitter is the largest random displacement applied to each point.
	Jitter      float64 `toml:"jitter" yaml:"jitter"`
	Fill        string  `toml:"fill" yaml:"fill"`
	Stroke      string  `toml:"stroke" yaml:"stroke"`
	StrokeWidth float64 `toml:"stroke_width" yaml:"stroke_width"`
	// Width is the ribbon width or the offset distance.
	Width   float64 `toml:"width" yaml:"width"`
	Taper   bool    `toml:"taper" yaml:"taper"`
	Samples int     `toml:"samples" yaml:"samples"`
	// Refit smooths an offset by fitting a curve through it.
	Refit bool `toml:"refit" yaml:"refit"`
	// Dashes, if positive, splits a contour into that many pieces of equal
	// length and draws every other one.
	Dashes int `toml:"dashes" yaml:"dashes"`

	// Scale, Rotate (in degrees) and Translate move the fitted curve, in that
	// order. Scaling and rotation are about the center of its bounding box. A
	// scale of 0 means 1.
	Scale     float64    `toml:"scale" yaml:"scale"`
	Rotate    float64    `toml:"rotate" yaml:"rotate"`
	Translate [2]float64 `toml:"translate" yaml:"translate"`
}

// Load reads and validates the sketch description at path. The format is
// chosen by the file extension.
func Load(path string) (*Sketch, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	s, err := Decode(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Decode reads and validates a sketch description. Unknown keys are errors.
func Decode(r io.Reader, format Format) (*Sketch, error) {
	var s Sketch
	switch format {
	case FormatTOML:
		dec := toml.NewDecoder(r).DisallowUnknownFields()
		if err := dec.Decode(&s); err != nil {
			return nil, fmt.Errorf("decoding %s: %w", format, err)
		}
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("decoding %s: %w", format, err)
		}
	default:
		return nil, fmt.Errorf("unsupported format %s", format)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks the sketch and fills in defaults. Errors wrap
// [ErrInvalidSketch] and name the offending shape.
func (s *Sketch) Validate() error {
	if !(s.Width > 0 && s.Height > 0) {
		return fmt.Errorf("%w: canvas size must be positive, got %gx%g", ErrInvalidSketch, s.Width, s.Height)
	}
	if s.Background == "" {
		s.Background = "#ffffff"
	}
	if _, err := ParseColor(s.Background); err != nil {
		return fmt.Errorf("%w: background: %w", ErrInvalidSketch, err)
	}
	seen := make(map[string]bool, len(s.Shapes))
	for i := range s.Shapes {
		sh := &s.Shapes[i]
		if sh.Name == "" {
			sh.Name = fmt.Sprintf("shape%d", i+1)
		}
		if seen[sh.Name] {
			return fmt.Errorf("%w: shape %q: duplicate name", ErrInvalidSketch, sh.Name)
		}
		seen[sh.Name] = true
		if err := sh.validate(); err != nil {
			return fmt.Errorf("%w: shape %q: %w", ErrInvalidSketch, sh.Name, err)
		}
	}
	return nil
}

func (sh *Shape) validate() error {
	if sh.Kind == "" {
		sh.Kind = KindContour
	}
	switch sh.Kind {
	case KindContour, KindRibbon, KindOffset:
	default:
		return fmt.Errorf("unknown kind %q", sh.Kind)
	}
	if len(sh.Points) < 2 {
		return fmt.Errorf("need at least 2 points, got %d", len(sh.Points))
	}
	if sh.Jitter < 0 || sh.StrokeWidth < 0 || sh.Samples < 0 || sh.Dashes < 0 {
		return errors.New("jitter, stroke_width, samples and dashes must not be negative")
	}
	if sh.Kind == KindRibbon && sh.Width <= 0 {
		return errors.New("ribbon needs a positive width")
	}
	if sh.Samples == 0 {
		sh.Samples = 64
	}
	for _, c := range []string{sh.Fill, sh.Stroke} {
		if _, err := ParseColor(c); err != nil {
			return err
		}
	}
	if sh.Stroke != "" && sh.StrokeWidth == 0 {
		sh.StrokeWidth = 1
	}
	return nil
}

// ParseColor parses "#rgb", "#rrggbb", "#rrggbbaa" and SVG color keywords
// such as "teal". The empty string and "none" are fully transparent.
func ParseColor(s string) (color.NRGBA, error) {
	if s == "" || s == "none" {
		return color.NRGBA{}, nil
	}
	hex, ok := strings.CutPrefix(s, "#")
	if !ok {
		c, ok := colornames.Map[strings.ToLower(s)]
		if !ok {
			return color.NRGBA{}, fmt.Errorf("unknown color %q", s)
		}
		// Keywords are opaque, so premultiplication doesn't change them.
		return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}, nil
	}
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return color.NRGBA{}, fmt.Errorf("color %q has the wrong length", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("color %q: %w", s, err)
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}
