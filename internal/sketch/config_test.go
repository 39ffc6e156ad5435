package sketch

import (
	"image/color"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFormats(t *testing.T) {
	fromTOML, err := Load("testdata/example.toml")
	require.NoError(t, err)
	fromYAML, err := Load("testdata/example.yaml")
	require.NoError(t, err)
	assert.Equal(t, fromTOML, fromYAML)

	assert.Equal(t, "Hobby curves", fromTOML.Title)
	assert.Equal(t, uint64(7), fromTOML.Seed)
	require.Len(t, fromTOML.Shapes, 4)
	blob := fromTOML.Shapes[0]
	assert.Equal(t, "blob", blob.Name)
	assert.True(t, blob.Closed)
	assert.Equal(t, [][2]float64{{100, 100}, {300, 80}, {320, 300}, {120, 280}}, blob.Points)
	assert.Equal(t, -12.0, fromTOML.Shapes[2].Width)
}

func TestLoadDefaults(t *testing.T) {
	s, err := Load("testdata/example.toml")
	require.NoError(t, err)

	dashes := s.Shapes[3]
	assert.Equal(t, KindContour, dashes.Kind)
	assert.Equal(t, 64, dashes.Samples)
	assert.Equal(t, 96, s.Shapes[1].Samples)
	assert.Equal(t, 3.0, dashes.StrokeWidth)

	s, err = Load("testdata/figure8.yaml")
	require.NoError(t, err)
	assert.Equal(t, "#ffffff", s.Background)
	// A stroke without a width gets a hairline.
	assert.Equal(t, 1.0, s.Shapes[0].StrokeWidth)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load("testdata/example.json")
	assert.ErrorContains(t, err, "unknown sketch format")

	_, err = Load("testdata/missing.toml")
	assert.Error(t, err)
}

func TestDecodeUnknownFields(t *testing.T) {
	_, err := Decode(strings.NewReader("width = 10\nheight = 10\ncolour = 1\n"), FormatTOML)
	assert.Error(t, err)

	_, err = Decode(strings.NewReader("width: 10\nheight: 10\ncolour: 1\n"), FormatYAML)
	assert.Error(t, err)

	_, err = Decode(strings.NewReader("width: 10\nheight: 10\nshape:\n  - points: [[0, 0], [1, 1]]\n    tensoin: 2\n"), FormatYAML)
	assert.Error(t, err)
}

func TestDecodeEmpty(t *testing.T) {
	_, err := Decode(strings.NewReader(""), FormatYAML)
	assert.ErrorIs(t, err, ErrInvalidSketch)

	_, err = Decode(strings.NewReader(""), Format(0))
	assert.ErrorContains(t, err, "unsupported format Format(0)")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"canvas", "width: 0\nheight: 10\n", "canvas size"},
		{"background", "width: 10\nheight: 10\nbackground: white\n", "background"},
		{"points", "width: 10\nheight: 10\nshape:\n  - name: lonely\n    points: [[1, 1]]\n", `shape "lonely": need at least 2 points`},
		{"kind", "width: 10\nheight: 10\nshape:\n  - points: [[0, 0], [1, 1]]\n    kind: spiral\n", `shape "shape1": unknown kind "spiral"`},
		{"ribbon", "width: 10\nheight: 10\nshape:\n  - name: r\n    kind: ribbon\n    points: [[0, 0], [1, 1]]\n", "ribbon needs a positive width"},
		{"negative", "width: 10\nheight: 10\nshape:\n  - points: [[0, 0], [1, 1]]\n    jitter: -1\n", "must not be negative"},
		{"color", "width: 10\nheight: 10\nshape:\n  - points: [[0, 0], [1, 1]]\n    fill: \"#12\"\n", "wrong length"},
		{"duplicate", "width: 10\nheight: 10\nshape:\n  - name: a\n    points: [[0, 0], [1, 1]]\n  - name: a\n    points: [[0, 0], [1, 1]]\n", `shape "a": duplicate name`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.in), FormatYAML)
			require.ErrorIs(t, err, ErrInvalidSketch)
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestFormatFromPath(t *testing.T) {
	f, err := FormatFromPath("a/b.yml")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	f, err = FormatFromPath("B.TOML")
	require.NoError(t, err)
	assert.Equal(t, FormatTOML, f)
	assert.Equal(t, "toml", f.String())

	_, err = FormatFromPath("sketch")
	assert.Error(t, err)
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.NRGBA
	}{
		{"", color.NRGBA{}},
		{"none", color.NRGBA{}},
		{"#fff", color.NRGBA{0xff, 0xff, 0xff, 0xff}},
		{"#1a2", color.NRGBA{0x11, 0xaa, 0x22, 0xff}},
		{"#102030", color.NRGBA{0x10, 0x20, 0x30, 0xff}},
		{"#10203040", color.NRGBA{0x10, 0x20, 0x30, 0x40}},
		{"red", color.NRGBA{0xff, 0x00, 0x00, 0xff}},
		{"Teal", color.NRGBA{0x00, 0x80, 0x80, 0xff}},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if assert.NoError(t, err, tt.in) {
			assert.Equal(t, tt.want, got, tt.in)
		}
	}

	for _, in := range []string{"reddish", "#12345", "#ggg", "#1020304050"} {
		_, err := ParseColor(in)
		assert.Error(t, err, in)
	}
}
