package sketch

import (
	"fmt"
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"honnef.co/go/hobby"
)

func loadAndBuild(t *testing.T, path string) (*Sketch, []Item) {
	t.Helper()
	s, err := Load(path)
	require.NoError(t, err)
	items, err := Build(s, nil)
	require.NoError(t, err)
	return s, items
}

func TestBuildItems(t *testing.T) {
	_, items := loadAndBuild(t, "testdata/example.toml")
	require.Len(t, items, 8)

	blob, ok := items[0].(ContourItem)
	require.True(t, ok, "blob is %T", items[0])
	assert.Equal(t, "blob", blob.Name)
	assert.True(t, blob.Contour.Closed())
	assert.Equal(t, 4, blob.Contour.NumSegments())
	assert.Equal(t, color.NRGBA{0xe0, 0xc0, 0x80, 0xff}, blob.Fill)
	assert.Equal(t, 2.0, blob.StrokeWidth)

	ribbon, ok := items[1].(PolygonItem)
	require.True(t, ok, "stroke is %T", items[1])
	assert.Len(t, ribbon.Points, 2*96)
	// The ribbon tapers to a point at both ends.
	assert.InDelta(t, 0, ribbon.Points[0].Distance(ribbon.Points[len(ribbon.Points)-1]), 1e-9)

	halo, ok := items[2].(ContourItem)
	require.True(t, ok, "halo is %T", items[2])
	assert.True(t, halo.Contour.Closed())
	assert.Equal(t, 63, halo.Contour.NumSegments())

	for i, it := range items[3:] {
		dash, ok := it.(ContourItem)
		require.True(t, ok, "dash is %T", it)
		assert.Equal(t, fmt.Sprintf("dashes-%d", i+1), dash.Name)
		assert.False(t, dash.Contour.Closed())
		assert.Zero(t, dash.Fill.A)
	}
}

func TestBuildDeterministic(t *testing.T) {
	s, first := loadAndBuild(t, "testdata/example.yaml")
	second, err := Build(s, nil)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	s.Seed++
	third, err := Build(s, nil)
	require.NoError(t, err)
	assert.NotEqual(t, first[0], third[0], "jittered shape ignores the seed")
	// Shapes without jitter don't depend on the seed.
	assert.Equal(t, first[1], third[1])
}

func TestBuildOffsetPolygon(t *testing.T) {
	s := &Sketch{
		Width:  100,
		Height: 100,
		Shapes: []Shape{
			{Name: "ring", Kind: KindOffset, Closed: true, Points: [][2]float64{{0, 0}, {100, 0}, {100, 100}, {0, 100}}, Width: 5, Samples: 17},
			{Name: "line", Kind: KindOffset, Points: [][2]float64{{0, 50}, {100, 50}}, Width: 5, Samples: 3},
		},
	}
	require.NoError(t, s.Validate())
	items, err := Build(s, nil)
	require.NoError(t, err)
	require.Len(t, items, 2)

	ring, ok := items[0].(PolygonItem)
	require.True(t, ok, "ring is %T", items[0])
	// The repeated closing sample is dropped.
	assert.Len(t, ring.Points, 16)

	line, ok := items[1].(PolylineItem)
	require.True(t, ok, "line is %T", items[1])
	require.Len(t, line.Points, 3)
	for _, p := range line.Points {
		assert.InDelta(t, 55, p.Y, 1e-9)
	}
}

func TestBuildTransform(t *testing.T) {
	square := [][2]float64{{0, 0}, {100, 0}, {100, 100}, {0, 100}}
	s := &Sketch{
		Width:  200,
		Height: 200,
		Shapes: []Shape{
			{Name: "plain", Closed: true, Points: square},
			{Name: "moved", Closed: true, Points: square, Scale: 2, Rotate: 90, Translate: [2]float64{10, 0}},
		},
	}
	require.NoError(t, s.Validate())
	items, err := Build(s, nil)
	require.NoError(t, err)
	require.Len(t, items, 2)
	plain := items[0].(ContourItem).Contour
	moved := items[1].(ContourItem).Contour

	// (0, 0) is scaled to (-50, -50) about the center (50, 50), turned to
	// (150, -50) and moved by 10.
	start := moved.Start()
	assert.InDelta(t, 160, start.X, 1e-6)
	assert.InDelta(t, -50, start.Y, 1e-6)
	assert.InDelta(t, 2*plain.Length(), moved.Length(), 1e-6)
	assert.InDelta(t, 2*plain.BoundingBox().MaxSide(), moved.BoundingBox().MaxSide(), 1e-6)
}

func TestBuildYUp(t *testing.T) {
	s := &Sketch{
		Width:  100,
		Height: 100,
		YUp:    true,
		Shapes: []Shape{
			{Name: "line", Points: [][2]float64{{0, 10}, {100, 10}}},
			{Name: "offset", Kind: KindOffset, Points: [][2]float64{{0, 10}, {100, 10}}, Width: 5, Samples: 3},
		},
	}
	require.NoError(t, s.Validate())
	items, err := Build(s, nil)
	require.NoError(t, err)
	require.Len(t, items, 2)

	// Mirroring reverses the curve, so it starts at the far end.
	line := items[0].(ContourItem).Contour
	assert.InDelta(t, 100, line.Start().X, 1e-9)
	assert.InDelta(t, 90, line.Start().Y, 1e-9)
	assert.InDelta(t, 0, line.End().X, 1e-9)

	// The offset stays above the line as described, which is towards the
	// top of the canvas.
	offset, ok := items[1].(PolylineItem)
	require.True(t, ok, "offset is %T", items[1])
	require.Len(t, offset.Points, 3)
	for _, p := range offset.Points {
		assert.InDelta(t, 85, p.Y, 1e-9)
	}
}

func TestBuildTransformNotFinite(t *testing.T) {
	s := &Sketch{
		Width:  100,
		Height: 100,
		Shapes: []Shape{{Name: "far", Points: [][2]float64{{0, 0}, {1, 1}}, Translate: [2]float64{math.Inf(1), 0}}},
	}
	require.NoError(t, s.Validate())
	_, err := Build(s, nil)
	assert.ErrorContains(t, err, "transform is not finite")
}

func TestBuildErrors(t *testing.T) {
	s := &Sketch{
		Width:  100,
		Height: 100,
		Shapes: []Shape{{Name: "bad", Points: [][2]float64{{0, 0}, {1, 1}}}},
	}
	require.NoError(t, s.Validate())
	s.Shapes[0].Fill = "bleu"
	_, err := Build(s, nil)
	assert.ErrorContains(t, err, `shape "bad"`)
}

func TestJitter(t *testing.T) {
	pts := [][2]float64{{1, 2}, {3, 4}, {5, 6}}
	assert.Equal(t, []hobby.Point{hobby.Pt(1, 2), hobby.Pt(3, 4), hobby.Pt(5, 6)}, jitter(pts, 0, nil))

	moved := jitter(pts, 2, NewRand(1))
	require.Len(t, moved, len(pts))
	for i, p := range moved {
		d := p.Distance(hobby.Pt(pts[i][0], pts[i][1]))
		assert.LessOrEqual(t, d, 2.0)
		assert.Greater(t, d, 0.0)
	}
}
