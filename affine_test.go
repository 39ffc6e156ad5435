package hobby

import (
	"math"
	"testing"
)

func TestAffineBasic(t *testing.T) {
	const epsilon = 1e-9
	p := Pt(3, 4)

	assertNear(t, p.Transform(Identity), p, epsilon)
	assertNear(t, p.Transform(Scale(2, 2)), Pt(6, 8), epsilon)
	assertNear(t, p.Transform(Rotate(0)), p, epsilon)
	assertNear(t, p.Transform(Rotate(math.Pi/2)), Pt(-4, 3), epsilon)
	assertNear(t, p.Transform(Translate(Vec(5, 6))), Pt(8, 10), epsilon)
	assertNear(t, p.Transform(FlipY), Pt(3, -4), epsilon)
	assertNear(t, p.Transform(RotateAbout(math.Pi, Pt(3, 3))), Pt(3, 2), epsilon)
	assertNear(t, p.Transform(ScaleAbout(2, 3, Pt(3, 3))), Pt(3, 6), epsilon)
	// The center of a transform about a point stays put.
	assertNear(t, Pt(3, 3).Transform(ScaleAbout(2, 3, Pt(3, 3))), Pt(3, 3), epsilon)
}

func TestAffineMul(t *testing.T) {
	const epsilon = 1e-9
	a1 := Affine{1, 2, 3, 4, 5, 6}
	a2 := Affine{0.1, 1.2, 2.3, 3.4, 4.5, 5.6}

	for _, p := range []Point{Pt(1, 0), Pt(0, 1), Pt(1, 1)} {
		assertNear(t, p.Transform(a2).Transform(a1), p.Transform(a1.Mul(a2)), epsilon)
	}
}

func TestAffineThen(t *testing.T) {
	const epsilon = 1e-9
	p := Pt(1, 2)
	aff := Identity.ThenScale(2, 3).ThenRotate(math.Pi / 2).ThenTranslate(Vec(10, 0))
	want := p.Transform(Scale(2, 3)).Transform(Rotate(math.Pi / 2)).Transform(Translate(Vec(10, 0)))
	assertNear(t, p.Transform(aff), want, epsilon)
}

func TestAffineDeterminant(t *testing.T) {
	tests := []struct {
		aff  Affine
		want float64
	}{
		{Identity, 1},
		{Scale(2, 3), 6},
		{FlipY, -1},
		{Rotate(1).ThenTranslate(Vec(4, 5)), 1},
		{Scale(0, 1), 0},
	}
	for _, tt := range tests {
		assertNear(t, Pt(tt.aff.Determinant(), 0), Pt(tt.want, 0), 1e-12)
	}
}

func TestAffineIsFinite(t *testing.T) {
	if !RotateAbout(1, Pt(2, 3)).IsFinite() {
		t.Error("rotation isn't finite")
	}
	if Scale(math.Inf(1), 1).IsFinite() {
		t.Error("infinite scale is finite")
	}
	if Translate(Vec(math.NaN(), 0)).IsFinite() {
		t.Error("NaN translation is finite")
	}
}
