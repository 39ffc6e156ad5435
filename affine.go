package hobby

import (
	"math"
)

// Affine is a 2D affine transform with coefficients (a, b, c, d, e, f),
// mapping a point (x, y) to
//
//	(a·x + c·y + e, b·x + d·y + f)
//
// Composition follows matrix multiplication: (A * B) * v == A * (B * v).
type Affine struct {
	N0, N1, N2, N3, N4, N5 float64
}

// Identity leaves points unchanged.
var Identity = Affine{1, 0, 0, 1, 0, 0}

// FlipY mirrors points on the x axis. Together with a translation by the
// canvas height it converts between y-up and y-down coordinates.
var FlipY = Affine{1, 0, 0, -1, 0, 0}

// Scale scales x and y independently about the origin.
func Scale(x, y float64) Affine {
	return Affine{x, 0, 0, y, 0, 0}
}

// Translate moves points by v.
func Translate(v Vec2) Affine {
	return Affine{1, 0, 0, 1, v.X, v.Y}
}

// Rotate rotates points by th radians about the origin. Positive angles turn
// the x axis towards the y axis: anti-clockwise in a y-up coordinate system,
// clockwise on a y-down canvas.
func Rotate(th float64) Affine {
	sin, cos := math.Sincos(th)
	return Affine{cos, sin, -sin, cos, 0, 0}
}

// RotateAbout rotates points by th radians about center.
func RotateAbout(th float64, center Point) Affine {
	c := Vec2(center)
	return Translate(c.Negate()).ThenRotate(th).ThenTranslate(c)
}

// ScaleAbout scales x and y independently about center.
func ScaleAbout(x, y float64, center Point) Affine {
	c := Vec2(center)
	return Translate(c.Negate()).ThenScale(x, y).ThenTranslate(c)
}

// Mul composes two transforms; the result applies o first, then aff.
func (aff Affine) Mul(o Affine) Affine {
	return Affine{
		aff.N0*o.N0 + aff.N2*o.N1,
		aff.N1*o.N0 + aff.N3*o.N1,
		aff.N0*o.N2 + aff.N2*o.N3,
		aff.N1*o.N2 + aff.N3*o.N3,
		aff.N0*o.N4 + aff.N2*o.N5 + aff.N4,
		aff.N1*o.N4 + aff.N3*o.N5 + aff.N5,
	}
}

// ThenRotate applies aff, then Rotate(th).
func (aff Affine) ThenRotate(th float64) Affine {
	return Rotate(th).Mul(aff)
}

// ThenScale applies aff, then Scale(x, y).
func (aff Affine) ThenScale(x, y float64) Affine {
	return Scale(x, y).Mul(aff)
}

// ThenTranslate applies aff, then Translate(v).
func (aff Affine) ThenTranslate(v Vec2) Affine {
	aff.N4 += v.X
	aff.N5 += v.Y
	return aff
}

// Determinant returns the determinant of the linear part. It is negative for
// transforms that mirror, which reverses the orientation of contours, and zero
// for transforms that collapse the plane onto a line or point.
func (aff Affine) Determinant() float64 {
	return aff.N0*aff.N3 - aff.N1*aff.N2
}

// IsFinite reports whether all coefficients are finite.
func (aff Affine) IsFinite() bool {
	for _, n := range [...]float64{aff.N0, aff.N1, aff.N2, aff.N3, aff.N4, aff.N5} {
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return false
		}
	}
	return true
}
