package hobby

import (
	"errors"
	"fmt"
)

// ErrInvalidGeometry is returned for input that cannot describe a curve, such
// as non-finite coordinates or segments that don't join. The other errors of
// this package wrap it, so errors.Is(err, ErrInvalidGeometry) holds for all of
// them.
var ErrInvalidGeometry = errors.New("invalid geometry")

var (
	// ErrInsufficientPoints is returned when fewer points or segments are
	// given than an operation needs.
	ErrInsufficientPoints = fmt.Errorf("%w: insufficient points", ErrInvalidGeometry)
	// ErrInvalidParameter is returned for non-finite numeric parameters, such
	// as a NaN tension.
	ErrInvalidParameter = fmt.Errorf("%w: invalid parameter", ErrInvalidGeometry)
	// ErrDegenerateGeometry is returned when a contour must be produced from a
	// source of zero length.
	ErrDegenerateGeometry = fmt.Errorf("%w: degenerate geometry", ErrInvalidGeometry)
)
