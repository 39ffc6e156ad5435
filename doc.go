// Package hobby fits smooth curves through points using John Hobby's
// algorithm and provides the geometry needed to work with the result: arc
// length, sub-ranges, ribbons and offsets, containment, and intersections.
//
// # Fitting
//
// [Fit] takes a list of points and returns a [Contour]: a chain of cubic
// Béziers that passes through every point, open or closed. The directions at
// the points are chosen by solving Hobby's "mock curvature" equations, which
// yields curves that look drawn by hand and that don't overshoot the way
// Catmull-Rom splines do. [FitOptions] controls the tension of the curve and,
// for open contours, the curl or explicit direction at either end.
//
// Duplicate consecutive points produce zero-length segments instead of
// failing, and a closed input whose last point repeats its first has the
// repetition dropped.
//
// # Contours
//
// A [Contour] is an immutable sequence of cubic Béziers. It is evaluated with
// a global parameter t ∈ [0, 1] that maps uniformly onto segments, so that a
// fitted contour passes through input point i at t = i/N. Methods that work in
// terms of arc length instead, such as [Contour.ParamAtArclen] and
// [Contour.EvalArclen], are available for uniform spacing along the curve.
//
// Contours can be cut with [Contour.Sub] and [Contour.SplitN], transformed
// with [Affine], flattened with [Contour.Polyline], and converted to SVG path
// data with [Contour.SVG].
//
// # Derived geometry
//
// [BuildRibbon] produces the two sides of a variable-width band around a
// contour, and [BuildOffset] and [OffsetContour] displace a contour along its
// normals. [Contains] and [Overlaps] answer containment questions, and
// [Intersect] and [Contour.SelfIntersections] find crossings.
//
// # Errors and logging
//
// Functions that can fail return errors wrapping one of [ErrInvalidGeometry],
// [ErrInsufficientPoints], [ErrInvalidParameter], or [ErrDegenerateGeometry];
// use [errors.Is] to test for them. The package logs diagnostics, such as
// clamped options, through a [log/slog] logger that discards everything by
// default. Use [SetLogger] to route them elsewhere.
//
// # Literature
//
// This package makes use of the following ideas:
//   - [Smooth, easy to compute interpolating splines] by John D. Hobby
//   - [METAFONT: The Program] by Donald E. Knuth
//   - [A Primer on Bézier Curves]
//   - [An Enhancement of the Bisection Method Average Performance Preserving Minmax Optimality] by Oliveira and Takahashi
//
// [Smooth, easy to compute interpolating splines]: https://doi.org/10.1007/BF02187690
// [METAFONT: The Program]: https://ctan.org/tex-archive/systems/knuth/dist/mf
// [A Primer on Bézier Curves]: https://pomax.github.io/bezierinfo/
// [An Enhancement of the Bisection Method Average Performance Preserving Minmax Optimality]: https://dl.acm.org/doi/10.1145/3423597
package hobby
