// Package interp implements B-spline interpolation of 3-D volumes at
// arbitrary fractional voxel coordinates.
//
// The interp package provides:
//
//   - MapCoordinates: sample a volume at a batch of voxel coordinates with
//     spline interpolation of order 0–5 and a configurable out-of-bounds
//     extension policy (constant fill, reflect, nearest, mirror, wrap).
//   - SplineFilter: the causal/anticausal IIR prefilter that turns samples
//     into B-spline coefficients. Orders above 1 need this pre-pass to
//     reproduce values exactly at original sample locations; skipping it
//     trades accuracy (a slight blur) for speed.
//
// Volumes are flat []float64 slices in row-major order with the last axis
// fastest, matching the grid package layout. All functions are pure: inputs
// are never mutated, so concurrent calls over shared data are safe.
//
// Extension semantics: boundary handling happens at the sample level. Under
// every mode except constant, out-of-bounds sample indices are folded back
// into the volume; under constant they contribute the fill value, so a
// coordinate whose whole spline footprint lies outside yields exactly the
// fill value.
package interp
