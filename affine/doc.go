// Package affine models linear spatial transforms in homogeneous
// coordinates, as used to align scientific volumetric images.
//
// The affine package provides:
//
//   - Affine: a single 4×4 homogeneous transform mapping reference-space
//     physical (RAS+) coordinates into moving-space physical coordinates,
//     with a cached exact inverse.
//   - Series: an ordered collection of affines sharing one reference space,
//     e.g. one transform per timepoint of a 4D acquisition.
//   - Transform: the interface both satisfy, so a single Affine behaves as
//     a length-1 series wherever a series is consumed.
//
// All values are immutable after construction: composition, inversion and
// promotion always return new instances, which makes them safe to share
// across goroutines without locking.
//
// See the resample package for applying transforms to images, and xio for
// reading/writing on-disk transform formats.
package affine
