// Package xio reads and writes on-disk affine transform formats.
//
// Every format implements the Format capability: canonical matrices in,
// a Handle out (FromCanonical), and a Handle parsed from disk (Read); a
// Handle converts back to canonical matrices (ToCanonical) and persists
// itself (Write). The canonical matrix always maps reference-space physical
// RAS+ coordinates to moving-space physical RAS+ coordinates, as a 4×4
// homogeneous matrix with last row (0, 0, 0, 1) — every adapter converts
// its native convention to and from that contract.
//
// Supported formats:
//
//   - itk  — ITK/ANTs text transform files (.tfm), LPS-oriented.
//   - afni — AFNI .1D files, one 12-parameter row per transform,
//     LPS-oriented.
//   - fsl  — FSL FLIRT .mat files, scaled-voxel convention; conversion
//     needs the reference and moving grids.
//   - x5   — the hierarchical interchange container holding the Transform
//     and Inverse datasets plus an optional nested reference.
//
// Load tries each format in a fixed order (itk, afni, fsl, x5) until one
// parses, accumulating every attempt's failure; if all fail, the returned
// *ChainError enumerates each attempted format and its reason. A file
// holding exactly one transform loads as *affine.Affine, never as a
// length-1 series.
package xio
