// Package grid describes the spatial sampling of physical space consumed by
// the transform and resampling machinery.
//
// The grid package provides:
//
//   - Grid: a voxel grid with a shape and a voxel-affine (the matrix mapping
//     voxel indices to physical RAS+ coordinates), exposing its flattened
//     physical sample coordinates.
//   - PointSet: a scattered cloud of physical sample coordinates, for
//     resampling onto arbitrary locations rather than a grid.
//   - Image: voxel data bound to a Grid, optionally with a trailing channel
//     axis, tagged with a storage dtype.
//
// Grid and PointSet both satisfy affine.Reference. All types are immutable
// after construction and safe for concurrent readers.
package grid
