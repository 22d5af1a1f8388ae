// Package resample applies affine transforms (or series of them) to
// volumetric images, producing data resampled onto a reference sampling.
//
// The engine walks the reference's physical sample coordinates, maps them
// through each transform into the moving image's physical space, converts
// them to source voxel coordinates via the image's own voxel-affine, and
// interpolates with a B-spline kernel of configurable order and extension
// policy (see the interp package).
//
// A single affine behaves as a length-1 series; a 4-D source contributes
// one volume per series entry, while a 3-D source is reused for every
// entry. Output is channel-contiguous so each resampled volume stays
// memory-contiguous for downstream storage. Channels have no shared mutable
// state and run concurrently on an errgroup.
package resample
