// Package voxform transforms coordinates and resamples volumetric images
// through spatial affine transforms.
//
// 🚀 What is voxform?
//
//	A library for moving image data between physical spaces:
//		• Affine transforms: homogeneous 4×4 matrices with cached inverses
//		• Series: per-volume transform stacks for 4-D acquisitions
//		• References: voxel grids and scattered point sets in world space
//		• Resampling: pull-based interpolation of images onto a reference
//		• Interpolation: B-spline kernels of order 0–5 with prefiltering
//		• Interchange: ITK, AFNI, FSL and X5 transform files
//
// Everything is organized under focused subpackages:
//
//	affine/   — transforms, series, composition, equality
//	grid/     — voxel grids, point sets, images, the on-disk container
//	interp/   — spline kernels, prefiltering, boundary extension
//	resample/ — the engine mapping images through transforms
//	xio/      — reading and writing interchange transform formats
//
// Quick orientation: a transform maps reference-space coordinates into the
// moving image's space, so resampling pulls values from the source at the
// mapped locations:
//
//	xfm, _ := xio.Load("xfm.tfm", xio.WithReference(ref))
//	out, _ := resample.Apply(xfm, moving)
//
//	go get github.com/quantimage/voxform
package voxform
