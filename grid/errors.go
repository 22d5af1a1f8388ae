// Package grid: sentinel error set.

package grid

import "errors"

var (
	// ErrBadShape is returned when a grid extent is zero or negative.
	ErrBadShape = errors.New("grid: extents must be positive")

	// ErrNilAffine is returned when a grid is built without a voxel-affine.
	ErrNilAffine = errors.New("grid: voxel-affine is nil")

	// ErrEmptyPoints is returned when a point set is built from zero points.
	ErrEmptyPoints = errors.New("grid: point set must contain at least one point")

	// ErrDataSize is returned when image data does not cover shape × channels.
	ErrDataSize = errors.New("grid: data length does not match shape and channels")

	// ErrBadChannel is returned when a channel index is outside the image.
	ErrBadChannel = errors.New("grid: channel index out of range")

	// ErrUnknownDType is returned when a dtype name cannot be parsed.
	ErrUnknownDType = errors.New("grid: unknown dtype")

	// ErrBadContainer is returned when an on-disk image container is
	// malformed.
	ErrBadContainer = errors.New("grid: malformed image container")
)
