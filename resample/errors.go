// Package resample: sentinel error set.

package resample

import "errors"

var (
	// ErrNilTransform is returned when Apply receives a nil transform.
	ErrNilTransform = errors.New("resample: transform is nil")

	// ErrNilSource is returned when Apply receives a nil source image.
	ErrNilSource = errors.New("resample: source image is nil")

	// ErrChannelMismatch is returned, before any interpolation runs, when a
	// multi-channel source's trailing axis length differs from the series
	// length.
	ErrChannelMismatch = errors.New("resample: channel count does not match series length")

	// ErrNoReference is returned when neither the options nor the transform
	// provide a reference sampling.
	ErrNoReference = errors.New("resample: no reference sampling provided")
)
