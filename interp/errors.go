// Package interp: sentinel error set.

package interp

import "errors"

var (
	// ErrOrderRange is returned when the spline order is outside [0, 5].
	ErrOrderRange = errors.New("interp: spline order must be in [0, 5]")

	// ErrUnknownMode is returned when the extension mode is not one of the
	// defined policies.
	ErrUnknownMode = errors.New("interp: unknown extension mode")

	// ErrBadShape is returned when a volume extent is zero or negative.
	ErrBadShape = errors.New("interp: extents must be positive")

	// ErrShapeMismatch is returned when data or destination length does not
	// match the declared geometry.
	ErrShapeMismatch = errors.New("interp: length does not match shape")
)
