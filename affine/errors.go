// Package affine: sentinel error set.
// All public constructors and accessors return these sentinels (optionally
// wrapped with fmt.Errorf("...: %w", ErrX) for context); callers match them
// with errors.Is. Panics are reserved for programmer errors such as passing
// a nil operand to Compose.

package affine

import "errors"

var (
	// ErrBadShape is returned when a raw matrix is ragged or not
	// two-dimensional.
	ErrBadShape = errors.New("affine: matrix must be two-dimensional")

	// ErrNonSquare is returned when a raw matrix is not square.
	ErrNonSquare = errors.New("affine: matrix is not square")

	// ErrBadDimension is returned when a square matrix is not 4×4, the only
	// homogeneous dimensionality this package handles.
	ErrBadDimension = errors.New("affine: matrix must be 4x4")

	// ErrLastRow is returned when the last row of a homogeneous matrix
	// deviates from (0, 0, 0, 1) beyond LastRowTol.
	ErrLastRow = errors.New("affine: last row of a homogeneous matrix must be (0, 0, 0, 1)")

	// ErrSingular is returned when the matrix admits no inverse.
	ErrSingular = errors.New("affine: matrix is singular")

	// ErrEmptySeries is returned when a Series is built from zero entries.
	ErrEmptySeries = errors.New("affine: series must contain at least one transform")

	// ErrNilTransform is returned when a Series is built from a nil entry.
	ErrNilTransform = errors.New("affine: nil transform in series")

	// ErrIndexOutOfRange is returned by At when the index is outside [0, Len).
	ErrIndexOutOfRange = errors.New("affine: index out of range")
)
