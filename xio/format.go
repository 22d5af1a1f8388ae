// Package xio: the Format/Handle capability and shared conversion helpers.

package xio

import (
	"fmt"

	"github.com/quantimage/voxform/affine"
	"github.com/quantimage/voxform/grid"
)

// Handle is a transform parsed into (or staged for) a specific on-disk
// format. It converts to the canonical convention and persists itself.
type Handle interface {
	// ToCanonical returns the reference-RAS+ → moving-RAS+ matrices held by
	// the handle, one per transform. Formats whose native convention depends
	// on the image grids (e.g. fsl) require ref and mov; others ignore them.
	ToCanonical(ref, mov *grid.Grid) ([]affine.Mat4, error)

	// Write persists the handle in its native format.
	Write(path string) error
}

// Format is one supported on-disk transform format.
type Format interface {
	// Name returns the format's registry name (e.g. "itk").
	Name() string

	// FromCanonical stages canonical matrices for writing in this format.
	FromCanonical(mats []affine.Mat4, ref, mov *grid.Grid) (Handle, error)

	// Read parses a file in this format. Failures wrap ErrMalformed (or an
	// I/O error) so Load can accumulate them.
	Read(path string) (Handle, error)
}

// Formats returns the supported formats in the fixed order Load tries them.
func Formats() []Format {
	return []Format{itkFormat{}, afniFormat{}, fslFormat{}, x5Format{}}
}

// lookup resolves a format by registry name.
func lookup(name string) (Format, error) {
	for _, f := range Formats() {
		if f.Name() == name {
			return f, nil
		}
	}

	return nil, fmt.Errorf("%q: %w", name, ErrUnknownFormat)
}

// lpsSigns flips the left-posterior axes: ITK and AFNI store matrices in
// LPS orientation, and conjugating by diag(-1, -1, 1, 1) converts between
// LPS and the canonical RAS+ convention.
var lpsSigns = [affine.HDim]float64{-1, -1, 1, 1}

// lpsToRAS conjugates an LPS-oriented matrix into RAS+ (the conversion is
// an involution, so it also serves RAS+ → LPS).
func lpsToRAS(m affine.Mat4) affine.Mat4 {
	var out affine.Mat4
	for i := 0; i < affine.HDim; i++ {
		for j := 0; j < affine.HDim; j++ {
			out[i][j] = lpsSigns[i] * m[i][j] * lpsSigns[j]
		}
	}

	return out
}
