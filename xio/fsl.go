// Package xio: FSL FLIRT .mat transform files.
//
// FSL stores a single 4×4 matrix as four lines of four reals, expressed in
// FSL's scaled-voxel convention: coordinates are voxel indices scaled by
// the voxel sizes, with the first axis flipped when the image orientation
// is right-handed. Converting to and from the canonical RAS+ convention
// therefore needs both the reference and the moving grids:
//
//	M_ras = mov_aff · S_mov⁻¹ · M_fsl · S_ref · ref_aff⁻¹
//
// where S is the grid's FSL scaling matrix. One matrix per file; series
// are not representable.

package xio

import (
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/quantimage/voxform/affine"
	"github.com/quantimage/voxform/grid"
)

type fslFormat struct{}

func (fslFormat) Name() string { return "fsl" }

func (fslFormat) FromCanonical(mats []affine.Mat4, ref, mov *grid.Grid) (Handle, error) {
	if len(mats) == 0 {
		return nil, ErrEmptyCanonical
	}
	if len(mats) > 1 {
		return nil, fmt.Errorf("fsl holds one matrix per file: %w", ErrSeriesUnsupported)
	}
	if ref == nil || mov == nil {
		return nil, fmt.Errorf("fsl: %w", ErrGridRequired)
	}

	ras, err := affine.New(mats[0])
	if err != nil {
		return nil, err
	}
	sref, err := fslScale(ref)
	if err != nil {
		return nil, err
	}
	smov, err := fslScale(mov)
	if err != nil {
		return nil, err
	}

	// M_fsl = S_mov · mov_aff⁻¹ · M_ras · ref_aff · S_ref⁻¹
	fsl := smov.
		Compose(mov.Affine().Invert()).
		Compose(ras).
		Compose(ref.Affine()).
		Compose(sref.Invert())

	return &fslHandle{m: fsl.Matrix()}, nil
}

func (fslFormat) Read(path string) (Handle, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	vals, err := parseFloats(string(raw))
	if err != nil || len(vals) != affine.HDim*affine.HDim {
		return nil, fmt.Errorf("fsl: expected a 4x4 matrix: %w", ErrMalformed)
	}

	var m affine.Mat4
	for i := 0; i < affine.HDim; i++ {
		copy(m[i][:], vals[i*affine.HDim:(i+1)*affine.HDim])
	}

	return &fslHandle{m: m}, nil
}

// fslHandle stages one transform in FSL's scaled-voxel convention.
type fslHandle struct {
	m affine.Mat4
}

func (h *fslHandle) ToCanonical(ref, mov *grid.Grid) ([]affine.Mat4, error) {
	if ref == nil || mov == nil {
		return nil, fmt.Errorf("fsl: %w", ErrGridRequired)
	}

	fsl, err := affine.New(h.m)
	if err != nil {
		return nil, err
	}
	sref, err := fslScale(ref)
	if err != nil {
		return nil, err
	}
	smov, err := fslScale(mov)
	if err != nil {
		return nil, err
	}

	ras := mov.Affine().
		Compose(smov.Invert()).
		Compose(fsl).
		Compose(sref).
		Compose(ref.Affine().Invert())

	return []affine.Mat4{ras.Matrix()}, nil
}

func (h *fslHandle) Write(path string) error {
	var b strings.Builder
	for i := 0; i < affine.HDim; i++ {
		for j := 0; j < affine.HDim; j++ {
			if j > 0 {
				b.WriteString("  ")
			}
			fmt.Fprintf(&b, "%.10g", h.m[i][j])
		}
		b.WriteString("\n")
	}

	return os.WriteFile(path, []byte(b.String()), 0o644)
}

// fslScale builds the grid's FSL scaling matrix: voxel sizes on the
// diagonal, with the first voxel axis flipped (about the far edge) when the
// voxel-affine is right-handed, which is FSL's radiological convention.
func fslScale(g *grid.Grid) (*affine.Affine, error) {
	m := g.Affine().Matrix()

	// Voxel sizes are the column norms of the linear part.
	var zooms [affine.Dim]float64
	for c := 0; c < affine.Dim; c++ {
		s := 0.0
		for r := 0; r < affine.Dim; r++ {
			s += m[r][c] * m[r][c]
		}
		zooms[c] = math.Sqrt(s)
	}

	scale := affine.Ident()
	for d := 0; d < affine.Dim; d++ {
		scale[d][d] = zooms[d]
	}

	if det3(m) > 0 {
		nx := g.Extents()[0]
		flip := affine.Ident()
		flip[0][0] = -1
		flip[0][affine.Dim] = float64(nx - 1)
		sa, err := affine.New(scale)
		if err != nil {
			return nil, err
		}
		fa, err := affine.New(flip)
		if err != nil {
			return nil, err
		}

		return sa.Compose(fa), nil
	}

	return affine.New(scale)
}

// det3 computes the determinant of the linear part of a homogeneous matrix.
func det3(m affine.Mat4) float64 {
	return m[0][0]*(m[1][1]*m[2][2]-m[1][2]*m[2][1]) -
		m[0][1]*(m[1][0]*m[2][2]-m[1][2]*m[2][0]) +
		m[0][2]*(m[1][0]*m[2][1]-m[1][1]*m[2][0])
}
