// Package xio: ITK/ANTs text transform files (.tfm).
//
// The ITK text format is self-identifying ("#Insight Transform File V1.0")
// and stores each transform as twelve parameters — a row-major 3×3 linear
// part followed by the translation — in LPS orientation. Files may hold any
// number of transform stanzas, so the format supports series natively.

package xio

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/quantimage/voxform/affine"
	"github.com/quantimage/voxform/grid"
)

const (
	itkMagic     = "#Insight Transform File V1.0"
	itkClass     = "MatrixOffsetTransformBase_double_3_3"
	itkNumParams = 12
)

type itkFormat struct{}

func (itkFormat) Name() string { return "itk" }

func (itkFormat) FromCanonical(mats []affine.Mat4, _, _ *grid.Grid) (Handle, error) {
	if len(mats) == 0 {
		return nil, ErrEmptyCanonical
	}

	h := &itkHandle{lps: make([]affine.Mat4, len(mats))}
	for i, m := range mats {
		h.lps[i] = lpsToRAS(m) // involution: RAS+ -> LPS
	}

	return h, nil
}

func (itkFormat) Read(path string) (Handle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	seenMagic := false
	var lps []affine.Mat4

	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if !seenMagic {
			if line != itkMagic {
				return nil, fmt.Errorf("itk: missing header: %w", ErrMalformed)
			}
			seenMagic = true

			continue
		}

		params, ok := strings.CutPrefix(line, "Parameters:")
		if !ok {
			continue
		}
		vals, err := parseFloats(params)
		if err != nil || len(vals) != itkNumParams {
			return nil, fmt.Errorf("itk: expected %d parameters: %w", itkNumParams, ErrMalformed)
		}
		lps = append(lps, itkParamsToMat(vals))
	}
	if err = sc.Err(); err != nil {
		return nil, err
	}
	if len(lps) == 0 {
		return nil, fmt.Errorf("itk: no transforms found: %w", ErrMalformed)
	}

	return &itkHandle{lps: lps}, nil
}

// itkHandle stages transforms in ITK's native LPS orientation.
type itkHandle struct {
	lps []affine.Mat4
}

func (h *itkHandle) ToCanonical(_, _ *grid.Grid) ([]affine.Mat4, error) {
	mats := make([]affine.Mat4, len(h.lps))
	for i, m := range h.lps {
		mats[i] = lpsToRAS(m)
	}

	return mats, nil
}

func (h *itkHandle) Write(path string) error {
	var b strings.Builder
	b.WriteString(itkMagic + "\n")
	for i, m := range h.lps {
		fmt.Fprintf(&b, "#Transform %d\n", i)
		fmt.Fprintf(&b, "Transform: %s\n", itkClass)
		b.WriteString("Parameters:")
		for r := 0; r < affine.Dim; r++ {
			for c := 0; c < affine.Dim; c++ {
				fmt.Fprintf(&b, " %g", m[r][c])
			}
		}
		for r := 0; r < affine.Dim; r++ {
			fmt.Fprintf(&b, " %g", m[r][affine.Dim])
		}
		b.WriteString("\nFixedParameters: 0 0 0\n")
	}

	return os.WriteFile(path, []byte(b.String()), 0o644)
}

// itkParamsToMat assembles the twelve ITK parameters into a homogeneous
// matrix (still LPS-oriented).
func itkParamsToMat(p []float64) affine.Mat4 {
	m := affine.Ident()
	for r := 0; r < affine.Dim; r++ {
		for c := 0; c < affine.Dim; c++ {
			m[r][c] = p[r*affine.Dim+c]
		}
		m[r][affine.Dim] = p[9+r]
	}

	return m
}

// parseFloats splits a whitespace-separated list of reals.
func parseFloats(s string) ([]float64, error) {
	fields := strings.Fields(s)
	vals := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, err
		}
		vals[i] = v
	}

	return vals, nil
}
