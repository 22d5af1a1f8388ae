// Package xio: AFNI .1D transform files.
//
// AFNI stores one transform per data line as twelve whitespace-separated
// parameters (row-major 3×4), in LPS orientation. Lines starting with '#'
// are comments. Multiple data lines form a series.

package xio

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/quantimage/voxform/affine"
	"github.com/quantimage/voxform/grid"
)

const afniNumParams = 12

type afniFormat struct{}

func (afniFormat) Name() string { return "afni" }

func (afniFormat) FromCanonical(mats []affine.Mat4, _, _ *grid.Grid) (Handle, error) {
	if len(mats) == 0 {
		return nil, ErrEmptyCanonical
	}

	h := &afniHandle{lps: make([]affine.Mat4, len(mats))}
	for i, m := range mats {
		h.lps[i] = lpsToRAS(m)
	}

	return h, nil
}

func (afniFormat) Read(path string) (Handle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	var lps []affine.Mat4
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		vals, err := parseFloats(line)
		if err != nil || len(vals) != afniNumParams {
			return nil, fmt.Errorf("afni: expected %d parameters per line: %w", afniNumParams, ErrMalformed)
		}

		m := affine.Ident()
		for r := 0; r < affine.Dim; r++ {
			copy(m[r][:], vals[r*4:(r+1)*4])
		}
		lps = append(lps, m)
	}
	if err = sc.Err(); err != nil {
		return nil, err
	}
	if len(lps) == 0 {
		return nil, fmt.Errorf("afni: no transforms found: %w", ErrMalformed)
	}

	return &afniHandle{lps: lps}, nil
}

// afniHandle stages transforms in AFNI's native LPS orientation.
type afniHandle struct {
	lps []affine.Mat4
}

func (h *afniHandle) ToCanonical(_, _ *grid.Grid) ([]affine.Mat4, error) {
	mats := make([]affine.Mat4, len(h.lps))
	for i, m := range h.lps {
		mats[i] = lpsToRAS(m)
	}

	return mats, nil
}

func (h *afniHandle) Write(path string) error {
	var b strings.Builder
	b.WriteString("# affine transform matrices, one per row (DICOM-to-DICOM)\n")
	for _, m := range h.lps {
		for r := 0; r < affine.Dim; r++ {
			for c := 0; c < affine.HDim; c++ {
				if r+c > 0 {
					b.WriteString(" ")
				}
				fmt.Fprintf(&b, "%g", m[r][c])
			}
		}
		b.WriteString("\n")
	}

	return os.WriteFile(path, []byte(b.String()), 0o644)
}
