// Package interp: spline sampling at fractional voxel coordinates.

package interp

import "fmt"

// MapCoordinates samples the volume at each voxel coordinate with B-spline
// interpolation, returning one value per coordinate. See Options for order,
// extension policy and prefiltering; see MapCoordinatesInto to write into a
// caller-owned slice.
func MapCoordinates(data []float64, shape [3]int, coords [][3]float64, opts Options) ([]float64, error) {
	out := make([]float64, len(coords))
	if err := MapCoordinatesInto(out, data, shape, coords, opts); err != nil {
		return nil, err
	}

	return out, nil
}

// MapCoordinatesInto samples the volume at each voxel coordinate and stores
// the results in dst, which must have exactly one slot per coordinate.
//
// The input volume is never mutated: when prefiltering applies (Order > 1
// and Options.Prefilter), the coefficients are computed into a temporary
// volume first. Callers resampling many coordinate batches from one volume
// can run SplineFilter once themselves and pass Prefilter=false.
//
// Complexity: O(len(coords) · (order+1)³) after the optional prefilter.
func MapCoordinatesInto(dst []float64, data []float64, shape [3]int, coords [][3]float64, opts Options) error {
	if opts.Order < MinOrder || opts.Order > MaxOrder {
		return fmt.Errorf("order %d: %w", opts.Order, ErrOrderRange)
	}
	if !opts.Mode.Valid() {
		return fmt.Errorf("mode %d: %w", int(opts.Mode), ErrUnknownMode)
	}
	if err := checkVolume(data, shape); err != nil {
		return err
	}
	if len(dst) != len(coords) {
		return fmt.Errorf("destination %d for %d coordinates: %w", len(dst), len(coords), ErrShapeMismatch)
	}

	src := data
	if opts.Prefilter && opts.Order > 1 {
		var err error
		if src, err = SplineFilter(data, shape, opts.Order); err != nil {
			return err
		}
	}

	order := opts.Order
	nx, ny, nz := shape[0], shape[1], shape[2]

	var wx, wy, wz [MaxOrder + 1]float64
	for p, c := range coords {
		sx := footprint(order, c[0], &wx)
		sy := footprint(order, c[1], &wy)
		sz := footprint(order, c[2], &wz)

		acc := 0.0
		for a := 0; a <= order; a++ {
			ia, inA := fitIndex(sx+a, nx, opts.Mode)
			wa := wx[a]
			for b := 0; b <= order; b++ {
				ib, inB := fitIndex(sy+b, ny, opts.Mode)
				wab := wa * wy[b]
				for g := 0; g <= order; g++ {
					ic, inC := fitIndex(sz+g, nz, opts.Mode)
					v := opts.CVal
					if inA && inB && inC {
						v = src[(ia*ny+ib)*nz+ic]
					}
					acc += wab * wz[g] * v
				}
			}
		}
		dst[p] = acc
	}

	return nil
}

// fitIndex folds a sample index into [0, n) according to the extension
// mode. The second return is false only under ModeConstant, marking a
// sample that takes the fill value instead of a volume read.
func fitIndex(i, n int, mode Mode) (int, bool) {
	if i >= 0 && i < n {
		return i, true
	}

	switch mode {
	case ModeNearest:
		if i < 0 {
			return 0, true
		}

		return n - 1, true

	case ModeWrap:
		m := i % n
		if m < 0 {
			m += n
		}

		return m, true

	case ModeReflect:
		if n == 1 {
			return 0, true
		}
		p := 2 * n
		m := i % p
		if m < 0 {
			m += p
		}
		if m >= n {
			m = p - 1 - m
		}

		return m, true

	case ModeMirror:
		if n == 1 {
			return 0, true
		}
		p := 2*n - 2
		m := i % p
		if m < 0 {
			m += p
		}
		if m >= n {
			m = p - m
		}

		return m, true
	}

	return 0, false
}
