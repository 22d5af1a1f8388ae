// Package interp: the spline coefficient prefilter.
//
// Interpolating with a B-spline basis of order > 1 reproduces the original
// samples only when the volume has first been transformed into B-spline
// coefficients. That transform is a separable recursive filter: per axis,
// one causal and one anticausal first-order IIR pass per pole, with mirror
// boundary initialization (Unser's classic scheme).

package interp

import (
	"fmt"
	"math"
)

// poleTol bounds the truncation error of the causal initialization horizon.
const poleTol = 1e-15

// splinePoles returns the filter poles of the given order. Orders 0 and 1
// have none: their bases already interpolate.
func splinePoles(order int) []float64 {
	switch order {
	case 2:
		return []float64{math.Sqrt(8) - 3}
	case 3:
		return []float64{math.Sqrt(3) - 2}
	case 4:
		return []float64{
			math.Sqrt(664-math.Sqrt(438976)) + math.Sqrt(304) - 19,
			math.Sqrt(664+math.Sqrt(438976)) - math.Sqrt(304) - 19,
		}
	case 5:
		return []float64{
			math.Sqrt(135.0/2-math.Sqrt(17745.0/4)) + math.Sqrt(105.0/4) - 13.0/2,
			math.Sqrt(135.0/2+math.Sqrt(17745.0/4)) - math.Sqrt(105.0/4) - 13.0/2,
		}
	}

	return nil
}

// SplineFilter converts a volume of samples into B-spline interpolation
// coefficients for the given order. The input is not mutated; a fresh
// coefficient volume is returned. Orders 0 and 1 return a plain copy.
//
// Complexity: O(len(data)) per pole and axis.
func SplineFilter(data []float64, shape [3]int, order int) ([]float64, error) {
	if order < MinOrder || order > MaxOrder {
		return nil, fmt.Errorf("order %d: %w", order, ErrOrderRange)
	}
	if err := checkVolume(data, shape); err != nil {
		return nil, err
	}

	out := make([]float64, len(data))
	copy(out, data)

	poles := splinePoles(order)
	if len(poles) == 0 {
		return out, nil
	}

	nx, ny, nz := shape[0], shape[1], shape[2]
	line := make([]float64, maxInt(nx, maxInt(ny, nz)))

	// Axis 2 lines are contiguous; axes 1 and 0 are gathered through a
	// scratch buffer.
	for i := 0; i < nx; i++ {
		for j := 0; j < ny; j++ {
			off := (i*ny + j) * nz
			filterLine(out[off:off+nz], poles)
		}
	}
	for i := 0; i < nx; i++ {
		for k := 0; k < nz; k++ {
			l := line[:ny]
			for j := 0; j < ny; j++ {
				l[j] = out[(i*ny+j)*nz+k]
			}
			filterLine(l, poles)
			for j := 0; j < ny; j++ {
				out[(i*ny+j)*nz+k] = l[j]
			}
		}
	}
	for j := 0; j < ny; j++ {
		for k := 0; k < nz; k++ {
			l := line[:nx]
			for i := 0; i < nx; i++ {
				l[i] = out[(i*ny+j)*nz+k]
			}
			filterLine(l, poles)
			for i := 0; i < nx; i++ {
				out[(i*ny+j)*nz+k] = l[i]
			}
		}
	}

	return out, nil
}

// filterLine runs the causal/anticausal recursion over one line, in place.
// Single-sample lines are already their own coefficients.
func filterLine(line []float64, poles []float64) {
	n := len(line)
	if n == 1 {
		return
	}

	gain := 1.0
	for _, z := range poles {
		gain *= (1 - z) * (1 - 1/z)
	}
	for i := range line {
		line[i] *= gain
	}

	for _, z := range poles {
		line[0] = initCausal(line, z)
		for i := 1; i < n; i++ {
			line[i] += z * line[i-1]
		}
		line[n-1] = initAntiCausal(line, z)
		for i := n - 2; i >= 0; i-- {
			line[i] = z * (line[i+1] - line[i])
		}
	}
}

// initCausal computes the causal boundary coefficient under mirror
// extension. When the pole decays below poleTol within the line, the
// initialization sum is truncated at that horizon.
func initCausal(line []float64, z float64) float64 {
	n := len(line)
	horizon := int(math.Ceil(math.Log(poleTol) / math.Log(math.Abs(z))))

	if horizon < n {
		sum := line[0]
		zn := z
		for i := 1; i < horizon; i++ {
			sum += zn * line[i]
			zn *= z
		}

		return sum
	}

	// Full mirror-periodic initialization for short lines.
	iz := 1 / z
	zn := z
	z2n := math.Pow(z, float64(n-1))
	sum := line[0] + z2n*line[n-1]
	z2n *= z2n * iz
	for i := 1; i < n-1; i++ {
		sum += (zn + z2n) * line[i]
		zn *= z
		z2n *= iz
	}

	return sum / (1 - math.Pow(z, float64(2*n-2)))
}

// initAntiCausal computes the anticausal boundary coefficient under mirror
// extension.
func initAntiCausal(line []float64, z float64) float64 {
	n := len(line)

	return (z / (z*z - 1)) * (z*line[n-2] + line[n-1])
}

// checkVolume validates the geometry of a flat volume.
func checkVolume(data []float64, shape [3]int) error {
	for _, n := range shape {
		if n <= 0 {
			return fmt.Errorf("shape %v: %w", shape, ErrBadShape)
		}
	}
	if len(data) != shape[0]*shape[1]*shape[2] {
		return fmt.Errorf("have %d samples for shape %v: %w", len(data), shape, ErrShapeMismatch)
	}

	return nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}

	return b
}
