// Package interp: B-spline basis evaluation.

package interp

import "math"

// weight evaluates the centered B-spline basis of the given order at offset
// x. The basis has support (-(order+1)/2, (order+1)/2) and the weights of
// any full footprint form a partition of unity.
func weight(order int, x float64) float64 {
	x = math.Abs(x)

	switch order {
	case 0:
		if x < 0.5 {
			return 1
		}
	case 1:
		if x < 1 {
			return 1 - x
		}
	case 2:
		if x < 0.5 {
			return 0.75 - x*x
		}
		if x < 1.5 {
			y := 1.5 - x
			return 0.5 * y * y
		}
	case 3:
		if x < 1 {
			return (4 + x*x*(3*x-6)) / 6
		}
		if x < 2 {
			y := 2 - x
			return y * y * y / 6
		}
	case 4:
		if x < 0.5 {
			x2 := x * x
			return x2*(x2*0.25-0.625) + 115.0/192.0
		}
		if x < 1.5 {
			return (55 + x*(20+x*(-120+x*(80-16*x)))) / 96
		}
		if x < 2.5 {
			y := 2.5 - x
			y2 := y * y
			return y2 * y2 / 24
		}
	case 5:
		if x < 1 {
			x2 := x * x
			return (66 + x2*(-60+x2*(30-10*x))) / 120
		}
		if x < 2 {
			return (51 + x*(75+x*(-210+x*(150+x*(-45+5*x))))) / 120
		}
		if x < 3 {
			y := 3 - x
			y2 := y * y
			return y2 * y2 * y / 120
		}
	}

	return 0
}

// footprint computes the first sample index and the order+1 basis weights of
// the spline footprint covering coordinate x. Even orders center the
// footprint on the nearest sample, odd orders on the containing cell.
func footprint(order int, x float64, w *[MaxOrder + 1]float64) (start int) {
	if order == 0 {
		w[0] = 1

		return int(math.Floor(x + 0.5))
	}

	if order%2 == 1 {
		start = int(math.Floor(x)) - order/2
	} else {
		start = int(math.Floor(x+0.5)) - order/2
	}
	for k := 0; k <= order; k++ {
		w[k] = weight(order, x-float64(start+k))
	}

	return start
}
