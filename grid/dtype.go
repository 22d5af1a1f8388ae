// Package grid: storage dtypes.
//
// Samples are held as float64 in memory; the dtype tag records the storage
// type the data came from (or should be written back as). Quantize applies
// the storage semantics of a dtype to a freshly computed sample, so a
// resampled volume tagged int16 holds the same values an int16 buffer would.

package grid

import (
	"fmt"
	"math"
)

// DType identifies the storage type of image samples.
type DType int

const (
	// Float64 stores samples verbatim.
	Float64 DType = iota

	// Float32 rounds samples to single precision.
	Float32

	// Int16 rounds samples to the nearest integer, clamped to [-32768, 32767].
	Int16

	// UInt8 rounds samples to the nearest integer, clamped to [0, 255].
	UInt8
)

// String returns the canonical dtype name.
func (d DType) String() string {
	switch d {
	case Float64:
		return "float64"
	case Float32:
		return "float32"
	case Int16:
		return "int16"
	case UInt8:
		return "uint8"
	}

	return fmt.Sprintf("DType(%d)", int(d))
}

// ParseDType resolves a canonical dtype name.
func ParseDType(s string) (DType, error) {
	switch s {
	case "float64":
		return Float64, nil
	case "float32":
		return Float32, nil
	case "int16":
		return Int16, nil
	case "uint8":
		return UInt8, nil
	}

	return 0, fmt.Errorf("%q: %w", s, ErrUnknownDType)
}

// Quantize applies the storage semantics of d to v. NaN quantizes to zero
// under the integer dtypes.
func (d DType) Quantize(v float64) float64 {
	switch d {
	case Float32:
		return float64(float32(v))
	case Int16:
		return clampRound(v, math.MinInt16, math.MaxInt16)
	case UInt8:
		return clampRound(v, 0, math.MaxUint8)
	}

	return v
}

func clampRound(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	v = math.Round(v)
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}

	return v
}
