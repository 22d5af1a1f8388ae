// Package interp: extension modes and interpolation options.

package interp

import "fmt"

// Mode selects how the volume is extended when a spline footprint overflows
// a border.
type Mode int

const (
	// ModeConstant fills out-of-bounds samples with a constant value
	// (Options.CVal).
	ModeConstant Mode = iota

	// ModeReflect mirrors about the edge including the edge sample:
	// (d c b a | a b c d | d c b a).
	ModeReflect

	// ModeNearest clamps to the nearest edge sample:
	// (a a a a | a b c d | d d d d).
	ModeNearest

	// ModeMirror mirrors about the edge excluding the edge sample:
	// (d c b | a b c d | c b a).
	ModeMirror

	// ModeWrap repeats the volume periodically:
	// (a b c d | a b c d | a b c d).
	ModeWrap
)

// String returns the canonical mode name.
func (m Mode) String() string {
	switch m {
	case ModeConstant:
		return "constant"
	case ModeReflect:
		return "reflect"
	case ModeNearest:
		return "nearest"
	case ModeMirror:
		return "mirror"
	case ModeWrap:
		return "wrap"
	}

	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode resolves a canonical mode name.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "constant":
		return ModeConstant, nil
	case "reflect":
		return ModeReflect, nil
	case "nearest":
		return ModeNearest, nil
	case "mirror":
		return ModeMirror, nil
	case "wrap":
		return ModeWrap, nil
	}

	return 0, fmt.Errorf("%q: %w", s, ErrUnknownMode)
}

// Valid reports whether m is one of the defined policies.
func (m Mode) Valid() bool {
	return m >= ModeConstant && m <= ModeWrap
}

// Spline order bounds and defaults.
const (
	// MinOrder and MaxOrder bound the supported spline orders.
	MinOrder = 0
	MaxOrder = 5

	// DefaultOrder is cubic, the usual accuracy/cost sweet spot.
	DefaultOrder = 3
)

// Options configures MapCoordinates.
//
// Fields:
//   - Order     — spline order in [0, 5].
//   - Mode      — out-of-bounds extension policy.
//   - CVal      — fill value, used only under ModeConstant.
//   - Prefilter — run SplineFilter before sampling. Required for exact
//     reproduction at original sample locations when Order > 1; disabling
//     it skips the smoothing pre-pass and slightly blurs the result.
type Options struct {
	Order     int
	Mode      Mode
	CVal      float64
	Prefilter bool
}

// DefaultOptions returns cubic interpolation with constant fill 0 and
// prefiltering enabled.
func DefaultOptions() Options {
	return Options{Order: DefaultOrder, Mode: ModeConstant, CVal: 0, Prefilter: true}
}
