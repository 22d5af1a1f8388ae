// Package resample: functional options for Apply.

package resample

import (
	"runtime"

	"github.com/quantimage/voxform/affine"
	"github.com/quantimage/voxform/grid"
	"github.com/quantimage/voxform/interp"
)

// options carries resampling settings. Fields are unexported; Apply
// consumes ...Option.
type options struct {
	order     int
	mode      interp.Mode
	cval      float64
	prefilter bool

	dtype    *grid.DType
	ref      affine.Reference
	refPath  string
	loader   grid.Loader
	workers  int
}

// Option configures a resampling call.
type Option func(*options)

// WithOrder sets the spline interpolation order (0–5). Out-of-range values
// are rejected by Apply before any work starts.
func WithOrder(order int) Option {
	return func(o *options) { o.order = order }
}

// WithMode sets the out-of-bounds extension policy.
func WithMode(m interp.Mode) Option {
	return func(o *options) { o.mode = m }
}

// WithFill sets the constant fill value, used only under interp.ModeConstant.
func WithFill(cval float64) Option {
	return func(o *options) { o.cval = cval }
}

// WithPrefilter toggles the spline prefiltering pass. It is on by default
// and required for exact reproduction at order > 1; disabling it trades
// accuracy for speed.
func WithPrefilter(on bool) Option {
	return func(o *options) { o.prefilter = on }
}

// WithDType overrides the output storage dtype. Without it the output
// inherits the source's dtype. Fixed once, before allocation.
func WithDType(d grid.DType) Option {
	return func(o *options) { o.dtype = &d }
}

// WithReference overrides the transform's own reference sampling.
func WithReference(ref affine.Reference) Option {
	return func(o *options) { o.ref = ref }
}

// WithReferencePath resolves the reference through the configured loader
// before any transform or interpolation work begins.
func WithReferencePath(path string) Option {
	return func(o *options) { o.refPath = path }
}

// WithLoader replaces the image loader used for path inputs. The default is
// grid.LoadImage. Panics on nil (programmer error).
func WithLoader(l grid.Loader) Option {
	if l == nil {
		panic("resample: WithLoader requires a non-nil loader")
	}

	return func(o *options) { o.loader = l }
}

// WithWorkers caps the number of concurrently resampled channels. Values
// below 1 restore the default (GOMAXPROCS).
func WithWorkers(n int) Option {
	return func(o *options) { o.workers = n }
}

// gatherOptions folds the provided options over the documented defaults.
func gatherOptions(opts []Option) options {
	o := options{
		order:     interp.DefaultOrder,
		mode:      interp.ModeConstant,
		cval:      0,
		prefilter: true,
		loader:    grid.LoadImage,
		workers:   runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.workers < 1 {
		o.workers = runtime.GOMAXPROCS(0)
	}

	return o
}
