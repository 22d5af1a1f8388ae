// Package affine: functional options for transform construction.

package affine

// options carries construction-time settings. Fields are unexported; public
// APIs consume ...Option.
type options struct {
	ref Reference
}

// Option configures transform construction.
type Option func(*options)

// WithReference associates a reference space with the transform being
// constructed. The association is non-owning: the reference is only read,
// never mutated, and only consulted during resampling, equality advisories
// and file export.
func WithReference(ref Reference) Option {
	return func(o *options) { o.ref = ref }
}

// gatherOptions folds the provided options over the zero defaults.
func gatherOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	return o
}
