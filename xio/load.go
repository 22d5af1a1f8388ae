// Package xio: chained loading and saving.

package xio

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/quantimage/voxform/affine"
	"github.com/quantimage/voxform/grid"
)

// logger traces per-format load attempts at debug level.
var logger = log.Default().WithPrefix("xio")

// SetLogger replaces the package logger. Passing nil restores the default.
func SetLogger(l *log.Logger) {
	if l == nil {
		logger = log.Default().WithPrefix("xio")

		return
	}
	logger = l
}

// options carries load/save settings.
type options struct {
	format string
	ref    *grid.Grid
	mov    *grid.Grid
}

// Option configures Load and Save.
type Option func(*options)

// WithFormat pins a single format instead of trying the whole chain.
func WithFormat(name string) Option {
	return func(o *options) { o.format = name }
}

// WithReference supplies the reference grid: attached to the loaded
// transform, and consumed by grid-dependent conversions (fsl) and by the
// X5 container's nested reference on save.
func WithReference(g *grid.Grid) Option {
	return func(o *options) { o.ref = g }
}

// WithMoving supplies the moving-image grid consumed by grid-dependent
// conversions (fsl).
func WithMoving(g *grid.Grid) Option {
	return func(o *options) { o.mov = g }
}

func gatherOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// Load reads a transform file. With no pinned format it tries each
// supported format in the fixed chain order (itk, afni, fsl, x5) and
// returns the first successful parse; every attempt's failure is kept, and
// when all candidates fail the returned *ChainError enumerates them.
//
// A file holding exactly one transform yields an *affine.Affine; more yield
// an *affine.Series. The caller's reference (WithReference) is attached to
// the result; absent one, an X5 container's embedded reference is used.
func Load(path string, opts ...Option) (affine.Transform, error) {
	o := gatherOptions(opts)

	chain := Formats()
	if o.format != "" {
		f, err := lookup(o.format)
		if err != nil {
			return nil, err
		}
		chain = []Format{f}
	}

	var attempts []Attempt
	for _, f := range chain {
		h, err := f.Read(path)
		if err == nil {
			var mats []affine.Mat4
			if mats, err = h.ToCanonical(o.ref, o.mov); err == nil {
				logger.Debug("parsed transform file", "path", path, "format", f.Name(), "entries", len(mats))

				return buildTransform(mats, o.ref, h)
			}
		}
		logger.Debug("format did not parse", "path", path, "format", f.Name(), "err", err)
		attempts = append(attempts, Attempt{Format: f.Name(), Err: err})
	}

	return nil, &ChainError{Path: path, Attempts: attempts}
}

// buildTransform promotes canonical matrices into a transform value,
// collapsing single-entry files to a plain Affine.
func buildTransform(mats []affine.Mat4, ref *grid.Grid, h Handle) (affine.Transform, error) {
	var aopts []affine.Option
	switch {
	case ref != nil:
		aopts = append(aopts, affine.WithReference(ref))
	default:
		if x5h, ok := h.(*x5Handle); ok && x5h.embeddedReference() != nil {
			aopts = append(aopts, affine.WithReference(x5h.embeddedReference()))
		}
	}

	if len(mats) == 1 {
		return affine.New(mats[0], aopts...)
	}

	return affine.SeriesFromMatrices(mats, aopts...)
}

// Save writes a transform in the requested format (default x5). The
// reference grid is taken from WithReference or, failing that, from the
// transform's own reference when it is a voxel grid.
func Save(xfm affine.Transform, path string, opts ...Option) error {
	o := gatherOptions(opts)

	name := o.format
	if name == "" {
		name = "x5"
	}
	f, err := lookup(name)
	if err != nil {
		return err
	}

	mats := make([]affine.Mat4, xfm.Len())
	for i := range mats {
		x, err := xfm.At(i)
		if err != nil {
			return err
		}
		mats[i] = x.Matrix()
	}

	ref := o.ref
	if ref == nil {
		if g, ok := xfm.Reference().(*grid.Grid); ok {
			ref = g
		}
	}

	h, err := f.FromCanonical(mats, ref, o.mov)
	if err != nil {
		return fmt.Errorf("xio: stage %s: %w", name, err)
	}

	return h.Write(path)
}
