// Package resample: the resampling engine.

package resample

import (
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/quantimage/voxform/affine"
	"github.com/quantimage/voxform/grid"
	"github.com/quantimage/voxform/interp"
)

// Resampled holds the result of Apply. Data is always populated, flat and
// channel-contiguous (channel t occupies Data[t*Points:(t+1)*Points], so
// each resampled volume is memory-contiguous). Image is the grid-shaped
// view, populated only when the reference was a genuine voxel grid; for
// scattered references the raw points×channels data is all there is.
type Resampled struct {
	Data     []float64
	Points   int
	Channels int
	DType    grid.DType
	Image    *grid.Image
}

// Volume returns the contiguous samples of output channel t.
func (r *Resampled) Volume(t int) ([]float64, error) {
	if t < 0 || t >= r.Channels {
		return nil, fmt.Errorf("channel %d of %d: %w", t, r.Channels, grid.ErrBadChannel)
	}

	return r.Data[t*r.Points : (t+1)*r.Points], nil
}

// Apply resamples src onto the reference sampling through each transform of
// xfm. A single *affine.Affine is a length-1 series.
//
// The reference is taken from the options (WithReference/WithReferencePath)
// or, failing that, from the transform itself; without either the call
// fails with ErrNoReference. A 4-D source must carry exactly xfm.Len()
// channels — a mismatch fails with ErrChannelMismatch before any
// interpolation work. A 3-D source is reused for every series entry.
//
// The source voxel-affine is inverted once, not per channel; the
// per-channel loop runs concurrently (see WithWorkers), each channel
// writing its own disjoint output slice.
func Apply(xfm affine.Transform, src *grid.Image, opts ...Option) (*Resampled, error) {
	o := gatherOptions(opts)

	if xfm == nil {
		return nil, ErrNilTransform
	}
	if src == nil {
		return nil, ErrNilSource
	}
	if o.order < interp.MinOrder || o.order > interp.MaxOrder {
		return nil, fmt.Errorf("order %d: %w", o.order, interp.ErrOrderRange)
	}
	if !o.mode.Valid() {
		return nil, fmt.Errorf("mode %d: %w", int(o.mode), interp.ErrUnknownMode)
	}

	ref := o.ref
	if o.refPath != "" {
		im, err := o.loader(o.refPath)
		if err != nil {
			return nil, fmt.Errorf("resample: load reference: %w", err)
		}
		ref = im.Grid()
	}
	if ref == nil {
		ref = xfm.Reference()
	}
	if ref == nil {
		return nil, ErrNoReference
	}

	nchannels := xfm.Len()
	if src.Channels() > 0 && src.Channels() != nchannels {
		return nil, fmt.Errorf("applying %d transforms on an image with %d channels: %w",
			nchannels, src.Channels(), ErrChannelMismatch)
	}

	// Output dtype is fixed here, before allocation.
	dtype := src.DType()
	if o.dtype != nil {
		dtype = *o.dtype
	}

	coords := ref.Coordinates()
	n := len(coords)
	shape := src.Grid().Extents()

	// Invert the source voxel-affine once; both directions were cached at
	// construction, so this is a swap.
	ras2vox := src.Grid().Affine().Invert()

	// A 3-D source is shared by all channels: prefilter it once up front
	// instead of once per channel.
	shared := src.Channels() == 0
	var sharedVol []float64
	if shared {
		var err error
		if sharedVol, err = src.Volume(0); err != nil {
			return nil, err
		}
		if o.prefilter && o.order > 1 {
			if sharedVol, err = interp.SplineFilter(sharedVol, shape, o.order); err != nil {
				return nil, err
			}
		}
	}

	out := make([]float64, n*nchannels)

	var eg errgroup.Group
	eg.SetLimit(o.workers)
	for t := 0; t < nchannels; t++ {
		t := t
		eg.Go(func() error {
			xt, err := xfm.At(t)
			if err != nil {
				return err
			}

			// Physical target coordinates, then source voxel coordinates.
			phys := xt.Map(coords, false)
			vox := ras2vox.Map(phys, false)
			vcoords := make([][3]float64, n)
			for p := range vox {
				vcoords[p] = [3]float64(vox[p])
			}

			iopts := interp.Options{Order: o.order, Mode: o.mode, CVal: o.cval}
			vol := sharedVol
			if !shared {
				if vol, err = src.Volume(t); err != nil {
					return err
				}
				iopts.Prefilter = o.prefilter
			}

			dst := out[t*n : (t+1)*n]
			if err = interp.MapCoordinatesInto(dst, vol, shape, vcoords, iopts); err != nil {
				return err
			}
			if dtype != grid.Float64 {
				for i := range dst {
					dst[i] = dtype.Quantize(dst[i])
				}
			}

			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	res := &Resampled{Data: out, Points: n, Channels: nchannels, DType: dtype}

	// Grid references get a grid-shaped image with a trailing channel axis
	// and the reference voxel-affine; scattered references stay unshaped.
	if g, ok := ref.(*grid.Grid); ok {
		im, err := grid.NewImage(g, out, grid.WithChannels(nchannels), grid.WithDType(dtype))
		if err != nil {
			return nil, err
		}
		res.Image = im
	}

	return res, nil
}

// ApplyFile resolves the source image through the configured loader, then
// resamples it with Apply. Loading is a one-shot synchronous step performed
// entirely before any transform or interpolation work.
func ApplyFile(xfm affine.Transform, path string, opts ...Option) (*Resampled, error) {
	o := gatherOptions(opts)

	src, err := o.loader(path)
	if err != nil {
		return nil, fmt.Errorf("resample: load source: %w", err)
	}

	return Apply(xfm, src, opts...)
}
