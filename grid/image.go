// Package grid: the in-memory image container.

package grid

import "fmt"

// Image binds voxel data to a Grid. Data is stored flat in channel-major
// layout: sample (i, j, k) of channel t lives at data[t*n + Index(i, j, k)],
// so each channel volume is memory-contiguous. Channels == 0 marks a plain
// 3-D volume with no channel axis; Channels >= 1 marks a 4-D image whose
// trailing axis has that length.
type Image struct {
	grid     *Grid
	data     []float64
	channels int
	dtype    DType
}

// ImageOption configures image construction.
type ImageOption func(*Image)

// WithChannels declares a trailing channel axis of length t. Panics when t
// is negative (programmer error).
func WithChannels(t int) ImageOption {
	if t < 0 {
		panic("grid: WithChannels requires a non-negative count")
	}

	return func(im *Image) { im.channels = t }
}

// WithDType tags the image with a storage dtype. Default is Float64.
func WithDType(d DType) ImageOption {
	return func(im *Image) { im.dtype = d }
}

// NewImage binds data to a grid. Data length must equal the grid sample
// count times the channel count (one volume when no channel axis is
// declared); mismatches fail with ErrDataSize.
func NewImage(g *Grid, data []float64, opts ...ImageOption) (*Image, error) {
	if g == nil {
		return nil, ErrNilAffine
	}

	im := &Image{grid: g, data: data, dtype: Float64}
	for _, opt := range opts {
		opt(im)
	}

	vols := im.channels
	if vols == 0 {
		vols = 1
	}
	if want := g.NumSamples() * vols; len(data) != want {
		return nil, fmt.Errorf("have %d samples, want %d: %w", len(data), want, ErrDataSize)
	}

	return im, nil
}

// Grid returns the image's sampling grid.
func (im *Image) Grid() *Grid { return im.grid }

// Data returns the flat channel-major samples. Callers must treat the slice
// as read-only.
func (im *Image) Data() []float64 { return im.data }

// Channels returns the trailing channel axis length, or 0 when the image is
// a plain 3-D volume.
func (im *Image) Channels() int { return im.channels }

// DType returns the storage dtype tag.
func (im *Image) DType() DType { return im.dtype }

// NDim returns 4 when the image carries a channel axis and 3 otherwise.
func (im *Image) NDim() int {
	if im.channels > 0 {
		return 4
	}

	return 3
}

// Volume returns the contiguous samples of channel t. For a 3-D image only
// t == 0 is valid and yields the whole volume. Callers must treat the slice
// as read-only.
func (im *Image) Volume(t int) ([]float64, error) {
	vols := im.channels
	if vols == 0 {
		vols = 1
	}
	if t < 0 || t >= vols {
		return nil, fmt.Errorf("channel %d of %d: %w", t, vols, ErrBadChannel)
	}

	n := im.grid.NumSamples()

	return im.data[t*n : (t+1)*n], nil
}
