// Package affine: ordered series of transforms.
//
// A Series is the batched analogue of Affine: N matrices plus N inverses
// over one shared reference space, e.g. one transform per timepoint of a 4D
// acquisition. Entry order is preserved everywhere — indexing, iteration and
// batched mapping all follow construction order.

package affine

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Series is an ordered, indexable collection of affine transforms sharing
// one reference space. Construct via NewSeries or SeriesFromMatrices.
type Series struct {
	ms   []*mat.Dense // per-entry matrices, all HDim×HDim
	invs []*mat.Dense // invs[i] is the exact inverse of ms[i]
	ref  Reference
}

// NewSeries stacks the given transforms into a series. Matrices and cached
// inverses are taken from the entries; each inverse remains an independent
// per-entry solve with no cross-entry coupling. The series' reference is
// taken from the options and overrides the entries' own references.
//
// Returns ErrEmptySeries for zero entries and ErrNilTransform when any
// entry is nil.
func NewSeries(xfms []*Affine, opts ...Option) (*Series, error) {
	o := gatherOptions(opts)

	if len(xfms) == 0 {
		return nil, ErrEmptySeries
	}

	s := &Series{
		ms:   make([]*mat.Dense, len(xfms)),
		invs: make([]*mat.Dense, len(xfms)),
		ref:  o.ref,
	}
	for i, x := range xfms {
		if x == nil {
			return nil, fmt.Errorf("entry %d: %w", i, ErrNilTransform)
		}
		s.ms[i] = x.m
		s.invs[i] = x.inv
	}

	return s, nil
}

// SeriesFromMatrices promotes each raw matrix through New and stacks the
// results, computing a fresh inverse per entry.
func SeriesFromMatrices(ms []Mat4, opts ...Option) (*Series, error) {
	if len(ms) == 0 {
		return nil, ErrEmptySeries
	}

	xfms := make([]*Affine, len(ms))
	for i, m := range ms {
		x, err := New(m)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		xfms[i] = x
	}

	return NewSeries(xfms, opts...)
}

// Len returns the number of transforms in the series.
func (s *Series) Len() int { return len(s.ms) }

// Reference returns the shared reference space, or nil.
func (s *Series) Reference() Reference { return s.ref }

// At returns an independent Affine view of entry i, sharing the series'
// reference space. Returns ErrIndexOutOfRange outside [0, Len).
func (s *Series) At(i int) (*Affine, error) {
	if i < 0 || i >= len(s.ms) {
		return nil, fmt.Errorf("index %d of %d: %w", i, len(s.ms), ErrIndexOutOfRange)
	}

	return &Affine{m: s.ms[i], inv: s.invs[i], ref: s.ref}, nil
}

// Transforms returns the series entries as independent Affine views, in
// original order.
func (s *Series) Transforms() []*Affine {
	out := make([]*Affine, len(s.ms))
	for i := range s.ms {
		out[i] = &Affine{m: s.ms[i], inv: s.invs[i], ref: s.ref}
	}

	return out
}

// Matrices returns copies of the stacked matrices, in original order.
func (s *Series) Matrices() []Mat4 {
	out := make([]Mat4, len(s.ms))
	for i, m := range s.ms {
		out[i] = mat4Of(m)
	}

	return out
}

// Map applies every transform in the series to the same point set. The
// result is transform-major, then point-major, then coordinate axis —
// out[t][p] is entry t applied to pts[p]. Downstream code depends on this
// fixed axis order.
//
// Complexity: O(Len · len(pts)).
func (s *Series) Map(pts []Point, inverse bool) [][]Point {
	out := make([][]Point, len(s.ms))
	for t := range s.ms {
		x := &Affine{m: s.ms[t], inv: s.invs[t], ref: s.ref}
		out[t] = x.Map(pts, inverse)
	}

	return out
}
