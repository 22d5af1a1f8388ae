// Package grid: the voxel grid and scattered point-set references.

package grid

import (
	"fmt"
	"sync"

	"github.com/quantimage/voxform/affine"
)

// Grid is a voxel grid sampling physical space: a shape plus the
// voxel-affine mapping voxel indices (i, j, k) to physical coordinates.
// Immutable after construction; the flattened physical coordinates are
// computed lazily, once.
type Grid struct {
	shape   [3]int
	vox2ras *affine.Affine

	once   sync.Once
	coords []affine.Point
}

// New constructs a grid from three positive extents and a voxel-affine.
func New(shape [3]int, vox2ras *affine.Affine) (*Grid, error) {
	for _, n := range shape {
		if n <= 0 {
			return nil, fmt.Errorf("shape %v: %w", shape, ErrBadShape)
		}
	}
	if vox2ras == nil {
		return nil, ErrNilAffine
	}

	return &Grid{shape: shape, vox2ras: vox2ras}, nil
}

// Shape returns the grid extents. Never nil: a Grid is always a genuine
// voxel grid, which is how the resampler distinguishes it from a PointSet.
func (g *Grid) Shape() []int {
	return []int{g.shape[0], g.shape[1], g.shape[2]}
}

// Extents returns the grid extents as a fixed-size array.
func (g *Grid) Extents() [3]int { return g.shape }

// Affine returns the voxel-affine (voxel indices to physical coordinates).
func (g *Grid) Affine() *affine.Affine { return g.vox2ras }

// NumSamples returns the total number of grid samples.
func (g *Grid) NumSamples() int { return g.shape[0] * g.shape[1] * g.shape[2] }

// Coordinates returns the flattened physical sample coordinates, in
// row-major voxel order (k fastest, then j, then i). The slice is cached
// and shared across calls; callers must treat it as read-only.
func (g *Grid) Coordinates() []affine.Point {
	g.once.Do(func() {
		idx := make([]affine.Point, 0, g.NumSamples())
		for i := 0; i < g.shape[0]; i++ {
			for j := 0; j < g.shape[1]; j++ {
				for k := 0; k < g.shape[2]; k++ {
					idx = append(idx, affine.Point{float64(i), float64(j), float64(k)})
				}
			}
		}
		g.coords = g.vox2ras.Map(idx, false)
	})

	return g.coords
}

// Index returns the flat sample index of voxel (i, j, k), consistent with
// the ordering of Coordinates and of Image data.
func (g *Grid) Index(i, j, k int) int {
	return (i*g.shape[1]+j)*g.shape[2] + k
}

// Equal reports whether other is a grid with the same extents and an
// approximately equal voxel-affine.
func (g *Grid) Equal(other affine.Reference) bool {
	og, ok := other.(*Grid)
	if !ok {
		return false
	}
	if g.shape != og.shape {
		return false
	}

	return affine.Equal(g.vox2ras, og.vox2ras, affine.RefIgnore)
}

// PointSet is a scattered cloud of physical sample coordinates, used when
// resampling onto arbitrary locations rather than a voxel grid.
type PointSet struct {
	pts []affine.Point
}

// NewPointSet copies the given physical coordinates into a point set.
func NewPointSet(pts []affine.Point) (*PointSet, error) {
	if len(pts) == 0 {
		return nil, ErrEmptyPoints
	}

	cp := make([]affine.Point, len(pts))
	copy(cp, pts)

	return &PointSet{pts: cp}, nil
}

// Coordinates returns the sample coordinates. Callers must treat the slice
// as read-only.
func (p *PointSet) Coordinates() []affine.Point { return p.pts }

// Shape returns nil: a point set has no grid structure.
func (p *PointSet) Shape() []int { return nil }

// NumSamples returns the number of points.
func (p *PointSet) NumSamples() int { return len(p.pts) }

// Equal reports whether other is a point set with identical coordinates.
func (p *PointSet) Equal(other affine.Reference) bool {
	op, ok := other.(*PointSet)
	if !ok || len(p.pts) != len(op.pts) {
		return false
	}
	for i := range p.pts {
		if p.pts[i] != op.pts[i] {
			return false
		}
	}

	return true
}
