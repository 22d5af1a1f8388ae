// Package affine: domain types and tolerances shared across the package.
// Errors live in errors.go, functional options in options.go.

package affine

// Dim is the spatial dimensionality handled by this package.
const Dim = 3

// HDim is the homogeneous dimensionality (Dim + 1).
const HDim = Dim + 1

// EqualityTol is the relative tolerance used by Equal/Equals when comparing
// matrices element-wise.
const EqualityTol = 1e-5

// equalityAbsTol is the absolute floor added to the relative comparison so
// that near-zero entries compare sanely.
const equalityAbsTol = 1e-8

// LastRowTol is the absolute tolerance applied to the last row of a
// homogeneous matrix at construction. Rows passing the check are
// force-normalized to exactly (0, 0, 0, 1).
const LastRowTol = 1e-6

// Mat4 is a 4×4 real matrix in homogeneous form, row-major.
// Invariant (enforced by New): the last row is exactly (0, 0, 0, 1).
type Mat4 [HDim][HDim]float64

// Point is a physical (RAS+) coordinate.
type Point [Dim]float64

// Ident returns the 4×4 identity matrix.
func Ident() Mat4 {
	var m Mat4
	for i := 0; i < HDim; i++ {
		m[i][i] = 1
	}

	return m
}

// Reference describes a spatial sampling of physical space: either a voxel
// grid or a scattered point cloud. It is consumed read-only; transforms hold
// it as a non-owning association used for resampling and file export.
type Reference interface {
	// Coordinates returns the flattened physical sample coordinates, in
	// row-major voxel order (last axis fastest) for grids.
	Coordinates() []Point

	// Shape returns the grid extents, or nil for a scattered point cloud.
	Shape() []int

	// Equal reports whether other samples the same physical space.
	Equal(other Reference) bool
}

// Transform is the capability shared by Affine and Series: an ordered,
// indexable collection of affine transforms over one reference space.
// A single Affine is a length-1 Transform.
type Transform interface {
	// Len returns the number of transforms in the collection.
	Len() int

	// At returns an independent view of entry i, sharing the collection's
	// reference. Returns ErrIndexOutOfRange outside [0, Len).
	At(i int) (*Affine, error)

	// Reference returns the associated reference space, or nil.
	Reference() Reference
}
