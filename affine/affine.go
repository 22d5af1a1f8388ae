// Package affine: the single-transform type and its algebra.
//
// An Affine owns a 4×4 homogeneous matrix mapping reference-space physical
// coordinates into moving-space physical coordinates, plus its exact
// inverse, computed once at construction via a linear solve. Every algebraic
// operation (Invert, Compose) returns a new instance; nothing is mutated in
// place, so instances are freely shareable.

package affine

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Affine is a single 4×4 homogeneous spatial transform.
// The zero value is not usable; construct via Identity, New, NewFromRows or
// FromMatVec.
type Affine struct {
	m   *mat.Dense // HDim×HDim, last row exactly (0,0,0,1)
	inv *mat.Dense // exact inverse of m, cached at construction
	ref Reference  // optional, non-owning
}

// Identity returns the identity transform.
func Identity(opts ...Option) *Affine {
	o := gatherOptions(opts)

	return &Affine{m: denseOf(Ident()), inv: denseOf(Ident()), ref: o.ref}
}

// New constructs a transform from a homogeneous matrix.
//
// The last row must be (0, 0, 0, 1) within LastRowTol; any residual that
// passes the check is then normalized away, so the stored last row is exact.
// The inverse is computed immediately; ErrSingular is returned when no
// inverse exists. This is the only automatic correction performed — all
// other malformations are fatal.
func New(m Mat4, opts ...Option) (*Affine, error) {
	o := gatherOptions(opts)

	for j := 0; j < HDim; j++ {
		want := 0.0
		if j == HDim-1 {
			want = 1.0
		}
		if math.Abs(m[HDim-1][j]-want) > LastRowTol {
			return nil, fmt.Errorf("got %v: %w", m[HDim-1], ErrLastRow)
		}
	}
	m[HDim-1] = [HDim]float64{0, 0, 0, 1}

	d := denseOf(m)
	inv, err := invertDense(d)
	if err != nil {
		return nil, err
	}

	return &Affine{m: d, inv: inv, ref: o.ref}, nil
}

// NewFromRows is the explicit promotion of a raw matrix into a transform,
// invoked wherever an API boundary accepts caller-supplied rows.
//
// It fails with ErrBadShape when rows are empty or ragged (the input is not
// a well-formed two-dimensional matrix), ErrNonSquare when the row and
// column counts differ, and ErrBadDimension when the matrix is square but
// not 4×4. On success it delegates to New for the homogeneous checks.
func NewFromRows(rows [][]float64, opts ...Option) (*Affine, error) {
	if len(rows) == 0 {
		return nil, ErrBadShape
	}
	cols := len(rows[0])
	for _, r := range rows {
		if len(r) != cols {
			return nil, ErrBadShape
		}
	}
	if len(rows) != cols {
		return nil, ErrNonSquare
	}
	if len(rows) != HDim {
		return nil, fmt.Errorf("got %dx%d: %w", len(rows), cols, ErrBadDimension)
	}

	var m Mat4
	for i := range rows {
		copy(m[i][:], rows[i])
	}

	return New(m, opts...)
}

// FromMatVec builds a transform from a 3×3 linear part and a translation.
// Either part may be zero-valued: a zero rot is replaced by the identity,
// matching the usual mat/vec construction convention.
func FromMatVec(rot [Dim][Dim]float64, vec Point, opts ...Option) (*Affine, error) {
	if rot == ([Dim][Dim]float64{}) {
		for i := 0; i < Dim; i++ {
			rot[i][i] = 1
		}
	}

	m := Ident()
	for i := 0; i < Dim; i++ {
		copy(m[i][:Dim], rot[i][:])
		m[i][Dim] = vec[i]
	}

	return New(m, opts...)
}

// Matrix returns a copy of the internal homogeneous matrix.
func (a *Affine) Matrix() Mat4 { return mat4Of(a.m) }

// Inverse returns a copy of the cached inverse matrix.
func (a *Affine) Inverse() Mat4 { return mat4Of(a.inv) }

// Reference returns the associated reference space, or nil.
func (a *Affine) Reference() Reference { return a.ref }

// Invert returns the inverse transform. Matrix and inverse are simply
// swapped — both were cached at construction, so this is O(1) and performs
// no recomputation. The reference association is not carried over: the
// inverse maps in the opposite direction, for which the reference space is
// not meaningful.
func (a *Affine) Invert() *Affine {
	return &Affine{m: a.inv, inv: a.m}
}

// Compose returns the transform applying b first and a second, i.e. the
// matrix product a.matrix · b.matrix. The result inherits b's reference
// space when b has one (right-operand precedence) and carries none
// otherwise. The result inverse is the exact product b.inverse · a.inverse,
// so no linear solve is needed.
//
// Raw matrices must be promoted with New/NewFromRows before composing;
// passing nil is a programmer error and panics.
func (a *Affine) Compose(b *Affine) *Affine {
	if b == nil {
		panic("affine: Compose with nil operand")
	}

	var m, inv mat.Dense
	m.Mul(a.m, b.m)
	inv.Mul(b.inv, a.inv)

	return &Affine{m: &m, inv: &inv, ref: b.ref}
}

// Map applies y = f(x) to a batch of physical coordinates, or x = f⁻¹(y)
// when inverse is true. Points are converted to homogeneous form and pushed
// through a single matrix multiplication; there is no per-point looping
// beyond the final extraction.
//
// Complexity: O(len(pts)).
func (a *Affine) Map(pts []Point, inverse bool) []Point {
	if len(pts) == 0 {
		return nil
	}

	m := a.m
	if inverse {
		m = a.inv
	}

	n := len(pts)
	coords := mat.NewDense(HDim, n, nil)
	for p, pt := range pts {
		for d := 0; d < Dim; d++ {
			coords.Set(d, p, pt[d])
		}
		coords.Set(Dim, p, 1)
	}

	var out mat.Dense
	out.Mul(m, coords)

	res := make([]Point, n)
	for p := 0; p < n; p++ {
		for d := 0; d < Dim; d++ {
			res[p][d] = out.At(d, p)
		}
	}

	return res
}

// Len reports 1: a single Affine is a length-1 Transform.
func (a *Affine) Len() int { return 1 }

// At returns the transform itself for index 0 and ErrIndexOutOfRange
// otherwise.
func (a *Affine) At(i int) (*Affine, error) {
	if i != 0 {
		return nil, fmt.Errorf("index %d on single transform: %w", i, ErrIndexOutOfRange)
	}

	return a, nil
}

// denseOf copies a Mat4 into a fresh gonum dense matrix.
func denseOf(m Mat4) *mat.Dense {
	flat := make([]float64, 0, HDim*HDim)
	for i := 0; i < HDim; i++ {
		flat = append(flat, m[i][:]...)
	}

	return mat.NewDense(HDim, HDim, flat)
}

// mat4Of copies a gonum dense matrix back into a Mat4.
func mat4Of(d *mat.Dense) Mat4 {
	var m Mat4
	for i := 0; i < HDim; i++ {
		for j := 0; j < HDim; j++ {
			m[i][j] = d.At(i, j)
		}
	}

	return m
}

// invertDense solves for the exact inverse of d. A finite condition-number
// warning from the solver is tolerated (the inverse is still exact to
// working precision); a singular matrix is not.
func invertDense(d *mat.Dense) (*mat.Dense, error) {
	var inv mat.Dense
	if err := inv.Inverse(d); err != nil {
		var cond mat.Condition
		if !errors.As(err, &cond) || math.IsInf(float64(cond), 0) {
			return nil, fmt.Errorf("%v: %w", err, ErrSingular)
		}
	}

	return &inv, nil
}
