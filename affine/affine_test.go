package affine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantimage/voxform/affine"
)

// translation builds the pure-translation matrix moving the origin to v.
func translation(x, y, z float64) affine.Mat4 {
	m := affine.Ident()
	m[0][3], m[1][3], m[2][3] = x, y, z

	return m
}

// TestNew_PreservesMatrix verifies that construction stores the input
// matrix exactly and caches its exact inverse.
func TestNew_PreservesMatrix(t *testing.T) {
	m := affine.Mat4{
		{1, 0, 0, 4},
		{0, 2, 0, 0},
		{0, 0, 1, -3},
		{0, 0, 0, 1},
	}

	x, err := affine.New(m)
	require.NoError(t, err)
	assert.Equal(t, m, x.Matrix(), "matrix must be preserved exactly")

	// matrix · inverse must be the identity within floating tolerance
	prod := x.Compose(x.Invert())
	assert.True(t, prod.Equals(affine.Identity()), "compose with own inversion must be identity")
}

// TestNew_LastRowNormalized verifies that a tolerance-passing residual in
// the last row is normalized to exactly (0, 0, 0, 1).
func TestNew_LastRowNormalized(t *testing.T) {
	m := affine.Ident()
	m[3] = [4]float64{1e-9, -1e-9, 1e-9, 1 + 1e-9}

	x, err := affine.New(m)
	require.NoError(t, err)
	assert.Equal(t, [4]float64{0, 0, 0, 1}, x.Matrix()[3], "last row must be exactly (0,0,0,1)")
}

// TestNew_LastRowRejected verifies that a last row beyond tolerance is
// fatal.
func TestNew_LastRowRejected(t *testing.T) {
	m := affine.Ident()
	m[3][0] = 0.5

	_, err := affine.New(m)
	assert.ErrorIs(t, err, affine.ErrLastRow)
}

// TestNew_Singular verifies that a non-invertible matrix is rejected.
func TestNew_Singular(t *testing.T) {
	m := affine.Ident()
	m[0][0] = 0 // rank-deficient linear part

	_, err := affine.New(m)
	assert.ErrorIs(t, err, affine.ErrSingular)
}

// TestNewFromRows_ShapeErrors verifies the promotion-time shape checks.
func TestNewFromRows_ShapeErrors(t *testing.T) {
	_, err := affine.NewFromRows(nil)
	assert.ErrorIs(t, err, affine.ErrBadShape, "empty input is not a matrix")

	_, err = affine.NewFromRows([][]float64{{1, 0}, {0}})
	assert.ErrorIs(t, err, affine.ErrBadShape, "ragged rows are not two-dimensional")

	_, err = affine.NewFromRows([][]float64{{1, 0, 0}, {0, 1, 0}})
	assert.ErrorIs(t, err, affine.ErrNonSquare)

	_, err = affine.NewFromRows([][]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}})
	assert.ErrorIs(t, err, affine.ErrBadDimension, "square but not homogeneous 4x4")
}

// TestInvert_SwapsCachedMatrices verifies that inversion is a swap of the
// cached pair, with no recomputation drift.
func TestInvert_SwapsCachedMatrices(t *testing.T) {
	x, err := affine.New(translation(1, 2, 3))
	require.NoError(t, err)

	inv := x.Invert()
	assert.Equal(t, x.Inverse(), inv.Matrix())
	assert.Equal(t, x.Matrix(), inv.Inverse())
}

// TestCompose_Associative verifies (A∘B)∘C == A∘(B∘C) within tolerance.
func TestCompose_Associative(t *testing.T) {
	a, err := affine.New(affine.Mat4{
		{0, -1, 0, 2},
		{1, 0, 0, -1},
		{0, 0, 1, 0.5},
		{0, 0, 0, 1},
	})
	require.NoError(t, err)
	b, err := affine.New(translation(-3, 0, 7))
	require.NoError(t, err)
	c, err := affine.New(affine.Mat4{
		{2, 0, 0, 0},
		{0, 0.5, 0, 1},
		{0, 0, 4, 0},
		{0, 0, 0, 1},
	})
	require.NoError(t, err)

	left := a.Compose(b).Compose(c)
	right := a.Compose(b.Compose(c))
	assert.True(t, left.Equals(right))
}

// TestCompose_ReferencePrecedence verifies that composition inherits the
// right operand's reference, or none.
func TestCompose_ReferencePrecedence(t *testing.T) {
	ref := stubReference{id: "r"}
	a, err := affine.New(translation(1, 0, 0))
	require.NoError(t, err)
	b, err := affine.New(translation(0, 1, 0), affine.WithReference(ref))
	require.NoError(t, err)

	assert.Equal(t, ref, a.Compose(b).Reference(), "right operand's reference wins")
	assert.Nil(t, b.Compose(a).Reference(), "no right-operand reference means none")
}

// TestMap_Translation reproduces the canonical translation example:
// mapping the origin through a +4 x-translation yields (4, 0, 0).
func TestMap_Translation(t *testing.T) {
	x, err := affine.NewFromRows([][]float64{
		{1, 0, 0, 4},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	})
	require.NoError(t, err)

	got := x.Map([]affine.Point{{0, 0, 0}}, false)
	assert.Equal(t, []affine.Point{{4, 0, 0}}, got)
}

// TestMap_RoundTrip verifies map(map(x), inverse) recovers x within
// tolerance for a non-trivial transform.
func TestMap_RoundTrip(t *testing.T) {
	x, err := affine.New(affine.Mat4{
		{0.8, -0.6, 0, 12},
		{0.6, 0.8, 0, -7},
		{0, 0, 1.5, 3},
		{0, 0, 0, 1},
	})
	require.NoError(t, err)

	pts := []affine.Point{{0, 0, 0}, {-1, 4, 2.5}, {10, -10, 0.1}}
	back := x.Map(x.Map(pts, false), true)
	require.Len(t, back, len(pts))
	for i := range pts {
		for d := 0; d < affine.Dim; d++ {
			assert.InDelta(t, pts[i][d], back[i][d], 1e-9)
		}
	}
}

// TestFromMatVec verifies mat/vec construction, including the zero-rot
// default.
func TestFromMatVec(t *testing.T) {
	x, err := affine.FromMatVec([3][3]float64{}, affine.Point{4, 0, 0})
	require.NoError(t, err)
	assert.Equal(t, translation(4, 0, 0), x.Matrix())
}

// TestAffine_TransformInterface verifies the length-1 series behavior.
func TestAffine_TransformInterface(t *testing.T) {
	x := affine.Identity()
	assert.Equal(t, 1, x.Len())

	got, err := x.At(0)
	require.NoError(t, err)
	assert.Same(t, x, got)

	_, err = x.At(1)
	assert.ErrorIs(t, err, affine.ErrIndexOutOfRange)
}

// stubReference is a minimal Reference for association tests.
type stubReference struct {
	id string
}

func (s stubReference) Coordinates() []affine.Point { return nil }
func (s stubReference) Shape() []int                { return nil }
func (s stubReference) Equal(other affine.Reference) bool {
	o, ok := other.(stubReference)

	return ok && o.id == s.id
}
