package affine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantimage/voxform/affine"
)

// TestEqual_Tolerance verifies element-wise approximate equality.
func TestEqual_Tolerance(t *testing.T) {
	a, err := affine.New(translation(4, 0, 0))
	require.NoError(t, err)
	b, err := affine.New(translation(4+1e-7, 0, 0))
	require.NoError(t, err)
	c, err := affine.New(translation(5, 0, 0))
	require.NoError(t, err)

	assert.True(t, a.Equals(b), "within tolerance must compare equal")
	assert.False(t, a.Equals(c), "beyond tolerance must compare unequal")
}

// TestEqual_ReferencePolicy verifies the configurable treatment of equal
// matrices with mismatched references: advisory and ignore keep the
// comparison true, strict flips it. The comparison never errors.
func TestEqual_ReferencePolicy(t *testing.T) {
	a, err := affine.New(translation(1, 1, 1), affine.WithReference(stubReference{id: "a"}))
	require.NoError(t, err)
	b, err := affine.New(translation(1, 1, 1), affine.WithReference(stubReference{id: "b"}))
	require.NoError(t, err)

	assert.True(t, affine.Equal(a, b, affine.RefAdvise))
	assert.True(t, affine.Equal(a, b, affine.RefIgnore))
	assert.False(t, affine.Equal(a, b, affine.RefStrict))

	// Equals uses the advisory default: true despite the mismatch.
	assert.True(t, a.Equals(b))
}

// TestEqual_NilHandling verifies nil comparisons do not panic.
func TestEqual_NilHandling(t *testing.T) {
	a := affine.Identity()

	assert.False(t, affine.Equal(a, nil, affine.RefAdvise))
	assert.False(t, affine.Equal(nil, a, affine.RefAdvise))
	assert.True(t, affine.Equal(nil, nil, affine.RefAdvise))
}

// TestEqual_OneSidedReference verifies that a reference on only one side
// counts as a mismatch under the strict policy.
func TestEqual_OneSidedReference(t *testing.T) {
	a, err := affine.New(affine.Ident(), affine.WithReference(stubReference{id: "a"}))
	require.NoError(t, err)
	b, err := affine.New(affine.Ident())
	require.NoError(t, err)

	assert.False(t, affine.Equal(a, b, affine.RefStrict))
	assert.True(t, affine.Equal(a, b, affine.RefAdvise))
}
