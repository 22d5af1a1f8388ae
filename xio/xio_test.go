package xio_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantimage/voxform/affine"
	"github.com/quantimage/voxform/grid"
	"github.com/quantimage/voxform/xio"
)

// sampleMat is a generic invertible transform: rotation-ish linear part plus
// translation, so orientation conversions cannot cancel out by accident.
func sampleMat() affine.Mat4 {
	return affine.Mat4{
		{0.9, 0.1, 0, 2.5},
		{-0.1, 0.9, 0, -1},
		{0, 0, 1.1, 3},
		{0, 0, 0, 1},
	}
}

func translation(x, y, z float64) affine.Mat4 {
	m := affine.Ident()
	m[0][3], m[1][3], m[2][3] = x, y, z

	return m
}

// diagGrid builds a grid whose voxel-affine is diag(sx, sy, sz) plus offset.
func diagGrid(t *testing.T, shape [3]int, sx, sy, sz, off float64) *grid.Grid {
	t.Helper()

	m := affine.Ident()
	m[0][0], m[1][1], m[2][2] = sx, sy, sz
	m[0][3] = off
	vox2ras, err := affine.New(m)
	require.NoError(t, err)

	g, err := grid.New(shape, vox2ras)
	require.NoError(t, err)

	return g
}

// assertMatNear compares two matrices element-wise.
func assertMatNear(t *testing.T, want, got affine.Mat4) {
	t.Helper()

	for i := range want {
		for j := range want[i] {
			assert.InDelta(t, want[i][j], got[i][j], 1e-9, "element (%d,%d)", i, j)
		}
	}
}

// TestSaveLoad_TextFormats round-trips a single transform through each text
// format that needs no image grids.
func TestSaveLoad_TextFormats(t *testing.T) {
	dir := t.TempDir()

	for _, name := range []string{"itk", "afni"} {
		xfm, err := affine.New(sampleMat())
		require.NoError(t, err)

		path := filepath.Join(dir, "xfm."+name)
		require.NoError(t, xio.Save(xfm, path, xio.WithFormat(name)))

		back, err := xio.Load(path, xio.WithFormat(name))
		require.NoError(t, err, name)
		require.Equal(t, 1, back.Len(), name)

		single, ok := back.(*affine.Affine)
		require.True(t, ok, "%s: one entry must collapse to a plain transform", name)
		assertMatNear(t, sampleMat(), single.Matrix())
	}
}

// TestSaveLoad_AFNISeries round-trips a multi-entry series; AFNI stores one
// transform per data line.
func TestSaveLoad_AFNISeries(t *testing.T) {
	mats := []affine.Mat4{sampleMat(), translation(4, -5, 6), affine.Ident()}
	s, err := affine.SeriesFromMatrices(mats)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "series.1D")
	require.NoError(t, xio.Save(s, path, xio.WithFormat("afni")))

	back, err := xio.Load(path, xio.WithFormat("afni"))
	require.NoError(t, err)
	require.Equal(t, len(mats), back.Len())

	series, ok := back.(*affine.Series)
	require.True(t, ok)
	for i, m := range series.Matrices() {
		assertMatNear(t, mats[i], m)
	}
}

// TestSaveLoad_FSL round-trips the grid-dependent FSL convention for both
// image orientations (the right-handed case involves the radiological flip).
func TestSaveLoad_FSL(t *testing.T) {
	ref := diagGrid(t, [3]int{10, 12, 14}, 2, 2, 2.5, -7)
	movPos := diagGrid(t, [3]int{8, 8, 8}, 1, 1, 1, 0)
	movNeg := diagGrid(t, [3]int{8, 8, 8}, -1, 1, 1, 3)

	for name, mov := range map[string]*grid.Grid{"positive": movPos, "negative": movNeg} {
		xfm, err := affine.New(sampleMat())
		require.NoError(t, err)

		path := filepath.Join(t.TempDir(), "xfm.mat")
		grids := []xio.Option{xio.WithReference(ref), xio.WithMoving(mov)}

		require.NoError(t, xio.Save(xfm, path, append(grids, xio.WithFormat("fsl"))...), name)

		back, err := xio.Load(path, append(grids, xio.WithFormat("fsl"))...)
		require.NoError(t, err, name)

		single, ok := back.(*affine.Affine)
		require.True(t, ok, name)
		for i := 0; i < affine.HDim; i++ {
			for j := 0; j < affine.HDim; j++ {
				assert.InDelta(t, sampleMat()[i][j], single.Matrix()[i][j], 1e-6,
					"%s det: element (%d,%d)", name, i, j)
			}
		}
	}
}

// TestFSL_Restrictions verifies the format's structural limits: one matrix
// per file, grids required on both directions.
func TestFSL_Restrictions(t *testing.T) {
	s, err := affine.SeriesFromMatrices([]affine.Mat4{affine.Ident(), affine.Ident()})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "xfm.mat")
	err = xio.Save(s, path, xio.WithFormat("fsl"))
	assert.ErrorIs(t, err, xio.ErrSeriesUnsupported)

	err = xio.Save(affine.Identity(), path, xio.WithFormat("fsl"))
	assert.ErrorIs(t, err, xio.ErrGridRequired)
}

// TestSaveLoad_X5 verifies the default container: series storage plus the
// embedded reference grid surfacing on load.
func TestSaveLoad_X5(t *testing.T) {
	ref := diagGrid(t, [3]int{4, 5, 6}, 2, 2, 2, 1)
	mats := []affine.Mat4{sampleMat(), translation(1, 2, 3)}
	s, err := affine.SeriesFromMatrices(mats, affine.WithReference(ref))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "xfm.x5")
	require.NoError(t, xio.Save(s, path)) // x5 is the default format

	back, err := xio.Load(path, xio.WithFormat("x5"))
	require.NoError(t, err)
	require.Equal(t, 2, back.Len())

	series, ok := back.(*affine.Series)
	require.True(t, ok)
	for i, m := range series.Matrices() {
		assertMatNear(t, mats[i], m)
	}

	g, ok := back.Reference().(*grid.Grid)
	require.True(t, ok, "embedded reference must surface as a grid")
	assert.True(t, ref.Equal(g))
}

// TestLoad_CallerReferenceWins verifies the reference precedence on load:
// an explicit grid beats the container's embedded one.
func TestLoad_CallerReferenceWins(t *testing.T) {
	embedded := diagGrid(t, [3]int{4, 4, 4}, 1, 1, 1, 0)
	caller := diagGrid(t, [3]int{9, 9, 9}, 3, 3, 3, 0)

	xfm, err := affine.New(sampleMat(), affine.WithReference(embedded))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "xfm.x5")
	require.NoError(t, xio.Save(xfm, path))

	back, err := xio.Load(path, xio.WithReference(caller))
	require.NoError(t, err)

	g, ok := back.Reference().(*grid.Grid)
	require.True(t, ok)
	assert.True(t, caller.Equal(g))
}

// TestLoad_ChainDetection verifies format sniffing without a pinned format.
func TestLoad_ChainDetection(t *testing.T) {
	dir := t.TempDir()

	for _, name := range []string{"itk", "afni", "x5"} {
		xfm, err := affine.New(sampleMat())
		require.NoError(t, err)

		path := filepath.Join(dir, "sniff."+name)
		require.NoError(t, xio.Save(xfm, path, xio.WithFormat(name)))

		back, err := xio.Load(path)
		require.NoError(t, err, name)
		single, ok := back.(*affine.Affine)
		require.True(t, ok, name)
		assertMatNear(t, sampleMat(), single.Matrix())
	}
}

// TestLoad_ChainError verifies that a file no format accepts reports every
// attempt, and that sentinel matching works through the accumulated error.
func TestLoad_ChainError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.txt")
	require.NoError(t, os.WriteFile(path, []byte("not a transform\n"), 0o644))

	_, err := xio.Load(path)
	require.Error(t, err)

	var chain *xio.ChainError
	require.ErrorAs(t, err, &chain)
	assert.Equal(t, path, chain.Path)
	require.Len(t, chain.Attempts, 4, "every format in the chain must be tried")
	assert.Equal(t, "itk", chain.Attempts[0].Format)
	assert.ErrorIs(t, err, xio.ErrMalformed)
}

// TestLoad_FSLNeedsGrids verifies that a valid FSL file without grids fails
// with the structural sentinel rather than parsing wrong.
func TestLoad_FSLNeedsGrids(t *testing.T) {
	ref := diagGrid(t, [3]int{4, 4, 4}, 1, 1, 1, 0)
	mov := diagGrid(t, [3]int{4, 4, 4}, 1, 1, 1, 0)

	path := filepath.Join(t.TempDir(), "xfm.mat")
	require.NoError(t, xio.Save(affine.Identity(), path,
		xio.WithFormat("fsl"), xio.WithReference(ref), xio.WithMoving(mov)))

	_, err := xio.Load(path, xio.WithFormat("fsl"))
	assert.ErrorIs(t, err, xio.ErrGridRequired)
}

// TestUnknownFormat verifies the registry lookup on both paths.
func TestUnknownFormat(t *testing.T) {
	_, err := xio.Load("whatever", xio.WithFormat("nifti"))
	assert.ErrorIs(t, err, xio.ErrUnknownFormat)

	err = xio.Save(affine.Identity(), "whatever", xio.WithFormat("nifti"))
	assert.ErrorIs(t, err, xio.ErrUnknownFormat)

	var chain *xio.ChainError
	assert.False(t, errors.As(err, &chain), "a bad name is not a chain failure")
}
