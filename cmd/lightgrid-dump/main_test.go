package main

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gekko3d/lightgrid"
)

func TestRun_WritesUpscaledLattice(t *testing.T) {
	out := filepath.Join(t.TempDir(), "grid.png")
	err := run(lightgrid.NewNopLogger(), "testdata/courtyard.yaml", "testdata/grid.yaml", out, 4)
	require.NoError(t, err)

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)

	// 384x256 world at 32 units per cell is a 13x9 lattice
	assert.Equal(t, image.Rect(0, 0, 13*4, 9*4), img.Bounds())

	// the courtyard column is lit
	r, g, b, a := img.At(6*4+1, 4*4+1).RGBA()
	assert.NotZero(t, r+g+b)
	assert.Equal(t, uint32(0xffff), a)
}

func TestRun_Errors(t *testing.T) {
	logger := lightgrid.NewNopLogger()
	out := filepath.Join(t.TempDir(), "grid.png")

	assert.ErrorContains(t, run(logger, "", "", out, 1), "-map is required")
	assert.ErrorIs(t, run(logger, "testdata/missing.yaml", "", out, 1), os.ErrNotExist)
	assert.Error(t, run(logger, "testdata/courtyard.yaml", "testdata/missing.yaml", out, 1))
}

func TestToRGBA(t *testing.T) {
	c := toRGBA(mgl32.Vec3{0, 0.5, 2})
	assert.Equal(t, uint8(0), c.R)
	assert.Equal(t, uint8(128), c.G)
	assert.Equal(t, uint8(255), c.B)
	assert.Equal(t, uint8(255), c.A)
}
