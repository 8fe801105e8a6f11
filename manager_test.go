package lightgrid_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gekko3d/lightgrid"
)

func TestManager_Lifecycle(t *testing.T) {
	mgr := lightgrid.NewManager(config(32, 1), lightgrid.Options{})
	assert.Nil(t, mgr.Grid())
	assert.NotPanics(t, mgr.Tick)

	world, room := roomWorld(0.5)
	grid := mgr.Load(world)
	require.NotNil(t, grid)
	assert.Same(t, grid, mgr.Grid())
	assert.Equal(t, 9, grid.Pending(), "a fresh map is dirty")
	assert.Equal(t, mgl32.Vec3{}, grid.Evaluate(mgl32.Vec3{32, 32, 0}))

	mgr.Tick()
	assert.Zero(t, grid.Pending())
	assertColor(t, 0.05*4.6/8, grid.Evaluate(mgl32.Vec3{32, 32, 0}))

	assert.True(t, mgr.Notify(room.SetLightLevel(1)))
	mgr.Tick()
	assertColor(t, 1.05*4.6/8, grid.Evaluate(mgl32.Vec3{32, 32, 0}))

	mgr.Unload()
	assert.Nil(t, mgr.Grid())
	assert.False(t, mgr.Notify(room.SetLightLevel(0.5)))
	assert.NotPanics(t, mgr.Tick)
}

func TestManager_Reconfigure(t *testing.T) {
	mgr := lightgrid.NewManager(config(32, 1), lightgrid.Options{})
	assert.False(t, mgr.Reconfigure(config(16, 1)), "nothing loaded, nothing rebuilt")
	assert.Equal(t, uint32(16), mgr.Config().CellSize)

	world, _ := roomWorld(0.5)
	first := mgr.Load(world)
	assert.False(t, mgr.Reconfigure(config(16, 1)))
	assert.Same(t, first, mgr.Grid())

	assert.True(t, mgr.Reconfigure(config(32, 1)))
	second := mgr.Grid()
	require.NotNil(t, second)
	assert.NotEqual(t, first.ID(), second.ID())
	w, h := second.Dimensions()
	assert.Equal(t, [2]uint32{3, 3}, [2]uint32{w, h})

	off := config(32, 1)
	off.Enabled = false
	assert.True(t, mgr.Reconfigure(off))
	assert.False(t, mgr.Grid().Enabled())
	mgr.Tick()
	assert.Equal(t, mgl32.Vec3{}, mgr.Grid().Evaluate(mgl32.Vec3{32, 32, 0}))
}
