package lightgrid

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSectorChanged_QueuesEachBlockOnce(t *testing.T) {
	a := newStubSector(0.8, mgl32.Vec3{1, 1, 1})
	b := newStubSector(0.8, mgl32.Vec3{1, 1, 1})
	g := New(splitWorld(288, 48, a, b), singleSampleConfig(32), Options{})

	g.SectorChanged(a)
	assert.True(t, g.needsUpdate)
	assert.Equal(t, 6, g.Pending())

	// b's changed area overlaps everything a flagged
	g.SectorChanged(b)
	assert.Equal(t, 10, g.Pending())
	for i := 0; i < 10; i++ {
		assert.Equal(t, Changed|Contributor, g.Block(GridCoordinate{i, 0}).Flags(), "cell %d", i)
	}

	g.Update()
	assert.False(t, g.needsUpdate)
	assert.Zero(t, g.Pending())
	for i := 0; i < 10; i++ {
		assert.Zero(t, g.Block(GridCoordinate{i, 0}).Flags(), "cell %d", i)
	}
}

func TestSectorChanged_ContributorsAreNotReset(t *testing.T) {
	a := newStubSector(0.8, mgl32.Vec3{1, 1, 1})
	b := newStubSector(0.8, mgl32.Vec3{1, 1, 1})
	g := New(splitWorld(288, 48, a, b), singleSampleConfig(32), Options{})
	g.MarkAllDirty()
	g.Update()

	before := g.Block(GridCoordinate{5, 0}).Color()
	require.NotEqual(t, mgl32.Vec3{}, before)

	g.SectorChanged(a)
	assert.Equal(t, Contributor, g.Block(GridCoordinate{5, 0}).Flags())
	assert.Equal(t, before, g.Block(GridCoordinate{5, 0}).Color())
}

func TestSectorChanged_UnrepresentedSector(t *testing.T) {
	a := newStubSector(0.8, mgl32.Vec3{1, 1, 1})
	g := New(splitWorld(288, 300, a, a), singleSampleConfig(32), Options{})

	g.SectorChanged(newStubSector(1, mgl32.Vec3{1, 0, 0}))
	assert.False(t, g.needsUpdate)
	assert.Zero(t, g.Pending())
}

func TestNotify_OverflowMarksEverything(t *testing.T) {
	a := newStubSector(0.8, mgl32.Vec3{1, 1, 1})
	b := newStubSector(0.8, mgl32.Vec3{1, 1, 1})
	m := NewMetrics(nil)
	g := New(splitWorld(288, 48, a, b), singleSampleConfig(32), Options{EventBuffer: 1, Metrics: m})

	assert.True(t, g.Notify(LevelChange(a, 0.5)))
	assert.False(t, g.Notify(LevelChange(a, 0.6)))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.dropped))

	assert.Equal(t, 1, g.Drain())
	assert.Equal(t, 10, g.Pending(), "overflow falls back to marking every sector")
	assert.False(t, g.overflow.Load())
}

func TestDrain_IgnoresEmptyColorChange(t *testing.T) {
	a := newStubSector(0.8, mgl32.Vec3{1, 1, 1})
	g := New(splitWorld(288, 300, a, a), singleSampleConfig(32), Options{})

	g.Notify(ColorChange(a, mgl32.Vec3{1, 1, 1}, 0))
	g.Notify(LightingChangeEvent{Kind: LightLevelChanged})
	assert.Equal(t, 2, g.Drain())
	assert.Zero(t, g.Pending())

	g.Notify(ColorChange(a, mgl32.Vec3{0, 1, 1}, ChannelRed))
	assert.Equal(t, 1, g.Drain())
	assert.Equal(t, 10, g.Pending())
}

func TestMetrics_TrackUpdates(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	a := newStubSector(0.8, mgl32.Vec3{1, 1, 1})
	b := newStubSector(0.8, mgl32.Vec3{1, 1, 1})
	g := New(splitWorld(288, 48, a, b), singleSampleConfig(32), Options{Metrics: m})

	assert.Equal(t, float64(10), testutil.ToFloat64(m.blocks))
	assert.Equal(t, float64(10), testutil.ToFloat64(m.resolved))

	g.SectorChanged(a)
	assert.Equal(t, float64(6), testutil.ToFloat64(m.pending))
	g.Update()
	g.Update()

	assert.Equal(t, float64(1), testutil.ToFloat64(m.sectorChanges))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.updates))
	assert.Equal(t, float64(4), testutil.ToFloat64(m.recomputed))
	assert.Equal(t, float64(0), testutil.ToFloat64(m.pending))

	n, err := testutil.GatherAndCount(reg)
	require.NoError(t, err)
	assert.Equal(t, 8, n)
}

func TestMetrics_NilIsSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.observeBuild(1, 1, 0)
		m.observeUpdate(1)
		m.observeSectorChange(1)
		m.observeDrop()
	})
}
