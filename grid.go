package lightgrid

import (
	"sync/atomic"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

const DefaultEventBuffer = 256

// Options carries the collaborators of a grid. Every field is optional.
type Options struct {
	Logger      Logger
	Metrics     *Metrics
	Adaptation  LightAdaptation
	EventBuffer int // capacity of the change event channel, DefaultEventBuffer if <= 0
}

// Grid is the ambient light lattice of one loaded map. It is built once by
// New and refreshed incrementally; all methods except Notify must be called
// from the goroutine that owns the world.
type Grid struct {
	id       uuid.UUID
	cfg      GridConfig
	logger   Logger
	metrics  *Metrics
	adapt    LightAdaptation
	origin   mgl32.Vec2
	cellSize float32
	width    int
	height   int

	blocks  []Block
	sectors []Sector // represented sectors, in first-owned-cell order
	index   map[Sector]*sectorIndex

	// pending lists every block flagged since the last update pass.
	pending     []int32
	needsUpdate bool

	events   chan LightingChangeEvent
	overflow atomic.Bool
}

// New builds the lattice for world. Out-of-range config values are clamped.
// A disabled grid skips the build and answers every query with black.
func New(world World, cfg GridConfig, opts Options) *Grid {
	cfg, notes := cfg.Normalize()
	if opts.EventBuffer <= 0 {
		opts.EventBuffer = DefaultEventBuffer
	}
	if opts.Adaptation == nil {
		opts.Adaptation = noAdaptation{}
	}

	id := uuid.New()
	g := &Grid{
		id:       id,
		cfg:      cfg,
		logger:   withGridTag(opts.Logger, id.String()),
		metrics:  opts.Metrics,
		adapt:    opts.Adaptation,
		cellSize: float32(cfg.CellSize),
		index:    make(map[Sector]*sectorIndex),
		events:   make(chan LightingChangeEvent, opts.EventBuffer),
	}
	for _, note := range notes {
		g.logger.Warnf("config: %s", note)
	}

	bounds := world.Bounds()
	g.origin = bounds.Min
	g.width, g.height = latticeDimensions(bounds, g.cellSize)

	if !cfg.Enabled {
		g.logger.Infof("disabled, skipping %dx%d lattice", g.width, g.height)
		return g
	}

	stats := g.build(world, cfg.SampleCount())
	g.metrics.observeBuild(len(g.blocks), stats.blocks, stats.elapsed)
	g.logger.Infof("built %dx%d lattice (cell %v, %d samples/cell): %d resolved blocks, %d sectors, %d lookups, %d reused samples in %v",
		g.width, g.height, g.cellSize, cfg.SampleCount(), stats.blocks, stats.sectors, stats.resolved, stats.reused, stats.elapsed)
	return g
}

func (g *Grid) ID() uuid.UUID      { return g.id }
func (g *Grid) Config() GridConfig { return g.cfg }
func (g *Grid) Enabled() bool      { return g.cfg.Enabled }
func (g *Grid) Origin() mgl32.Vec2 { return g.origin }
func (g *Grid) CellSize() float32  { return g.cellSize }

func (g *Grid) Dimensions() (uint32, uint32) {
	return uint32(g.width), uint32(g.height)
}

// Sectors returns the sectors that own at least one cell.
func (g *Grid) Sectors() []Sector {
	return append([]Sector(nil), g.sectors...)
}

// Represents reports whether s owns any cell of the lattice.
func (g *Grid) Represents(s Sector) bool {
	_, ok := g.index[s]
	return ok
}

// Pending returns the number of flagged blocks awaiting Update.
func (g *Grid) Pending() int {
	return len(g.pending)
}

// Block returns a copy of the block at c. Coordinates outside the lattice,
// and every coordinate of a disabled grid, yield an unresolved block.
func (g *Grid) Block(c GridCoordinate) Block {
	if len(g.blocks) == 0 || !g.inLattice(c.X, c.Y) {
		return Block{}
	}
	return g.blocks[c.Index(g.width)]
}

// SectorChanged flags the blocks affected by a lighting change of s. Nothing
// is recomputed until the next Update, so several changes in one frame cost a
// single pass.
func (g *Grid) SectorChanged(s Sector) {
	if !g.cfg.Enabled {
		return
	}
	si, ok := g.index[s]
	if !ok {
		g.logger.Debugf("ignoring change of unrepresented sector %p", s)
		return
	}
	for _, i := range si.changedBlocks() {
		if g.blocks[i].markChanged() {
			g.pending = append(g.pending, i)
		}
	}
	for _, i := range si.contributorBlocks() {
		if g.blocks[i].markContributor() {
			g.pending = append(g.pending, i)
		}
	}
	g.needsUpdate = true
	g.metrics.observeSectorChange(len(g.pending))
}

// MarkAllDirty pushes every represented sector through SectorChanged. Used
// after a load and when a global setting affecting light changes.
func (g *Grid) MarkAllDirty() {
	if !g.cfg.Enabled {
		return
	}
	for _, s := range g.sectors {
		g.SectorChanged(s)
	}
}

// Notify queues a change event for the next Drain. It never blocks and may
// be called from any goroutine. When the buffer is full the event is dropped
// and the next Drain marks the whole grid dirty instead.
func (g *Grid) Notify(ev LightingChangeEvent) bool {
	select {
	case g.events <- ev:
		return true
	default:
		g.overflow.Store(true)
		g.metrics.observeDrop()
		return false
	}
}

// Drain applies every queued change event and returns how many it consumed.
func (g *Grid) Drain() int {
	n := 0
	for {
		select {
		case ev := <-g.events:
			n++
			g.apply(ev)
		default:
			if g.overflow.Swap(false) {
				g.logger.Warnf("change events overflowed, marking all %d sectors dirty", len(g.sectors))
				g.MarkAllDirty()
			}
			return n
		}
	}
}

func (g *Grid) apply(ev LightingChangeEvent) {
	if ev.Sector == nil {
		return
	}
	if ev.Kind == LightColorChanged && ev.ChannelMask&AllChannels == 0 {
		return
	}
	g.SectorChanged(ev.Sector)
}

// Tick is one frame of grid work: apply queued changes, then update.
func (g *Grid) Tick() {
	g.Drain()
	g.Update()
}
