package lightgrid

// Manager ties a grid to the map lifecycle: one grid per loaded map, rebuilt
// from scratch whenever the configuration changes.
type Manager struct {
	cfg   GridConfig
	opts  Options
	world World
	grid  *Grid
}

func NewManager(cfg GridConfig, opts Options) *Manager {
	if opts.Logger == nil {
		opts.Logger = NewNopLogger()
	}
	return &Manager{cfg: cfg, opts: opts}
}

// Load builds the grid for a freshly loaded map, replacing any previous one,
// and marks it dirty so the first Tick fills the lattice.
func (m *Manager) Load(world World) *Grid {
	m.Unload()
	m.world = world
	m.grid = New(world, m.cfg, m.opts)
	m.grid.MarkAllDirty()
	return m.grid
}

// Unload drops the current grid. Safe to call with no map loaded.
func (m *Manager) Unload() {
	if m.grid == nil {
		return
	}
	m.opts.Logger.Debugf("unloading grid %s", m.grid.ID())
	m.grid = nil
	m.world = nil
}

// Reconfigure swaps the configuration. A loaded map gets a new grid if
// anything changed; it reports whether a rebuild happened.
func (m *Manager) Reconfigure(cfg GridConfig) bool {
	if cfg == m.cfg {
		return false
	}
	m.cfg = cfg
	if m.world == nil {
		return false
	}
	m.opts.Logger.Infof("grid config changed to %+v, rebuilding", cfg)
	m.Load(m.world)
	return true
}

func (m *Manager) Config() GridConfig { return m.cfg }
func (m *Manager) Grid() *Grid        { return m.grid }

// Notify forwards a change event to the current grid. Events for a map that
// isn't loaded are discarded.
func (m *Manager) Notify(ev LightingChangeEvent) bool {
	if m.grid == nil {
		return false
	}
	return m.grid.Notify(ev)
}

func (m *Manager) Tick() {
	if m.grid == nil {
		return
	}
	m.grid.Tick()
}
