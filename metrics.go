package lightgrid

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics exposes grid activity to Prometheus. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	updates       prometheus.Counter
	recomputed    prometheus.Counter
	sectorChanges prometheus.Counter
	dropped       prometheus.Counter
	blocks        prometheus.Gauge
	resolved      prometheus.Gauge
	pending       prometheus.Gauge
	buildSeconds  prometheus.Histogram
}

// NewMetrics creates the collectors and registers them on reg. Passing a nil
// registerer leaves them unregistered, which is handy in tests.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		updates: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "lightgrid",
			Name:      "updates_total",
			Help:      "Update passes that had pending work.",
		}),
		recomputed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "lightgrid",
			Name:      "blocks_recomputed_total",
			Help:      "Blocks rebuilt from their neighbourhood by update passes.",
		}),
		sectorChanges: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "lightgrid",
			Name:      "sector_changes_total",
			Help:      "Sector lighting changes applied to the grid.",
		}),
		dropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "lightgrid",
			Name:      "events_dropped_total",
			Help:      "Lighting change events that overflowed the event buffer.",
		}),
		blocks: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "lightgrid",
			Name:      "blocks",
			Help:      "Cells in the current lattice.",
		}),
		resolved: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "lightgrid",
			Name:      "resolved_blocks",
			Help:      "Cells with an owning sector.",
		}),
		pending: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "lightgrid",
			Name:      "pending_blocks",
			Help:      "Flagged blocks waiting for the next update pass.",
		}),
		buildSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "lightgrid",
			Name:      "build_seconds",
			Help:      "Time spent building a lattice.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8),
		}),
	}
	if reg != nil {
		reg.MustRegister(m.updates, m.recomputed, m.sectorChanges, m.dropped,
			m.blocks, m.resolved, m.pending, m.buildSeconds)
	}
	return m
}

func (m *Metrics) observeBuild(blocks, resolved int, d time.Duration) {
	if m == nil {
		return
	}
	m.blocks.Set(float64(blocks))
	m.resolved.Set(float64(resolved))
	m.pending.Set(0)
	m.buildSeconds.Observe(d.Seconds())
}

func (m *Metrics) observeUpdate(recomputed int) {
	if m == nil {
		return
	}
	m.updates.Inc()
	m.recomputed.Add(float64(recomputed))
	m.pending.Set(0)
}

func (m *Metrics) observeSectorChange(pending int) {
	if m == nil {
		return
	}
	m.sectorChanges.Inc()
	m.pending.Set(float64(pending))
}

func (m *Metrics) observeDrop() {
	if m == nil {
		return
	}
	m.dropped.Inc()
}
