package stockroom

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	migrationEmplace = "emplace"
	migrationRemove  = "remove"
)

// Metrics exposes registry activity as Prometheus collectors. A nil *Metrics
// records nothing.
type Metrics struct {
	entitiesCreated   prometheus.Counter
	entitiesDestroyed prometheus.Counter
	liveEntities      prometheus.Gauge
	archetypes        prometheus.Gauge
	migrations        *prometheus.CounterVec
	commandsExecuted  prometheus.Counter
	systemDuration    *prometheus.HistogramVec

	registry *prometheus.Registry
}

// NewMetrics creates the collectors under namespace and registers them on a
// private Prometheus registry.
func NewMetrics(namespace string) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),

		entitiesCreated: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "entities_created_total",
				Help:      "Total number of entities created",
			},
		),
		entitiesDestroyed: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "entities_destroyed_total",
				Help:      "Total number of entities destroyed",
			},
		),
		liveEntities: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "live_entities",
				Help:      "Current number of live entities",
			},
		),
		archetypes: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "archetypes",
				Help:      "Current number of archetypes",
			},
		),
		migrations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "migrations_total",
				Help:      "Total number of entity migrations between archetypes",
			},
			[]string{"kind"},
		),
		commandsExecuted: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "commands_executed_total",
				Help:      "Total number of replayed buffered commands",
			},
		),
		systemDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "system_update_duration_seconds",
				Help:      "Duration of system updates in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"system"},
		),
	}

	m.registry.MustRegister(
		m.entitiesCreated,
		m.entitiesDestroyed,
		m.liveEntities,
		m.archetypes,
		m.migrations,
		m.commandsExecuted,
		m.systemDuration,
	)
	return m
}

// Registry returns the Prometheus registry holding the collectors, for use
// with promhttp or a Gatherer.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) recordEntityCreated() {
	if m == nil {
		return
	}
	m.entitiesCreated.Inc()
	m.liveEntities.Inc()
}

func (m *Metrics) recordEntityDestroyed() {
	if m == nil {
		return
	}
	m.entitiesDestroyed.Inc()
	m.liveEntities.Dec()
}

func (m *Metrics) recordArchetypeCreated() {
	if m == nil {
		return
	}
	m.archetypes.Inc()
}

func (m *Metrics) recordMigration(kind string) {
	if m == nil {
		return
	}
	m.migrations.WithLabelValues(kind).Inc()
}

func (m *Metrics) recordCommandExecuted() {
	if m == nil {
		return
	}
	m.commandsExecuted.Inc()
}

func (m *Metrics) recordSystemUpdate(name string, d time.Duration) {
	if m == nil {
		return
	}
	m.systemDuration.WithLabelValues(name).Observe(d.Seconds())
}
