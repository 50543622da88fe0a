package stockroom

import (
	"testing"
	"time"

	"github.com/TheBitDrifter/stockroom/job"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsRecordRegistryActivity(t *testing.T) {
	posComp := FactoryNewComponent[Position]()
	velComp := FactoryNewComponent[Velocity]()
	m := NewMetrics("stockroom_test")
	r := Factory.NewRegistry(WithMetrics(m))

	e, _ := r.Create()
	posComp.Emplace(r, e, Position{})
	velComp.Emplace(r, e, Velocity{})
	velComp.Remove(r, e)
	others, _ := r.NewEntities(2, posComp)

	buffer := r.CreateCommandBuffer()
	buffer.AddCommand(DestroyCommand(others[0]))
	require.NoError(t, buffer.Execute())

	r.AddSystem("noop", SystemFunc(func(Registry) error { return nil }))
	require.NoError(t, r.Update())

	assert.Equal(t, 3.0, testutil.ToFloat64(m.entitiesCreated))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.entitiesDestroyed))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.liveEntities))
	// empty, {pos}, {pos, vel}
	assert.Equal(t, 3.0, testutil.ToFloat64(m.archetypes))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.migrations.WithLabelValues(migrationEmplace)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.migrations.WithLabelValues(migrationRemove)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.commandsExecuted))
	assert.Equal(t, 1, testutil.CollectAndCount(m.systemDuration))

	families, err := m.Registry().Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.recordEntityCreated()
		m.recordEntityDestroyed()
		m.recordArchetypeCreated()
		m.recordMigration(migrationEmplace)
		m.recordCommandExecuted()
		m.recordSystemUpdate("noop", 0)
	})
}

func TestScheduledSystemDurationCoversBody(t *testing.T) {
	m := NewMetrics("stockroom_sched")
	r := Factory.NewRegistry(WithMetrics(m))
	pool := job.NewPool(1)
	defer pool.Close()

	system := NewScheduledSystem(pool, func(Registry) error {
		time.Sleep(20 * time.Millisecond)
		return nil
	})
	require.NoError(t, r.AddSystem("slow", system))
	require.NoError(t, r.Update())
	require.NoError(t, system.Wait())

	families, err := m.Registry().Gather()
	require.NoError(t, err)
	found := false
	for _, family := range families {
		if family.GetName() != "stockroom_sched_system_update_duration_seconds" {
			continue
		}
		found = true
		require.Len(t, family.GetMetric(), 1)
		histogram := family.GetMetric()[0].GetHistogram()
		assert.Equal(t, uint64(1), histogram.GetSampleCount())
		assert.GreaterOrEqual(t, histogram.GetSampleSum(), 0.02)
	}
	assert.True(t, found)
}
