package metrics

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/carinfo/core/carinfo"
	"github.com/kilianp07/carinfo/core/cds"
	coremetrics "github.com/kilianp07/carinfo/core/metrics"
	"github.com/kilianp07/carinfo/infra/logger"
)

type memorySink struct {
	mu     sync.Mutex
	values map[string]float64
	labels map[string]string
}

func newMemorySink() *memorySink {
	return &memorySink{values: map[string]float64{}, labels: map[string]string{}}
}

func (m *memorySink) RecordValue(s coremetrics.Sample) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[s.Name] = s.Value
	return nil
}

func (m *memorySink) RecordLabel(l coremetrics.Label) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.labels[l.Name] = l.Value
	return nil
}

func (m *memorySink) value(name string) (float64, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[name]
	return v, ok
}

func (m *memorySink) label(name string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.labels[name]
}

func TestExporterForwardsUpdates(t *testing.T) {
	hub := cds.NewHub(nil, nil)
	m := carinfo.New(hub)
	sink := newMemorySink()
	ctx, cancel := context.WithCancel(context.Background())

	exp := NewExporter(sink, logger.NopLogger{})
	exp.Start(ctx, m, nil)

	hub.Publish(cds.VehicleUnits, cds.Payload{"units": map[string]any{"fuel": 1.0}})
	hub.Publish(cds.SensorsFuel, cds.Payload{"fuel": map[string]any{"tanklevel": 40.0}})
	hub.Publish(cds.NavigationCurrentPositionDetailedInfo, cds.Payload{
		"currentPositionDetailedInfo": map[string]any{"city": "Munich"},
	})

	require.Eventually(t, func() bool {
		v, ok := sink.value(carinfo.NameFuelLevel)
		return ok && v == 40
	}, time.Second, 5*time.Millisecond)
	require.Eventually(t, func() bool {
		return sink.label(carinfo.NameGPSCity) == "Munich"
	}, time.Second, 5*time.Millisecond)

	cancel()
	exp.Wait()
	assert.Empty(t, hub.Interested(), "subscriptions released on shutdown")
}

func TestExporterSelection(t *testing.T) {
	hub := cds.NewHub(nil, nil)
	m := carinfo.New(hub)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	exp := NewExporter(newMemorySink(), nil)
	exp.Start(ctx, m, []string{carinfo.NameEVLevel})
	require.Eventually(t, func() bool {
		return len(hub.Interested()) == 1
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, []cds.PropertyID{cds.SensorsSOCBatteryHybrid}, hub.Interested())
}
