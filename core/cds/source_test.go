package cds

import (
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingWatcher struct {
	mu      sync.Mutex
	watched map[PropertyID]int
	calls   []string
}

func newRecordingWatcher() *recordingWatcher {
	return &recordingWatcher{watched: map[PropertyID]int{}}
}

func (w *recordingWatcher) Watch(id PropertyID) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.watched[id]++
	w.calls = append(w.calls, "watch "+string(id))
}

func (w *recordingWatcher) Unwatch(id PropertyID) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.watched[id]--
	w.calls = append(w.calls, "unwatch "+string(id))
}

func TestHubRefCountsAcrossVariants(t *testing.T) {
	w := newRecordingWatcher()
	hub := NewHub(w, nil)

	c1 := hub.Live(SensorsFuel).Subscribe(func(Payload) {})
	c2 := hub.Cached(SensorsFuel).Subscribe(func(Payload) {})
	c3 := hub.Cached(SensorsFuel).Subscribe(func(Payload) {})
	assert.Equal(t, []string{"watch sensors.fuel"}, w.calls)
	assert.Equal(t, []PropertyID{SensorsFuel}, hub.Interested())

	c1()
	c2()
	assert.Len(t, w.calls, 1, "still held by one consumer")
	c3()
	assert.Equal(t, []string{"watch sensors.fuel", "unwatch sensors.fuel"}, w.calls)
	assert.Empty(t, hub.Interested())
}

func TestHubCachedReplaysLastPayload(t *testing.T) {
	hub := NewHub(nil, nil)
	hub.Publish(VehicleUnits, Payload{"units": map[string]any{"fuel": 2.0}})

	var live, cached []Payload
	defer hub.Live(VehicleUnits).Subscribe(func(p Payload) { live = append(live, p) })()
	defer hub.Cached(VehicleUnits).Subscribe(func(p Payload) { cached = append(cached, p) })()
	assert.Empty(t, live)
	require.Len(t, cached, 1)

	hub.Publish(VehicleUnits, Payload{})
	assert.Len(t, live, 1)
	assert.Len(t, cached, 2)
}

func TestHubPublishJSON(t *testing.T) {
	hub := NewHub(nil, nil)
	var got []Payload
	defer hub.Live(DrivingGear).Subscribe(func(p Payload) { got = append(got, p) })()

	require.NoError(t, hub.PublishJSON(DrivingGear, []byte(`{"gear":5}`)))
	assert.Error(t, hub.PublishJSON(DrivingGear, []byte(`{"gear":`)))
	assert.Len(t, got, 1)

	hub.Close()
	assert.ErrorIs(t, hub.PublishJSON(DrivingGear, []byte(`{"gear":6}`)), ErrHubClosed)
	hub.Publish(DrivingGear, Payload{"gear": 7.0})
	assert.Len(t, got, 1)
}

func TestHubSetWatcherAnnouncesActiveProperties(t *testing.T) {
	hub := NewHub(nil, nil)
	defer hub.Cached(SensorsFuel).Subscribe(func(Payload) {})()
	defer hub.Live(DrivingGear).Subscribe(func(Payload) {})()

	w := newRecordingWatcher()
	hub.SetWatcher(w)
	sort.Strings(w.calls)
	assert.Equal(t, []string{"watch driving.gear", "watch sensors.fuel"}, w.calls)
}
