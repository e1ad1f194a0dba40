package metrics

import (
	"context"
	"sync"
	"time"

	"github.com/kilianp07/carinfo/core/carinfo"
	coremetrics "github.com/kilianp07/carinfo/core/metrics"
	"github.com/kilianp07/carinfo/core/stream"
	"github.com/kilianp07/carinfo/infra/logger"
)

// Exporter forwards metric updates to a sink.
type Exporter struct {
	sink coremetrics.Sink
	log  logger.Logger
	now  func() time.Time
	wg   sync.WaitGroup
}

// NewExporter creates an Exporter. A nil logger discards sink errors.
func NewExporter(sink coremetrics.Sink, log logger.Logger) *Exporter {
	if log == nil {
		log = logger.NopLogger{}
	}
	return &Exporter{sink: sink, log: log, now: time.Now}
}

// Start subscribes to the selected metrics of m, all of them when names is
// empty, and records every update until ctx is canceled. Subscriptions are
// released when ctx ends.
func (e *Exporter) Start(ctx context.Context, m *carinfo.Metrics, names []string) {
	keep := func(string) bool { return true }
	if len(names) > 0 {
		set := make(map[string]bool, len(names))
		for _, n := range names {
			set[n] = true
		}
		keep = func(n string) bool { return set[n] }
	}
	for name, s := range m.Gauges() {
		if keep(name) {
			startWatch(e, ctx, name, s, func(v float64) error {
				return e.sink.RecordValue(coremetrics.Sample{Name: name, Value: v, Time: e.now()})
			})
		}
	}
	rec, ok := e.sink.(coremetrics.LabelRecorder)
	if !ok {
		return
	}
	for name, s := range m.Labels() {
		if keep(name) {
			startWatch(e, ctx, name, s, func(v string) error {
				return rec.RecordLabel(coremetrics.Label{Name: name, Value: v, Time: e.now()})
			})
		}
	}
}

// Wait blocks until every watcher started by Start has stopped.
func (e *Exporter) Wait() { e.wg.Wait() }

func startWatch[T any](e *Exporter, ctx context.Context, name string, s stream.Stream[T], record func(T) error) {
	ch := stream.Watch(ctx, s)
	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		for v := range ch {
			if err := record(v); err != nil {
				e.log.Warnf("record %s: %v", name, err)
			}
		}
	}()
}
