package metrics

import (
	"errors"
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/kilianp07/carinfo/core/metrics"
)

// PromSink exposes vehicle metrics as Prometheus gauges. Textual metrics are
// exported as info gauges carrying the current text as a label.
type PromSink struct {
	values   *prometheus.GaugeVec
	info     *prometheus.GaugeVec
	updates  *prometheus.CounterVec
	messages *prometheus.CounterVec

	mu     sync.Mutex
	labels map[string]string
}

// NewPromSink registers the vehicle metrics on the default Prometheus registerer.
func NewPromSink(namespace string) (*PromSink, error) {
	return NewPromSinkWithRegistry(namespace, prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(namespace string, reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	values := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "vehicle_metric_value",
		Help:      "Latest value of a numeric vehicle metric",
	}, []string{"metric"})
	info := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "vehicle_metric_info",
		Help:      "Latest text of a vehicle metric, always 1",
	}, []string{"metric", "value"})
	updates := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "vehicle_metric_updates_total",
		Help:      "Number of updates per vehicle metric",
	}, []string{"metric"})
	messages := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "property_messages_total",
		Help:      "Raw property messages received, by decode result",
	}, []string{"property", "ok"})

	var err error
	if values, err = register(reg, values); err != nil {
		return nil, err
	}
	if info, err = register(reg, info); err != nil {
		return nil, err
	}
	if updates, err = register(reg, updates); err != nil {
		return nil, err
	}
	if messages, err = register(reg, messages); err != nil {
		return nil, err
	}
	return &PromSink{values: values, info: info, updates: updates, messages: messages, labels: make(map[string]string)}, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// RecordValue sets the gauge of the sample's metric.
func (s *PromSink) RecordValue(sample coremetrics.Sample) error {
	s.values.WithLabelValues(sample.Name).Set(sample.Value)
	s.updates.WithLabelValues(sample.Name).Inc()
	return nil
}

// RecordLabel replaces the info series of the label's metric.
func (s *PromSink) RecordLabel(l coremetrics.Label) error {
	s.mu.Lock()
	prev, had := s.labels[l.Name]
	s.labels[l.Name] = l.Value
	s.mu.Unlock()
	if had && prev != l.Value {
		s.info.DeleteLabelValues(l.Name, prev)
	}
	s.info.WithLabelValues(l.Name, l.Value).Set(1)
	s.updates.WithLabelValues(l.Name).Inc()
	return nil
}

// RecordMessage counts one raw property message.
func (s *PromSink) RecordMessage(property string, ok bool) error {
	s.messages.WithLabelValues(property, strconv.FormatBool(ok)).Inc()
	return nil
}
