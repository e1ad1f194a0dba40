package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/kilianp07/carinfo/core/factory"
	coremetrics "github.com/kilianp07/carinfo/core/metrics"
	"github.com/kilianp07/carinfo/infra/logger"
)

// init registers built-in metrics sinks.
func init() {
	_ = coremetrics.RegisterSink("nop", func(map[string]any) (coremetrics.Sink, error) {
		return coremetrics.NopSink{}, nil
	})

	_ = coremetrics.RegisterSink("prometheus", func(conf map[string]any) (coremetrics.Sink, error) {
		var c struct {
			Namespace string `json:"namespace"`
		}
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		if c.Namespace == "" {
			c.Namespace = "carinfo"
		}
		// The HTTP endpoint is started separately from Config.PrometheusPort.
		return NewPromSinkWithRegistry(c.Namespace, prometheus.DefaultRegisterer)
	})

	_ = coremetrics.RegisterSink("log", func(conf map[string]any) (coremetrics.Sink, error) {
		var c struct {
			Component string `json:"component"`
		}
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		if c.Component == "" {
			c.Component = "metrics"
		}
		return NewLogSink(logger.New(c.Component)), nil
	})
}
