package metrics

import "github.com/kilianp07/carinfo/core/factory"

// Config defines settings for metrics sinks.
type Config struct {
	Sinks []factory.ModuleConfig `json:"sinks"`
	// Group restricts the export to one metric group. Empty exports all.
	Group string `json:"group"`
	// PrometheusPort serves /metrics when set.
	PrometheusPort string `json:"prometheus_port"`
}
