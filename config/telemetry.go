package config

import (
	"fmt"
	"time"
)

// TelemetryConfig holds configuration for the snapshot publisher.
type TelemetryConfig struct {
	Enabled         bool   `json:"enabled"`
	IntervalSeconds int    `json:"interval_seconds"`
	Topic           string `json:"topic"`
	// Group restricts the snapshot to one metric group. Empty publishes all.
	Group  string `json:"group"`
	QoS    byte   `json:"qos"`
	Retain bool   `json:"retain"`
}

// SetDefaults applies sane defaults.
func (c *TelemetryConfig) SetDefaults() {
	if c.Topic == "" {
		c.Topic = "carinfo/snapshot"
	}
}

// Validate checks the publisher settings.
func (c TelemetryConfig) Validate() error {
	if c.QoS > 2 {
		return fmt.Errorf("telemetry: qos must be 0, 1 or 2")
	}
	if c.IntervalSeconds < 0 {
		return fmt.Errorf("telemetry: negative interval")
	}
	return nil
}

// Interval returns the publish period, 10s by default.
func (c TelemetryConfig) Interval() time.Duration {
	if c.IntervalSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.IntervalSeconds) * time.Second
}
