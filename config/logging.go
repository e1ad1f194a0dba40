package config

import (
	"fmt"

	"github.com/rs/zerolog"
)

// LoggingConfig defines the log output.
type LoggingConfig struct {
	// Level is a zerolog level name.
	Level string `json:"level"`
	// Console switches to human readable output.
	Console bool `json:"console"`
}

// SetDefaults applies sane defaults.
func (c *LoggingConfig) SetDefaults() {
	if c.Level == "" {
		c.Level = "info"
	}
}

// Validate checks the level name.
func (c LoggingConfig) Validate() error {
	if _, err := zerolog.ParseLevel(c.Level); err != nil {
		return fmt.Errorf("logging: unknown level %q", c.Level)
	}
	return nil
}
