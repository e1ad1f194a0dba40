package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/kilianp07/carinfo/core/carinfo"
	"github.com/kilianp07/carinfo/core/metrics"
	"github.com/kilianp07/carinfo/infra/mqtt"
)

type Config struct {
	MQTT      mqtt.Config     `json:"mqtt"`
	Metrics   metrics.Config  `json:"metrics"`
	Logging   LoggingConfig   `json:"logging"`
	Telemetry TelemetryConfig `json:"telemetry"`
}

// Load reads a yaml or json file and applies K_SECTION__KEY environment
// overrides, then fills defaults and validates every section.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	// Environment overrides. The provider nests keys on "__" itself.
	if err := k.Load(env.Provider("K_", "__", func(s string) string {
		return strings.TrimPrefix(strings.ToLower(s), "k_")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SetDefaults fills defaults in every section.
func (c *Config) SetDefaults() {
	c.MQTT.SetDefaults()
	c.Logging.SetDefaults()
	c.Telemetry.SetDefaults()
}

// Validate checks every section.
func (c Config) Validate() error {
	if err := c.MQTT.Validate(); err != nil {
		return err
	}
	if err := c.Logging.Validate(); err != nil {
		return err
	}
	if err := c.Telemetry.Validate(); err != nil {
		return err
	}
	for _, g := range []string{c.Metrics.Group, c.Telemetry.Group} {
		if g == "" {
			continue
		}
		if _, ok := carinfo.FindGroup(g); !ok {
			return fmt.Errorf("unknown metric group %q", g)
		}
	}
	return nil
}
