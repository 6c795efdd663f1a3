package config

import (
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/livp123/loglens/internal/classify"
	"github.com/livp123/loglens/internal/tailer"
	"github.com/livp123/loglens/internal/utils/logger"
)

// DefaultConfigPath is used when no --config flag is given.
const DefaultConfigPath = "/etc/loglens/config.yaml"

// Config is the full loglens configuration.
type Config struct {
	// Colors are the per-level render colors, consumed only by output
	// rendering, never by matching.
	Colors classify.Colors `yaml:"colors"`
	// AutoTail starts tail sessions for Tail.Files on watch startup.
	AutoTail bool `yaml:"auto_tail"`
	// Tail configures the tail engine.
	Tail TailConfig `yaml:"tail"`
	// Filter is an optional expression applied to classified lines.
	Filter string `yaml:"filter"`
	// Logging configures the process's own log output.
	Logging logger.Config `yaml:"logging"`
	// Metrics configures the Prometheus endpoint.
	Metrics MetricsConfig `yaml:"metrics"`
}

// TailConfig configures the tail engine.
type TailConfig struct {
	// Files are tailed automatically when AutoTail is set.
	Files []string `yaml:"files"`
	// Position is the start position for new sessions: start, end or resume.
	Position string `yaml:"position"`
	// Checkpoint configures offset persistence for resume mode.
	Checkpoint CheckpointConfig `yaml:"checkpoint"`
}

// CheckpointConfig configures offset persistence.
type CheckpointConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
	// Interval between periodic saves, as a duration string.
	Interval string `yaml:"interval"`
}

// MetricsConfig configures the Prometheus /metrics endpoint.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Listen  string `yaml:"listen"`
}

// Default returns the documented default configuration.
func Default() *Config {
	return &Config{
		Colors:   classify.DefaultColors(),
		AutoTail: false,
		Tail: TailConfig{
			Position: tailer.PositionEnd,
			Checkpoint: CheckpointConfig{
				Enabled:  false,
				Path:     "/var/lib/loglens/offsets.json",
				Interval: "2s",
			},
		},
		Logging: logger.Config{
			Enabled: false,
			Level:   "info",
		},
		Metrics: MetricsConfig{
			Enabled: false,
			Listen:  ":9321",
		},
	}
}

// Load reads the configuration from path. A missing file yields the defaults.
// Individual malformed values are replaced with their defaults and logged at
// warn; loading never fails on bad values, only on unreadable or unparsable
// files.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	return cfg, nil
}

// applyDefaults substitutes documented defaults for malformed values.
// Color validation happens in classify.NewRuleSet, which applies the same
// recovery.
func (c *Config) applyDefaults() {
	log := logger.Get(nil)
	defaults := Default()

	if _, err := tailer.ParsePosition(c.Tail.Position); err != nil {
		log.Warnf("invalid tail position %q, using %q", c.Tail.Position, defaults.Tail.Position)
		c.Tail.Position = defaults.Tail.Position
	}
	if c.Tail.Checkpoint.Path == "" {
		c.Tail.Checkpoint.Path = defaults.Tail.Checkpoint.Path
	}
	if _, err := time.ParseDuration(c.Tail.Checkpoint.Interval); err != nil {
		if c.Tail.Checkpoint.Interval != "" {
			log.Warnf("invalid checkpoint interval %q, using %q", c.Tail.Checkpoint.Interval, defaults.Tail.Checkpoint.Interval)
		}
		c.Tail.Checkpoint.Interval = defaults.Tail.Checkpoint.Interval
	}
	if c.Metrics.Listen == "" {
		c.Metrics.Listen = defaults.Metrics.Listen
	}
	if c.Logging.Level == "" {
		c.Logging.Level = defaults.Logging.Level
	}
}

// CheckpointInterval returns the parsed checkpoint save interval.
func (c *Config) CheckpointInterval() time.Duration {
	d, err := time.ParseDuration(c.Tail.Checkpoint.Interval)
	if err != nil {
		return 2 * time.Second
	}
	return d
}

// Save writes the configuration to path as YAML.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Clean(path), data, 0644)
}
