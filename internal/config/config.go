// Package config defines akao's engine-level configuration, unmarshalled
// from YAML into nested structs per concern with a DefaultConfig
// constructor for zero-config operation.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// EvalConfig controls the evaluator's resource limits and optional
// features.
type EvalConfig struct {
	FixpointCap int    `yaml:"fixpoint_cap"`
	Deadline    string `yaml:"deadline"` // duration string, e.g. "5s"; empty means no deadline
	EnableCache bool   `yaml:"enable_cache"`
	EnableTrace bool   `yaml:"enable_trace"`
}

// RegistryConfig points at the function-registry-table document: a
// separate YAML file listing every built-in function's name, arity, and
// purity, cross-checked against the running Registry at load time.
type RegistryConfig struct {
	TablePath string `yaml:"table_path"`
}

// ScanConfig names root paths to scan. It is loaded and defaulted here;
// `akao validate` walks the directory given on its command line and
// does not read Roots.
type ScanConfig struct {
	Roots []string `yaml:"roots"`
}

// LoggingConfig records the logging verbosity. cmd/akao builds its
// zap.NewProductionConfig logger from the --verbose flag before this
// file is loaded, so a verbose setting here does not change the log
// level.
type LoggingConfig struct {
	Verbose bool `yaml:"verbose"`
}

// Config is akao's top-level configuration document.
type Config struct {
	Eval     EvalConfig     `yaml:"eval"`
	Registry RegistryConfig `yaml:"registry"`
	Scan     ScanConfig     `yaml:"scan"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// DefaultConfig returns akao's built-in defaults: a 1024-iteration
// fixpoint cap, no deadline, caching and
// tracing both off, and the current directory as the only scan root.
func DefaultConfig() *Config {
	return &Config{
		Eval: EvalConfig{
			FixpointCap: 1024,
			Deadline:    "",
			EnableCache: false,
			EnableTrace: false,
		},
		Registry: RegistryConfig{
			TablePath: "",
		},
		Scan: ScanConfig{
			Roots: []string{"."},
		},
		Logging: LoggingConfig{
			Verbose: false,
		},
	}
}

// Load reads path as YAML over DefaultConfig's values; a missing file
// yields the defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("config: failed to read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse %s: %w", path, err)
	}
	return cfg, nil
}

// GetDeadline parses Eval.Deadline as a time.Duration, or zero if unset or
// invalid. A zero duration means no deadline (see cmd/akao, which adds
// it to time.Now() only when non-zero).
func (c *Config) GetDeadline() time.Duration {
	if c.Eval.Deadline == "" {
		return 0
	}
	d, err := time.ParseDuration(c.Eval.Deadline)
	if err != nil {
		return 0
	}
	return d
}
