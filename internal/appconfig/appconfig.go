// Package appconfig loads queuectl's own runtime configuration — data
// directory, poll intervals, log level — layering environment overrides on
// top of an optional YAML file on top of built-in defaults.
package appconfig

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is queuectl's ambient application configuration, as distinct from
// the store's own job-policy config table (max_retries, backoff_base).
type Config struct {
	// DataDir holds queue.db, the liveness file and the logs/ directory.
	DataDir string `yaml:"data_dir"`

	// PollInterval is how long an idle worker sleeps between empty leases.
	PollInterval   time.Duration `yaml:"-"`
	PollIntervalMS int64         `yaml:"poll_interval_ms"`

	// LockTimeout bounds how long Lease retries under write contention.
	LockTimeout   time.Duration `yaml:"-"`
	LockTimeoutMS int64         `yaml:"lock_timeout_ms"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
}

// StoreDBPath returns the path to the job store database file.
func (c *Config) StoreDBPath() string {
	return filepath.Join(c.DataDir, "queue.db")
}

// LogDir returns the directory job output is captured to.
func (c *Config) LogDir() string {
	return filepath.Join(c.DataDir, "logs")
}

// LivenessPath returns the path to the worker-fleet liveness file.
func (c *Config) LivenessPath() string {
	return filepath.Join(c.DataDir, ".queuectl.pids")
}

func defaults() *Config {
	return &Config{
		DataDir:        ".",
		PollIntervalMS: 500,
		LockTimeoutMS:  10_000,
		LogLevel:       "info",
	}
}

// Load reads configPath (if present, YAML) over the defaults, then applies
// QUEUECTL_-prefixed environment overrides, matching precedence
// env > file > defaults.
func Load(configPath string) (*Config, error) {
	cfg := defaults()

	if configPath != "" {
		if data, err := os.ReadFile(configPath); err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, err
			}
		} else if !os.IsNotExist(err) {
			return nil, err
		}
	}

	if v := os.Getenv("QUEUECTL_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("QUEUECTL_POLL_INTERVAL_MS"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.PollIntervalMS = n
		}
	}
	if v := os.Getenv("QUEUECTL_LOCK_TIMEOUT_MS"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.LockTimeoutMS = n
		}
	}
	if v := os.Getenv("QUEUECTL_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}

	cfg.PollInterval = time.Duration(cfg.PollIntervalMS) * time.Millisecond
	cfg.LockTimeout = time.Duration(cfg.LockTimeoutMS) * time.Millisecond
	return cfg, nil
}
