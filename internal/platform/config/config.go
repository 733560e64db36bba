package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds everything the client needs to talk to the coaching API and
// to keep its local state (token, logs, offline snapshot).
type Config struct {
	API      APIConfig    `yaml:"api"`
	Roster   RosterConfig `yaml:"roster"`
	StateDir string       `yaml:"state_dir"`
}

type APIConfig struct {
	BaseURL        string        `yaml:"base_url"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
}

type RosterConfig struct {
	// PerformanceWindowDays is the default lookback window for the
	// client performance view.
	PerformanceWindowDays int `yaml:"performance_window_days"`
	// PerformanceCacheTTL bounds how long a performance response may be
	// served from the in-memory cache.
	PerformanceCacheTTL time.Duration `yaml:"performance_cache_ttl"`
}

// Load reads the config file at path when it exists and fills in defaults
// for everything left unset. A missing file is not an error; the client
// works out of the box against a local backend.
func Load(path string) (Config, error) {
	cfg := Config{}
	if path != "" {
		b, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(b, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse config %s: %w", path, err)
			}
		case os.IsNotExist(err):
			// fall through to defaults
		default:
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}
	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = "http://localhost:5000/api"
	}
	if cfg.API.RequestTimeout <= 0 {
		cfg.API.RequestTimeout = 15 * time.Second
	}
	if cfg.Roster.PerformanceWindowDays <= 0 {
		cfg.Roster.PerformanceWindowDays = 30
	}
	if cfg.Roster.PerformanceCacheTTL <= 0 {
		cfg.Roster.PerformanceCacheTTL = time.Minute
	}
	if cfg.StateDir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return Config{}, fmt.Errorf("resolve state dir: %w", err)
		}
		cfg.StateDir = filepath.Join(base, "kqtrainer")
	}
	return cfg, nil
}

// DefaultPath returns the config file location used when --config is not set.
func DefaultPath() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(base, "kqtrainer", "config.yaml")
}

func (c Config) TokenPath() string {
	return filepath.Join(c.StateDir, "token")
}

func (c Config) SnapshotDBPath() string {
	return filepath.Join(c.StateDir, "roster.db")
}

func (c Config) LogPath() string {
	return filepath.Join(c.StateDir, "kqtrainer.log")
}
