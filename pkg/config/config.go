package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/goccy/go-yaml"
)

// Config is the main configuration struct for the client.
type Config struct {
	Backend BackendConfig `yaml:"backend"`
	Storage StorageConfig `yaml:"storage"`
	Logging LoggingConfig `yaml:"logging"`
	Watch   WatchConfig   `yaml:"watch"`
}

// BackendConfig holds connection settings for the forum API.
type BackendConfig struct {
	BaseURL   string          `yaml:"base_url"`
	Transport string          `yaml:"transport"` // nethttp|fasthttp
	Timeout   Duration        `yaml:"timeout"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// RateLimitConfig caps outgoing request rate. Zero values disable limiting.
type RateLimitConfig struct {
	RPS   float64 `yaml:"rps"`
	Burst int     `yaml:"burst"`
}

// StorageConfig holds local durable-state settings.
type StorageConfig struct {
	DataDir string `yaml:"data_dir"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// WatchConfig holds defaults for the watch command.
type WatchConfig struct {
	Cron        string `yaml:"cron"`
	MetricsAddr string `yaml:"metrics_addr"`
}

// Default returns the built-in configuration used when no file exists.
func Default() *Config {
	cfg := &Config{}
	cfg.Backend.BaseURL = "http://localhost:8080"
	cfg.Backend.Transport = "nethttp"
	cfg.Backend.Timeout = Duration(10 * time.Second)
	cfg.Storage.DataDir = defaultDataDir()
	cfg.Logging.Level = "info"
	cfg.Watch.Cron = "* * * * *"
	return cfg
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".forumcli"
	}
	return filepath.Join(home, ".forumcli")
}

// DefaultPath returns the config file path used when --config is not given.
func DefaultPath() string {
	return filepath.Join(defaultDataDir(), "config.yaml")
}

// Load reads the config file at path (when it exists), applies env var
// overrides, and fills remaining fields from defaults. A missing file is
// not an error; a malformed file is.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		path = DefaultPath()
	}
	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	applyEnv(cfg)
	if cfg.Backend.Timeout <= 0 {
		cfg.Backend.Timeout = Duration(10 * time.Second)
	}
	if cfg.Storage.DataDir == "" {
		cfg.Storage.DataDir = defaultDataDir()
	}
	return cfg, nil
}

// applyEnv overlays FORUMCLI_* environment variables on cfg. Env wins over
// file; flags handled by the CLI layer win over env.
func applyEnv(cfg *Config) {
	if v := os.Getenv("FORUMCLI_BASE_URL"); v != "" {
		cfg.Backend.BaseURL = v
	}
	if v := os.Getenv("FORUMCLI_TRANSPORT"); v != "" {
		cfg.Backend.Transport = v
	}
	if v := os.Getenv("FORUMCLI_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Backend.Timeout = Duration(d)
		}
	}
	if v := os.Getenv("FORUMCLI_RATE_RPS"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Backend.RateLimit.RPS = f
		}
	}
	if v := os.Getenv("FORUMCLI_RATE_BURST"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Backend.RateLimit.Burst = n
		}
	}
	if v := os.Getenv("FORUMCLI_DATA_DIR"); v != "" {
		cfg.Storage.DataDir = v
	}
	if v := os.Getenv("FORUMCLI_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("FORUMCLI_WATCH_CRON"); v != "" {
		cfg.Watch.Cron = v
	}
}

// Save writes cfg to path, creating parent directories as needed.
func Save(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
