// Package config loads notesweep configuration from an optional TOML
// file with environment variable overrides. The environment names match
// the ones the deletion job has always been driven by, so a scheduler
// can configure a run without a config file at all.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/pelletier/go-toml/v2"
)

// Defaults.
const (
	DefaultRateLimit    = 10
	DefaultConcurrency  = 20
	DefaultPageSize     = 100
	DefaultStateBackend = "file"
	DefaultStatePath    = "progress_state.json"
	DefaultRunLogPath   = "deletion_log.txt"
)

// ErrMissingAPIKey indicates no API credential was configured.
var ErrMissingAPIKey = errors.New("config: API key not set (ACTIVECAMPAIGN_API_KEY)")

// ErrMissingBaseURL indicates no API base URL was configured.
var ErrMissingBaseURL = errors.New("config: base URL not set (BASE_URL)")

// ErrMissingTargetUser indicates no target user was configured.
var ErrMissingTargetUser = errors.New("config: target user not set (TARGET_USER_ID)")

// Config holds everything one run needs.
type Config struct {
	// BaseURL is the API root, e.g. "https://account.api-us1.com/api/3".
	BaseURL string `toml:"base_url"`

	// APIKey is the Api-Token credential. Environment only; never put
	// credentials in the config file.
	APIKey string `toml:"-"`

	// TargetUserID is the owner whose deal notes are being deleted.
	TargetUserID string `toml:"target_user_id"`

	// RateLimit is the global requests-per-second ceiling.
	RateLimit float64 `toml:"rate_limit"`

	// Concurrency is the deletion worker count.
	Concurrency int `toml:"concurrency"`

	// MaxItemsPerRun caps deletions per run; 0 = unlimited.
	MaxItemsPerRun int `toml:"max_items_per_run"`

	// PageSize is the listing page size.
	PageSize int `toml:"page_size"`

	// StateBackend selects the progress store: "file" or "sqlite".
	StateBackend string `toml:"state_backend"`

	// StatePath is the progress record location (JSON file path, or
	// SQLite database path for the sqlite backend).
	StatePath string `toml:"state_path"`

	// RunLogPath is the append-only per-run summary log.
	RunLogPath string `toml:"run_log_path"`
}

// Default returns a config populated with defaults only.
func Default() Config {
	return Config{
		RateLimit:    DefaultRateLimit,
		Concurrency:  DefaultConcurrency,
		PageSize:     DefaultPageSize,
		StateBackend: DefaultStateBackend,
		StatePath:    DefaultStatePath,
		RunLogPath:   DefaultRunLogPath,
	}
}

// Load builds the effective config: defaults, then the TOML file at
// path (skipped when path is empty or the file does not exist), then
// environment overrides. Validation is the caller's call via Validate.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// No config file is fine; env can carry everything.
		case err != nil:
			return cfg, fmt.Errorf("read config %s: %w", path, err)
		default:
			if err := toml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

// applyEnv overlays the environment variables the job is driven by.
func (c *Config) applyEnv() {
	if v := os.Getenv("ACTIVECAMPAIGN_API_KEY"); v != "" {
		c.APIKey = v
	}
	if v := os.Getenv("BASE_URL"); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv("TARGET_USER_ID"); v != "" {
		c.TargetUserID = v
	}
	if v := os.Getenv("RATE_LIMIT"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.RateLimit = f
		}
	}
	if v := os.Getenv("MAX_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Concurrency = n
		}
	}
	if v := os.Getenv("NOTES_PER_RUN"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.MaxItemsPerRun = n
		}
	}
	if v := os.Getenv("STATE_FILE"); v != "" {
		c.StatePath = v
	}
	if v := os.Getenv("LOG_FILE"); v != "" {
		c.RunLogPath = v
	}
}

// Validate checks that the run can actually talk to the API.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return ErrMissingAPIKey
	}
	if c.BaseURL == "" {
		return ErrMissingBaseURL
	}
	if c.TargetUserID == "" {
		return ErrMissingTargetUser
	}
	return nil
}
