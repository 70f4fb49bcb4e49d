// Command notesweep incrementally deletes one CRM user's deal notes
// through the rate-limited ActiveCampaign API. Each invocation runs a
// single batch and checkpoints progress, so a scheduler can call it
// repeatedly until the completion signal is emitted.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/gcs-ops/notesweep/internal/adapters/driven/activecampaign"
	"github.com/gcs-ops/notesweep/internal/adapters/driven/state/file"
	"github.com/gcs-ops/notesweep/internal/adapters/driven/state/sqlite"
	"github.com/gcs-ops/notesweep/internal/adapters/driving/cli"
	"github.com/gcs-ops/notesweep/internal/config"
	"github.com/gcs-ops/notesweep/internal/core/ports/driven"
	"github.com/gcs-ops/notesweep/internal/core/services"
	"github.com/gcs-ops/notesweep/internal/ratelimit"
)

// defaultConfigPath is consulted when NOTESWEEP_CONFIG is unset.
// A missing file is fine; the environment can carry everything.
const defaultConfigPath = "notesweep.toml"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Optional .env for local runs; schedulers set real env vars.
	_ = godotenv.Load()

	configPath := os.Getenv("NOTESWEEP_CONFIG")
	if configPath == "" {
		configPath = defaultConfigPath
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	gate := ratelimit.NewGate(cfg.RateLimit)
	client := activecampaign.NewClient(cfg.BaseURL, cfg.APIKey, gate)

	store, closeStore, err := buildProgressStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	runlog, err := file.NewRunLog(cfg.RunLogPath)
	if err != nil {
		return err
	}

	pool := services.NewDeletePool(client, cfg.Concurrency)
	purge := services.NewPurgeService(client, pool, store, runlog, services.PurgeConfig{
		TargetUserID:   cfg.TargetUserID,
		PageSize:       cfg.PageSize,
		MaxItemsPerRun: cfg.MaxItemsPerRun,
	})

	cli.SetServices(purge, store)
	return cli.Execute()
}

func buildProgressStore(cfg config.Config) (driven.ProgressStore, func(), error) {
	switch cfg.StateBackend {
	case "sqlite":
		store, err := sqlite.NewStore(cfg.StatePath)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite state %s: %w", cfg.StatePath, err)
		}
		return store, func() { _ = store.Close() }, nil
	case "file", "":
		store, err := file.NewProgressStore(cfg.StatePath)
		if err != nil {
			return nil, nil, fmt.Errorf("open state file %s: %w", cfg.StatePath, err)
		}
		return store, func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown state backend %q", cfg.StateBackend)
	}
}
