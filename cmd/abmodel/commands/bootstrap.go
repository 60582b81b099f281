// ABOUTME: Shared setup for commands that run the pipeline
// ABOUTME: Loads .env and config, builds the logger, collaborators, and ledger
package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/harper/abmodel/internal/config"
	"github.com/harper/abmodel/internal/core"
	"github.com/harper/abmodel/internal/logging"
	"github.com/harper/abmodel/internal/modeller"
	"github.com/harper/abmodel/internal/msa"
	"github.com/harper/abmodel/internal/storage"
)

// loadEnv reads .env from the working directory if present
func loadEnv() {
	_ = godotenv.Load()
}

// loadConfig loads the full configuration including template files
func loadConfig() (*config.Config, error) {
	loadEnv()
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

func newLogger(cmd *cobra.Command, cfg *config.Config) *log.Logger {
	logCfg := logging.DefaultConfig()
	logCfg.Output = cmd.ErrOrStderr()
	if cfg.LogLevel != "" {
		logCfg.Level = cfg.LogLevel
	}
	if cfg.LogFormat != "" {
		logCfg.Format = cfg.LogFormat
	}
	switch {
	case verbose:
		logCfg.Level = "debug"
	case quiet:
		logCfg.Level = "error"
	}
	return logging.New(logCfg)
}

// buildPipeline wires the exec collaborators to store
func buildPipeline(cfg *config.Config, logger *log.Logger, store core.ObjectStore) (*core.Pipeline, error) {
	msaClient, err := msa.NewClient(cfg.MSACommand, logger)
	if err != nil {
		return nil, err
	}
	modellerClient, err := modeller.NewClient(cfg.ModellerCommand, logger)
	if err != nil {
		return nil, err
	}

	pipeline := core.NewPipeline(msaClient, modellerClient, store, cfg.Templates, cfg.WorkDir)
	pipeline.SetLogger(logger)
	return pipeline, nil
}

// openLedger opens the configured ledger. A ledger that cannot be opened
// is replaced by one that records nothing so the run still proceeds.
func openLedger(cfg *config.Config, logger *log.Logger) storage.Ledger {
	ledger, err := storage.Open(cfg)
	if err != nil {
		logger.Warn("Run ledger unavailable, runs will not be recorded", "backend", cfg.Ledger, "err", err)
		return storage.Nop{}
	}
	return ledger
}

// runContext cancels on SIGINT/SIGTERM and after the configured run timeout
func runContext(cfg *config.Config) (context.Context, context.CancelFunc) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	if cfg.RunTimeout <= 0 {
		return ctx, stop
	}
	ctx, cancel := context.WithTimeout(ctx, cfg.RunTimeout)
	return ctx, func() {
		cancel()
		stop()
	}
}

// wantJSON reports whether structured output was requested
func wantJSON() bool {
	return outputFormat == "json"
}
