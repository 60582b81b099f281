// ABOUTME: Structured logger setup shared by commands and the pipeline
// ABOUTME: Wraps charmbracelet/log with level and formatter selection
package logging

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// Config selects the logger level and output format
type Config struct {
	Level  string // debug, info, warn, error
	Format string // "text" or "json"
	Output io.Writer
}

// DefaultConfig returns the default logger configuration
func DefaultConfig() Config {
	return Config{
		Level:  "info",
		Format: "text",
		Output: os.Stderr,
	}
}

// New creates a logger and installs it as the package default
func New(cfg Config) *log.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}

	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		level = log.InfoLevel
	}

	formatter := log.TextFormatter
	if cfg.Format == "json" {
		formatter = log.JSONFormatter
	}

	logger := log.NewWithOptions(out, log.Options{
		Level:           level,
		Formatter:       formatter,
		ReportTimestamp: true,
	})
	log.SetDefault(logger)

	return logger
}
