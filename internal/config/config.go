// ABOUTME: Centralized configuration for the antibody modeling pipeline
// ABOUTME: Loads from environment variables and a YAML template file with validation and defaults
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/harper/abmodel/internal/models"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the pipeline
type Config struct {
	// Template structures, one per supported species
	TemplatesFile string
	Templates     map[models.Species]string

	// Working area and collaborators
	WorkDir         string
	MSACommand      string
	ModellerCommand string
	RunTimeout      time.Duration

	// Object storage settings
	ObjectStore    string
	S3Endpoint     string
	S3Region       string
	S3UseSSL       bool
	S3AccessKey    string
	S3SecretKey    string
	S3SessionToken string
	LocalStoreRoot string

	// Run ledger settings
	Ledger        string
	LedgerPath    string
	CharmHost     string
	CharmDBName   string
	CharmAutoSync bool
	HistoryLimit  int

	// Logging
	LogLevel  string
	LogFormat string
}

// templatesFile mirrors the YAML layout of config.yaml
type templatesFile struct {
	Models struct {
		HumanModel string `yaml:"human_model"`
		MouseModel string `yaml:"mouse_model"`
	} `yaml:"Models"`
}

// Load reads configuration from environment variables and the templates YAML file
func Load() (*Config, error) {
	cfg := FromEnv()

	templates, err := LoadTemplates(cfg.TemplatesFile)
	if err != nil {
		return nil, err
	}
	cfg.Templates = templates

	return cfg, cfg.Validate()
}

// FromEnv reads the environment-only part of the configuration
func FromEnv() *Config {
	return &Config{
		TemplatesFile:   getEnv("ABMODEL_CONFIG", "config.yaml"),
		WorkDir:         getEnv("ABMODEL_WORK_DIR", os.TempDir()),
		MSACommand:      getEnv("ABMODEL_MSA_COMMAND", "abmodel-msa"),
		ModellerCommand: getEnv("ABMODEL_MODELLER_COMMAND", "abmodel-automodel"),
		RunTimeout:      getEnvDuration("ABMODEL_RUN_TIMEOUT", 0),
		ObjectStore:     getEnv("OBJECT_STORE", "s3"),
		S3Endpoint:      getEnv("S3_ENDPOINT", "s3.amazonaws.com"),
		S3Region:        os.Getenv("S3_REGION"),
		S3UseSSL:        getEnvBool("S3_USE_SSL", true),
		S3AccessKey:     os.Getenv("AWS_ACCESS_KEY_ID"),
		S3SecretKey:     os.Getenv("AWS_SECRET_ACCESS_KEY"),
		S3SessionToken:  os.Getenv("AWS_SESSION_TOKEN"),
		LocalStoreRoot:  getEnv("LOCAL_STORE_ROOT", "."),
		Ledger:          getEnv("LEDGER", "sqlite"),
		LedgerPath:      getEnv("LEDGER_PATH", filepath.Join(DefaultDataDir(), "runs.db")),
		CharmHost:       getEnv("CHARM_HOST", "cloud.charm.sh"),
		CharmDBName:     getEnv("CHARM_DB", "abmodel"),
		CharmAutoSync:   getEnvBool("CHARM_AUTO_SYNC", true),
		HistoryLimit:    getEnvInt("HISTORY_LIMIT", 20),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogFormat:       getEnv("LOG_FORMAT", "text"),
	}
}

// LoadTemplates parses the templates YAML file. Relative template paths are
// resolved against the directory holding the file; returned paths are absolute.
func LoadTemplates(path string) (map[models.Species]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	var tf templatesFile
	if err := yaml.Unmarshal(data, &tf); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	baseDir, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("resolving config directory for %s: %w", path, err)
	}
	resolve := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(baseDir, p)
	}

	return map[models.Species]string{
		models.SpeciesHuman: resolve(tf.Models.HumanModel),
		models.SpeciesMouse: resolve(tf.Models.MouseModel),
	}, nil
}

// Validate checks that the configuration is complete and consistent
func (c *Config) Validate() error {
	for _, s := range models.SupportedSpecies {
		if _, err := c.TemplatePath(s); err != nil {
			return fmt.Errorf("Models.%s_model must be set in %s: %w", s, c.TemplatesFile, err)
		}
	}
	if c.RunTimeout < 0 {
		return fmt.Errorf("ABMODEL_RUN_TIMEOUT must not be negative, got %v", c.RunTimeout)
	}
	if c.HistoryLimit <= 0 {
		return fmt.Errorf("HISTORY_LIMIT must be positive, got %d", c.HistoryLimit)
	}
	switch c.ObjectStore {
	case "s3", "local":
	default:
		return fmt.Errorf("OBJECT_STORE must be s3 or local, got %q", c.ObjectStore)
	}
	switch c.Ledger {
	case "sqlite", "charm", "none":
	default:
		return fmt.Errorf("LEDGER must be sqlite, charm or none, got %q", c.Ledger)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("LOG_FORMAT must be text or json, got %q", c.LogFormat)
	}
	return nil
}

// TemplatePath returns the template structure file for a species
func (c *Config) TemplatePath(species models.Species) (string, error) {
	p, ok := c.Templates[species]
	if !ok || p == "" {
		return "", fmt.Errorf("no template configured for species %q", species)
	}
	return p, nil
}

// DefaultDataDir returns the default data directory following the XDG spec
func DefaultDataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return ".local/share/abmodel"
		}
		dataHome = filepath.Join(homeDir, ".local", "share")
	}
	return filepath.Join(dataHome, "abmodel")
}

// Helper functions
func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	return v == "true" || v == "1"
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}
