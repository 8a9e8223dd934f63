// Package config provides configuration loading and validation for the CLI.
package config

import (
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/jonathan/jobready/internal/store"
	"github.com/jonathan/jobready/internal/types"
	"github.com/spf13/viper"
)

const (
	// EnvPrefix prefixes every environment override, e.g. JOBREADY_DATA_DIR.
	EnvPrefix = "JOBREADY"
	// FileName is the config file searched for in the current directory.
	FileName = "jobready"

	DefaultDataDir     = "./data"
	DefaultBackend     = store.BackendFile
	DefaultTargetScore = 90.0

	weightSumTolerance = 1e-6
)

// Config is the CLI configuration. Values come from defaults, then the
// config file, then JOBREADY_* environment variables, then flags bound
// to the same viper instance.
type Config struct {
	DataDir  string         `mapstructure:"data-dir"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Scoring  ScoringConfig  `mapstructure:"scoring"`
	Workflow WorkflowConfig `mapstructure:"workflow"`
	Debug    bool           `mapstructure:"debug"`
	JSON     bool           `mapstructure:"json"`
}

// StorageConfig selects the persistence backend.
type StorageConfig struct {
	Backend     string `mapstructure:"backend"`
	SQLitePath  string `mapstructure:"sqlite-path"`
	DatabaseURL string `mapstructure:"database-url"`
}

// ScoringConfig overrides the match score weights and the curated keyword
// list. Empty values keep the defaults.
type ScoringConfig struct {
	Weights  map[string]float64 `mapstructure:"weights"`
	Keywords []string           `mapstructure:"keywords"`
}

// WorkflowConfig holds workflow settings.
type WorkflowConfig struct {
	TargetScore float64 `mapstructure:"target-score"`
}

// SetDefaults registers defaults and environment binding on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("data-dir", DefaultDataDir)
	v.SetDefault("storage.backend", DefaultBackend)
	v.SetDefault("storage.sqlite-path", "")
	v.SetDefault("storage.database-url", "")
	v.SetDefault("scoring.keywords", []string{})
	v.SetDefault("workflow.target-score", DefaultTargetScore)
	v.SetDefault("debug", false)
	v.SetDefault("json", false)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
}

// LoadConfig reads the config file into v and decodes the result.
// With an empty path, jobready.yaml in the current directory is used when
// present; an explicit path must exist.
func LoadConfig(v *viper.Viper, path string) (*Config, error) {
	SetDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName(FileName)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.Storage.SQLitePath == "" {
		cfg.Storage.SQLitePath = filepath.Join(cfg.DataDir, "jobready.db")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("config error: 'data-dir' must not be empty")
	}

	switch c.Storage.Backend {
	case store.BackendFile, store.BackendSQLite, store.BackendMemory:
	case store.BackendPostgres:
		if c.Storage.DatabaseURL == "" {
			return fmt.Errorf("config error: 'storage.database-url' is required for the postgres backend")
		}
	default:
		return fmt.Errorf("config error: unknown storage backend %q", c.Storage.Backend)
	}

	if c.Workflow.TargetScore <= 0 || c.Workflow.TargetScore > 100 {
		return fmt.Errorf("config error: 'workflow.target-score' must be in (0, 100], got %g", c.Workflow.TargetScore)
	}

	for i, k := range c.Scoring.Keywords {
		if strings.TrimSpace(k) == "" {
			return fmt.Errorf("config error: 'scoring.keywords' entry %d is empty", i)
		}
	}

	return validateWeights(c.Scoring.Weights)
}

func validateWeights(weights map[string]float64) error {
	if len(weights) == 0 {
		return nil
	}
	if len(weights) != len(types.Categories) {
		return fmt.Errorf("config error: 'scoring.weights' must name exactly %d categories, got %d", len(types.Categories), len(weights))
	}

	sum := 0.0
	for _, cat := range types.Categories {
		w, ok := weights[string(cat)]
		if !ok {
			return fmt.Errorf("config error: 'scoring.weights' is missing category %q", cat)
		}
		if w < 0 {
			return fmt.Errorf("config error: weight for %q must be non-negative", cat)
		}
		sum += w
	}
	if math.Abs(sum-1.0) > weightSumTolerance {
		return fmt.Errorf("config error: 'scoring.weights' must sum to 1.0, got %g", sum)
	}
	return nil
}

// StoreOptions converts the storage section for store.Open.
func (c *Config) StoreOptions() store.Options {
	return store.Options{
		Backend:     c.Storage.Backend,
		DataDir:     c.DataDir,
		SQLitePath:  c.Storage.SQLitePath,
		DatabaseURL: c.Storage.DatabaseURL,
	}
}

// CategoryWeights returns the configured weights keyed by category, or nil
// when the defaults apply.
func (c *Config) CategoryWeights() map[types.Category]float64 {
	if len(c.Scoring.Weights) == 0 {
		return nil
	}
	out := make(map[types.Category]float64, len(c.Scoring.Weights))
	for k, w := range c.Scoring.Weights {
		out[types.Category(k)] = w
	}
	return out
}
