package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/jonathan/jobready/internal/config"
	"github.com/jonathan/jobready/internal/logger"
	"github.com/jonathan/jobready/internal/observability"
	"github.com/jonathan/jobready/internal/store"
	"github.com/jonathan/jobready/internal/workflow"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	app = "jobready"
)

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:           app,
		Short:         "jobready tracks the path from a job analysis to application readiness",
		Long:          "jobready scores a candidate profile against job requirements, plans the learning that closes the gaps, tracks two-week sprints and evaluates the readiness gates.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is jobready.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	rootCmd.PersistentFlags().String("data-dir", config.DefaultDataDir, "directory holding the workflow documents")
	rootCmd.PersistentFlags().String("backend", config.DefaultBackend, "storage backend: file, sqlite or postgres")

	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	_ = viper.BindPFlag("data-dir", rootCmd.PersistentFlags().Lookup("data-dir"))
	_ = viper.BindPFlag("storage.backend", rootCmd.PersistentFlags().Lookup("backend"))
}

// session holds everything a command needs to act on the workflow.
type session struct {
	cfg     *config.Config
	log     *zap.Logger
	backend store.Backend
	engine  *workflow.Engine
	printer *observability.Printer
}

// openSession loads the configuration, opens the storage backend and loads
// the engine. Callers must Close the session.
func openSession(cmd *cobra.Command) (*session, error) {
	cfg, backend, err := openStore(cmd)
	if err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.JSON, cfg.Debug)
	if err != nil {
		_ = backend.Close()
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	ctx := commandContext(cmd)

	opts := []workflow.Option{
		workflow.WithLogger(log),
		workflow.WithTargetScore(cfg.Workflow.TargetScore),
	}
	if weights := cfg.CategoryWeights(); weights != nil {
		opts = append(opts, workflow.WithWeights(weights))
	}
	if len(cfg.Scoring.Keywords) > 0 {
		opts = append(opts, workflow.WithKeywords(cfg.Scoring.Keywords))
	}

	engine, err := workflow.NewEngine(ctx, backend, opts...)
	if err != nil {
		_ = backend.Close()
		return nil, err
	}

	log.Debug("session opened",
		zap.String("backend", cfg.Storage.Backend),
		zap.String("data_dir", cfg.DataDir))

	return &session{
		cfg:     cfg,
		log:     log,
		backend: backend,
		engine:  engine,
		printer: observability.NewPrinter(cmd.OutOrStdout()),
	}, nil
}

// openStore loads the configuration and opens the storage backend without
// loading any document.
func openStore(cmd *cobra.Command) (*config.Config, store.Backend, error) {
	cfg, err := config.LoadConfig(viper.GetViper(), cfgFile)
	if err != nil {
		return nil, nil, err
	}
	backend, err := store.Open(commandContext(cmd), cfg.StoreOptions())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open %s store: %w", cfg.Storage.Backend, err)
	}
	return cfg, backend, nil
}

func (s *session) Close() {
	if err := s.backend.Close(); err != nil {
		s.log.Warn("failed to close store", zap.Error(err))
	}
	_ = s.log.Sync()
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// readJSONFile decodes the JSON file at path into v.
func readJSONFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

// writeJSON prints v as indented JSON.
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
