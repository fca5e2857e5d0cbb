// Package cmd implements the fincalc CLI commands.
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"fincalc/config"
	"fincalc/observability"
	"fincalc/repository"
)

var (
	flagConfig  string
	flagStorage string
	flagJSON    bool
)

var rootCmd = &cobra.Command{
	Use:          "fincalc",
	Short:        "Loan, mortgage and savings calculator",
	Long:         "Calculate mortgages, car loans and amortization schedules, or serve the calculator over HTTP.",
	SilenceUsage: true,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "Config file (default "+config.Path()+")")
	rootCmd.PersistentFlags().StringVar(&flagStorage, "storage", "", "Storage driver: memory, sqlite or redis")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Print results as JSON")
}

func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagStorage != "" {
		cfg.Storage.Driver = flagStorage
	}
	return cfg, nil
}

// cliLogger logs warnings to stderr so they do not mix with results.
func cliLogger(cfg config.Config) *slog.Logger {
	level := cfg.Log.Level
	if level == "info" {
		level = "warn"
	}
	return observability.NewLogger(cfg.Server.Env, level)
}

type store interface {
	repository.KeyValueStore
	repository.CalculationRepository
}

type openedStore struct {
	store
	ping  func(context.Context) error
	close func() error
}

func (s *openedStore) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}

func openStore(sc config.StorageConfig) (*openedStore, error) {
	switch sc.Driver {
	case "memory":
		return &openedStore{store: repository.NewMemoryStore()}, nil
	case "sqlite":
		s, err := repository.OpenSQLite(sc.SQLitePath)
		if err != nil {
			return nil, err
		}
		return &openedStore{store: s, ping: s.Ping, close: s.Close}, nil
	case "redis":
		s := repository.NewRedisStore(sc.RedisAddr, sc.RedisPrefix)
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := s.Ping(ctx); err != nil {
			s.Close()
			return nil, fmt.Errorf("connecting to redis at %s: %w", sc.RedisAddr, err)
		}
		return &openedStore{store: s, ping: s.Ping, close: s.Close}, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", sc.Driver)
	}
}

// openLocalStore opens the store for one-shot commands. These keep state
// between runs, so the in-memory default is replaced by SQLite unless
// --storage was given.
func openLocalStore(cfg config.Config) (*openedStore, error) {
	sc := cfg.Storage
	if flagStorage == "" && sc.Driver == "memory" {
		sc.Driver = "sqlite"
	}
	return openStore(sc)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
