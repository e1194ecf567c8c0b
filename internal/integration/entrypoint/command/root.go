// Package command implements the command-line entrypoint for operators.
package command

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/accounting-office/backend/config"
	"github.com/accounting-office/backend/internal/infra/cache"
	"github.com/accounting-office/backend/internal/infra/db"
	"github.com/accounting-office/backend/internal/infra/dependency"
)

// ErrInconsistent is returned when a validation run finds at least one
// inconsistency.
var ErrInconsistent = errors.New("parametrization is inconsistent")

// ErrConfigurationWarnings is returned when every check passes but the run
// reported configuration gaps such as links to unknown chart nodes.
var ErrConfigurationWarnings = errors.New("parametrization has configuration warnings")

type rootOptions struct {
	envFile string
	verbose bool
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "parametrization",
		Short: "Check chart-of-accounts parametrization against trial balances",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if opts.envFile != "" {
				if err := godotenv.Load(opts.envFile); err != nil {
					return fmt.Errorf("loading env file: %w", err)
				}
			} else {
				_ = godotenv.Load()
			}
			setupLogger(cmd.ErrOrStderr(), opts.verbose)
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.envFile, "env-file", "", "load environment variables from this file instead of .env")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log progress to stderr")

	rootCmd.AddCommand(newRunCommand())
	rootCmd.AddCommand(newStatementCommand())
	rootCmd.AddCommand(newChartCommand())
	rootCmd.AddCommand(newTokenCommand())

	return rootCmd
}

func setupLogger(w io.Writer, verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}

// session is an open database (and optional Redis) connection with the
// use cases wired on top.
type session struct {
	*dependency.Injector
	database    *db.Database
	redisClient *redis.Client
}

func openSession() (*session, error) {
	cfg := config.Load()

	database, err := db.NewConnection(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	if err := database.Migrate(); err != nil {
		_ = database.Close()
		return nil, err
	}

	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient, err = cache.NewRedisClient(&cfg.Redis)
		if err != nil {
			slog.Warn("Redis unavailable, running without result cache", "error", err)
			redisClient = nil
		}
	}

	injector, err := dependency.NewInjector(cfg, database.DB(), redisClient)
	if err != nil {
		if redisClient != nil {
			_ = redisClient.Close()
		}
		_ = database.Close()
		return nil, err
	}

	return &session{
		Injector:    injector,
		database:    database,
		redisClient: redisClient,
	}, nil
}

func (s *session) Close() {
	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			slog.Warn("Failed to close redis client", "error", err)
		}
	}
	if err := s.database.Close(); err != nil {
		slog.Warn("Failed to close database connection", "error", err)
	}
}
