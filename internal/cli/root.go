// Package cli holds the cinedex cobra commands.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"cinedex/internal/config"
	"cinedex/internal/database"
	"cinedex/internal/observability"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

// Version is stamped at build time with -ldflags "-X cinedex/internal/cli.Version=...".
var Version = "dev"

// app is the state shared by every subcommand once the root pre-run has loaded config.
type app struct {
	cfg             *config.Config
	shutdownTracing func(context.Context) error
}

func newRootCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:               "cinedex [command]",
		Short:             "Seed a media catalog database with synthetic movies, series, people, reviews and forum data",
		SilenceUsage:      true,
		Version:           Version,
		PersistentPreRunE: a.setup,
	}
	root.AddCommand(
		newSeedCommand(a),
		newMigrateCommand(a),
		newCountsCommand(a),
		newNukeCommand(a),
	)
	return root
}

// Execute runs the root command and exits non-zero on failure.
func Execute(ctx context.Context) {
	a := &app{}
	err := newRootCommand(a).ExecuteContext(ctx)
	a.close()
	if err != nil {
		os.Exit(1)
	}
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	a.cfg = cfg

	observability.ConfigureLogging(cfg.Env, cfg.LogLevel, cfg.LogFormat)

	shutdown, err := observability.InitTracing(observability.TracingConfig{
		ServiceName:    "cinedex",
		ServiceVersion: Version,
		Environment:    cfg.Env,
		Enabled:        cfg.TracingEnabled,
		Exporter:       cfg.TracingExporter,
		OTLPEndpoint:   cfg.OTLPEndpoint,
		SamplerRatio:   cfg.TracingSamplerRatio,
	})
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	a.shutdownTracing = shutdown
	return nil
}

func (a *app) close() {
	if a.shutdownTracing == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := a.shutdownTracing(ctx); err != nil {
		observability.Logger.Warn("tracing shutdown failed", slog.String("error", err.Error()))
	}
}

// openDB connects to the configured database. The returned func closes the pool.
func (a *app) openDB(ctx context.Context, applySchema bool) (*gorm.DB, func(), error) {
	db, err := database.ConnectWithOptions(ctx, a.cfg, database.ConnectOptions{ApplySchema: applySchema})
	if err != nil {
		return nil, nil, err
	}
	return db, func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}, nil
}
