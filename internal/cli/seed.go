package cli

import (
	"context"
	"log/slog"
	"time"

	"cinedex/internal/cache"
	"cinedex/internal/config"
	"cinedex/internal/database"
	"cinedex/internal/observability"
	"cinedex/internal/repository"
	"cinedex/internal/seed"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type seedFlags struct {
	from   string
	resume bool
	movies int
	series int
	actors int
	crew   int
}

func newSeedCommand(a *app) *cobra.Command {
	var f seedFlags
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Run the seed stages: movies, series, actors, crew, relationships, reviews, forum",
		Long: `Run every seed stage in order, starting at --from (a step number 1-7 or its name).
With --resume the run continues after the last step checkpointed in Redis.
Counts default to SEED_MOVIES, SEED_SERIES, SEED_ACTORS and SEED_CREW.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runSeed(cmd, f)
		},
	}

	cmd.Flags().StringVar(&f.from, "from", "", "Step to start from: 1-7 or movies|series|actors|crew|relationships|reviews|forum")
	cmd.Flags().BoolVar(&f.resume, "resume", false, "Continue after the last checkpointed step (needs REDIS_URL)")
	cmd.Flags().IntVar(&f.movies, "movies", 0, "Movies to create (default SEED_MOVIES)")
	cmd.Flags().IntVar(&f.series, "series", 0, "Series to create (default SEED_SERIES)")
	cmd.Flags().IntVar(&f.actors, "actors", 0, "Actors to create (default SEED_ACTORS)")
	cmd.Flags().IntVar(&f.crew, "crew", 0, "Crew members to create (default SEED_CREW)")
	cmd.MarkFlagsMutuallyExclusive("from", "resume")
	return cmd
}

func (a *app) runSeed(cmd *cobra.Command, f seedFlags) error {
	from, err := seed.ParseStep(f.from)
	if err != nil {
		return err
	}

	runID := observability.NewRunID()
	ctx := observability.WithRunID(cmd.Context(), runID)

	db, closeDB, err := a.openDB(ctx, true)
	if err != nil {
		return err
	}
	defer closeDB()

	client, err := cache.Connect(ctx, a.cfg.RedisURL)
	if err != nil {
		return err
	}
	if client != nil {
		defer client.Close()
	} else if f.resume {
		observability.Logger.WarnContext(ctx, "--resume without REDIS_URL has no checkpoint; starting from the first step")
	}

	label := database.Label(a.cfg)
	ttl := time.Duration(a.cfg.SeedLockTTLSeconds) * time.Second
	s, err := seed.New(repository.NewStore(db), seedOptions(a.cfg, cmd.Flags(), f),
		seed.WithRunLock(cache.NewRunLock(client, cache.LockKey(label), ttl)),
		seed.WithCheckpoint(cache.NewCheckpoint(client, cache.CheckpointKey(label))),
	)
	if err != nil {
		return err
	}

	if f.resume {
		if from, err = s.ResumeStep(ctx); err != nil {
			return err
		}
		observability.Logger.InfoContext(ctx, "resuming seed run", slog.String("from", from.String()))
	}

	runErr := s.Run(ctx, from)
	if err := observability.PushMetrics(context.WithoutCancel(ctx), a.cfg.MetricsPushgatewayURL, "cinedex_seed", runID); err != nil {
		observability.Logger.WarnContext(ctx, "metrics push failed", slog.String("error", err.Error()))
	}
	return runErr
}

// seedOptions builds seeder options from config; count flags win when set.
func seedOptions(cfg *config.Config, flags *pflag.FlagSet, f seedFlags) seed.Options {
	opts := seed.Options{
		BatchSize:        cfg.SeedBatchSize,
		FixtureThreshold: cfg.SeedFixtureThreshold,
		MinUsers:         cfg.SeedMinUsers,
		SkipBcrypt:       cfg.SeedSkipBcrypt,
		RandSeed:         cfg.SeedRandSeed,
		Counts: seed.Counts{
			Movies: cfg.SeedMovies,
			Series: cfg.SeedSeries,
			Actors: cfg.SeedActors,
			Crew:   cfg.SeedCrew,
		},
	}
	if flags.Changed("movies") {
		opts.Counts.Movies = f.movies
	}
	if flags.Changed("series") {
		opts.Counts.Series = f.series
	}
	if flags.Changed("actors") {
		opts.Counts.Actors = f.actors
	}
	if flags.Changed("crew") {
		opts.Counts.Crew = f.crew
	}
	return opts
}
