// Package seed generates randomized catalog, review and forum fixtures.
// Stages run in dependency order and can be resumed from any step.
package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"cinedex/internal/cache"
	"cinedex/internal/models"
	"cinedex/internal/observability"
	"cinedex/internal/repository"

	"github.com/brianvoe/gofakeit/v6"
	"go.opentelemetry.io/otel/attribute"
)

// Counts is how many rows each entity generator creates per run.
type Counts struct {
	Movies int
	Series int
	Actors int
	Crew   int
}

// Options configuration for the seeder
type Options struct {
	// BatchSize caps in-flight inserts per entity batch.
	BatchSize int
	// FixtureThreshold excludes content with id <= threshold from relationship and review generation.
	FixtureThreshold uint
	// MinUsers is the user pool size guaranteed before the social stages.
	MinUsers int
	// SkipBcrypt stores a fixed placeholder password instead of hashing.
	SkipBcrypt bool
	// RandSeed makes a run reproducible; 0 picks a random seed.
	RandSeed int64
	Counts   Counts
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		BatchSize:        10,
		FixtureThreshold: 10,
		MinUsers:         20,
		Counts:           Counts{Movies: 50, Series: 20, Actors: 100, Crew: 60},
	}
}

// Option customizes a Seeder.
type Option func(*Seeder)

// WithRunLock guards Run with a Redis lock.
func WithRunLock(l *cache.RunLock) Option {
	return func(s *Seeder) { s.lock = l }
}

// WithCheckpoint records completed steps for --resume.
func WithCheckpoint(c *cache.Checkpoint) Option {
	return func(s *Seeder) { s.checkpoint = c }
}

// WithClock overrides time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Seeder) { s.now = now }
}

// Seeder runs the seed stages against a Store.
type Seeder struct {
	store      *repository.Store
	opts       Options
	fixtures   *Fixtures
	values     *values
	lock       *cache.RunLock
	checkpoint *cache.Checkpoint
	now        func() time.Time
}

// New builds a Seeder. Invalid batch sizes or user pools fall back to defaults.
func New(store *repository.Store, opts Options, options ...Option) (*Seeder, error) {
	fx, err := LoadFixtures()
	if err != nil {
		return nil, err
	}

	defaults := DefaultOptions()
	if opts.BatchSize <= 0 {
		opts.BatchSize = defaults.BatchSize
	}
	if opts.MinUsers < 2 {
		opts.MinUsers = defaults.MinUsers
	}

	s := &Seeder{
		store:      store,
		opts:       opts,
		fixtures:   fx,
		lock:       cache.NewRunLock(nil, "", 0),
		checkpoint: cache.NewCheckpoint(nil, ""),
		now:        time.Now,
	}
	for _, o := range options {
		o(s)
	}
	s.values = newValues(gofakeit.New(opts.RandSeed), fx, s.now)
	return s, nil
}

// Run executes every step from `from` onwards. A failing step stops the run; later steps do not start.
func (s *Seeder) Run(ctx context.Context, from Step) error {
	if !from.Valid() {
		return models.NewValidationError(fmt.Sprintf("invalid start step %d", int(from)))
	}
	if observability.ExtractRunID(ctx) == "" {
		ctx = observability.WithRunID(ctx, observability.NewRunID())
	}

	if err := s.lock.Acquire(ctx); err != nil {
		return err
	}
	defer func() {
		if err := s.lock.Release(context.WithoutCancel(ctx)); err != nil {
			observability.Logger.WarnContext(ctx, "failed to release seed lock", slog.String("error", err.Error()))
		}
	}()

	observability.Logger.InfoContext(ctx, "🌱 Starting seed run", slog.String("from", from.String()))
	if err := s.logCounts(ctx, "existing rows"); err != nil {
		return err
	}

	for _, step := range Steps() {
		if step < from {
			continue
		}
		if err := s.runStep(ctx, step); err != nil {
			observability.Logger.ErrorContext(ctx, "seed step failed",
				slog.String("step", step.String()),
				slog.String("error", err.Error()),
			)
			return fmt.Errorf("seed step %s: %w", step, err)
		}
		if err := s.checkpoint.Save(ctx, int(step)); err != nil {
			observability.Logger.WarnContext(ctx, "failed to save checkpoint", slog.String("error", err.Error()))
		}
		if err := s.lock.Refresh(ctx); err != nil {
			if errors.Is(err, cache.ErrLockLost) {
				return fmt.Errorf("after step %s: %w", step, err)
			}
			observability.Logger.WarnContext(ctx, "failed to refresh seed lock", slog.String("error", err.Error()))
		}
	}

	if err := s.checkpoint.Clear(ctx); err != nil {
		observability.Logger.WarnContext(ctx, "failed to clear checkpoint", slog.String("error", err.Error()))
	}
	observability.Logger.InfoContext(ctx, "✓ Seed run complete")
	return nil
}

// ResumeStep returns the step after the last checkpointed one, or StepMovies if there is none.
func (s *Seeder) ResumeStep(ctx context.Context) (Step, error) {
	last, err := s.checkpoint.Load(ctx)
	if err != nil {
		return 0, err
	}
	next := Step(last + 1)
	if last <= 0 || !next.Valid() {
		return StepMovies, nil
	}
	return next, nil
}

func (s *Seeder) runStep(ctx context.Context, step Step) (err error) {
	ctx = observability.WithStage(ctx, step.String())
	span, ctx := observability.NewSpan(ctx, "seed."+step.String(),
		attribute.Int("seed.step", int(step)),
	)
	done := observability.TrackStage(step.String())
	defer func() {
		done()
		span.SetError(err)
		span.End()
	}()

	observability.Logger.InfoContext(ctx, "stage started")
	started := s.now()

	switch step {
	case StepMovies:
		err = s.generateFromMax(ctx, &models.Movie{}, s.opts.Counts.Movies, s.GenerateMovies)
	case StepSeries:
		err = s.generateFromMax(ctx, &models.Serie{}, s.opts.Counts.Series, s.GenerateSeries)
	case StepActors:
		err = s.generateFromMax(ctx, &models.Actor{}, s.opts.Counts.Actors, s.GenerateActors)
	case StepCrew:
		err = s.generateFromMax(ctx, &models.Crew{}, s.opts.Counts.Crew, s.GenerateCrew)
	case StepRelationships:
		err = s.GenerateRelationships(ctx)
	case StepReviews:
		if err = s.EnsureUsers(ctx, s.opts.MinUsers); err == nil {
			err = s.GenerateReviewsAndRatings(ctx)
		}
	case StepForum:
		if err = s.EnsureUsers(ctx, s.opts.MinUsers); err == nil {
			err = s.GenerateForumDataMinimal(ctx)
		}
	default:
		err = fmt.Errorf("unknown step %d", int(step))
	}
	if err != nil {
		return err
	}

	elapsed := s.now().Sub(started)
	span.AddAttributes(attribute.Int64("seed.elapsed_ms", elapsed.Milliseconds()))
	observability.Logger.InfoContext(ctx, "stage finished", slog.Duration("elapsed", elapsed))
	return s.logCounts(ctx, "rows after "+step.String())
}

func (s *Seeder) generateFromMax(ctx context.Context, model interface{}, count int, gen func(context.Context, int, uint) error) error {
	if count <= 0 {
		observability.Logger.InfoContext(ctx, "nothing to generate", slog.String("table", s.store.Table(model)))
		return nil
	}
	startID, err := s.store.MaxID(ctx, model)
	if err != nil {
		return err
	}
	return gen(ctx, count, startID)
}

// TableCount is one line of the row-count report.
type TableCount struct {
	Table string
	Rows  int64
}

func reportModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Movie{}, &models.Serie{}, &models.Season{}, &models.Episode{},
		&models.Actor{}, &models.Crew{}, &models.Genre{},
		&models.MovieGenre{}, &models.SerieGenre{},
		&models.CastMovie{}, &models.CastSerie{}, &models.CrewMovie{}, &models.CrewSerie{},
		&models.MovieReview{}, &models.SerieReview{}, &models.ActorReview{}, &models.CrewReview{},
		&models.UserMovieRating{}, &models.UserSerieRating{}, &models.UserActorRating{}, &models.UserCrewRating{},
		&models.ForumCategory{}, &models.ForumTopic{}, &models.ForumPost{}, &models.ForumReply{},
		&models.ForumPostUpvote{}, &models.ForumUserStats{},
	}
}

// Counts returns the current row count of every seeded table.
func (s *Seeder) Counts(ctx context.Context) ([]TableCount, error) {
	out := make([]TableCount, 0, len(reportModels()))
	for _, m := range reportModels() {
		n, err := s.store.Count(ctx, m)
		if err != nil {
			return nil, fmt.Errorf("count %s: %w", s.store.Table(m), err)
		}
		out = append(out, TableCount{Table: s.store.Table(m), Rows: n})
	}
	return out, nil
}

func (s *Seeder) logCounts(ctx context.Context, msg string) error {
	counts, err := s.Counts(ctx)
	if err != nil {
		return err
	}
	attrs := make([]any, 0, len(counts))
	for _, c := range counts {
		attrs = append(attrs, slog.Int64(c.Table, c.Rows))
	}
	observability.Logger.InfoContext(ctx, msg, slog.Group("rows", attrs...))
	return nil
}

// fatal returns the error carried by a Failed outcome and nil otherwise.
func fatal(out repository.Outcome) error {
	if out.Kind == repository.Failed {
		if out.Err == nil {
			return errors.New("insert failed")
		}
		return out.Err
	}
	return nil
}
