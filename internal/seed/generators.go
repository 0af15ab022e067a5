package seed

import (
	"context"
	"fmt"
	"log/slog"

	"cinedex/internal/models"
	"cinedex/internal/observability"

	"golang.org/x/sync/errgroup"
)

// insertBatches writes rows in batches of size. Rows inside a batch are inserted concurrently;
// a batch starts only after the previous one fully completed. The first error aborts the run.
func insertBatches[T any](ctx context.Context, table string, size int, rows []T, insert func(context.Context, T) error) error {
	for start := 0; start < len(rows); start += size {
		end := min(start+size, len(rows))

		g, gctx := errgroup.WithContext(ctx)
		for _, row := range rows[start:end] {
			row := row
			g.Go(func() error {
				return insert(gctx, row)
			})
		}
		if err := g.Wait(); err != nil {
			return fmt.Errorf("insert %s batch %d-%d: %w", table, start+1, end, err)
		}

		observability.Logger.InfoContext(ctx, "batch inserted",
			slog.String("table", table),
			slog.Int("done", end),
			slog.Int("total", len(rows)),
		)
	}
	return nil
}

// GenerateMovies inserts count movies with ids startID+1..startID+count.
func (s *Seeder) GenerateMovies(ctx context.Context, count int, startID uint) error {
	rows := make([]*models.Movie, count)
	for i := range rows {
		rows[i] = &models.Movie{
			ID:          startID + uint(i) + 1,
			Title:       s.values.f.MovieName(),
			Description: s.values.Paragraph(),
			PhotoSrc:    s.values.Photo(400, 600),
			TrailerSrc:  s.values.Trailer(),
			Duration:    s.values.Between(MinMovieDuration, MaxMovieDuration),
			RatingImdb:  s.values.Rating(),
			DateAired:   s.values.Date(),
		}
	}

	err := insertBatches(ctx, "movies", s.opts.BatchSize, rows, func(ctx context.Context, m *models.Movie) error {
		return s.store.Create(ctx, m)
	})
	if err != nil {
		return err
	}
	return s.store.SyncSequence(ctx, &models.Movie{})
}

// seriePlan is a serie with its seasons and their episodes, built before any insert.
type seriePlan struct {
	serie    *models.Serie
	seasons  []*models.Season
	episodes [][]*models.Episode
}

// GenerateSeries inserts count series with ids startID+1..startID+count, each with 1-3 seasons
// of 3-10 episodes. Season and episode ids are assigned by the database.
func (s *Seeder) GenerateSeries(ctx context.Context, count int, startID uint) error {
	plans := make([]*seriePlan, count)
	for i := range plans {
		plans[i] = s.planSerie(startID + uint(i) + 1)
	}

	err := insertBatches(ctx, "series", s.opts.BatchSize, plans, s.insertSerie)
	if err != nil {
		return err
	}
	return s.store.SyncSequence(ctx, &models.Serie{})
}

func (s *Seeder) planSerie(id uint) *seriePlan {
	v := s.values
	p := &seriePlan{
		serie: &models.Serie{
			ID:          id,
			Title:       v.f.MovieName(),
			Description: v.Paragraph(),
			PhotoSrc:    v.Photo(400, 600),
			TrailerSrc:  v.Trailer(),
			RatingImdb:  v.Rating(),
			DateAired:   v.Date(),
		},
	}

	nSeasons := v.Between(1, 3)
	for n := 1; n <= nSeasons; n++ {
		p.seasons = append(p.seasons, &models.Season{
			SeasonNumber: n,
			Title:        fmt.Sprintf("Season %d", n),
			Description:  v.Paragraph(),
			PhotoSrc:     v.Photo(400, 600),
			TrailerSrc:   v.Trailer(),
			RatingImdb:   v.Rating(),
			DateAired:    v.Date(),
		})

		nEpisodes := v.Between(3, 10)
		eps := make([]*models.Episode, 0, nEpisodes)
		for e := 1; e <= nEpisodes; e++ {
			eps = append(eps, &models.Episode{
				EpisodeNumber: e,
				Title:         fmt.Sprintf("Episode %d", e),
				Description:   v.Paragraph(),
				PhotoSrc:      v.Photo(640, 360),
				TrailerSrc:    v.Trailer(),
				Duration:      v.Between(MinEpisodeDuration, MaxEpisodeDuration),
				RatingImdb:    v.Rating(),
				DateAired:     v.Date(),
			})
		}
		p.episodes = append(p.episodes, eps)
	}
	return p
}

func (s *Seeder) insertSerie(ctx context.Context, p *seriePlan) error {
	if err := s.store.Create(ctx, p.serie); err != nil {
		return fmt.Errorf("serie %d: %w", p.serie.ID, err)
	}
	for i, season := range p.seasons {
		season.SerieID = p.serie.ID
		if err := s.store.Create(ctx, season); err != nil {
			return fmt.Errorf("serie %d season %d: %w", p.serie.ID, season.SeasonNumber, err)
		}
		eps := p.episodes[i]
		for _, ep := range eps {
			ep.SeasonID = season.ID
		}
		if err := s.store.Create(ctx, &eps); err != nil {
			return fmt.Errorf("serie %d season %d episodes: %w", p.serie.ID, season.SeasonNumber, err)
		}
	}
	return nil
}

// GenerateActors inserts count actors with ids startID+1..startID+count.
func (s *Seeder) GenerateActors(ctx context.Context, count int, startID uint) error {
	rows := make([]*models.Actor, count)
	for i := range rows {
		rows[i] = &models.Actor{
			ID:          startID + uint(i) + 1,
			Fullname:    s.values.f.Name(),
			Description: s.values.Paragraph(),
			PhotoSrc:    s.values.Photo(300, 450),
			Debut:       s.values.f.MovieName(),
			RatingImdb:  s.values.Rating(),
			BornOn:      s.values.Date(),
		}
	}

	err := insertBatches(ctx, "actors", s.opts.BatchSize, rows, func(ctx context.Context, a *models.Actor) error {
		return s.store.Create(ctx, a)
	})
	if err != nil {
		return err
	}
	return s.store.SyncSequence(ctx, &models.Actor{})
}

// GenerateCrew inserts count crew members with ids startID+1..startID+count.
func (s *Seeder) GenerateCrew(ctx context.Context, count int, startID uint) error {
	rows := make([]*models.Crew, count)
	for i := range rows {
		rows[i] = &models.Crew{
			ID:          startID + uint(i) + 1,
			Fullname:    s.values.f.Name(),
			Role:        s.values.PickString(s.fixtures.CrewRoles),
			Description: s.values.Paragraph(),
			PhotoSrc:    s.values.Photo(300, 450),
			RatingImdb:  s.values.Rating(),
			BornOn:      s.values.Date(),
		}
	}

	err := insertBatches(ctx, "crew", s.opts.BatchSize, rows, func(ctx context.Context, c *models.Crew) error {
		return s.store.Create(ctx, c)
	})
	if err != nil {
		return err
	}
	return s.store.SyncSequence(ctx, &models.Crew{})
}
