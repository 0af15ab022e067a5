package seed

import (
	"context"
	"fmt"
	"log/slog"

	"cinedex/internal/models"
	"cinedex/internal/observability"
	"cinedex/internal/repository"
)

// linkTable describes one link table: which content rows get links, from which pool, and how many.
type linkTable struct {
	table     string
	link      interface{}
	parentCol string
	memberCol string
	parent    interface{}
	member    interface{}
	min, max  int
	newRow    func(parentID, memberID uint) interface{}
}

func (s *Seeder) linkTables() []linkTable {
	return []linkTable{
		{
			table: "movie_genres", link: &models.MovieGenre{}, parentCol: "movie_id", memberCol: "genre_id",
			parent: &models.Movie{}, member: &models.Genre{}, min: 1, max: 3,
			newRow: func(p, m uint) interface{} { return &models.MovieGenre{MovieID: p, GenreID: m} },
		},
		{
			table: "serie_genres", link: &models.SerieGenre{}, parentCol: "serie_id", memberCol: "genre_id",
			parent: &models.Serie{}, member: &models.Genre{}, min: 1, max: 3,
			newRow: func(p, m uint) interface{} { return &models.SerieGenre{SerieID: p, GenreID: m} },
		},
		{
			table: "cast_movies", link: &models.CastMovie{}, parentCol: "movie_id", memberCol: "actor_id",
			parent: &models.Movie{}, member: &models.Actor{}, min: 3, max: 6,
			newRow: func(p, m uint) interface{} { return &models.CastMovie{MovieID: p, ActorID: m} },
		},
		{
			table: "cast_series", link: &models.CastSerie{}, parentCol: "serie_id", memberCol: "actor_id",
			parent: &models.Serie{}, member: &models.Actor{}, min: 3, max: 6,
			newRow: func(p, m uint) interface{} { return &models.CastSerie{SerieID: p, ActorID: m} },
		},
		{
			table: "crew_movies", link: &models.CrewMovie{}, parentCol: "movie_id", memberCol: "crew_id",
			parent: &models.Movie{}, member: &models.Crew{}, min: 2, max: 5,
			newRow: func(p, m uint) interface{} { return &models.CrewMovie{MovieID: p, CrewID: m} },
		},
		{
			table: "crew_series", link: &models.CrewSerie{}, parentCol: "serie_id", memberCol: "crew_id",
			parent: &models.Serie{}, member: &models.Crew{}, min: 2, max: 5,
			newRow: func(p, m uint) interface{} { return &models.CrewSerie{SerieID: p, CrewID: m} },
		},
	}
}

// LinkStats summarizes one link table's pass.
type LinkStats struct {
	Created        int
	Skipped        int
	ParentsSkipped int
}

// GenerateRelationships links genres, cast and crew to every content row above the fixture threshold.
// Content that already has links in a table is left alone, so repeated runs only link new content.
func (s *Seeder) GenerateRelationships(ctx context.Context) error {
	if err := s.EnsureGenres(ctx); err != nil {
		return err
	}
	for _, lt := range s.linkTables() {
		stats, err := s.generateLinks(ctx, lt)
		if err != nil {
			return fmt.Errorf("%s: %w", lt.table, err)
		}
		observability.Logger.InfoContext(ctx, "links generated",
			slog.String("table", lt.table),
			slog.Int("created", stats.Created),
			slog.Int("skipped", stats.Skipped),
			slog.Int("already_linked", stats.ParentsSkipped),
		)
	}
	return nil
}

func (s *Seeder) generateLinks(ctx context.Context, lt linkTable) (LinkStats, error) {
	var stats LinkStats

	parents, err := s.store.IDs(ctx, lt.parent, repository.Query{
		Where: "id > ?",
		Args:  []interface{}{s.opts.FixtureThreshold},
	})
	if err != nil {
		return stats, err
	}
	pool, err := s.store.IDs(ctx, lt.member, repository.Query{})
	if err != nil {
		return stats, err
	}
	if len(parents) == 0 || len(pool) == 0 {
		observability.Logger.InfoContext(ctx, "no candidates for links",
			slog.String("table", lt.table),
			slog.Int("parents", len(parents)),
			slog.Int("pool", len(pool)),
		)
		return stats, nil
	}

	existing, err := s.store.Pairs(ctx, lt.link, lt.parentCol, lt.memberCol)
	if err != nil {
		return stats, err
	}
	linked := make(map[uint]struct{}, len(existing))
	for p := range existing {
		linked[p.Left] = struct{}{}
	}

	for _, parentID := range parents {
		if _, ok := linked[parentID]; ok {
			stats.ParentsSkipped++
			continue
		}
		members := s.values.Pick(pool, s.values.Between(lt.min, lt.max))
		if err := s.linkParent(ctx, lt, parentID, members, existing, &stats); err != nil {
			return stats, err
		}
	}
	return stats, nil
}

// linkParent writes one link row per member. Pairs already in existing are not sent to storage;
// pairs storage rejects as duplicates count as skipped.
func (s *Seeder) linkParent(ctx context.Context, lt linkTable, parentID uint, members []uint, existing repository.PairSet, stats *LinkStats) error {
	for _, memberID := range members {
		if existing.Has(parentID, memberID) {
			stats.Skipped++
			continue
		}
		out := s.store.Insert(ctx, lt.newRow(parentID, memberID))
		if err := fatal(out); err != nil {
			return fmt.Errorf("link %d-%d: %w", parentID, memberID, err)
		}
		if out.Kind == repository.Skipped {
			stats.Skipped++
			continue
		}
		existing.Add(parentID, memberID)
		stats.Created++
	}
	return nil
}

// EnsureGenres inserts the fixture genres when the genre table is empty.
func (s *Seeder) EnsureGenres(ctx context.Context) error {
	n, err := s.store.Count(ctx, &models.Genre{})
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	for _, g := range s.fixtures.Genres {
		if err := s.store.Create(ctx, &models.Genre{Name: g.Name, Description: g.Description}); err != nil {
			return fmt.Errorf("genre %q: %w", g.Name, err)
		}
	}
	observability.Logger.InfoContext(ctx, "✓ genres seeded", slog.Int("count", len(s.fixtures.Genres)))
	return nil
}
