package seed

import (
	"context"
	"fmt"
	"log/slog"

	"cinedex/internal/models"
	"cinedex/internal/observability"
	"cinedex/internal/repository"
)

// reviewTarget binds the review, vote, rating and favorite tables of one content kind.
type reviewTarget struct {
	kind       string
	content    interface{}
	maxAuthors int

	newReview   func(userID, contentID uint, body string, rating float64) (row interface{}, id func() uint)
	newVote     func(userID, reviewID uint, t models.VoteType) interface{}
	newRating   func(userID, contentID uint, rating float64) interface{}
	newFavorite func(userID, contentID uint) interface{}
}

func reviewTargets() []reviewTarget {
	return []reviewTarget{
		{
			kind: "movie", content: &models.Movie{}, maxAuthors: 3,
			newReview: func(u, c uint, body string, r float64) (interface{}, func() uint) {
				row := &models.MovieReview{UserID: u, MovieID: c, Content: body, Rating: r}
				return row, func() uint { return row.ID }
			},
			newVote: func(u, r uint, t models.VoteType) interface{} {
				return &models.MovieReviewVote{UserID: u, ReviewID: r, Type: t}
			},
			newRating: func(u, c uint, r float64) interface{} {
				return &models.UserMovieRating{UserID: u, MovieID: c, Rating: r}
			},
			newFavorite: func(u, c uint) interface{} {
				return &models.UserMovieFavorite{UserID: u, MovieID: c, IsFavorite: true}
			},
		},
		{
			kind: "serie", content: &models.Serie{}, maxAuthors: 3,
			newReview: func(u, c uint, body string, r float64) (interface{}, func() uint) {
				row := &models.SerieReview{UserID: u, SerieID: c, Content: body, Rating: r}
				return row, func() uint { return row.ID }
			},
			newVote: func(u, r uint, t models.VoteType) interface{} {
				return &models.SerieReviewVote{UserID: u, ReviewID: r, Type: t}
			},
			newRating: func(u, c uint, r float64) interface{} {
				return &models.UserSerieRating{UserID: u, SerieID: c, Rating: r}
			},
			newFavorite: func(u, c uint) interface{} {
				return &models.UserSerieFavorite{UserID: u, SerieID: c, IsFavorite: true}
			},
		},
		{
			kind: "actor", content: &models.Actor{}, maxAuthors: 2,
			newReview: func(u, c uint, body string, r float64) (interface{}, func() uint) {
				row := &models.ActorReview{UserID: u, ActorID: c, Content: body, Rating: r}
				return row, func() uint { return row.ID }
			},
			newVote: func(u, r uint, t models.VoteType) interface{} {
				return &models.ActorReviewVote{UserID: u, ReviewID: r, Type: t}
			},
			newRating: func(u, c uint, r float64) interface{} {
				return &models.UserActorRating{UserID: u, ActorID: c, Rating: r}
			},
			newFavorite: func(u, c uint) interface{} {
				return &models.UserActorFavorite{UserID: u, ActorID: c, IsFavorite: true}
			},
		},
		{
			kind: "crew", content: &models.Crew{}, maxAuthors: 2,
			newReview: func(u, c uint, body string, r float64) (interface{}, func() uint) {
				row := &models.CrewReview{UserID: u, CrewID: c, Content: body, Rating: r}
				return row, func() uint { return row.ID }
			},
			newVote: func(u, r uint, t models.VoteType) interface{} {
				return &models.CrewReviewVote{UserID: u, ReviewID: r, Type: t}
			},
			newRating: func(u, c uint, r float64) interface{} {
				return &models.UserCrewRating{UserID: u, CrewID: c, Rating: r}
			},
			newFavorite: func(u, c uint) interface{} {
				return &models.UserCrewFavorite{UserID: u, CrewID: c, IsFavorite: true}
			},
		},
	}
}

// ReviewStats summarizes one content kind's pass.
type ReviewStats struct {
	Reviews   int
	Votes     int
	Ratings   int
	Favorites int
	Skipped   int
}

// favoriteChance is the probability that a rater also favorites the item.
const favoriteChance = 0.4

// GenerateReviewsAndRatings writes reviews with votes, and independent ratings and favorites,
// for every content row above the fixture threshold.
func (s *Seeder) GenerateReviewsAndRatings(ctx context.Context) error {
	users, err := s.store.IDs(ctx, &models.User{}, repository.Query{})
	if err != nil {
		return err
	}
	if len(users) < 2 {
		return models.NewValidationError("at least two users are required to generate reviews")
	}

	for _, target := range reviewTargets() {
		stats, err := s.generateReviews(ctx, target, users)
		if err != nil {
			return fmt.Errorf("%s reviews: %w", target.kind, err)
		}
		observability.Logger.InfoContext(ctx, "reviews generated",
			slog.String("kind", target.kind),
			slog.Int("reviews", stats.Reviews),
			slog.Int("votes", stats.Votes),
			slog.Int("ratings", stats.Ratings),
			slog.Int("favorites", stats.Favorites),
			slog.Int("skipped", stats.Skipped),
		)
	}
	return nil
}

func (s *Seeder) generateReviews(ctx context.Context, t reviewTarget, users []uint) (ReviewStats, error) {
	var stats ReviewStats

	contentIDs, err := s.store.IDs(ctx, t.content, repository.Query{
		Where: "id > ?",
		Args:  []interface{}{s.opts.FixtureThreshold},
	})
	if err != nil {
		return stats, err
	}

	v := s.values
	for _, contentID := range contentIDs {
		authors := v.Pick(users, v.Between(1, t.maxAuthors))
		for _, author := range authors {
			row, reviewID := t.newReview(author, contentID, v.ReviewBody(), v.Rating())
			if err := s.store.Create(ctx, row); err != nil {
				return stats, fmt.Errorf("review of %d by %d: %w", contentID, author, err)
			}
			stats.Reviews++

			for _, voter := range v.Pick(without(users, author), v.Between(1, 3)) {
				vote := models.VoteDown
				if v.Coin() {
					vote = models.VoteUp
				}
				out := s.store.Insert(ctx, t.newVote(voter, reviewID(), vote))
				if err := fatal(out); err != nil {
					return stats, fmt.Errorf("vote on review %d: %w", reviewID(), err)
				}
				if out.Kind == repository.Skipped {
					stats.Skipped++
				} else {
					stats.Votes++
				}
			}
		}

		for _, rater := range v.Pick(without(users, authors...), v.Between(2, 5)) {
			out := s.store.Insert(ctx, t.newRating(rater, contentID, v.Rating()))
			if err := fatal(out); err != nil {
				return stats, fmt.Errorf("rating of %d by %d: %w", contentID, rater, err)
			}
			if out.Kind == repository.Skipped {
				stats.Skipped++
			} else {
				stats.Ratings++
			}

			if !v.Chance(favoriteChance) {
				continue
			}
			out = s.store.Insert(ctx, t.newFavorite(rater, contentID))
			if err := fatal(out); err != nil {
				return stats, fmt.Errorf("favorite of %d by %d: %w", contentID, rater, err)
			}
			if out.Kind == repository.Skipped {
				stats.Skipped++
			} else {
				stats.Favorites++
			}
		}
	}
	return stats, nil
}
