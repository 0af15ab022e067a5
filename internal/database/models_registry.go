package database

import "cinedex/internal/models"

// PersistentModels returns the authoritative set of schema-managed GORM models,
// parents before children.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Genre{},
		&models.Movie{},
		&models.Serie{},
		&models.Season{},
		&models.Episode{},
		&models.Actor{},
		&models.Crew{},

		&models.MovieGenre{},
		&models.SerieGenre{},
		&models.CastMovie{},
		&models.CastSerie{},
		&models.CrewMovie{},
		&models.CrewSerie{},

		&models.MovieReview{},
		&models.MovieReviewVote{},
		&models.UserMovieRating{},
		&models.UserMovieFavorite{},
		&models.SerieReview{},
		&models.SerieReviewVote{},
		&models.UserSerieRating{},
		&models.UserSerieFavorite{},
		&models.ActorReview{},
		&models.ActorReviewVote{},
		&models.UserActorRating{},
		&models.UserActorFavorite{},
		&models.CrewReview{},
		&models.CrewReviewVote{},
		&models.UserCrewRating{},
		&models.UserCrewFavorite{},

		&models.ForumCategory{},
		&models.ForumTopic{},
		&models.ForumPost{},
		&models.ForumReply{},
		&models.ForumPostUpvote{},
		&models.ForumUserStats{},
	}
}
