package models

import "time"

// VoteType is the polarity of a review vote.
type VoteType string

const (
	// VoteUp marks a review as helpful.
	VoteUp VoteType = "upvote"
	// VoteDown marks a review as unhelpful.
	VoteDown VoteType = "downvote"
)

// MovieReview is a user's written review of a movie.
type MovieReview struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	MovieID   uint      `gorm:"not null;index" json:"movie_id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Rating    float64   `gorm:"not null" json:"rating"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Votes []MovieReviewVote `gorm:"foreignKey:ReviewID" json:"votes,omitempty"`
}

// TableName specifies the table name for GORM
func (MovieReview) TableName() string {
	return "movie_reviews"
}

// MovieReviewVote is one upvote or downvote on a movie review. A voter holds at most one vote per review.
type MovieReviewVote struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_movie_review_votes_pair" json:"user_id"`
	ReviewID  uint      `gorm:"not null;uniqueIndex:idx_movie_review_votes_pair" json:"review_id"`
	Type      VoteType  `gorm:"type:varchar(16);not null" json:"type"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM
func (MovieReviewVote) TableName() string {
	return "movie_review_votes"
}

// UserMovieRating is a standalone numeric rating, one per user and movie.
type UserMovieRating struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_user_movie_ratings_pair" json:"user_id"`
	MovieID   uint      `gorm:"not null;uniqueIndex:idx_user_movie_ratings_pair" json:"movie_id"`
	Rating    float64   `gorm:"not null" json:"rating"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM
func (UserMovieRating) TableName() string {
	return "user_movie_ratings"
}

// UserMovieFavorite flags a movie as a user's favorite, one per user and movie.
type UserMovieFavorite struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null;uniqueIndex:idx_user_movie_favorites_pair" json:"user_id"`
	MovieID    uint      `gorm:"not null;uniqueIndex:idx_user_movie_favorites_pair" json:"movie_id"`
	IsFavorite bool      `gorm:"not null;default:true" json:"is_favorite"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM
func (UserMovieFavorite) TableName() string {
	return "user_movie_favorites"
}

// SerieReview is a user's written review of a serie.
type SerieReview struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	SerieID   uint      `gorm:"not null;index" json:"serie_id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Rating    float64   `gorm:"not null" json:"rating"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Votes []SerieReviewVote `gorm:"foreignKey:ReviewID" json:"votes,omitempty"`
}

// TableName specifies the table name for GORM
func (SerieReview) TableName() string {
	return "serie_reviews"
}

// SerieReviewVote is one upvote or downvote on a serie review. A voter holds at most one vote per review.
type SerieReviewVote struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_serie_review_votes_pair" json:"user_id"`
	ReviewID  uint      `gorm:"not null;uniqueIndex:idx_serie_review_votes_pair" json:"review_id"`
	Type      VoteType  `gorm:"type:varchar(16);not null" json:"type"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM
func (SerieReviewVote) TableName() string {
	return "serie_review_votes"
}

// UserSerieRating is a standalone numeric rating, one per user and serie.
type UserSerieRating struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_user_serie_ratings_pair" json:"user_id"`
	SerieID   uint      `gorm:"not null;uniqueIndex:idx_user_serie_ratings_pair" json:"serie_id"`
	Rating    float64   `gorm:"not null" json:"rating"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM
func (UserSerieRating) TableName() string {
	return "user_serie_ratings"
}

// UserSerieFavorite flags a serie as a user's favorite, one per user and serie.
type UserSerieFavorite struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null;uniqueIndex:idx_user_serie_favorites_pair" json:"user_id"`
	SerieID    uint      `gorm:"not null;uniqueIndex:idx_user_serie_favorites_pair" json:"serie_id"`
	IsFavorite bool      `gorm:"not null;default:true" json:"is_favorite"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM
func (UserSerieFavorite) TableName() string {
	return "user_serie_favorites"
}

// ActorReview is a user's written review of a actor.
type ActorReview struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	ActorID   uint      `gorm:"not null;index" json:"actor_id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Rating    float64   `gorm:"not null" json:"rating"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Votes []ActorReviewVote `gorm:"foreignKey:ReviewID" json:"votes,omitempty"`
}

// TableName specifies the table name for GORM
func (ActorReview) TableName() string {
	return "actor_reviews"
}

// ActorReviewVote is one upvote or downvote on a actor review. A voter holds at most one vote per review.
type ActorReviewVote struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_actor_review_votes_pair" json:"user_id"`
	ReviewID  uint      `gorm:"not null;uniqueIndex:idx_actor_review_votes_pair" json:"review_id"`
	Type      VoteType  `gorm:"type:varchar(16);not null" json:"type"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM
func (ActorReviewVote) TableName() string {
	return "actor_review_votes"
}

// UserActorRating is a standalone numeric rating, one per user and actor.
type UserActorRating struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_user_actor_ratings_pair" json:"user_id"`
	ActorID   uint      `gorm:"not null;uniqueIndex:idx_user_actor_ratings_pair" json:"actor_id"`
	Rating    float64   `gorm:"not null" json:"rating"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM
func (UserActorRating) TableName() string {
	return "user_actor_ratings"
}

// UserActorFavorite flags a actor as a user's favorite, one per user and actor.
type UserActorFavorite struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null;uniqueIndex:idx_user_actor_favorites_pair" json:"user_id"`
	ActorID    uint      `gorm:"not null;uniqueIndex:idx_user_actor_favorites_pair" json:"actor_id"`
	IsFavorite bool      `gorm:"not null;default:true" json:"is_favorite"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM
func (UserActorFavorite) TableName() string {
	return "user_actor_favorites"
}

// CrewReview is a user's written review of a crew.
type CrewReview struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	CrewID    uint      `gorm:"not null;index" json:"crew_id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Rating    float64   `gorm:"not null" json:"rating"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Votes []CrewReviewVote `gorm:"foreignKey:ReviewID" json:"votes,omitempty"`
}

// TableName specifies the table name for GORM
func (CrewReview) TableName() string {
	return "crew_reviews"
}

// CrewReviewVote is one upvote or downvote on a crew review. A voter holds at most one vote per review.
type CrewReviewVote struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_crew_review_votes_pair" json:"user_id"`
	ReviewID  uint      `gorm:"not null;uniqueIndex:idx_crew_review_votes_pair" json:"review_id"`
	Type      VoteType  `gorm:"type:varchar(16);not null" json:"type"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM
func (CrewReviewVote) TableName() string {
	return "crew_review_votes"
}

// UserCrewRating is a standalone numeric rating, one per user and crew.
type UserCrewRating struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_user_crew_ratings_pair" json:"user_id"`
	CrewID    uint      `gorm:"not null;uniqueIndex:idx_user_crew_ratings_pair" json:"crew_id"`
	Rating    float64   `gorm:"not null" json:"rating"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM
func (UserCrewRating) TableName() string {
	return "user_crew_ratings"
}

// UserCrewFavorite flags a crew as a user's favorite, one per user and crew.
type UserCrewFavorite struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null;uniqueIndex:idx_user_crew_favorites_pair" json:"user_id"`
	CrewID     uint      `gorm:"not null;uniqueIndex:idx_user_crew_favorites_pair" json:"crew_id"`
	IsFavorite bool      `gorm:"not null;default:true" json:"is_favorite"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM
func (UserCrewFavorite) TableName() string {
	return "user_crew_favorites"
}
