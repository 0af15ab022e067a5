package models

import "time"

// Link rows are uniquely identified by their (parent, linked) pair.

// MovieGenre links a movie to a genre.
type MovieGenre struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	MovieID   uint      `gorm:"not null;uniqueIndex:idx_movie_genres_pair" json:"movie_id"`
	GenreID   uint      `gorm:"not null;uniqueIndex:idx_movie_genres_pair" json:"genre_id"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM
func (MovieGenre) TableName() string {
	return "movie_genres"
}

// SerieGenre links a serie to a genre.
type SerieGenre struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	SerieID   uint      `gorm:"not null;uniqueIndex:idx_serie_genres_pair" json:"serie_id"`
	GenreID   uint      `gorm:"not null;uniqueIndex:idx_serie_genres_pair" json:"genre_id"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM
func (SerieGenre) TableName() string {
	return "serie_genres"
}

// CastMovie links an actor to a movie.
type CastMovie struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	MovieID   uint      `gorm:"not null;uniqueIndex:idx_cast_movies_pair" json:"movie_id"`
	ActorID   uint      `gorm:"not null;uniqueIndex:idx_cast_movies_pair" json:"actor_id"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM
func (CastMovie) TableName() string {
	return "cast_movies"
}

// CastSerie links an actor to a serie.
type CastSerie struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	SerieID   uint      `gorm:"not null;uniqueIndex:idx_cast_series_pair" json:"serie_id"`
	ActorID   uint      `gorm:"not null;uniqueIndex:idx_cast_series_pair" json:"actor_id"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM
func (CastSerie) TableName() string {
	return "cast_series"
}

// CrewMovie links a crew member to a movie.
type CrewMovie struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	MovieID   uint      `gorm:"not null;uniqueIndex:idx_crew_movies_pair" json:"movie_id"`
	CrewID    uint      `gorm:"not null;uniqueIndex:idx_crew_movies_pair" json:"crew_id"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM
func (CrewMovie) TableName() string {
	return "crew_movies"
}

// CrewSerie links a crew member to a serie.
type CrewSerie struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	SerieID   uint      `gorm:"not null;uniqueIndex:idx_crew_series_pair" json:"serie_id"`
	CrewID    uint      `gorm:"not null;uniqueIndex:idx_crew_series_pair" json:"crew_id"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM
func (CrewSerie) TableName() string {
	return "crew_series"
}
