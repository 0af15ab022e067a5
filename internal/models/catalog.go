package models

import "time"

// Movie is a feature film in the catalog.
type Movie struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:255;not null;index" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	PhotoSrc    string    `json:"photo_src"`
	TrailerSrc  string    `json:"trailer_src"`
	Duration    int       `gorm:"not null" json:"duration"`
	RatingImdb  float64   `gorm:"not null" json:"rating_imdb"`
	DateAired   time.Time `json:"date_aired"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM
func (Movie) TableName() string {
	return "movies"
}

// Serie is a TV series; it owns seasons which own episodes.
type Serie struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:255;not null;index" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	PhotoSrc    string    `json:"photo_src"`
	TrailerSrc  string    `json:"trailer_src"`
	RatingImdb  float64   `gorm:"not null" json:"rating_imdb"`
	DateAired   time.Time `json:"date_aired"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Seasons []Season `gorm:"foreignKey:SerieID" json:"seasons,omitempty"`
}

// TableName specifies the table name for GORM
func (Serie) TableName() string {
	return "series"
}

// Season belongs to a Serie.
type Season struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	SerieID      uint      `gorm:"not null;index" json:"serie_id"`
	SeasonNumber int       `gorm:"not null" json:"season_number"`
	Title        string    `gorm:"size:255;not null" json:"title"`
	Description  string    `gorm:"type:text" json:"description"`
	PhotoSrc     string    `json:"photo_src"`
	TrailerSrc   string    `json:"trailer_src"`
	RatingImdb   float64   `gorm:"not null" json:"rating_imdb"`
	DateAired    time.Time `json:"date_aired"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Episodes []Episode `gorm:"foreignKey:SeasonID" json:"episodes,omitempty"`
}

// TableName specifies the table name for GORM
func (Season) TableName() string {
	return "seasons"
}

// Episode belongs to a Season.
type Episode struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	SeasonID      uint      `gorm:"not null;index" json:"season_id"`
	EpisodeNumber int       `gorm:"not null" json:"episode_number"`
	Title         string    `gorm:"size:255;not null" json:"title"`
	Description   string    `gorm:"type:text" json:"description"`
	PhotoSrc      string    `json:"photo_src"`
	TrailerSrc    string    `json:"trailer_src"`
	Duration      int       `gorm:"not null" json:"duration"`
	RatingImdb    float64   `gorm:"not null" json:"rating_imdb"`
	DateAired     time.Time `json:"date_aired"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM
func (Episode) TableName() string {
	return "episodes"
}

// Actor is a cast member.
type Actor struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Fullname    string    `gorm:"size:255;not null;index" json:"fullname"`
	Description string    `gorm:"type:text" json:"description"`
	PhotoSrc    string    `json:"photo_src"`
	Debut       string    `json:"debut"`
	RatingImdb  float64   `gorm:"not null" json:"rating_imdb"`
	BornOn      time.Time `json:"born_on"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM
func (Actor) TableName() string {
	return "actors"
}

// Crew is a member of a production crew (director, writer, ...).
type Crew struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Fullname    string    `gorm:"size:255;not null;index" json:"fullname"`
	Role        string    `gorm:"size:64" json:"role"`
	Description string    `gorm:"type:text" json:"description"`
	PhotoSrc    string    `json:"photo_src"`
	RatingImdb  float64   `gorm:"not null" json:"rating_imdb"`
	BornOn      time.Time `json:"born_on"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM
func (Crew) TableName() string {
	return "crew"
}

// Genre is a static catalog classification.
type Genre struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:64;uniqueIndex;not null" json:"name"`
	Description string `json:"description"`
}

// TableName specifies the table name for GORM
func (Genre) TableName() string {
	return "genres"
}
