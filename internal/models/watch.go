package models

import "time"

// WatchEvent is a log entry recording that a profile watched (or marked as
// watched) a film.
type WatchEvent struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	ProfileID uint      `json:"profile_id" gorm:"index;not null"`
	FilmID    uint      `json:"film_id" gorm:"index;not null"`
	Watched   bool      `json:"watched" gorm:"not null;default:true"`
	CreatedAt time.Time `json:"created_at"`
}

// LogWatchRequest defines the request body for logging a watch.
type LogWatchRequest struct {
	TmdbID      int    `json:"tmdbId" validate:"required,min=1"`
	FilmTitle   string `json:"filmTitle" validate:"required"`
	ReleaseYear int    `json:"releaseYear" validate:"omitempty,min=1880"`
	PosterURL   string `json:"posterUrl" validate:"omitempty,url"`
	Watched     *bool  `json:"watched"`
}
