package models

import "time"

// WatchlistItem marks a film a profile intends to watch. Distinct from
// WatchEvent, which records that a watch already happened.
type WatchlistItem struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	ProfileID uint      `json:"profile_id" gorm:"index;uniqueIndex:idx_watchlist_profile_film"`
	FilmID    uint      `json:"film_id" gorm:"index;uniqueIndex:idx_watchlist_profile_film"`
	CreatedAt time.Time `json:"created_at"`
}

// AddWatchlistRequest defines the request body for adding a film to the
// watchlist.
type AddWatchlistRequest struct {
	TmdbID      int    `json:"tmdbId" validate:"required,min=1"`
	FilmTitle   string `json:"filmTitle" validate:"required"`
	ReleaseYear int    `json:"releaseYear" validate:"omitempty,min=1880"`
	PosterURL   string `json:"posterUrl" validate:"omitempty,url"`
}
