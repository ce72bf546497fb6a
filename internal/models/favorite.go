package models

import "time"

// Favorite marks a film as one of a profile's favorites.
type Favorite struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	ProfileID uint      `json:"profile_id" gorm:"index;uniqueIndex:idx_favorite_profile_film"`
	FilmID    uint      `json:"film_id" gorm:"index;uniqueIndex:idx_favorite_profile_film"`
	CreatedAt time.Time `json:"created_at"`
}

// AddFavoriteRequest defines the request body for favoriting a film.
type AddFavoriteRequest struct {
	TmdbID      int    `json:"tmdbId" validate:"required,min=1"`
	FilmTitle   string `json:"filmTitle" validate:"required"`
	ReleaseYear int    `json:"releaseYear" validate:"omitempty,min=1880"`
	PosterURL   string `json:"posterUrl" validate:"omitempty,url"`
}
