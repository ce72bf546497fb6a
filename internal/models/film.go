package models

import "time"

// Film is a locally cached movie row, created on demand when a user reviews
// or watches a title, or in bulk by the TMDB sync endpoints.
type Film struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	TmdbID      int       `json:"tmdb_id" gorm:"uniqueIndex;not null"`
	Title       string    `json:"title" gorm:"not null"`
	ReleaseYear int       `json:"release_year"`
	Overview    string    `json:"overview"`
	PosterURL   string    `json:"poster_url"`
	BackdropURL string    `json:"backdrop_url"`
	CreatedAt   time.Time `json:"created_at"`
}

// Genre is a movie genre synced from TMDB.
type Genre struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"uniqueIndex;not null"`
	Slug string `json:"slug" gorm:"uniqueIndex;not null"`
}
