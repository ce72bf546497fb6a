package models

import "time"

// Review is a user's rating and write-up for a film. Rating is on the 0-5
// scale in half-star steps.
type Review struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	ProfileID uint      `json:"profile_id" gorm:"index;uniqueIndex:idx_review_profile_film;not null"`
	FilmID    uint      `json:"film_id" gorm:"index;uniqueIndex:idx_review_profile_film;not null"`
	Rating    float64   `json:"rating" gorm:"not null"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateReviewRequest defines the request body for posting a review. The
// film is identified by TMDB id and created locally if missing.
type CreateReviewRequest struct {
	TmdbID      int     `json:"tmdbId" validate:"required,min=1"`
	FilmTitle   string  `json:"filmTitle" validate:"required"`
	ReleaseYear int     `json:"releaseYear" validate:"omitempty,min=1880"`
	PosterURL   string  `json:"posterUrl" validate:"omitempty,url"`
	Rating      float64 `json:"rating" validate:"min=0,max=5"`
	Body        string  `json:"body" validate:"omitempty,max=5000"`
}

// UpdateReviewRequest defines the request body for editing a review.
type UpdateReviewRequest struct {
	Rating *float64 `json:"rating" validate:"omitempty,min=0,max=5"`
	Body   *string  `json:"body" validate:"omitempty,max=5000"`
}

// RatingStats is the aggregate of local review ratings for one film,
// recomputed from review rows on demand.
type RatingStats struct {
	Average float64
	Count   int
}
