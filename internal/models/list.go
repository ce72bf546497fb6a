package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FilmList is a user-curated list of films stored in MongoDB. Film members
// are TMDB ids; list documents are the one aggregate that lives outside
// Postgres.
type FilmList struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	ProfileID   uint               `json:"profile_id" bson:"profile_id"`
	Name        string             `json:"name" bson:"name"`
	Description string             `json:"description,omitempty" bson:"description,omitempty"`
	Public      bool               `json:"public" bson:"public"`
	FilmTmdbIDs []int              `json:"film_tmdb_ids" bson:"film_tmdb_ids"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at" bson:"updated_at"`
}

// CreateListRequest defines the request body for creating a film list.
type CreateListRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=100"`
	Description string `json:"description" validate:"omitempty,max=1000"`
	Public      *bool  `json:"public"`
}

// AddListFilmRequest defines the request body for adding a film to a list.
type AddListFilmRequest struct {
	TmdbID int `json:"tmdbId" validate:"required,min=1"`
}
