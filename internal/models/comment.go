package models

import "time"

// Comment is a reply to a review.
type Comment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	ProfileID uint      `json:"profile_id" gorm:"index;not null"`
	ReviewID  uint      `json:"review_id" gorm:"index;not null"`
	Body      string    `json:"body" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateCommentRequest defines the request body for commenting on a review.
type CreateCommentRequest struct {
	ReviewID uint   `json:"reviewId" validate:"required,min=1"`
	Body     string `json:"body" validate:"required,min=1,max=2000"`
}
