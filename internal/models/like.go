package models

import "time"

// Like records that a profile liked a review.
type Like struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	ProfileID uint      `json:"profile_id" gorm:"index;uniqueIndex:idx_like_profile_review"`
	ReviewID  uint      `json:"review_id" gorm:"index;uniqueIndex:idx_like_profile_review"`
	CreatedAt time.Time `json:"created_at"`
}
