package models

import "time"

// Profile is the social identity bound 1:1 to a User account.
type Profile struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	UserID      uint      `json:"user_id" gorm:"uniqueIndex;not null"`
	DisplayName string    `json:"display_name" gorm:"not null"`
	Bio         string    `json:"bio"`
	AvatarURL   string    `json:"avatar_url"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// UpdateProfileRequest defines the request body for editing the caller's own
// profile.
type UpdateProfileRequest struct {
	DisplayName string `json:"displayName" validate:"omitempty,min=2,max=50"`
	Bio         string `json:"bio" validate:"omitempty,max=500"`
	AvatarURL   string `json:"avatarUrl" validate:"omitempty,url"`
}

// ProfileSummary is the public view of a profile used in follower lists and
// feed items.
type ProfileSummary struct {
	ID          uint   `json:"id"`
	DisplayName string `json:"display_name"`
	AvatarURL   string `json:"avatar_url"`
}

// Summary reduces a profile to its public view.
func (p *Profile) Summary() ProfileSummary {
	return ProfileSummary{ID: p.ID, DisplayName: p.DisplayName, AvatarURL: p.AvatarURL}
}
