package models

import "gorm.io/gorm"

type User struct {
	gorm.Model       `json:"-"`
	ID               uint   `json:"id" gorm:"primaryKey"`
	FirebaseUID      string `json:"firebase_uid" gorm:"uniqueIndex"` // External subject id, immutable after creation
	Email            string `json:"email" gorm:"index"`
	Name             string `json:"name"`
	Username         string `json:"username" gorm:"uniqueIndex"`
	ImageURL         string `json:"image_url,omitempty"`
	Bio              string `json:"bio,omitempty"`
	ProfileCompleted bool   `json:"profile_completed"`
}

// SyncUserRequest carries optional profile hints supplied by the client
// alongside the verified identity token. Empty fields fall back to the
// token's own claims.
type SyncUserRequest struct {
	Email    string `json:"email,omitempty" validate:"omitempty,email"`
	Name     string `json:"name,omitempty" validate:"omitempty,max=100"`
	Username string `json:"username,omitempty" validate:"omitempty,min=1,max=50"`
	ImageURL string `json:"image_url,omitempty" validate:"omitempty,url"`
}

// UpdateProfileRequest is a partial patch; nil fields are left untouched.
type UpdateProfileRequest struct {
	Name             *string `json:"name,omitempty" validate:"omitempty,max=100"`
	Username         *string `json:"username,omitempty" validate:"omitempty,min=1,max=50"`
	Bio              *string `json:"bio,omitempty" validate:"omitempty,max=500"`
	ImageURL         *string `json:"image_url,omitempty" validate:"omitempty,url"`
	ProfileCompleted *bool   `json:"profile_completed,omitempty"`
}
