package dto

import "time"

// ── user ──

// UserQuery identifies the caller on GET routes.
type UserQuery struct {
	UserID string `form:"userId"`
}

// UpdateProfileRequest name / email change
type UpdateProfileRequest struct {
	UserID string  `json:"userId"`
	Name   *string `json:"name"  binding:"omitempty,min=1,max=200"`
	Email  *string `json:"email" binding:"omitempty,email,max=255"`
}

// UpdateAcademicRequest major / minor change. Empty strings clear a field.
type UpdateAcademicRequest struct {
	UserID string  `json:"userId"`
	Major  *string `json:"major" binding:"omitempty,max=120"`
	Minor  *string `json:"minor" binding:"omitempty,max=120"`
}

// UpdatePasswordRequest password change
type UpdatePasswordRequest struct {
	UserID   string `json:"userId"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

// UserResponse profile without credentials
type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	Major     string    `json:"major"`
	Minor     string    `json:"minor"`
	CreatedAt time.Time `json:"createdAt"`
}
