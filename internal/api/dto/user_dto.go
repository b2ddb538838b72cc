package dto

import "time"

// LoginRequest payload for the login view.
type LoginRequest struct {
	Username string `json:"username" form:"username" validate:"required,min=3"`
	Password string `json:"password" form:"password" validate:"required,min=8"`
}

// RegisterRequest payload for the public sign-up form on the login view.
type RegisterRequest struct {
	Name     string `json:"name" form:"name" validate:"required,min=3"`
	Username string `json:"username" form:"username" validate:"required,min=3"`
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required,min=8"`
}

// SessionResponse describes the terminal session to views.
type SessionResponse struct {
	State         string     `json:"state"`
	Authenticated bool       `json:"authenticated"`
	Subject       string     `json:"subject,omitempty"`
	Role          string     `json:"role,omitempty"`
	ExpiresAt     *time.Time `json:"expires_at,omitempty"`
}

// UserCreateRequest payload for new staff accounts.
type UserCreateRequest struct {
	Name     string `json:"name" validate:"required"`
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"required,staffrole"`
}

// UserUpdateRequest payload for edits; an empty password keeps the current one.
type UserUpdateRequest struct {
	ID       string `json:"id" validate:"required"`
	Name     string `json:"name" validate:"required"`
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"omitempty,min=8"`
	Role     string `json:"role" validate:"required,staffrole"`
}
