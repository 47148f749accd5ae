package models

import "time"

// Roles assigned to accounts. New accounts get RoleMember unless their
// email is on the configured admin allowlist.
const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// Auth providers recorded on the user row.
const (
	ProviderGoogle      = "google"
	ProviderCredentials = "credentials"
)

// User is an account. PasswordHash is set only for credentials accounts
// and is never serialized.
type User struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	Name         string     `json:"name"`
	Image        string     `json:"image,omitempty"`
	PasswordHash string     `json:"-"`
	Role         string     `json:"role"`
	Provider     string     `json:"provider"`
	ProviderID   string     `json:"-"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// SignupRequest is the POST /api/auth/signup payload.
type SignupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// SigninRequest is the POST /api/auth/signin payload.
type SigninRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse is returned by both credential endpoints and the OAuth
// callback.
type AuthResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// UpdateProfileRequest is the PUT /api/profile payload.
type UpdateProfileRequest struct {
	Name string `json:"name" binding:"required"`
}

// UserStats summarizes the account population for the admin user list.
type UserStats struct {
	Total           int `json:"total"`
	Admins          int `json:"admins"`
	Members         int `json:"members"`
	ActiveThisMonth int `json:"active_this_month"`
}
