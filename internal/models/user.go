package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleStaff    Role = "staff"
	RoleCustomer Role = "customer"
)

// Account holds the credentials of a user. The id is shared with the profile.
type Account struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

type Profile struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// for registration
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	FullName string `json:"full_name" validate:"required,max=100"`
	Phone    string `json:"phone,omitempty" validate:"omitempty,max=30"`
	Address  string `json:"address,omitempty" validate:"omitempty,max=500"`
}

// for login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// for login response
type LoginResponse struct {
	Token     string   `json:"token"`
	ExpiresIn int      `json:"expires_in"`
	Profile   *Profile `json:"profile"`
	Redirect  string   `json:"redirect"`
}

type UpdateProfileRequest struct {
	FullName *string `json:"full_name,omitempty" validate:"omitempty,min=1,max=100"`
	Phone    *string `json:"phone,omitempty" validate:"omitempty,max=30"`
	Address  *string `json:"address,omitempty" validate:"omitempty,max=500"`
}

type UpdateRoleRequest struct {
	Role Role `json:"role" validate:"required,oneof=admin staff customer"`
}

type ChangePasswordRequest struct {
	Password string `json:"password" validate:"required,min=6"`
}

type PasswordResetRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type PasswordResetConfirmRequest struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
}

type ProfileListParams struct {
	Role    Role
	Search  string
	SortBy  string
	SortAsc *bool
}

type UserStats struct {
	Total int          `json:"total"`
	Roles map[Role]int `json:"roles"`
}

// JWT claims structure
type Claims struct {
	UserID  uuid.UUID `json:"user_id"`
	Email   string    `json:"email"`
	Purpose string    `json:"purpose,omitempty"`
	jwt.RegisteredClaims
}

const (
	TokenPurposeSession = "session"
	TokenPurposeReset   = "password_reset"
)
