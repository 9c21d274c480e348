package domain

import (
	"errors"
	"time"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrDuplicateUser      = errors.New("user with this mobile number or email already exists")
	ErrInvalidCredentials = errors.New("invalid identifier or password")
	ErrTokenInvalid       = errors.New("token is invalid or expired")
	ErrValidation         = errors.New("validation failed")
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User is the identity record behind every account. MobileNumber and Email
// are each unique across all users; uniqueness is enforced by the store.
type User struct {
	ID           int64
	Name         string
	MobileNumber string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
