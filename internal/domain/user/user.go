package user

import (
	"errors"
	"time"
)

// User is a tenant/operator account. The password hash stays in the JSON
// representation because the login response has always returned the stored
// record as-is and existing clients depend on its shape.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password"`
	Name         string    `json:"name"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

var (
	ErrNotFound   = errors.New("user not found")
	ErrEmailTaken = errors.New("email already in use")
)

// RegisterRequest uses pointer fields so a key that is present but empty
// passes the required check while a missing key fails it. Empty strings have
// always been accepted on registration.
type RegisterRequest struct {
	Username *string `json:"username" binding:"required"`
	Email    *string `json:"email" binding:"required"`
	Password *string `json:"password" binding:"required"`
	Name     *string `json:"name" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}
