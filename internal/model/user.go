package model

import (
	"context"
)

// UserStore defines persistence operations for users.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (User, error)
	Create(ctx context.Context, user User) (User, error)
}

// User represents a stored user with authentication material.
// HashedPassword is opaque and never leaves the service layer.
type User struct {
	ID             int64
	Email          string
	HashedPassword string
	IsActive       bool
}
