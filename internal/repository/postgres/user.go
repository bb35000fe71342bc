package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/vmanager/vehicle-manager-server/internal/model"
)

var _ model.UserStore = (*UserRepository)(nil)

type UserRepository struct {
	db *Connection
}

func NewUserRepository(db *Connection) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (model.User, error) {
	var user model.User
	query := `SELECT id, email, hashed_password, is_active
			  FROM users WHERE email = $1`

	err := r.db.QueryRow(ctx, query, email).Scan(
		&user.ID, &user.Email, &user.HashedPassword, &user.IsActive,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	return user, nil
}

func (r *UserRepository) Create(ctx context.Context, user model.User) (model.User, error) {
	query := `INSERT INTO users (email, hashed_password, is_active)
			  VALUES ($1, $2, $3)
			  RETURNING id, email, hashed_password, is_active`

	var savedUser model.User
	err := r.db.QueryRow(ctx, query,
		user.Email, user.HashedPassword, user.IsActive,
	).Scan(
		&savedUser.ID, &savedUser.Email, &savedUser.HashedPassword, &savedUser.IsActive,
	)
	if err != nil {
		if sentinel := uniqueViolation(err); sentinel != nil {
			return model.User{}, sentinel
		}
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	return savedUser, nil
}
