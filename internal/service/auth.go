package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/vmanager/vehicle-manager-server/internal/apierrors"
	"github.com/vmanager/vehicle-manager-server/internal/logger"
	"github.com/vmanager/vehicle-manager-server/internal/model"
)

// Auth orchestrates registration, login and session resolution.
type Auth struct {
	userStore    model.UserStore
	hasher       model.PasswordHasher
	tokenManager model.TokenManager
	logger       *logger.Logger
}

func NewAuth(
	userStore model.UserStore,
	hasher model.PasswordHasher,
	tokenManager model.TokenManager,
	logger *logger.Logger,
) *Auth {
	return &Auth{
		userStore:    userStore,
		hasher:       hasher,
		tokenManager: tokenManager,
		logger:       logger,
	}
}

// Register creates a new active user with a hashed password. A duplicate
// email fails whether caught by the pre-check or by the store's unique
// constraint on a concurrent registration.
func (a *Auth) Register(ctx context.Context, email, password string) (model.User, error) {
	a.logger.Debug("Auth service: registering user", "email", email)

	_, err := a.userStore.GetByEmail(ctx, email)
	if err == nil {
		a.logger.Info("Auth service: email already registered", "email", email)
		return model.User{}, apierrors.NewErrEmailTaken()
	}
	if !errors.Is(err, model.ErrNotFound) {
		return model.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	hash, err := a.hasher.Hash(password)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := a.userStore.Create(ctx, model.User{
		Email:          email,
		HashedPassword: hash,
		IsActive:       true,
	})
	if errors.Is(err, model.ErrEmailTaken) {
		return model.User{}, apierrors.NewErrEmailTaken()
	}
	if err != nil {
		a.logger.Error("Auth service: failed to create user",
			"email", email,
			"error", err.Error())
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	a.logger.Info("Auth service: user registered", "email", email, "user_id", user.ID)

	return user, nil
}

// Login verifies the credentials and issues a bearer token with the user
// email as its subject. Unknown email, wrong password and a deactivated
// account all return the same error so account existence is not leaked.
func (a *Auth) Login(ctx context.Context, email, password string) (string, error) {
	a.logger.Debug("Auth service: logging in user", "email", email)

	user, err := a.userStore.GetByEmail(ctx, email)
	if errors.Is(err, model.ErrNotFound) {
		return "", apierrors.NewErrInvalidCredentials()
	}
	if err != nil {
		return "", fmt.Errorf("failed to get user by email: %w", err)
	}

	if !user.IsActive {
		a.logger.Info("Auth service: login attempt for inactive account", "email", email)
		return "", apierrors.NewErrInvalidCredentials()
	}

	if !a.hasher.Verify(password, user.HashedPassword) {
		return "", apierrors.NewErrInvalidCredentials()
	}

	token, err := a.tokenManager.Generate(user.Email)
	if err != nil {
		return "", fmt.Errorf("failed to issue token: %w", err)
	}

	a.logger.Info("Auth service: user logged in", "email", email, "user_id", user.ID)

	return token, nil
}

// Resolve verifies a bearer token and returns the user it represents.
// Tokens stay valid for their full lifetime; the active flag is not
// re-checked here.
func (a *Auth) Resolve(ctx context.Context, token string) (model.User, error) {
	if token == "" {
		return model.User{}, apierrors.NewErrNotAuthenticated()
	}

	subject, err := a.tokenManager.Parse(token)
	if err != nil {
		return model.User{}, apierrors.NewErrInvalidToken()
	}

	user, err := a.userStore.GetByEmail(ctx, subject)
	if errors.Is(err, model.ErrNotFound) {
		return model.User{}, apierrors.NewErrInvalidToken()
	}
	if err != nil {
		return model.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	return user, nil
}
