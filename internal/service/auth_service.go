package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mkale/rosterd/internal/auth"
	"github.com/mkale/rosterd/internal/models"
	"github.com/mkale/rosterd/internal/storage"
)

// AuthService is the identity boundary around the scheduling core: it only
// turns credentials into a resolved user ID plus a session token. The core
// services never authenticate, they authorize against that resolved ID.
type AuthService struct {
	authenticator auth.Authenticator
	jwtManager    *auth.JWTManager
	store         storage.Store
}

// NewAuthService creates a new authentication service.
func NewAuthService(authenticator auth.Authenticator, jwtManager *auth.JWTManager, store storage.Store) *AuthService {
	return &AuthService{
		authenticator: authenticator,
		jwtManager:    jwtManager,
		store:         store,
	}
}

// Register creates a new user account and returns it with a session token.
func (s *AuthService) Register(ctx context.Context, email, username, password string) (*models.User, string, error) {
	if email == "" || username == "" {
		return nil, "", fmt.Errorf("%w: email and username are required", ErrInvalidInput)
	}

	user, err := s.authenticator.Register(ctx, email, username, password)
	if err != nil {
		slog.Warn("registration failed", "email", email, "error", err)
		switch {
		case errors.Is(err, auth.ErrEmailExists):
			return nil, "", fmt.Errorf("%w: %v", ErrConflict, err)
		case errors.Is(err, auth.ErrWeakPassword):
			return nil, "", fmt.Errorf("%w: %v", ErrInvalidInput, err)
		default:
			return nil, "", err
		}
	}

	token, err := s.jwtManager.Generate(user)
	if err != nil {
		return nil, "", err
	}

	slog.Info("user registered", "user_id", user.ID, "email", user.Email)
	return user, token, nil
}

// Login authenticates a user and returns them with a session token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	if email == "" || password == "" {
		return nil, "", fmt.Errorf("%w: email and password are required", ErrInvalidInput)
	}

	user, err := s.authenticator.Authenticate(ctx, email, password)
	if err != nil {
		slog.Warn("login failed", "email", email)
		return nil, "", fmt.Errorf("%w: %v", ErrUnauthorized, auth.ErrInvalidCredentials)
	}

	token, err := s.jwtManager.Generate(user)
	if err != nil {
		return nil, "", err
	}

	slog.Info("user logged in", "user_id", user.ID)
	return user, token, nil
}

// CurrentUser returns the account for a resolved caller identity.
func (s *AuthService) CurrentUser(ctx context.Context, userID string) (*models.User, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: no caller identity", ErrUnauthorized)
	}
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, notFound(err, "user does not exist")
	}
	return user, nil
}
