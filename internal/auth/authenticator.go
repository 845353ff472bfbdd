// Package auth turns credentials into resolved users and session tokens.
// Nothing here knows about groups or schedules; the service layer authorizes
// against the user ID this package resolves.
package auth

import (
	"context"
	"errors"

	"github.com/mkale/rosterd/internal/models"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
	ErrEmailExists        = errors.New("email already registered")
)

// Authenticator resolves credentials to user accounts. The credential format
// is implementation-defined so alternative methods (OAuth, passkeys) can slot
// in without touching the service layer.
type Authenticator interface {
	// Register creates an account for the given email. Fails with
	// ErrEmailExists or ErrWeakPassword when the input is unusable.
	Register(ctx context.Context, email, username, credential string) (*models.User, error)

	// Authenticate resolves email plus credential to a user, or fails with
	// ErrInvalidCredentials without revealing which part was wrong.
	Authenticate(ctx context.Context, email, credential string) (*models.User, error)

	// ValidateCredential checks the credential against the implementation's
	// policy without touching storage.
	ValidateCredential(credential string) error
}
