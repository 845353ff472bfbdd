package service

import (
	"errors"
	"fmt"

	"github.com/mkale/rosterd/internal/storage"
)

// Error taxonomy for every service operation. Handlers map these onto HTTP
// status codes with errors.Is; services always reject before mutating, so no
// partial state is ever committed on an error path.
var (
	// ErrNotFound: a referenced group, membership, shift or swap does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized: no resolvable caller identity.
	ErrUnauthorized = errors.New("authentication required")

	// ErrForbidden: the resolved identity lacks the required role.
	ErrForbidden = errors.New("insufficient permissions")

	// ErrInvalidInput: missing or malformed required fields.
	ErrInvalidInput = errors.New("invalid input")

	// ErrConflict: the operation contradicts existing state, e.g. a duplicate
	// join request or re-approving a resolved swap.
	ErrConflict = errors.New("conflict")
)

// notFound translates a storage lookup failure into the service taxonomy,
// passing other storage errors through untouched.
func notFound(err error, what string) error {
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("%w: %s", ErrNotFound, what)
	}
	return err
}
