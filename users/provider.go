package users

import (
	"context"
	"net/http"
)

// SessionProvider resolves the authenticated user for an inbound request
// and invalidates sessions during logout sync. It is the only collaborator
// the connect flow suspends on; everything else is pure computation.
type SessionProvider interface {
	// CurrentUser returns the authenticated user for the request, or
	// (nil, nil) when the visitor is anonymous. An error means the
	// provider itself failed, not that the user is missing.
	CurrentUser(ctx context.Context, r *http.Request) (*User, error)

	// InvalidateSessions revokes every local session belonging to the
	// given stable user ID. Idempotent: unknown IDs are not an error.
	InvalidateSessions(ctx context.Context, externalID string) error
}
