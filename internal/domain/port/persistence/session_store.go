package persistence

import (
	"context"
	"time"
)

// SessionStore keeps live admin sessions so tokens can be revoked before they expire
type SessionStore interface {
	// Save stores subject under sessionID for ttl
	Save(ctx context.Context, sessionID, subject string, ttl time.Duration) error

	// Get returns the subject of a live session
	//
	// Possible errors:
	// - ErrInvalidToken: If the session does not exist or expired
	Get(ctx context.Context, sessionID string) (string, error)

	// Delete revokes a session; deleting an unknown session is not an error
	Delete(ctx context.Context, sessionID string) error
}
