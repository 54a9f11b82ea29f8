package session

import (
	"context"
	"time"
)

// Store is the key/value store holding the user record for each session
// token. Implementations must treat a missing token as a normal condition
// (found=false, no error), so that callers can distinguish "no session"
// from a store failure.
//
// The gateway ships two implementations: a redis-backed one for production
// and an in-memory one for tests and single-node deployments.
type Store interface {
	// Save writes the record under the token, replacing any previous value,
	// with the given time-to-live.
	Save(ctx context.Context, token string, rec Record, ttl time.Duration) error

	// Load reads the record stored under the token. A malformed stored
	// value is reported as an error with found=false.
	Load(ctx context.Context, token string) (rec Record, found bool, err error)

	// Delete removes the record stored under the token. Deleting a missing
	// token is not an error.
	Delete(ctx context.Context, token string) error
}
