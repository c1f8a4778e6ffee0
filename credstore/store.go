// Package credstore persists the session token between process runs.
//
// The store is deliberately dumb: one named slot holding one string,
// with the session manager as its only writer. It performs no retries;
// callers decide whether a storage failure is fatal.
package credstore

import "context"

// Store is durable single-slot persistence for the session token.
type Store interface {
	// Get returns the stored token, or "" when none has been set.
	// An empty slot is not an error; only storage failure is.
	Get(ctx context.Context) (string, error)

	// Set overwrites the stored token. The value is durable before
	// Set returns, with no partial-write state observable.
	Set(ctx context.Context, value string) error

	// Clear removes the stored token. Clearing an empty store is a no-op.
	Clear(ctx context.Context) error
}
