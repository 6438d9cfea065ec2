// Package genstore tracks per-owner generation counters. The snapshot store
// bumps an owner's generation on every record mutation and rejects cached
// snapshot blobs stamped with an older generation.
package genstore

import (
	"context"
	"time"
)

// GenStore abstracts where generations live.
// Use Local (default) for in-process gens, or Redis for multi-replica
// deployments where another process may mutate an owner's settings.
type GenStore interface {
	// Snapshot returns the current generation; missing => 0.
	Snapshot(ctx context.Context, ownerID string) (uint64, error)
	// Bump atomically increments and returns the new generation.
	Bump(ctx context.Context, ownerID string) (uint64, error)
	// Cleanup prunes old metadata if applicable (no-op for Redis).
	Cleanup(retention time.Duration)
	// Close releases resources (no-op ok).
	Close(context.Context) error
}
