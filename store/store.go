// Package store defines the persistence collaborators behind the settings
// proxy: the Owner hierarchy handle, the versioned Record, and the Store
// contract implemented by the memory, redis and snapshot backends.
//
// Implementations MUST be value-transparent: Current must return records
// byte-for-byte as they were passed to Save (no re-encoding of the Value
// string, no mutation). A Store never interprets record values.
package store

import (
	"context"

	"github.com/google/uuid"
)

// Owner is an opaque handle to a domain object that owns settings. Parent
// returns the inheritance link, or nil for a root owner.
type Owner interface {
	SettingsID() string
	Parent() Owner
}

// Record is one persisted setting. Value holds the serialized string form.
// Records follow clone-before-mutate: updating a key persists a clone with
// a fresh ID and a bumped version, preserving the old record as history.
type Record struct {
	ID      string `json:"id" msgpack:"id"`
	OwnerID string `json:"owner_id" msgpack:"owner_id"`
	Key     string `json:"key" msgpack:"key"`
	Value   string `json:"value" msgpack:"value"`
	Version int    `json:"version" msgpack:"version"`
}

// NewRecord constructs a fresh version-1 record scoped to owner.
func NewRecord(owner Owner, key string) Record {
	return Record{
		ID:      uuid.NewString(),
		OwnerID: owner.SettingsID(),
		Key:     key,
		Version: 1,
	}
}

// Clone returns a copy carrying a new identity and the next version. The
// original keeps its ID so backends can retain it as history.
func (r Record) Clone() Record {
	c := r
	c.ID = uuid.NewString()
	c.Version++
	return c
}

// Store persists setting records. Current enumerates the currently-active
// records of one owner; the proxy calls it at most once per instance.
// Save and Delete are single-record synchronous writes; failures propagate
// to the caller unchanged, no retries.
type Store interface {
	Current(ctx context.Context, ownerID string) ([]Record, error)
	Save(ctx context.Context, rec Record) error
	Delete(ctx context.Context, rec Record) error
	Close(ctx context.Context) error
}
