package settings

// Hooks are lightweight callbacks for high-signal settings events.
// Implementations MUST be cheap and non-blocking; the proxy and the
// snapshot store call them inline (wrap with hooks/async otherwise).
type Hooks interface {
	// An owner's current records were loaded into a proxy cache.
	SnapshotLoaded(ownerID string, records int)

	// A record was persisted (created or cloned) for owner/key.
	RecordSaved(ownerID, key string)

	// A record was deleted for owner/key.
	RecordDeleted(ownerID, key string)

	// The snapshot store dropped a cached blob on read.
	// reason ∈ {"corrupt", "stale", "decode"}
	SnapshotSelfHeal(ownerID, reason string)

	// Generation store errors (snapshot or bump).
	GenError(ownerID string, err error)
}

// NopHooks is the default no-op
type NopHooks struct{}

func (NopHooks) SnapshotLoaded(string, int)      {}
func (NopHooks) RecordSaved(string, string)      {}
func (NopHooks) RecordDeleted(string, string)    {}
func (NopHooks) SnapshotSelfHeal(string, string) {}
func (NopHooks) GenError(string, error)          {}
