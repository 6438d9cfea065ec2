// Package settings resolves configuration values for owners arranged in a
// parent/child hierarchy (e.g. an organizer and the events it owns), with
// per-owner overrides, inherited fallbacks, built-in defaults and typed
// (de)serialization.
//
// Components:
//   - Proxy: per-owner resolver with a lazily loaded, never-invalidated cache
//     of the owner's current records. Lookups walk the ownership chain before
//     consulting defaults; mutations touch only the targeted owner.
//   - Sandbox: a stateless view that prefixes every key with a
//     "{type}_{key}_" scope and delegates to a Proxy.
//   - store.Store: the persistence collaborator (in-memory, Redis, or the
//     snapshot-caching decorator backed by a byte Provider).
//
// Persisted values are always strings. Typed values exist only at the API
// boundary: Set serializes (strings pass through, numbers and booleans take
// their literal form, slices are JSON-encoded) and Get returns a Value whose
// accessors coerce on demand. Booleans follow the literal-"True" convention:
// Bool is true iff the stored string equals "True" exactly.
//
// A Proxy's cache reflects the store at first access; refreshing requires a
// new Proxy. Concurrent use of one Proxy must be serialized by the caller.
package settings
