// Package snapshot decorates a Store with a read-through cache of each
// owner's full current-record set, kept as one encoded blob in a byte
// Provider. Blobs are stamped with a per-owner generation; Save and Delete
// write through to the inner store and bump the generation, so a blob
// written before the last mutation is rejected on read. Corrupt or stale
// blobs are deleted (self-heal) and the read falls back to the inner store.
package snapshot

import (
	"context"
	"errors"
	"time"

	"github.com/ticketforge/settings"
	"github.com/ticketforge/settings/codec"
	"github.com/ticketforge/settings/genstore"
	"github.com/ticketforge/settings/internal/wire"
	"github.com/ticketforge/settings/provider"
	"github.com/ticketforge/settings/store"
)

const (
	defaultTTL       = 10 * time.Minute
	defaultSweep     = time.Hour
	defaultRetention = 30 * 24 * time.Hour
)

type Store struct {
	ns    string
	inner store.Store
	prov  provider.Provider
	codec codec.Codec[[]store.Record]
	gens  genstore.GenStore
	ttl   time.Duration
	log   settings.Logger
	hooks settings.Hooks

	ownsGens bool
}

var _ store.Store = (*Store)(nil)

// Options tune the snapshot store. Namespace, Inner and Provider are
// required; others have sensible defaults.
type Options struct {
	// Required
	Namespace string // isolates blob and generation keys, e.g. "prod"
	Inner     store.Store
	Provider  provider.Provider

	Codec    codec.Codec[[]store.Record] // nil => Msgpack
	GenStore genstore.GenStore           // nil => genstore.Local (in-process)
	TTL      time.Duration               // blob TTL; 0 => 10m
	Logger   settings.Logger             // nil => NopLogger
	Hooks    settings.Hooks              // nil => NopHooks
}

func New(opts Options) (*Store, error) {
	if opts.Namespace == "" {
		return nil, errors.New("snapshot: namespace is required")
	}
	if opts.Inner == nil {
		return nil, errors.New("snapshot: inner store is required")
	}
	if opts.Provider == nil {
		return nil, errors.New("snapshot: provider is required")
	}

	s := &Store{
		ns:    opts.Namespace,
		inner: opts.Inner,
		prov:  opts.Provider,
		ttl:   opts.TTL,
		log:   opts.Logger,
		hooks: opts.Hooks,
	}
	if s.ttl == 0 {
		s.ttl = defaultTTL
	}
	if s.log == nil {
		s.log = settings.NopLogger{}
	}
	if s.hooks == nil {
		s.hooks = settings.NopHooks{}
	}
	if opts.Codec != nil {
		s.codec = opts.Codec
	} else {
		s.codec = codec.Msgpack[[]store.Record]{}
	}
	if opts.GenStore != nil {
		s.gens = opts.GenStore
	} else {
		s.gens = genstore.NewLocal(defaultSweep, defaultRetention)
		s.ownsGens = true
	}
	return s, nil
}

func (s *Store) blobKey(ownerID string) string {
	return "settings:" + s.ns + ":" + ownerID
}

// Current serves from the cached blob when its generation matches the
// owner's current generation; otherwise it loads from the inner store and
// seeds the cache with a CAS-style skip when the owner changed mid-load.
func (s *Store) Current(ctx context.Context, ownerID string) ([]store.Record, error) {
	k := s.blobKey(ownerID)
	obs := s.snapshotGen(ctx, ownerID)

	if raw, ok, err := s.prov.Get(ctx, k); err == nil && ok {
		if recs, ok := s.decodeBlob(ctx, ownerID, k, raw, obs); ok {
			return recs, nil
		}
	}

	recs, err := s.inner.Current(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	// seed cache; skip when the generation moved during the load
	if payload, err := s.codec.Encode(recs); err == nil {
		if s.snapshotGen(ctx, ownerID) == obs {
			blob := wire.Encode(obs, payload)
			if ok, err := s.prov.Set(ctx, k, blob, int64(len(blob)), s.ttl); err != nil || !ok {
				s.log.Debug("snapshot seed rejected", settings.Fields{"owner": ownerID, "err": err})
			}
		}
	}
	return recs, nil
}

func (s *Store) decodeBlob(ctx context.Context, ownerID, k string, raw []byte, obs uint64) ([]store.Record, bool) {
	gen, payload, err := wire.Decode(raw)
	if err != nil {
		s.selfHeal(ctx, ownerID, k, "corrupt")
		return nil, false
	}
	if gen != obs {
		s.selfHeal(ctx, ownerID, k, "stale")
		return nil, false
	}
	recs, err := s.codec.Decode(payload)
	if err != nil {
		s.selfHeal(ctx, ownerID, k, "decode")
		return nil, false
	}
	return recs, true
}

func (s *Store) selfHeal(ctx context.Context, ownerID, k, reason string) {
	_ = s.prov.Del(ctx, k)
	s.hooks.SnapshotSelfHeal(ownerID, reason)
	s.log.Warn("snapshot self-heal", settings.Fields{"owner": ownerID, "reason": reason})
}

// Save writes through and invalidates the owner's snapshot.
func (s *Store) Save(ctx context.Context, rec store.Record) error {
	if err := s.inner.Save(ctx, rec); err != nil {
		return err
	}
	s.invalidate(ctx, rec.OwnerID)
	return nil
}

// Delete writes through and invalidates the owner's snapshot.
func (s *Store) Delete(ctx context.Context, rec store.Record) error {
	if err := s.inner.Delete(ctx, rec); err != nil {
		return err
	}
	s.invalidate(ctx, rec.OwnerID)
	return nil
}

func (s *Store) invalidate(ctx context.Context, ownerID string) {
	if _, err := s.gens.Bump(ctx, ownerID); err != nil {
		s.hooks.GenError(ownerID, err)
		s.log.Error("gen bump error", settings.Fields{"owner": ownerID, "err": err})
	}
	_ = s.prov.Del(ctx, s.blobKey(ownerID))
}

func (s *Store) snapshotGen(ctx context.Context, ownerID string) uint64 {
	g, err := s.gens.Snapshot(ctx, ownerID)
	if err != nil {
		// Conservative: treat as 0 so seeds will skip; reads self-heal.
		s.hooks.GenError(ownerID, err)
		s.log.Warn("gen snapshot error", settings.Fields{"owner": ownerID, "err": err})
		return 0
	}
	return g
}

// Close releases the generation store (when owned) and the provider, then
// the inner store.
func (s *Store) Close(ctx context.Context) error {
	if s.ownsGens {
		_ = s.gens.Close(ctx)
	}
	if err := s.prov.Close(ctx); err != nil {
		return err
	}
	return s.inner.Close(ctx)
}
