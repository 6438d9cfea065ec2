package settings

import (
	"context"
	"fmt"

	"github.com/ticketforge/settings/store"
)

// Proxy resolves settings for one owner. It holds a lazily populated cache
// of the owner's current records; the cache is never invalidated, so its
// lifetime equals the proxy's. Not safe for concurrent use.
type Proxy struct {
	owner store.Owner
	st    store.Store
	log   Logger
	hooks Hooks

	loaded bool
	cache  map[string]store.Record

	parent *Proxy // built on first chain walk
}

func newProxy(opts Options) (*Proxy, error) {
	if opts.Owner == nil {
		return nil, fmt.Errorf("settings: owner is required")
	}
	if opts.Store == nil {
		return nil, fmt.Errorf("settings: store is required")
	}
	return &Proxy{
		owner: opts.Owner,
		st:    opts.Store,
		log:   coalesce[Logger](opts.Logger, NopLogger{}),
		hooks: coalesce[Hooks](opts.Hooks, NopHooks{}),
	}, nil
}

// Owner returns the owner this proxy resolves for.
func (p *Proxy) Owner() store.Owner { return p.owner }

// Get resolves key: local cache, then the ownership chain transitively,
// then the built-in default table. A key missing everywhere resolves to an
// absent Value, not an error. Caller defaults layer on via Value.Or.
func (p *Proxy) Get(ctx context.Context, key string) (Value, error) {
	raw, ok, err := p.resolve(ctx, key)
	if err != nil {
		return Value{}, err
	}
	if ok {
		return NewValue(raw), nil
	}
	if def, ok := Default(key); ok {
		return NewValue(def), nil
	}
	return Value{}, nil
}

// GetString is shorthand for Get(...).String().
func (p *Proxy) GetString(ctx context.Context, key string) (string, error) {
	v, err := p.Get(ctx, key)
	if err != nil {
		return "", err
	}
	return v.String(), nil
}

// resolve walks the chain iteratively, child to root, returning the first
// local hit. Defaults are not consulted per level; only the exhausted chain
// falls through. A repeated owner ID means a misconfigured cycle.
func (p *Proxy) resolve(ctx context.Context, key string) (string, bool, error) {
	seen := make(map[string]struct{})
	for cur := p; cur != nil; cur = cur.parentProxy() {
		id := cur.owner.SettingsID()
		if _, dup := seen[id]; dup {
			return "", false, fmt.Errorf("%w: owner %q revisited", ErrOwnerCycle, id)
		}
		seen[id] = struct{}{}

		if err := cur.load(ctx); err != nil {
			return "", false, err
		}
		if rec, ok := cur.cache[key]; ok {
			return rec.Value, true, nil
		}
	}
	return "", false, nil
}

// Set serializes value and persists it under key for this owner only.
// An existing cached record is cloned (the old version stays behind as
// history); otherwise a fresh record is created. The cache entry is
// refreshed to the just-persisted record.
func (p *Proxy) Set(ctx context.Context, key string, value any) error {
	raw, err := Serialize(value)
	if err != nil {
		return err
	}
	if err := p.load(ctx); err != nil {
		return err
	}

	var rec store.Record
	if cur, ok := p.cache[key]; ok {
		rec = cur.Clone()
	} else {
		rec = store.NewRecord(p.owner, key)
	}
	rec.Value = raw

	if err := p.st.Save(ctx, rec); err != nil {
		return err
	}
	p.cache[key] = rec
	p.hooks.RecordSaved(rec.OwnerID, key)
	p.log.Debug("setting saved", Fields{"owner": rec.OwnerID, "key": key, "version": rec.Version})
	return nil
}

// Delete removes the owner's own record for key; absent keys are a no-op.
// Subsequent Gets fall through to parent/default resolution as if the key
// had never been set locally.
func (p *Proxy) Delete(ctx context.Context, key string) error {
	if err := p.load(ctx); err != nil {
		return err
	}
	rec, ok := p.cache[key]
	if !ok {
		return nil
	}
	if err := p.st.Delete(ctx, rec); err != nil {
		return err
	}
	delete(p.cache, key)
	p.hooks.RecordDeleted(rec.OwnerID, key)
	p.log.Debug("setting deleted", Fields{"owner": rec.OwnerID, "key": key})
	return nil
}

// load populates the cache from the store, once.
func (p *Proxy) load(ctx context.Context) error {
	if p.loaded {
		return nil
	}
	recs, err := p.st.Current(ctx, p.owner.SettingsID())
	if err != nil {
		return err
	}
	p.cache = make(map[string]store.Record, len(recs))
	for _, rec := range recs {
		p.cache[rec.Key] = rec
	}
	p.loaded = true
	p.hooks.SnapshotLoaded(p.owner.SettingsID(), len(recs))
	p.log.Debug("settings loaded", Fields{"owner": p.owner.SettingsID(), "records": len(recs)})
	return nil
}

func (p *Proxy) parentProxy() *Proxy {
	if p.parent != nil {
		return p.parent
	}
	po := p.owner.Parent()
	if po == nil {
		return nil
	}
	p.parent = &Proxy{
		owner: po,
		st:    p.st,
		log:   p.log,
		hooks: p.hooks,
	}
	return p.parent
}
