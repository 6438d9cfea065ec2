package snapshot

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ticketforge/settings"
	"github.com/ticketforge/settings/genstore"
	"github.com/ticketforge/settings/internal/wire"
	"github.com/ticketforge/settings/store"
	"github.com/ticketforge/settings/store/memory"
)

type memEntry struct {
	v   []byte
	exp time.Time // zero => no TTL
}

type memProvider struct {
	m map[string]memEntry
}

func newMemProvider() *memProvider { return &memProvider{m: make(map[string]memEntry)} }

func (p *memProvider) Get(_ context.Context, key string) ([]byte, bool, error) {
	e, ok := p.m[key]
	if !ok {
		return nil, false, nil
	}
	if !e.exp.IsZero() && time.Now().After(e.exp) {
		delete(p.m, key)
		return nil, false, nil
	}
	return e.v, true, nil
}

func (p *memProvider) Set(_ context.Context, key string, value []byte, _ int64, ttl time.Duration) (bool, error) {
	var exp time.Time
	if ttl > 0 {
		exp = time.Now().Add(ttl)
	}
	p.m[key] = memEntry{v: value, exp: exp}
	return true, nil
}

func (p *memProvider) Del(_ context.Context, key string) error { delete(p.m, key); return nil }
func (p *memProvider) Close(_ context.Context) error           { return nil }

// errProvider fails every provider operation.
type errProvider struct{ err error }

func (p *errProvider) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, p.err
}
func (p *errProvider) Set(context.Context, string, []byte, int64, time.Duration) (bool, error) {
	return false, p.err
}
func (p *errProvider) Del(context.Context, string) error { return p.err }
func (p *errProvider) Close(context.Context) error       { return nil }

// failingGenStore fails snapshots and bumps.
type failingGenStore struct{ err error }

func (g *failingGenStore) Snapshot(context.Context, string) (uint64, error) { return 0, g.err }
func (g *failingGenStore) Bump(context.Context, string) (uint64, error)     { return 0, g.err }
func (g *failingGenStore) Cleanup(time.Duration)                            {}
func (g *failingGenStore) Close(context.Context) error                      { return nil }

var _ genstore.GenStore = (*failingGenStore)(nil)

// hookRecorder counts the failure callbacks.
type hookRecorder struct {
	settings.NopHooks
	genErrs   int
	selfHeals int
}

func (h *hookRecorder) GenError(string, error)          { h.genErrs++ }
func (h *hookRecorder) SnapshotSelfHeal(string, string) { h.selfHeals++ }

type owner string

func (o owner) SettingsID() string  { return string(o) }
func (o owner) Parent() store.Owner { return nil }

type countingStore struct {
	store.Store
	loads int
}

func (c *countingStore) Current(ctx context.Context, ownerID string) ([]store.Record, error) {
	c.loads++
	return c.Store.Current(ctx, ownerID)
}

func newTestStore(t *testing.T, inner store.Store, mp *memProvider) *Store {
	t.Helper()
	s, err := New(Options{Namespace: "test", Inner: inner, Provider: mp})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func seed(t *testing.T, st store.Store, o owner, key, value string) store.Record {
	t.Helper()
	rec := store.NewRecord(o, key)
	rec.Value = value
	if err := st.Save(context.Background(), rec); err != nil {
		t.Fatalf("Save: %v", err)
	}
	return rec
}

func TestCurrentServesFromBlob(t *testing.T) {
	ctx := context.Background()
	cs := &countingStore{Store: memory.New()}
	mp := newMemProvider()
	s := newTestStore(t, cs, mp)
	defer s.Close(ctx)

	seed(t, s, owner("evt:1"), "k", "v")
	loadsAfterSeed := cs.loads

	// first read populates the blob, second is served from it
	first, err := s.Current(ctx, "evt:1")
	if err != nil || len(first) != 1 {
		t.Fatalf("Current: %v %v", first, err)
	}
	second, err := s.Current(ctx, "evt:1")
	if err != nil || len(second) != 1 || second[0].Value != "v" {
		t.Fatalf("cached Current: %v %v", second, err)
	}
	if cs.loads != loadsAfterSeed+1 {
		t.Fatalf("inner loads: got %d want %d", cs.loads, loadsAfterSeed+1)
	}
}

func TestMutationInvalidatesBlob(t *testing.T) {
	ctx := context.Background()
	cs := &countingStore{Store: memory.New()}
	mp := newMemProvider()
	s := newTestStore(t, cs, mp)
	defer s.Close(ctx)

	rec := seed(t, s, owner("evt:1"), "k", "v1")
	if _, err := s.Current(ctx, "evt:1"); err != nil { // populate blob
		t.Fatal(err)
	}

	upd := rec.Clone()
	upd.Value = "v2"
	if err := s.Save(ctx, upd); err != nil {
		t.Fatalf("Save: %v", err)
	}
	recs, err := s.Current(ctx, "evt:1")
	if err != nil || len(recs) != 1 || recs[0].Value != "v2" {
		t.Fatalf("after save: %v %v", recs, err)
	}

	if err := s.Delete(ctx, upd); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	recs, err = s.Current(ctx, "evt:1")
	if err != nil || len(recs) != 0 {
		t.Fatalf("after delete: %v %v", recs, err)
	}
}

func TestStaleBlobIsRejected(t *testing.T) {
	ctx := context.Background()
	inner := memory.New()
	mp := newMemProvider()
	s := newTestStore(t, inner, mp)
	defer s.Close(ctx)

	seed(t, s, owner("evt:1"), "k", "fresh")

	// plant a well-formed blob stamped with an outdated generation
	old, err := s.codec.Encode([]store.Record{{OwnerID: "evt:1", Key: "k", Value: "stale"}})
	if err != nil {
		t.Fatal(err)
	}
	gen := s.snapshotGen(ctx, "evt:1")
	mp.m[s.blobKey("evt:1")] = memEntry{v: wire.Encode(gen+1, old)}

	recs, err := s.Current(ctx, "evt:1")
	if err != nil {
		t.Fatalf("Current: %v", err)
	}
	if len(recs) != 1 || recs[0].Value != "fresh" {
		t.Fatalf("stale blob served: %+v", recs)
	}
}

func TestCorruptBlobSelfHeals(t *testing.T) {
	ctx := context.Background()
	inner := memory.New()
	mp := newMemProvider()
	s := newTestStore(t, inner, mp)
	defer s.Close(ctx)

	seed(t, s, owner("evt:1"), "k", "v")
	k := s.blobKey("evt:1")
	mp.m[k] = memEntry{v: []byte("garbage")}

	recs, err := s.Current(ctx, "evt:1")
	if err != nil || len(recs) != 1 || recs[0].Value != "v" {
		t.Fatalf("fallback after corrupt blob: %v %v", recs, err)
	}
	// the corrupt entry was replaced by a valid reseed
	if raw, ok := mp.m[k]; ok {
		if _, _, err := wire.Decode(raw.v); err != nil {
			t.Fatalf("corrupt blob left behind")
		}
	}
}

func TestGenStoreFailureDegradesGracefully(t *testing.T) {
	ctx := context.Background()
	rec := &hookRecorder{}
	s, err := New(Options{
		Namespace: "test",
		Inner:     memory.New(),
		Provider:  newMemProvider(),
		GenStore:  &failingGenStore{err: errors.New("gen store down")},
		Hooks:     rec,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer s.Close(ctx)

	// writes must still land in the inner store
	seed(t, s, owner("evt:1"), "k", "v")
	if rec.genErrs == 0 {
		t.Fatalf("bump failure not reported")
	}

	recs, err := s.Current(ctx, "evt:1")
	if err != nil || len(recs) != 1 || recs[0].Value != "v" {
		t.Fatalf("Current with broken gen store: %v %v", recs, err)
	}
}

func TestProviderFailureFallsBackToInner(t *testing.T) {
	ctx := context.Background()
	s, err := New(Options{
		Namespace: "test",
		Inner:     memory.New(),
		Provider:  &errProvider{err: errors.New("provider down")},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer s.Close(ctx)

	seed(t, s, owner("evt:1"), "k", "v")

	// every read misses the cache and is served by the inner store
	for i := 0; i < 2; i++ {
		recs, err := s.Current(ctx, "evt:1")
		if err != nil || len(recs) != 1 || recs[0].Value != "v" {
			t.Fatalf("Current with broken provider: %v %v", recs, err)
		}
	}
}
