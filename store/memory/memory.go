// Package memory provides an in-process Store, useful for tests and for
// embedding without external infrastructure. Superseded record versions are
// retained and retrievable through History.
package memory

import (
	"context"
	"sync"

	"github.com/ticketforge/settings/store"
)

type Store struct {
	mu      sync.RWMutex
	current map[string]map[string]store.Record // ownerID -> key -> record
	history map[string][]store.Record          // ownerID -> saves in order
}

var _ store.Store = (*Store)(nil)

func New() *Store {
	return &Store{
		current: make(map[string]map[string]store.Record),
		history: make(map[string][]store.Record),
	}
}

func (s *Store) Current(_ context.Context, ownerID string) ([]store.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	recs := s.current[ownerID]
	out := make([]store.Record, 0, len(recs))
	for _, rec := range recs {
		out = append(out, rec)
	}
	return out, nil
}

func (s *Store) Save(_ context.Context, rec store.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	byKey := s.current[rec.OwnerID]
	if byKey == nil {
		byKey = make(map[string]store.Record)
		s.current[rec.OwnerID] = byKey
	}
	byKey[rec.Key] = rec
	s.history[rec.OwnerID] = append(s.history[rec.OwnerID], rec)
	return nil
}

func (s *Store) Delete(_ context.Context, rec store.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if byKey := s.current[rec.OwnerID]; byKey != nil {
		delete(byKey, rec.Key)
	}
	return nil
}

// History returns every version ever saved for owner/key, oldest first.
// Deletes do not erase history.
func (s *Store) History(ownerID, key string) []store.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []store.Record
	for _, rec := range s.history[ownerID] {
		if rec.Key == key {
			out = append(out, rec)
		}
	}
	return out
}

func (s *Store) Close(_ context.Context) error { return nil }
