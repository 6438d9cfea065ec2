package memory

import (
	"context"
	"testing"

	"github.com/ticketforge/settings/store"
)

type owner string

func (o owner) SettingsID() string  { return string(o) }
func (o owner) Parent() store.Owner { return nil }

func TestSaveDeleteAndHistory(t *testing.T) {
	ctx := context.Background()
	s := New()

	rec := store.NewRecord(owner("evt:1"), "k")
	rec.Value = "v1"
	if err := s.Save(ctx, rec); err != nil {
		t.Fatalf("Save: %v", err)
	}

	next := rec.Clone()
	next.Value = "v2"
	if err := s.Save(ctx, next); err != nil {
		t.Fatalf("Save clone: %v", err)
	}

	cur, err := s.Current(ctx, "evt:1")
	if err != nil {
		t.Fatalf("Current: %v", err)
	}
	if len(cur) != 1 || cur[0].Value != "v2" || cur[0].Version != 2 {
		t.Fatalf("current: %+v", cur)
	}

	if err := s.Delete(ctx, next); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	cur, _ = s.Current(ctx, "evt:1")
	if len(cur) != 0 {
		t.Fatalf("expected empty current after delete, got %+v", cur)
	}

	// delete erases the current record, not the history
	hist := s.History("evt:1", "k")
	if len(hist) != 2 || hist[0].Value != "v1" || hist[1].Value != "v2" {
		t.Fatalf("history: %+v", hist)
	}
}

func TestOwnersAreIsolated(t *testing.T) {
	ctx := context.Background()
	s := New()

	a := store.NewRecord(owner("a"), "k")
	a.Value = "va"
	if err := s.Save(ctx, a); err != nil {
		t.Fatal(err)
	}

	cur, err := s.Current(ctx, "b")
	if err != nil {
		t.Fatalf("Current: %v", err)
	}
	if len(cur) != 0 {
		t.Fatalf("owner b sees foreign records: %+v", cur)
	}
}
