package bigcache

import (
	"bytes"
	"context"
	"testing"
)

func TestZeroConfigRoundTrip(t *testing.T) {
	ctx := context.Background()
	p, err := New(Config{})
	if err != nil {
		t.Fatalf("New with zero config: %v", err)
	}
	defer p.Close(ctx)

	blob := bytes.Repeat([]byte("r"), 4<<10) // a plausible encoded record set
	if ok, err := p.Set(ctx, "settings:test:evt:1", blob, int64(len(blob)), 0); err != nil || !ok {
		t.Fatalf("Set: ok=%v err=%v", ok, err)
	}
	got, ok, err := p.Get(ctx, "settings:test:evt:1")
	if err != nil || !ok || !bytes.Equal(got, blob) {
		t.Fatalf("Get: ok=%v err=%v len=%d", ok, err, len(got))
	}

	if err := p.Del(ctx, "settings:test:evt:1"); err != nil {
		t.Fatalf("Del: %v", err)
	}
	if _, ok, _ := p.Get(ctx, "settings:test:evt:1"); ok {
		t.Fatalf("deleted key still readable")
	}
}
