// Package asynchook decouples hook callbacks from the hot path: events are
// queued and replayed by worker goroutines, and dropped when the queue is
// full rather than blocking a settings operation.
//
// usage:
//
//	raw := myHooks{} // your settings.Hooks implementation
//	hooks := asynchook.New(raw, 1, 1000) // 1 worker; queue 1000 events
//	defer hooks.Close()
//
//	proxy, _ := settings.New(settings.Options{
//	    Owner: event,
//	    Store: st,
//	    Hooks: hooks, // or `raw` if you don't want async
//	})
package asynchook

import (
	"sync"

	"github.com/ticketforge/settings"
)

type Hooks struct {
	inner settings.Hooks
	q     chan func()
	wg    sync.WaitGroup
	once  sync.Once
}

var _ settings.Hooks = (*Hooks)(nil)

func New(inner settings.Hooks, workers, qlen int) *Hooks {
	if workers <= 0 {
		workers = 1
	}
	if qlen <= 0 {
		qlen = 1024
	}

	h := &Hooks{inner: inner, q: make(chan func(), qlen)}
	h.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer h.wg.Done()
			for f := range h.q {
				f()
			}
		}()
	}
	return h
}

func (h *Hooks) Close() {
	h.once.Do(func() {
		close(h.q)
		h.wg.Wait()
	})
}

func (h *Hooks) try(f func()) {
	select {
	case h.q <- f:
	default: // drop
	}
}

func (h *Hooks) SnapshotLoaded(owner string, n int) {
	h.try(func() { h.inner.SnapshotLoaded(owner, n) })
}
func (h *Hooks) RecordSaved(owner, key string) {
	h.try(func() { h.inner.RecordSaved(owner, key) })
}
func (h *Hooks) RecordDeleted(owner, key string) {
	h.try(func() { h.inner.RecordDeleted(owner, key) })
}
func (h *Hooks) SnapshotSelfHeal(owner, reason string) {
	h.try(func() { h.inner.SnapshotSelfHeal(owner, reason) })
}
func (h *Hooks) GenError(owner string, err error) {
	h.try(func() { h.inner.GenError(owner, err) })
}
