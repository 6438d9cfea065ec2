// Package ristretto adapts dgraph-io/ristretto as a snapshot byte store.
//
// The snapshot store passes each blob's byte length as the Set cost, so
// MaxCost bounds the total cached bytes. The zero Config is usable; its
// defaults size the cache for the snapshot workload of one blob per owner.
package ristretto

import (
	"context"
	"errors"
	"time"

	rc "github.com/dgraph-io/ristretto"
)

const (
	defaultNumCounters = 100_000 // ~10x the expected number of cached owners
	defaultMaxCost     = 64 << 20
	defaultBufferItems = 64
)

type Provider struct {
	c *rc.Cache
}

type Config struct {
	NumCounters int64 // admission counters; 0 => 100k (~10x cached owners)
	MaxCost     int64 // total cached bytes; 0 => 64MiB
	BufferItems int64 // 0 => 64
	Metrics     bool
}

func New(cfg Config) (*Provider, error) {
	if cfg.NumCounters < 0 || cfg.MaxCost < 0 || cfg.BufferItems < 0 {
		return nil, errors.New("ristretto: negative config")
	}
	c, err := rc.NewCache(&rc.Config{
		NumCounters: coalesce(cfg.NumCounters, defaultNumCounters),
		MaxCost:     coalesce(cfg.MaxCost, defaultMaxCost),
		BufferItems: coalesce(cfg.BufferItems, defaultBufferItems),
		Metrics:     cfg.Metrics,
	})
	if err != nil {
		return nil, err
	}
	return &Provider{c: c}, nil
}

func coalesce(v, def int64) int64 {
	if v == 0 {
		return def
	}
	return v
}

func (p *Provider) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := p.c.Get(key)
	if !ok {
		return nil, false, nil
	}
	b, _ := v.([]byte)
	if b == nil {
		// self-heal: drop unexpected entry shape
		p.c.Del(key)
		return nil, false, nil
	}
	return b, true, nil
}

func (p *Provider) Set(_ context.Context, key string, value []byte, cost int64, ttl time.Duration) (bool, error) {
	return p.c.SetWithTTL(key, value, cost, ttl), nil
}

func (p *Provider) Del(_ context.Context, key string) error {
	p.c.Del(key)
	return nil
}

func (p *Provider) Close(_ context.Context) error {
	p.c.Wait()
	p.c.Close()
	return nil
}

// Metrics exposes ristretto metrics to the application (not part of the
// provider contract).
func (p *Provider) Metrics() *rc.Metrics { return p.c.Metrics }
