// Package bigcache adapts allegro/bigcache as a snapshot byte store.
//
// BigCache has no per-entry TTL: every entry lives for the global
// LifeWindow, so LifeWindow should match the snapshot store's blob TTL.
// The zero Config is usable; its defaults assume the snapshot workload of
// one blob per owner (few entries, each a whole encoded record set) rather
// than BigCache's many-small-entries defaults.
package bigcache

import (
	"context"
	"time"

	bc "github.com/allegro/bigcache/v3"
)

const (
	defaultLifeWindow = 10 * time.Minute // the snapshot store's default blob TTL
	defaultMaxEntries = 10_000           // owners cached per life window
	defaultEntrySize  = 64 << 10         // a typical encoded record set
)

type Provider struct {
	c *bc.BigCache
}

type Config struct {
	LifeWindow         time.Duration // global entry lifetime; 0 => 10m
	CleanWindow        time.Duration
	MaxEntriesInWindow int // expected owner count per window; 0 => 10k
	MaxEntrySize       int // expected blob size in bytes; 0 => 64KiB
	HardMaxCacheSizeMB int // ~ memory limit; 0 = unlimited
}

func New(cfg Config) (*Provider, error) {
	if cfg.LifeWindow <= 0 {
		cfg.LifeWindow = defaultLifeWindow
	}
	conf := bc.DefaultConfig(cfg.LifeWindow)
	conf.MaxEntriesInWindow = defaultMaxEntries
	conf.MaxEntrySize = defaultEntrySize
	if cfg.CleanWindow > 0 {
		conf.CleanWindow = cfg.CleanWindow
	}
	if cfg.MaxEntriesInWindow > 0 {
		conf.MaxEntriesInWindow = cfg.MaxEntriesInWindow
	}
	if cfg.MaxEntrySize > 0 {
		conf.MaxEntrySize = cfg.MaxEntrySize
	}
	if cfg.HardMaxCacheSizeMB > 0 {
		conf.HardMaxCacheSize = cfg.HardMaxCacheSizeMB
	}
	c, err := bc.NewBigCache(conf)
	if err != nil {
		return nil, err
	}
	return &Provider{c: c}, nil
}

func (p *Provider) Get(_ context.Context, key string) ([]byte, bool, error) {
	b, err := p.c.Get(key)
	if err == bc.ErrEntryNotFound {
		return nil, false, nil
	}
	return b, err == nil, err
}

func (p *Provider) Set(_ context.Context, key string, value []byte, _ int64, _ time.Duration) (bool, error) {
	// per-entry TTL unsupported; the global LifeWindow applies
	return true, p.c.Set(key, value)
}

func (p *Provider) Del(_ context.Context, key string) error {
	return p.c.Delete(key)
}

func (p *Provider) Close(_ context.Context) error {
	return p.c.Close()
}
