// Package redis persists setting records in Redis. Each owner's current
// records live in one hash (field = setting key); superseded versions are
// appended to a per-owner history list when KeepHistory is set.
//
// Keys:
//
//	settings:<ns>:current:<owner>  - hash, field per setting key
//	settings:<ns>:history:<owner>  - list of encoded superseded records
package redis

import (
	"context"
	"errors"

	goredis "github.com/redis/go-redis/v9"

	"github.com/ticketforge/settings/codec"
	"github.com/ticketforge/settings/store"
)

var ErrNilClient = errors.New("redis store: nil client")

type Store struct {
	rdb         goredis.UniversalClient
	ns          string
	codec       codec.Codec[store.Record]
	keepHistory bool
	closeClient bool
}

var _ store.Store = (*Store)(nil)

type Config struct {
	// Required
	Client    goredis.UniversalClient
	Namespace string // e.g. "prod"

	Codec       codec.Codec[store.Record] // nil => Msgpack
	KeepHistory bool                      // append superseded versions to the history list
	CloseClient bool                      // set true only if this store exclusively owns the client
}

func New(cfg Config) (*Store, error) {
	if cfg.Client == nil {
		return nil, ErrNilClient
	}
	if cfg.Namespace == "" {
		return nil, errors.New("redis store: namespace is required")
	}
	c := cfg.Codec
	if c == nil {
		c = codec.Msgpack[store.Record]{}
	}
	return &Store{
		rdb:         cfg.Client,
		ns:          cfg.Namespace,
		codec:       c,
		keepHistory: cfg.KeepHistory,
		closeClient: cfg.CloseClient,
	}, nil
}

func (s *Store) currentKey(owner string) string { return "settings:" + s.ns + ":current:" + owner }
func (s *Store) historyKey(owner string) string { return "settings:" + s.ns + ":history:" + owner }

func (s *Store) Current(ctx context.Context, ownerID string) ([]store.Record, error) {
	fields, err := s.rdb.HGetAll(ctx, s.currentKey(ownerID)).Result()
	if err != nil {
		return nil, err
	}
	out := make([]store.Record, 0, len(fields))
	for _, blob := range fields {
		rec, err := s.codec.Decode([]byte(blob))
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

func (s *Store) Save(ctx context.Context, rec store.Record) error {
	blob, err := s.codec.Encode(rec)
	if err != nil {
		return err
	}
	if !s.keepHistory {
		return s.rdb.HSet(ctx, s.currentKey(rec.OwnerID), rec.Key, blob).Err()
	}
	_, err = s.rdb.Pipelined(ctx, func(p goredis.Pipeliner) error {
		p.HSet(ctx, s.currentKey(rec.OwnerID), rec.Key, blob)
		p.RPush(ctx, s.historyKey(rec.OwnerID), blob)
		return nil
	})
	return err
}

func (s *Store) Delete(ctx context.Context, rec store.Record) error {
	return s.rdb.HDel(ctx, s.currentKey(rec.OwnerID), rec.Key).Err()
}

// History returns every version appended for owner, oldest first. Empty
// when KeepHistory is disabled.
func (s *Store) History(ctx context.Context, ownerID string) ([]store.Record, error) {
	blobs, err := s.rdb.LRange(ctx, s.historyKey(ownerID), 0, -1).Result()
	if err != nil {
		return nil, err
	}
	out := make([]store.Record, 0, len(blobs))
	for _, blob := range blobs {
		rec, err := s.codec.Decode([]byte(blob))
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

// Close releases the underlying redis client only when this store owns it.
func (s *Store) Close(context.Context) error {
	if s.closeClient {
		if err := s.rdb.Close(); err != nil && !errors.Is(err, goredis.ErrClosed) {
			return err
		}
	}
	return nil
}
