// Package redisstore is a keychain.Store backed by Redis, for hosts that keep
// vendor sessions on the server side.
package redisstore

import (
	"context"
	"errors"
	"time"

	"github.com/jrsteele09/go-cognito-bridge/keychain"
	pkgerrors "github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

var _ keychain.Store = (*Store)(nil)

// Store namespaces every key under prefix. A zero ttl keeps items forever.
type Store struct {
	rdb    redis.UniversalClient
	prefix string
	ttl    time.Duration
}

func New(rdb redis.UniversalClient, prefix string, ttl time.Duration) *Store {
	return &Store{rdb: rdb, prefix: prefix, ttl: ttl}
}

func (s *Store) key(k string) string {
	if s.prefix == "" {
		return k
	}
	return s.prefix + ":" + k
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	v, err := s.rdb.Get(ctx, s.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, keychain.ErrNotFound
	}
	if err != nil {
		return nil, pkgerrors.Wrap(err, "[redisstore.Get] GET")
	}
	return v, nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	if err := s.rdb.Set(ctx, s.key(key), value, s.ttl).Err(); err != nil {
		return pkgerrors.Wrap(err, "[redisstore.Set] SET")
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if err := s.rdb.Del(ctx, s.key(key)).Err(); err != nil {
		return pkgerrors.Wrap(err, "[redisstore.Delete] DEL")
	}
	return nil
}
