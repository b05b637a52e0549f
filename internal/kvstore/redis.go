// File: internal/kvstore/redis.go
package kvstore

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

type redisStore struct {
	client *redis.Client
}

// NewRedisStore creates a Store backed by Redis. Individual SET/GET/DEL
// commands are atomic per key, which is all the Store contract asks for.
func NewRedisStore(client *redis.Client) Store {
	return &redisStore{client: client}
}

func (s *redisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return value, true, nil
}

func (s *redisStore) Set(ctx context.Context, key string, value []byte) error {
	return s.client.Set(ctx, key, value, 0).Err()
}

func (s *redisStore) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, key).Err()
}

func (s *redisStore) ListByPrefix(ctx context.Context, prefix string) ([]Entry, error) {
	var entries []Entry
	iter := s.client.Scan(ctx, 0, prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		value, found, err := s.Get(ctx, key)
		if err != nil {
			return nil, err
		}
		if !found {
			// Key expired or was deleted between SCAN and GET.
			continue
		}
		entries = append(entries, Entry{Key: key, Value: value})
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}
