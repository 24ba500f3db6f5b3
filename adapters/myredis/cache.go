package myredis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"appiumhub/service"

	"github.com/go-redis/redis/v8"
)

const scanBatch = 100

// redisCache keeps values of type T as strings under "<prefix>:<key>".
type redisCache[T any] struct {
	client    redis.UniversalClient
	prefix    string
	marshal   func(T) ([]byte, error)
	unmarshal func([]byte) (T, error)
}

// NewCache returns a redis backed interfaces.Cache.
func NewCache[T any](client redis.UniversalClient, prefix string, marshal func(T) ([]byte, error), unmarshal func([]byte) (T, error)) *redisCache[T] {
	return &redisCache[T]{client: client, prefix: prefix, marshal: marshal, unmarshal: unmarshal}
}

// WriteValue stores item under key. A zero ttlMs keeps the key until it is overwritten.
func (r *redisCache[T]) WriteValue(ctx context.Context, key string, item T, ttlMs int) error {
	payload, err := r.marshal(item)
	if err != nil {
		return service.NewInternalServerError("Redis marshal item error", fmt.Errorf("can't marshal %T for key '%s', err: %w", item, key, err))
	}

	ttl := time.Duration(ttlMs) * time.Millisecond
	if err := r.client.Set(ctx, r.keyOf(key), payload, ttl).Err(); err != nil {
		return service.NewInternalServerError("Redis write key error", fmt.Errorf("redis set '%s' failed, err: %w", r.keyOf(key), err))
	}
	return nil
}

// ListAllValues returns every value under the prefix. Values that vanished between the scan
// and the fetch, or that no longer decode, are skipped.
func (r *redisCache[T]) ListAllValues(ctx context.Context) ([]T, error) {
	keys, err := r.scanKeys(ctx)
	if err != nil {
		return nil, err
	}
	if len(keys) == 0 {
		return nil, service.NewEntityNotFoundError("Entity not found", nil)
	}

	raw, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, service.NewInternalServerError("Redis get values error", fmt.Errorf("redis mget of %d keys failed, err: %w", len(keys), err))
	}

	var items []T
	for _, v := range raw {
		if item, ok := r.decode(v); ok {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return nil, service.NewEntityNotFoundError("Entity not found", nil)
	}
	return items, nil
}

func (r *redisCache[T]) scanKeys(ctx context.Context) ([]string, error) {
	pattern := r.keyOf("*")
	var keys []string
	iter := r.client.Scan(ctx, 0, pattern, scanBatch).Iterator()
	for iter.Next(ctx) {
		// MATCH is a glob, so a prefix holding glob characters can match foreign keys
		if strings.HasPrefix(iter.Val(), r.keyOf("")) {
			keys = append(keys, iter.Val())
		}
	}
	if err := iter.Err(); err != nil {
		return nil, service.NewInternalServerError("Redis get keys error", fmt.Errorf("redis scan '%s' failed, err: %w", pattern, err))
	}
	return keys, nil
}

func (r *redisCache[T]) decode(v interface{}) (T, bool) {
	var zero T
	s, ok := v.(string)
	if !ok {
		return zero, false
	}
	item, err := r.unmarshal([]byte(s))
	if err != nil {
		return zero, false
	}
	return item, true
}

func (r *redisCache[T]) keyOf(key string) string {
	return r.prefix + ":" + key
}
