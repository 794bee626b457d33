package session

import (
	"context"
	"fmt"
	"time"

	"github.com/aaravmahajanofficial/storefront-demo/internal/cache"
)

// RedisRepository stores snapshots as JSON values under session:<id>.
type RedisRepository struct {
	cache cache.Cache
}

func NewRedisRepository(c cache.Cache) *RedisRepository {
	return &RedisRepository{cache: c}
}

func key(id string) string {
	return cache.Key(cache.SessionKeyPrefix, id)
}

func (r *RedisRepository) Load(ctx context.Context, id string) (*Snapshot, error) {
	var snap Snapshot

	found, err := r.cache.Get(ctx, key(id), &snap)
	if err != nil {
		return nil, fmt.Errorf("loading session %s: %w", id, err)
	}
	if !found {
		return nil, ErrSessionNotFound
	}

	return &snap, nil
}

func (r *RedisRepository) Save(ctx context.Context, id string, snap *Snapshot, ttl time.Duration) error {
	if err := r.cache.Set(ctx, key(id), snap, ttl); err != nil {
		return fmt.Errorf("saving session %s: %w", id, err)
	}

	return nil
}

func (r *RedisRepository) Touch(ctx context.Context, id string, ttl time.Duration) error {
	ok, err := r.cache.Expire(ctx, key(id), ttl)
	if err != nil {
		return fmt.Errorf("refreshing session %s: %w", id, err)
	}
	if !ok {
		return ErrSessionNotFound
	}

	return nil
}

func (r *RedisRepository) Delete(ctx context.Context, id string) error {
	if err := r.cache.Delete(ctx, key(id)); err != nil {
		return fmt.Errorf("deleting session %s: %w", id, err)
	}

	return nil
}
