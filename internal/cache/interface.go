package cache

import (
	"context"
	"time"
)

// Cache stores JSON-encoded values with an expiry.
type Cache interface {
	Get(ctx context.Context, key string, value any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Expire(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Delete(ctx context.Context, key string) error
	Close() error
}

func Key(prefix string, id string) string {
	return prefix + ":" + id
}

const (
	SessionKeyPrefix       = "session"
	UserKeyPrefix          = "user"
	LoginAttemptsKeyPrefix = "login_attempts"
)
