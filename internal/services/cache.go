package services

import (
	"context"
	"time"
)

// Cache is the slice of the redis cache the services need. A nil Cache is
// allowed everywhere; callers degrade to uncached behavior.
type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) (bool, error)
}
