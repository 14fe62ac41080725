package service

import (
	"context"
	"time"
)

// Cache is a read-through JSON cache. A disabled cache reports every key as
// a miss.
type Cache interface {
	GetJSON(ctx context.Context, key string, dest any) (bool, error)
	SetJSON(ctx context.Context, key string, v any, ttl time.Duration) error
}
