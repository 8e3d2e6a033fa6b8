package forecastcache

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss reports that a key is not present in the store.
var ErrCacheMiss = errors.New("forecastcache: key not found")

// Store defines the key-value operations a cache backend must provide.
// Values are JSON-encoded so memory and Redis backends behave identically.
type Store interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Exists(ctx context.Context, key string) (bool, error)
	Close() error
}
