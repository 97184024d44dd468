package cache

import (
	"context"

	"golang.org/x/sync/singleflight"
)

// LoadFunc produces a fresh value for key.
type LoadFunc[T any] func(ctx context.Context, key string) T

// Loader is a read-through cache. Concurrent misses on the same key share
// a single call to the load function; whatever it returns is stored, so a
// degraded result is served until it expires like any other.
type Loader[T any] struct {
	cache Cache[T]
	load  LoadFunc[T]
	group singleflight.Group
}

func NewLoader[T any](c Cache[T], load LoadFunc[T]) *Loader[T] {
	return &Loader[T]{cache: c, load: load}
}

// Get returns the cached value for key, loading it on a miss. The second
// result reports whether the value came from the cache.
func (l *Loader[T]) Get(ctx context.Context, key string) (T, bool) {
	if v, ok := l.cache.Get(key); ok {
		return v, true
	}
	// the shared load must outlive any one caller's cancellation
	loadCtx := context.WithoutCancel(ctx)
	v, _, _ := l.group.Do(key, func() (any, error) {
		if v, ok := l.cache.Get(key); ok {
			return v, nil
		}
		v := l.load(loadCtx, key)
		l.cache.Set(key, v)
		return v, nil
	})
	return v.(T), false
}
