package forecastcache

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/sartorproj/goforecast/holtwinters"
	"github.com/sartorproj/goforecast/timeseries"
)

// Entry is the cached result for one (series, horizon) key: the fitted
// model state and the forecast it produced.
type Entry struct {
	Model    *holtwinters.Summary `json:"model"`
	Forecast *timeseries.Series   `json:"forecast"`
}

// ComputeFunc produces a fitted model and forecast on a cache miss.
type ComputeFunc func() (*holtwinters.Model, *timeseries.Series, error)

// Cache memoizes forecasts keyed by series fingerprint and horizon.
type Cache struct {
	store Store
	ttl   time.Duration
	group singleflight.Group
}

// New creates a forecast cache on the given store. ttl 0 means entries do
// not expire.
func New(store Store, ttl time.Duration) *Cache {
	return &Cache{store: store, ttl: ttl}
}

// Key derives the cache key for a series and horizon. The fingerprint
// covers the series name, timestamps, and values, so any change to the
// underlying data yields a new key.
func Key(series *timeseries.Series, horizon int) string {
	return fmt.Sprintf("forecast:%016x:h%d", series.Fingerprint(), horizon)
}

// GetOrCompute returns the cached model and forecast for (series, horizon),
// invoking compute on a miss and storing the result. Concurrent calls for
// the same key collapse to a single in-flight computation. Compute errors
// are returned verbatim and never cached; a failing store backend degrades
// to computing without caching rather than failing the request.
func (c *Cache) GetOrCompute(ctx context.Context, series *timeseries.Series, horizon int, compute ComputeFunc) (*holtwinters.Summary, *timeseries.Series, error) {
	if horizon < 1 {
		return nil, nil, fmt.Errorf("forecastcache: horizon must be at least 1, got %d", horizon)
	}

	key := Key(series, horizon)

	var entry Entry
	if err := c.store.Get(ctx, key, &entry); err == nil {
		return entry.Model, entry.Forecast, nil
	}
	// Miss, or a failing backend: either way, compute. A store failure
	// degrades to recomputing, never to failing the request.

	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		model, forecast, err := compute()
		if err != nil {
			return nil, err
		}
		e := &Entry{Model: model.Summary(), Forecast: forecast}
		// Best effort: a failing store must not fail the forecast.
		_ = c.store.Set(ctx, key, e, c.ttl)
		return e, nil
	})
	if err != nil {
		return nil, nil, err
	}

	e := v.(*Entry)
	return e.Model, e.Forecast, nil
}

// Invalidate removes the entry for (series, horizon), if present.
func (c *Cache) Invalidate(ctx context.Context, series *timeseries.Series, horizon int) error {
	return c.store.Delete(ctx, Key(series, horizon))
}

// Close closes the underlying store.
func (c *Cache) Close() error {
	return c.store.Close()
}
