package forecastcache

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestRedis starts an in-process Redis and a store connected to it.
func setupTestRedis(t *testing.T) *RedisStore {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	store, err := NewRedisStore(RedisConfig{Addr: mr.Addr(), Prefix: "test"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	return store
}

func TestRedisStoreSetGet(t *testing.T) {
	store := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k", payload{Value: "v"}, time.Minute))

	var got payload
	require.NoError(t, store.Get(ctx, "k", &got))
	assert.Equal(t, "v", got.Value)

	exists, err := store.Exists(ctx, "k")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestRedisStoreMiss(t *testing.T) {
	store := setupTestRedis(t)

	var got payload
	assert.ErrorIs(t, store.Get(context.Background(), "absent", &got), ErrCacheMiss)
}

func TestRedisStoreDelete(t *testing.T) {
	store := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k", payload{Value: "v"}, 0))
	require.NoError(t, store.Delete(ctx, "k"))

	var got payload
	assert.ErrorIs(t, store.Get(ctx, "k", &got), ErrCacheMiss)
}

func TestRedisBackedForecastCache(t *testing.T) {
	store := setupTestRedis(t)
	cache := New(store, time.Hour)
	ctx := context.Background()
	series := testSeries(t, 36)

	var calls atomic.Int64
	compute := fitCompute(t, series, 12, &calls)

	model1, forecast1, err := cache.GetOrCompute(ctx, series, 12, compute)
	require.NoError(t, err)
	require.Equal(t, 12, forecast1.Len())

	// The entry round-trips through Redis as JSON: the second call is a
	// hit that reproduces the model state and forecast values.
	model2, forecast2, err := cache.GetOrCompute(ctx, series, 12, compute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), calls.Load())
	assert.Equal(t, model1.Alpha, model2.Alpha)
	assert.Equal(t, model1.Indices, model2.Indices)
	assert.Equal(t, forecast1.Values, forecast2.Values)
	for i := range forecast1.Timestamps {
		assert.True(t, forecast1.Timestamps[i].Equal(forecast2.Timestamps[i]))
	}
}
