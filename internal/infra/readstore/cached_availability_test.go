//go:build unit

package readstore_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"coach-booking/internal/domain/availability"
	"coach-booking/internal/domain/calendar"
	"coach-booking/internal/domain/timeslot"
	"coach-booking/internal/infra/cache"
	"coach-booking/internal/infra/readstore"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryCache struct {
	mu      sync.Mutex
	data    map[string][]byte
	ttls    map[string]time.Duration
	failGet bool
}

func newMemoryCache() *memoryCache {
	return &memoryCache{data: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (c *memoryCache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failGet {
		return nil, errors.New("connection refused")
	}
	v, ok := c.data[key]
	if !ok {
		return nil, cache.ErrCacheMiss
	}
	return v, nil
}

func (c *memoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
	c.ttls[key] = ttl
	return nil
}

type countingStore struct {
	entries []availability.Entry
	err     error
	calls   int
}

func (s *countingStore) Entries(_ context.Context, _ uuid.UUID, _ calendar.StorageWeekday) ([]availability.Entry, error) {
	s.calls++
	return s.entries, s.err
}

func TestCachedAvailabilityStore_Entries(t *testing.T) {
	ctx := context.Background()
	coachID := uuid.New()
	entries := []availability.Entry{
		{CoachID: coachID, Weekday: calendar.Wednesday, Slot: timeslot.MustParse("09:00"), IsAvailable: true},
		{CoachID: coachID, Weekday: calendar.Wednesday, Slot: timeslot.MustParse("10:00"), IsAvailable: false},
	}

	t.Run("success: second read is served from cache", func(t *testing.T) {
		next := &countingStore{entries: entries}
		mem := newMemoryCache()
		store := readstore.NewCachedAvailabilityStore(next, mem, time.Minute)

		first, err := store.Entries(ctx, coachID, calendar.Wednesday)
		require.NoError(t, err)
		second, err := store.Entries(ctx, coachID, calendar.Wednesday)
		require.NoError(t, err)

		assert.Equal(t, 1, next.calls)
		assert.Equal(t, entries, first)
		assert.Equal(t, entries, second)
		assert.Equal(t, time.Minute, mem.ttls[readstore.TemplateCacheKey(coachID, calendar.Wednesday)])
	})

	t.Run("separate key per weekday", func(t *testing.T) {
		next := &countingStore{entries: nil}
		store := readstore.NewCachedAvailabilityStore(next, newMemoryCache(), time.Minute)

		_, err := store.Entries(ctx, coachID, calendar.Monday)
		require.NoError(t, err)
		_, err = store.Entries(ctx, coachID, calendar.Tuesday)
		require.NoError(t, err)

		assert.Equal(t, 2, next.calls)
	})

	t.Run("success: falls back to the db when the cache fails", func(t *testing.T) {
		next := &countingStore{entries: entries}
		mem := newMemoryCache()
		mem.failGet = true
		store := readstore.NewCachedAvailabilityStore(next, mem, time.Minute)

		got, err := store.Entries(ctx, coachID, calendar.Wednesday)

		require.NoError(t, err)
		assert.Equal(t, entries, got)
		assert.Equal(t, 1, next.calls)
	})

	t.Run("success: corrupt cache entry is discarded", func(t *testing.T) {
		next := &countingStore{entries: entries}
		mem := newMemoryCache()
		key := readstore.TemplateCacheKey(coachID, calendar.Wednesday)
		mem.data[key] = []byte("{not json")
		store := readstore.NewCachedAvailabilityStore(next, mem, time.Minute)

		got, err := store.Entries(ctx, coachID, calendar.Wednesday)

		require.NoError(t, err)
		assert.Equal(t, entries, got)
		assert.JSONEq(t, `[{"slot":"09:00","available":true},{"slot":"10:00","available":false}]`, string(mem.data[key]))
	})

	t.Run("error: db errors are not cached", func(t *testing.T) {
		next := &countingStore{err: errDBConnectionLost}
		mem := newMemoryCache()
		store := readstore.NewCachedAvailabilityStore(next, mem, time.Minute)

		_, err := store.Entries(ctx, coachID, calendar.Wednesday)

		require.ErrorIs(t, err, errDBConnectionLost)
		assert.Empty(t, mem.data)
	})
}
