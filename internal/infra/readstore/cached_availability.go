package readstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"coach-booking/internal/domain/availability"
	"coach-booking/internal/domain/calendar"
	"coach-booking/internal/domain/timeslot"
	"coach-booking/internal/infra/cache"
	"coach-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type cachedEntry struct {
	Slot      timeslot.TimeSlot `json:"slot"`
	Available bool              `json:"available"`
}

// CachedAvailabilityStore is a read-through cache in front of the template table.
// Entries expire by TTL only. Cache failures fall back to the underlying store.
type CachedAvailabilityStore struct {
	next  queries.AvailabilityReadStore
	cache cache.Store
	ttl   time.Duration
}

func NewCachedAvailabilityStore(next queries.AvailabilityReadStore, store cache.Store, ttl time.Duration) *CachedAvailabilityStore {
	return &CachedAvailabilityStore{next: next, cache: store, ttl: ttl}
}

func TemplateCacheKey(coachID uuid.UUID, weekday calendar.StorageWeekday) string {
	return fmt.Sprintf("availability:%s:%d", coachID, weekday)
}

func (s *CachedAvailabilityStore) Entries(ctx context.Context, coachID uuid.UUID, weekday calendar.StorageWeekday) ([]availability.Entry, error) {
	key := TemplateCacheKey(coachID, weekday)

	data, err := s.cache.Get(ctx, key)
	switch {
	case err == nil:
		var cached []cachedEntry
		if uerr := json.Unmarshal(data, &cached); uerr == nil {
			return fromCached(coachID, weekday, cached), nil
		}
		slog.Warn("discarding corrupt availability cache entry", "key", key)
	case !errors.Is(err, cache.ErrCacheMiss):
		slog.Warn("availability cache read failed", "key", key, "error", err.Error())
	}

	entries, err := s.next.Entries(ctx, coachID, weekday)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(toCached(entries)); err == nil {
		if serr := s.cache.Set(ctx, key, data, s.ttl); serr != nil {
			slog.Warn("availability cache write failed", "key", key, "error", serr.Error())
		}
	}

	return entries, nil
}

func toCached(entries []availability.Entry) []cachedEntry {
	out := make([]cachedEntry, len(entries))
	for i, e := range entries {
		out[i] = cachedEntry{Slot: e.Slot, Available: e.IsAvailable}
	}
	return out
}

func fromCached(coachID uuid.UUID, weekday calendar.StorageWeekday, cached []cachedEntry) []availability.Entry {
	out := make([]availability.Entry, len(cached))
	for i, c := range cached {
		out[i] = availability.Entry{
			CoachID:     coachID,
			Weekday:     weekday,
			Slot:        c.Slot,
			IsAvailable: c.Available,
		}
	}
	return out
}
