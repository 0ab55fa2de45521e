package readstore

import (
	"context"

	"coach-booking/internal/domain/availability"
	"coach-booking/internal/domain/calendar"
	"coach-booking/internal/domain/timeslot"
	"coach-booking/internal/infra"
	sqlc "coach-booking/internal/infra/sqlc/generated"

	"github.com/google/uuid"
)

type AvailabilityViewQueries interface {
	ListAvailabilityByCoachWeekday(ctx context.Context, db sqlc.DBTX, arg sqlc.ListAvailabilityByCoachWeekdayParams) ([]sqlc.ListAvailabilityByCoachWeekdayRow, error)
}

type AvailabilityReadStore struct {
	queries AvailabilityViewQueries
	db      sqlc.DBTX
}

func NewAvailabilityReadStore(queries AvailabilityViewQueries, db sqlc.DBTX) *AvailabilityReadStore {
	return &AvailabilityReadStore{
		queries: queries,
		db:      db,
	}
}

// Entries returns every template row for the weekday, available or not. An unknown coach yields no rows.
func (r *AvailabilityReadStore) Entries(ctx context.Context, coachID uuid.UUID, weekday calendar.StorageWeekday) ([]availability.Entry, error) {
	rows, err := r.queries.ListAvailabilityByCoachWeekday(ctx, r.db, sqlc.ListAvailabilityByCoachWeekdayParams{
		CoachID: coachID,
		Weekday: int16(weekday),
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list coach availability", err)
	}

	entries := make([]availability.Entry, 0, len(rows))
	for _, row := range rows {
		entry, err := rowToEntry(row)
		if err != nil {
			return nil, infra.WrapRepoErr("invalid coach availability row", err, infra.KindDBFailure)
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

func rowToEntry(row sqlc.ListAvailabilityByCoachWeekdayRow) (availability.Entry, error) {
	weekday, err := calendar.ParseStorageWeekday(int(row.Weekday))
	if err != nil {
		return availability.Entry{}, err
	}
	slot, err := timeslot.Parse(row.TimeSlot)
	if err != nil {
		return availability.Entry{}, err
	}
	return availability.Entry{
		CoachID:     row.CoachID,
		Weekday:     weekday,
		Slot:        slot,
		IsAvailable: row.IsAvailable,
	}, nil
}
