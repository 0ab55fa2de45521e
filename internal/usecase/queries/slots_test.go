//go:build unit

package queries_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"coach-booking/internal/domain/booking"
	"coach-booking/internal/domain/calendar"
	"coach-booking/internal/domain/timeslot"
	"coach-booking/internal/domain/user"
	"coach-booking/internal/pkg/clock"
	"coach-booking/internal/pkg/config"
	"coach-booking/internal/pkg/errs"
	"coach-booking/internal/usecase/queries"
	"coach-booking/internal/usecase/shared"
	"coach-booking/tests/common/builder"
	"coach-booking/tests/common/fakestore"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2024-03-06 is a Wednesday (storage weekday 3).
var wednesday = calendar.MustDate(2024, time.March, 6)

func newPolicy(t *testing.T) shared.SchedulePolicy {
	t.Helper()
	p, err := shared.NewSchedulePolicy(config.NewTestConfig().Booking)
	require.NoError(t, err)
	return p
}

func newSlotQueries(t *testing.T, store *fakestore.Store, now time.Time) queries.SlotQueries {
	t.Helper()
	return queries.NewSlotQueries(store, store, newPolicy(t), clock.NewMockClock(now))
}

func seedBooking(store *fakestore.Store, coachID uuid.UUID, date calendar.Date, slot string, status booking.Status) *booking.Booking {
	b := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) {
		b.CoachID = coachID
		b.Date = date
		b.Slot = slot
		b.Status = status
	}).MustBuildStored()
	store.Seed(b)
	return b
}

func TestResolveOpenSlots(t *testing.T) {
	ctx := context.Background()
	beforeDay := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)

	t.Run("success: whole template when nothing is booked", func(t *testing.T) {
		store := fakestore.New()
		coachID := uuid.New()
		store.AddTemplate(coachID, calendar.Wednesday, true, "11:00", "09:00", "10:00")

		slots, err := newSlotQueries(t, store, beforeDay).ResolveOpenSlots(ctx, coachID, wednesday)

		require.NoError(t, err)
		assert.Equal(t, []string{"09:00", "10:00", "11:00"}, timeslot.Strings(slots))
	})

	t.Run("success: booked slots are excluded", func(t *testing.T) {
		store := fakestore.New()
		coachID := uuid.New()
		store.AddTemplate(coachID, calendar.Wednesday, true, "09:00", "10:00", "11:00")
		seedBooking(store, coachID, wednesday, "10:00", booking.StatusPending)

		slots, err := newSlotQueries(t, store, beforeDay).ResolveOpenSlots(ctx, coachID, wednesday)

		require.NoError(t, err)
		assert.Equal(t, []string{"09:00", "11:00"}, timeslot.Strings(slots))
	})

	t.Run("success: cancelled bookings free the slot", func(t *testing.T) {
		store := fakestore.New()
		coachID := uuid.New()
		store.AddTemplate(coachID, calendar.Wednesday, true, "09:00", "10:00")
		seedBooking(store, coachID, wednesday, "10:00", booking.StatusCancelled)

		slots, err := newSlotQueries(t, store, beforeDay).ResolveOpenSlots(ctx, coachID, wednesday)

		require.NoError(t, err)
		assert.Equal(t, []string{"09:00", "10:00"}, timeslot.Strings(slots))
	})

	t.Run("success: unavailable entries are left out", func(t *testing.T) {
		store := fakestore.New()
		coachID := uuid.New()
		store.AddTemplate(coachID, calendar.Wednesday, true, "09:00")
		store.AddTemplate(coachID, calendar.Wednesday, false, "10:00")

		slots, err := newSlotQueries(t, store, beforeDay).ResolveOpenSlots(ctx, coachID, wednesday)

		require.NoError(t, err)
		assert.Equal(t, []string{"09:00"}, timeslot.Strings(slots))
	})

	t.Run("success: same slot with or without seconds", func(t *testing.T) {
		store := fakestore.New()
		coachID := uuid.New()
		store.AddTemplate(coachID, calendar.Wednesday, true, "14:00:00", "15:00:00")
		seedBooking(store, coachID, wednesday, "14:00", booking.StatusConfirmed)

		slots, err := newSlotQueries(t, store, beforeDay).ResolveOpenSlots(ctx, coachID, wednesday)

		require.NoError(t, err)
		assert.Equal(t, []string{"15:00"}, timeslot.Strings(slots))
	})

	t.Run("success: lead time applies today", func(t *testing.T) {
		store := fakestore.New()
		coachID := uuid.New()
		store.AddTemplate(coachID, calendar.Wednesday, true, "15:00", "15:30", "16:00")
		now := time.Date(2024, 3, 6, 14, 30, 0, 0, time.UTC)

		slots, err := newSlotQueries(t, store, now).ResolveOpenSlots(ctx, coachID, wednesday)

		require.NoError(t, err)
		assert.Equal(t, []string{"15:30", "16:00"}, timeslot.Strings(slots))
	})

	t.Run("success: past date is empty", func(t *testing.T) {
		store := fakestore.New()
		coachID := uuid.New()
		store.AddTemplate(coachID, calendar.Wednesday, true, "09:00")
		now := time.Date(2024, 3, 7, 8, 0, 0, 0, time.UTC)

		slots, err := newSlotQueries(t, store, now).ResolveOpenSlots(ctx, coachID, wednesday)

		require.NoError(t, err)
		assert.Empty(t, slots)
	})

	t.Run("success: unknown coach is empty without error", func(t *testing.T) {
		slots, err := newSlotQueries(t, fakestore.New(), beforeDay).ResolveOpenSlots(ctx, uuid.New(), wednesday)

		require.NoError(t, err)
		assert.NotNil(t, slots)
		assert.Empty(t, slots)
	})

	t.Run("success: other weekdays' templates are ignored", func(t *testing.T) {
		store := fakestore.New()
		coachID := uuid.New()
		store.AddTemplate(coachID, calendar.Thursday, true, "09:00")

		slots, err := newSlotQueries(t, store, beforeDay).ResolveOpenSlots(ctx, coachID, wednesday)

		require.NoError(t, err)
		assert.Empty(t, slots)
	})

	t.Run("idempotent", func(t *testing.T) {
		store := fakestore.New()
		coachID := uuid.New()
		store.AddTemplate(coachID, calendar.Wednesday, true, "09:00", "10:00", "11:00")
		seedBooking(store, coachID, wednesday, "09:00", booking.StatusConfirmed)
		q := newSlotQueries(t, store, beforeDay)

		first, err := q.ResolveOpenSlots(ctx, coachID, wednesday)
		require.NoError(t, err)
		second, err := q.ResolveOpenSlots(ctx, coachID, wednesday)
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})

	t.Run("error: store failure is ErrSlotResolutionFailed", func(t *testing.T) {
		store := fakestore.New()
		store.ReadErr = errors.New("connection reset")

		_, err := newSlotQueries(t, store, beforeDay).ResolveOpenSlots(ctx, uuid.New(), wednesday)

		require.Error(t, err)
		assert.True(t, errs.Is(err, queries.ErrSlotResolutionFailed))
	})
}

func TestResolveWindow(t *testing.T) {
	ctx := context.Background()
	coachID := uuid.New()
	store := fakestore.New()
	store.AddTemplate(coachID, calendar.Wednesday, true, "09:00", "10:00")
	store.AddTemplate(coachID, calendar.Thursday, true, "12:00")
	seedBooking(store, coachID, wednesday, "09:00", booking.StatusConfirmed)

	// Tuesday 2024-03-05 09:30 UTC
	now := time.Date(2024, 3, 5, 9, 30, 0, 0, time.UTC)
	q := newSlotQueries(t, store, now)

	t.Run("omitted start is today", func(t *testing.T) {
		days, err := q.ResolveWindow(ctx, coachID, calendar.Date{}, 3)

		require.NoError(t, err)
		require.Len(t, days, 3)
		assert.Equal(t, "2024-03-05", days[0].Date.String())
		assert.Empty(t, days[0].Slots)
		assert.Equal(t, []string{"10:00"}, timeslot.Strings(days[1].Slots))
		assert.Equal(t, []string{"12:00"}, timeslot.Strings(days[2].Slots))
	})

	t.Run("success: omitted days uses the default window", func(t *testing.T) {
		days, err := q.ResolveWindow(ctx, coachID, calendar.Date{}, 0)

		require.NoError(t, err)
		assert.Len(t, days, 14)
	})

	t.Run("success: capped at the max window", func(t *testing.T) {
		days, err := q.ResolveWindow(ctx, coachID, calendar.Date{}, 365)

		require.NoError(t, err)
		assert.Len(t, days, 60)
	})

	t.Run("success: past start is raised to today", func(t *testing.T) {
		days, err := q.ResolveWindow(ctx, coachID, calendar.MustDate(2024, time.February, 1), 1)

		require.NoError(t, err)
		require.Len(t, days, 1)
		assert.Equal(t, "2024-03-05", days[0].Date.String())
	})

	t.Run("success: each window day matches ResolveOpenSlots", func(t *testing.T) {
		days, err := q.ResolveWindow(ctx, coachID, wednesday, 7)
		require.NoError(t, err)

		for _, day := range days {
			single, err := q.ResolveOpenSlots(ctx, coachID, day.Date)
			require.NoError(t, err)
			assert.Equal(t, single, day.Slots, day.Date.String())
		}
	})
}

func TestDayPlan(t *testing.T) {
	ctx := context.Background()
	coachID := uuid.New()
	store := fakestore.New()
	store.AddTemplate(coachID, calendar.Wednesday, true, "09:00", "10:00", "11:00", "16:00")
	pending := seedBooking(store, coachID, wednesday, "10:00", booking.StatusPending)
	offTemplate := seedBooking(store, coachID, wednesday, "13:00", booking.StatusConfirmed)
	seedBooking(store, coachID, wednesday, "11:00", booking.StatusCancelled)

	now := time.Date(2024, 3, 6, 9, 30, 0, 0, time.UTC)
	q := newSlotQueries(t, store, now)

	t.Run("success: the coach can view", func(t *testing.T) {
		plan, err := q.DayPlan(ctx, shared.Actor{ID: coachID, Role: user.RoleCoach}, coachID, wednesday)
		require.NoError(t, err)

		assert.False(t, plan.Closed)
		require.Len(t, plan.Entries, 5)

		got := map[string]queries.PlanEntry{}
		for _, e := range plan.Entries {
			got[e.Slot.String()] = e
		}
		assert.Equal(t, queries.PlanPast, got["09:00"].Status)
		assert.Equal(t, queries.PlanPending, got["10:00"].Status)
		assert.Equal(t, pending.ID(), *got["10:00"].BookingID)
		assert.Equal(t, pending.ClientID(), *got["10:00"].ClientID)
		assert.Equal(t, queries.PlanOpen, got["11:00"].Status)
		assert.Nil(t, got["11:00"].BookingID)
		assert.Equal(t, queries.PlanConfirmed, got["13:00"].Status)
		assert.False(t, got["13:00"].InTemplate)
		assert.Equal(t, offTemplate.ID(), *got["13:00"].BookingID)
		assert.Equal(t, queries.PlanOpen, got["16:00"].Status)

		slots := make([]timeslot.TimeSlot, len(plan.Entries))
		for i, e := range plan.Entries {
			slots[i] = e.Slot
		}
		assert.Equal(t, []string{"09:00", "10:00", "11:00", "13:00", "16:00"}, timeslot.Strings(slots))
	})

	t.Run("success: admin can view", func(t *testing.T) {
		_, err := q.DayPlan(ctx, shared.Actor{ID: uuid.New(), Role: user.RoleAdmin}, coachID, wednesday)
		assert.NoError(t, err)
	})

	t.Run("error: other coaches cannot view", func(t *testing.T) {
		_, err := q.DayPlan(ctx, shared.Actor{ID: uuid.New(), Role: user.RoleCoach}, coachID, wednesday)
		assert.ErrorIs(t, err, queries.ErrForbidden)
	})

	t.Run("success: day without template is Closed", func(t *testing.T) {
		plan, err := q.DayPlan(ctx, shared.Actor{ID: coachID, Role: user.RoleCoach}, coachID, wednesday.AddDays(1))
		require.NoError(t, err)

		assert.True(t, plan.Closed)
		assert.Empty(t, plan.Entries)
	})
}
