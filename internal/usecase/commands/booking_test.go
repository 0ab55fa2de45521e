//go:build unit

package commands_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"coach-booking/internal/domain/booking"
	"coach-booking/internal/domain/calendar"
	"coach-booking/internal/domain/timeslot"
	"coach-booking/internal/domain/user"
	"coach-booking/internal/pkg/clock"
	"coach-booking/internal/pkg/config"
	"coach-booking/internal/pkg/errs"
	"coach-booking/internal/usecase/commands"
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

type fixture struct {
	store    *fakestore.Store
	clock    *clock.MockClock
	slots    queries.SlotQueries
	commands commands.BookingCommands
	coachID  uuid.UUID
}

func newFixture(t *testing.T, now time.Time, mutate ...func(*config.BookingConfig)) *fixture {
	t.Helper()
	cfg := config.NewTestConfig().Booking
	for _, m := range mutate {
		m(&cfg)
	}
	policy, err := shared.NewSchedulePolicy(cfg)
	require.NoError(t, err)

	store := fakestore.New()
	clk := clock.NewMockClock(now)
	slots := queries.NewSlotQueries(store, store, policy, clk)
	coachID := uuid.New()
	store.AddTemplate(coachID, calendar.Wednesday, true, "09:00", "10:00", "11:00")

	return &fixture{
		store:    store,
		clock:    clk,
		slots:    slots,
		commands: commands.NewBookingUseCase(store, slots, policy, clk),
		coachID:  coachID,
	}
}

func (f *fixture) params(slot string, mutate ...func(*builder.BookingBuilder)) commands.AllocateParams {
	b := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) {
		b.CoachID = f.coachID
		b.Date = wednesday
		b.Slot = slot
	})
	for _, m := range mutate {
		b.With(m)
	}
	return b.BuildAllocateParams()
}

func TestAllocate_EndToEndScenario(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC))

	open, err := f.slots.ResolveOpenSlots(ctx, f.coachID, wednesday)
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "10:00", "11:00"}, timeslot.Strings(open))

	first, err := f.commands.Allocate(ctx, f.params("10:00"))
	require.NoError(t, err)
	assert.Equal(t, commands.OutcomeClaimed, first.Outcome)
	require.NotNil(t, first.Booking)
	assert.Equal(t, booking.StatusConfirmed, first.Booking.Status())
	assert.Nil(t, first.FreshSlots)

	open, err = f.slots.ResolveOpenSlots(ctx, f.coachID, wednesday)
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "11:00"}, timeslot.Strings(open))

	third, err := f.commands.Allocate(ctx, f.params("10:00"))
	require.NoError(t, err)
	assert.Equal(t, commands.OutcomeAlreadyTaken, third.Outcome)
	assert.Nil(t, third.Booking)
	assert.Equal(t, []string{"09:00", "11:00"}, timeslot.Strings(third.FreshSlots))

	assert.Equal(t, 1, f.store.ActiveCount(first.Booking.Key()))
}

func TestAllocate_ConcurrentClaims(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC))

	const contenders = 8

	// Every contender passes the pre-check before any of them writes, so only the
	// uniqueness rule at write time can decide the winner.
	var barrier sync.WaitGroup
	barrier.Add(contenders)
	f.store.BeforeWrite = func() {
		barrier.Done()
		barrier.Wait()
	}

	results := make([]*commands.AllocationResult, contenders)
	errsCh := make(chan error, contenders)
	var wg sync.WaitGroup
	for i := range contenders {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := f.commands.Allocate(ctx, f.params("10:00"))
			if err != nil {
				errsCh <- err
				return
			}
			results[i] = res
		}()
	}
	wg.Wait()
	close(errsCh)

	for err := range errsCh {
		t.Fatalf("unexpected error: %v", err)
	}

	claimed, taken := 0, 0
	for _, res := range results {
		switch res.Outcome {
		case commands.OutcomeClaimed:
			claimed++
		case commands.OutcomeAlreadyTaken:
			taken++
			assert.Equal(t, []string{"09:00", "11:00"}, timeslot.Strings(res.FreshSlots))
		}
	}
	assert.Equal(t, 1, claimed)
	assert.Equal(t, contenders-1, taken)

	key := booking.SlotKey{CoachID: f.coachID, Date: wednesday, Slot: timeslot.MustParse("10:00")}
	assert.Equal(t, 1, f.store.ActiveCount(key))
	assert.Len(t, f.store.Jobs(), 1)
}

func TestAllocate_Validation(t *testing.T) {
	ctx := context.Background()
	sameDay := time.Date(2024, 3, 6, 9, 30, 0, 0, time.UTC)
	earlier := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		now     time.Time
		params  func(f *fixture) commands.AllocateParams
		wantErr error
	}{
		{
			name: "負の金額NG",
			now:  earlier,
			params: func(f *fixture) commands.AllocateParams {
				return f.params("10:00", func(b *builder.BookingBuilder) { b.PriceCents = -1 })
			},
			wantErr: commands.ErrInvalidBookingRequest,
		},
		{
			name: "支払方法なしNG",
			now:  earlier,
			params: func(f *fixture) commands.AllocateParams {
				return f.params("10:00", func(b *builder.BookingBuilder) { b.PaymentMethod = " " })
			},
			wantErr: commands.ErrInvalidBookingRequest,
		},
		{
			name: "クラブなしNG",
			now:  earlier,
			params: func(f *fixture) commands.AllocateParams {
				return f.params("10:00", func(b *builder.BookingBuilder) { b.ClubID = uuid.Nil })
			},
			wantErr: commands.ErrInvalidBookingRequest,
		},
		{
			name:    "テンプレート外のスロットNG",
			now:     earlier,
			params:  func(f *fixture) commands.AllocateParams { return f.params("12:00") },
			wantErr: commands.ErrSlotNotOffered,
		},
		{
			name:    "過去日NG",
			now:     time.Date(2024, 3, 7, 8, 0, 0, 0, time.UTC),
			params:  func(f *fixture) commands.AllocateParams { return f.params("10:00") },
			wantErr: commands.ErrDateInPast,
		},
		{
			name:    "リードタイム未満NG",
			now:     sameDay,
			params:  func(f *fixture) commands.AllocateParams { return f.params("10:00") },
			wantErr: commands.ErrLeadTimeNotMet,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, tt.now)

			res, err := f.commands.Allocate(ctx, tt.params(f))

			require.Error(t, err)
			assert.True(t, errs.Is(err, tt.wantErr), "expected %v, got %v", tt.wantErr, err)
			assert.Nil(t, res)
			assert.Empty(t, f.store.Jobs())
		})
	}

	t.Run("success: same day is fine when lead time is met", func(t *testing.T) {
		f := newFixture(t, sameDay)

		res, err := f.commands.Allocate(ctx, f.params("11:00"))

		require.NoError(t, err)
		assert.Equal(t, commands.OutcomeClaimed, res.Outcome)
	})
}

func TestAllocate_Failures(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	t.Run("error: write failure is ErrAllocationFailed and rolls back", func(t *testing.T) {
		f := newFixture(t, now)
		f.store.CreateErr = errors.New("connection reset by peer")

		res, err := f.commands.Allocate(ctx, f.params("10:00"))

		require.Error(t, err)
		assert.Nil(t, res)
		assert.True(t, errs.Is(err, commands.ErrAllocationFailed))
		assert.Empty(t, f.store.Jobs())
	})

	t.Run("error: read failure is ErrAllocationFailed", func(t *testing.T) {
		f := newFixture(t, now)
		f.store.ReadErr = errors.New("connection reset by peer")

		_, err := f.commands.Allocate(ctx, f.params("10:00"))

		require.Error(t, err)
		assert.True(t, errs.Is(err, commands.ErrAllocationFailed))
	})
}

func TestAllocate_Policy(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	t.Run("success: initial status pending", func(t *testing.T) {
		f := newFixture(t, now, func(c *config.BookingConfig) { c.InitialStatus = "pending" })

		res, err := f.commands.Allocate(ctx, f.params("09:00"))

		require.NoError(t, err)
		assert.Equal(t, booking.StatusPending, res.Booking.Status())
	})

	t.Run("success: pending bookings also hold the slot", func(t *testing.T) {
		f := newFixture(t, now, func(c *config.BookingConfig) { c.InitialStatus = "pending" })
		_, err := f.commands.Allocate(ctx, f.params("09:00"))
		require.NoError(t, err)

		res, err := f.commands.Allocate(ctx, f.params("09:00"))

		require.NoError(t, err)
		assert.Equal(t, commands.OutcomeAlreadyTaken, res.Outcome)
	})

	t.Run("success: enqueues a notification job", func(t *testing.T) {
		f := newFixture(t, now)

		res, err := f.commands.Allocate(ctx, f.params("11:00"))
		require.NoError(t, err)

		jobs := f.store.Jobs()
		require.Len(t, jobs, 1)
		assert.Equal(t, "booking_claimed", jobs[0].Topic)

		var payload map[string]any
		require.NoError(t, json.Unmarshal(jobs[0].Payload, &payload))
		assert.Equal(t, res.Booking.ID().String(), payload["booking_id"])
		assert.Equal(t, "11:00", payload["slot"])
		assert.Equal(t, "2024-03-06", payload["date"])
	})
}

func TestCancel(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	claim := func(t *testing.T, f *fixture) *booking.Booking {
		t.Helper()
		res, err := f.commands.Allocate(ctx, f.params("10:00"))
		require.NoError(t, err)
		require.Equal(t, commands.OutcomeClaimed, res.Outcome)
		return res.Booking
	}

	t.Run("success: cancelling frees the slot", func(t *testing.T) {
		f := newFixture(t, now)
		b := claim(t, f)

		cancelled, err := f.commands.Cancel(ctx, shared.Actor{ID: b.ClientID(), Role: user.RoleClient}, b.ID())
		require.NoError(t, err)
		assert.Equal(t, booking.StatusCancelled, cancelled.Status())

		open, err := f.slots.ResolveOpenSlots(ctx, f.coachID, wednesday)
		require.NoError(t, err)
		assert.Equal(t, []string{"09:00", "10:00", "11:00"}, timeslot.Strings(open))

		again, err := f.commands.Allocate(ctx, f.params("10:00"))
		require.NoError(t, err)
		assert.Equal(t, commands.OutcomeClaimed, again.Outcome)

		topics := []string{}
		for _, j := range f.store.Jobs() {
			topics = append(topics, j.Topic)
		}
		assert.Equal(t, []string{"booking_claimed", "booking_cancelled", "booking_claimed"}, topics)
	})

	t.Run("error: double cancel", func(t *testing.T) {
		f := newFixture(t, now)
		b := claim(t, f)
		admin := shared.Actor{ID: uuid.New(), Role: user.RoleAdmin}

		_, err := f.commands.Cancel(ctx, admin, b.ID())
		require.NoError(t, err)
		_, err = f.commands.Cancel(ctx, admin, b.ID())
		assert.ErrorIs(t, err, commands.ErrBookingAlreadyCancelled)
	})

	t.Run("error: unrelated user", func(t *testing.T) {
		f := newFixture(t, now)
		b := claim(t, f)

		_, err := f.commands.Cancel(ctx, shared.Actor{ID: uuid.New(), Role: user.RoleClient}, b.ID())
		assert.ErrorIs(t, err, commands.ErrForbidden)
		assert.Equal(t, 1, f.store.ActiveCount(b.Key()))
	})

	t.Run("success: the booked coach can cancel", func(t *testing.T) {
		f := newFixture(t, now)
		b := claim(t, f)

		_, err := f.commands.Cancel(ctx, shared.Actor{ID: f.coachID, Role: user.RoleCoach}, b.ID())
		assert.NoError(t, err)
	})

	t.Run("error: unknown booking", func(t *testing.T) {
		f := newFixture(t, now)

		_, err := f.commands.Cancel(ctx, shared.Actor{ID: uuid.New(), Role: user.RoleAdmin}, uuid.New())
		assert.ErrorIs(t, err, commands.ErrBookingNotFound)
	})

	t.Run("success: booking is loaded inside the cancelling transaction", func(t *testing.T) {
		f := newFixture(t, now)
		b := claim(t, f)
		before := f.store.TxReadCount()

		_, err := f.commands.Cancel(ctx, shared.Actor{ID: b.ClientID(), Role: user.RoleClient}, b.ID())
		require.NoError(t, err)

		assert.Equal(t, before+1, f.store.TxReadCount())
		assert.Zero(t, f.store.ActiveCount(b.Key()))
	})

	t.Run("error: read failure leaves the booking active", func(t *testing.T) {
		f := newFixture(t, now)
		b := claim(t, f)
		f.store.ReadErr = errors.New("connection reset")

		_, err := f.commands.Cancel(ctx, shared.Actor{ID: b.ClientID(), Role: user.RoleClient}, b.ID())

		assert.True(t, errs.Is(err, errs.ErrDatabaseOperationFailed))
		assert.Equal(t, 1, f.store.ActiveCount(b.Key()))
		topics := []string{}
		for _, j := range f.store.Jobs() {
			topics = append(topics, j.Topic)
		}
		assert.Equal(t, []string{"booking_claimed"}, topics)
	})
}
