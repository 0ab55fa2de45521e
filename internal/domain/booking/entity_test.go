//go:build unit

package booking_test

import (
	"testing"
	"time"

	"coach-booking/internal/domain/booking"
	"coach-booking/internal/domain/calendar"
	"coach-booking/internal/domain/timeslot"
	"coach-booking/internal/domain/user"
	"coach-booking/tests/common/builder"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testCase struct {
	name   string
	mutate func(*builder.BookingBuilder)
	errIs  error
}

func TestBooking(t *testing.T) {
	t.Run("success: basic case", func(t *testing.T) {
		b := builder.NewBookingBuilder()

		actual, err := b.BuildDomain()
		require.NoError(t, err)
		require.NotNil(t, actual)

		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.Equal(t, b.CoachID, actual.CoachID())
		assert.Equal(t, b.ClientID, actual.ClientID())
		assert.Equal(t, b.ClubID, actual.ClubID())
		assert.Equal(t, b.Date, actual.Date())
		assert.Equal(t, b.Slot, actual.Slot().String())
		assert.Equal(t, booking.StatusConfirmed, actual.Status())
		assert.Equal(t, b.PriceCents, actual.Price().Cents())
		assert.Equal(t, b.PaymentMethod, actual.PaymentMethod().Value())
		assert.True(t, actual.IsActive())

		want := booking.SlotKey{CoachID: b.CoachID, Date: b.Date, Slot: timeslot.MustParse(b.Slot)}
		if diff := cmp.Diff(want, actual.Key(), cmp.AllowUnexported(calendar.Date{}, timeslot.TimeSlot{})); diff != "" {
			t.Errorf("SlotKey mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("input validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "pendingで作成OK",
				mutate: func(b *builder.BookingBuilder) { b.Status = booking.StatusPending },
			},
			{
				name:   "cancelledで作成NG",
				mutate: func(b *builder.BookingBuilder) { b.Status = booking.StatusCancelled },
				errIs:  booking.ErrInvalidInitialStatus,
			},
			{
				name:   "zero price",
				mutate: func(b *builder.BookingBuilder) { b.PriceCents = 0 },
			},
			{
				name:   "負の料金NG",
				mutate: func(b *builder.BookingBuilder) { b.PriceCents = -1 },
				errIs:  booking.ErrNegativePrice,
			},
			{
				name:   "空の支払い方法NG",
				mutate: func(b *builder.BookingBuilder) { b.PaymentMethod = "   " },
				errIs:  booking.ErrInvalidPaymentMethod,
			},
			{
				name:   "コーチ未指定NG",
				mutate: func(b *builder.BookingBuilder) { b.CoachID = uuid.Nil },
				errIs:  booking.ErrMissingParticipant,
			},
			{
				name:   "クラブ未指定NG",
				mutate: func(b *builder.BookingBuilder) { b.ClubID = uuid.Nil },
				errIs:  booking.ErrMissingParticipant,
			},
		})
	})
}

func runCases(t *testing.T, cases []testCase) {
	t.Helper()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := builder.NewBookingBuilder()
			if tc.mutate != nil {
				tc.mutate(b)
			}
			actual, err := b.BuildDomain()
			if tc.errIs != nil {
				require.ErrorIs(t, err, tc.errIs)
				assert.Nil(t, actual)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, actual)
		})
	}
}

func TestBookingCancel(t *testing.T) {
	actual, err := builder.NewBookingBuilder().BuildDomain()
	require.NoError(t, err)

	cancelledAt := time.Date(2024, 3, 7, 9, 0, 0, 0, time.UTC)
	require.NoError(t, actual.Cancel(cancelledAt))

	assert.Equal(t, booking.StatusCancelled, actual.Status())
	assert.False(t, actual.IsActive())
	assert.Equal(t, cancelledAt, actual.UpdatedAt())

	assert.ErrorIs(t, actual.Cancel(cancelledAt), booking.ErrAlreadyCancelled)
}

func TestBookingPermissions(t *testing.T) {
	b := builder.NewBookingBuilder()
	actual, err := b.BuildDomain()
	require.NoError(t, err)

	stranger := uuid.New()

	assert.True(t, actual.VisibleTo(b.ClientID, user.RoleClient))
	assert.True(t, actual.VisibleTo(b.CoachID, user.RoleCoach))
	assert.True(t, actual.VisibleTo(stranger, user.RoleAdmin))
	assert.False(t, actual.VisibleTo(stranger, user.RoleClient))
	assert.False(t, actual.VisibleTo(stranger, user.RoleCoach))

	assert.True(t, actual.CancellableBy(b.ClientID, user.RoleClient))
	assert.False(t, actual.CancellableBy(stranger, user.RoleClient))
}

func TestStatus(t *testing.T) {
	for _, s := range []string{"pending", "confirmed", "cancelled"} {
		status, err := booking.NewStatus(s)
		require.NoError(t, err)
		assert.Equal(t, s, status.String())
	}

	_, err := booking.NewStatus("canceled")
	assert.ErrorIs(t, err, booking.ErrInvalidStatus)

	assert.True(t, booking.StatusPending.IsActive())
	assert.True(t, booking.StatusConfirmed.IsActive())
	assert.False(t, booking.StatusCancelled.IsActive())
}
