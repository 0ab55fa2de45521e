//go:build unit

package readstore_test

import (
	"context"
	"testing"
	"time"

	"coach-booking/internal/domain/booking"
	"coach-booking/internal/domain/calendar"
	"coach-booking/internal/domain/timeslot"
	"coach-booking/internal/infra"
	"coach-booking/internal/infra/readstore"
	sqlc "coach-booking/internal/infra/sqlc/generated"
	"coach-booking/internal/usecase/queries"
	readstoremock "coach-booking/tests/mock/readstore"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newBookingStore(t *testing.T) (*readstore.BookingReadStore, *readstoremock.MockBookingViewQueries) {
	t.Helper()
	ctrl := gomock.NewController(t)
	mockQueries := readstoremock.NewMockBookingViewQueries(ctrl)
	return readstore.NewBookingReadStore(mockQueries, &mockDBTX{}), mockQueries
}

func TestBookingReadStore_ActiveSlots(t *testing.T) {
	ctx := context.Background()
	coachID := uuid.New()
	date := calendar.MustDate(2024, time.March, 6)
	params := sqlc.ListActiveBookingSlotsParams{CoachID: coachID, BookingDate: pgDate(2024, time.March, 6)}

	t.Run("success: basic case", func(t *testing.T) {
		store, mockQueries := newBookingStore(t)
		bookingID, clientID := uuid.New(), uuid.New()
		mockQueries.EXPECT().ListActiveBookingSlots(ctx, gomock.Any(), params).Return([]sqlc.ListActiveBookingSlotsRow{
			{ID: bookingID, ClientID: clientID, TimeSlot: "14:00:00", Status: "pending"},
		}, nil)

		slots, err := store.ActiveSlots(ctx, coachID, date)

		require.NoError(t, err)
		require.Len(t, slots, 1)
		assert.Equal(t, queries.BookedSlot{
			BookingID: bookingID,
			ClientID:  clientID,
			Slot:      timeslot.MustParse("14:00"),
			Status:    booking.StatusPending,
		}, slots[0])
	})

	t.Run("error: unknown status is DB_FAILURE", func(t *testing.T) {
		store, mockQueries := newBookingStore(t)
		mockQueries.EXPECT().ListActiveBookingSlots(ctx, gomock.Any(), params).Return([]sqlc.ListActiveBookingSlotsRow{
			{ID: uuid.New(), ClientID: uuid.New(), TimeSlot: "14:00:00", Status: "booked"},
		}, nil)

		_, err := store.ActiveSlots(ctx, coachID, date)

		require.Error(t, err)
		assert.True(t, infra.IsKind(err, infra.KindDBFailure))
	})

	t.Run("db error", func(t *testing.T) {
		store, mockQueries := newBookingStore(t)
		mockQueries.EXPECT().ListActiveBookingSlots(ctx, gomock.Any(), params).Return(nil, errDBConnectionLost)

		_, err := store.ActiveSlots(ctx, coachID, date)

		require.Error(t, err)
		assert.True(t, infra.IsKind(err, infra.KindDBFailure))
	})
}

func TestBookingReadStore_ActiveAt(t *testing.T) {
	ctx := context.Background()
	key := booking.SlotKey{
		CoachID: uuid.New(),
		Date:    calendar.MustDate(2024, time.March, 6),
		Slot:    timeslot.MustParse("10:00"),
	}
	params := sqlc.GetActiveBookingAtSlotParams{
		CoachID:     key.CoachID,
		BookingDate: pgDate(2024, time.March, 6),
		TimeSlot:    "10:00",
	}

	t.Run("success: booked slot", func(t *testing.T) {
		store, mockQueries := newBookingStore(t)
		bookingID := uuid.New()
		mockQueries.EXPECT().GetActiveBookingAtSlot(ctx, gomock.Any(), params).Return(sqlc.GetActiveBookingAtSlotRow{
			ID: bookingID, ClientID: uuid.New(), Status: "confirmed",
		}, nil)

		slot, err := store.ActiveAt(ctx, key)

		require.NoError(t, err)
		assert.Equal(t, bookingID, slot.BookingID)
		assert.Equal(t, key.Slot, slot.Slot)
		assert.Equal(t, booking.StatusConfirmed, slot.Status)
	})

	t.Run("error: free slot is NOT_FOUND", func(t *testing.T) {
		store, mockQueries := newBookingStore(t)
		mockQueries.EXPECT().GetActiveBookingAtSlot(ctx, gomock.Any(), params).Return(sqlc.GetActiveBookingAtSlotRow{}, pgx.ErrNoRows)

		slot, err := store.ActiveAt(ctx, key)

		require.Error(t, err)
		assert.Nil(t, slot)
		assert.True(t, infra.IsKind(err, infra.KindNotFound))
	})

	t.Run("db error", func(t *testing.T) {
		store, mockQueries := newBookingStore(t)
		mockQueries.EXPECT().GetActiveBookingAtSlot(ctx, gomock.Any(), params).Return(sqlc.GetActiveBookingAtSlotRow{}, errDBConnectionLost)

		_, err := store.ActiveAt(ctx, key)

		require.Error(t, err)
		assert.True(t, infra.IsKind(err, infra.KindDBFailure))
	})
}

func TestBookingReadStore_FindByID(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()
	createdAt := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	cancelledAt := createdAt.Add(time.Hour)

	testCases := []struct {
		name       string
		setupMock  func(*readstoremock.MockBookingViewQueries)
		expectKind infra.RepositoryErrorKind
		verify     func(*testing.T, *queries.BookingView)
	}{
		{
			name: "キャンセル済みの予約",
			setupMock: func(m *readstoremock.MockBookingViewQueries) {
				m.EXPECT().GetBookingByID(ctx, gomock.Any(), id).Return(sqlc.GetBookingByIDRow{
					ID:              id,
					CoachID:         uuid.New(),
					ClientID:        uuid.New(),
					ClubID:          uuid.New(),
					BookingDate:     pgDate(2024, time.March, 6),
					TimeSlot:        "09:30:00",
					Status:          "cancelled",
					TotalPriceCents: 4500,
					PaymentMethod:   "card",
					CancelledAt:     pgTimestamptz(cancelledAt),
					CreatedAt:       pgTimestamptz(createdAt),
					UpdatedAt:       pgTimestamptz(cancelledAt),
				}, nil)
			},
			verify: func(t *testing.T, v *queries.BookingView) {
				assert.Equal(t, id, v.ID)
				assert.Equal(t, "2024-03-06", v.Date.String())
				assert.Equal(t, "09:30", v.Slot.String())
				assert.Equal(t, "cancelled", v.Status)
				assert.Equal(t, int64(4500), v.TotalPriceCents)
				require.NotNil(t, v.CancelledAt)
				assert.True(t, cancelledAt.Equal(*v.CancelledAt))
			},
		},
		{
			name: "存在しない予約",
			setupMock: func(m *readstoremock.MockBookingViewQueries) {
				m.EXPECT().GetBookingByID(ctx, gomock.Any(), id).Return(sqlc.GetBookingByIDRow{}, pgx.ErrNoRows)
			},
			expectKind: infra.KindNotFound,
		},
		{
			name: "日付がNULL",
			setupMock: func(m *readstoremock.MockBookingViewQueries) {
				m.EXPECT().GetBookingByID(ctx, gomock.Any(), id).Return(sqlc.GetBookingByIDRow{
					ID: id, TimeSlot: "09:30:00", Status: "confirmed",
				}, nil)
			},
			expectKind: infra.KindDBFailure,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			store, mockQueries := newBookingStore(t)
			tc.setupMock(mockQueries)

			view, err := store.FindByID(ctx, id)

			if tc.expectKind != "" {
				require.Error(t, err)
				assert.True(t, infra.IsKind(err, tc.expectKind), "expected kind [%v] but got (%v)", tc.expectKind, err)
				assert.Nil(t, view)
				return
			}
			require.NoError(t, err)
			tc.verify(t, view)
		})
	}
}

func TestBookingReadStore_FindByClient(t *testing.T) {
	ctx := context.Background()
	clientID := uuid.New()

	t.Run("first page", func(t *testing.T) {
		store, mockQueries := newBookingStore(t)
		mockQueries.EXPECT().ListBookingsByClientFirstPage(ctx, gomock.Any(), sqlc.ListBookingsByClientFirstPageParams{
			ClientID:    clientID,
			BookingDate: pgDate(2024, time.March, 1),
			Limit:       3,
		}).Return([]sqlc.ListBookingsByClientFirstPageRow{
			{ID: uuid.New(), ClientID: clientID, BookingDate: pgDate(2024, time.March, 6), TimeSlot: "09:00:00", Status: "confirmed"},
			{ID: uuid.New(), ClientID: clientID, BookingDate: pgDate(2024, time.March, 7), TimeSlot: "11:00:00", Status: "pending"},
		}, nil)

		views, err := store.FindByClientFirstPage(ctx, clientID, calendar.MustDate(2024, time.March, 1), 3)

		require.NoError(t, err)
		require.Len(t, views, 2)
		assert.Equal(t, "2024-03-06", views[0].Date.String())
		assert.Equal(t, "11:00", views[1].Slot.String())
	})

	t.Run("keyset", func(t *testing.T) {
		store, mockQueries := newBookingStore(t)
		after := queries.BookingCursor{
			Date: calendar.MustDate(2024, time.March, 6),
			Slot: timeslot.MustParse("09:00"),
			ID:   uuid.New(),
		}
		mockQueries.EXPECT().ListBookingsByClientKeyset(ctx, gomock.Any(), sqlc.ListBookingsByClientKeysetParams{
			ClientID:  clientID,
			AfterDate: pgDate(2024, time.March, 6),
			AfterSlot: "09:00",
			AfterID:   after.ID,
			RowLimit:  3,
		}).Return(nil, nil)

		views, err := store.FindByClientKeyset(ctx, clientID, after, 3)

		require.NoError(t, err)
		assert.Empty(t, views)
	})

	t.Run("db error", func(t *testing.T) {
		store, mockQueries := newBookingStore(t)
		mockQueries.EXPECT().ListBookingsByClientFirstPage(ctx, gomock.Any(), gomock.Any()).Return(nil, errDBConnectionLost)

		_, err := store.FindByClientFirstPage(ctx, clientID, calendar.MustDate(2024, time.March, 1), 3)

		require.Error(t, err)
		assert.True(t, infra.IsKind(err, infra.KindDBFailure))
	})
}
