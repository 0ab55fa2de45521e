//go:build unit

package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"coach-booking/internal/domain/booking"
	"coach-booking/internal/infra"
	"coach-booking/internal/infra/repository"
	sqlc "coach-booking/internal/infra/sqlc/generated"
	"coach-booking/tests/common/builder"
	repositorymock "coach-booking/tests/mock/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// =============================================================================
// Create Booking Tests
// =============================================================================

func TestBookingRepository_Create(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name          string
		setupMock     func(*repositorymock.MockBookingWriteQueries, *booking.Booking, sqlc.DBTX)
		expectedError bool
		expectKind    infra.RepositoryErrorKind
	}{
		{
			name: "success: booking created with canonical slot",
			setupMock: func(mock *repositorymock.MockBookingWriteQueries, b *booking.Booking, tx sqlc.DBTX) {
				mock.EXPECT().CreateBooking(ctx, tx, gomock.Any()).DoAndReturn(
					func(_ context.Context, _ sqlc.DBTX, arg sqlc.CreateBookingParams) error {
						assert.Equal(t, b.ID(), arg.ID)
						assert.Equal(t, "10:00", arg.TimeSlot)
						assert.Equal(t, "confirmed", arg.Status)
						assert.Equal(t, b.Date().Time(), arg.BookingDate.Time)
						return nil
					})
			},
		},
		{
			name: "error: active slot index violated is a conflict",
			setupMock: func(mock *repositorymock.MockBookingWriteQueries, b *booking.Booking, tx sqlc.DBTX) {
				dup := &pgconn.PgError{Code: "23505", ConstraintName: repository.ActiveSlotConstraint}
				mock.EXPECT().CreateBooking(ctx, tx, gomock.Any()).Return(dup)
			},
			expectedError: true,
			expectKind:    infra.KindConflict,
		},
		{
			name: "error: other unique violation stays duplicate key",
			setupMock: func(mock *repositorymock.MockBookingWriteQueries, b *booking.Booking, tx sqlc.DBTX) {
				dup := &pgconn.PgError{Code: "23505", ConstraintName: "bookings_pkey"}
				mock.EXPECT().CreateBooking(ctx, tx, gomock.Any()).Return(dup)
			},
			expectedError: true,
			expectKind:    infra.KindDuplicateKey,
		},
		{
			name: "error: unknown coach",
			setupMock: func(mock *repositorymock.MockBookingWriteQueries, b *booking.Booking, tx sqlc.DBTX) {
				fk := &pgconn.PgError{Code: "23503", ConstraintName: "bookings_coach_id_fkey"}
				mock.EXPECT().CreateBooking(ctx, tx, gomock.Any()).Return(fk)
			},
			expectedError: true,
			expectKind:    infra.KindForeignKeyViolated,
		},
		{
			name: "error: database error occurs",
			setupMock: func(mock *repositorymock.MockBookingWriteQueries, b *booking.Booking, tx sqlc.DBTX) {
				mock.EXPECT().CreateBooking(ctx, tx, gomock.Any()).Return(errors.New("database connection error"))
			},
			expectedError: true,
			expectKind:    infra.KindDBFailure,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockQueries := repositorymock.NewMockBookingWriteQueries(ctrl)
			mockDB := &mockDBTX{}
			repo := repository.NewBookingRepository(mockQueries, mockDB)

			b, err := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) {
				b.Slot = "10:00:00"
			}).BuildDomain()
			require.NoError(t, err)

			tc.setupMock(mockQueries, b, mockDB)

			actualError := repo.Create(ctx, mockDB, b)

			if tc.expectedError {
				require.Error(t, actualError)
				assert.True(t, infra.IsKind(actualError, tc.expectKind), "expected kind [%v] but got [%T] (%v)", tc.expectKind, actualError, actualError)
			} else {
				assert.NoError(t, actualError)
			}
		})
	}
}

// =============================================================================
// Cancel Booking Tests
// =============================================================================

func TestBookingRepository_Cancel(t *testing.T) {
	ctx := context.Background()
	bookingID := uuid.New()
	at := time.Date(2024, 3, 6, 9, 0, 0, 0, time.UTC)

	testCases := []struct {
		name          string
		affected      int64
		queryErr      error
		expectedError bool
		expectKind    infra.RepositoryErrorKind
	}{
		{name: "success: booking cancelled", affected: 1},
		{name: "error: already cancelled or missing", affected: 0, expectedError: true, expectKind: infra.KindNotFound},
		{name: "error: database error occurs", queryErr: pgx.ErrTxClosed, expectedError: true, expectKind: infra.KindDBFailure},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockQueries := repositorymock.NewMockBookingWriteQueries(ctrl)
			mockDB := &mockDBTX{}
			repo := repository.NewBookingRepository(mockQueries, mockDB)

			mockQueries.EXPECT().CancelBooking(ctx, mockDB, gomock.Any()).DoAndReturn(
				func(_ context.Context, _ sqlc.DBTX, arg sqlc.CancelBookingParams) (int64, error) {
					assert.Equal(t, bookingID, arg.ID)
					assert.True(t, arg.CancelledAt.Valid)
					assert.Equal(t, at, arg.CancelledAt.Time)
					return tc.affected, tc.queryErr
				})

			actualError := repo.Cancel(ctx, mockDB, bookingID, at)

			if tc.expectedError {
				require.Error(t, actualError)
				assert.True(t, infra.IsKind(actualError, tc.expectKind), "expected kind [%v] but got (%v)", tc.expectKind, actualError)
			} else {
				assert.NoError(t, actualError)
			}
		})
	}
}

// =============================================================================
// Notification Job Tests
// =============================================================================

func TestNotificationRepository_CreateJob(t *testing.T) {
	ctx := context.Background()
	runAt := time.Date(2024, 3, 6, 9, 0, 0, 0, time.UTC)

	t.Run("success: job queued", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockQueries := repositorymock.NewMockNotificationWriteQueries(ctrl)
		mockDB := &mockDBTX{}
		repo := repository.NewNotificationRepository(mockQueries, mockDB)

		mockQueries.EXPECT().CreateNotificationJob(ctx, mockDB, sqlc.CreateNotificationJobParams{
			Kind:    "email",
			Topic:   "booking_claimed",
			Payload: []byte(`{}`),
			RunAt:   pgtypeTimestamptz(runAt),
			Status:  "queued",
		}).Return(nil)

		require.NoError(t, repo.CreateJob(ctx, mockDB, "email", "booking_claimed", []byte(`{}`), runAt))
	})

	t.Run("error: database error occurs", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockQueries := repositorymock.NewMockNotificationWriteQueries(ctrl)
		mockDB := &mockDBTX{}
		repo := repository.NewNotificationRepository(mockQueries, mockDB)

		mockQueries.EXPECT().CreateNotificationJob(ctx, mockDB, gomock.Any()).Return(errors.New("boom"))

		err := repo.CreateJob(ctx, mockDB, "email", "booking_claimed", []byte(`{}`), runAt)
		assert.True(t, infra.IsKind(err, infra.KindDBFailure))
	})
}
