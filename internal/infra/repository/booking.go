package repository

import (
	"context"
	"time"

	"coach-booking/internal/domain/booking"
	"coach-booking/internal/infra"
	"coach-booking/internal/infra/repository/converter"
	sqlc "coach-booking/internal/infra/sqlc/generated"
	"coach-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
)

// ActiveSlotConstraint is the partial unique index that allows one non-cancelled booking per coach, date and slot.
const ActiveSlotConstraint = "bookings_active_slot_key"

type BookingWriteQueries interface {
	CreateBooking(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateBookingParams) error
	CancelBooking(ctx context.Context, db sqlc.DBTX, arg sqlc.CancelBookingParams) (int64, error)
}

type BookingRepository struct {
	queries BookingWriteQueries
	db      sqlc.DBTX
}

func NewBookingRepository(queries BookingWriteQueries, db sqlc.DBTX) *BookingRepository {
	return &BookingRepository{
		queries: queries,
		db:      db,
	}
}

// Create returns KindConflict when another active booking already holds the slot.
func (r *BookingRepository) Create(ctx context.Context, tx sqlc.DBTX, b *booking.Booking) error {
	params := converter.BookingToInfra(b)

	err := r.queries.CreateBooking(ctx, tx, params)
	if err != nil {
		if infra.ConstraintName(err) == ActiveSlotConstraint {
			return infra.WrapRepoErr("slot already taken", err, infra.KindConflict)
		}
		return infra.WrapRepoErr("failed to create booking", err)
	}

	return nil
}

// Cancel returns KindNotFound when no non-cancelled booking with the id exists.
func (r *BookingRepository) Cancel(ctx context.Context, tx sqlc.DBTX, id uuid.UUID, at time.Time) error {
	affected, err := r.queries.CancelBooking(ctx, tx, sqlc.CancelBookingParams{
		ID:          id,
		CancelledAt: pgconv.TimeToPgtype(at),
	})
	if err != nil {
		return infra.WrapRepoErr("failed to cancel booking", err)
	}
	if affected == 0 {
		return infra.WrapRepoErr("active booking not found", nil, infra.KindNotFound)
	}

	return nil
}
