package converter

import (
	"coach-booking/internal/domain/booking"
	sqlc "coach-booking/internal/infra/sqlc/generated"
	"coach-booking/internal/pkg/pgconv"
)

func BookingToInfra(b *booking.Booking) sqlc.CreateBookingParams {
	return sqlc.CreateBookingParams{
		ID:              b.ID(),
		CoachID:         b.CoachID(),
		ClientID:        b.ClientID(),
		ClubID:          b.ClubID(),
		BookingDate:     pgconv.DateToPgtype(b.Date().Time()),
		TimeSlot:        b.Slot().String(),
		Status:          b.Status().String(),
		TotalPriceCents: b.Price().Cents(),
		PaymentMethod:   b.PaymentMethod().Value(),
		CreatedAt:       pgconv.TimeToPgtype(b.CreatedAt()),
		UpdatedAt:       pgconv.TimeToPgtype(b.UpdatedAt()),
	}
}
