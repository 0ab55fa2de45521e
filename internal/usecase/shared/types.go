package shared

import (
	"time"

	"coach-booking/internal/domain/booking"
	"coach-booking/internal/domain/calendar"
	"coach-booking/internal/domain/timeslot"
	"coach-booking/internal/domain/user"

	"github.com/google/uuid"
)

// Actor is the authenticated caller of a use case.
type Actor struct {
	ID   uuid.UUID
	Role user.Role
}

// Minimal snapshot for the pre-insert conflict check
type ActiveBookingSnapshot struct {
	ID       uuid.UUID
	ClientID uuid.UUID
	Status   booking.Status
}

type BookingSnapshot struct {
	ID              uuid.UUID
	CoachID         uuid.UUID
	ClientID        uuid.UUID
	ClubID          uuid.UUID
	Date            calendar.Date
	Slot            timeslot.TimeSlot
	Status          booking.Status
	TotalPriceCents int64
	PaymentMethod   string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ToDomain rebuilds the entity from trusted storage values.
func (s *BookingSnapshot) ToDomain() (*booking.Booking, error) {
	price, err := booking.NewMoney(s.TotalPriceCents)
	if err != nil {
		return nil, err
	}
	payment, err := booking.NewPaymentMethod(s.PaymentMethod)
	if err != nil {
		return nil, err
	}
	return booking.ReconstructBooking(
		s.ID, s.CoachID, s.ClientID, s.ClubID,
		s.Date, s.Slot, s.Status, price, payment,
		s.CreatedAt, s.UpdatedAt,
	), nil
}
