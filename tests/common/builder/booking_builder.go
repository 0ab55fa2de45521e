//go:build unit || e2e

package builder

import (
	"time"

	"coach-booking/internal/domain/booking"
	"coach-booking/internal/domain/calendar"
	"coach-booking/internal/domain/timeslot"
	reqdto "coach-booking/internal/handler/dto/request"
	"coach-booking/internal/usecase/commands"
	"coach-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingBuilder struct {
	CoachID       uuid.UUID
	ClientID      uuid.UUID
	ClubID        uuid.UUID
	Date          calendar.Date
	Slot          string
	Status        booking.Status
	PriceCents    int64
	PaymentMethod string
	CreatedAt     time.Time
}

func NewBookingBuilder() *BookingBuilder {
	return &BookingBuilder{
		CoachID:       uuid.New(),
		ClientID:      uuid.New(),
		ClubID:        uuid.New(),
		Date:          calendar.MustDate(2024, time.March, 6), // Wednesday
		Slot:          "10:00",
		Status:        booking.StatusConfirmed,
		PriceCents:    5000,
		PaymentMethod: "card",
		CreatedAt:     time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

// Build methods
func (b *BookingBuilder) BuildDomain() (*booking.Booking, error) {
	slot, err := timeslot.Parse(b.Slot)
	if err != nil {
		return nil, err
	}
	price, err := booking.NewMoney(b.PriceCents)
	if err != nil {
		return nil, err
	}
	payment, err := booking.NewPaymentMethod(b.PaymentMethod)
	if err != nil {
		return nil, err
	}
	return booking.NewBooking(b.CoachID, b.ClientID, b.ClubID, b.Date, slot, b.Status, price, payment, b.CreatedAt)
}

// MustBuildStored returns a booking as it would be read back from storage, with any status.
func (b *BookingBuilder) MustBuildStored() *booking.Booking {
	price, err := booking.NewMoney(b.PriceCents)
	if err != nil {
		panic(err)
	}
	payment, err := booking.NewPaymentMethod(b.PaymentMethod)
	if err != nil {
		panic(err)
	}
	return booking.ReconstructBooking(
		uuid.New(), b.CoachID, b.ClientID, b.ClubID,
		b.Date, timeslot.MustParse(b.Slot), b.Status, price, payment,
		b.CreatedAt, b.CreatedAt,
	)
}

func (b *BookingBuilder) BuildAllocateParams() commands.AllocateParams {
	return commands.AllocateParams{
		CoachID:       b.CoachID,
		ClientID:      b.ClientID,
		ClubID:        b.ClubID,
		Date:          b.Date,
		Slot:          timeslot.MustParse(b.Slot),
		PriceCents:    b.PriceCents,
		PaymentMethod: b.PaymentMethod,
	}
}

func (b *BookingBuilder) BuildView() *queries.BookingView {
	return &queries.BookingView{
		ID:              uuid.New(),
		CoachID:         b.CoachID,
		ClientID:        b.ClientID,
		ClubID:          b.ClubID,
		Date:            b.Date,
		Slot:            timeslot.MustParse(b.Slot),
		Status:          b.Status.String(),
		TotalPriceCents: b.PriceCents,
		PaymentMethod:   b.PaymentMethod,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.CreatedAt,
	}
}

func (b *BookingBuilder) BuildCreateRequestDTO() reqdto.CreateBookingRequest {
	price := b.PriceCents
	return reqdto.CreateBookingRequest{
		CoachID:         b.CoachID,
		ClubID:          b.ClubID,
		Date:            b.Date.String(),
		TimeSlot:        b.Slot,
		TotalPriceCents: &price,
		PaymentMethod:   b.PaymentMethod,
	}
}
