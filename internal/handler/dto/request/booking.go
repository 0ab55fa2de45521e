package request

import (
	"coach-booking/internal/domain/calendar"
	"coach-booking/internal/domain/timeslot"
	"coach-booking/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	CoachID  uuid.UUID `json:"coachId" binding:"required"`
	ClubID   uuid.UUID `json:"clubId" binding:"required"`
	Date     string    `json:"date" binding:"required,bookingdate"`
	TimeSlot string    `json:"timeSlot" binding:"required,timeslot"`
	// Pointer so that an explicit 0 passes "required".
	TotalPriceCents *int64 `json:"totalPriceCents" binding:"required,min=0"`
	PaymentMethod   string `json:"paymentMethod" binding:"required,max=50"`
}

// ToParams assumes the request already passed binding validation.
func (r *CreateBookingRequest) ToParams(clientID uuid.UUID) (commands.AllocateParams, error) {
	date, err := calendar.ParseDate(r.Date)
	if err != nil {
		return commands.AllocateParams{}, err
	}
	slot, err := timeslot.Parse(r.TimeSlot)
	if err != nil {
		return commands.AllocateParams{}, err
	}

	var price int64
	if r.TotalPriceCents != nil {
		price = *r.TotalPriceCents
	}

	return commands.AllocateParams{
		CoachID:       r.CoachID,
		ClientID:      clientID,
		ClubID:        r.ClubID,
		Date:          date,
		Slot:          slot,
		PriceCents:    price,
		PaymentMethod: r.PaymentMethod,
	}, nil
}

type SlotsQuery struct {
	Date string `form:"date" binding:"required,bookingdate"`
}

type WindowQuery struct {
	From string `form:"from" binding:"omitempty,bookingdate"`
	Days int    `form:"days" binding:"omitempty,min=1,max=366"`
}

// FromDate returns the zero Date when no start was given.
func (q WindowQuery) FromDate() calendar.Date {
	if q.From == "" {
		return calendar.Date{}
	}
	d, _ := calendar.ParseDate(q.From)
	return d
}

type ListBookingsQuery struct {
	// ClientID lets admins list someone else's bookings; everyone else gets their own.
	ClientID string `form:"clientId" binding:"omitempty,uuid"`
	From     string `form:"from" binding:"omitempty,bookingdate"`
	After    string `form:"after"`
	Limit    int    `form:"limit" binding:"omitempty,min=1,max=200"`
}

func (q ListBookingsQuery) FromDate() calendar.Date {
	if q.From == "" {
		return calendar.Date{}
	}
	d, _ := calendar.ParseDate(q.From)
	return d
}

func (q ListBookingsQuery) ClientOr(fallback uuid.UUID) uuid.UUID {
	if id, err := uuid.Parse(q.ClientID); err == nil {
		return id
	}
	return fallback
}
