package booking

import (
	"errors"
	"time"

	"coach-booking/internal/domain/calendar"
	"coach-booking/internal/domain/timeslot"
	"coach-booking/internal/domain/user"

	"github.com/google/uuid"
)

var (
	ErrNegativePrice        = errors.New("price cannot be negative")
	ErrInvalidPaymentMethod = errors.New("payment method is required")
	ErrInvalidStatus        = errors.New("invalid booking status")
	ErrInvalidInitialStatus = errors.New("new bookings must be pending or confirmed")
	ErrAlreadyCancelled     = errors.New("booking is already cancelled")
	ErrMissingParticipant   = errors.New("coach, client and club are required")
)

type Booking struct {
	id            uuid.UUID
	coachID       uuid.UUID
	clientID      uuid.UUID
	clubID        uuid.UUID
	date          calendar.Date
	slot          timeslot.TimeSlot
	status        Status
	price         Money
	paymentMethod PaymentMethod
	createdAt     time.Time
	updatedAt     time.Time
}

func NewBooking(
	coachID, clientID, clubID uuid.UUID,
	date calendar.Date,
	slot timeslot.TimeSlot,
	status Status,
	price Money,
	paymentMethod PaymentMethod,
	now time.Time,
) (*Booking, error) {
	if coachID == uuid.Nil || clientID == uuid.Nil || clubID == uuid.Nil {
		return nil, ErrMissingParticipant
	}
	if !status.IsActive() {
		return nil, ErrInvalidInitialStatus
	}

	return &Booking{
		id:            uuid.New(),
		coachID:       coachID,
		clientID:      clientID,
		clubID:        clubID,
		date:          date,
		slot:          slot,
		status:        status,
		price:         price,
		paymentMethod: paymentMethod,
		createdAt:     now,
		updatedAt:     now,
	}, nil
}

func ReconstructBooking(
	id, coachID, clientID, clubID uuid.UUID,
	date calendar.Date,
	slot timeslot.TimeSlot,
	status Status,
	price Money,
	paymentMethod PaymentMethod,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:            id,
		coachID:       coachID,
		clientID:      clientID,
		clubID:        clubID,
		date:          date,
		slot:          slot,
		status:        status,
		price:         price,
		paymentMethod: paymentMethod,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

func (b *Booking) Cancel(now time.Time) error {
	if b.status == StatusCancelled {
		return ErrAlreadyCancelled
	}
	b.status = StatusCancelled
	b.updatedAt = now
	return nil
}

func (b *Booking) IsActive() bool {
	return b.status.IsActive()
}

func (b *Booking) Key() SlotKey {
	return SlotKey{CoachID: b.coachID, Date: b.date, Slot: b.slot}
}

// VisibleTo reports whether the actor may read this booking.
func (b *Booking) VisibleTo(actorID uuid.UUID, role user.Role) bool {
	return role.IsAdmin() || actorID == b.clientID || actorID == b.coachID
}

// CancellableBy reports whether the actor may cancel this booking.
func (b *Booking) CancellableBy(actorID uuid.UUID, role user.Role) bool {
	return b.VisibleTo(actorID, role)
}

func (b *Booking) ID() uuid.UUID                { return b.id }
func (b *Booking) CoachID() uuid.UUID           { return b.coachID }
func (b *Booking) ClientID() uuid.UUID          { return b.clientID }
func (b *Booking) ClubID() uuid.UUID            { return b.clubID }
func (b *Booking) Date() calendar.Date          { return b.date }
func (b *Booking) Slot() timeslot.TimeSlot      { return b.slot }
func (b *Booking) Status() Status               { return b.status }
func (b *Booking) Price() Money                 { return b.price }
func (b *Booking) PaymentMethod() PaymentMethod { return b.paymentMethod }
func (b *Booking) CreatedAt() time.Time         { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time         { return b.updatedAt }
