package queries

import (
	"context"
	"time"

	"coach-booking/internal/domain/availability"
	"coach-booking/internal/domain/booking"
	"coach-booking/internal/domain/calendar"
	"coach-booking/internal/domain/timeslot"

	"github.com/google/uuid"
)

// BookedSlot is a non-cancelled booking as seen by the resolver.
type BookedSlot struct {
	BookingID uuid.UUID
	ClientID  uuid.UUID
	Slot      timeslot.TimeSlot
	Status    booking.Status
}

type BookingView struct {
	ID              uuid.UUID
	CoachID         uuid.UUID
	ClientID        uuid.UUID
	ClubID          uuid.UUID
	Date            calendar.Date
	Slot            timeslot.TimeSlot
	Status          string
	TotalPriceCents int64
	PaymentMethod   string
	CancelledAt     *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type DaySlots struct {
	Date  calendar.Date
	Slots []timeslot.TimeSlot
}

type PlanStatus string

const (
	PlanOpen      PlanStatus = "open"
	PlanPending   PlanStatus = "pending"
	PlanConfirmed PlanStatus = "confirmed"
	PlanPast      PlanStatus = "past"
)

type PlanEntry struct {
	Slot       timeslot.TimeSlot
	Status     PlanStatus
	InTemplate bool
	BookingID  *uuid.UUID
	ClientID   *uuid.UUID
}

type DayPlan struct {
	CoachID uuid.UUID
	Date    calendar.Date
	Closed  bool
	Entries []PlanEntry
}

type AvailabilityReadStore interface {
	Entries(ctx context.Context, coachID uuid.UUID, weekday calendar.StorageWeekday) ([]availability.Entry, error)
}

type BookingReadStore interface {
	ActiveSlots(ctx context.Context, coachID uuid.UUID, date calendar.Date) ([]BookedSlot, error)
	FindByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	FindByClientFirstPage(ctx context.Context, clientID uuid.UUID, from calendar.Date, limit int32) ([]*BookingView, error)
	FindByClientKeyset(ctx context.Context, clientID uuid.UUID, after BookingCursor, limit int32) ([]*BookingView, error)
}
