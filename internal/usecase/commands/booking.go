package commands

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"coach-booking/internal/domain/availability"
	"coach-booking/internal/domain/booking"
	"coach-booking/internal/domain/calendar"
	"coach-booking/internal/domain/timeslot"
	"coach-booking/internal/infra"
	"coach-booking/internal/pkg/clock"
	"coach-booking/internal/pkg/errs"
	"coach-booking/internal/usecase/queries"
	"coach-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrInvalidBookingRequest   = errs.New("invalid booking request")
	ErrSlotNotOffered          = errs.New("coach does not offer this slot")
	ErrLeadTimeNotMet          = errs.New("slot starts too soon to be booked")
	ErrDateInPast              = errs.New("booking date is in the past")
	ErrUnknownReference        = errs.New("unknown coach, client or club")
	ErrAllocationFailed        = errs.New("allocation failed")
	ErrBookingNotFound         = errs.New("booking not found")
	ErrBookingAlreadyCancelled = errs.New("booking already cancelled")
	ErrForbidden               = errs.ErrForbidden
)

type Outcome string

const (
	OutcomeClaimed      Outcome = "claimed"
	OutcomeAlreadyTaken Outcome = "already_taken"
)

const (
	notificationKind      = "email"
	topicBookingClaimed   = "booking_claimed"
	topicBookingCancelled = "booking_cancelled"
)

type AllocateParams struct {
	CoachID       uuid.UUID
	ClientID      uuid.UUID
	ClubID        uuid.UUID
	Date          calendar.Date
	Slot          timeslot.TimeSlot
	PriceCents    int64
	PaymentMethod string
}

// AllocationResult is returned for both terminal non-error outcomes.
// FreshSlots is only set when the slot was already taken.
type AllocationResult struct {
	Outcome    Outcome
	Booking    *booking.Booking
	FreshSlots []timeslot.TimeSlot
}

type BookingCommands interface {
	// Allocate claims one slot for one client. Losing a race is not an error: it yields
	// OutcomeAlreadyTaken with the recomputed open slots.
	Allocate(ctx context.Context, params AllocateParams) (*AllocationResult, error)
	Cancel(ctx context.Context, actor shared.Actor, id uuid.UUID) (*booking.Booking, error)
}

type bookingUseCaseImpl struct {
	uow    shared.UnitOfWork
	slots  queries.SlotQueries
	policy shared.SchedulePolicy
	clock  clock.Clock
}

func NewBookingUseCase(
	uow shared.UnitOfWork,
	slots queries.SlotQueries,
	policy shared.SchedulePolicy,
	clock clock.Clock,
) BookingCommands {
	return &bookingUseCaseImpl{
		uow:    uow,
		slots:  slots,
		policy: policy,
		clock:  clock,
	}
}

func (u *bookingUseCaseImpl) Allocate(ctx context.Context, params AllocateParams) (*AllocationResult, error) {
	now := u.policy.Now(u.clock.Now())

	price, err := booking.NewMoney(params.PriceCents)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidBookingRequest)
	}
	payment, err := booking.NewPaymentMethod(params.PaymentMethod)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidBookingRequest)
	}

	if err := u.validateSlot(ctx, params, now); err != nil {
		return nil, err
	}

	key := booking.SlotKey{CoachID: params.CoachID, Date: params.Date, Slot: params.Slot}
	holder, found, err := u.uow.CommandReads().ActiveBookingAt(ctx, key)
	if err != nil {
		return nil, errs.Mark(err, ErrAllocationFailed)
	}
	if found {
		slog.Info("slot already taken",
			"coach_id", params.CoachID,
			"date", params.Date.String(),
			"slot", params.Slot.String(),
			"holder_booking_id", holder.ID,
			"detected_by", "pre_check")
		return u.alreadyTaken(ctx, params), nil
	}

	b, err := booking.NewBooking(
		params.CoachID, params.ClientID, params.ClubID,
		params.Date, params.Slot, u.policy.InitialStatus,
		price, payment, now,
	)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidBookingRequest)
	}

	err = u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Bookings().Create(ctx, tx.DB(), b); err != nil {
			return err
		}
		return u.enqueue(ctx, tx, topicBookingClaimed, b)
	})
	if err != nil {
		switch {
		case infra.IsKind(err, infra.KindConflict):
			slog.Info("slot already taken",
				"coach_id", params.CoachID,
				"date", params.Date.String(),
				"slot", params.Slot.String(),
				"detected_by", "unique_constraint")
			return u.alreadyTaken(ctx, params), nil
		case infra.IsKind(err, infra.KindForeignKeyViolated):
			return nil, errs.Mark(err, ErrUnknownReference)
		default:
			slog.Warn("allocation failed",
				"coach_id", params.CoachID,
				"date", params.Date.String(),
				"slot", params.Slot.String(),
				"error", err.Error())
			return nil, errs.Mark(err, ErrAllocationFailed)
		}
	}

	slog.Info("slot claimed",
		"booking_id", b.ID(),
		"coach_id", b.CoachID(),
		"client_id", b.ClientID(),
		"date", b.Date().String(),
		"slot", b.Slot().String(),
		"status", b.Status().String())

	return &AllocationResult{Outcome: OutcomeClaimed, Booking: b}, nil
}

// validateSlot checks the request against the primary store, never the template cache.
func (u *bookingUseCaseImpl) validateSlot(ctx context.Context, params AllocateParams, now time.Time) error {
	today := calendar.DateOf(now, now.Location())
	if params.Date.Before(today) {
		return ErrDateInPast
	}

	weekday := params.Date.StorageWeekday()
	entries, err := u.uow.CommandReads().AvailabilityEntries(ctx, params.CoachID, weekday)
	if err != nil {
		return errs.Mark(err, ErrAllocationFailed)
	}
	if !availability.NewTemplate(params.CoachID, weekday, entries).Offers(params.Slot) {
		return ErrSlotNotOffered
	}

	if params.Date.Equal(today) && !timeslot.MeetsLeadTime(params.Slot, now, u.policy.LeadTime) {
		return ErrLeadTimeNotMet
	}
	return nil
}

// alreadyTaken never fails: when the refresh itself fails the caller still learns the slot is gone.
func (u *bookingUseCaseImpl) alreadyTaken(ctx context.Context, params AllocateParams) *AllocationResult {
	fresh, err := u.slots.ResolveOpenSlots(ctx, params.CoachID, params.Date)
	if err != nil {
		slog.Warn("failed to refresh open slots",
			"coach_id", params.CoachID,
			"date", params.Date.String(),
			"error", err.Error())
		fresh = []timeslot.TimeSlot{}
	}
	return &AllocationResult{Outcome: OutcomeAlreadyTaken, FreshSlots: fresh}
}

// Cancel loads, authorizes and updates inside one transaction so the checks see the row being cancelled.
func (u *bookingUseCaseImpl) Cancel(ctx context.Context, actor shared.Actor, id uuid.UUID) (*booking.Booking, error) {
	now := u.clock.Now()

	var cancelled *booking.Booking
	err := u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snapshot, err := tx.Reads().BookingByID(ctx, id)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrBookingNotFound
			}
			return err
		}

		b, err := snapshot.ToDomain()
		if err != nil {
			return err
		}
		if !b.CancellableBy(actor.ID, actor.Role) {
			return ErrForbidden
		}
		if err := b.Cancel(now); err != nil {
			if errors.Is(err, booking.ErrAlreadyCancelled) {
				return ErrBookingAlreadyCancelled
			}
			return err
		}

		if err := tx.Bookings().Cancel(ctx, tx.DB(), b.ID(), now); err != nil {
			// Lost a race with another cancellation.
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrBookingAlreadyCancelled
			}
			return err
		}
		if err := u.enqueue(ctx, tx, topicBookingCancelled, b); err != nil {
			return err
		}

		cancelled = b
		return nil
	})
	if err != nil {
		switch {
		case errs.Is(err, ErrBookingNotFound), errs.Is(err, ErrForbidden), errs.Is(err, ErrBookingAlreadyCancelled):
			return nil, err
		default:
			return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
	}

	slog.Info("booking cancelled",
		"booking_id", cancelled.ID(),
		"actor_id", actor.ID,
		"actor_role", actor.Role.String(),
		"date", cancelled.Date().String(),
		"slot", cancelled.Slot().String())

	return cancelled, nil
}

type bookingEvent struct {
	Type      string    `json:"type"`
	BookingID uuid.UUID `json:"booking_id"`
	CoachID   uuid.UUID `json:"coach_id"`
	ClientID  uuid.UUID `json:"client_id"`
	Date      string    `json:"date"`
	Slot      string    `json:"slot"`
	Status    string    `json:"status"`
}

func (u *bookingUseCaseImpl) enqueue(ctx context.Context, tx shared.Tx, topic string, b *booking.Booking) error {
	payload, err := json.Marshal(bookingEvent{
		Type:      topic,
		BookingID: b.ID(),
		CoachID:   b.CoachID(),
		ClientID:  b.ClientID(),
		Date:      b.Date().String(),
		Slot:      b.Slot().String(),
		Status:    b.Status().String(),
	})
	if err != nil {
		return err
	}
	return tx.Notifications().CreateJob(ctx, tx.DB(), notificationKind, topic, payload, u.clock.Now())
}
