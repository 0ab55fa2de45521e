package queries

import (
	"context"
	"log/slog"
	"slices"

	"coach-booking/internal/domain/availability"
	"coach-booking/internal/domain/booking"
	"coach-booking/internal/domain/calendar"
	"coach-booking/internal/domain/timeslot"
	"coach-booking/internal/pkg/clock"
	"coach-booking/internal/pkg/errs"
	"coach-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrSlotResolutionFailed = errs.New("slot resolution failed")
	ErrForbidden            = errs.ErrForbidden
)

type SlotQueries interface {
	// ResolveOpenSlots returns the bookable slots for one coach and date, ascending.
	// Unknown coaches and closed days both resolve to an empty list.
	ResolveOpenSlots(ctx context.Context, coachID uuid.UUID, date calendar.Date) ([]timeslot.TimeSlot, error)
	// ResolveWindow resolves consecutive days starting at from. A zero from means today and
	// days <= 0 means the configured default window.
	ResolveWindow(ctx context.Context, coachID uuid.UUID, from calendar.Date, days int) ([]DaySlots, error)
	DayPlan(ctx context.Context, actor shared.Actor, coachID uuid.UUID, date calendar.Date) (*DayPlan, error)
}

type slotQueriesImpl struct {
	templates AvailabilityReadStore
	bookings  BookingReadStore
	policy    shared.SchedulePolicy
	clock     clock.Clock
}

func NewSlotQueries(templates AvailabilityReadStore, bookings BookingReadStore, policy shared.SchedulePolicy, clk clock.Clock) SlotQueries {
	return &slotQueriesImpl{
		templates: templates,
		bookings:  bookings,
		policy:    policy,
		clock:     clk,
	}
}

func (q *slotQueriesImpl) ResolveOpenSlots(ctx context.Context, coachID uuid.UUID, date calendar.Date) ([]timeslot.TimeSlot, error) {
	now := q.policy.Now(q.clock.Now())
	if date.Before(calendar.DateOf(now, now.Location())) {
		return []timeslot.TimeSlot{}, nil
	}

	tmpl, err := q.template(ctx, coachID, date.StorageWeekday())
	if err != nil {
		return nil, err
	}
	if tmpl.IsClosed() {
		return []timeslot.TimeSlot{}, nil
	}

	booked, err := q.activeSlots(ctx, coachID, date)
	if err != nil {
		return nil, err
	}

	return availability.OpenSlots(tmpl, claimedSet(booked), date, now, q.policy.LeadTime), nil
}

func (q *slotQueriesImpl) ResolveWindow(ctx context.Context, coachID uuid.UUID, from calendar.Date, days int) ([]DaySlots, error) {
	now := q.policy.Now(q.clock.Now())
	today := calendar.DateOf(now, now.Location())
	if from.IsZero() || from.Before(today) {
		from = today
	}
	if days <= 0 {
		days = q.policy.WindowDays
	}
	days = min(days, q.policy.MaxWindowDays)

	// A window spans at most seven distinct templates.
	templates := make(map[calendar.StorageWeekday]availability.Template, 7)

	result := make([]DaySlots, 0, days)
	for _, date := range calendar.CandidateDates(from, days) {
		weekday := date.StorageWeekday()
		tmpl, ok := templates[weekday]
		if !ok {
			var err error
			if tmpl, err = q.template(ctx, coachID, weekday); err != nil {
				return nil, err
			}
			templates[weekday] = tmpl
		}

		day := DaySlots{Date: date, Slots: []timeslot.TimeSlot{}}
		if !tmpl.IsClosed() {
			booked, err := q.activeSlots(ctx, coachID, date)
			if err != nil {
				return nil, err
			}
			day.Slots = availability.OpenSlots(tmpl, claimedSet(booked), date, now, q.policy.LeadTime)
		}
		result = append(result, day)
	}

	return result, nil
}

func (q *slotQueriesImpl) DayPlan(ctx context.Context, actor shared.Actor, coachID uuid.UUID, date calendar.Date) (*DayPlan, error) {
	if actor.ID != coachID && !actor.Role.IsAdmin() {
		return nil, ErrForbidden
	}

	now := q.policy.Now(q.clock.Now())

	tmpl, err := q.template(ctx, coachID, date.StorageWeekday())
	if err != nil {
		return nil, err
	}
	booked, err := q.activeSlots(ctx, coachID, date)
	if err != nil {
		return nil, err
	}

	open := timeslot.NewSet(availability.OpenSlots(tmpl, claimedSet(booked), date, now, q.policy.LeadTime)...)
	offered := tmpl.Slots()

	entries := make([]PlanEntry, 0, offered.Len()+len(booked))
	for _, b := range booked {
		entries = append(entries, PlanEntry{
			Slot:       b.Slot,
			Status:     planStatusOf(b.Status),
			InTemplate: offered.Contains(b.Slot),
			BookingID:  &b.BookingID,
			ClientID:   &b.ClientID,
		})
		offered.Remove(b.Slot)
	}
	for slot := range offered {
		status := PlanOpen
		if !open.Contains(slot) {
			status = PlanPast
		}
		entries = append(entries, PlanEntry{Slot: slot, Status: status, InTemplate: true})
	}

	slices.SortFunc(entries, func(a, b PlanEntry) int {
		return a.Slot.Compare(b.Slot)
	})

	return &DayPlan{
		CoachID: coachID,
		Date:    date,
		Closed:  tmpl.IsClosed(),
		Entries: entries,
	}, nil
}

func (q *slotQueriesImpl) template(ctx context.Context, coachID uuid.UUID, weekday calendar.StorageWeekday) (availability.Template, error) {
	entries, err := q.templates.Entries(ctx, coachID, weekday)
	if err != nil {
		slog.Error("failed to load availability template",
			"coach_id", coachID,
			"weekday", weekday.Int(),
			"error", err.Error())
		return availability.Template{}, errs.Mark(err, ErrSlotResolutionFailed)
	}
	return availability.NewTemplate(coachID, weekday, entries), nil
}

func (q *slotQueriesImpl) activeSlots(ctx context.Context, coachID uuid.UUID, date calendar.Date) ([]BookedSlot, error) {
	booked, err := q.bookings.ActiveSlots(ctx, coachID, date)
	if err != nil {
		slog.Error("failed to load active bookings",
			"coach_id", coachID,
			"date", date.String(),
			"error", err.Error())
		return nil, errs.Mark(err, ErrSlotResolutionFailed)
	}
	return booked, nil
}

func claimedSet(booked []BookedSlot) timeslot.Set {
	claimed := timeslot.NewSet()
	for _, b := range booked {
		claimed.Add(b.Slot)
	}
	return claimed
}

func planStatusOf(s booking.Status) PlanStatus {
	if s == booking.StatusPending {
		return PlanPending
	}
	return PlanConfirmed
}
