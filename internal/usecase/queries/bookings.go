package queries

import (
	"context"

	"coach-booking/internal/domain/calendar"
	"coach-booking/internal/infra"
	"coach-booking/internal/pkg/clock"
	"coach-booking/internal/pkg/errs"
	"coach-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrBookingNotFound = errs.New("booking not found")
	ErrInvalidCursor   = errs.New("invalid cursor")
)

type BookingQueries interface {
	GetByID(ctx context.Context, actor shared.Actor, id uuid.UUID) (*BookingView, error)
	// ListByClient pages through a client's bookings from the given date on, ordered by date and slot.
	// A zero from means today in the schedule timezone.
	ListByClient(ctx context.Context, actor shared.Actor, clientID uuid.UUID, from calendar.Date, cursor *Cursor, limit int) ([]*BookingView, *Cursor, error)
}

type bookingQueriesImpl struct {
	repo   BookingReadStore
	policy shared.SchedulePolicy
	clock  clock.Clock
}

func NewBookingQueries(repo BookingReadStore, policy shared.SchedulePolicy, clk clock.Clock) BookingQueries {
	return &bookingQueriesImpl{repo: repo, policy: policy, clock: clk}
}

func (q *bookingQueriesImpl) GetByID(ctx context.Context, actor shared.Actor, id uuid.UUID) (*BookingView, error) {
	view, err := q.repo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}

	if !actor.Role.IsAdmin() && actor.ID != view.ClientID && actor.ID != view.CoachID {
		return nil, ErrForbidden
	}
	return view, nil
}

func (q *bookingQueriesImpl) ListByClient(ctx context.Context, actor shared.Actor, clientID uuid.UUID, from calendar.Date, cursor *Cursor, limit int) ([]*BookingView, *Cursor, error) {
	if !actor.Role.IsAdmin() && actor.ID != clientID {
		return nil, nil, ErrForbidden
	}

	limit = ValidateLimit(limit)
	var rows []*BookingView
	var err error
	if cursor == nil || cursor.After == "" {
		if from.IsZero() {
			now := q.policy.Now(q.clock.Now())
			from = calendar.DateOf(now, now.Location())
		}
		rows, err = q.repo.FindByClientFirstPage(ctx, clientID, from, int32(limit+1))
	} else {
		after, derr := DecodeAfterCursor(cursor.After)
		if derr != nil {
			return nil, nil, errs.Mark(derr, ErrInvalidCursor)
		}
		rows, err = q.repo.FindByClientKeyset(ctx, clientID, after, int32(limit+1))
	}
	if err != nil {
		return nil, nil, err
	}

	var next *Cursor
	if len(rows) > limit {
		last := rows[limit-1]
		next = &Cursor{After: EncodeAfterCursor(BookingCursor{Date: last.Date, Slot: last.Slot, ID: last.ID})}
		rows = rows[:limit]
	}
	return rows, next, nil
}
