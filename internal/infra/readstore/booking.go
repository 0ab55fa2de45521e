package readstore

import (
	"context"
	"time"

	"coach-booking/internal/domain/booking"
	"coach-booking/internal/domain/calendar"
	"coach-booking/internal/domain/timeslot"
	"coach-booking/internal/infra"
	sqlc "coach-booking/internal/infra/sqlc/generated"
	"coach-booking/internal/pkg/pgconv"
	"coach-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type BookingViewQueries interface {
	ListActiveBookingSlots(ctx context.Context, db sqlc.DBTX, arg sqlc.ListActiveBookingSlotsParams) ([]sqlc.ListActiveBookingSlotsRow, error)
	GetActiveBookingAtSlot(ctx context.Context, db sqlc.DBTX, arg sqlc.GetActiveBookingAtSlotParams) (sqlc.GetActiveBookingAtSlotRow, error)
	GetBookingByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.GetBookingByIDRow, error)
	ListBookingsByClientFirstPage(ctx context.Context, db sqlc.DBTX, arg sqlc.ListBookingsByClientFirstPageParams) ([]sqlc.ListBookingsByClientFirstPageRow, error)
	ListBookingsByClientKeyset(ctx context.Context, db sqlc.DBTX, arg sqlc.ListBookingsByClientKeysetParams) ([]sqlc.ListBookingsByClientKeysetRow, error)
}

type BookingReadStore struct {
	queries BookingViewQueries
	db      sqlc.DBTX
}

func NewBookingReadStore(queries BookingViewQueries, db sqlc.DBTX) *BookingReadStore {
	return &BookingReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *BookingReadStore) ActiveSlots(ctx context.Context, coachID uuid.UUID, date calendar.Date) ([]queries.BookedSlot, error) {
	rows, err := r.queries.ListActiveBookingSlots(ctx, r.db, sqlc.ListActiveBookingSlotsParams{
		CoachID:     coachID,
		BookingDate: pgconv.DateToPgtype(date.Time()),
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list active bookings", err)
	}

	result := make([]queries.BookedSlot, 0, len(rows))
	for _, row := range rows {
		slot, err := timeslot.Parse(row.TimeSlot)
		if err != nil {
			return nil, infra.WrapRepoErr("invalid booking time slot", err, infra.KindDBFailure)
		}
		status, err := booking.NewStatus(row.Status)
		if err != nil {
			return nil, infra.WrapRepoErr("invalid booking status", err, infra.KindDBFailure)
		}
		result = append(result, queries.BookedSlot{
			BookingID: row.ID,
			ClientID:  row.ClientID,
			Slot:      slot,
			Status:    status,
		})
	}

	return result, nil
}

// ActiveAt returns KindNotFound when no non-cancelled booking holds the slot.
func (r *BookingReadStore) ActiveAt(ctx context.Context, key booking.SlotKey) (*queries.BookedSlot, error) {
	row, err := r.queries.GetActiveBookingAtSlot(ctx, r.db, sqlc.GetActiveBookingAtSlotParams{
		CoachID:     key.CoachID,
		BookingDate: pgconv.DateToPgtype(key.Date.Time()),
		TimeSlot:    key.Slot.String(),
	})
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("no active booking at slot", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to check booking at slot", err)
	}

	status, err := booking.NewStatus(row.Status)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid booking status", err, infra.KindDBFailure)
	}

	return &queries.BookedSlot{
		BookingID: row.ID,
		ClientID:  row.ClientID,
		Slot:      key.Slot,
		Status:    status,
	}, nil
}

func (r *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	row, err := r.queries.GetBookingByID(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by ID", err)
	}

	view, err := toBookingView(bookingRow(row))
	if err != nil {
		return nil, infra.WrapRepoErr("invalid booking row", err, infra.KindDBFailure)
	}
	return view, nil
}

func (r *BookingReadStore) FindByClientFirstPage(ctx context.Context, clientID uuid.UUID, from calendar.Date, limit int32) ([]*queries.BookingView, error) {
	rows, err := r.queries.ListBookingsByClientFirstPage(ctx, r.db, sqlc.ListBookingsByClientFirstPageParams{
		ClientID:    clientID,
		BookingDate: pgconv.DateToPgtype(from.Time()),
		Limit:       limit,
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find client bookings first page", err)
	}

	result := make([]*queries.BookingView, len(rows))
	for i, row := range rows {
		view, err := toBookingView(bookingRow(row))
		if err != nil {
			return nil, infra.WrapRepoErr("invalid booking row", err, infra.KindDBFailure)
		}
		result[i] = view
	}
	return result, nil
}

func (r *BookingReadStore) FindByClientKeyset(ctx context.Context, clientID uuid.UUID, after queries.BookingCursor, limit int32) ([]*queries.BookingView, error) {
	rows, err := r.queries.ListBookingsByClientKeyset(ctx, r.db, sqlc.ListBookingsByClientKeysetParams{
		ClientID:  clientID,
		AfterDate: pgconv.DateToPgtype(after.Date.Time()),
		AfterSlot: after.Slot.String(),
		AfterID:   after.ID,
		RowLimit:  limit,
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find client bookings keyset", err)
	}

	result := make([]*queries.BookingView, len(rows))
	for i, row := range rows {
		view, err := toBookingView(bookingRow(row))
		if err != nil {
			return nil, infra.WrapRepoErr("invalid booking row", err, infra.KindDBFailure)
		}
		result[i] = view
	}
	return result, nil
}

// bookingRow is the column set shared by every full booking query.
type bookingRow struct {
	ID              uuid.UUID
	CoachID         uuid.UUID
	ClientID        uuid.UUID
	ClubID          uuid.UUID
	BookingDate     pgtype.Date
	TimeSlot        string
	Status          string
	TotalPriceCents int64
	PaymentMethod   string
	CancelledAt     pgtype.Timestamptz
	CreatedAt       pgtype.Timestamptz
	UpdatedAt       pgtype.Timestamptz
}

func toBookingView(row bookingRow) (*queries.BookingView, error) {
	day, err := pgconv.DateFromPgtype(row.BookingDate)
	if err != nil {
		return nil, err
	}
	slot, err := timeslot.Parse(row.TimeSlot)
	if err != nil {
		return nil, err
	}

	return &queries.BookingView{
		ID:              row.ID,
		CoachID:         row.CoachID,
		ClientID:        row.ClientID,
		ClubID:          row.ClubID,
		Date:            calendar.DateOf(day, time.UTC),
		Slot:            slot,
		Status:          row.Status,
		TotalPriceCents: row.TotalPriceCents,
		PaymentMethod:   row.PaymentMethod,
		CancelledAt:     pgconv.TimePtrFromPgtype(row.CancelledAt),
		CreatedAt:       pgconv.TimeFromPgtype(row.CreatedAt),
		UpdatedAt:       pgconv.TimeFromPgtype(row.UpdatedAt),
	}, nil
}
