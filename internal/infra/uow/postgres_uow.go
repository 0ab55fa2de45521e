package uow

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"time"

	"coach-booking/internal/domain/availability"
	"coach-booking/internal/domain/booking"
	"coach-booking/internal/domain/calendar"
	"coach-booking/internal/infra"
	"coach-booking/internal/infra/readstore"
	"coach-booking/internal/infra/repository"
	sqlc "coach-booking/internal/infra/sqlc/generated"
	"coach-booking/internal/pkg/errs"
	"coach-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	pgErrCodeSerializationFailure = "40001"
	pgErrCodeDeadlockDetected     = "40P01"
)

var (
	errTransactionBegin   = errs.New("failed to begin transaction")
	errTransactionCommit  = errs.New("failed to commit transaction")
	errMaxRetriesExceeded = errs.New("transaction failed after max retries")
)

type PostgresUoW struct {
	pool  *pgxpool.Pool
	q     *sqlc.Queries
	retry RetryPolicy
}

// RetryPolicy bounds retries of transactions aborted by serialization failures or deadlocks.
// Constraint violations are never retried.
type RetryPolicy struct {
	MaxRetries  int
	BaseBackoff time.Duration
}

var DefaultRetryPolicy = RetryPolicy{MaxRetries: 3, BaseBackoff: 100 * time.Millisecond}

func NewPostgresUoW(pool *pgxpool.Pool, q *sqlc.Queries) shared.UnitOfWork {
	return NewPostgresUoWWithRetry(pool, q, DefaultRetryPolicy)
}

func NewPostgresUoWWithRetry(pool *pgxpool.Pool, q *sqlc.Queries, retry RetryPolicy) shared.UnitOfWork {
	return &PostgresUoW{
		pool:  pool,
		q:     q,
		retry: retry,
	}
}

// ReadCommitted is enough here: slot exclusivity comes from the partial unique index, not isolation.
func (u *PostgresUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return u.runInTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, fn)
}

func (u *PostgresUoW) CommandReads() shared.CommandReads {
	return &commandReads{uow: u, dbtx: u.pool}
}

// Avoids defer accumulation in retry loops to prevent connection leaks
func (u *PostgresUoW) runInTx(ctx context.Context, options pgx.TxOptions, fn func(ctx context.Context, tx shared.Tx) error) error {
	for attempt := 0; ; attempt++ {
		err := u.attempt(ctx, options, fn)
		if err == nil {
			return nil
		}

		if !isRetryableError(err) {
			return err
		}
		if attempt >= u.retry.MaxRetries {
			slog.Error("transaction failed after max retries",
				"attempts", attempt+1,
				"error", err.Error())
			return errs.Mark(err, errMaxRetriesExceeded)
		}

		waitTime := calculateBackoff(attempt, u.retry.BaseBackoff)

		slog.Warn("retrying transaction due to retryable error",
			"attempt", attempt+1,
			"wait_ms", waitTime.Milliseconds(),
			"error", err.Error())

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(waitTime):
		}
	}
}

func (u *PostgresUoW) attempt(ctx context.Context, options pgx.TxOptions, fn func(ctx context.Context, tx shared.Tx) error) error {
	pgxTx, err := u.pool.BeginTx(ctx, options)
	if err != nil {
		return errs.Mark(err, errTransactionBegin)
	}

	tx := &pgTx{
		dbtx: pgxTx,
		uow:  u,
	}

	err = fn(ctx, tx)
	if err == nil {
		if err = pgxTx.Commit(ctx); err == nil {
			return nil
		}
		err = errs.Mark(err, errTransactionCommit)
	}

	if rollbackErr := pgxTx.Rollback(ctx); rollbackErr != nil {
		if !errors.Is(rollbackErr, pgx.ErrTxClosed) {
			slog.Warn("rollback failed", "error", rollbackErr.Error())
		}
	}

	return err
}

func calculateBackoff(attempt int, base time.Duration) time.Duration {
	waitTime := time.Duration(1<<attempt) * base
	if jitterRange := int64(waitTime / 5); jitterRange > 0 {
		waitTime += time.Duration(rand.Int64N(jitterRange))
	}
	return waitTime
}

func isRetryableError(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}

	switch pgErr.Code {
	case pgErrCodeSerializationFailure, pgErrCodeDeadlockDetected:
		return true
	default:
		return false
	}
}

type pgTx struct {
	dbtx sqlc.DBTX
	uow  *PostgresUoW

	// Lazy-initialized repositories
	bookingRepo      shared.BookingRepository
	notificationRepo shared.NotificationRepository
	commandReads     shared.CommandReads
}

func (t *pgTx) DB() sqlc.DBTX {
	return t.dbtx
}

func (t *pgTx) Bookings() shared.BookingRepository {
	if t.bookingRepo == nil {
		t.bookingRepo = repository.NewBookingRepository(t.uow.q, t.dbtx)
	}
	return t.bookingRepo
}

func (t *pgTx) Notifications() shared.NotificationRepository {
	if t.notificationRepo == nil {
		t.notificationRepo = repository.NewNotificationRepository(t.uow.q, t.dbtx)
	}
	return t.notificationRepo
}

func (t *pgTx) Reads() shared.CommandReads {
	if t.commandReads == nil {
		t.commandReads = &commandReads{
			uow:  t.uow,
			dbtx: t.dbtx,
		}
	}
	return t.commandReads
}

type commandReads struct {
	uow  *PostgresUoW
	dbtx sqlc.DBTX

	// Lazy-initialized readstores
	availabilityStore *readstore.AvailabilityReadStore
	bookingStore      *readstore.BookingReadStore
}

func (r *commandReads) bookings() *readstore.BookingReadStore {
	if r.bookingStore == nil {
		r.bookingStore = readstore.NewBookingReadStore(r.uow.q, r.dbtx)
	}
	return r.bookingStore
}

func (r *commandReads) AvailabilityEntries(ctx context.Context, coachID uuid.UUID, weekday calendar.StorageWeekday) ([]availability.Entry, error) {
	if r.availabilityStore == nil {
		r.availabilityStore = readstore.NewAvailabilityReadStore(r.uow.q, r.dbtx)
	}
	return r.availabilityStore.Entries(ctx, coachID, weekday)
}

func (r *commandReads) ActiveBookingAt(ctx context.Context, key booking.SlotKey) (*shared.ActiveBookingSnapshot, bool, error) {
	slot, err := r.bookings().ActiveAt(ctx, key)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}

	snapshot := &shared.ActiveBookingSnapshot{
		ID:       slot.BookingID,
		ClientID: slot.ClientID,
		Status:   slot.Status,
	}
	return snapshot, true, nil
}

func (r *commandReads) BookingByID(ctx context.Context, id uuid.UUID) (*shared.BookingSnapshot, error) {
	view, err := r.bookings().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	status, err := booking.NewStatus(view.Status)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid booking status", err, infra.KindDBFailure)
	}

	snapshot := &shared.BookingSnapshot{
		ID:              view.ID,
		CoachID:         view.CoachID,
		ClientID:        view.ClientID,
		ClubID:          view.ClubID,
		Date:            view.Date,
		Slot:            view.Slot,
		Status:          status,
		TotalPriceCents: view.TotalPriceCents,
		PaymentMethod:   view.PaymentMethod,
		CreatedAt:       view.CreatedAt,
		UpdatedAt:       view.UpdatedAt,
	}
	return snapshot, nil
}
