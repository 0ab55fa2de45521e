//go:build unit || e2e

// Package fakestore is an in-memory stand-in for the Postgres unit of work and read stores.
// It enforces the one-active-booking-per-slot rule the same way the partial unique index does.
package fakestore

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"coach-booking/internal/domain/availability"
	"coach-booking/internal/domain/booking"
	"coach-booking/internal/domain/calendar"
	"coach-booking/internal/domain/timeslot"
	"coach-booking/internal/infra"
	sqlc "coach-booking/internal/infra/sqlc/generated"
	"coach-booking/internal/usecase/queries"
	"coach-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	errActiveSlotTaken = errors.New(`duplicate key value violates unique constraint "bookings_active_slot_key"`)
	errNoRows          = errors.New("no rows in result set")
)

type record struct {
	snapshot    shared.BookingSnapshot
	cancelledAt *time.Time
}

type Job struct {
	Kind    string
	Topic   string
	Payload []byte
	RunAt   time.Time
}

type Store struct {
	mu        sync.Mutex
	templates []availability.Entry
	bookings  map[uuid.UUID]*record
	jobs      []*Job

	// Hooks for failure and race injection. Set them before use.
	ReadErr     error
	CreateErr   error
	BeforeWrite func()

	txReads int
}

var (
	_ shared.UnitOfWork              = (*Store)(nil)
	_ queries.AvailabilityReadStore = (*Store)(nil)
	_ queries.BookingReadStore      = (*Store)(nil)
)

func New() *Store {
	return &Store{bookings: map[uuid.UUID]*record{}}
}

// AddTemplate offers the given slots for coachID on weekday.
func (s *Store) AddTemplate(coachID uuid.UUID, weekday calendar.StorageWeekday, available bool, slots ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, raw := range slots {
		s.templates = append(s.templates, availability.Entry{
			CoachID:     coachID,
			Weekday:     weekday,
			Slot:        timeslot.MustParse(raw),
			IsAvailable: available,
		})
	}
}

// Seed stores a booking as-is, bypassing the uniqueness check.
func (s *Store) Seed(b *booking.Booking) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bookings[b.ID()] = &record{snapshot: snapshotOf(b)}
}

// ActiveCount counts non-cancelled bookings for the slot.
func (s *Store) ActiveCount(key booking.SlotKey) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, r := range s.bookings {
		if r.snapshot.Status.IsActive() && keyOf(r.snapshot) == key {
			n++
		}
	}
	return n
}

// TxReadCount reports how often a transaction asked for its reads.
func (s *Store) TxReadCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.txReads
}

func (s *Store) Jobs() []Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Job, len(s.jobs))
	for i, j := range s.jobs {
		out[i] = *j
	}
	return out
}

// =============================================================================
// Unit of work
// =============================================================================

func (s *Store) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	tx := &fakeTx{store: s}
	if err := fn(ctx, tx); err != nil {
		tx.rollback()
		return err
	}
	return nil
}

func (s *Store) CommandReads() shared.CommandReads {
	return s
}

type fakeTx struct {
	store *Store
	undo  []func()
}

func (t *fakeTx) Bookings() shared.BookingRepository           { return t }
func (t *fakeTx) Notifications() shared.NotificationRepository { return t }

func (t *fakeTx) Reads() shared.CommandReads {
	t.store.mu.Lock()
	t.store.txReads++
	t.store.mu.Unlock()
	return t.store
}
func (t *fakeTx) DB() sqlc.DBTX                                { return nil }

func (t *fakeTx) rollback() {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	for i := len(t.undo) - 1; i >= 0; i-- {
		t.undo[i]()
	}
}

func (t *fakeTx) Create(_ context.Context, _ sqlc.DBTX, b *booking.Booking) error {
	if t.store.BeforeWrite != nil {
		t.store.BeforeWrite()
	}

	s := t.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.CreateErr != nil {
		return infra.WrapRepoErr("failed to create booking", s.CreateErr)
	}
	for _, r := range s.bookings {
		if r.snapshot.Status.IsActive() && keyOf(r.snapshot) == b.Key() {
			return infra.WrapRepoErr("slot already taken", errActiveSlotTaken, infra.KindConflict)
		}
	}

	id := b.ID()
	s.bookings[id] = &record{snapshot: snapshotOf(b)}
	t.undo = append(t.undo, func() { delete(s.bookings, id) })
	return nil
}

func (t *fakeTx) Cancel(_ context.Context, _ sqlc.DBTX, id uuid.UUID, at time.Time) error {
	if t.store.BeforeWrite != nil {
		t.store.BeforeWrite()
	}

	s := t.store
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.bookings[id]
	if !ok || r.snapshot.Status == booking.StatusCancelled {
		return infra.WrapRepoErr("active booking not found", nil, infra.KindNotFound)
	}

	prev := *r
	r.snapshot.Status = booking.StatusCancelled
	r.snapshot.UpdatedAt = at
	r.cancelledAt = &at
	t.undo = append(t.undo, func() { *r = prev })
	return nil
}

func (t *fakeTx) CreateJob(_ context.Context, _ sqlc.DBTX, kind, topic string, payload []byte, runAt time.Time) error {
	s := t.store
	s.mu.Lock()
	defer s.mu.Unlock()

	job := &Job{Kind: kind, Topic: topic, Payload: payload, RunAt: runAt}
	s.jobs = append(s.jobs, job)
	t.undo = append(t.undo, func() {
		s.jobs = slices.DeleteFunc(s.jobs, func(j *Job) bool { return j == job })
	})
	return nil
}

// =============================================================================
// Command reads
// =============================================================================

func (s *Store) AvailabilityEntries(ctx context.Context, coachID uuid.UUID, weekday calendar.StorageWeekday) ([]availability.Entry, error) {
	return s.Entries(ctx, coachID, weekday)
}

func (s *Store) ActiveBookingAt(_ context.Context, key booking.SlotKey) (*shared.ActiveBookingSnapshot, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ReadErr != nil {
		return nil, false, s.ReadErr
	}
	for _, r := range s.bookings {
		if r.snapshot.Status.IsActive() && keyOf(r.snapshot) == key {
			return &shared.ActiveBookingSnapshot{
				ID:       r.snapshot.ID,
				ClientID: r.snapshot.ClientID,
				Status:   r.snapshot.Status,
			}, true, nil
		}
	}
	return nil, false, nil
}

func (s *Store) BookingByID(_ context.Context, id uuid.UUID) (*shared.BookingSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ReadErr != nil {
		return nil, s.ReadErr
	}
	r, ok := s.bookings[id]
	if !ok {
		return nil, infra.WrapRepoErr("booking not found", errNoRows, infra.KindNotFound)
	}
	snapshot := r.snapshot
	return &snapshot, nil
}

// =============================================================================
// Read stores
// =============================================================================

func (s *Store) Entries(_ context.Context, coachID uuid.UUID, weekday calendar.StorageWeekday) ([]availability.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ReadErr != nil {
		return nil, s.ReadErr
	}
	var out []availability.Entry
	for _, e := range s.templates {
		if e.CoachID == coachID && e.Weekday == weekday {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *Store) ActiveSlots(_ context.Context, coachID uuid.UUID, date calendar.Date) ([]queries.BookedSlot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ReadErr != nil {
		return nil, s.ReadErr
	}
	var out []queries.BookedSlot
	for _, r := range s.bookings {
		b := r.snapshot
		if b.CoachID == coachID && b.Date.Equal(date) && b.Status.IsActive() {
			out = append(out, queries.BookedSlot{BookingID: b.ID, ClientID: b.ClientID, Slot: b.Slot, Status: b.Status})
		}
	}
	slices.SortFunc(out, func(a, b queries.BookedSlot) int { return a.Slot.Compare(b.Slot) })
	return out, nil
}

func (s *Store) FindByID(_ context.Context, id uuid.UUID) (*queries.BookingView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ReadErr != nil {
		return nil, s.ReadErr
	}
	r, ok := s.bookings[id]
	if !ok {
		return nil, infra.WrapRepoErr("booking not found", errNoRows, infra.KindNotFound)
	}
	return viewOf(r), nil
}

func (s *Store) FindByClientFirstPage(_ context.Context, clientID uuid.UUID, from calendar.Date, limit int32) ([]*queries.BookingView, error) {
	return s.listByClient(clientID, limit, func(v *queries.BookingView) bool {
		return !v.Date.Before(from)
	})
}

func (s *Store) FindByClientKeyset(_ context.Context, clientID uuid.UUID, after queries.BookingCursor, limit int32) ([]*queries.BookingView, error) {
	return s.listByClient(clientID, limit, func(v *queries.BookingView) bool {
		return compareViews(v, after.Date, after.Slot, after.ID) > 0
	})
}

func (s *Store) listByClient(clientID uuid.UUID, limit int32, keep func(*queries.BookingView) bool) ([]*queries.BookingView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ReadErr != nil {
		return nil, s.ReadErr
	}
	var out []*queries.BookingView
	for _, r := range s.bookings {
		v := viewOf(r)
		if v.ClientID == clientID && keep(v) {
			out = append(out, v)
		}
	}
	slices.SortFunc(out, func(a, b *queries.BookingView) int {
		return compareViews(a, b.Date, b.Slot, b.ID)
	})
	if len(out) > int(limit) {
		out = out[:limit]
	}
	return out, nil
}

func compareViews(v *queries.BookingView, date calendar.Date, slot timeslot.TimeSlot, id uuid.UUID) int {
	if c := v.Date.Compare(date); c != 0 {
		return c
	}
	if c := v.Slot.Compare(slot); c != 0 {
		return c
	}
	return slices.Compare(v.ID[:], id[:])
}

func keyOf(s shared.BookingSnapshot) booking.SlotKey {
	return booking.SlotKey{CoachID: s.CoachID, Date: s.Date, Slot: s.Slot}
}

func snapshotOf(b *booking.Booking) shared.BookingSnapshot {
	return shared.BookingSnapshot{
		ID:              b.ID(),
		CoachID:         b.CoachID(),
		ClientID:        b.ClientID(),
		ClubID:          b.ClubID(),
		Date:            b.Date(),
		Slot:            b.Slot(),
		Status:          b.Status(),
		TotalPriceCents: b.Price().Cents(),
		PaymentMethod:   b.PaymentMethod().Value(),
		CreatedAt:       b.CreatedAt(),
		UpdatedAt:       b.UpdatedAt(),
	}
}

func viewOf(r *record) *queries.BookingView {
	b := r.snapshot
	return &queries.BookingView{
		ID:              b.ID,
		CoachID:         b.CoachID,
		ClientID:        b.ClientID,
		ClubID:          b.ClubID,
		Date:            b.Date,
		Slot:            b.Slot,
		Status:          b.Status.String(),
		TotalPriceCents: b.TotalPriceCents,
		PaymentMethod:   b.PaymentMethod,
		CancelledAt:     r.cancelledAt,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}
