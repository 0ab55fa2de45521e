package shared

import (
	"context"
	"time"

	"coach-booking/internal/domain/availability"
	"coach-booking/internal/domain/booking"
	"coach-booking/internal/domain/calendar"
	sqlc "coach-booking/internal/infra/sqlc/generated"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// CommandReads: Direct access to command reads for validation outside transactions
	CommandReads() CommandReads
}

type Tx interface {
	Bookings() BookingRepository
	Notifications() NotificationRepository
	Reads() CommandReads
	DB() sqlc.DBTX
}

// CommandReads always hit the primary store; the allocator must not validate against cached data.
type CommandReads interface {
	AvailabilityEntries(ctx context.Context, coachID uuid.UUID, weekday calendar.StorageWeekday) ([]availability.Entry, error)
	ActiveBookingAt(ctx context.Context, key booking.SlotKey) (*ActiveBookingSnapshot, bool, error)
	BookingByID(ctx context.Context, id uuid.UUID) (*BookingSnapshot, error)
}

type BookingRepository interface {
	Create(ctx context.Context, tx sqlc.DBTX, b *booking.Booking) error
	Cancel(ctx context.Context, tx sqlc.DBTX, id uuid.UUID, at time.Time) error
}

type NotificationRepository interface {
	CreateJob(ctx context.Context, tx sqlc.DBTX, kind, topic string, payload []byte, runAt time.Time) error
}
