//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"coach-booking/internal/domain/calendar"
	"coach-booking/internal/domain/timeslot"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

const DefaultClubName = "Default Club"

func CreateTestUser(t *testing.T, db DBLike, email, role string) uuid.UUID {
	t.Helper()

	userID := uuid.New()
	ctx := context.Background()

	tag, err := db.Exec(ctx, "INSERT INTO users (id, email, display_name, role) VALUES ($1, $2, $3, $4) ON CONFLICT (email) DO NOTHING",
		userID, email, strings.Split(email, "@")[0], role)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		_ = db.QueryRow(ctx, "SELECT id FROM users WHERE email = $1", email).Scan(&userID)
	}

	return userID
}

func CreateTestClub(t *testing.T, db DBLike, name string) uuid.UUID {
	t.Helper()

	clubID := uuid.New()
	ctx := context.Background()

	tag, err := db.Exec(ctx, "INSERT INTO clubs (id, name) VALUES ($1, $2) ON CONFLICT (name) DO NOTHING", clubID, name)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		_ = db.QueryRow(ctx, "SELECT id FROM clubs WHERE name = $1", name).Scan(&clubID)
	}

	return clubID
}

func DefaultClubID(t *testing.T, db DBLike) uuid.UUID {
	t.Helper()

	var clubID uuid.UUID
	err := db.QueryRow(context.Background(), "SELECT id FROM clubs WHERE name = $1", DefaultClubName).Scan(&clubID)
	require.NoError(t, err)
	return clubID
}

// CreateTestCoach inserts the coach's user row and its coach profile in the default club.
func CreateTestCoach(t *testing.T, db DBLike, email string) uuid.UUID {
	t.Helper()

	coachID := CreateTestUser(t, db, email, "coach")
	_, err := db.Exec(context.Background(),
		"INSERT INTO coaches (id, club_id, hourly_rate_cents) VALUES ($1, $2, $3) ON CONFLICT (id) DO NOTHING",
		coachID, DefaultClubID(t, db), 5000)
	require.NoError(t, err)

	return coachID
}

// SetAvailability writes template rows for one weekday. Unlisted template slots are left untouched.
func SetAvailability(t *testing.T, db DBLike, coachID uuid.UUID, weekday calendar.StorageWeekday, available bool, slots ...string) {
	t.Helper()

	ctx := context.Background()
	for _, s := range slots {
		slot := timeslot.MustParse(s)
		_, err := db.Exec(ctx, `
			INSERT INTO coach_availability (coach_id, weekday, time_slot, is_available)
			VALUES ($1, $2, $3::time, $4)
			ON CONFLICT (coach_id, weekday, time_slot) DO UPDATE SET is_available = EXCLUDED.is_available, updated_at = now()`,
			coachID, int16(weekday), slot.String(), available)
		require.NoError(t, err)
	}
}

func CountActiveBookings(t *testing.T, db DBLike, coachID uuid.UUID, date calendar.Date, slot timeslot.TimeSlot) int {
	t.Helper()

	var n int
	err := db.QueryRow(context.Background(), `
		SELECT count(*) FROM bookings
		WHERE coach_id = $1 AND booking_date = $2::date AND time_slot = $3::time AND status <> 'cancelled'`,
		coachID, date.String(), slot.String()).Scan(&n)
	require.NoError(t, err)
	return n
}

// inserts basic reference data needed by tests
func SeedReferenceData(pool *pgxpool.Pool) error {
	ctx := context.Background()

	_, err := pool.Exec(ctx, `
		INSERT INTO clubs (id, name) VALUES
		    (gen_random_uuid(), $1),
		    (gen_random_uuid(), 'Test Club')
		ON CONFLICT (name) DO NOTHING;
	`, DefaultClubName)
	if err != nil {
		return err
	}

	return nil
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables and reseeds reference data
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('atlas_schema_revisions')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}

	return SeedReferenceData(pool)
}
