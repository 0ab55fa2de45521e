//go:build unit

package pgconv_test

import (
	"errors"
	"testing"
	"time"

	"coach-booking/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateRoundTrip(t *testing.T) {
	t.Run("drops time of day and zone", func(t *testing.T) {
		jst := time.FixedZone("JST", 9*3600)
		pd := pgconv.DateToPgtype(time.Date(2024, 3, 6, 23, 30, 0, 0, jst))

		require.True(t, pd.Valid)
		assert.Equal(t, time.Date(2024, 3, 6, 0, 0, 0, 0, time.UTC), pd.Time)
	})

	t.Run("error: invalid and infinite dates", func(t *testing.T) {
		_, err := pgconv.DateFromPgtype(pgtype.Date{})
		assert.ErrorIs(t, err, pgconv.ErrInvalidDate)

		_, err = pgconv.DateFromPgtype(pgtype.Date{Valid: true, InfinityModifier: pgtype.Infinity})
		assert.ErrorIs(t, err, pgconv.ErrInvalidDate)
	})
}

func TestTimePtrFromPgtype(t *testing.T) {
	assert.Nil(t, pgconv.TimePtrFromPgtype(pgtype.Timestamptz{}))

	now := time.Date(2024, 3, 6, 9, 0, 0, 0, time.UTC)
	got := pgconv.TimePtrFromPgtype(pgconv.TimeToPgtype(now))
	require.NotNil(t, got)
	assert.Equal(t, now, *got)
}

func TestIsNoRows(t *testing.T) {
	assert.True(t, pgconv.IsNoRows(pgx.ErrNoRows))
	assert.True(t, pgconv.IsNoRows(errors.Join(errors.New("lookup"), pgx.ErrNoRows)))
	assert.False(t, pgconv.IsNoRows(errors.New("boom")))
}
