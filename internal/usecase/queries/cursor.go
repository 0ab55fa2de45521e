package queries

import (
	"encoding/base64"
	"fmt"
	"strings"

	"coach-booking/internal/domain/calendar"
	"coach-booking/internal/domain/timeslot"

	"github.com/google/uuid"
)

const (
	MaxListLimit    = 200
	CursorVersionV1 = "v1"
)

// BookingCursor is the keyset position after the last returned booking.
// Client listings are ordered by (date, slot, id).
type BookingCursor struct {
	Date calendar.Date
	Slot timeslot.TimeSlot
	ID   uuid.UUID
}

func EncodeAfterCursor(c BookingCursor) string {
	cursorData := fmt.Sprintf("%s:%s|%s|%s", CursorVersionV1, c.Date, c.Slot, c.ID)
	return base64.URLEncoding.EncodeToString([]byte(cursorData))
}

func DecodeAfterCursor(cursor string) (BookingCursor, error) {
	if cursor == "" {
		return BookingCursor{}, fmt.Errorf("cursor cannot be empty")
	}

	decoded, err := base64.URLEncoding.DecodeString(cursor)
	if err != nil {
		return BookingCursor{}, fmt.Errorf("invalid cursor encoding: %w", err)
	}

	payload, ok := strings.CutPrefix(string(decoded), CursorVersionV1+":")
	if !ok {
		return BookingCursor{}, fmt.Errorf("unsupported cursor version")
	}

	parts := strings.Split(payload, "|")
	if len(parts) != 3 {
		return BookingCursor{}, fmt.Errorf("invalid cursor format: expected '<date>|<slot>|<uuid>'")
	}

	date, err := calendar.ParseDate(parts[0])
	if err != nil {
		return BookingCursor{}, fmt.Errorf("invalid date: %w", err)
	}
	slot, err := timeslot.Parse(parts[1])
	if err != nil {
		return BookingCursor{}, fmt.Errorf("invalid slot: %w", err)
	}
	id, err := uuid.Parse(parts[2])
	if err != nil {
		return BookingCursor{}, fmt.Errorf("invalid UUID: %w", err)
	}

	return BookingCursor{Date: date, Slot: slot, ID: id}, nil
}

type Cursor struct {
	After string `json:"after,omitempty"`
}

func ValidateLimit(limit int) int {
	if limit <= 0 {
		return 20 // default limit
	}
	if limit > MaxListLimit {
		return MaxListLimit
	}
	return limit
}
