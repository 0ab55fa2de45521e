package timeslot

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var ErrMalformedTimeSlot = errors.New("malformed time slot")

const minutesPerDay = 24 * 60

// TimeSlot is a wall-clock time of day at minute resolution. Every textual form
// ("9:00", "09:00", "09:00:00") of the same time parses to the same value.
type TimeSlot struct {
	minutes int
}

func New(hour, minute int) (TimeSlot, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return TimeSlot{}, fmt.Errorf("%w: %d:%d", ErrMalformedTimeSlot, hour, minute)
	}
	return TimeSlot{minutes: hour*60 + minute}, nil
}

// Parse accepts "H:MM", "HH:MM" and "HH:MM:SS[.ffffff]". Seconds are validated and dropped.
func Parse(s string) (TimeSlot, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 && len(parts) != 3 {
		return TimeSlot{}, fmt.Errorf("%w: %q", ErrMalformedTimeSlot, s)
	}

	hour, ok := parseField(parts[0], 1, 2)
	if !ok {
		return TimeSlot{}, fmt.Errorf("%w: %q", ErrMalformedTimeSlot, s)
	}
	minute, ok := parseField(parts[1], 2, 2)
	if !ok {
		return TimeSlot{}, fmt.Errorf("%w: %q", ErrMalformedTimeSlot, s)
	}
	if len(parts) == 3 {
		sec, frac, hasFrac := strings.Cut(parts[2], ".")
		second, ok := parseField(sec, 2, 2)
		if !ok || second > 59 || (hasFrac && (frac == "" || !isDigits(frac))) {
			return TimeSlot{}, fmt.Errorf("%w: %q", ErrMalformedTimeSlot, s)
		}
	}

	slot, err := New(hour, minute)
	if err != nil {
		return TimeSlot{}, fmt.Errorf("%w: %q", ErrMalformedTimeSlot, s)
	}
	return slot, nil
}

func MustParse(s string) TimeSlot {
	slot, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return slot
}

// Of returns the slot containing the wall-clock time of t.
func Of(t time.Time) TimeSlot {
	return TimeSlot{minutes: t.Hour()*60 + t.Minute()}
}

func (s TimeSlot) Hour() int    { return s.minutes / 60 }
func (s TimeSlot) Minute() int  { return s.minutes % 60 }
func (s TimeSlot) Minutes() int { return s.minutes }

// String is the canonical "HH:MM" comparison key.
func (s TimeSlot) String() string {
	return fmt.Sprintf("%02d:%02d", s.Hour(), s.Minute())
}

func (s TimeSlot) Compare(other TimeSlot) int {
	switch {
	case s.minutes < other.minutes:
		return -1
	case s.minutes > other.minutes:
		return 1
	default:
		return 0
	}
}

func (s TimeSlot) Before(other TimeSlot) bool {
	return s.minutes < other.minutes
}

func (s TimeSlot) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *TimeSlot) UnmarshalText(b []byte) error {
	parsed, err := Parse(string(b))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// MeetsLeadTime reports whether slot starts at least lead after the wall-clock time of now.
// Only minutes are considered, so with a one hour lead at 14:30 the 15:30 slot is kept and
// 15:00 is dropped. Leads that reach past midnight exclude every slot.
func MeetsLeadTime(slot TimeSlot, now time.Time, lead time.Duration) bool {
	earliest := now.Hour()*60 + now.Minute() + int(lead/time.Minute)
	if earliest >= minutesPerDay {
		return false
	}
	return slot.minutes >= earliest
}

func parseField(s string, minLen, maxLen int) (int, bool) {
	if len(s) < minLen || len(s) > maxLen || !isDigits(s) {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
