package booking

import (
	"strings"
	"unicode/utf8"

	"coach-booking/internal/domain/calendar"
	"coach-booking/internal/domain/timeslot"

	"github.com/google/uuid"
)

const maxPaymentMethodLength = 64

type Money struct {
	cents int64
}

func NewMoney(cents int64) (Money, error) {
	if cents < 0 {
		return Money{}, ErrNegativePrice
	}
	return Money{cents: cents}, nil
}

func (m Money) Cents() int64 {
	return m.cents
}

type PaymentMethod struct {
	value string
}

func NewPaymentMethod(s string) (PaymentMethod, error) {
	s = strings.TrimSpace(s)
	if s == "" || utf8.RuneCountInString(s) > maxPaymentMethodLength {
		return PaymentMethod{}, ErrInvalidPaymentMethod
	}
	return PaymentMethod{value: s}, nil
}

func (p PaymentMethod) Value() string {
	return p.value
}

// SlotKey identifies the slot a booking claims.
type SlotKey struct {
	CoachID uuid.UUID
	Date    calendar.Date
	Slot    timeslot.TimeSlot
}
