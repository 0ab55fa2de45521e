package calendar

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidStorageWeekday = errors.New("storage weekday must be between 1 and 7")

// StorageWeekday is the weekday numbering used by availability templates:
// 1 = Monday ... 7 = Sunday.
type StorageWeekday int

const (
	Monday StorageWeekday = iota + 1
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

func (w StorageWeekday) IsValid() bool {
	return w >= Monday && w <= Sunday
}

func (w StorageWeekday) Int() int {
	return int(w)
}

func (w StorageWeekday) String() string {
	if !w.IsValid() {
		return fmt.Sprintf("StorageWeekday(%d)", int(w))
	}
	return FromStorageWeekday(w).String()
}

// ToStorageWeekday maps time.Weekday (Sunday = 0) to the storage numbering.
// It panics on values outside 0..6.
func ToStorageWeekday(d time.Weekday) StorageWeekday {
	if d < time.Sunday || d > time.Saturday {
		panic(fmt.Sprintf("calendar: weekday %d out of range", int(d)))
	}
	if d == time.Sunday {
		return Sunday
	}
	return StorageWeekday(d)
}

// FromStorageWeekday is the inverse of ToStorageWeekday. It panics on values outside 1..7.
func FromStorageWeekday(w StorageWeekday) time.Weekday {
	if !w.IsValid() {
		panic(fmt.Sprintf("calendar: storage weekday %d out of range", int(w)))
	}
	if w == Sunday {
		return time.Sunday
	}
	return time.Weekday(w)
}

// ParseStorageWeekday is the non-panicking entry point for values read from storage or requests.
func ParseStorageWeekday(n int) (StorageWeekday, error) {
	w := StorageWeekday(n)
	if !w.IsValid() {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidStorageWeekday, n)
	}
	return w, nil
}
