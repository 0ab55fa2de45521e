package availability

import (
	"time"

	"coach-booking/internal/domain/calendar"
	"coach-booking/internal/domain/timeslot"

	"github.com/google/uuid"
)

// Entry is one row of a coach's recurring weekly template.
type Entry struct {
	CoachID     uuid.UUID
	Weekday     calendar.StorageWeekday
	Slot        timeslot.TimeSlot
	IsAvailable bool
}

// Template is the set of slots a coach offers on one weekday.
type Template struct {
	coachID uuid.UUID
	weekday calendar.StorageWeekday
	slots   timeslot.Set
}

// NewTemplate keeps the available entries that belong to coachID and weekday; everything else is ignored.
func NewTemplate(coachID uuid.UUID, weekday calendar.StorageWeekday, entries []Entry) Template {
	slots := timeslot.NewSet()
	for _, e := range entries {
		if e.CoachID != coachID || e.Weekday != weekday || !e.IsAvailable {
			continue
		}
		slots.Add(e.Slot)
	}
	return Template{coachID: coachID, weekday: weekday, slots: slots}
}

func (t Template) CoachID() uuid.UUID               { return t.coachID }
func (t Template) Weekday() calendar.StorageWeekday { return t.weekday }

func (t Template) Offers(slot timeslot.TimeSlot) bool {
	return t.slots.Contains(slot)
}

func (t Template) IsClosed() bool {
	return t.slots.Len() == 0
}

// Slots returns a copy of the offered slots.
func (t Template) Slots() timeslot.Set {
	return t.slots.Difference(nil)
}

// OpenSlots is the open slot computation shared by every caller: template minus claimed,
// then the lead time filter when date is today in now's location, sorted ascending.
// Dates before today have no open slots.
func OpenSlots(tmpl Template, claimed timeslot.Set, date calendar.Date, now time.Time, lead time.Duration) []timeslot.TimeSlot {
	today := calendar.DateOf(now, now.Location())
	if date.Before(today) {
		return []timeslot.TimeSlot{}
	}

	open := tmpl.slots.Difference(claimed)
	if date.Equal(today) {
		for slot := range open {
			if !timeslot.MeetsLeadTime(slot, now, lead) {
				open.Remove(slot)
			}
		}
	}
	return open.Sorted()
}
