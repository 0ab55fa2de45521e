package timeslot

import "slices"

// Set is a membership set keyed on the normalized slot value.
type Set map[TimeSlot]struct{}

func NewSet(slots ...TimeSlot) Set {
	s := make(Set, len(slots))
	for _, slot := range slots {
		s.Add(slot)
	}
	return s
}

func (s Set) Add(slot TimeSlot) {
	s[slot] = struct{}{}
}

func (s Set) Remove(slot TimeSlot) {
	delete(s, slot)
}

func (s Set) Contains(slot TimeSlot) bool {
	_, ok := s[slot]
	return ok
}

func (s Set) Len() int {
	return len(s)
}

// Difference returns the slots in s that are not in other.
func (s Set) Difference(other Set) Set {
	out := make(Set, len(s))
	for slot := range s {
		if !other.Contains(slot) {
			out.Add(slot)
		}
	}
	return out
}

// Sorted returns the members in ascending time-of-day order.
func (s Set) Sorted() []TimeSlot {
	out := make([]TimeSlot, 0, len(s))
	for slot := range s {
		out = append(out, slot)
	}
	slices.SortFunc(out, TimeSlot.Compare)
	return out
}

// Strings formats slots with their canonical keys.
func Strings(slots []TimeSlot) []string {
	out := make([]string, len(slots))
	for i, slot := range slots {
		out[i] = slot.String()
	}
	return out
}
