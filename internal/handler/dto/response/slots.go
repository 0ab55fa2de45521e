package response

import (
	"coach-booking/internal/domain/calendar"
	"coach-booking/internal/domain/timeslot"
	"coach-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type SlotsResponse struct {
	Date  string   `json:"date"`
	Slots []string `json:"slots"`
}

func FromOpenSlots(date calendar.Date, slots []timeslot.TimeSlot) *SlotsResponse {
	return &SlotsResponse{
		Date:  date.String(),
		Slots: timeslot.Strings(slots),
	}
}

type WindowResponse struct {
	CoachID string           `json:"coachId"`
	Days    []*SlotsResponse `json:"days"`
}

func FromWindow(coachID uuid.UUID, days []queries.DaySlots) *WindowResponse {
	res := &WindowResponse{
		CoachID: coachID.String(),
		Days:    make([]*SlotsResponse, len(days)),
	}
	for i, d := range days {
		res.Days[i] = FromOpenSlots(d.Date, d.Slots)
	}
	return res
}

type PlanEntryResponse struct {
	TimeSlot   string  `json:"timeSlot"`
	Status     string  `json:"status"`
	InTemplate bool    `json:"inTemplate"`
	BookingID  *string `json:"bookingId,omitempty"`
	ClientID   *string `json:"clientId,omitempty"`
}

type DayPlanResponse struct {
	CoachID string               `json:"coachId"`
	Date    string               `json:"date"`
	Closed  bool                 `json:"closed"`
	Entries []*PlanEntryResponse `json:"entries"`
}

func FromDayPlan(p *queries.DayPlan) *DayPlanResponse {
	res := &DayPlanResponse{
		CoachID: p.CoachID.String(),
		Date:    p.Date.String(),
		Closed:  p.Closed,
		Entries: make([]*PlanEntryResponse, len(p.Entries)),
	}
	for i, e := range p.Entries {
		res.Entries[i] = &PlanEntryResponse{
			TimeSlot:   e.Slot.String(),
			Status:     string(e.Status),
			InTemplate: e.InTemplate,
			BookingID:  uuidString(e.BookingID),
			ClientID:   uuidString(e.ClientID),
		}
	}
	return res
}

func uuidString(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}
