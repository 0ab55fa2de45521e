package shared

import (
	"fmt"
	"time"

	"coach-booking/internal/domain/booking"
	"coach-booking/internal/pkg/config"
)

// SchedulePolicy holds the booking rules shared by the resolver and the allocator.
type SchedulePolicy struct {
	LeadTime      time.Duration
	Location      *time.Location
	WindowDays    int
	MaxWindowDays int
	InitialStatus booking.Status
}

func NewSchedulePolicy(cfg config.BookingConfig) (SchedulePolicy, error) {
	loc, err := cfg.Location()
	if err != nil {
		return SchedulePolicy{}, err
	}

	status, err := booking.NewStatus(cfg.InitialStatus)
	if err != nil || !status.IsActive() {
		return SchedulePolicy{}, fmt.Errorf("invalid BOOKING_INITIAL_STATUS %q: must be pending or confirmed", cfg.InitialStatus)
	}

	if cfg.LeadTime < 0 {
		return SchedulePolicy{}, fmt.Errorf("invalid BOOKING_LEAD_TIME %s: must not be negative", cfg.LeadTime)
	}
	if cfg.WindowDays <= 0 || cfg.MaxWindowDays < cfg.WindowDays {
		return SchedulePolicy{}, fmt.Errorf("invalid booking window: default %d, max %d", cfg.WindowDays, cfg.MaxWindowDays)
	}

	return SchedulePolicy{
		LeadTime:      cfg.LeadTime,
		Location:      loc,
		WindowDays:    cfg.WindowDays,
		MaxWindowDays: cfg.MaxWindowDays,
		InitialStatus: status,
	}, nil
}

// Now returns t in the schedule timezone.
func (p SchedulePolicy) Now(t time.Time) time.Time {
	if p.Location == nil {
		return t
	}
	return t.In(p.Location)
}
