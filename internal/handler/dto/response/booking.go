package response

import (
	"time"

	"coach-booking/internal/domain/booking"
	"coach-booking/internal/domain/calendar"
	"coach-booking/internal/domain/timeslot"
	"coach-booking/internal/usecase/commands"
	"coach-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

// Read models carry typed ids, dates and slots; the wire format is plain strings.
var viewCopyOption = copier.Option{
	Converters: []copier.TypeConverter{
		{
			SrcType: uuid.UUID{},
			DstType: copier.String,
			Fn: func(src any) (any, error) {
				return src.(uuid.UUID).String(), nil
			},
		},
		{
			SrcType: calendar.Date{},
			DstType: copier.String,
			Fn: func(src any) (any, error) {
				return src.(calendar.Date).String(), nil
			},
		},
		{
			SrcType: timeslot.TimeSlot{},
			DstType: copier.String,
			Fn: func(src any) (any, error) {
				return src.(timeslot.TimeSlot).String(), nil
			},
		},
	},
}

type BookingResponse struct {
	ID              string     `json:"id"`
	CoachID         string     `json:"coachId"`
	ClientID        string     `json:"clientId"`
	ClubID          string     `json:"clubId"`
	Date            string     `json:"date"`
	Slot            string     `json:"timeSlot"`
	Status          string     `json:"status"`
	TotalPriceCents int64      `json:"totalPriceCents"`
	PaymentMethod   string     `json:"paymentMethod"`
	CancelledAt     *time.Time `json:"cancelledAt,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

func FromBookingView(v *queries.BookingView) (*BookingResponse, error) {
	var res BookingResponse
	if err := copier.CopyWithOption(&res, v, viewCopyOption); err != nil {
		return nil, err
	}
	return &res, nil
}

func FromBookingViews(views []*queries.BookingView) ([]*BookingResponse, error) {
	res := make([]*BookingResponse, len(views))
	for i, v := range views {
		item, err := FromBookingView(v)
		if err != nil {
			return nil, err
		}
		res[i] = item
	}
	return res, nil
}

func FromBooking(b *booking.Booking) *BookingResponse {
	res := &BookingResponse{
		ID:              b.ID().String(),
		CoachID:         b.CoachID().String(),
		ClientID:        b.ClientID().String(),
		ClubID:          b.ClubID().String(),
		Date:            b.Date().String(),
		Slot:            b.Slot().String(),
		Status:          b.Status().String(),
		TotalPriceCents: b.Price().Cents(),
		PaymentMethod:   b.PaymentMethod().Value(),
		CreatedAt:       b.CreatedAt(),
		UpdatedAt:       b.UpdatedAt(),
	}
	// Cancellation is the last transition a booking can make.
	if b.Status() == booking.StatusCancelled {
		cancelledAt := b.UpdatedAt()
		res.CancelledAt = &cancelledAt
	}
	return res
}

type BookingListResponse struct {
	Items      []*BookingResponse `json:"items"`
	NextCursor string             `json:"nextCursor,omitempty"`
}

type ClaimedResponse struct {
	Outcome string           `json:"outcome"`
	Booking *BookingResponse `json:"booking"`
}

// AlreadyTakenResponse always carries freshSlots, even when the list is empty.
type AlreadyTakenResponse struct {
	Outcome    string   `json:"outcome"`
	FreshSlots []string `json:"freshSlots"`
}

func FromClaimed(r *commands.AllocationResult) *ClaimedResponse {
	return &ClaimedResponse{
		Outcome: string(commands.OutcomeClaimed),
		Booking: FromBooking(r.Booking),
	}
}

func FromAlreadyTaken(r *commands.AllocationResult) *AlreadyTakenResponse {
	return &AlreadyTakenResponse{
		Outcome:    string(commands.OutcomeAlreadyTaken),
		FreshSlots: timeslot.Strings(r.FreshSlots),
	}
}
