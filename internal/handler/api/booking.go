package api

import (
	"net/http"

	reqdto "coach-booking/internal/handler/dto/request"
	resdto "coach-booking/internal/handler/dto/response"
	"coach-booking/internal/handler/httperr"
	"coach-booking/internal/handler/middleware"
	"coach-booking/internal/handler/validation"
	"coach-booking/internal/pkg/errs"
	"coach-booking/internal/usecase/commands"
	"coach-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const outcomeRejected = "rejected"

var errUnauthenticated = errs.New("unauthenticated")

type BookingHandler struct {
	cmds commands.BookingCommands
	q    queries.BookingQueries
}

func NewBookingHandler(cmds commands.BookingCommands, q queries.BookingQueries) *BookingHandler {
	return &BookingHandler{cmds: cmds, q: q}
}

// @Summary Book a slot
// @Description Claims one coach slot for the caller. Losing the slot to another client is reported as 409 with the slots still open that day.
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateBookingRequest true "Booking request"
// @Success 201 {object} resdto.ClaimedResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} resdto.AlreadyTakenResponse
// @Failure 422 {object} httperr.Response
// @Failure 429 {object} httperr.Response
// @Failure 500 {object} httperr.Response
// @Router /api/bookings [post]
func (h *BookingHandler) Create(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		httperr.AbortWithOutcome(c, http.StatusUnauthorized, errUnauthenticated, outcomeRejected, "Unauthorized", nil)
		return
	}
	var req reqdto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithOutcome(c, http.StatusBadRequest, err, outcomeRejected, "Invalid request", validation.Details(err))
		return
	}
	params, err := req.ToParams(actor.ID)
	if err != nil {
		httperr.AbortWithOutcome(c, http.StatusBadRequest, err, outcomeRejected, "Invalid request", nil)
		return
	}

	result, err := h.cmds.Allocate(c.Request.Context(), params)
	if err != nil {
		status, msg := allocationErrorStatus(err)
		httperr.AbortWithOutcome(c, status, err, outcomeRejected, msg, nil)
		return
	}

	switch result.Outcome {
	case commands.OutcomeClaimed:
		c.Header("Location", "/api/bookings/"+result.Booking.ID().String())
		c.JSON(http.StatusCreated, resdto.FromClaimed(result))
	default:
		c.JSON(http.StatusConflict, resdto.FromAlreadyTaken(result))
	}
}

func allocationErrorStatus(err error) (int, string) {
	switch {
	case errs.Is(err, commands.ErrInvalidBookingRequest):
		return http.StatusBadRequest, "Invalid booking request"
	case errs.Is(err, commands.ErrDateInPast):
		return http.StatusUnprocessableEntity, "Booking date is in the past"
	case errs.Is(err, commands.ErrSlotNotOffered):
		return http.StatusUnprocessableEntity, "Coach does not offer this time slot"
	case errs.Is(err, commands.ErrLeadTimeNotMet):
		return http.StatusUnprocessableEntity, "Time slot starts too soon to be booked"
	case errs.Is(err, commands.ErrUnknownReference):
		return http.StatusNotFound, "Coach or club not found"
	default:
		return http.StatusInternalServerError, "Allocation failed"
	}
}

// @Summary Get booking
// @Description Visible to the booking client, the booked coach and admins
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/bookings/{id} [get]
func (h *BookingHandler) Get(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errUnauthenticated, "Unauthorized", nil)
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}

	view, err := h.q.GetByID(c.Request.Context(), actor, id)
	if err != nil {
		switch {
		case errs.Is(err, queries.ErrBookingNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Not found", nil)
		case errs.Is(err, queries.ErrForbidden):
			httperr.AbortWithError(c, http.StatusForbidden, err, "Forbidden", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
		}
		return
	}

	res, err := resdto.FromBookingView(view)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary List bookings
// @Description The caller's bookings from a date on (default today), ordered by date and slot
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param clientId query string false "Client ID (admins only)"
// @Param from query string false "First date (YYYY-MM-DD)"
// @Param after query string false "Cursor from a previous page"
// @Param limit query int false "Page size"
// @Success 200 {object} resdto.BookingListResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /api/bookings [get]
func (h *BookingHandler) List(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errUnauthenticated, "Unauthorized", nil)
		return
	}
	var query reqdto.ListBookingsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query", validation.Details(err))
		return
	}

	var cursor *queries.Cursor
	if query.After != "" {
		cursor = &queries.Cursor{After: query.After}
	}

	views, next, err := h.q.ListByClient(c.Request.Context(), actor, query.ClientOr(actor.ID), query.FromDate(), cursor, query.Limit)
	if err != nil {
		switch {
		case errs.Is(err, queries.ErrInvalidCursor):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid cursor", nil)
		case errs.Is(err, queries.ErrForbidden):
			httperr.AbortWithError(c, http.StatusForbidden, err, "Forbidden", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
		}
		return
	}

	items, err := resdto.FromBookingViews(views)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
		return
	}
	res := resdto.BookingListResponse{Items: items}
	if next != nil {
		res.NextCursor = next.After
	}
	c.JSON(http.StatusOK, res)
}

// @Summary Cancel booking
// @Description Cancels an active booking and frees its slot. Allowed for the booking client, the booked coach and admins.
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/bookings/{id}/cancel [post]
func (h *BookingHandler) Cancel(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errUnauthenticated, "Unauthorized", nil)
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}

	b, err := h.cmds.Cancel(c.Request.Context(), actor, id)
	if err != nil {
		switch {
		case errs.Is(err, commands.ErrBookingNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Not found", nil)
		case errs.Is(err, commands.ErrForbidden):
			httperr.AbortWithError(c, http.StatusForbidden, err, "Forbidden", nil)
		case errs.Is(err, commands.ErrBookingAlreadyCancelled):
			httperr.AbortWithError(c, http.StatusConflict, err, "Booking already cancelled", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
		}
		return
	}
	c.JSON(http.StatusOK, resdto.FromBooking(b))
}
