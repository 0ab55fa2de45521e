package api

import (
	"net/http"

	"coach-booking/internal/domain/calendar"
	reqdto "coach-booking/internal/handler/dto/request"
	resdto "coach-booking/internal/handler/dto/response"
	"coach-booking/internal/handler/httperr"
	"coach-booking/internal/handler/middleware"
	"coach-booking/internal/handler/validation"
	"coach-booking/internal/pkg/errs"
	"coach-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type SlotHandler struct {
	q queries.SlotQueries
}

func NewSlotHandler(q queries.SlotQueries) *SlotHandler {
	return &SlotHandler{q: q}
}

// @Summary List open slots
// @Description Open slots for one coach on one date, ascending. Closed days and unknown coaches return an empty list.
// @Tags slots
// @Produce json
// @Param coachId path string true "Coach ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} resdto.SlotsResponse
// @Failure 400 {object} httperr.Response
// @Failure 500 {object} httperr.Response
// @Router /api/coaches/{coachId}/slots [get]
func (h *SlotHandler) Slots(c *gin.Context) {
	coachID, ok := coachIDParam(c)
	if !ok {
		return
	}
	var query reqdto.SlotsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query", validation.Details(err))
		return
	}
	date, err := calendar.ParseDate(query.Date)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid date", nil)
		return
	}

	slots, err := h.q.ResolveOpenSlots(c.Request.Context(), coachID, date)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to resolve slots", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromOpenSlots(date, slots))
}

// @Summary List open slots over a window
// @Description Open slots for consecutive days starting at from (default today)
// @Tags slots
// @Produce json
// @Param coachId path string true "Coach ID"
// @Param from query string false "First date (YYYY-MM-DD)"
// @Param days query int false "Number of days"
// @Success 200 {object} resdto.WindowResponse
// @Failure 400 {object} httperr.Response
// @Failure 500 {object} httperr.Response
// @Router /api/coaches/{coachId}/slots/window [get]
func (h *SlotHandler) Window(c *gin.Context) {
	coachID, ok := coachIDParam(c)
	if !ok {
		return
	}
	var query reqdto.WindowQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query", validation.Details(err))
		return
	}

	days, err := h.q.ResolveWindow(c.Request.Context(), coachID, query.FromDate(), query.Days)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to resolve slots", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromWindow(coachID, days))
}

// @Summary Coach day plan
// @Description Every template slot of the day with its booking state. Coach owner or admin only.
// @Tags slots
// @Produce json
// @Security BearerAuth
// @Param coachId path string true "Coach ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} resdto.DayPlanResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 500 {object} httperr.Response
// @Router /api/coaches/{coachId}/plan [get]
func (h *SlotHandler) Plan(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errUnauthenticated, "Unauthorized", nil)
		return
	}
	coachID, ok := coachIDParam(c)
	if !ok {
		return
	}
	var query reqdto.SlotsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query", validation.Details(err))
		return
	}
	date, err := calendar.ParseDate(query.Date)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid date", nil)
		return
	}

	plan, err := h.q.DayPlan(c.Request.Context(), actor, coachID, date)
	if err != nil {
		switch {
		case errs.Is(err, queries.ErrForbidden):
			httperr.AbortWithError(c, http.StatusForbidden, err, "Forbidden", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load plan", nil)
		}
		return
	}
	c.JSON(http.StatusOK, resdto.FromDayPlan(plan))
}

func coachIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("coachId"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid coach id", nil)
		return uuid.Nil, false
	}
	return id, true
}
