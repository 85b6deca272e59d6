package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/samuelurones28/Proyecto/middleware"
	"github.com/samuelurones28/Proyecto/utils"
)

// ActivePlanHandler returns the permanent plan with any exception overlaid.
// GET /api/plan/active?date=YYYY-MM-DD
func (h *APIHandler) ActivePlanHandler(c *gin.Context) {
	date, ok := h.dateParam(c, "date")
	if !ok {
		return
	}
	active, err := h.plans.ActivePlan(middleware.CurrentUserID(c), date)
	if err != nil {
		sendServiceError(c, "Failed to fetch active plan.", err)
		return
	}
	respondOK(c, "Active plan retrieved successfully", active)
}

// PlanDayHandler resolves what the user trains on a date.
// GET /api/plan/day?date=YYYY-MM-DD
func (h *APIHandler) PlanDayHandler(c *gin.Context) {
	date, ok := h.dateParam(c, "date")
	if !ok {
		return
	}
	status, err := h.plans.ResolveDay(middleware.CurrentUserID(c), date)
	if err != nil {
		sendServiceError(c, "Failed to resolve day.", err)
		return
	}
	respondOK(c, "Day resolved successfully", status)
}

// PlanHistoryHandler lists stored plan versions, newest first.
// GET /api/plan/history?limit=20
func (h *APIHandler) PlanHistoryHandler(c *gin.Context) {
	plans, err := h.plans.PlanHistory(middleware.CurrentUserID(c), limitParam(c, 20))
	if err != nil {
		sendServiceError(c, "Failed to fetch plans.", err)
		return
	}
	respondOK(c, "Plans retrieved successfully", plans)
}

// CalendarMarksHandler resolves every date in a range for the calendar view.
// Without from/to it covers the current month.
// GET /api/calendar?from=YYYY-MM-DD&to=YYYY-MM-DD
func (h *APIHandler) CalendarMarksHandler(c *gin.Context) {
	now := h.clock.Now()
	from := utils.StartOfDay(now.AddDate(0, 0, 1-now.Day()))
	to := from.AddDate(0, 1, -1)
	if c.Query("from") != "" {
		d, ok := h.dateParam(c, "from")
		if !ok {
			return
		}
		from = d
	}
	if c.Query("to") != "" {
		d, ok := h.dateParam(c, "to")
		if !ok {
			return
		}
		to = d
	}
	marks, err := h.plans.MonthMarks(middleware.CurrentUserID(c), from, to)
	if err != nil {
		sendServiceError(c, "Failed to build calendar.", err)
		return
	}
	respondOK(c, "Calendar retrieved successfully", marks)
}

// CalendarActionsHandler lists raw calendar overrides.
// GET /api/calendar/actions?from=YYYY-MM-DD&to=YYYY-MM-DD
func (h *APIHandler) CalendarActionsHandler(c *gin.Context) {
	from, to := c.Query("from"), c.Query("to")
	for _, v := range []string{from, to} {
		if v == "" {
			continue
		}
		if _, ok := utils.SanitizeISODate(v); !ok {
			utils.SendJSONError(c, http.StatusBadRequest, "Invalid date parameter. Please use YYYY-MM-DD.", nil)
			return
		}
	}
	actions, err := h.calendar.ListActions(middleware.CurrentUserID(c), from, to)
	if err != nil {
		sendServiceError(c, "Failed to fetch calendar actions.", err)
		return
	}
	respondOK(c, "Calendar actions retrieved successfully", actions)
}

// ClearCalendarActionHandler removes a forced rest or completed mark.
// DELETE /api/calendar/:date
func (h *APIHandler) ClearCalendarActionHandler(c *gin.Context) {
	cleared, err := h.calendar.ClearAction(middleware.CurrentUserID(c), c.Param("date"))
	if err != nil {
		sendServiceError(c, "Failed to clear calendar action.", err)
		return
	}
	respondOK(c, "Calendar action cleared", cleared)
}
