package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/samuelurones28/Proyecto/middleware"
	"github.com/samuelurones28/Proyecto/models"
	"github.com/samuelurones28/Proyecto/utils"
)

// StartWorkoutRequest starts either today's planned routine or a custom one.
type StartWorkoutRequest struct {
	FromPlan       bool            `json:"from_plan"`
	Routine        *models.Routine `json:"routine"`
	ConfirmDiscard bool            `json:"confirm_discard"`
}

// LogSetsRequest replaces the sets of one exercise in the active session.
type LogSetsRequest struct {
	Ejercicio string            `json:"ejercicio" binding:"required"`
	Sets      []models.SetEntry `json:"sets"`
}

// FinishWorkoutRequest ends the active session.
type FinishWorkoutRequest struct {
	Save bool `json:"save"`
}

// CurrentWorkoutHandler returns the active session with its elapsed time.
// GET /api/workout
func (h *APIHandler) CurrentWorkoutHandler(c *gin.Context) {
	session, err := h.workouts.Current(middleware.CurrentUserID(c))
	if err != nil {
		sendServiceError(c, "No active workout.", err)
		return
	}
	respondOK(c, "Active workout", gin.H{
		"session":    session,
		"elapsed_ms": session.Elapsed(h.clock.Now()).Milliseconds(),
	})
}

// StartWorkoutHandler starts a session. A running session is only replaced with confirm_discard.
// POST /api/workout/start
func (h *APIHandler) StartWorkoutHandler(c *gin.Context) {
	var req StartWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendJSONError(c, http.StatusBadRequest, "Invalid request format.", err)
		return
	}
	userID := middleware.CurrentUserID(c)

	var routine models.Routine
	switch {
	case req.FromPlan:
		today, err := h.plans.ResolveDay(userID, h.clock.Now())
		if err != nil {
			sendServiceError(c, "Failed to resolve today's plan.", err)
			return
		}
		if today.Kind != models.DayTraining || today.Entry == nil {
			utils.SendJSONError(c, http.StatusConflict, "Today has no planned training.", nil, fmt.Sprintf("day status is %s", today.Kind))
			return
		}
		routine = models.Routine{Titulo: today.Entry.Titulo, Source: models.RoutineFromPlan, Ejercicios: today.Entry.Ejercicios}
	case req.Routine != nil:
		routine = *req.Routine
		routine.Source = models.RoutineCustom
	default:
		utils.SendJSONError(c, http.StatusBadRequest, "Either from_plan or routine is required.", nil)
		return
	}

	session, err := h.workouts.Start(userID, routine, req.ConfirmDiscard)
	if errors.Is(err, models.ErrSessionActive) {
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{
			"error":  "A workout is already active. Confirm to discard it.",
			"active": session,
		})
		return
	}
	if err != nil {
		sendServiceError(c, "Failed to start workout.", err)
		return
	}
	respondOK(c, "Workout started", session)
}

// LogSetsHandler records sets for an exercise of the active session.
// POST /api/workout/sets
func (h *APIHandler) LogSetsHandler(c *gin.Context) {
	var req LogSetsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendJSONError(c, http.StatusBadRequest, "Invalid request format.", err)
		return
	}
	session, err := h.workouts.LogSets(middleware.CurrentUserID(c), req.Ejercicio, req.Sets)
	if err != nil {
		sendServiceError(c, "Failed to record sets.", err)
		return
	}
	respondOK(c, "Sets recorded", session)
}

// FinishWorkoutHandler ends the session, saving series when requested.
// POST /api/workout/finish
func (h *APIHandler) FinishWorkoutHandler(c *gin.Context) {
	var req FinishWorkoutRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.SendJSONError(c, http.StatusBadRequest, "Invalid request format.", err)
			return
		}
	}
	summary, err := h.workouts.Finish(middleware.CurrentUserID(c), req.Save)
	if err != nil {
		sendServiceError(c, "Failed to finish workout.", err)
		return
	}
	respondOK(c, "Workout finished", summary)
}

// DiscardWorkoutHandler drops the active session without saving.
// POST /api/workout/discard
func (h *APIHandler) DiscardWorkoutHandler(c *gin.Context) {
	if err := h.workouts.Discard(middleware.CurrentUserID(c)); err != nil {
		sendServiceError(c, "Failed to discard workout.", err)
		return
	}
	respondOK(c, "Workout discarded", nil)
}

// ExerciseStatsHandler returns PR, best 1RM and the daily 1RM trend for an exercise.
// GET /api/exercises/:name/stats
func (h *APIHandler) ExerciseStatsHandler(c *gin.Context) {
	stats, err := h.history.ExerciseStats(middleware.CurrentUserID(c), c.Param("name"))
	if err != nil {
		sendServiceError(c, "Failed to compute exercise stats.", err)
		return
	}
	respondOK(c, "Exercise stats retrieved successfully", stats)
}

// PreviousSeriesHandler returns the sets from the last time the exercise was logged.
// GET /api/exercises/:name/previous
func (h *APIHandler) PreviousSeriesHandler(c *gin.Context) {
	logs, err := h.history.PreviousSeries(middleware.CurrentUserID(c), c.Param("name"))
	if err != nil {
		sendServiceError(c, "Failed to fetch previous series.", err)
		return
	}
	respondOK(c, "Previous series retrieved successfully", logs)
}
