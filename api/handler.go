package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/samuelurones28/Proyecto/middleware"
	"github.com/samuelurones28/Proyecto/models"
	"github.com/samuelurones28/Proyecto/services"
	"github.com/samuelurones28/Proyecto/utils"
)

// APIHandler holds all dependencies for API handlers.
type APIHandler struct {
	coach        services.CoachService
	plans        services.PlanService
	calendar     services.CalendarService
	nutrition    services.NutritionService
	measurements services.MeasurementService
	profiles     services.ProfileService
	catalog      services.CatalogService
	workouts     services.WorkoutService
	history      services.HistoryService
	timers       services.TimerService
	clock        services.Clock
}

// Services groups the services the handlers call.
type Services struct {
	Coach        services.CoachService
	Plans        services.PlanService
	Calendar     services.CalendarService
	Nutrition    services.NutritionService
	Measurements services.MeasurementService
	Profiles     services.ProfileService
	Catalog      services.CatalogService
	Workouts     services.WorkoutService
	History      services.HistoryService
	Timers       services.TimerService
	Clock        services.Clock
}

// NewAPIHandler creates a new APIHandler with necessary dependencies.
func NewAPIHandler(s Services) *APIHandler {
	clock := s.Clock
	if clock == nil {
		clock = services.SystemClock()
	}
	return &APIHandler{
		coach:        s.Coach,
		plans:        s.Plans,
		calendar:     s.Calendar,
		nutrition:    s.Nutrition,
		measurements: s.Measurements,
		profiles:     s.Profiles,
		catalog:      s.Catalog,
		workouts:     s.Workouts,
		history:      s.History,
		timers:       s.Timers,
		clock:        clock,
	}
}

// RegisterRoutes mounts every endpoint under /api.
func RegisterRoutes(r *gin.Engine, h *APIHandler) {
	apiGroup := r.Group("/api", middleware.UserID())
	{
		apiGroup.POST("/chat", h.ChatHandler)
		apiGroup.GET("/chat/history", h.ChatHistoryHandler)
		apiGroup.GET("/context", h.ContextHandler)

		planGroup := apiGroup.Group("/plan")
		{
			planGroup.GET("/active", h.ActivePlanHandler)
			planGroup.GET("/day", h.PlanDayHandler)
			planGroup.GET("/history", h.PlanHistoryHandler)
		}

		calendarGroup := apiGroup.Group("/calendar")
		{
			calendarGroup.GET("", h.CalendarMarksHandler)
			calendarGroup.GET("/actions", h.CalendarActionsHandler)
			calendarGroup.DELETE("/:date", h.ClearCalendarActionHandler)
		}

		nutritionGroup := apiGroup.Group("/nutrition")
		{
			nutritionGroup.GET("/targets", h.NutritionTargetsHandler)
			nutritionGroup.POST("/meals", h.LogMealHandler)
			nutritionGroup.GET("/summary", h.NutritionSummaryHandler)
			nutritionGroup.GET("/recent", h.RecentFoodsHandler)
			nutritionGroup.GET("/barcode/:code", h.BarcodeHandler)
		}

		apiGroup.POST("/measurements", h.AddMeasurementHandler)
		apiGroup.GET("/measurements", h.ListMeasurementsHandler)
		apiGroup.GET("/profile", h.GetProfileHandler)
		apiGroup.PUT("/profile", h.UpdateProfileHandler)
		apiGroup.GET("/catalog", h.CatalogHandler)

		workoutGroup := apiGroup.Group("/workout")
		{
			workoutGroup.GET("", h.CurrentWorkoutHandler)
			workoutGroup.POST("/start", h.StartWorkoutHandler)
			workoutGroup.POST("/sets", h.LogSetsHandler)
			workoutGroup.POST("/finish", h.FinishWorkoutHandler)
			workoutGroup.POST("/discard", h.DiscardWorkoutHandler)
		}

		apiGroup.GET("/exercises/:name/stats", h.ExerciseStatsHandler)
		apiGroup.GET("/exercises/:name/previous", h.PreviousSeriesHandler)

		timerGroup := apiGroup.Group("/timer")
		{
			timerGroup.GET("", h.TimerSnapshotHandler)
			timerGroup.POST("/start", h.StartTimerHandler)
			timerGroup.POST("/adjust", h.AdjustTimerHandler)
			timerGroup.POST("/stop", h.StopTimerHandler)
			timerGroup.POST("/resume", h.ResumeTimerHandler)
			timerGroup.POST("/background", h.BackgroundTimerHandler)
		}
	}
}

func respondOK(c *gin.Context, message string, data any) {
	c.JSON(http.StatusOK, gin.H{
		"code":    200,
		"message": message,
		"data":    data,
	})
}

// sendServiceError maps the service error taxonomy to HTTP statuses.
func sendServiceError(c *gin.Context, publicMsg string, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, models.ErrValidation), errors.Is(err, models.ErrInvalidPayload):
		status = http.StatusBadRequest
	case errors.Is(err, models.ErrNotFound), errors.Is(err, models.ErrNoActiveSession):
		status = http.StatusNotFound
	case errors.Is(err, models.ErrSessionActive), errors.Is(err, models.ErrTimerNotRunning):
		status = http.StatusConflict
	case errors.Is(err, models.ErrNetwork):
		status = http.StatusBadGateway
	}
	if status < http.StatusInternalServerError {
		utils.SendJSONError(c, status, publicMsg, err, err.Error())
		return
	}
	utils.SendJSONError(c, status, publicMsg, err)
}

// dateParam reads a YYYY-MM-DD query parameter, defaulting to today.
func (h *APIHandler) dateParam(c *gin.Context, name string) (time.Time, bool) {
	now := h.clock.Now()
	raw := c.Query(name)
	if raw == "" {
		return utils.StartOfDay(now), true
	}
	d, err := utils.ParseDate(raw, now.Location())
	if err != nil {
		utils.SendJSONError(c, http.StatusBadRequest, "Invalid date parameter. Please use YYYY-MM-DD.", err)
		return time.Time{}, false
	}
	return d, true
}

func limitParam(c *gin.Context, def int) int {
	if n, err := strconv.Atoi(c.Query("limit")); err == nil && n > 0 {
		return n
	}
	return def
}
