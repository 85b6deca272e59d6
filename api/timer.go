package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/samuelurones28/Proyecto/middleware"
	"github.com/samuelurones28/Proyecto/utils"
)

// StartTimerRequest starts a rest countdown. Zero seconds uses the configured default.
type StartTimerRequest struct {
	Seconds int `json:"seconds"`
}

// AdjustTimerRequest moves the running countdown, e.g. +15 or -15 seconds.
type AdjustTimerRequest struct {
	Delta int `json:"delta" binding:"required"`
}

// TimerSnapshotHandler returns the timer state recomputed from its end timestamp.
// GET /api/timer
func (h *APIHandler) TimerSnapshotHandler(c *gin.Context) {
	respondOK(c, "Timer state", h.timers.Snapshot(middleware.CurrentUserID(c)))
}

// StartTimerHandler POST /api/timer/start
func (h *APIHandler) StartTimerHandler(c *gin.Context) {
	var req StartTimerRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.SendJSONError(c, http.StatusBadRequest, "Invalid request format.", err)
			return
		}
	}
	snap, err := h.timers.Start(middleware.CurrentUserID(c), req.Seconds)
	if err != nil {
		sendServiceError(c, "Failed to start timer.", err)
		return
	}
	respondOK(c, "Timer started", snap)
}

// AdjustTimerHandler POST /api/timer/adjust
func (h *APIHandler) AdjustTimerHandler(c *gin.Context) {
	var req AdjustTimerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendJSONError(c, http.StatusBadRequest, "Invalid request format.", err)
		return
	}
	snap, err := h.timers.Adjust(middleware.CurrentUserID(c), req.Delta)
	if err != nil {
		sendServiceError(c, "Failed to adjust timer.", err)
		return
	}
	respondOK(c, "Timer adjusted", snap)
}

// StopTimerHandler POST /api/timer/stop
func (h *APIHandler) StopTimerHandler(c *gin.Context) {
	respondOK(c, "Timer stopped", h.timers.Stop(middleware.CurrentUserID(c)))
}

// ResumeTimerHandler is called when the app returns to the foreground.
// POST /api/timer/resume
func (h *APIHandler) ResumeTimerHandler(c *gin.Context) {
	respondOK(c, "Timer resumed", h.timers.Resume(middleware.CurrentUserID(c)))
}

// BackgroundTimerHandler is called when the app leaves the foreground.
// POST /api/timer/background
func (h *APIHandler) BackgroundTimerHandler(c *gin.Context) {
	userID := middleware.CurrentUserID(c)
	h.timers.Background(userID)
	respondOK(c, "Timer backgrounded", h.timers.Snapshot(userID))
}
