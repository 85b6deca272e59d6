package api

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/samuelurones28/Proyecto/middleware"
	"github.com/samuelurones28/Proyecto/utils"
)

// ClientChatRequest is the body of POST /api/chat.
type ClientChatRequest struct {
	Message string `json:"message" binding:"required"`
}

// ChatHandler sends one user message to the coach.
// POST /api/chat
func (h *APIHandler) ChatHandler(c *gin.Context) {
	var req ClientChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendJSONError(c, http.StatusBadRequest, "Invalid request format.", err)
		return
	}
	userID := middleware.CurrentUserID(c)
	log.Printf("INFO: [ChatHandler] Received chat message from userID '%s'.", userID)

	reply, err := h.coach.SendMessage(c.Request.Context(), userID, req.Message)
	if err != nil {
		sendServiceError(c, "Failed to process message.", err)
		return
	}
	respondOK(c, "Message processed", reply)
}

// ChatHistoryHandler returns the most recent chat turns in chronological order.
// GET /api/chat/history?limit=50
func (h *APIHandler) ChatHistoryHandler(c *gin.Context) {
	msgs, err := h.coach.History(middleware.CurrentUserID(c), limitParam(c, 50))
	if err != nil {
		sendServiceError(c, "Failed to fetch chat history.", err)
		return
	}
	respondOK(c, "Chat history retrieved successfully", msgs)
}

// ContextHandler returns what the coach currently knows about the user.
// GET /api/context
func (h *APIHandler) ContextHandler(c *gin.Context) {
	ctx, err := h.coach.LoadContext(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		sendServiceError(c, "Failed to load coach context.", err)
		return
	}
	respondOK(c, "Context loaded", ctx)
}
