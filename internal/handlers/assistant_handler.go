package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/clinic-scheduler/internal/middleware"
	"github.com/BruksfildServices01/clinic-scheduler/internal/usecase/assistant"
)

type AssistantHandler struct {
	assistant *assistant.Assistant
	log       *zap.Logger
}

func NewAssistantHandler(a *assistant.Assistant, log *zap.Logger) *AssistantHandler {
	return &AssistantHandler{assistant: a, log: log}
}

type SlotsMessageRequest struct {
	Message             string           `json:"message" binding:"required"`
	ConversationHistory []assistant.Turn `json:"conversation_history"`
}

func session(c *gin.Context) assistant.Session {
	return assistant.Session{
		UserID: middleware.UserID(c),
		Email:  c.GetString(middleware.ContextUserEmail),
	}
}

func (h *AssistantHandler) Slots(c *gin.Context) {
	var req SlotsMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	reply, err := h.assistant.SlotsFromMessage(
		c.Request.Context(),
		session(c),
		req.Message,
		req.ConversationHistory,
	)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, reply)
}

func (h *AssistantHandler) Book(c *gin.Context) {
	var req assistant.ChatBookingInput
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	c.JSON(http.StatusOK, h.assistant.CreateFromChat(c.Request.Context(), session(c), req))
}
