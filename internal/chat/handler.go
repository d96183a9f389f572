package chat

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"careerpilot-backend/internal/shared/server/respond"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/chat/message", h.message)
}

type messageRequest struct {
	Message string    `json:"message"`
	History []Message `json:"history"`
}

func (h *Handler) message(c *gin.Context) {
	var req messageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "message is required", nil)
		return
	}

	reply, err := h.Svc.Reply(c.Request.Context(), req.Message, req.History)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "chat reply failed", nil)
		return
	}

	respond.JSON(c, http.StatusOK, gin.H{"reply": reply})
}
