package interview

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
	rg.POST("/interview/questions", h.questions)
	rg.POST("/interview/chat", h.chat)
	rg.POST("/interview/feedback", h.feedback)
}

type questionsRequest struct {
	Role       string   `json:"role"`
	Experience string   `json:"experience"`
	Focus      []string `json:"focus"`
}

func (h *Handler) questions(c *gin.Context) {
	var req questionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if strings.TrimSpace(req.Role) == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "Role cannot be empty.", nil)
		return
	}

	questions, err := h.Svc.Questions(c.Request.Context(), strings.TrimSpace(req.Role), req.Experience, req.Focus)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "Could not generate questions. Please try again.", nil)
		return
	}

	respond.JSON(c, http.StatusOK, gin.H{"questions": questions})
}

type chatRequest struct {
	Role     string `json:"role"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
	History  []QA   `json:"history"`
}

func (h *Handler) chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if strings.TrimSpace(req.Answer) == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "Answer cannot be empty.", nil)
		return
	}

	followup, err := h.Svc.Followup(c.Request.Context(), req.Role, req.Question, strings.TrimSpace(req.Answer), req.History)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "interviewer follow-up failed", nil)
		return
	}

	respond.JSON(c, http.StatusOK, gin.H{"followup": followup})
}

type feedbackRequest struct {
	Role      string     `json:"role"`
	Questions []Question `json:"questions"`
	Answers   []string   `json:"answers"`
}

func (h *Handler) feedback(c *gin.Context) {
	var req feedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if len(req.Questions) == 0 {
		respond.Error(c, http.StatusBadRequest, "validation_error", "Questions list cannot be empty.", nil)
		return
	}
	if len(req.Answers) == 0 {
		respond.Error(c, http.StatusBadRequest, "validation_error", "Answers list cannot be empty.", nil)
		return
	}

	feedback, err := h.Svc.Feedback(c.Request.Context(), req.Role, req.Questions, req.Answers)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "Could not generate feedback. Please try again.", nil)
		return
	}

	respond.JSON(c, http.StatusOK, feedback)
}
