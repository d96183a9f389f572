package market

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"careerpilot-backend/internal/extract"
	"careerpilot-backend/internal/match"
	"careerpilot-backend/internal/shared/server/respond"
	"careerpilot-backend/internal/shared/telemetry"
	"careerpilot-backend/internal/shared/util"
)

const maxUploadBytes = 10 << 20 // 10MB

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/market/analyze", h.analyze)
}

func (h *Handler) analyze(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes)

	fileHeader, err := c.FormFile("resume")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "resume file is required", nil)
		return
	}
	if fileHeader.Header.Get("Content-Type") != extract.MimePDF {
		respond.Error(c, http.StatusBadRequest, "validation_error", "Only PDF files are accepted.", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read resume file", nil)
		return
	}
	defer file.Close()

	documentBytes, err := io.ReadAll(file)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read resume file", nil)
		return
	}

	c.Set("runId", uuid.NewString())
	c.Set("documentHash", util.HashContent(documentBytes))

	if name, err := util.SanitizeFileName(fileHeader.Filename); err == nil {
		telemetry.Info("analysis.upload.received", map[string]any{
			"request_id": c.GetString("requestId"),
			"file_name":  name,
			"size_bytes": len(documentBytes),
		})
	}

	report, err := h.Svc.Analyze(c.Request.Context(), documentBytes)
	if err != nil {
		switch {
		case errors.Is(err, match.ErrExtraction):
			respond.Error(c, http.StatusBadRequest, "validation_error", "Could not extract text from the PDF.", nil)
		case errors.Is(err, ErrNoSkills):
			respond.Error(c, http.StatusUnprocessableEntity, "no_skills", "Could not extract skills from the resume.", nil)
		case errors.Is(err, ErrEmptyAnalysis):
			respond.Error(c, http.StatusInternalServerError, "internal_error", "Market analysis failed. Please try again.", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "Market analysis failed. Please try again.", nil)
		}
		return
	}

	respond.JSON(c, http.StatusOK, report)
}
