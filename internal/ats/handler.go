package ats

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"careerpilot-backend/internal/extract"
	"careerpilot-backend/internal/match"
	"careerpilot-backend/internal/shared/server/respond"
	"careerpilot-backend/internal/shared/telemetry"
	"careerpilot-backend/internal/shared/util"
)

const maxUploadBytes = 10 << 20 // 10MB

// Handler wires the two analysis modes to HTTP.
type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/ats/candidate", h.candidate)
	rg.POST("/ats/recruiter", h.recruiter)
}

func (h *Handler) candidate(c *gin.Context) {
	documentBytes, referenceText, ok := readAnalysisForm(c)
	if !ok {
		return
	}

	report, err := h.Svc.Candidate(c.Request.Context(), documentBytes, referenceText)
	if err != nil {
		respondAnalysisError(c, err)
		return
	}
	respond.JSON(c, http.StatusOK, report)
}

func (h *Handler) recruiter(c *gin.Context) {
	documentBytes, referenceText, ok := readAnalysisForm(c)
	if !ok {
		return
	}

	report, err := h.Svc.Recruiter(c.Request.Context(), documentBytes, referenceText)
	if err != nil {
		respondAnalysisError(c, err)
		return
	}
	respond.JSON(c, http.StatusOK, report)
}

// readAnalysisForm validates the multipart form shared by both modes. On
// failure it writes the error response and returns ok=false.
func readAnalysisForm(c *gin.Context) (documentBytes []byte, referenceText string, ok bool) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes)

	fileHeader, err := c.FormFile("resume")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "resume file is required", nil)
		return nil, "", false
	}
	if fileHeader.Header.Get("Content-Type") != extract.MimePDF {
		respond.Error(c, http.StatusBadRequest, "validation_error", "Only PDF files are accepted.", nil)
		return nil, "", false
	}

	referenceText = c.PostForm("job_description")
	if strings.TrimSpace(referenceText) == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "Job description cannot be empty.", nil)
		return nil, "", false
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read resume file", nil)
		return nil, "", false
	}
	defer file.Close()

	documentBytes, err = io.ReadAll(file)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read resume file", nil)
		return nil, "", false
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
	return documentBytes, referenceText, true
}

func respondAnalysisError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, match.ErrExtraction):
		respond.Error(c, http.StatusBadRequest, "validation_error", "Could not extract text from PDF.", nil)
	case errors.Is(err, ErrEmptyReport):
		respond.Error(c, http.StatusInternalServerError, "internal_error", "Recruiter analysis failed. Please try again.", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "analysis failed", nil)
	}
}
