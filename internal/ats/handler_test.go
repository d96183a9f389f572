package ats

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"careerpilot-backend/internal/match"
)

func newTestRouter(svc *Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewHandler(svc).RegisterRoutes(router.Group("/"))
	return router
}

// analysisForm builds the multipart body both endpoints accept. contentType
// is the declared type of the resume part.
func analysisForm(t *testing.T, resume []byte, contentType, jobDescription string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="resume"; filename="resume.pdf"`)
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	if err != nil {
		t.Fatalf("create resume part: %v", err)
	}
	if _, err := part.Write(resume); err != nil {
		t.Fatalf("write resume part: %v", err)
	}
	if err := writer.WriteField("job_description", jobDescription); err != nil {
		t.Fatalf("write job_description field: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return body, writer.FormDataContentType()
}

func postAnalysis(t *testing.T, router *gin.Engine, path string, resume []byte, contentType, jobDescription string) *httptest.ResponseRecorder {
	t.Helper()
	body, formType := analysisForm(t, resume, contentType, jobDescription)
	req := httptest.NewRequest(http.MethodPost, path, body)
	req.Header.Set("Content-Type", formType)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestCandidateEndpoint(t *testing.T) {
	completer := &fakeCompleter{replies: map[string]string{
		"senior career coach": `{"overall": {"total_days": 30}}`,
	}}
	svc := newTestService(completer, `{"skills": ["python"]}`)
	router := newTestRouter(svc)

	resp := postAnalysis(t, router, "/ats/candidate", []byte("python engineer resume"), "application/pdf", testReference)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var report struct {
		Warnings       []string        `json:"warnings"`
		SemanticScore  float64         `json:"semantic_score"`
		ATSScore       float64         `json:"ats_score"`
		KeywordDensity float64         `json:"keyword_density"`
		ResumeSkills   []string        `json:"resume_skills"`
		JDSkills       []string        `json:"jd_skills"`
		MissingSkills  []string        `json:"missing_skills"`
		Roadmap        json.RawMessage `json:"roadmap"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if report.Warnings == nil {
		t.Fatal("warnings must be present, possibly empty")
	}
	if report.SemanticScore != 100.0 {
		t.Fatalf("expected semantic 100, got %v", report.SemanticScore)
	}
	if len(report.ResumeSkills) != 1 || report.ResumeSkills[0] != "python" {
		t.Fatalf("unexpected resume skills: %v", report.ResumeSkills)
	}
}

func TestRecruiterEndpoint(t *testing.T) {
	completer := &fakeCompleter{replies: map[string]string{
		"senior technical recruiter": `{"verdict": "Maybe"}`,
	}}
	pipeline := &match.Pipeline{
		Extract:   passthroughExtract,
		Completer: &splitSkillsCompleter{},
		Embedder:  fakeEmbedder{},
	}
	svc := NewService(pipeline, completer, 0, nil)
	router := newTestRouter(svc)

	resume := strings.Repeat("python engineer shipping services ", 20)
	resp := postAnalysis(t, router, "/ats/recruiter", []byte(resume), "application/pdf", testReference+" REFMARK")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var report struct {
		Report map[string]any `json:"report"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if report.Report["verdict"] != "Maybe" {
		t.Fatalf("expected model verdict in report, got %v", report.Report)
	}
	meta, ok := report.Report["_meta"].(map[string]any)
	if !ok {
		t.Fatalf("expected _meta block, got %v", report.Report)
	}
	if _, ok := meta["rule_flags"]; !ok {
		t.Fatalf("expected rule_flags in _meta, got %v", meta)
	}
}

func TestAnalysisEndpointValidation(t *testing.T) {
	svc := newTestService(&fakeCompleter{}, `{"skills": []}`)
	router := newTestRouter(svc)

	for _, path := range []string{"/ats/candidate", "/ats/recruiter"} {
		t.Run(path+" wrong content type", func(t *testing.T) {
			resp := postAnalysis(t, router, path, []byte("resume"), "text/plain", testReference)
			if resp.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", resp.Code)
			}
		})
		t.Run(path+" empty job description", func(t *testing.T) {
			resp := postAnalysis(t, router, path, []byte("resume"), "application/pdf", "   ")
			if resp.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", resp.Code)
			}
		})
		t.Run(path+" missing resume", func(t *testing.T) {
			body := &bytes.Buffer{}
			writer := multipart.NewWriter(body)
			if err := writer.WriteField("job_description", testReference); err != nil {
				t.Fatalf("write field: %v", err)
			}
			writer.Close()
			req := httptest.NewRequest(http.MethodPost, path, body)
			req.Header.Set("Content-Type", writer.FormDataContentType())
			resp := httptest.NewRecorder()
			router.ServeHTTP(resp, req)
			if resp.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", resp.Code)
			}
		})
	}
}

func TestAnalysisEndpointUnextractableDocument(t *testing.T) {
	pipeline := &match.Pipeline{
		Extract: func(ctx context.Context, data []byte) (string, error) {
			return "", nil // blank text trips the no-text guard
		},
		Completer: &fakeCompleter{},
		Embedder:  fakeEmbedder{},
	}
	svc := NewService(pipeline, &fakeCompleter{}, 0, nil)
	router := newTestRouter(svc)

	resp := postAnalysis(t, router, "/ats/candidate", []byte("scanned image pdf"), "application/pdf", testReference)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unextractable document, got %d", resp.Code)
	}
}

func TestRecruiterEndpointEmptyReport(t *testing.T) {
	completer := &fakeCompleter{replies: map[string]string{
		"senior technical recruiter": "no json here",
	}}
	svc := newTestService(completer, `{"skills": ["python"]}`)
	router := newTestRouter(svc)

	resp := postAnalysis(t, router, "/ats/recruiter", []byte("python engineer"), "application/pdf", testReference)
	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 for unusable report, got %d", resp.Code)
	}
}
