package health

// Service encapsulates health-related checks.
type Service struct {
	Model string
}

// NewService constructs a new health service.
func NewService(model string) *Service {
	return &Service{Model: model}
}

type moduleInfo struct {
	KeyEnv    string   `json:"key_env"`
	Endpoints []string `json:"endpoints"`
}

// Status returns the health payload: overall status, the per-module endpoint
// map, and the active completion model.
func (s *Service) Status() map[string]any {
	return map[string]any{
		"status": "ok",
		"modules": map[string]moduleInfo{
			"chat": {
				KeyEnv:    "CHAT_GEMINI_KEY",
				Endpoints: []string{"POST /chat/message"},
			},
			"market": {
				KeyEnv:    "MARKET_GEMINI_KEY",
				Endpoints: []string{"POST /market/analyze"},
			},
			"ats": {
				KeyEnv:    "ATS_GEMINI_KEY",
				Endpoints: []string{"POST /ats/candidate", "POST /ats/recruiter"},
			},
			"interview": {
				KeyEnv:    "INTERVIEW_GEMINI_KEY",
				Endpoints: []string{"POST /interview/questions", "POST /interview/chat", "POST /interview/feedback"},
			},
		},
		"model": s.Model,
	}
}

// Info returns the root endpoint summary.
func Info() map[string]any {
	return map[string]any{
		"title":   "CareerPilot API",
		"version": "1.0.0",
		"endpoints": map[string][]string{
			"chat":      {"POST /chat/message"},
			"market":    {"POST /market/analyze"},
			"ats":       {"POST /ats/candidate", "POST /ats/recruiter", "GET /ats/history"},
			"interview": {"POST /interview/questions", "POST /interview/chat", "POST /interview/feedback"},
		},
	}
}
