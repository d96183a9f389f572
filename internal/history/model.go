package history

import "time"

// Run is the persisted summary of one completed analysis. Scores only; the
// resume and reference texts are never stored.
type Run struct {
	ID             string    `json:"id"`
	Mode           string    `json:"mode"`
	DocumentHash   string    `json:"documentHash"`
	SemanticScore  float64   `json:"semanticScore"`
	KeywordScore   float64   `json:"keywordScore"`
	KeywordDensity float64   `json:"keywordDensity"`
	MissingSkills  int       `json:"missingSkills"`
	Warnings       int       `json:"warnings"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Analysis modes.
const (
	ModeCandidate = "candidate"
	ModeRecruiter = "recruiter"
)
