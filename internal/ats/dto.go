package ats

import (
	"encoding/json"

	"careerpilot-backend/internal/match"
)

// CandidateReport is the candidate-mode response body.
type CandidateReport struct {
	Warnings       []string           `json:"warnings"`
	SemanticScore  float64            `json:"semantic_score"`
	ATSScore       float64            `json:"ats_score"`
	KeywordDensity float64            `json:"keyword_density"`
	ResumeSkills   []string           `json:"resume_skills"`
	JDSkills       []string           `json:"jd_skills"`
	MissingSkills  []string           `json:"missing_skills"`
	Roadmap        json.RawMessage    `json:"roadmap"`
	Debug          match.KeywordDebug `json:"debug"`
}

// RecruiterReport is the recruiter-mode response body. The report itself is
// model-generated and schemaless apart from the _meta block this service
// injects.
type RecruiterReport struct {
	Warnings       []string       `json:"warnings"`
	SemanticScore  float64        `json:"semantic_score"`
	ATSScore       float64        `json:"ats_score"`
	KeywordDensity float64        `json:"keyword_density"`
	ResumeSkills   []string       `json:"resume_skills"`
	JDSkills       []string       `json:"jd_skills"`
	Report         map[string]any `json:"report"`
}

// Meta is the deterministic block attached to every recruiter report so
// callers can cross-check the model's verdict.
type Meta struct {
	SemScore  float64  `json:"sem_score"`
	ATSScore  float64  `json:"ats_score"`
	MatchPct  float64  `json:"match_pct"`
	RuleFlags []string `json:"rule_flags"`
}
