package market

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"careerpilot-backend/internal/extract"
	"careerpilot-backend/internal/llm"
	"careerpilot-backend/internal/match"
	"careerpilot-backend/internal/shared/telemetry"
)

// Only the head of the resume reaches the skills prompt; a resume's skill
// signal lives in its first pages.
const resumePromptCap = 8000

var (
	// ErrNoSkills indicates the document parsed but no skills could be
	// extracted, so there is nothing to analyze.
	ErrNoSkills = errors.New("could not extract skills from the resume")
	// ErrEmptyAnalysis indicates the market analysis call produced no
	// usable report.
	ErrEmptyAnalysis = errors.New("market analysis produced no report")
)

const skillsPrompt = `Extract all specific technical skills, tools, programming languages, frameworks and technologies from this resume.
Be specific — return 'python' not 'programming'.
Return ONLY valid JSON: {"skills": ["python", "sql", "react"]}
No broad categories, no markdown fences.

Resume:
%s`

const analysisPrompt = `You are a senior job market analyst with deep knowledge of current tech hiring trends (2024-2025).

The candidate has these skills: %s

Perform a complete market analysis. Return ONLY valid JSON (no markdown):
{
  "skill_demand": [
    {"skill":"python","demand_score":95,"trend":"rising","level":"high","market_comment":"one line insight"}
  ],
  "trending_skills": [
    {"skill":"skill name","demand_score":90,"why_trending":"brief reason"}
  ],
  "skill_gaps": [
    {"skill":"missing skill","demand_score":85,"why_needed":"brief reason"}
  ],
  "job_matches": [
    {"title":"Job Title","match_pct":82,"required_skills":["s1","s2"],"missing_skills":["s3"],"avg_salary_usd":"120000-150000"}
  ],
  "salary_insights": {
    "current_estimated_range":"$X-$Y",
    "potential_range_with_upskilling":"$A-$B",
    "currency":"USD",
    "market_summary":"2-3 sentence salary analysis",
    "by_role":[{"role":"name","min":"$X","avg":"$Y","max":"$Z"}]
  },
  "learning_path": [
    {"skill":"skill to learn","priority":"high","estimated_time":"4 weeks","salary_impact":"+$10,000/yr","resource":"YouTube channel or course"}
  ],
  "market_summary":"3-4 sentence overall assessment"
}
Rules: demand_score 0-100 | trend: rising/stable/declining | level: high/medium/low
Top 8 job matches, top 8 trending skills, top 6 skill gaps, top 6 learning path items.`

// Service turns an uploaded resume into a market analysis report.
type Service struct {
	Extract     func(ctx context.Context, data []byte) (string, error)
	Completer   llm.Completer
	CallTimeout time.Duration
}

func NewService(completer llm.Completer, callTimeout time.Duration) *Service {
	return &Service{
		Extract:     extract.Text,
		Completer:   llm.WithRetry(completer),
		CallTimeout: callTimeout,
	}
}

// Analyze extracts the candidate's skills and runs the single-call market
// analysis. The extracted skills are appended to the report under "skills".
func (s *Service) Analyze(ctx context.Context, documentBytes []byte) (map[string]any, error) {
	text, err := s.Extract(ctx, documentBytes)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", match.ErrExtraction, err)
	}
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: %w", match.ErrExtraction, extract.ErrNoText)
	}

	skills := s.skills(ctx, text)
	if len(skills) == 0 {
		return nil, ErrNoSkills
	}

	reply, err := s.complete(ctx, fmt.Sprintf(analysisPrompt, strings.Join(skills, ", ")))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEmptyAnalysis, err)
	}
	var report map[string]any
	if err := llm.DecodeObject(reply, &report); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEmptyAnalysis, err)
	}

	report["skills"] = skills
	return report, nil
}

// skills fails soft to nil; the caller decides whether an empty set is fatal.
func (s *Service) skills(ctx context.Context, text string) []string {
	reply, err := s.complete(ctx, fmt.Sprintf(skillsPrompt, match.Truncate(text, resumePromptCap)))
	if err != nil {
		telemetry.Warn("market.skills.failed", map[string]any{"error": err.Error()})
		return nil
	}
	return llm.StringList(reply, "skills")
}

func (s *Service) complete(ctx context.Context, prompt string) (string, error) {
	if s.CallTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.CallTimeout)
		defer cancel()
	}
	return s.Completer.Complete(ctx, prompt)
}
