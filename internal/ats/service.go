package ats

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"careerpilot-backend/internal/history"
	"careerpilot-backend/internal/llm"
	"careerpilot-backend/internal/match"
	"careerpilot-backend/internal/shared/telemetry"
	"careerpilot-backend/internal/shared/util"
)

const (
	// Caps on what reaches the roadmap and recruiter prompts.
	roadmapMissingCap  = 8
	roadmapExistingCap = 15
	recruiterResumeCap = 3000
	recruiterJDCap     = 2000

	// Rule engine thresholds.
	shortResumeChars = 500
	lowOverlapPct    = 30.0
	lowScoreFloor    = 40.0
)

// ErrEmptyReport indicates the recruiter analysis produced no usable report.
var ErrEmptyReport = errors.New("recruiter analysis produced no report")

// Service runs the two analysis modes on top of the shared pipeline.
type Service struct {
	Pipeline    *match.Pipeline
	Completer   llm.Completer
	CallTimeout time.Duration
	Runs        *history.Service
}

func NewService(pipeline *match.Pipeline, completer llm.Completer, callTimeout time.Duration, runs *history.Service) *Service {
	return &Service{
		Pipeline:    pipeline,
		Completer:   llm.WithRetry(completer),
		CallTimeout: callTimeout,
		Runs:        runs,
	}
}

// Candidate runs the shared pipeline and builds the candidate-facing report:
// scores, skill gap, learning roadmap, and keyword debug info.
func (s *Service) Candidate(ctx context.Context, documentBytes []byte, referenceText string) (CandidateReport, error) {
	res, err := s.Pipeline.Run(ctx, documentBytes, referenceText)
	if err != nil {
		return CandidateReport{}, err
	}

	missing := res.MissingSkills()

	// A resume with no skill gap needs no roadmap; the call is skipped
	// entirely rather than asked for an empty plan.
	roadmap := json.RawMessage(`{}`)
	if len(missing) > 0 {
		roadmap = s.roadmap(ctx, missing, res.ResumeSkills.Sorted())
	}

	report := CandidateReport{
		Warnings:       res.Warnings,
		SemanticScore:  res.SemanticScore,
		ATSScore:       res.KeywordScore,
		KeywordDensity: res.KeywordDensity,
		ResumeSkills:   res.ResumeSkills.Sorted(),
		JDSkills:       res.ReferenceSkills.Sorted(),
		MissingSkills:  missing,
		Roadmap:        roadmap,
		Debug:          match.DebugKeywords(res.ResumeText, res.ReferenceText),
	}

	s.record(ctx, history.ModeCandidate, documentBytes, res, len(missing))
	return report, nil
}

// Recruiter runs the shared pipeline, applies the deterministic rule engine,
// and asks the model for a hiring verdict. Unlike candidate mode, an unusable
// model reply here fails the request: the report is the whole product.
func (s *Service) Recruiter(ctx context.Context, documentBytes []byte, referenceText string) (RecruiterReport, error) {
	res, err := s.Pipeline.Run(ctx, documentBytes, referenceText)
	if err != nil {
		return RecruiterReport{}, err
	}

	matched := res.ResumeSkills.Intersect(res.ReferenceSkills)
	missing := res.ReferenceSkills.Diff(res.ResumeSkills)

	// An empty reference skill set renders as the bare "0"; computed
	// percentages always carry one decimal.
	matchPct := 0.0
	pctText := "0"
	if len(res.ReferenceSkills) > 0 {
		matchPct = round1(float64(len(matched)) / float64(len(res.ReferenceSkills)) * 100)
		pctText = formatPct(matchPct)
	}
	ruleFlags := ruleFlags(res.ResumeText, matchPct, pctText, res.KeywordScore, res.SemanticScore)

	prompt := fmt.Sprintf(recruiterPrompt,
		joinSkills(res.ResumeSkills.Sorted()),
		joinSkills(res.ReferenceSkills.Sorted()),
		joinSkills(matched.Sorted()),
		joinSkills(missing.Sorted()),
		pctText,
		res.SemanticScore,
		res.KeywordScore,
		strings.Join(ruleFlags, "; "),
		match.Truncate(res.ResumeText, recruiterResumeCap),
		match.Truncate(res.ReferenceText, recruiterJDCap),
	)

	reply, err := s.complete(ctx, prompt)
	if err != nil {
		return RecruiterReport{}, fmt.Errorf("%w: %w", ErrEmptyReport, err)
	}
	var modelReport map[string]any
	if err := llm.DecodeObject(reply, &modelReport); err != nil {
		return RecruiterReport{}, fmt.Errorf("%w: %w", ErrEmptyReport, err)
	}
	modelReport["_meta"] = Meta{
		SemScore:  res.SemanticScore,
		ATSScore:  res.KeywordScore,
		MatchPct:  matchPct,
		RuleFlags: ruleFlags,
	}

	report := RecruiterReport{
		Warnings:       res.Warnings,
		SemanticScore:  res.SemanticScore,
		ATSScore:       res.KeywordScore,
		KeywordDensity: res.KeywordDensity,
		ResumeSkills:   res.ResumeSkills.Sorted(),
		JDSkills:       res.ReferenceSkills.Sorted(),
		Report:         modelReport,
	}

	s.record(ctx, history.ModeRecruiter, documentBytes, res, len(missing))
	return report, nil
}

// ruleFlags is the deterministic screen applied before any model verdict.
// Flag strings are stable: the frontend matches on them.
func ruleFlags(resumeText string, matchPct float64, pctText string, atsScore, semScore float64) []string {
	flags := []string{}
	if utf8.RuneCountInString(resumeText) < shortResumeChars {
		flags = append(flags, "Resume is very short — may lack detail")
	}
	if matchPct < lowOverlapPct {
		flags = append(flags, fmt.Sprintf("Only %s%% skill overlap with JD", pctText))
	}
	if atsScore < lowScoreFloor {
		flags = append(flags, "Low ATS score — may not pass automated screening")
	}
	if semScore < lowScoreFloor {
		flags = append(flags, "Low semantic match — content doesn't align with JD")
	}
	return flags
}

// roadmap asks for the day-by-day learning plan. It fails soft: a bad model
// reply degrades to an empty object, never an error.
func (s *Service) roadmap(ctx context.Context, missing, existing []string) json.RawMessage {
	if len(missing) > roadmapMissingCap {
		missing = missing[:roadmapMissingCap]
	}
	if len(existing) > roadmapExistingCap {
		existing = existing[:roadmapExistingCap]
	}

	prompt := fmt.Sprintf(roadmapPrompt, joinSkills(existing), joinSkills(missing))
	reply, err := s.complete(ctx, prompt)
	if err == nil {
		var raw json.RawMessage
		raw, err = llm.RawObject(reply)
		if err == nil {
			return raw
		}
	}
	telemetry.Warn("ats.roadmap.failed", map[string]any{
		"missing_skills": len(missing),
		"error":          err.Error(),
	})
	return json.RawMessage(`{}`)
}

func (s *Service) complete(ctx context.Context, prompt string) (string, error) {
	if s.CallTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.CallTimeout)
		defer cancel()
	}
	return s.Completer.Complete(ctx, prompt)
}

func (s *Service) record(ctx context.Context, mode string, documentBytes []byte, res match.Result, missingCount int) {
	if s.Runs == nil {
		return
	}
	s.Runs.Record(ctx, history.Run{
		Mode:           mode,
		DocumentHash:   util.HashContent(documentBytes),
		SemanticScore:  res.SemanticScore,
		KeywordScore:   res.KeywordScore,
		KeywordDensity: res.KeywordDensity,
		MissingSkills:  missingCount,
		Warnings:       len(res.Warnings),
	})
}

func joinSkills(skills []string) string {
	if len(skills) == 0 {
		return "none"
	}
	return strings.Join(skills, ", ")
}

// formatPct renders a percentage with exactly one decimal: 66.7, 25.0.
// The low-overlap flag embeds this text, so the format is load-bearing.
func formatPct(pct float64) string {
	return strconv.FormatFloat(pct, 'f', 1, 64)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
