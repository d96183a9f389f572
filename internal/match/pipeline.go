package match

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"careerpilot-backend/internal/extract"
	"careerpilot-backend/internal/llm"
	"careerpilot-backend/internal/shared/metrics"
	"careerpilot-backend/internal/shared/telemetry"
)

const (
	resumeTextCap    = 15000
	referenceTextCap = 10000
	// Below this many qualifying keywords the reference text is too sparse
	// for keyword or semantic scores to mean much.
	minReferenceKeywords = 15
)

// ErrExtraction marks a failure to obtain usable text from the uploaded
// document. Handlers map it to a client error; everything else out of Run is
// a server-side failure.
var ErrExtraction = errors.New("could not extract text from document")

// Pipeline orchestrates text extraction, scoring, and skill extraction into
// one shared Result per request. It holds no per-request state; a single
// Pipeline serves all requests.
type Pipeline struct {
	Extract     func(ctx context.Context, data []byte) (string, error)
	Completer   llm.Completer
	Embedder    llm.Embedder
	CallTimeout time.Duration
}

// NewPipeline wires a pipeline with the default PDF extractor and bounded
// retry around both capabilities.
func NewPipeline(completer llm.Completer, embedder llm.Embedder, callTimeout time.Duration) *Pipeline {
	return &Pipeline{
		Extract:     extract.Text,
		Completer:   llm.WithRetry(completer),
		Embedder:    llm.WithRetryEmbedder(embedder),
		CallTimeout: callTimeout,
	}
}

// Run executes the full shared analysis. Only text extraction is fatal;
// every scoring or extraction sub-step degrades to its safe default with a
// warn log and a metrics increment.
func (p *Pipeline) Run(ctx context.Context, documentBytes []byte, referenceText string) (Result, error) {
	started := time.Now()
	metrics.IncPipelineStarted()

	raw, err := p.Extract(ctx, documentBytes)
	if err != nil {
		metrics.IncPipelineFailed()
		return Result{}, fmt.Errorf("%w: %w", ErrExtraction, err)
	}
	if strings.TrimSpace(raw) == "" {
		metrics.IncPipelineFailed()
		return Result{}, fmt.Errorf("%w: %w", ErrExtraction, extract.ErrNoText)
	}

	resume := Truncate(strings.TrimSpace(raw), resumeTextCap)
	reference := Truncate(strings.TrimSpace(referenceText), referenceTextCap)

	var warnings []string
	if count := KeywordCount(reference); count < minReferenceKeywords {
		warnings = append(warnings, fmt.Sprintf("Job description only has %d qualifying keywords — scores may be unreliable.", count))
	}

	final, density := KeywordScore(resume, reference)

	scorer := &SemanticScorer{Embedder: p.Embedder, CallTimeout: p.CallTimeout}
	extractor := &SkillExtractor{Completer: p.Completer, CallTimeout: p.CallTimeout}

	var (
		semantic        float64
		resumeSkills    SkillSet
		referenceSkills SkillSet
	)

	// The three LLM-backed steps have no data dependency on each other.
	// Each fails soft inside its own closure, so the group never aborts.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		score, err := scorer.Score(gctx, resume, reference)
		if err != nil {
			p.degrade("semantic_score", err)
			score = 0.0
		}
		semantic = score
		return nil
	})
	g.Go(func() error {
		skills, err := extractor.Extract(gctx, resume)
		if err != nil {
			p.degrade("resume_skills", err)
		}
		resumeSkills = skills
		return nil
	})
	g.Go(func() error {
		skills, err := extractor.Extract(gctx, reference)
		if err != nil {
			p.degrade("reference_skills", err)
		}
		referenceSkills = skills
		return nil
	})
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		metrics.IncPipelineFailed()
		return Result{}, err
	}

	metrics.IncPipelineCompleted()
	metrics.ObservePipelineDurationMs(float64(time.Since(started).Microseconds()) / 1000.0)

	if warnings == nil {
		warnings = []string{}
	}
	return Result{
		ResumeText:      resume,
		ReferenceText:   reference,
		SemanticScore:   semantic,
		KeywordScore:    final,
		KeywordDensity:  density,
		ResumeSkills:    resumeSkills,
		ReferenceSkills: referenceSkills,
		Warnings:        warnings,
	}, nil
}

func (p *Pipeline) degrade(step string, err error) {
	metrics.IncDegradedStep()
	telemetry.Warn("pipeline.degraded", map[string]any{
		"step":  step,
		"error": err.Error(),
	})
}
