package ats

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"

	"careerpilot-backend/internal/match"
)

// fakeCompleter routes replies by prompt content so one fake can serve both
// the pipeline's skill extraction and the service's report calls.
type fakeCompleter struct {
	mu      sync.Mutex
	replies map[string]string // substring of prompt -> reply
	fail    bool
	prompts []string
}

func (f *fakeCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	f.mu.Lock()
	f.prompts = append(f.prompts, prompt)
	f.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if f.fail {
		return "", errors.New("completion unavailable")
	}
	for needle, reply := range f.replies {
		if strings.Contains(prompt, needle) {
			return reply, nil
		}
	}
	return `{"skills": []}`, nil
}

func (f *fakeCompleter) promptCount(needle string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, p := range f.prompts {
		if strings.Contains(p, needle) {
			n++
		}
	}
	return n
}

type fakeEmbedder struct{}

func (fakeEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	return []float32{1, 0}, nil
}

func passthroughExtract(ctx context.Context, data []byte) (string, error) {
	return string(data), nil
}

func newTestService(completer *fakeCompleter, skillsReply string) *Service {
	pipelineCompleter := &fakeCompleter{replies: map[string]string{
		"Extract specific technical skills": skillsReply,
	}}
	pipeline := &match.Pipeline{
		Extract:   passthroughExtract,
		Completer: pipelineCompleter,
		Embedder:  fakeEmbedder{},
	}
	return NewService(pipeline, completer, 0, nil)
}

const testReference = "python sql react terraform kubernetes docker postgres redis kafka grafana prometheus linux networking django flask golang"

func TestRuleFlags(t *testing.T) {
	longResume := strings.Repeat("x", 600)

	tests := []struct {
		name      string
		resume    string
		matchPct  float64
		atsScore  float64
		semScore  float64
		wantCount int
	}{
		{"clean", longResume, 80, 80, 80, 0},
		{"short resume only", "tiny", 80, 80, 80, 1},
		{"low overlap only", longResume, 25.5, 80, 80, 1},
		{"three flags", strings.Repeat("x", 400), 50, 20, 30, 3},
		{"all four", "tiny", 10, 10, 10, 4},
		{"boundary values do not fire", longResume, 30, 40, 40, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flags := ruleFlags(tt.resume, tt.matchPct, formatPct(tt.matchPct), tt.atsScore, tt.semScore)
			if len(flags) != tt.wantCount {
				t.Fatalf("expected %d flags, got %v", tt.wantCount, flags)
			}
		})
	}
}

func TestRuleFlagsLiteralPercentage(t *testing.T) {
	flags := ruleFlags(strings.Repeat("x", 600), 25.5, formatPct(25.5), 80, 80)
	if len(flags) != 1 || !strings.Contains(flags[0], "25.5%") {
		t.Fatalf("expected literal percentage in flag, got %v", flags)
	}
}

func TestFormatPctOneDecimal(t *testing.T) {
	tests := []struct {
		pct  float64
		want string
	}{
		{25, "25.0"},
		{25.5, "25.5"},
		{66.7, "66.7"},
		{0, "0.0"},
		{100, "100.0"},
	}
	for _, tt := range tests {
		if got := formatPct(tt.pct); got != tt.want {
			t.Fatalf("formatPct(%v) = %q, want %q", tt.pct, got, tt.want)
		}
	}
}

func TestRuleFlagsWholeNumberPercentage(t *testing.T) {
	flags := ruleFlags(strings.Repeat("x", 600), 25, formatPct(25), 80, 80)
	if len(flags) != 1 || flags[0] != "Only 25.0% skill overlap with JD" {
		t.Fatalf("expected one-decimal rendering, got %v", flags)
	}
}

func TestRecruiterEmptyReferenceRendersBareZero(t *testing.T) {
	// With no reference skills the overlap renders as "0", not "0.0".
	flags := ruleFlags(strings.Repeat("x", 600), 0, "0", 80, 80)
	if len(flags) != 1 || flags[0] != "Only 0% skill overlap with JD" {
		t.Fatalf("expected bare zero rendering, got %v", flags)
	}
}

func TestCandidateReport(t *testing.T) {
	completer := &fakeCompleter{replies: map[string]string{
		"senior career coach": `{"overall": {"total_days": 30}, "skills": []}`,
	}}
	svc := newTestService(completer, `{"skills": ["python", "sql"]}`)

	report, err := svc.Candidate(context.Background(), []byte("python and sql engineer"), testReference)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.SemanticScore != 100.0 {
		t.Fatalf("expected semantic 100, got %v", report.SemanticScore)
	}
	if len(report.ResumeSkills) != 2 || len(report.JDSkills) != 2 {
		t.Fatalf("unexpected skills: %v / %v", report.ResumeSkills, report.JDSkills)
	}
	if len(report.MissingSkills) != 0 {
		t.Fatalf("expected no missing skills, got %v", report.MissingSkills)
	}
	if string(report.Roadmap) != `{}` {
		t.Fatalf("expected empty roadmap object, got %s", report.Roadmap)
	}
	if len(report.Debug.JDKeywords) == 0 {
		t.Fatal("expected keyword debug info")
	}
}

func TestCandidateSkipsRoadmapWhenNoGap(t *testing.T) {
	completer := &fakeCompleter{replies: map[string]string{
		"senior career coach": `{"overall": {}}`,
	}}
	// Resume and reference extract identical skill sets.
	svc := newTestService(completer, `{"skills": ["python"]}`)

	if _, err := svc.Candidate(context.Background(), []byte("python engineer"), testReference); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n := completer.promptCount("senior career coach"); n != 0 {
		t.Fatalf("roadmap call must be skipped with no missing skills, got %d calls", n)
	}
}

func TestCandidateRoadmapRequestedForGap(t *testing.T) {
	completer := &fakeCompleter{replies: map[string]string{
		"senior career coach": `{"overall": {"total_days": 45}}`,
	}}
	// Resume yields python, reference yields python+react via distinct texts.
	pipeline := &match.Pipeline{
		Extract:   passthroughExtract,
		Completer: &splitSkillsCompleter{},
		Embedder:  fakeEmbedder{},
	}
	svc := NewService(pipeline, completer, 0, nil)

	report, err := svc.Candidate(context.Background(), []byte("resume python"), testReference+" REFMARK")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(report.MissingSkills) != 1 || report.MissingSkills[0] != "react" {
		t.Fatalf("expected missing [react], got %v", report.MissingSkills)
	}
	var roadmap map[string]any
	if err := json.Unmarshal(report.Roadmap, &roadmap); err != nil {
		t.Fatalf("roadmap is not valid JSON: %v", err)
	}
	if _, ok := roadmap["overall"]; !ok {
		t.Fatalf("expected roadmap content, got %s", report.Roadmap)
	}
	if n := completer.promptCount("senior career coach"); n != 1 {
		t.Fatalf("expected exactly one roadmap call, got %d", n)
	}
}

// splitSkillsCompleter gives the reference text an extra skill so a gap
// exists between the two extracted sets.
type splitSkillsCompleter struct{}

func (splitSkillsCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	if strings.Contains(prompt, "REFMARK") {
		return `{"skills": ["python", "react"]}`, nil
	}
	return `{"skills": ["python"]}`, nil
}

func TestCandidateRoadmapFailsSoft(t *testing.T) {
	completer := &fakeCompleter{replies: map[string]string{
		"senior career coach": "not json",
	}}
	pipeline := &match.Pipeline{
		Extract:   passthroughExtract,
		Completer: &splitSkillsCompleter{},
		Embedder:  fakeEmbedder{},
	}
	svc := NewService(pipeline, completer, 0, nil)

	report, err := svc.Candidate(context.Background(), []byte("resume python"), testReference+" REFMARK")
	if err != nil {
		t.Fatalf("roadmap failure must not fail the request: %v", err)
	}
	if string(report.Roadmap) != `{}` {
		t.Fatalf("expected empty roadmap on parse failure, got %s", report.Roadmap)
	}
}

func TestRecruiterReport(t *testing.T) {
	completer := &fakeCompleter{replies: map[string]string{
		"senior technical recruiter": `{"verdict": "Good Candidate", "overall_score": 75}`,
	}}
	pipeline := &match.Pipeline{
		Extract:   passthroughExtract,
		Completer: &splitSkillsCompleter{},
		Embedder:  fakeEmbedder{},
	}
	svc := NewService(pipeline, completer, 0, nil)

	resume := strings.Repeat("python engineer with production experience ", 15)
	report, err := svc.Recruiter(context.Background(), []byte(resume), testReference+" REFMARK")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Report["verdict"] != "Good Candidate" {
		t.Fatalf("model verdict missing: %v", report.Report)
	}

	meta, ok := report.Report["_meta"].(Meta)
	if !ok {
		t.Fatalf("expected _meta block, got %T", report.Report["_meta"])
	}
	// 1 of 2 reference skills matched.
	if meta.MatchPct != 50.0 {
		t.Fatalf("expected matchPct 50, got %v", meta.MatchPct)
	}
	if meta.SemScore != report.SemanticScore || meta.ATSScore != report.ATSScore {
		t.Fatalf("_meta scores must mirror response scores: %+v", meta)
	}
	if meta.RuleFlags == nil {
		t.Fatal("rule flags must never be nil")
	}
}

func TestRecruiterMatchPctRounding(t *testing.T) {
	// 2 of 3 skills matched is exactly the 66.7 rounding case.
	resumeSkills := match.NewSkillSet([]string{"python", "sql"})
	referenceSkills := match.NewSkillSet([]string{"python", "sql", "react"})
	matched := resumeSkills.Intersect(referenceSkills)

	pct := round1(float64(len(matched)) / float64(len(referenceSkills)) * 100)
	if pct != 66.7 {
		t.Fatalf("expected 66.7, got %v", pct)
	}
	if flags := ruleFlags(strings.Repeat("x", 600), pct, formatPct(pct), 80, 80); len(flags) != 0 {
		t.Fatalf("66.7%% overlap must not flag, got %v", flags)
	}
}

func TestRecruiterEmptyReportFails(t *testing.T) {
	tests := []struct {
		name      string
		completer *fakeCompleter
	}{
		{"call failure", &fakeCompleter{fail: true}},
		{"unparseable reply", &fakeCompleter{replies: map[string]string{
			"senior technical recruiter": "I cannot answer that.",
		}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pipeline := &match.Pipeline{
				Extract:   passthroughExtract,
				Completer: &splitSkillsCompleter{},
				Embedder:  fakeEmbedder{},
			}
			svc := NewService(pipeline, tt.completer, 0, nil)
			_, err := svc.Recruiter(context.Background(), []byte("python engineer"), testReference)
			if !errors.Is(err, ErrEmptyReport) {
				t.Fatalf("expected ErrEmptyReport, got %v", err)
			}
		})
	}
}

func TestRecruiterExtractionFailure(t *testing.T) {
	pipeline := &match.Pipeline{
		Extract: func(ctx context.Context, data []byte) (string, error) {
			return "", errors.New("broken pdf")
		},
		Completer: &fakeCompleter{},
		Embedder:  fakeEmbedder{},
	}
	svc := NewService(pipeline, &fakeCompleter{}, 0, nil)
	_, err := svc.Recruiter(context.Background(), []byte("x"), testReference)
	if !errors.Is(err, match.ErrExtraction) {
		t.Fatalf("expected extraction error, got %v", err)
	}
}
