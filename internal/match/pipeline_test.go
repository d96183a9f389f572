package match

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func passthroughExtract(ctx context.Context, data []byte) (string, error) {
	return string(data), nil
}

const richReference = "python sql react terraform kubernetes docker postgres redis kafka grafana prometheus linux networking django flask golang"

func TestPipelineRun(t *testing.T) {
	p := &Pipeline{
		Extract:   passthroughExtract,
		Completer: &fakeCompleter{reply: `{"skills": ["python", "sql"]}`},
		Embedder:  &fakeEmbedder{vec: []float32{1, 0}},
	}

	res, err := p.Run(context.Background(), []byte("python and sql engineer"), richReference)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.SemanticScore != 100.0 {
		t.Fatalf("expected semantic 100, got %v", res.SemanticScore)
	}
	if res.KeywordScore <= 0 || res.KeywordDensity <= 0 {
		t.Fatalf("expected positive keyword scores, got %v / %v", res.KeywordScore, res.KeywordDensity)
	}
	if got := res.ResumeSkills.Sorted(); len(got) != 2 {
		t.Fatalf("expected 2 resume skills, got %v", got)
	}
	if res.Warnings == nil {
		t.Fatal("warnings must never be nil")
	}
	if len(res.Warnings) != 0 {
		t.Fatalf("rich reference should not warn, got %v", res.Warnings)
	}
}

func TestPipelineRunExtractionFatal(t *testing.T) {
	p := &Pipeline{
		Extract: func(ctx context.Context, data []byte) (string, error) {
			return "", errors.New("no readable text")
		},
		Completer: &fakeCompleter{reply: `{"skills": []}`},
		Embedder:  &fakeEmbedder{vec: []float32{1}},
	}
	if _, err := p.Run(context.Background(), []byte("x"), richReference); err == nil {
		t.Fatal("expected extraction failure to be fatal")
	}
}

func TestPipelineRunBlankDocumentFatal(t *testing.T) {
	p := &Pipeline{
		Extract:   passthroughExtract,
		Completer: &fakeCompleter{reply: `{"skills": []}`},
		Embedder:  &fakeEmbedder{vec: []float32{1}},
	}
	if _, err := p.Run(context.Background(), []byte("   \n "), richReference); err == nil {
		t.Fatal("expected blank extracted text to be fatal")
	}
}

func TestPipelineRunDegradesSoftly(t *testing.T) {
	p := &Pipeline{
		Extract:   passthroughExtract,
		Completer: &fakeCompleter{fail: true},
		Embedder:  &fakeEmbedder{fail: true},
	}

	res, err := p.Run(context.Background(), []byte("python engineer resume"), richReference)
	if err != nil {
		t.Fatalf("degraded sub-steps must not fail the run: %v", err)
	}
	if res.SemanticScore != 0.0 {
		t.Fatalf("expected semantic 0 on embed failure, got %v", res.SemanticScore)
	}
	if len(res.ResumeSkills) != 0 || len(res.ReferenceSkills) != 0 {
		t.Fatalf("expected empty skill sets on completion failure, got %v / %v",
			res.ResumeSkills.Sorted(), res.ReferenceSkills.Sorted())
	}
	// Keyword scoring needs no LLM and survives untouched.
	if res.KeywordScore <= 0 {
		t.Fatalf("keyword score should survive llm outage, got %v", res.KeywordScore)
	}
}

func TestPipelineRunSparseReferenceWarning(t *testing.T) {
	p := &Pipeline{
		Extract:   passthroughExtract,
		Completer: &fakeCompleter{reply: `{"skills": []}`},
		Embedder:  &fakeEmbedder{vec: []float32{1}},
	}

	res, err := p.Run(context.Background(), []byte("python engineer"), "python only")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Warnings) != 1 || !strings.Contains(res.Warnings[0], "qualifying keywords") {
		t.Fatalf("expected sparse-reference warning, got %v", res.Warnings)
	}
}

func TestPipelineRunTruncatesInputs(t *testing.T) {
	p := &Pipeline{
		Extract:   passthroughExtract,
		Completer: &fakeCompleter{reply: `{"skills": []}`},
		Embedder:  &fakeEmbedder{vec: []float32{1}},
	}

	longResume := strings.Repeat("a", resumeTextCap+500)
	longReference := richReference + " " + strings.Repeat("b", referenceTextCap+500)
	res, err := p.Run(context.Background(), []byte(longResume), longReference)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n := len([]rune(res.ResumeText)); n != resumeTextCap {
		t.Fatalf("resume not capped: %d runes", n)
	}
	if n := len([]rune(res.ReferenceText)); n != referenceTextCap {
		t.Fatalf("reference not capped: %d runes", n)
	}
}

func TestPipelineRunCancelledContext(t *testing.T) {
	p := &Pipeline{
		Extract:   passthroughExtract,
		Completer: &fakeCompleter{reply: `{"skills": []}`},
		Embedder:  &fakeEmbedder{vec: []float32{1}},
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := p.Run(ctx, []byte("python engineer"), richReference); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}

func TestResultMissingSkills(t *testing.T) {
	res := Result{
		ResumeSkills:    NewSkillSet([]string{"python", "sql"}),
		ReferenceSkills: NewSkillSet([]string{"python", "react", "terraform"}),
	}
	got := res.MissingSkills()
	if len(got) != 2 || got[0] != "react" || got[1] != "terraform" {
		t.Fatalf("unexpected missing skills: %v", got)
	}
}
