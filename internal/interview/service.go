package interview

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"careerpilot-backend/internal/llm"
)

// Question objects are model-generated and relayed to the client unchanged;
// the schema lives in the prompt, not in Go types.
type Question map[string]any

// QA is one prior question/answer exchange in a mock interview.
type QA struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// The follow-up prompt only carries recent context; early exchanges stop
// influencing the interviewer's tone.
const followupHistoryWindow = 4

var (
	// ErrNoQuestions indicates question generation produced no usable set.
	ErrNoQuestions = errors.New("could not generate interview questions")
	// ErrEmptyFeedback indicates the feedback call produced no usable report.
	ErrEmptyFeedback = errors.New("could not generate interview feedback")
)

// Service drives the three stages of a mock interview: question generation,
// live follow-ups, and final feedback.
type Service struct {
	Completer   llm.Completer
	CallTimeout time.Duration
}

func NewService(completer llm.Completer, callTimeout time.Duration) *Service {
	return &Service{
		Completer:   llm.WithRetry(completer),
		CallTimeout: callTimeout,
	}
}

// Questions generates the mixed question set for a role and experience level.
func (s *Service) Questions(ctx context.Context, role, experience string, focus []string) ([]Question, error) {
	focusLine := ""
	if len(focus) > 0 {
		focusLine = fmt.Sprintf("Focus especially on: %s.", strings.Join(focus, ", "))
	}

	reply, err := s.complete(ctx, fmt.Sprintf(questionsPrompt, experience, role, focusLine))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoQuestions, err)
	}
	var parsed struct {
		Questions []Question `json:"questions"`
	}
	if err := llm.DecodeObject(reply, &parsed); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoQuestions, err)
	}
	if len(parsed.Questions) == 0 {
		return nil, ErrNoQuestions
	}
	return parsed.Questions, nil
}

// Followup returns the interviewer's reaction to a candidate answer. The
// reply is free text, not JSON.
func (s *Service) Followup(ctx context.Context, role, question, answer string, history []QA) (string, error) {
	if len(history) > followupHistoryWindow {
		history = history[len(history)-followupHistoryWindow:]
	}
	var b strings.Builder
	for _, qa := range history {
		fmt.Fprintf(&b, "Q: %s\nA: %s\n\n", qa.Question, qa.Answer)
	}

	reply, err := s.complete(ctx, fmt.Sprintf(followupPrompt, role, b.String(), question, answer))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(reply), nil
}

// Feedback scores the full transcript. Questions are the objects returned by
// Questions; answers are positional, with "[Skipped]" for skipped questions.
func (s *Service) Feedback(ctx context.Context, role string, questions []Question, answers []string) (map[string]any, error) {
	var b strings.Builder
	for i, q := range questions {
		if i >= len(answers) {
			break
		}
		fmt.Fprintf(&b, "Q%d (%s, %s): %s\nAnswer: %s\n\n",
			i+1, stringField(q, "type"), stringField(q, "difficulty"), stringField(q, "question"), answers[i])
	}

	reply, err := s.complete(ctx, fmt.Sprintf(feedbackPrompt, role, b.String()))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEmptyFeedback, err)
	}
	var feedback map[string]any
	if err := llm.DecodeObject(reply, &feedback); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEmptyFeedback, err)
	}
	return feedback, nil
}

func (s *Service) complete(ctx context.Context, prompt string) (string, error) {
	if s.CallTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.CallTimeout)
		defer cancel()
	}
	return s.Completer.Complete(ctx, prompt)
}

func stringField(q Question, key string) string {
	if v, ok := q[key].(string); ok {
		return v
	}
	return ""
}
