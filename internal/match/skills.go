package match

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"careerpilot-backend/internal/llm"
)

// SkillSet is a set of lowercase, trimmed skill names. No alias
// canonicalization is performed: "react" and "react.js" stay distinct.
type SkillSet map[string]struct{}

// NewSkillSet builds a set from raw items, lowercasing and trimming each and
// dropping empties.
func NewSkillSet(items []string) SkillSet {
	set := make(SkillSet, len(items))
	for _, item := range items {
		cleaned := strings.ToLower(strings.TrimSpace(item))
		if cleaned != "" {
			set[cleaned] = struct{}{}
		}
	}
	return set
}

// Sorted returns the set as a sorted slice, never nil.
func (s SkillSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for skill := range s {
		out = append(out, skill)
	}
	sort.Strings(out)
	return out
}

// Diff returns the skills in s that are absent from other.
func (s SkillSet) Diff(other SkillSet) SkillSet {
	out := make(SkillSet)
	for skill := range s {
		if _, ok := other[skill]; !ok {
			out[skill] = struct{}{}
		}
	}
	return out
}

// Intersect returns the skills present in both sets.
func (s SkillSet) Intersect(other SkillSet) SkillSet {
	out := make(SkillSet)
	for skill := range s {
		if _, ok := other[skill]; ok {
			out[skill] = struct{}{}
		}
	}
	return out
}

const skillsPrompt = `Extract specific technical skills, tools, programming languages, frameworks, and technologies from the following text.
Be specific — instead of 'backend development' return 'python', 'node.js', 'django' etc.
Return ONLY valid JSON like: {"skills": ["python", "react", "sql"]}
No broad categories, no extra commentary, no markdown fences.

Text:
%s`

// SkillExtractor pulls a structured skill set out of free text via a
// completion capability.
type SkillExtractor struct {
	Completer   llm.Completer
	CallTimeout time.Duration
}

// Extract returns the skill set found in text. It fails soft: any call or
// parse failure yields an empty set alongside the error so callers can log
// the degradation and continue.
func (e *SkillExtractor) Extract(ctx context.Context, text string) (SkillSet, error) {
	if e.CallTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.CallTimeout)
		defer cancel()
	}

	reply, err := e.Completer.Complete(ctx, fmt.Sprintf(skillsPrompt, text))
	if err != nil {
		return SkillSet{}, fmt.Errorf("skill extraction: %w", err)
	}

	var parsed struct {
		Skills []any `json:"skills"`
	}
	if err := llm.DecodeObject(reply, &parsed); err != nil {
		return SkillSet{}, fmt.Errorf("skill extraction parse: %w", err)
	}
	items := make([]string, 0, len(parsed.Skills))
	for _, item := range parsed.Skills {
		if s, ok := item.(string); ok {
			items = append(items, s)
		}
	}
	return NewSkillSet(items), nil
}
