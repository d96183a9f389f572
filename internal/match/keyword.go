package match

import (
	"math"
	"sort"
)

const stuffingThreshold = 10

// KeywordScore computes the keyword-overlap score and keyword density
// between a resume and a reference text, both scaled to 0-100 with two
// decimals. Density is the fraction of qualifying reference keywords that
// appear at least once in the resume; the final score subtracts a stuffing
// penalty of 0.001 per occurrence beyond 10 of any single keyword.
func KeywordScore(resumeText, referenceText string) (final, density float64) {
	counts := termFrequency(resumeText)
	keywords := referenceKeywords(referenceText)
	if len(keywords) == 0 {
		return 0.0, 0.0
	}

	matched := 0
	stuffing := 0
	for kw := range keywords {
		freq := counts[kw]
		if freq > 0 {
			matched++
		}
		if freq > stuffingThreshold {
			stuffing += freq - stuffingThreshold
		}
	}

	rawDensity := float64(matched) / float64(len(keywords))
	rawFinal := math.Max(0.0, rawDensity-float64(stuffing)*0.001)
	return round2(rawFinal * 100), round2(rawDensity * 100)
}

// KeywordCount returns the number of qualifying keywords in text. Used to
// detect reference texts too sparse for scores to be meaningful.
func KeywordCount(text string) int {
	return len(referenceKeywords(text))
}

// KeywordDebug lists exactly which reference keywords matched the resume.
type KeywordDebug struct {
	JDKeywords []string `json:"jd_keywords"`
	Matched    []string `json:"matched"`
	NotMatched []string `json:"not_matched"`
}

// DebugKeywords reports the sorted matched/unmatched keyword breakdown so
// callers can cross-check the score.
func DebugKeywords(resumeText, referenceText string) KeywordDebug {
	counts := termFrequency(resumeText)
	keywords := referenceKeywords(referenceText)

	debug := KeywordDebug{
		JDKeywords: make([]string, 0, len(keywords)),
		Matched:    []string{},
		NotMatched: []string{},
	}
	for kw := range keywords {
		debug.JDKeywords = append(debug.JDKeywords, kw)
		if counts[kw] > 0 {
			debug.Matched = append(debug.Matched, kw)
		} else {
			debug.NotMatched = append(debug.NotMatched, kw)
		}
	}
	sort.Strings(debug.JDKeywords)
	sort.Strings(debug.Matched)
	sort.Strings(debug.NotMatched)
	return debug
}

// termFrequency counts every token in text, unfiltered. Stuffing detection
// needs raw counts, so keyword filtering applies only to the reference side.
func termFrequency(text string) map[string]int {
	counts := make(map[string]int)
	for _, tok := range Tokenize(text) {
		counts[tok]++
	}
	return counts
}

func referenceKeywords(text string) map[string]struct{} {
	keywords := make(map[string]struct{})
	for _, tok := range Tokenize(text) {
		if IsKeyword(tok) {
			keywords[tok] = struct{}{}
		}
	}
	return keywords
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
