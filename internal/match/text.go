package match

import (
	"regexp"
	"strings"
	"unicode"
)

var wordRe = regexp.MustCompile(`\w+`)

// Tokenize lowercases text and extracts maximal runs of word characters.
// No stemming or lemmatization; deterministic and pure.
func Tokenize(text string) []string {
	return wordRe.FindAllString(strings.ToLower(text), -1)
}

// IsKeyword reports whether a token qualifies for keyword scoring: longer
// than two characters, not purely numeric, not a stopword.
func IsKeyword(word string) bool {
	if len([]rune(word)) <= 2 {
		return false
	}
	if _, ok := stopwords[word]; ok {
		return false
	}
	return !allDigits(word)
}

func allDigits(word string) bool {
	if word == "" {
		return false
	}
	for _, r := range word {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// Truncate cuts s to at most max runes. Idempotent: truncating text already
// at or under the cap returns it unchanged.
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == max {
			return s[:i]
		}
		count++
	}
	return s
}
