package match

import "strings"

const (
	chunkSize    = 600
	chunkOverlap = 100
	maxChunks    = 12
)

// Chunks splits text into overlapping slices of at most size runes with the
// given overlap. Boundaries prefer the last whitespace in the back half of a
// chunk so words survive intact; the overlap preserves context that would
// otherwise be lost at a hard cut.
func Chunks(text string, size, overlap int) []string {
	if size <= 0 {
		return nil
	}
	if overlap < 0 || overlap >= size {
		overlap = 0
	}

	runes := []rune(strings.TrimSpace(text))
	if len(runes) == 0 {
		return nil
	}

	var out []string
	start := 0
	for start < len(runes) {
		end := start + size
		if end >= len(runes) {
			end = len(runes)
		} else if cut := lastSpaceAfter(runes, start+size/2, end); cut > start {
			end = cut
		}

		chunk := strings.TrimSpace(string(runes[start:end]))
		if chunk != "" {
			out = append(out, chunk)
		}
		if end == len(runes) {
			break
		}

		next := end - overlap
		if next <= start {
			next = start + 1
		}
		start = next
	}
	return out
}

func lastSpaceAfter(runes []rune, from, to int) int {
	for i := to - 1; i > from; i-- {
		if runes[i] == ' ' || runes[i] == '\n' || runes[i] == '\t' {
			return i
		}
	}
	return -1
}
