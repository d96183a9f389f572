package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// CleanResponse strips markdown code fences from a model reply and trims
// whitespace. Models wrap JSON in ```json fences despite instructions not to.
func CleanResponse(raw string) string {
	if !strings.Contains(raw, "```") {
		return strings.TrimSpace(raw)
	}

	start := strings.Index(raw, "```")
	rest := raw[start+3:]
	if idx := strings.IndexByte(rest, '\n'); idx >= 0 && len(strings.TrimSpace(rest[:idx])) <= 8 {
		// Language tag on the opening fence, e.g. ```json
		rest = rest[idx+1:]
	}
	if end := strings.LastIndex(rest, "```"); end >= 0 {
		rest = rest[:end]
	}
	cleaned := strings.TrimSpace(rest)
	if cleaned == "" {
		return strings.TrimSpace(strings.ReplaceAll(strings.ReplaceAll(raw, "```json", ""), "```", ""))
	}
	return cleaned
}

// DecodeObject cleans a model reply and unmarshals it into v. The reply must
// be a single JSON object.
func DecodeObject(raw string, v any) error {
	cleaned := CleanResponse(raw)
	if !gjson.Valid(cleaned) {
		return fmt.Errorf("llm reply is not valid JSON")
	}
	if !strings.HasPrefix(cleaned, "{") {
		return fmt.Errorf("llm reply is not a JSON object")
	}
	return json.Unmarshal([]byte(cleaned), v)
}

// RawObject cleans a model reply and returns it as raw JSON, verifying only
// that it parses as an object. Used for report payloads that are relayed to
// clients without a fixed schema.
func RawObject(raw string) (json.RawMessage, error) {
	cleaned := CleanResponse(raw)
	if !gjson.Valid(cleaned) || !strings.HasPrefix(cleaned, "{") {
		return nil, fmt.Errorf("llm reply is not a JSON object")
	}
	return json.RawMessage(cleaned), nil
}

// StringList cleans a model reply and pulls the array at path, keeping only
// string elements. Returns nil when the reply is malformed or the path is
// missing; callers treat that as the empty set.
func StringList(raw string, path string) []string {
	cleaned := CleanResponse(raw)
	if !gjson.Valid(cleaned) {
		return nil
	}
	result := gjson.Get(cleaned, path)
	if !result.IsArray() {
		return nil
	}
	var out []string
	for _, item := range result.Array() {
		if item.Type == gjson.String {
			out = append(out, item.String())
		}
	}
	return out
}
