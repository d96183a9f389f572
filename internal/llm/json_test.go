package llm

import (
	"testing"
)

func TestCleanResponseStripsFences(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain", `{"skills":["go"]}`, `{"skills":["go"]}`},
		{"json fence", "```json\n{\"skills\":[\"go\"]}\n```", `{"skills":["go"]}`},
		{"bare fence", "```\n{\"skills\":[\"go\"]}\n```", `{"skills":["go"]}`},
		{"leading prose kept outside fence", "Here you go:\n```json\n{\"a\":1}\n```", `{"a":1}`},
		{"whitespace", "  {\"a\":1}  \n", `{"a":1}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CleanResponse(tc.in); got != tc.want {
				t.Fatalf("CleanResponse(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestDecodeObject(t *testing.T) {
	var parsed struct {
		Skills []string `json:"skills"`
	}
	if err := DecodeObject("```json\n{\"skills\":[\"python\",\"sql\"]}\n```", &parsed); err != nil {
		t.Fatalf("DecodeObject: %v", err)
	}
	if len(parsed.Skills) != 2 {
		t.Fatalf("expected 2 skills, got %v", parsed.Skills)
	}

	if err := DecodeObject("not json", &parsed); err == nil {
		t.Fatalf("expected error for malformed reply")
	}
	if err := DecodeObject(`["array","not","object"]`, &parsed); err == nil {
		t.Fatalf("expected error for non-object reply")
	}
}

func TestStringListDropsNonStrings(t *testing.T) {
	got := StringList(`{"skills":["python", 42, "react", null]}`, "skills")
	if len(got) != 2 || got[0] != "python" || got[1] != "react" {
		t.Fatalf("expected [python react], got %v", got)
	}
	if StringList("garbage", "skills") != nil {
		t.Fatalf("expected nil for malformed reply")
	}
	if StringList(`{"other":1}`, "skills") != nil {
		t.Fatalf("expected nil for missing path")
	}
}

func TestRawObject(t *testing.T) {
	raw, err := RawObject("```json\n{\"verdict\":\"Maybe\"}\n```")
	if err != nil {
		t.Fatalf("RawObject: %v", err)
	}
	if string(raw) != `{"verdict":"Maybe"}` {
		t.Fatalf("unexpected raw payload: %s", raw)
	}
	if _, err := RawObject("[]"); err == nil {
		t.Fatalf("expected error for non-object payload")
	}
}
