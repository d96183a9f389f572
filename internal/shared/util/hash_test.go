package util

import "testing"

func TestHashContent(t *testing.T) {
	data := []byte("%PDF-1.4 sample")
	got := HashContent(data)
	if got != HashContent(data) {
		t.Fatalf("expected stable hash, got %s", got)
	}
	if got == HashContent([]byte("other")) {
		t.Fatalf("different content produced the same hash")
	}
	for _, ch := range got {
		if !((ch >= 'a' && ch <= 'f') || (ch >= '0' && ch <= '9')) {
			t.Fatalf("hash contains non-hex character: %c", ch)
		}
	}
	if len(got) != 64 {
		t.Fatalf("expected 64 hex characters, got %d", len(got))
	}
}
