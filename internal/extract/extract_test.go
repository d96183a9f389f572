package extract

import (
	"context"
	"errors"
	"testing"
)

func TestTextEmptyPayload(t *testing.T) {
	_, err := Text(context.Background(), nil)
	if !errors.Is(err, ErrNoText) {
		t.Fatalf("expected ErrNoText for empty payload, got %v", err)
	}
}

func TestTextRejectsGarbage(t *testing.T) {
	_, err := Text(context.Background(), []byte("not a pdf at all"))
	if err == nil {
		t.Fatalf("expected parse error for non-PDF bytes")
	}
	if errors.Is(err, ErrNoText) {
		t.Fatalf("garbage bytes should fail parsing, not report empty text")
	}
}

func TestTextHonorsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Text(ctx, []byte("%PDF-1.4"))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
