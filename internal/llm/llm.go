package llm

import (
	"context"
	"errors"
)

// Completer abstracts text-completion providers. Prompts always demand a
// JSON reply; providers may still return fenced or malformed output, which
// callers clean and parse via this package's helpers.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Embedder abstracts embedding providers. Vector dimensionality is fixed
// per model and constant across calls within a request.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// ErrNotConfigured is returned by the placeholder implementations.
var ErrNotConfigured = errors.New("llm provider not configured")

// PlaceholderCompleter is a stub until provider wiring is added.
type PlaceholderCompleter struct{}

// Complete returns ErrNotConfigured.
func (PlaceholderCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	_ = ctx
	_ = prompt
	return "", ErrNotConfigured
}

// PlaceholderEmbedder is a stub until provider wiring is added.
type PlaceholderEmbedder struct{}

// Embed returns ErrNotConfigured.
func (PlaceholderEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	_ = ctx
	_ = text
	return nil, ErrNotConfigured
}
