package llm

import (
	"context"
	"errors"
	"net"
	"strings"
	"time"

	"careerpilot-backend/internal/shared/telemetry"
)

const retryBaseDelay = 300 * time.Millisecond

// WithRetry wraps a Completer with a single bounded retry on transient
// failures. Non-transient errors pass through unchanged.
func WithRetry(base Completer) Completer {
	if base == nil {
		return nil
	}
	return retryingCompleter{base: base}
}

// WithRetryEmbedder wraps an Embedder the same way.
func WithRetryEmbedder(base Embedder) Embedder {
	if base == nil {
		return nil
	}
	return retryingEmbedder{base: base}
}

type retryingCompleter struct {
	base Completer
}

func (r retryingCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	out, err := r.base.Complete(ctx, prompt)
	if err == nil || !shouldRetry(err) {
		return out, err
	}

	telemetry.Warn("llm.retry", map[string]any{"kind": "completion", "error": err.Error()})
	select {
	case <-time.After(retryBaseDelay):
	case <-ctx.Done():
		return "", ctx.Err()
	}
	return r.base.Complete(ctx, prompt)
}

type retryingEmbedder struct {
	base Embedder
}

func (r retryingEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	vec, err := r.base.Embed(ctx, text)
	if err == nil || !shouldRetry(err) {
		return vec, err
	}

	telemetry.Warn("llm.retry", map[string]any{"kind": "embedding", "error": err.Error()})
	select {
	case <-time.After(retryBaseDelay):
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return r.base.Embed(ctx, text)
}

func shouldRetry(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "http status 5") || strings.Contains(msg, "server_error") ||
		strings.Contains(msg, "unavailable") || strings.Contains(msg, "resource exhausted") {
		return true
	}
	if strings.Contains(msg, "connection reset") ||
		strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "connection closed") ||
		strings.Contains(msg, "broken pipe") ||
		strings.Contains(msg, "tls handshake timeout") ||
		strings.Contains(msg, "eof") {
		return true
	}

	return false
}
