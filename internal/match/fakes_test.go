package match

import (
	"context"
	"errors"
	"sync/atomic"
)

// fakeCompleter returns a fixed reply, or an error when fail is set.
type fakeCompleter struct {
	reply string
	fail  bool
	calls atomic.Int32
}

func (f *fakeCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	f.calls.Add(1)
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if f.fail {
		return "", errors.New("completion unavailable")
	}
	return f.reply, nil
}

// fakeEmbedder maps every input to the same fixed vector.
type fakeEmbedder struct {
	vec   []float32
	fail  bool
	calls atomic.Int32
}

func (f *fakeEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	f.calls.Add(1)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if f.fail {
		return nil, errors.New("embedding unavailable")
	}
	return f.vec, nil
}
