package history

import (
	"context"
	"sync"
	"time"
)

// MemoryRepo keeps runs in process memory. Used when no database is
// configured; history then resets on restart.
type MemoryRepo struct {
	mu   sync.RWMutex
	runs []Run
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{}
}

func (r *MemoryRepo) Insert(ctx context.Context, run Run) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.runs = append(r.runs, run)
	return nil
}

func (r *MemoryRepo) List(ctx context.Context, limit, offset int) ([]Run, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	// Newest first.
	out := make([]Run, 0, limit)
	for i := len(r.runs) - 1 - offset; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.runs[i])
	}
	return out, nil
}
