package history

import (
	"context"
	"time"

	"github.com/google/uuid"

	"careerpilot-backend/internal/shared/telemetry"
)

// Service records and lists analysis runs. Recording is fire-and-forget
// observability: a storage failure is logged and swallowed so it can never
// fail the analysis that produced the run.
type Service struct {
	Repo Repo
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

// Record persists a run summary. The run gets an ID and timestamp here so
// callers only fill in the scores.
func (s *Service) Record(ctx context.Context, run Run) {
	if s == nil || s.Repo == nil {
		return
	}
	run.ID = uuid.NewString()
	run.CreatedAt = time.Now().UTC()
	if err := s.Repo.Insert(ctx, run); err != nil {
		telemetry.Warn("history.record.failed", map[string]any{
			"mode":  run.Mode,
			"error": err.Error(),
		})
	}
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]Run, error) {
	runs, err := s.Repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	if runs == nil {
		runs = []Run{}
	}
	return runs, nil
}
