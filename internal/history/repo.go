package history

import "context"

type Repo interface {
	Insert(ctx context.Context, run Run) error
	List(ctx context.Context, limit, offset int) ([]Run, error)
}
