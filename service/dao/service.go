package dao

import (
	"context"

	"github.com/viant/stepflow/model"
)

// Service is the persistence contract for process instances.
type Service[K comparable, T any] interface {
	Save(ctx context.Context, t *T) error

	Load(ctx context.Context, id K) (*T, error)

	Delete(ctx context.Context, id K) error

	List(ctx context.Context, parameters ...*Parameter) ([]*T, error)
}

// FormService is the persistence contract for form submissions. The log is
// append-only; Save assigns a monotonically increasing ID and implementations
// never mutate or delete existing rows.
type FormService interface {
	// Save appends a submission and assigns its ID and CreatedAt.
	Save(ctx context.Context, submission *model.Submission) error

	// ListByProcessAndStep returns all submissions recorded for the (process,
	// step) pair, newest first.
	ListByProcessAndStep(ctx context.Context, processID, step string) ([]*model.Submission, error)

	// LatestByProcess returns, for each step with at least one submission, the
	// submission with the greatest ID.
	LatestByProcess(ctx context.Context, processID string) (map[string]*model.Submission, error)
}
