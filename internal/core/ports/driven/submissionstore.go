package driven

import (
	"context"

	"github.com/meridian-labs/themata/internal/core/domain"
)

// SubmissionStore persists the local trace of workflow runs.
type SubmissionStore interface {
	// Save stores or updates a submission record.
	Save(ctx context.Context, rec domain.SubmissionRecord) error

	// Get retrieves a record by submission id.
	Get(ctx context.Context, id string) (*domain.SubmissionRecord, error)

	// List returns all records, most recently updated first.
	List(ctx context.Context) ([]domain.SubmissionRecord, error)

	// Delete removes a record.
	Delete(ctx context.Context, id string) error
}
