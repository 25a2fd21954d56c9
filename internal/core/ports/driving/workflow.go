package driving

import (
	"context"

	"github.com/meridian-labs/themata/internal/core/domain"
)

// Workflow owns the submission identifier and the lifecycle stage, and
// gates every transition on the prior stage's completion contract.
type Workflow interface {
	// Stage returns the current lifecycle stage.
	Stage() domain.Stage

	// SubmissionID returns the server-issued identifier, or "" before
	// generation has succeeded.
	SubmissionID() string

	// Ledger returns the review ledger for the current run.
	Ledger() ReviewLedger

	// Editor returns the theme/seed editor for the current run.
	Editor() ThemeEditor

	// StartGeneration runs the generation call. Valid only from Empty;
	// rolls back to Empty on failure with no submission id retained.
	StartGeneration(ctx context.Context, feedback []string, contextNote string) error

	// AdvanceToThemes moves from Reviewing to ThemeDefining. Requires the
	// ledger to be complete and commits the approved payload; a failed
	// commit leaves the workflow in Reviewing.
	AdvanceToThemes(ctx context.Context) error

	// RunClustering runs clustering with the editor's payload. Valid from
	// ThemeDefining; rolls back to ThemeDefining on failure.
	RunClustering(ctx context.Context) error

	// RunManualClustering clusters a manually entered code list, bypassing
	// generation and review entirely. Codes are deduplicated and
	// lower-cased; the returned list names the dropped duplicates.
	RunManualClustering(ctx context.Context, rawCodes []string) ([]string, error)

	// LoadResults rehydrates a results view for a submission id without
	// traversing the earlier stages. Idempotent.
	LoadResults(ctx context.Context, submissionID string) (*domain.ClusterOutcome, error)

	// FetchApprovedCodewords returns the committed codeword summary for
	// the current submission.
	FetchApprovedCodewords(ctx context.Context) ([]string, error)

	// Outcome returns the clustering outcome once ResultsReady.
	Outcome() *domain.ClusterOutcome
}
