package driven

import (
	"context"

	"github.com/meridian-labs/themata/internal/core/domain"
)

// ApprovedEntry is one reviewed feedback row projected for the commit
// call: the approval flag and regeneration bookkeeping are dropped.
type ApprovedEntry struct {
	FeedbackID string   `json:"feedback_id"`
	Codewords  []string `json:"codewords"`
}

// AnalysisService covers the analysis server's workflow endpoints past
// generation: committing approved codewords, clustering and result reads.
type AnalysisService interface {
	// ApproveCodewords commits the approved entries for a submission.
	// Only approved entries are sent; unapproved ones are discarded,
	// not deferred.
	ApproveCodewords(ctx context.Context, submissionID string, approved []ApprovedEntry) error

	// Cluster runs clustering for a submission using the indexed
	// theme/seed payload and returns the normalized outcome.
	Cluster(ctx context.Context, submissionID string, payload domain.ThemePayload) (*domain.ClusterOutcome, error)

	// ClusterManual runs clustering over a manually entered code list,
	// bypassing the review ledger. The server issues a submission id.
	ClusterManual(ctx context.Context, codes []string, payload domain.ThemePayload) (*domain.ClusterOutcome, error)

	// FetchResults re-reads the clustering outcome for a submission.
	// Idempotent and repeatable; the outcome is rebuilt in full.
	FetchResults(ctx context.Context, submissionID string) (*domain.ClusterOutcome, error)

	// FetchCodewords returns the flat approved codeword list for a
	// submission, as shown on the review-complete summary.
	FetchCodewords(ctx context.Context, submissionID string) ([]string, error)
}
