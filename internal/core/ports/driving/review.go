package driving

import (
	"context"

	"github.com/meridian-labs/themata/internal/core/domain"
	"github.com/meridian-labs/themata/internal/core/ports/driven"
)

// ReviewLedger holds per-feedback-item codeword sets and their approval
// state. It is the atomic unit of the review gate: the workflow may only
// advance past review when every entry is approved.
type ReviewLedger interface {
	// Generate seeds the ledger from the generation service: one entry
	// per non-blank feedback text, all unapproved. Returns the
	// server-issued submission id.
	Generate(ctx context.Context, feedback []string, contextNote string) (string, error)

	// Entries returns a snapshot of the current entries, in original order.
	Entries() []domain.FeedbackEntry

	// Approve marks the entry at index approved. Idempotent; out-of-range
	// indices are ignored.
	Approve(index int)

	// ApproveAll marks every entry approved.
	ApproveAll()

	// RemoveCodeword removes one word from an entry and clears the
	// entry's approval, even when the removal itself is a no-op.
	// Out-of-range indices are ignored.
	RemoveCodeword(entryIndex, wordIndex int)

	// Regenerate replaces an entry's codewords via the regeneration
	// service. At most one regeneration per entry may be outstanding; a
	// second call returns ErrAlreadyInProgress. On failure the prior
	// codewords are kept.
	Regenerate(ctx context.Context, index int) error

	// IsComplete reports whether every entry is approved. This is the
	// sole gate for advancing past review.
	IsComplete() bool

	// ApprovedPayload projects the approved entries, in original order,
	// for the commit call. Unapproved entries are dropped.
	ApprovedPayload() []driven.ApprovedEntry
}
