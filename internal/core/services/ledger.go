package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/meridian-labs/themata/internal/core/domain"
	"github.com/meridian-labs/themata/internal/core/ports/driven"
	"github.com/meridian-labs/themata/internal/core/ports/driving"
	"github.com/meridian-labs/themata/internal/logger"
)

// Ensure ReviewLedger implements the interface.
var _ driving.ReviewLedger = (*ReviewLedger)(nil)

// ReviewLedger holds the in-memory review state for one submission.
// Mutations come from the driving adapter; regeneration responses land on
// their own goroutines, so entry access is guarded by a mutex and each
// entry's in-flight tag gates re-entry for that slot.
type ReviewLedger struct {
	coding driven.CodingService

	mu           sync.RWMutex
	submissionID string
	entries      []domain.FeedbackEntry
}

// NewReviewLedger creates an empty ledger backed by the coding service.
func NewReviewLedger(coding driven.CodingService) *ReviewLedger {
	return &ReviewLedger{coding: coding}
}

// Generate seeds the ledger from the generation service. Blank feedback
// texts are dropped before the call; an empty remainder is a validation
// failure and never sent.
func (l *ReviewLedger) Generate(ctx context.Context, feedback []string, contextNote string) (string, error) {
	texts := make([]string, 0, len(feedback))
	for _, f := range feedback {
		if strings.TrimSpace(f) != "" {
			texts = append(texts, f)
		}
	}
	if len(texts) == 0 {
		return "", fmt.Errorf("%w: no feedback texts provided", domain.ErrValidation)
	}

	submissionID, generated, err := l.coding.Generate(ctx, texts, contextNote)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrGenerationFailed, err)
	}
	if submissionID == "" || len(generated) == 0 {
		return "", fmt.Errorf("%w: empty generation response", domain.ErrGenerationFailed)
	}

	entries := make([]domain.FeedbackEntry, len(generated))
	for i, g := range generated {
		entries[i] = domain.FeedbackEntry{
			FeedbackID: g.FeedbackID,
			Text:       g.Text,
			Codewords:  g.Codewords,
		}
	}

	l.mu.Lock()
	l.submissionID = submissionID
	l.entries = entries
	l.mu.Unlock()

	logger.Info("Generated codewords for %d entries (submission %s)", len(entries), submissionID)
	return submissionID, nil
}

// Entries returns a snapshot of the current entries, in original order.
func (l *ReviewLedger) Entries() []domain.FeedbackEntry {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]domain.FeedbackEntry, len(l.entries))
	for i, e := range l.entries {
		out[i] = e
		out[i].Codewords = append([]string(nil), e.Codewords...)
	}
	return out
}

// SubmissionID returns the server-issued identifier for the seeded ledger.
func (l *ReviewLedger) SubmissionID() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.submissionID
}

// Approve marks the entry at index approved. Approval is a snapshot
// attestation: it stands until the entry's codewords change.
func (l *ReviewLedger) Approve(index int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if index < 0 || index >= len(l.entries) {
		return
	}
	l.entries[index].Approved = true
}

// ApproveAll marks every entry approved.
func (l *ReviewLedger) ApproveAll() {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range l.entries {
		l.entries[i].Approved = true
	}
}

// RemoveCodeword removes the word at wordIndex from the entry at
// entryIndex. The entry's approval is cleared even when wordIndex is out
// of range: the mutation attempt itself invalidates the attestation.
func (l *ReviewLedger) RemoveCodeword(entryIndex, wordIndex int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if entryIndex < 0 || entryIndex >= len(l.entries) {
		return
	}

	entry := &l.entries[entryIndex]
	if wordIndex >= 0 && wordIndex < len(entry.Codewords) {
		entry.Codewords = append(entry.Codewords[:wordIndex], entry.Codewords[wordIndex+1:]...)
	}
	entry.Approved = false
}

// Regenerate replaces an entry's codewords with a fresh generation for its
// original text. One outstanding regeneration per entry; concurrent calls
// on distinct entries run independently and may complete out of order.
func (l *ReviewLedger) Regenerate(ctx context.Context, index int) error {
	l.mu.Lock()
	if index < 0 || index >= len(l.entries) {
		l.mu.Unlock()
		return fmt.Errorf("%w: entry index %d out of range", domain.ErrValidation, index)
	}
	if l.entries[index].Regen == domain.SlotInFlight {
		l.mu.Unlock()
		return fmt.Errorf("%w: regeneration pending for entry %d", domain.ErrAlreadyInProgress, index)
	}
	l.entries[index].Regen = domain.SlotInFlight
	text := l.entries[index].Text
	l.mu.Unlock()

	words, err := l.coding.RegenerateOne(ctx, text)

	l.mu.Lock()
	defer l.mu.Unlock()
	if err != nil {
		l.entries[index].Regen = domain.SlotFailed
		return fmt.Errorf("%w: %w", domain.ErrRegenerationFailed, err)
	}

	l.entries[index].Codewords = words
	l.entries[index].Approved = false
	l.entries[index].Regen = domain.SlotSucceeded
	logger.Debug("Regenerated entry %d: %v", index, words)
	return nil
}

// IsComplete reports whether every entry is approved.
func (l *ReviewLedger) IsComplete() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, e := range l.entries {
		if !e.Approved {
			return false
		}
	}
	return true
}

// ApprovedPayload projects the approved entries, in original order. An
// approved entry with an empty codeword list is included: empty means
// "no codes apply", not "skip".
func (l *ReviewLedger) ApprovedPayload() []driven.ApprovedEntry {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var out []driven.ApprovedEntry
	for _, e := range l.entries {
		if !e.Approved {
			continue
		}
		out = append(out, driven.ApprovedEntry{
			FeedbackID: e.FeedbackID,
			Codewords:  append([]string(nil), e.Codewords...),
		})
	}
	return out
}
