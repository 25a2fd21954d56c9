// Package driven provides interfaces for infrastructure adapters (secondary/outbound ports).
package driven

import "context"

// GeneratedEntry is one feedback row as returned by the generation service.
type GeneratedEntry struct {
	// FeedbackID is the server-issued stable identifier for the row.
	FeedbackID string

	// Text is the raw feedback text the codewords were generated from.
	Text string

	// Codewords is the generated codeword list.
	Codewords []string
}

// CodingService is the opaque server-side codeword engine. The coding and
// suggestion models live behind the analysis server; the client only sees
// these three calls.
type CodingService interface {
	// Generate produces codewords for a batch of feedback texts and opens
	// a new submission. The optional contextNote biases the coding model.
	// Returns the server-issued submission id and one entry per text.
	Generate(ctx context.Context, feedback []string, contextNote string) (string, []GeneratedEntry, error)

	// RegenerateOne produces a fresh codeword list for a single feedback
	// text. The result replaces, never merges with, the prior list.
	RegenerateOne(ctx context.Context, text string) ([]string, error)

	// SuggestSeeds proposes seed words for a theme label.
	SuggestSeeds(ctx context.Context, theme string) ([]string, error)
}
