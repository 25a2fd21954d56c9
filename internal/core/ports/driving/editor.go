package driving

import (
	"context"

	"github.com/meridian-labs/themata/internal/core/domain"
)

// ThemeEditor is the ordered, bounded list of theme/seed rows. It starts
// with one empty row and never exceeds domain.MaxThemeRows.
type ThemeEditor interface {
	// Rows returns a snapshot of the current rows, in order.
	Rows() []domain.ThemeRow

	// AddRow appends one empty row. Returns false at the row cap.
	AddRow() bool

	// RemoveRow deletes the row at index, preserving the order of the
	// remainder. Valid down to zero rows. Out-of-range is ignored.
	RemoveRow(index int)

	// UpdateTheme replaces a row's theme label. Raw replace, no trimming.
	UpdateTheme(index int, text string)

	// UpdateSeeds replaces a row's seed-word string. Raw replace.
	UpdateSeeds(index int, text string)

	// SuggestSeeds fetches seed suggestions for the row's theme and
	// overwrites the row's seed text with the comma-joined result.
	// No-op when the theme is blank or a suggestion for that row is
	// already pending. Failures are logged, never surfaced; suggestion
	// is advisory. Returns whether a suggestion was applied.
	SuggestSeeds(ctx context.Context, index int) bool

	// IndexedPayload serializes every row, including empty ones, to the
	// index-keyed theme/seed maps.
	IndexedPayload() domain.ThemePayload

	// HasSeed reports whether the token appears among any row's seed
	// words, comparing case-insensitively. Used for presentational
	// highlighting only.
	HasSeed(word string) bool
}
