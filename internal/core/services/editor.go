package services

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/meridian-labs/themata/internal/core/domain"
	"github.com/meridian-labs/themata/internal/core/ports/driven"
	"github.com/meridian-labs/themata/internal/core/ports/driving"
	"github.com/meridian-labs/themata/internal/logger"
)

// Ensure ThemeEditor implements the interface.
var _ driving.ThemeEditor = (*ThemeEditor)(nil)

// ThemeEditor holds the ordered, bounded theme/seed row list. Rows carry
// stable synthetic ids; the positional index exists only in the serialized
// payload. Suggestion responses land on their own goroutines, so row
// access is guarded by a mutex and each row's slot tag gates re-entry.
type ThemeEditor struct {
	coding driven.CodingService

	mu   sync.RWMutex
	rows []domain.ThemeRow
}

// NewThemeEditor creates an editor holding one empty row.
func NewThemeEditor(coding driven.CodingService) *ThemeEditor {
	return &ThemeEditor{
		coding: coding,
		rows:   []domain.ThemeRow{{ID: uuid.NewString()}},
	}
}

// Rows returns a snapshot of the current rows, in order.
func (e *ThemeEditor) Rows() []domain.ThemeRow {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return append([]domain.ThemeRow(nil), e.rows...)
}

// AddRow appends one empty row. The row cap is hard: at the limit this is
// a no-op, not a warning.
func (e *ThemeEditor) AddRow() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.rows) >= domain.MaxThemeRows {
		return false
	}
	e.rows = append(e.rows, domain.ThemeRow{ID: uuid.NewString()})
	return true
}

// RemoveRow deletes the row at index. There is no enforced minimum on
// removal; the editor may be emptied even though it starts with one row.
func (e *ThemeEditor) RemoveRow(index int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if index < 0 || index >= len(e.rows) {
		return
	}
	e.rows = append(e.rows[:index], e.rows[index+1:]...)
}

// UpdateTheme replaces the theme label at index. Raw replace, no trimming.
func (e *ThemeEditor) UpdateTheme(index int, text string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if index < 0 || index >= len(e.rows) {
		return
	}
	e.rows[index].Theme = text
}

// UpdateSeeds replaces the seed-word string at index. Raw replace.
func (e *ThemeEditor) UpdateSeeds(index int, text string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if index < 0 || index >= len(e.rows) {
		return
	}
	e.rows[index].Seeds = text
}

// SuggestSeeds fetches suggestions for the row's theme and overwrites the
// row's seed text with the comma-joined list. Suggestion is advisory:
// failures are logged and the existing seed text is left untouched.
func (e *ThemeEditor) SuggestSeeds(ctx context.Context, index int) bool {
	e.mu.Lock()
	if index < 0 || index >= len(e.rows) {
		e.mu.Unlock()
		return false
	}
	row := e.rows[index]
	if strings.TrimSpace(row.Theme) == "" || row.Suggest == domain.SlotInFlight {
		e.mu.Unlock()
		return false
	}
	e.rows[index].Suggest = domain.SlotInFlight
	rowID := row.ID
	theme := row.Theme
	e.mu.Unlock()

	seeds, err := e.coding.SuggestSeeds(ctx, theme)

	e.mu.Lock()
	defer e.mu.Unlock()
	// The row may have moved or been removed while the call was out.
	idx := e.indexOf(rowID)
	if idx < 0 {
		return false
	}
	if err != nil {
		e.rows[idx].Suggest = domain.SlotFailed
		logger.Warn("Seed suggestion for %q failed: %v", theme, err)
		return false
	}

	e.rows[idx].Seeds = strings.Join(seeds, ", ")
	e.rows[idx].Suggest = domain.SlotSucceeded
	return true
}

// IndexedPayload serializes every row, including empty ones, to the
// index-keyed maps. The clustering side ignores blank entries.
func (e *ThemeEditor) IndexedPayload() domain.ThemePayload {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return domain.NewThemePayload(e.rows)
}

// HasSeed reports whether the token is present among any row's seed words.
// Tokens are compared after comma tokenization, trimming and lower-casing.
func (e *ThemeEditor) HasSeed(word string) bool {
	needle := strings.ToLower(strings.TrimSpace(word))
	if needle == "" {
		return false
	}

	e.mu.RLock()
	defer e.mu.RUnlock()
	for _, row := range e.rows {
		for _, seed := range domain.SplitSeeds(row.Seeds) {
			if seed == needle {
				return true
			}
		}
	}
	return false
}

// indexOf finds a row by id (caller must hold the lock).
func (e *ThemeEditor) indexOf(id string) int {
	for i := range e.rows {
		if e.rows[i].ID == id {
			return i
		}
	}
	return -1
}
