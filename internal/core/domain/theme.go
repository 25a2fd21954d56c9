package domain

import (
	"fmt"
	"strings"
)

// MaxThemeRows is the hard cap on theme/seed rows in the editor.
const MaxThemeRows = 5

// ThemeRow is one user-authored theme and its comma-separated seed words.
// Rows carry a stable synthetic ID; positional indices exist only in the
// serialized payload, never as row identity.
type ThemeRow struct {
	// ID is a client-generated identifier, stable across reorders.
	ID string

	// Theme is the free-text theme label. May be empty.
	Theme string

	// Seeds is the raw comma-separated seed-word string, untokenized.
	Seeds string

	// Suggest tracks the row's single seed-suggestion slot.
	Suggest SlotState
}

// ThemePayload is the index-keyed serialization of the editor rows,
// as the clustering service expects it. The index is the correlation
// key between the two maps. Empty rows are included as empty strings;
// the receiving side ignores blank entries.
type ThemePayload struct {
	Themes map[string]string `json:"themes"`
	Seeds  map[string]string `json:"seeds"`
}

// NewThemePayload serializes rows into index-keyed maps.
func NewThemePayload(rows []ThemeRow) ThemePayload {
	p := ThemePayload{
		Themes: make(map[string]string, len(rows)),
		Seeds:  make(map[string]string, len(rows)),
	}
	for i, row := range rows {
		p.Themes[fmt.Sprintf("theme[%d]", i)] = row.Theme
		p.Seeds[fmt.Sprintf("seeds[%d]", i)] = row.Seeds
	}
	return p
}

// ThemeCount returns the number of non-blank theme labels in the payload.
func (p ThemePayload) ThemeCount() int {
	n := 0
	for _, v := range p.Themes {
		if strings.TrimSpace(v) != "" {
			n++
		}
	}
	return n
}

// SplitSeeds tokenizes a comma-separated seed string: split on comma,
// trim whitespace, lower-case, drop empties.
func SplitSeeds(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		word := strings.ToLower(strings.TrimSpace(part))
		if word != "" {
			out = append(out, word)
		}
	}
	return out
}

// NormalizeCodes prepares a manually entered code list for clustering:
// trim, lower-case, drop empties and deduplicate while preserving first
// occurrence order. The second return lists the dropped duplicates.
func NormalizeCodes(raw []string) (codes, duplicates []string) {
	seen := make(map[string]bool, len(raw))
	for _, r := range raw {
		code := strings.ToLower(strings.TrimSpace(r))
		if code == "" {
			continue
		}
		if seen[code] {
			duplicates = append(duplicates, code)
			continue
		}
		seen[code] = true
		codes = append(codes, code)
	}
	return codes, duplicates
}
