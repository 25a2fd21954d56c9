// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewReview is the codeword review view.
	ViewReview ViewType = iota
	// ViewThemes is the theme and seed-word editor view.
	ViewThemes
	// ViewResults is the clustering results view.
	ViewResults
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewReview:
		return "review"
	case ViewThemes:
		return "themes"
	case ViewResults:
		return "results"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// GenerationCompleted signals the initial codeword generation finished.
type GenerationCompleted struct {
	Err error
}

// RegenerationCompleted signals a per-entry regeneration resolved.
type RegenerationCompleted struct {
	Index int
	Err   error
}

// ApprovalCommitted signals the approved codewords were sent to the server.
type ApprovalCommitted struct {
	Err error
}

// SeedsSuggested signals a seed suggestion call resolved for a theme row.
type SeedsSuggested struct {
	Index   int
	Applied bool
}

// ClusteringCompleted signals the clustering call resolved.
type ClusteringCompleted struct {
	Err error
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
