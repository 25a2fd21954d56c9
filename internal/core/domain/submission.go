package domain

import "time"

// Stage identifies where a submission sits in the workflow pipeline.
// Stages advance linearly; Generating and Clustering are transient
// network-bound stages that roll back to the prior stable stage on failure.
type Stage int

const (
	// StageEmpty is the initial stage before any generation call.
	StageEmpty Stage = iota

	// StageGenerating means a codeword generation call is in flight.
	StageGenerating

	// StageReviewing means generated codewords are under human review.
	StageReviewing

	// StageThemeDefining means approved codewords are committed and the
	// user is authoring themes and seed words.
	StageThemeDefining

	// StageClustering means a clustering call is in flight.
	StageClustering

	// StageResultsReady means clustering results are available.
	StageResultsReady
)

// String returns the string representation of the stage.
func (s Stage) String() string {
	switch s {
	case StageEmpty:
		return "empty"
	case StageGenerating:
		return "generating"
	case StageReviewing:
		return "reviewing"
	case StageThemeDefining:
		return "theme_defining"
	case StageClustering:
		return "clustering"
	case StageResultsReady:
		return "results_ready"
	default:
		return "unknown"
	}
}

// ParseStage converts a stored stage string back to a Stage.
// Unknown strings parse as StageEmpty.
func ParseStage(s string) Stage {
	switch s {
	case "generating":
		return StageGenerating
	case "reviewing":
		return StageReviewing
	case "theme_defining":
		return StageThemeDefining
	case "clustering":
		return StageClustering
	case "results_ready":
		return StageResultsReady
	default:
		return StageEmpty
	}
}

// Transient reports whether the stage is a network-bound stage that must
// resolve to a stable stage.
func (s Stage) Transient() bool {
	return s == StageGenerating || s == StageClustering
}

// SubmissionRecord is the locally persisted trace of one workflow run.
// It powers the history listing and lets a bookmarked submission id be
// reopened through the results rehydration path.
type SubmissionRecord struct {
	// ID is the server-issued public submission identifier.
	ID string

	// Stage is the furthest stage this submission reached.
	Stage Stage

	// Source describes how the run was started ("generated" or "manual").
	Source string

	// EntryCount is the number of feedback entries at generation time.
	EntryCount int

	// ThemeCount is the number of non-blank themes sent to clustering.
	ThemeCount int

	// ResultJSON caches the raw clustering result body, when available.
	ResultJSON string

	// CreatedAt is when the run was first recorded.
	CreatedAt time.Time

	// UpdatedAt is when the record last changed.
	UpdatedAt time.Time
}
