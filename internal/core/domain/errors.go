package domain

import "errors"

// Domain errors represent workflow failures.
// These are distinct from infrastructure errors.
var (
	// ErrValidation indicates missing or invalid input, caught before
	// any network call is made.
	ErrValidation = errors.New("invalid input")

	// ErrNoFeedbackColumn indicates no feedback column was designated
	// for a columnar input file.
	ErrNoFeedbackColumn = errors.New("no feedback column designated")

	// ErrGenerationFailed indicates the codeword generation call failed
	// or returned a malformed result.
	ErrGenerationFailed = errors.New("codeword generation failed")

	// ErrRegenerationFailed indicates a single-entry regeneration call failed.
	// The entry keeps its prior codewords.
	ErrRegenerationFailed = errors.New("codeword regeneration failed")

	// ErrClusteringFailed indicates the clustering call failed.
	ErrClusteringFailed = errors.New("clustering failed")

	// ErrAlreadyInProgress indicates a re-entrant call on a slot that
	// already has an outstanding request. The call is rejected, not queued.
	ErrAlreadyInProgress = errors.New("request already in progress")

	// ErrMalformedResult indicates a required field was absent from a
	// clustering result.
	ErrMalformedResult = errors.New("malformed clustering result")

	// ErrTimedOut indicates a network call exceeded the configured timeout.
	// The slot's in-flight flag is reset so the call can be retried.
	ErrTimedOut = errors.New("request timed out")

	// ErrInvalidTransition indicates an operation was attempted from a
	// lifecycle stage that does not permit it.
	ErrInvalidTransition = errors.New("invalid stage transition")

	// ErrReviewIncomplete indicates the review gate was not passed:
	// at least one entry is still unapproved.
	ErrReviewIncomplete = errors.New("review incomplete")

	// ErrRowLimit indicates the theme editor already holds the maximum
	// number of rows.
	ErrRowLimit = errors.New("theme row limit reached")

	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")
)
