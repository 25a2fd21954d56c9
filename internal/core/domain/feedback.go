package domain

// SlotState tags the single outstanding network call a slot may hold.
// A slot is one ledger entry (regeneration) or one theme row (seed
// suggestion). A second request while one is in flight is rejected,
// not queued.
type SlotState int

const (
	// SlotIdle means no call has been made for this slot.
	SlotIdle SlotState = iota

	// SlotInFlight means a call is outstanding; re-entry is rejected.
	SlotInFlight

	// SlotSucceeded means the last call for this slot completed.
	SlotSucceeded

	// SlotFailed means the last call for this slot failed; the slot's
	// prior data is untouched and the call may be retried.
	SlotFailed
)

// String returns the string representation of the slot state.
func (s SlotState) String() string {
	switch s {
	case SlotIdle:
		return "idle"
	case SlotInFlight:
		return "in_flight"
	case SlotSucceeded:
		return "succeeded"
	case SlotFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// FeedbackEntry is one raw feedback row and its codewords under review.
type FeedbackEntry struct {
	// FeedbackID is the server-issued stable identifier for this row.
	FeedbackID string

	// Text is the raw feedback text.
	Text string

	// Codewords is the current codeword set. Duplicates within an entry
	// are not deduplicated automatically. An empty list is valid and
	// means "no codes apply".
	Codewords []string

	// Approved attests to the current codeword snapshot. Any mutation of
	// Codewords clears it.
	Approved bool

	// Regen tracks the entry's single regeneration slot.
	Regen SlotState
}
