package settlement

import "errors"

var (
	// ErrInvalidSplit is returned for negative weights, non-positive expense
	// totals and splits with no participants.
	ErrInvalidSplit = errors.New("invalid split")

	// ErrSplitMismatch is returned when shares do not add up to the expense total.
	ErrSplitMismatch = errors.New("split does not sum to total")

	// ErrUnknownParticipant is returned when an expense or payment names
	// someone outside the participant list.
	ErrUnknownParticipant = errors.New("unknown participant")
)
