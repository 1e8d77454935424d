package models

import "errors"

// Validation errors raised by Receipt.Validate. They are raised once, at
// construction time; downstream calculators assume a valid receipt.
var (
	// ErrInvalidSplit means an item has no assignees, a negative weight, or
	// all weights are zero.
	ErrInvalidSplit = errors.New("item has no valid assignment")

	// ErrEmptyReceipt means the subtotal is zero while tax or tip is not,
	// so the charges cannot be prorated.
	ErrEmptyReceipt = errors.New("receipt has no consumable subtotal")

	// ErrInconsistentTotals means subtotal, tax, tip, and total disagree
	// beyond the one-minor-unit rounding tolerance.
	ErrInconsistentTotals = errors.New("receipt totals are inconsistent")

	// ErrUnknownParticipant means an item assignment references someone who
	// is not on the receipt.
	ErrUnknownParticipant = errors.New("assignment references unknown participant")
)
