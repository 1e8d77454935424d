package models

import "github.com/bolophil/SplitIt/internal/money"

// PaymentRecord is one payment event against a receipt. Records are
// append-only: they are never mutated or deleted, and a correction is a new
// record with a negative (offsetting) amount.
type PaymentRecord struct {
	// ID is the unique identifier for the record (UUID format).
	ID string `json:"id"`

	// ReceiptID is the receipt this payment applies to.
	ReceiptID string `json:"receipt_id"`

	// ParticipantID is who paid.
	ParticipantID string `json:"participant_id"`

	// Amount is the payment amount. Negative for corrections/refunds;
	// zero is rejected at append time.
	Amount money.Money `json:"amount"`

	// Note is an optional description (e.g., "Venmo", "cash").
	Note string `json:"note,omitempty"`

	// CreatedAt is the Unix timestamp when the payment was recorded.
	CreatedAt int64 `json:"created_at"`
}
