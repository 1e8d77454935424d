package models

import "github.com/bolophil/SplitIt/internal/money"

// SettlementStatus classifies how settled a receipt or participant is.
type SettlementStatus string

const (
	// StatusUnpaid means nothing has been received.
	StatusUnpaid SettlementStatus = "unpaid"

	// StatusPartiallyPaid means something, but not everything, has been received.
	StatusPartiallyPaid SettlementStatus = "partially_paid"

	// StatusFullySettled means the amount received matches the amount owed.
	StatusFullySettled SettlementStatus = "fully_settled"

	// StatusOverpaid means more was received than owed: a refund/credit
	// condition, representable but never rejected.
	StatusOverpaid SettlementStatus = "overpaid"
)

// ParticipantBalance is one participant's computed share of a receipt.
type ParticipantBalance struct {
	// ParticipantID is who this balance belongs to.
	ParticipantID string `json:"participant_id"`

	// Subtotal is this participant's share of item prices.
	Subtotal money.Money `json:"subtotal"`

	// Tax is this participant's prorated share of the receipt tax.
	Tax money.Money `json:"tax"`

	// Tip is this participant's prorated share of the receipt tip.
	Tip money.Money `json:"tip"`

	// Owed is subtotal + tax + tip.
	Owed money.Money `json:"owed"`

	// Paid is the sign-aware sum of this participant's ledger records.
	Paid money.Money `json:"paid"`

	// Status classifies Paid against Owed.
	Status SettlementStatus `json:"status"`
}

// SettlementResult is the derived settlement state for a receipt. It is the
// output of a pure function over (Receipt, payment records): recomputed on
// demand, never stored, never mutated in place.
type SettlementResult struct {
	// ReceiptID is the receipt this settlement describes.
	ReceiptID string `json:"receipt_id"`

	// Balances maps participant ID to that participant's balance.
	// Every receipt participant appears, including those who owe nothing.
	Balances map[string]*ParticipantBalance `json:"balances"`

	// Received is the sum of all ledger amounts, equal to the sum of
	// per-participant Paid figures by construction.
	Received money.Money `json:"received"`

	// Total is the receipt total the settlement was computed against.
	Total money.Money `json:"total"`

	// Status classifies Received against Total.
	Status SettlementStatus `json:"status"`
}
