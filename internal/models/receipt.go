package models

import (
	"fmt"

	"github.com/bolophil/SplitIt/internal/money"
)

// Participant is a person associated with a receipt: the host or an
// invited guest. Items and payments reference participants by ID.
type Participant struct {
	// ID is the opaque identifier for the participant (UUID format).
	ID string `json:"id"`

	// Name is the display name shown on the receipt.
	Name string `json:"name"`

	// PhoneNumber is set for guests invited by SMS; may be empty.
	PhoneNumber string `json:"phone_number,omitempty"`
}

// Assignment links a participant to an item they consumed.
// Weight expresses their portion relative to the item's other assignees;
// a zero weight tags the participant without charging them.
type Assignment struct {
	// ParticipantID references a participant on the same receipt.
	ParticipantID string `json:"participant_id"`

	// Weight is the relative share. Zero is allowed (tagged, owes nothing);
	// negative weights fail validation. DefaultWeight applies when unset.
	Weight int64 `json:"weight"`
}

// DefaultWeight is the assignment weight used for an equal split.
const DefaultWeight = 1

// ReceiptItem is a single line item on a receipt, shared by its assignees.
type ReceiptItem struct {
	// ID is the unique identifier for the item (UUID format).
	ID string `json:"id"`

	// Name is the item description (e.g., "Pad Thai").
	Name string `json:"name"`

	// Price is the item's price before tax and tip.
	Price money.Money `json:"price"`

	// Assignments lists who consumed this item and in what proportion.
	// An item with no assignments fails receipt validation.
	Assignments []Assignment `json:"assignments"`
}

// Location is where the receipt was issued.
type Location struct {
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	Country string `json:"country,omitempty"`
}

// Receipt is a validated, in-memory receipt: the unit the settlement
// engine operates on. Item order is preserved for display but is
// irrelevant to computation.
type Receipt struct {
	// ID is the unique identifier for the receipt (UUID format).
	ID string `json:"id"`

	// Vendor is the merchant name.
	Vendor string `json:"vendor"`

	// Location is where the receipt was issued; optional.
	Location Location `json:"location,omitempty"`

	// HostID is the participant who created the receipt.
	HostID string `json:"host_id"`

	// Participants is everyone on the receipt, host included.
	Participants []Participant `json:"participants"`

	// Items are the line items.
	Items []ReceiptItem `json:"items"`

	// Subtotal is the sum of item prices before tax and tip.
	Subtotal money.Money `json:"subtotal"`

	// Tax is the receipt-level tax, prorated across participants.
	Tax money.Money `json:"tax"`

	// Tip is the receipt-level tip, prorated across participants.
	Tip money.Money `json:"tip"`

	// Total is subtotal + tax + tip.
	Total money.Money `json:"total"`

	// CreatedAt is the Unix timestamp when the receipt was created.
	CreatedAt int64 `json:"created_at"`
}

// HasParticipant reports whether the given ID is on the receipt.
func (r *Receipt) HasParticipant(id string) bool {
	for _, p := range r.Participants {
		if p.ID == id {
			return true
		}
	}
	return false
}

// ParticipantIDs returns the IDs of all participants, in receipt order.
func (r *Receipt) ParticipantIDs() []string {
	ids := make([]string, len(r.Participants))
	for i, p := range r.Participants {
		ids[i] = p.ID
	}
	return ids
}

// Normalize applies assignment weight defaults. An item whose assignees all
// carry zero weight is an equal split: every weight becomes DefaultWeight.
// Mixed zero and positive weights are left alone; there the zeros are
// explicit "tagged but owes nothing" markers.
func (r *Receipt) Normalize() {
	for i := range r.Items {
		item := &r.Items[i]
		allZero := true
		for _, a := range item.Assignments {
			if a.Weight != 0 {
				allZero = false
				break
			}
		}
		if !allZero {
			continue
		}
		for j := range item.Assignments {
			item.Assignments[j].Weight = DefaultWeight
		}
	}
}

// totalTolerance is the rounding slack allowed between the stated total and
// subtotal + tax + tip, in minor units. Scanned receipts can be off by one
// cent from the printed total.
const totalTolerance = 1

// Validate checks the receipt invariants. It is called once when a receipt
// enters the system; after it passes, the calculator may assume every item
// has a positive weight sum of known participants and that the totals add up.
func (r *Receipt) Validate() error {
	amounts := make([]money.Money, 0, len(r.Items)+4)
	amounts = append(amounts, r.Subtotal, r.Tax, r.Tip, r.Total)
	for _, item := range r.Items {
		amounts = append(amounts, item.Price)
	}
	if err := money.SameCurrency(amounts...); err != nil {
		return err
	}

	itemSum := money.Zero(r.Subtotal.Cur())
	for _, item := range r.Items {
		if err := validateItem(r, item); err != nil {
			return err
		}
		itemSum = itemSum.Add(item.Price)
	}

	if itemSum.Cmp(r.Subtotal) != 0 {
		return fmt.Errorf("%w: items sum to %s but subtotal is %s",
			ErrInconsistentTotals, itemSum, r.Subtotal)
	}

	computed := r.Subtotal.Add(r.Tax).Add(r.Tip)
	diff := computed.Sub(r.Total).Amount
	if diff < -totalTolerance || diff > totalTolerance {
		return fmt.Errorf("%w: subtotal %s + tax %s + tip %s = %s, but total is %s",
			ErrInconsistentTotals, r.Subtotal, r.Tax, r.Tip, computed, r.Total)
	}

	if r.Subtotal.IsZero() && (!r.Tax.IsZero() || !r.Tip.IsZero()) {
		return fmt.Errorf("%w: cannot prorate tax %s / tip %s over a zero subtotal",
			ErrEmptyReceipt, r.Tax, r.Tip)
	}

	return nil
}

func validateItem(r *Receipt, item ReceiptItem) error {
	if len(item.Assignments) == 0 {
		return fmt.Errorf("%w: item %q has no assignees", ErrInvalidSplit, item.Name)
	}

	var weightSum int64
	for _, a := range item.Assignments {
		if !r.HasParticipant(a.ParticipantID) {
			return fmt.Errorf("%w: item %q assigned to %q",
				ErrUnknownParticipant, item.Name, a.ParticipantID)
		}
		if a.Weight < 0 {
			return fmt.Errorf("%w: item %q has negative weight for %q",
				ErrInvalidSplit, item.Name, a.ParticipantID)
		}
		weightSum += a.Weight
	}
	if weightSum <= 0 {
		return fmt.Errorf("%w: item %q has zero total weight", ErrInvalidSplit, item.Name)
	}
	return nil
}
