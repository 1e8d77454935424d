package calculator

import (
	"fmt"

	"github.com/bolophil/SplitIt/internal/models"
	"github.com/bolophil/SplitIt/internal/money"
)

// receivedTolerance is the rounding slack, in minor units, within which a
// receipt counts as fully settled. Per-participant owed amounts are exact by
// construction, so participant statuses use no slack.
const receivedTolerance = 1

// ComputeSettlement is the engine's top-level pure function: given a receipt
// and the ordered payment records against it, it returns every participant's
// owed/paid balance and the settlement status of the receipt.
//
// owed(p) = participantSubtotal(p) + taxShare(p) + tipShare(p), where the
// subtotal shares come from SplitItem and the tax/tip shares from Prorate.
// paid(p) is the sign-aware sum of p's payment records. The per-participant
// owed figures sum exactly to the receipt total, and the paid figures sum
// exactly to the ledger total, regardless of how records are interleaved.
func ComputeSettlement(r *models.Receipt, payments []models.PaymentRecord) (*models.SettlementResult, error) {
	cur := r.Total.Cur()

	subtotals := make(map[string]money.Money, len(r.Participants))
	for _, p := range r.Participants {
		subtotals[p.ID] = money.Zero(cur)
	}

	for _, item := range r.Items {
		split, err := SplitItem(item)
		if err != nil {
			return nil, err
		}
		for pid, share := range split {
			prev, ok := subtotals[pid]
			if !ok {
				return nil, fmt.Errorf("%w: item %q assigned to %q",
					models.ErrUnknownParticipant, item.Name, pid)
			}
			subtotals[pid] = prev.Add(share)
		}
	}

	taxShares, err := Prorate(subtotals, r.Subtotal, r.Tax)
	if err != nil {
		return nil, err
	}
	tipShares, err := Prorate(subtotals, r.Subtotal, r.Tip)
	if err != nil {
		return nil, err
	}

	paid, err := computePaid(r, payments, cur)
	if err != nil {
		return nil, err
	}

	result := &models.SettlementResult{
		ReceiptID: r.ID,
		Balances:  make(map[string]*models.ParticipantBalance, len(r.Participants)),
		Received:  money.Zero(cur),
		Total:     r.Total,
	}

	for _, p := range r.Participants {
		owed := subtotals[p.ID].Add(taxShares[p.ID]).Add(tipShares[p.ID])
		result.Balances[p.ID] = &models.ParticipantBalance{
			ParticipantID: p.ID,
			Subtotal:      subtotals[p.ID],
			Tax:           taxShares[p.ID],
			Tip:           tipShares[p.ID],
			Owed:          owed,
			Paid:          paid[p.ID],
			Status:        classify(paid[p.ID], owed, 0),
		}
		result.Received = result.Received.Add(paid[p.ID])
	}

	result.Status = classify(result.Received, result.Total, receivedTolerance)
	return result, nil
}

// computePaid folds the payment records into a per-participant sum. A record
// for someone not on the receipt is an input error, not a silent skip.
func computePaid(r *models.Receipt, payments []models.PaymentRecord, cur string) (map[string]money.Money, error) {
	paid := make(map[string]money.Money, len(r.Participants))
	for _, p := range r.Participants {
		paid[p.ID] = money.Zero(cur)
	}
	for _, rec := range payments {
		prev, ok := paid[rec.ParticipantID]
		if !ok {
			return nil, fmt.Errorf("%w: payment %s from %q",
				models.ErrUnknownParticipant, rec.ID, rec.ParticipantID)
		}
		paid[rec.ParticipantID] = prev.Add(rec.Amount)
	}
	return paid, nil
}

// classify maps a paid/owed pair onto the four-way settlement status.
// Overpayment is strict: anything beyond owed counts, slack or not. The slack
// only widens the fully-settled band downward, covering totals reconstructed
// with one minor unit of rounding error. Zero paid is always Unpaid, except
// for a participant who owes nothing in the first place.
func classify(paid, owed money.Money, slack int64) models.SettlementStatus {
	switch {
	case paid.IsZero() && owed.IsZero():
		return models.StatusFullySettled
	case paid.IsZero():
		return models.StatusUnpaid
	case paid.Cmp(owed) > 0:
		return models.StatusOverpaid
	case owed.Sub(paid).Amount <= slack:
		return models.StatusFullySettled
	default:
		return models.StatusPartiallyPaid
	}
}
