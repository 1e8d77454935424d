package calculator

import (
	"fmt"
	"sort"

	"github.com/bolophil/SplitIt/internal/models"
	"github.com/bolophil/SplitIt/internal/money"
)

// Prorate distributes a receipt-level charge (tax or tip) across participants
// in proportion to their subtotal share: charge × participantSubtotal / subtotal,
// floored per participant. The remainder is distributed one minor unit at a
// time in a fixed order (descending participant subtotal, ties broken by
// ascending participant ID) so the shares sum exactly to the charge.
//
// A zero charge prorates to zero for everyone regardless of subtotal. A
// non-zero charge over a zero subtotal is unassignable and fails with
// models.ErrEmptyReceipt; receipt validation rejects that combination up
// front, so a valid receipt never hits it.
func Prorate(subtotals map[string]money.Money, subtotal, charge money.Money) (map[string]money.Money, error) {
	shares := make(map[string]money.Money, len(subtotals))
	cur := charge.Cur()

	if charge.IsZero() {
		for pid := range subtotals {
			shares[pid] = money.Zero(cur)
		}
		return shares, nil
	}
	if subtotal.IsZero() {
		return nil, fmt.Errorf("%w: cannot prorate %s over a zero subtotal",
			models.ErrEmptyReceipt, charge)
	}

	distributed := int64(0)
	for pid, sub := range subtotals {
		share := charge.MulDiv(sub.Amount, subtotal.Amount)
		shares[pid] = share
		distributed += share.Amount
	}

	remainder := charge.Amount - distributed
	order := make([]string, 0, len(subtotals))
	for pid := range subtotals {
		order = append(order, pid)
	}
	sort.Slice(order, func(i, j int) bool {
		si, sj := subtotals[order[i]], subtotals[order[j]]
		if c := si.Cmp(sj); c != 0 {
			return c > 0
		}
		return order[i] < order[j]
	})
	for i := int64(0); i < remainder; i++ {
		pid := order[i]
		shares[pid] = shares[pid].Add(money.New(1, cur))
	}

	return shares, nil
}
