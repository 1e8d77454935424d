// Package calculator implements the receipt settlement engine: assignment
// resolution, proration of receipt-level charges, and settlement computation.
//
// Every function here is pure. Inputs are value data, outputs are value data,
// and calling a function twice with the same inputs yields identical results.
// All arithmetic is in integer minor units; fractional remainders are
// redistributed deterministically so that shares always sum exactly to the
// amount being split.
package calculator

import (
	"fmt"
	"sort"

	"github.com/bolophil/SplitIt/internal/models"
	"github.com/bolophil/SplitIt/internal/money"
)

// Share is a participant's exact fractional share of an item:
// Weight / Total, with Total > 0.
type Share struct {
	Weight int64
	Total  int64
}

// ResolveAssignments maps each assignee of an item to their fractional share.
// Shares sum to exactly 1 across the item (ΣWeight == Total). A participant
// listed twice has their weights combined.
//
// The same conditions Receipt.Validate rejects are rejected here, so the
// function is safe to call on unvalidated items too.
func ResolveAssignments(item models.ReceiptItem) (map[string]Share, error) {
	if len(item.Assignments) == 0 {
		return nil, fmt.Errorf("%w: item %q has no assignees", models.ErrInvalidSplit, item.Name)
	}

	weights := make(map[string]int64, len(item.Assignments))
	var total int64
	for _, a := range item.Assignments {
		if a.Weight < 0 {
			return nil, fmt.Errorf("%w: item %q has negative weight for %q",
				models.ErrInvalidSplit, item.Name, a.ParticipantID)
		}
		weights[a.ParticipantID] += a.Weight
		total += a.Weight
	}
	if total <= 0 {
		return nil, fmt.Errorf("%w: item %q has zero total weight", models.ErrInvalidSplit, item.Name)
	}

	shares := make(map[string]Share, len(weights))
	for pid, w := range weights {
		shares[pid] = Share{Weight: w, Total: total}
	}
	return shares, nil
}

// SplitItem distributes an item's price across its assignees in proportion to
// their weights, in whole minor units. Each share is floored and the discarded
// remainder is handed out one unit at a time, ordered by descending fractional
// remainder and then ascending participant ID, so the shares sum exactly to
// the item price.
func SplitItem(item models.ReceiptItem) (map[string]money.Money, error) {
	shares, err := ResolveAssignments(item)
	if err != nil {
		return nil, err
	}

	type portion struct {
		pid string
		rem int64 // fractional remainder in weight units, [0, Total)
	}

	split := make(map[string]money.Money, len(shares))
	portions := make([]portion, 0, len(shares))
	distributed := int64(0)

	for pid, s := range shares {
		base := item.Price.MulDiv(s.Weight, s.Total)
		split[pid] = base
		distributed += base.Amount
		portions = append(portions, portion{
			pid: pid,
			rem: item.Price.Amount*s.Weight - base.Amount*s.Total,
		})
	}

	remainder := item.Price.Amount - distributed
	sort.Slice(portions, func(i, j int) bool {
		if portions[i].rem != portions[j].rem {
			return portions[i].rem > portions[j].rem
		}
		return portions[i].pid < portions[j].pid
	})
	for i := int64(0); i < remainder; i++ {
		p := portions[i]
		split[p.pid] = split[p.pid].Add(money.New(1, item.Price.Cur()))
	}

	return split, nil
}
