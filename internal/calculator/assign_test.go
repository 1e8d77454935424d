package calculator

import (
	"errors"
	"testing"

	"github.com/bolophil/SplitIt/internal/models"
	"github.com/bolophil/SplitIt/internal/money"
)

func usd(amount int64) money.Money {
	return money.New(amount, "USD")
}

func item(price int64, assignments ...models.Assignment) models.ReceiptItem {
	return models.ReceiptItem{ID: "i1", Name: "item", Price: usd(price), Assignments: assignments}
}

func TestResolveAssignments(t *testing.T) {
	tests := []struct {
		name    string
		item    models.ReceiptItem
		wantErr bool
		want    map[string]Share
	}{
		{
			name: "equal split",
			item: item(1000,
				models.Assignment{ParticipantID: "p1", Weight: 1},
				models.Assignment{ParticipantID: "p2", Weight: 1},
			),
			want: map[string]Share{
				"p1": {Weight: 1, Total: 2},
				"p2": {Weight: 1, Total: 2},
			},
		},
		{
			name: "explicit weights",
			item: item(1000,
				models.Assignment{ParticipantID: "p1", Weight: 3},
				models.Assignment{ParticipantID: "p2", Weight: 1},
			),
			want: map[string]Share{
				"p1": {Weight: 3, Total: 4},
				"p2": {Weight: 1, Total: 4},
			},
		},
		{
			name: "zero weight participant is tagged but free",
			item: item(1000,
				models.Assignment{ParticipantID: "p1", Weight: 2},
				models.Assignment{ParticipantID: "p2", Weight: 0},
			),
			want: map[string]Share{
				"p1": {Weight: 2, Total: 2},
				"p2": {Weight: 0, Total: 2},
			},
		},
		{
			name: "duplicate assignee weights combine",
			item: item(1000,
				models.Assignment{ParticipantID: "p1", Weight: 1},
				models.Assignment{ParticipantID: "p1", Weight: 1},
				models.Assignment{ParticipantID: "p2", Weight: 2},
			),
			want: map[string]Share{
				"p1": {Weight: 2, Total: 4},
				"p2": {Weight: 2, Total: 4},
			},
		},
		{
			name:    "no assignees",
			item:    item(1000),
			wantErr: true,
		},
		{
			name: "all weights zero",
			item: item(1000,
				models.Assignment{ParticipantID: "p1", Weight: 0},
				models.Assignment{ParticipantID: "p2", Weight: 0},
			),
			wantErr: true,
		},
		{
			name: "negative weight",
			item: item(1000,
				models.Assignment{ParticipantID: "p1", Weight: -1},
				models.Assignment{ParticipantID: "p2", Weight: 3},
			),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shares, err := ResolveAssignments(tt.item)
			if tt.wantErr {
				if !errors.Is(err, models.ErrInvalidSplit) {
					t.Fatalf("ResolveAssignments() error = %v, want ErrInvalidSplit", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ResolveAssignments() failed: %v", err)
			}
			if len(shares) != len(tt.want) {
				t.Fatalf("got %d shares, want %d", len(shares), len(tt.want))
			}
			for pid, want := range tt.want {
				if shares[pid] != want {
					t.Errorf("share[%s] = %+v, want %+v", pid, shares[pid], want)
				}
			}
		})
	}
}

func TestSplitItem(t *testing.T) {
	tests := []struct {
		name string
		item models.ReceiptItem
		want map[string]int64
	}{
		{
			name: "even amount splits evenly",
			item: item(1000,
				models.Assignment{ParticipantID: "p1", Weight: 1},
				models.Assignment{ParticipantID: "p2", Weight: 1},
			),
			want: map[string]int64{"p1": 500, "p2": 500},
		},
		{
			// $10.01 between two: the odd cent lands on the lower
			// participant ID because the fractional remainders tie.
			name: "odd cent goes to first id on tie",
			item: item(1001,
				models.Assignment{ParticipantID: "p1", Weight: 1},
				models.Assignment{ParticipantID: "p2", Weight: 1},
			),
			want: map[string]int64{"p1": 501, "p2": 500},
		},
		{
			name: "weighted split",
			item: item(1000,
				models.Assignment{ParticipantID: "p1", Weight: 3},
				models.Assignment{ParticipantID: "p2", Weight: 1},
			),
			want: map[string]int64{"p1": 750, "p2": 250},
		},
		{
			// 100/3: floors are 33 each, the leftover cent goes to the
			// lowest ID because the fractional remainders tie.
			name: "three-way split of a non-divisible amount",
			item: item(100,
				models.Assignment{ParticipantID: "p1", Weight: 1},
				models.Assignment{ParticipantID: "p2", Weight: 1},
				models.Assignment{ParticipantID: "p3", Weight: 1},
			),
			want: map[string]int64{"p1": 34, "p2": 33, "p3": 33},
		},
		{
			name: "zero-weight assignee pays nothing",
			item: item(999,
				models.Assignment{ParticipantID: "p1", Weight: 1},
				models.Assignment{ParticipantID: "p2", Weight: 0},
			),
			want: map[string]int64{"p1": 999, "p2": 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			split, err := SplitItem(tt.item)
			if err != nil {
				t.Fatalf("SplitItem() failed: %v", err)
			}

			var sum int64
			for pid, want := range tt.want {
				if split[pid].Amount != want {
					t.Errorf("split[%s] = %d, want %d", pid, split[pid].Amount, want)
				}
			}
			for _, share := range split {
				sum += share.Amount
			}
			if sum != tt.item.Price.Amount {
				t.Errorf("shares sum to %d, want item price %d", sum, tt.item.Price.Amount)
			}
		})
	}
}

func TestSplitItemDeterministic(t *testing.T) {
	it := item(997,
		models.Assignment{ParticipantID: "p1", Weight: 1},
		models.Assignment{ParticipantID: "p2", Weight: 1},
		models.Assignment{ParticipantID: "p3", Weight: 1},
	)

	first, err := SplitItem(it)
	if err != nil {
		t.Fatalf("SplitItem() failed: %v", err)
	}
	for i := 0; i < 50; i++ {
		again, err := SplitItem(it)
		if err != nil {
			t.Fatalf("SplitItem() failed: %v", err)
		}
		for pid, share := range first {
			if again[pid].Amount != share.Amount {
				t.Fatalf("run %d: split[%s] = %d, want %d", i, pid, again[pid].Amount, share.Amount)
			}
		}
	}
}
