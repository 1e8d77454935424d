package ledger

import (
	"errors"
	"sync"
	"testing"

	"github.com/bolophil/SplitIt/internal/models"
	"github.com/bolophil/SplitIt/internal/money"
)

func record(pid string, amount int64) models.PaymentRecord {
	return models.PaymentRecord{ParticipantID: pid, Amount: money.New(amount, "USD")}
}

func TestAppend(t *testing.T) {
	tests := []struct {
		name    string
		rec     models.PaymentRecord
		wantErr error
	}{
		{
			name: "positive amount",
			rec:  record("p1", 500),
		},
		{
			name: "negative correction",
			rec:  record("p1", -200),
		},
		{
			name:    "zero amount rejected",
			rec:     record("p1", 0),
			wantErr: ErrInvalidAmount,
		},
		{
			name:    "currency mismatch rejected",
			rec:     models.PaymentRecord{ParticipantID: "p1", Amount: money.New(500, "EUR")},
			wantErr: money.ErrCurrencyMismatch,
		},
		{
			name:    "wrong receipt rejected",
			rec:     models.PaymentRecord{ReceiptID: "other", ParticipantID: "p1", Amount: money.New(500, "USD")},
			wantErr: ErrWrongReceipt,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := New("r1", "USD")
			err := l.Append(tt.rec)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Append() error = %v, want %v", err, tt.wantErr)
				}
				if l.Len() != 0 {
					t.Error("rejected record was still appended")
				}
				return
			}
			if err != nil {
				t.Fatalf("Append() failed: %v", err)
			}
			if l.Len() != 1 {
				t.Errorf("Len() = %d, want 1", l.Len())
			}
		})
	}
}

func TestAppendStampsReceiptID(t *testing.T) {
	l := New("r1", "USD")
	if err := l.Append(record("p1", 100)); err != nil {
		t.Fatalf("Append() failed: %v", err)
	}
	recs := l.Snapshot()
	if recs[0].ReceiptID != "r1" {
		t.Errorf("ReceiptID = %q, want %q", recs[0].ReceiptID, "r1")
	}
}

func TestReceived(t *testing.T) {
	l := New("r1", "USD")
	for _, amount := range []int64{1500, 500, -300} {
		if err := l.Append(record("p1", amount)); err != nil {
			t.Fatalf("Append(%d) failed: %v", amount, err)
		}
	}
	if got := l.Received().Amount; got != 1700 {
		t.Errorf("Received() = %d, want 1700", got)
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	l := New("r1", "USD")
	if err := l.Append(record("p1", 100)); err != nil {
		t.Fatalf("Append() failed: %v", err)
	}

	snap := l.Snapshot()
	snap[0].Amount = money.New(9999, "USD")

	if got := l.Received().Amount; got != 100 {
		t.Errorf("mutating snapshot changed ledger: Received() = %d, want 100", got)
	}
}

func TestSnapshotPreservesOrder(t *testing.T) {
	l := New("r1", "USD")
	amounts := []int64{100, -50, 300, 25}
	for _, a := range amounts {
		if err := l.Append(record("p1", a)); err != nil {
			t.Fatalf("Append(%d) failed: %v", a, err)
		}
	}

	snap := l.Snapshot()
	if len(snap) != len(amounts) {
		t.Fatalf("Snapshot() has %d records, want %d", len(snap), len(amounts))
	}
	for i, want := range amounts {
		if snap[i].Amount.Amount != want {
			t.Errorf("record %d = %d, want %d", i, snap[i].Amount.Amount, want)
		}
	}
}

func TestConcurrentAppends(t *testing.T) {
	l := New("r1", "USD")

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				if err := l.Append(record("p1", 7)); err != nil {
					t.Errorf("Append() failed: %v", err)
				}
			}
		}()
	}
	wg.Wait()

	if l.Len() != 200 {
		t.Errorf("Len() = %d, want 200", l.Len())
	}
	if got := l.Received().Amount; got != 1400 {
		t.Errorf("Received() = %d, want 1400", got)
	}
}
