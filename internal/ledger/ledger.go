// Package ledger provides the append-only payment ledger for one receipt.
//
// The ledger is the only mutable structure the settlement engine consumes,
// and it is write-once per record: payments are appended, never edited or
// deleted. A correction is a new offsetting record, so the full audit history
// survives. Settlement reads a snapshot and folds amounts; the fold is
// commutative, so the order in which concurrent appends land does not affect
// the final figures.
package ledger

import (
	"errors"
	"fmt"
	"sync"

	"github.com/bolophil/SplitIt/internal/models"
	"github.com/bolophil/SplitIt/internal/money"
)

var (
	// ErrInvalidAmount means an append carried a zero amount. Zero-sum
	// "corrections" are disallowed; a real correction offsets a prior record.
	ErrInvalidAmount = errors.New("payment amount must be non-zero")

	// ErrWrongReceipt means a record targeted a different receipt.
	ErrWrongReceipt = errors.New("payment belongs to a different receipt")
)

// Ledger is an append-only sequence of payment records scoped to one receipt.
// Safe for concurrent use.
type Ledger struct {
	mu        sync.Mutex
	receiptID string
	currency  string
	records   []models.PaymentRecord
}

// New creates an empty ledger for the given receipt and currency.
func New(receiptID, currency string) *Ledger {
	return &Ledger{receiptID: receiptID, currency: currency}
}

// Append records a payment. It fails on zero amounts, currency mismatches,
// and records addressed to another receipt. There is no delete: reversals
// are new records with negative amounts.
func (l *Ledger) Append(rec models.PaymentRecord) error {
	if rec.Amount.IsZero() {
		return fmt.Errorf("%w: participant %s", ErrInvalidAmount, rec.ParticipantID)
	}
	if rec.Amount.Cur() != l.currency {
		return fmt.Errorf("%w: ledger is %s, record is %s",
			money.ErrCurrencyMismatch, l.currency, rec.Amount.Cur())
	}
	if rec.ReceiptID != "" && rec.ReceiptID != l.receiptID {
		return fmt.Errorf("%w: got %s, want %s", ErrWrongReceipt, rec.ReceiptID, l.receiptID)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	rec.ReceiptID = l.receiptID
	l.records = append(l.records, rec)
	return nil
}

// Snapshot returns a copy of the records in append order, suitable as input
// to calculator.ComputeSettlement. Callers may recompute speculatively; the
// snapshot never aliases ledger state.
func (l *Ledger) Snapshot() []models.PaymentRecord {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]models.PaymentRecord, len(l.records))
	copy(out, l.records)
	return out
}

// Received folds all record amounts into the running total.
func (l *Ledger) Received() money.Money {
	l.mu.Lock()
	defer l.mu.Unlock()
	total := money.Zero(l.currency)
	for _, rec := range l.records {
		total = total.Add(rec.Amount)
	}
	return total
}

// Len reports the number of records.
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.records)
}
