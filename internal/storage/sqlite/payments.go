package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/bolophil/SplitIt/internal/models"
	"github.com/bolophil/SplitIt/internal/money"
)

// AppendPayment persists a payment record. The payments table is append-only:
// this package deliberately has no update or delete for it, so the audit
// history of a receipt can never be rewritten.
func (s *SQLiteStore) AppendPayment(ctx context.Context, rec *models.PaymentRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.CreatedAt == 0 {
		rec.CreatedAt = time.Now().Unix()
	}

	var note interface{}
	if rec.Note != "" {
		note = rec.Note
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO payments (id, receipt_id, participant_id, amount, note, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.ReceiptID, rec.ParticipantID, rec.Amount.Amount, note, rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert payment: %w", err)
	}

	return nil
}

// ListPayments retrieves all payments for a receipt in append order.
func (s *SQLiteStore) ListPayments(ctx context.Context, receiptID string) ([]models.PaymentRecord, error) {
	var currency string
	err := s.db.QueryRowContext(ctx,
		"SELECT currency FROM receipts WHERE id = ?", receiptID,
	).Scan(&currency)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("receipt not found: %s", receiptID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get receipt currency: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, receipt_id, participant_id, amount, note, created_at
		 FROM payments WHERE receipt_id = ? ORDER BY rowid`,
		receiptID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	var records []models.PaymentRecord
	for rows.Next() {
		var rec models.PaymentRecord
		var amount int64
		var note sql.NullString

		if err := rows.Scan(&rec.ID, &rec.ReceiptID, &rec.ParticipantID,
			&amount, &note, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}

		rec.Amount = money.New(amount, currency)
		rec.Note = note.String
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payments: %w", err)
	}

	return records, nil
}
