// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/bolophil/SplitIt/internal/models"
	"github.com/bolophil/SplitIt/internal/money"
	"github.com/bolophil/SplitIt/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	// Create parent directory if it doesn't exist
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// Open database with pure Go driver
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	// Run migrations
	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// CreateReceipt persists a receipt with its participants, items, and
// assignments in one transaction. IDs and CreatedAt are generated here when
// missing; the receipt is assumed to be validated already.
func (s *SQLiteStore) CreateReceipt(ctx context.Context, receipt *models.Receipt) error {
	if receipt.ID == "" {
		receipt.ID = uuid.New().String()
	}
	if receipt.CreatedAt == 0 {
		receipt.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO receipts (id, vendor, city, state, country, host_id, currency, subtotal, tax, tip, total, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		receipt.ID, receipt.Vendor,
		receipt.Location.City, receipt.Location.State, receipt.Location.Country,
		receipt.HostID, receipt.Total.Cur(),
		receipt.Subtotal.Amount, receipt.Tax.Amount, receipt.Tip.Amount, receipt.Total.Amount,
		receipt.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert receipt: %w", err)
	}

	for i := range receipt.Participants {
		p := &receipt.Participants[i]
		if p.ID == "" {
			p.ID = uuid.New().String()
		}
		_, err = tx.ExecContext(ctx,
			"INSERT INTO participants (id, receipt_id, name, phone_number) VALUES (?, ?, ?, ?)",
			p.ID, receipt.ID, p.Name, p.PhoneNumber,
		)
		if err != nil {
			return fmt.Errorf("failed to insert participant: %w", err)
		}
	}

	for i := range receipt.Items {
		item := &receipt.Items[i]
		if item.ID == "" {
			item.ID = uuid.New().String()
		}

		_, err = tx.ExecContext(ctx,
			"INSERT INTO items (id, receipt_id, name, price, position) VALUES (?, ?, ?, ?, ?)",
			item.ID, receipt.ID, item.Name, item.Price.Amount, i,
		)
		if err != nil {
			return fmt.Errorf("failed to insert item: %w", err)
		}

		for _, a := range item.Assignments {
			// A participant listed twice on an item has their weights
			// combined, same as the calculator does.
			_, err = tx.ExecContext(ctx,
				`INSERT INTO item_assignments (item_id, participant_id, weight) VALUES (?, ?, ?)
				 ON CONFLICT (item_id, participant_id) DO UPDATE SET weight = weight + excluded.weight`,
				item.ID, a.ParticipantID, a.Weight,
			)
			if err != nil {
				return fmt.Errorf("failed to insert item assignment: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetReceipt retrieves a complete receipt: participants, items, assignments.
func (s *SQLiteStore) GetReceipt(ctx context.Context, receiptID string) (*models.Receipt, error) {
	receipt := &models.Receipt{}
	var currency string
	var subtotal, tax, tip, total int64

	err := s.db.QueryRowContext(ctx,
		`SELECT id, vendor, city, state, country, host_id, currency, subtotal, tax, tip, total, created_at
		 FROM receipts WHERE id = ?`,
		receiptID,
	).Scan(&receipt.ID, &receipt.Vendor,
		&receipt.Location.City, &receipt.Location.State, &receipt.Location.Country,
		&receipt.HostID, &currency, &subtotal, &tax, &tip, &total, &receipt.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("receipt not found: %s", receiptID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get receipt: %w", err)
	}

	receipt.Subtotal = money.New(subtotal, currency)
	receipt.Tax = money.New(tax, currency)
	receipt.Tip = money.New(tip, currency)
	receipt.Total = money.New(total, currency)

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, phone_number FROM participants WHERE receipt_id = ? ORDER BY rowid",
		receiptID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get participants: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p models.Participant
		var phone sql.NullString
		if err := rows.Scan(&p.ID, &p.Name, &phone); err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		p.PhoneNumber = phone.String
		receipt.Participants = append(receipt.Participants, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate participants: %w", err)
	}

	itemRows, err := s.db.QueryContext(ctx,
		"SELECT id, name, price FROM items WHERE receipt_id = ? ORDER BY position",
		receiptID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get items: %w", err)
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var item models.ReceiptItem
		var price int64
		if err := itemRows.Scan(&item.ID, &item.Name, &price); err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		item.Price = money.New(price, currency)

		assignRows, err := s.db.QueryContext(ctx,
			"SELECT participant_id, weight FROM item_assignments WHERE item_id = ? ORDER BY participant_id",
			item.ID,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to get item assignments: %w", err)
		}

		for assignRows.Next() {
			var a models.Assignment
			if err := assignRows.Scan(&a.ParticipantID, &a.Weight); err != nil {
				assignRows.Close()
				return nil, fmt.Errorf("failed to scan assignment: %w", err)
			}
			item.Assignments = append(item.Assignments, a)
		}
		assignRows.Close()
		if err := assignRows.Err(); err != nil {
			return nil, fmt.Errorf("failed to iterate assignments: %w", err)
		}

		receipt.Items = append(receipt.Items, item)
	}
	if err := itemRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate items: %w", err)
	}

	return receipt, nil
}

// AddParticipant attaches a new participant to an existing receipt.
func (s *SQLiteStore) AddParticipant(ctx context.Context, receiptID string, p *models.Participant) error {
	var exists int
	err := s.db.QueryRowContext(ctx, "SELECT 1 FROM receipts WHERE id = ?", receiptID).Scan(&exists)
	if err == sql.ErrNoRows {
		return fmt.Errorf("receipt not found: %s", receiptID)
	}
	if err != nil {
		return fmt.Errorf("failed to check receipt existence: %w", err)
	}

	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	_, err = s.db.ExecContext(ctx,
		"INSERT INTO participants (id, receipt_id, name, phone_number) VALUES (?, ?, ?, ?)",
		p.ID, receiptID, p.Name, p.PhoneNumber,
	)
	if err != nil {
		return fmt.Errorf("failed to insert participant: %w", err)
	}
	return nil
}
