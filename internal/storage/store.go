// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"

	"github.com/bolophil/SplitIt/internal/models"
)

// Store defines the persistence interface the services depend on. The engine
// itself never touches storage; it consumes value data loaded through this
// interface. The abstraction allows swapping backends (SQLite, PostgreSQL,
// etc.) without changing the service layer.
type Store interface {
	// CreateReceipt persists a new receipt with its participants, items,
	// and assignments. Missing IDs and CreatedAt are populated by the store.
	CreateReceipt(ctx context.Context, receipt *models.Receipt) error

	// GetReceipt retrieves a complete receipt by ID.
	GetReceipt(ctx context.Context, receiptID string) (*models.Receipt, error)

	// AddParticipant attaches a new participant (an invited guest) to an
	// existing receipt. The participant's ID is populated by the store.
	AddParticipant(ctx context.Context, receiptID string, p *models.Participant) error

	// AppendPayment records a payment against a receipt. Payments are
	// append-only: there is no update or delete operation.
	AppendPayment(ctx context.Context, rec *models.PaymentRecord) error

	// ListPayments returns all payments for a receipt in append order.
	ListPayments(ctx context.Context, receiptID string) ([]models.PaymentRecord, error)

	// CreateUser inserts a new user account.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByEmail retrieves a user by email, or (nil, nil) if not found.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByID retrieves a user by ID, or (nil, nil) if not found.
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// Close releases any resources held by the store.
	Close() error
}
