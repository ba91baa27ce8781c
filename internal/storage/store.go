// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/tallyup/internal/models"
)

// ErrNotFound is returned (wrapped) when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// UserStore persists user accounts.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByEmail returns ErrNotFound when no account uses email.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// LedgerStore persists ledgers and their logs.
type LedgerStore interface {
	// CreateLedger persists a new ledger with its participants.
	// The ledger.ID and ledger.CreatedAt fields are populated by the store.
	CreateLedger(ctx context.Context, ledger *models.Ledger) error

	// GetLedger loads a ledger with participants, expenses and payments.
	GetLedger(ctx context.Context, ledgerID string) (*models.Ledger, error)

	// ListLedgersByOwner returns the owner's ledgers without their logs,
	// newest first.
	ListLedgersByOwner(ctx context.Context, ownerID string) ([]*models.Ledger, error)

	// DeleteLedger removes a ledger and everything recorded in it.
	DeleteLedger(ctx context.Context, ledgerID string) error

	// SetParticipants replaces the participant list, keeping the given order.
	SetParticipants(ctx context.Context, ledgerID string, participants []string) error

	// AppendExpense adds an expense to the end of the log. The expense ID,
	// Seq and CreatedAt fields are populated by the store.
	AppendExpense(ctx context.Context, expense *models.Expense) error

	// RemoveLastExpense deletes the newest expense and returns it.
	// Returns ErrNotFound when the log is empty.
	RemoveLastExpense(ctx context.Context, ledgerID string) (*models.Expense, error)

	// ClearExpenses deletes the whole expense log and reports how many
	// entries were removed.
	ClearExpenses(ctx context.Context, ledgerID string) (int, error)

	CreatePayment(ctx context.Context, payment *models.Payment) error
	DeletePayment(ctx context.Context, ledgerID, paymentID string) error
}

// Store defines the full storage interface used by the service layer.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the services.
type Store interface {
	UserStore
	LedgerStore

	// Close releases any resources held by the store.
	Close() error
}
