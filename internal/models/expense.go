package models

import "github.com/mmynk/tallyup/internal/settlement"

// Expense is one entry of a ledger's expense log.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// LedgerID is the ledger this expense belongs to.
	LedgerID string

	// Seq is the position in the log, starting at 1.
	Seq int

	settlement.Expense

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64
}
