package models

import "github.com/mmynk/tallyup/internal/settlement"

// Payment represents money handed from one participant to another to clear
// debt.
type Payment struct {
	// ID is the unique identifier for the payment (UUID format).
	ID string

	// LedgerID is the ledger this payment belongs to.
	LedgerID string

	settlement.Payment

	// Note is an optional description.
	Note string

	// CreatedBy is the user who recorded the payment.
	CreatedBy string

	// CreatedAt is the Unix timestamp when the payment was recorded.
	CreatedAt int64
}
