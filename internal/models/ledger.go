package models

import (
	"fmt"
	"slices"
	"strings"

	"github.com/mmynk/tallyup/internal/settlement"
)

// Currencies lists the display labels a ledger may use. Amounts are never
// converted between them.
var Currencies = []string{"AED", "USD", "EUR", "INR", "SAR", "GBP"}

// IsCurrency reports whether code is a supported currency label.
func IsCurrency(code string) bool {
	return slices.Contains(Currencies, strings.ToUpper(code))
}

// Ledger is a shared-expense session.
type Ledger struct {
	// ID is the unique identifier for the ledger (UUID format).
	ID string

	// OwnerID is the user who created the ledger. Only the owner may read or
	// change it.
	OwnerID string

	// Name is the display name (e.g., "Lisbon trip").
	Name string

	// Currency is a display label only.
	Currency string

	// Participants in entry order. Order matters: it decides who absorbs
	// rounding residuals and how settlement ties break.
	Participants []string

	// Expenses is the append-only expense log, oldest first.
	Expenses []Expense

	// Payments records money already handed over, oldest first.
	Payments []Payment

	// CreatedAt is the Unix timestamp when the ledger was created.
	CreatedAt int64
}

// Summary recomputes balances and transfers from the ledger's logs.
func (l *Ledger) Summary() (settlement.Summary, error) {
	expenses := make([]settlement.Expense, len(l.Expenses))
	for i, e := range l.Expenses {
		expenses[i] = e.Expense
	}
	payments := make([]settlement.Payment, len(l.Payments))
	for i, p := range l.Payments {
		payments[i] = p.Payment
	}
	return settlement.Summarize(l.Participants, expenses, payments)
}

// Referenced returns the lowercased names of participants that appear in any
// expense or payment.
func (l *Ledger) Referenced() map[string]bool {
	used := make(map[string]bool)
	mark := func(name string) { used[strings.ToLower(name)] = true }
	for _, e := range l.Expenses {
		mark(e.PaidBy)
		for _, s := range e.Shares {
			mark(s.Participant)
		}
	}
	for _, p := range l.Payments {
		mark(p.From)
		mark(p.To)
	}
	return used
}

// CheckParticipants verifies that replacing the participant list with next
// keeps everyone referenced by the logs. Names compare case-insensitively.
func (l *Ledger) CheckParticipants(next []string) error {
	kept := make(map[string]bool, len(next))
	for _, p := range next {
		kept[strings.ToLower(p)] = true
	}
	used := l.Referenced()
	for _, p := range l.Participants {
		key := strings.ToLower(p)
		if used[key] && !kept[key] {
			return fmt.Errorf("%w: %s appears in recorded expenses or payments", ErrParticipantInUse, p)
		}
	}
	return nil
}
