package api

import "github.com/shopspring/decimal"

// User is the public view of an account.
type User struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	CreatedAt   int64  `json:"created_at"`
}

// Share is one participant's portion of an expense.
type Share struct {
	Participant string          `json:"participant"`
	Amount      decimal.Decimal `json:"amount"`
}

// Expense is a logged expense.
type Expense struct {
	ID          string          `json:"id"`
	Seq         int             `json:"seq"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	PaidBy      string          `json:"paid_by"`
	SplitMode   string          `json:"split_mode"`
	Shares      []Share         `json:"shares"`
	CreatedAt   int64           `json:"created_at"`
}

// ExpenseInput describes an expense to split. Weights are keyed by
// participant name and read according to SplitMode (equal, percent, shares
// or exact). Missing weights count as zero.
type ExpenseInput struct {
	Description string                     `json:"description" validate:"max=200"`
	Amount      decimal.Decimal            `json:"amount"`
	PaidBy      string                     `json:"paid_by" validate:"required"`
	SplitMode   string                     `json:"split_mode" validate:"omitempty,oneof=equal percent shares exact"`
	Weights     map[string]decimal.Decimal `json:"weights,omitempty"`
}

// PaymentInput describes money handed between two participants.
type PaymentInput struct {
	From   string          `json:"from" validate:"required"`
	To     string          `json:"to" validate:"required"`
	Amount decimal.Decimal `json:"amount"`
	Note   string          `json:"note,omitempty" validate:"max=200"`
}

// Payment is a recorded payment.
type Payment struct {
	ID        string          `json:"id"`
	From      string          `json:"from"`
	To        string          `json:"to"`
	Amount    decimal.Decimal `json:"amount"`
	Note      string          `json:"note,omitempty"`
	CreatedAt int64           `json:"created_at"`
}

// Ledger is a shared-expense session. List responses leave Expenses and
// Payments empty.
type Ledger struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Currency     string    `json:"currency"`
	Participants []string  `json:"participants"`
	Expenses     []Expense `json:"expenses,omitempty"`
	Payments     []Payment `json:"payments,omitempty"`
	CreatedAt    int64     `json:"created_at"`
}

// Balance is one participant's net position. Positive Net means the others
// owe them.
type Balance struct {
	Participant string          `json:"participant"`
	Paid        decimal.Decimal `json:"paid"`
	Owed        decimal.Decimal `json:"owed"`
	Net         decimal.Decimal `json:"net"`
}

// Transfer is one payment that helps settle the ledger.
type Transfer struct {
	From   string          `json:"from"`
	To     string          `json:"to"`
	Amount decimal.Decimal `json:"amount"`
}

// Summary holds balances and the transfers that settle them.
type Summary struct {
	Currency  string     `json:"currency,omitempty"`
	Balances  []Balance  `json:"balances"`
	Transfers []Transfer `json:"transfers"`
	Settled   bool       `json:"settled"`
}
