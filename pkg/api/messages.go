package api

import "github.com/shopspring/decimal"

// AuthService

type RegisterRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	Password    string `json:"password"`
}

type RegisterResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

type CurrentUserRequest struct{}

type CurrentUserResponse struct {
	User *User `json:"user"`
}

// CalculatorService

type PreviewSplitRequest struct {
	Amount       decimal.Decimal            `json:"amount"`
	SplitMode    string                     `json:"split_mode" validate:"omitempty,oneof=equal percent shares exact"`
	Participants []string                   `json:"participants" validate:"required,min=1"`
	Weights      map[string]decimal.Decimal `json:"weights,omitempty"`
}

type PreviewSplitResponse struct {
	Shares []Share `json:"shares"`
}

type ComputeSettlementRequest struct {
	Participants []string       `json:"participants" validate:"required,min=1"`
	Expenses     []ExpenseInput `json:"expenses" validate:"dive"`
	Payments     []PaymentInput `json:"payments,omitempty" validate:"dive"`
}

type ComputeSettlementResponse struct {
	Summary *Summary `json:"summary"`
}

// LedgerService

type CreateLedgerRequest struct {
	Name         string   `json:"name" validate:"required,max=100"`
	Currency     string   `json:"currency,omitempty"`
	Participants []string `json:"participants"`
}

type CreateLedgerResponse struct {
	Ledger *Ledger `json:"ledger"`
}

type GetLedgerRequest struct {
	LedgerID string `json:"ledger_id" validate:"required"`
}

type GetLedgerResponse struct {
	Ledger *Ledger `json:"ledger"`
}

type ListLedgersRequest struct{}

type ListLedgersResponse struct {
	Ledgers []*Ledger `json:"ledgers"`
}

type DeleteLedgerRequest struct {
	LedgerID string `json:"ledger_id" validate:"required"`
}

type DeleteLedgerResponse struct{}

type SetParticipantsRequest struct {
	LedgerID     string   `json:"ledger_id" validate:"required"`
	Participants []string `json:"participants"`
}

type SetParticipantsResponse struct {
	Participants []string `json:"participants"`
}

type AddExpenseRequest struct {
	LedgerID string       `json:"ledger_id" validate:"required"`
	Expense  ExpenseInput `json:"expense"`
}

type AddExpenseResponse struct {
	Expense *Expense `json:"expense"`
}

type UndoLastExpenseRequest struct {
	LedgerID string `json:"ledger_id" validate:"required"`
}

type UndoLastExpenseResponse struct {
	Removed *Expense `json:"removed"`
}

type ClearExpensesRequest struct {
	LedgerID string `json:"ledger_id" validate:"required"`
}

type ClearExpensesResponse struct {
	Removed int `json:"removed"`
}

type RecordPaymentRequest struct {
	LedgerID string       `json:"ledger_id" validate:"required"`
	Payment  PaymentInput `json:"payment"`
}

type RecordPaymentResponse struct {
	Payment *Payment `json:"payment"`
}

type DeletePaymentRequest struct {
	LedgerID  string `json:"ledger_id" validate:"required"`
	PaymentID string `json:"payment_id" validate:"required"`
}

type DeletePaymentResponse struct{}

type GetSummaryRequest struct {
	LedgerID string `json:"ledger_id" validate:"required"`
}

type GetSummaryResponse struct {
	Summary *Summary `json:"summary"`
}

// Export kinds accepted by ExportCSV.
const (
	ExportTransfers = "transfers"
	ExportExpenses  = "expenses"
)

type ExportCSVRequest struct {
	LedgerID string `json:"ledger_id" validate:"required"`
	Kind     string `json:"kind" validate:"omitempty,oneof=transfers expenses"`
}

type ExportCSVResponse struct {
	Filename string `json:"filename"`
	Content  string `json:"content"`
}
