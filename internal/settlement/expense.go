package settlement

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultDescription replaces a blank expense description.
const DefaultDescription = "Expense"

// Expense is one entry in the expense log: the payer covered Amount and each
// share holder owes their share of it.
type Expense struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	PaidBy      string          `json:"paid_by"`
	Mode        SplitMode       `json:"split_mode"`
	Shares      Shares          `json:"shares"`
}

// NewExpense builds a validated expense. Weights are keyed by participant
// name; missing entries count as zero and unknown names are rejected. Equal
// mode ignores weights.
func NewExpense(description string, amount decimal.Decimal, paidBy string, participants []string, mode SplitMode, weights map[string]decimal.Decimal) (Expense, error) {
	if len(participants) == 0 {
		return Expense{}, fmt.Errorf("%w: no participants", ErrInvalidSplit)
	}
	if !Round(amount).IsPositive() {
		return Expense{}, fmt.Errorf("%w: amount must be greater than zero", ErrInvalidSplit)
	}
	mode, err := ParseSplitMode(string(mode))
	if err != nil {
		return Expense{}, err
	}

	r := newRoster(participants)
	payer, err := r.resolve(paidBy)
	if err != nil {
		return Expense{}, fmt.Errorf("payer: %w", err)
	}

	byName := make(map[string]decimal.Decimal, len(weights))
	for name, value := range weights {
		canonical, err := r.resolve(name)
		if err != nil {
			return Expense{}, err
		}
		if _, dup := byName[canonical]; dup {
			return Expense{}, fmt.Errorf("%w: duplicate weight for %s", ErrInvalidSplit, canonical)
		}
		byName[canonical] = value
	}

	ordered := make([]Weight, len(participants))
	for i, p := range participants {
		ordered[i] = Weight{Participant: p}
		if mode != SplitEqual {
			ordered[i].Value = byName[p]
		}
	}

	shares, err := Split(amount, ordered)
	if err != nil {
		return Expense{}, err
	}

	expense := Expense{
		Description: cleanDescription(description),
		Amount:      Round(amount),
		PaidBy:      payer,
		Mode:        mode,
		Shares:      shares,
	}
	if err := expense.Validate(participants); err != nil {
		return Expense{}, err
	}
	return expense, nil
}

// NewExpenseFromShares builds an expense from a precomputed share breakdown.
// The shares must already sum to amount within Tolerance.
func NewExpenseFromShares(description string, amount decimal.Decimal, paidBy string, participants []string, shares Shares) (Expense, error) {
	if !Round(amount).IsPositive() {
		return Expense{}, fmt.Errorf("%w: amount must be greater than zero", ErrInvalidSplit)
	}
	r := newRoster(participants)
	payer, err := r.resolve(paidBy)
	if err != nil {
		return Expense{}, fmt.Errorf("payer: %w", err)
	}

	canonical := make(Shares, len(shares))
	for i, s := range shares {
		name, err := r.resolve(s.Participant)
		if err != nil {
			return Expense{}, err
		}
		canonical[i] = Share{Participant: name, Amount: Round(s.Amount)}
	}

	expense := Expense{
		Description: cleanDescription(description),
		Amount:      Round(amount),
		PaidBy:      payer,
		Mode:        SplitExact,
		Shares:      canonical,
	}
	if err := expense.Validate(participants); err != nil {
		return Expense{}, err
	}
	return expense, nil
}

// Validate checks the expense against the participant list: a positive
// amount, known payer and share holders, no negative shares, and shares that
// sum to the amount within Tolerance.
func (e Expense) Validate(participants []string) error {
	if !e.Amount.IsPositive() {
		return fmt.Errorf("%w: amount must be greater than zero", ErrInvalidSplit)
	}
	r := newRoster(participants)
	if _, err := r.resolve(e.PaidBy); err != nil {
		return fmt.Errorf("payer: %w", err)
	}
	seen := make(map[string]bool, len(e.Shares))
	for _, s := range e.Shares {
		if _, err := r.resolve(s.Participant); err != nil {
			return err
		}
		if seen[s.Participant] {
			return fmt.Errorf("%w: duplicate share for %s", ErrInvalidSplit, s.Participant)
		}
		seen[s.Participant] = true
		if s.Amount.LessThan(Tolerance.Neg()) {
			return fmt.Errorf("%w: negative share for %s", ErrInvalidSplit, s.Participant)
		}
	}
	if sum := e.Shares.Sum(); !WithinTolerance(sum, e.Amount) {
		return fmt.Errorf("%w: shares sum to %s, total is %s", ErrSplitMismatch, sum.StringFixed(Places), e.Amount.StringFixed(Places))
	}
	return nil
}

func cleanDescription(description string) string {
	description = strings.TrimSpace(description)
	if description == "" {
		return DefaultDescription
	}
	return description
}
