package settlement

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Payment is money handed from one participant to another to settle debt.
type Payment struct {
	From   string          `json:"from"`
	To     string          `json:"to"`
	Amount decimal.Decimal `json:"amount"`
}

// NewPayment validates a payment against the participant list.
func NewPayment(from, to string, amount decimal.Decimal, participants []string) (Payment, error) {
	amount = Round(amount)
	if !amount.IsPositive() {
		return Payment{}, fmt.Errorf("%w: payment amount must be greater than zero", ErrInvalidSplit)
	}
	r := newRoster(participants)
	payer, err := r.resolve(from)
	if err != nil {
		return Payment{}, fmt.Errorf("from: %w", err)
	}
	payee, err := r.resolve(to)
	if err != nil {
		return Payment{}, fmt.Errorf("to: %w", err)
	}
	if payer == payee {
		return Payment{}, fmt.Errorf("%w: payment from %s to themselves", ErrInvalidSplit, payer)
	}
	return Payment{From: payer, To: payee, Amount: amount}, nil
}

// AsExpense expresses the payment as an expense paid by From and owed
// entirely by To, which is how it moves balances.
func (p Payment) AsExpense() Expense {
	return Expense{
		Description: fmt.Sprintf("Payment from %s to %s", p.From, p.To),
		Amount:      p.Amount,
		PaidBy:      p.From,
		Mode:        SplitExact,
		Shares:      Shares{{Participant: p.To, Amount: p.Amount}},
	}
}
