package settlement

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Balance is one participant's position across the expense log.
type Balance struct {
	Participant string          `json:"participant"`
	Paid        decimal.Decimal `json:"paid"` // total paid on behalf of the group
	Owed        decimal.Decimal `json:"owed"` // total of this participant's shares
	Net         decimal.Decimal `json:"net"`  // Paid - Owed; positive means others owe them
}

// Balances holds one entry per participant in participant order.
type Balances []Balance

// Sum returns the sum of all net balances. It is zero within Tolerance for
// any valid expense log.
func (b Balances) Sum() decimal.Decimal {
	sum := decimal.Zero
	for _, bal := range b {
		sum = sum.Add(bal.Net)
	}
	return sum
}

// Get returns the balance of participant.
func (b Balances) Get(participant string) (Balance, bool) {
	for _, bal := range b {
		if bal.Participant == participant {
			return bal, true
		}
	}
	return Balance{}, false
}

// Settled reports whether every net balance is within Tolerance of zero.
func (b Balances) Settled() bool {
	for _, bal := range b {
		if !WithinTolerance(bal.Net, decimal.Zero) {
			return false
		}
	}
	return true
}

// ComputeBalances reduces expenses to net balances.
//
// Every participant starts at zero. Each expense credits its payer with the
// full amount and debits every share holder, the payer included, by their
// share. Payer and share holders must be in participants.
func ComputeBalances(participants []string, expenses []Expense) (Balances, error) {
	r := newRoster(participants)
	index := make(map[string]int, len(participants))
	balances := make(Balances, len(participants))
	for i, p := range participants {
		index[p] = i
		balances[i] = Balance{Participant: p, Paid: decimal.Zero, Owed: decimal.Zero}
	}

	for n, e := range expenses {
		payer, err := r.resolve(e.PaidBy)
		if err != nil {
			return nil, fmt.Errorf("expense %d payer: %w", n+1, err)
		}
		balances[index[payer]].Paid = balances[index[payer]].Paid.Add(e.Amount)

		for _, s := range e.Shares {
			holder, err := r.resolve(s.Participant)
			if err != nil {
				return nil, fmt.Errorf("expense %d share: %w", n+1, err)
			}
			balances[index[holder]].Owed = balances[index[holder]].Owed.Add(s.Amount)
		}
	}

	for i := range balances {
		balances[i].Net = Round(balances[i].Paid.Sub(balances[i].Owed))
		balances[i].Paid = Round(balances[i].Paid)
		balances[i].Owed = Round(balances[i].Owed)
	}
	return balances, nil
}
