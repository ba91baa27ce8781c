package settlement

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Weight is one participant's raw claim on an expense. Its meaning depends on
// the split mode: a percentage, a share count or an exact amount.
type Weight struct {
	Participant string
	Value       decimal.Decimal
}

// Share is the portion of an expense owed by one participant.
type Share struct {
	Participant string          `json:"participant" yaml:"participant"`
	Amount      decimal.Decimal `json:"amount" yaml:"amount"`
}

// Shares is an ordered share breakdown. Order follows the participant list the
// shares were computed from.
type Shares []Share

// Sum returns the total of all shares.
func (s Shares) Sum() decimal.Decimal {
	sum := decimal.Zero
	for _, share := range s {
		sum = sum.Add(share.Amount)
	}
	return sum
}

// Get returns the share owed by participant.
func (s Shares) Get(participant string) (decimal.Decimal, bool) {
	for _, share := range s {
		if share.Participant == participant {
			return share.Amount, true
		}
	}
	return decimal.Zero, false
}

// String renders shares as "A: 3.33, B: 3.33, C: 3.34".
func (s Shares) String() string {
	parts := make([]string, len(s))
	for i, share := range s {
		parts[i] = fmt.Sprintf("%s: %s", share.Participant, share.Amount.StringFixed(Places))
	}
	return strings.Join(parts, ", ")
}

// Split distributes total over the weighted participants.
//
// Each share is total*weight/sum(weights) rounded to currency precision. When
// every weight is zero the total is split equally. The rounding residual goes
// to the last participant so the shares sum exactly to the rounded total. If a
// negative residual would push the last share below zero, the deficit carries
// backwards to earlier participants.
func Split(total decimal.Decimal, weights []Weight) (Shares, error) {
	if len(weights) == 0 {
		return nil, fmt.Errorf("%w: no participants", ErrInvalidSplit)
	}
	if total.IsNegative() {
		return nil, fmt.Errorf("%w: total %s is negative", ErrInvalidSplit, total)
	}
	total = Round(total)

	seen := make(map[string]bool, len(weights))
	sum := decimal.Zero
	for _, w := range weights {
		if w.Value.IsNegative() {
			return nil, fmt.Errorf("%w: negative weight %s for %s", ErrInvalidSplit, w.Value, w.Participant)
		}
		if seen[w.Participant] {
			return nil, fmt.Errorf("%w: duplicate participant %s", ErrInvalidSplit, w.Participant)
		}
		seen[w.Participant] = true
		sum = sum.Add(w.Value)
	}

	count := decimal.NewFromInt(int64(len(weights)))
	shares := make(Shares, len(weights))
	allocated := decimal.Zero
	for i, w := range weights {
		var amount decimal.Decimal
		if sum.IsZero() {
			amount = total.Div(count)
		} else {
			amount = total.Mul(w.Value).Div(sum)
		}
		amount = Round(amount)
		shares[i] = Share{Participant: w.Participant, Amount: amount}
		allocated = allocated.Add(amount)
	}

	absorbResidual(shares, total.Sub(allocated))
	return shares, nil
}

func absorbResidual(shares Shares, residual decimal.Decimal) {
	for i := len(shares) - 1; i >= 0 && !residual.IsZero(); i-- {
		adjusted := shares[i].Amount.Add(residual)
		if adjusted.IsNegative() && i > 0 {
			shares[i].Amount = decimal.Zero
			residual = adjusted
			continue
		}
		shares[i].Amount = adjusted
		residual = decimal.Zero
	}
}
