package settlement

import (
	"slices"

	"github.com/shopspring/decimal"
)

// Transfer is a payment that moves Amount from a debtor to a creditor.
type Transfer struct {
	From   string          `json:"from"`
	To     string          `json:"to"`
	Amount decimal.Decimal `json:"amount"`
}

type position struct {
	participant string
	remaining   decimal.Decimal
}

// Settle converts net balances into transfers that zero them out.
//
// Debtors and creditors are each sorted by amount, largest first. Equal
// amounts keep participant order. The largest debtor pays the largest
// creditor as much as both can take, and whichever side is exhausted moves on.
// Transfers are returned in the order they were generated.
func Settle(balances Balances) []Transfer {
	// Balances are rounded to whole cents first so that every step either
	// records a transfer or retires a side.
	var debtors, creditors []position
	for _, b := range balances {
		net := Round(b.Net)
		switch {
		case net.LessThan(Tolerance.Neg()):
			debtors = append(debtors, position{participant: b.Participant, remaining: net.Neg()})
		case net.GreaterThan(Tolerance):
			creditors = append(creditors, position{participant: b.Participant, remaining: net})
		}
	}

	largestFirst := func(a, b position) int { return b.remaining.Cmp(a.remaining) }
	slices.SortStableFunc(debtors, largestFirst)
	slices.SortStableFunc(creditors, largestFirst)

	transfers := []Transfer{}
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		debtor, creditor := &debtors[i], &creditors[j]

		amount := decimal.Min(debtor.remaining, creditor.remaining)
		if amount.GreaterThan(Tolerance) {
			transfers = append(transfers, Transfer{
				From:   debtor.participant,
				To:     creditor.participant,
				Amount: amount,
			})
			debtor.remaining = debtor.remaining.Sub(amount)
			creditor.remaining = creditor.remaining.Sub(amount)
		}

		if debtor.remaining.LessThanOrEqual(Tolerance) {
			i++
		}
		if creditor.remaining.LessThanOrEqual(Tolerance) {
			j++
		}
	}
	return transfers
}

// Apply returns the balances left after every transfer is paid: the sender's
// net rises and the receiver's falls by the transfer amount.
func Apply(balances Balances, transfers []Transfer) Balances {
	out := slices.Clone(balances)
	for _, t := range transfers {
		for i := range out {
			switch out[i].Participant {
			case t.From:
				out[i].Net = out[i].Net.Add(t.Amount)
			case t.To:
				out[i].Net = out[i].Net.Sub(t.Amount)
			}
		}
	}
	return out
}
