package settlement

// Summary is the full result of one settlement run.
type Summary struct {
	Balances  Balances   `json:"balances"`
	Transfers []Transfer `json:"transfers"`
}

// Settled reports whether nobody owes anything.
func (s Summary) Settled() bool {
	return len(s.Transfers) == 0
}

// Summarize recomputes balances from expenses and payments and settles them.
// Payments count as expenses paid by the sender and owed by the receiver.
func Summarize(participants []string, expenses []Expense, payments []Payment) (Summary, error) {
	entries := make([]Expense, 0, len(expenses)+len(payments))
	entries = append(entries, expenses...)
	for _, p := range payments {
		entries = append(entries, p.AsExpense())
	}

	balances, err := ComputeBalances(participants, entries)
	if err != nil {
		return Summary{}, err
	}
	return Summary{Balances: balances, Transfers: Settle(balances)}, nil
}
