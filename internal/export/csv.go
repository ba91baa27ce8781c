// Package export renders ledger data as CSV.
package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/samber/lo"

	"github.com/mmynk/tallyup/internal/settlement"
)

// Filenames used for downloads.
const (
	TransfersFilename = "settlements.csv"
	ExpensesFilename  = "expenses.csv"
)

// amountHeader labels the amount column, with the currency when known.
func amountHeader(currency string) string {
	if currency == "" {
		return "Amount"
	}
	return fmt.Sprintf("Amount (%s)", currency)
}

// WriteTransfers writes one From,To,Amount row per transfer.
func WriteTransfers(w io.Writer, currency string, transfers []settlement.Transfer) error {
	rows := lo.Map(transfers, func(t settlement.Transfer, _ int) []string {
		return []string{t.From, t.To, t.Amount.StringFixed(settlement.Places)}
	})
	return write(w, []string{"From", "To", amountHeader(currency)}, rows)
}

// WriteExpenses writes the expense log, one row per expense, with the share
// breakdown in the last column.
func WriteExpenses(w io.Writer, currency string, expenses []settlement.Expense) error {
	rows := lo.Map(expenses, func(e settlement.Expense, _ int) []string {
		return []string{
			e.Description,
			e.Amount.StringFixed(settlement.Places),
			e.PaidBy,
			e.Mode.Label(),
			e.Shares.String(),
		}
	})
	return write(w, []string{"Description", amountHeader(currency), "Paid by", "Split", "Per-person"}, rows)
}

func write(w io.Writer, header []string, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write rows: %w", err)
	}
	return nil
}
