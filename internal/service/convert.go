package service

import (
	"github.com/samber/lo"

	"github.com/mmynk/tallyup/internal/models"
	"github.com/mmynk/tallyup/internal/settlement"
	"github.com/mmynk/tallyup/pkg/api"
)

func toAPIUser(u *models.User) *api.User {
	return &api.User{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		CreatedAt:   u.CreatedAt,
	}
}

func toAPIShares(shares settlement.Shares) []api.Share {
	return lo.Map(shares, func(s settlement.Share, _ int) api.Share {
		return api.Share{Participant: s.Participant, Amount: s.Amount}
	})
}

func toAPIExpense(e models.Expense) api.Expense {
	return api.Expense{
		ID:          e.ID,
		Seq:         e.Seq,
		Description: e.Description,
		Amount:      e.Amount,
		PaidBy:      e.PaidBy,
		SplitMode:   string(e.Mode),
		Shares:      toAPIShares(e.Shares),
		CreatedAt:   e.CreatedAt,
	}
}

func toAPIPayment(p models.Payment) api.Payment {
	return api.Payment{
		ID:        p.ID,
		From:      p.From,
		To:        p.To,
		Amount:    p.Amount,
		Note:      p.Note,
		CreatedAt: p.CreatedAt,
	}
}

// toAPILedger converts a ledger. Logs are included only when withLogs is set.
func toAPILedger(l *models.Ledger, withLogs bool) *api.Ledger {
	out := &api.Ledger{
		ID:           l.ID,
		Name:         l.Name,
		Currency:     l.Currency,
		Participants: l.Participants,
		CreatedAt:    l.CreatedAt,
	}
	if withLogs {
		out.Expenses = lo.Map(l.Expenses, func(e models.Expense, _ int) api.Expense { return toAPIExpense(e) })
		out.Payments = lo.Map(l.Payments, func(p models.Payment, _ int) api.Payment { return toAPIPayment(p) })
	}
	return out
}

func toAPISummary(currency string, s settlement.Summary) *api.Summary {
	return &api.Summary{
		Currency: currency,
		Balances: lo.Map(s.Balances, func(b settlement.Balance, _ int) api.Balance {
			return api.Balance{Participant: b.Participant, Paid: b.Paid, Owed: b.Owed, Net: b.Net}
		}),
		Transfers: lo.Map(s.Transfers, func(t settlement.Transfer, _ int) api.Transfer {
			return api.Transfer{From: t.From, To: t.To, Amount: t.Amount}
		}),
		Settled: s.Settled(),
	}
}

// newExpense validates an expense input against the participant list.
func newExpense(in api.ExpenseInput, participants []string) (settlement.Expense, error) {
	return settlement.NewExpense(in.Description, in.Amount, in.PaidBy, participants, settlement.SplitMode(in.SplitMode), in.Weights)
}

func newPayment(in api.PaymentInput, participants []string) (settlement.Payment, error) {
	return settlement.NewPayment(in.From, in.To, in.Amount, participants)
}
