package service

import (
	"context"
	"sync"
	"testing"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/tallyup/pkg/api"
)

func createLedger(t *testing.T, c testClients, token string, participants ...string) *api.Ledger {
	t.Helper()
	resp, err := c.ledgers.CreateLedger(context.Background(), authed(token, &api.CreateLedgerRequest{
		Name:         "Lisbon trip",
		Participants: participants,
	}))
	require.NoError(t, err)
	return resp.Msg.Ledger
}

func addExpense(t *testing.T, c testClients, token, ledgerID string, in api.ExpenseInput) *api.Expense {
	t.Helper()
	resp, err := c.ledgers.AddExpense(context.Background(), authed(token, &api.AddExpenseRequest{
		LedgerID: ledgerID,
		Expense:  in,
	}))
	require.NoError(t, err)
	return resp.Msg.Expense
}

func TestCreateLedger(t *testing.T) {
	c := setupTestServer(t)
	token := register(t, c, "ana@example.com")

	ledger := createLedger(t, c, token, " Ana ", "Ben", "ana", "", "Cy")
	assert.NotEmpty(t, ledger.ID)
	assert.Equal(t, "EUR", ledger.Currency, "default currency")
	assert.Equal(t, []string{"Ana", "Ben", "Cy"}, ledger.Participants)

	_, err := c.ledgers.CreateLedger(context.Background(), authed(token, &api.CreateLedgerRequest{
		Name:     "Bad",
		Currency: "XYZ",
	}))
	requireCode(t, err, connect.CodeInvalidArgument)

	_, err = c.ledgers.CreateLedger(context.Background(), authed(token, &api.CreateLedgerRequest{}))
	requireCode(t, err, connect.CodeInvalidArgument)
}

func TestLedger_RequiresAuth(t *testing.T) {
	c := setupTestServer(t)

	_, err := c.ledgers.ListLedgers(context.Background(), connect.NewRequest(&api.ListLedgersRequest{}))
	requireCode(t, err, connect.CodeUnauthenticated)

	_, err = c.ledgers.ListLedgers(context.Background(), authed("garbage", &api.ListLedgersRequest{}))
	requireCode(t, err, connect.CodeUnauthenticated)
}

func TestLedger_OwnerOnly(t *testing.T) {
	c := setupTestServer(t)
	ana := register(t, c, "ana@example.com")
	ben := register(t, c, "ben@example.com")
	ledger := createLedger(t, c, ana, "Ana", "Ben")

	_, err := c.ledgers.GetLedger(context.Background(), authed(ben, &api.GetLedgerRequest{LedgerID: ledger.ID}))
	requireCode(t, err, connect.CodePermissionDenied)

	_, err = c.ledgers.DeleteLedger(context.Background(), authed(ben, &api.DeleteLedgerRequest{LedgerID: ledger.ID}))
	requireCode(t, err, connect.CodePermissionDenied)

	list, err := c.ledgers.ListLedgers(context.Background(), authed(ben, &api.ListLedgersRequest{}))
	require.NoError(t, err)
	assert.Empty(t, list.Msg.Ledgers)

	_, err = c.ledgers.GetLedger(context.Background(), authed(ana, &api.GetLedgerRequest{LedgerID: "missing"}))
	requireCode(t, err, connect.CodeNotFound)
}

func TestListAndDeleteLedgers(t *testing.T) {
	c := setupTestServer(t)
	token := register(t, c, "ana@example.com")
	first := createLedger(t, c, token, "A", "B")
	createLedger(t, c, token, "C", "D")

	list, err := c.ledgers.ListLedgers(context.Background(), authed(token, &api.ListLedgersRequest{}))
	require.NoError(t, err)
	assert.Len(t, list.Msg.Ledgers, 2)

	_, err = c.ledgers.DeleteLedger(context.Background(), authed(token, &api.DeleteLedgerRequest{LedgerID: first.ID}))
	require.NoError(t, err)

	_, err = c.ledgers.GetLedger(context.Background(), authed(token, &api.GetLedgerRequest{LedgerID: first.ID}))
	requireCode(t, err, connect.CodeNotFound)
}

func TestExpenseLogAndSummary(t *testing.T) {
	c := setupTestServer(t)
	ctx := context.Background()
	token := register(t, c, "ana@example.com")
	ledger := createLedger(t, c, token, "A", "B", "C")

	e := addExpense(t, c, token, ledger.ID, api.ExpenseInput{Description: "Pizza", Amount: d("10"), PaidBy: "c"})
	assert.Equal(t, 1, e.Seq)
	assert.Equal(t, "C", e.PaidBy, "payer name is canonicalised")
	assert.Equal(t, "equal", e.SplitMode)
	require.Len(t, e.Shares, 3)
	assertAmount(t, "3.34", e.Shares[2].Amount)

	addExpense(t, c, token, ledger.ID, api.ExpenseInput{
		Description: "Hotel",
		Amount:      d("90"),
		PaidBy:      "C",
		SplitMode:   "shares",
		Weights:     map[string]decimal.Decimal{"A": d("2"), "B": d("1")},
	})

	resp, err := c.ledgers.GetSummary(ctx, authed(token, &api.GetSummaryRequest{LedgerID: ledger.ID}))
	require.NoError(t, err)
	s := resp.Msg.Summary
	assert.Equal(t, "EUR", s.Currency)
	require.Len(t, s.Balances, 3)
	assertAmount(t, "-63.33", s.Balances[0].Net)
	assertAmount(t, "-33.33", s.Balances[1].Net)
	assertAmount(t, "96.66", s.Balances[2].Net)
	assertAmount(t, "100.00", s.Balances[2].Paid)
	assertAmount(t, "3.34", s.Balances[2].Owed)

	require.Len(t, s.Transfers, 2)
	assert.Equal(t, api.Transfer{From: "A", To: "C", Amount: s.Transfers[0].Amount}, s.Transfers[0])
	assertAmount(t, "63.33", s.Transfers[0].Amount)
	assertAmount(t, "33.33", s.Transfers[1].Amount)

	undo, err := c.ledgers.UndoLastExpense(ctx, authed(token, &api.UndoLastExpenseRequest{LedgerID: ledger.ID}))
	require.NoError(t, err)
	assert.Equal(t, "Hotel", undo.Msg.Removed.Description)

	got, err := c.ledgers.GetLedger(ctx, authed(token, &api.GetLedgerRequest{LedgerID: ledger.ID}))
	require.NoError(t, err)
	require.Len(t, got.Msg.Ledger.Expenses, 1)
	assert.Equal(t, "Pizza", got.Msg.Ledger.Expenses[0].Description)

	cleared, err := c.ledgers.ClearExpenses(ctx, authed(token, &api.ClearExpensesRequest{LedgerID: ledger.ID}))
	require.NoError(t, err)
	assert.Equal(t, 1, cleared.Msg.Removed)

	_, err = c.ledgers.UndoLastExpense(ctx, authed(token, &api.UndoLastExpenseRequest{LedgerID: ledger.ID}))
	requireCode(t, err, connect.CodeNotFound)

	resp, err = c.ledgers.GetSummary(ctx, authed(token, &api.GetSummaryRequest{LedgerID: ledger.ID}))
	require.NoError(t, err)
	assert.True(t, resp.Msg.Summary.Settled)
	assert.Empty(t, resp.Msg.Summary.Transfers)
}

func TestAddExpense_RejectedLeavesLogUntouched(t *testing.T) {
	c := setupTestServer(t)
	ctx := context.Background()
	token := register(t, c, "ana@example.com")
	ledger := createLedger(t, c, token, "A", "B")

	tests := []struct {
		name string
		in   api.ExpenseInput
	}{
		{name: "zero amount", in: api.ExpenseInput{Amount: d("0"), PaidBy: "A"}},
		{name: "unknown payer", in: api.ExpenseInput{Amount: d("5"), PaidBy: "Zed"}},
		{name: "missing payer", in: api.ExpenseInput{Amount: d("5")}},
		{name: "negative weight", in: api.ExpenseInput{Amount: d("5"), PaidBy: "A", SplitMode: "shares",
			Weights: map[string]decimal.Decimal{"B": d("-1")}}},
		{name: "unknown weight holder", in: api.ExpenseInput{Amount: d("5"), PaidBy: "A", SplitMode: "exact",
			Weights: map[string]decimal.Decimal{"Zed": d("5")}}},
		{name: "bad mode", in: api.ExpenseInput{Amount: d("5"), PaidBy: "A", SplitMode: "thirds"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.ledgers.AddExpense(ctx, authed(token, &api.AddExpenseRequest{LedgerID: ledger.ID, Expense: tt.in}))
			requireCode(t, err, connect.CodeInvalidArgument)
		})
	}

	got, err := c.ledgers.GetLedger(ctx, authed(token, &api.GetLedgerRequest{LedgerID: ledger.ID}))
	require.NoError(t, err)
	assert.Empty(t, got.Msg.Ledger.Expenses)
}

func TestSetParticipants(t *testing.T) {
	c := setupTestServer(t)
	ctx := context.Background()
	token := register(t, c, "ana@example.com")
	ledger := createLedger(t, c, token, "A", "B", "C")
	addExpense(t, c, token, ledger.ID, api.ExpenseInput{Amount: d("10"), PaidBy: "A", SplitMode: "exact",
		Weights: map[string]decimal.Decimal{"A": d("5"), "B": d("5")}})

	resp, err := c.ledgers.SetParticipants(ctx, authed(token, &api.SetParticipantsRequest{
		LedgerID:     ledger.ID,
		Participants: []string{"A", "B", "C", "Dee", "dee"},
	}))
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C", "Dee"}, resp.Msg.Participants)

	// C holds a zero share of the expense, so it still counts as referenced.
	_, err = c.ledgers.SetParticipants(ctx, authed(token, &api.SetParticipantsRequest{
		LedgerID:     ledger.ID,
		Participants: []string{"A", "B", "Dee"},
	}))
	requireCode(t, err, connect.CodeFailedPrecondition)

	got, err := c.ledgers.GetLedger(ctx, authed(token, &api.GetLedgerRequest{LedgerID: ledger.ID}))
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C", "Dee"}, got.Msg.Ledger.Participants)

	// Renaming A to a changes only the case, so a is still the logged payer.
	_, err = c.ledgers.SetParticipants(ctx, authed(token, &api.SetParticipantsRequest{
		LedgerID:     ledger.ID,
		Participants: []string{"a", "B", "C"},
	}))
	require.NoError(t, err)
	_, err = c.ledgers.SetParticipants(ctx, authed(token, &api.SetParticipantsRequest{
		LedgerID:     ledger.ID,
		Participants: []string{"B", "C"},
	}))
	requireCode(t, err, connect.CodeFailedPrecondition)

	_, err = c.ledgers.GetSummary(ctx, authed(token, &api.GetSummaryRequest{LedgerID: ledger.ID}))
	require.NoError(t, err)
}

func TestSetParticipants_ConcurrentWithAddExpense(t *testing.T) {
	c := setupTestServer(t)
	ctx := context.Background()
	token := register(t, c, "ana@example.com")

	for i := 0; i < 10; i++ {
		ledger := createLedger(t, c, token, "A", "B", "C")

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = c.ledgers.AddExpense(ctx, authed(token, &api.AddExpenseRequest{
				LedgerID: ledger.ID,
				Expense:  api.ExpenseInput{Amount: d("30"), PaidBy: "C"},
			}))
		}()
		go func() {
			defer wg.Done()
			_, _ = c.ledgers.SetParticipants(ctx, authed(token, &api.SetParticipantsRequest{
				LedgerID:     ledger.ID,
				Participants: []string{"A", "B"},
			}))
		}()
		wg.Wait()

		// Whichever call ran second must have been rejected.
		_, err := c.ledgers.GetSummary(ctx, authed(token, &api.GetSummaryRequest{LedgerID: ledger.ID}))
		require.NoError(t, err)
	}
}

func TestPayments(t *testing.T) {
	c := setupTestServer(t)
	ctx := context.Background()
	token := register(t, c, "ana@example.com")
	ledger := createLedger(t, c, token, "A", "B")
	addExpense(t, c, token, ledger.ID, api.ExpenseInput{Amount: d("40"), PaidBy: "A"})

	paid, err := c.ledgers.RecordPayment(ctx, authed(token, &api.RecordPaymentRequest{
		LedgerID: ledger.ID,
		Payment:  api.PaymentInput{From: "b", To: "A", Amount: d("15"), Note: " cash "},
	}))
	require.NoError(t, err)
	assert.NotEmpty(t, paid.Msg.Payment.ID)
	assert.Equal(t, "B", paid.Msg.Payment.From)
	assert.Equal(t, "cash", paid.Msg.Payment.Note)

	summary, err := c.ledgers.GetSummary(ctx, authed(token, &api.GetSummaryRequest{LedgerID: ledger.ID}))
	require.NoError(t, err)
	require.Len(t, summary.Msg.Summary.Transfers, 1)
	assertAmount(t, "5.00", summary.Msg.Summary.Transfers[0].Amount)

	_, err = c.ledgers.RecordPayment(ctx, authed(token, &api.RecordPaymentRequest{
		LedgerID: ledger.ID,
		Payment:  api.PaymentInput{From: "A", To: "A", Amount: d("1")},
	}))
	requireCode(t, err, connect.CodeInvalidArgument)

	_, err = c.ledgers.DeletePayment(ctx, authed(token, &api.DeletePaymentRequest{
		LedgerID:  ledger.ID,
		PaymentID: paid.Msg.Payment.ID,
	}))
	require.NoError(t, err)

	_, err = c.ledgers.DeletePayment(ctx, authed(token, &api.DeletePaymentRequest{
		LedgerID:  ledger.ID,
		PaymentID: paid.Msg.Payment.ID,
	}))
	requireCode(t, err, connect.CodeNotFound)

	summary, err = c.ledgers.GetSummary(ctx, authed(token, &api.GetSummaryRequest{LedgerID: ledger.ID}))
	require.NoError(t, err)
	assertAmount(t, "20.00", summary.Msg.Summary.Transfers[0].Amount)
}

func TestExportCSV(t *testing.T) {
	c := setupTestServer(t)
	ctx := context.Background()
	token := register(t, c, "ana@example.com")
	ledger := createLedger(t, c, token, "A", "B", "C")
	addExpense(t, c, token, ledger.ID, api.ExpenseInput{Description: "Dinner", Amount: d("30"), PaidBy: "C"})

	transfers, err := c.ledgers.ExportCSV(ctx, authed(token, &api.ExportCSVRequest{LedgerID: ledger.ID}))
	require.NoError(t, err)
	assert.Equal(t, "settlements.csv", transfers.Msg.Filename)
	assert.Equal(t, "From,To,Amount (EUR)\nA,C,10.00\nB,C,10.00\n", transfers.Msg.Content)

	expenses, err := c.ledgers.ExportCSV(ctx, authed(token, &api.ExportCSVRequest{
		LedgerID: ledger.ID,
		Kind:     api.ExportExpenses,
	}))
	require.NoError(t, err)
	assert.Equal(t, "expenses.csv", expenses.Msg.Filename)
	assert.Equal(t,
		"Description,Amount (EUR),Paid by,Split,Per-person\nDinner,30.00,C,Equally,\"A: 10.00, B: 10.00, C: 10.00\"\n",
		expenses.Msg.Content)

	_, err = c.ledgers.ExportCSV(ctx, authed(token, &api.ExportCSVRequest{LedgerID: ledger.ID, Kind: "pdf"}))
	requireCode(t, err, connect.CodeInvalidArgument)
}
