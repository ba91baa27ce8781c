package service

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"connectrpc.com/connect"
	"github.com/samber/lo"

	"github.com/mmynk/tallyup/internal/auth"
	"github.com/mmynk/tallyup/internal/export"
	"github.com/mmynk/tallyup/internal/middleware"
	"github.com/mmynk/tallyup/internal/models"
	"github.com/mmynk/tallyup/internal/settlement"
	"github.com/mmynk/tallyup/internal/storage"
	"github.com/mmynk/tallyup/pkg/api"
	"github.com/mmynk/tallyup/pkg/api/apiconnect"
)

// LedgerService implements the Connect LedgerService. Every call requires an
// authenticated user, and a ledger is visible only to its owner.
type LedgerService struct {
	store           storage.LedgerStore
	defaultCurrency string
	logger          *slog.Logger

	// locks holds a *sync.Mutex per ledger ID. Calls that validate against
	// the stored ledger before writing hold it across both steps.
	locks sync.Map
}

var _ apiconnect.LedgerServiceHandler = (*LedgerService)(nil)

// NewLedgerService creates a LedgerService. defaultCurrency labels ledgers
// created without one.
func NewLedgerService(store storage.LedgerStore, defaultCurrency string, logger *slog.Logger) *LedgerService {
	return &LedgerService{store: store, defaultCurrency: defaultCurrency, logger: logger}
}

func requireUser(ctx context.Context) (string, error) {
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		return "", connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}
	return userID, nil
}

// lockLedger serializes read-validate-write calls on one ledger. Call the
// returned function to release it.
func (s *LedgerService) lockLedger(ledgerID string) func() {
	mu, _ := s.locks.LoadOrStore(ledgerID, &sync.Mutex{})
	m := mu.(*sync.Mutex)
	m.Lock()
	return m.Unlock
}

// loadOwned fetches a ledger and checks that the caller owns it.
func (s *LedgerService) loadOwned(ctx context.Context, ledgerID string) (*models.Ledger, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	ledger, err := s.store.GetLedger(ctx, ledgerID)
	if err != nil {
		return nil, toConnectError(err)
	}
	if ledger.OwnerID != userID {
		s.logger.Warn("Ledger access denied", "ledger_id", ledgerID, "user_id", userID)
		return nil, toConnectError(ErrNotOwner)
	}
	return ledger, nil
}

// CreateLedger creates a ledger owned by the caller.
func (s *LedgerService) CreateLedger(ctx context.Context, req *connect.Request[api.CreateLedgerRequest]) (*connect.Response[api.CreateLedgerResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	if err := validate.Struct(req.Msg); err != nil {
		return nil, toConnectError(err)
	}

	currency := strings.ToUpper(strings.TrimSpace(req.Msg.Currency))
	if currency == "" {
		currency = s.defaultCurrency
	}
	if !models.IsCurrency(currency) {
		return nil, connect.NewError(connect.CodeInvalidArgument,
			fmt.Errorf("unsupported currency %q, use one of %s", currency, strings.Join(models.Currencies, ", ")))
	}

	ledger := &models.Ledger{
		OwnerID:      userID,
		Name:         strings.TrimSpace(req.Msg.Name),
		Currency:     currency,
		Participants: settlement.NormalizeParticipants(req.Msg.Participants),
	}
	if err := s.store.CreateLedger(ctx, ledger); err != nil {
		s.logger.Error("CreateLedger failed", "error", err)
		return nil, toConnectError(err)
	}

	s.logger.Info("Ledger created", "ledger_id", ledger.ID, "participants", len(ledger.Participants))
	return connect.NewResponse(&api.CreateLedgerResponse{Ledger: toAPILedger(ledger, true)}), nil
}

// GetLedger returns a ledger with its expense and payment logs.
func (s *LedgerService) GetLedger(ctx context.Context, req *connect.Request[api.GetLedgerRequest]) (*connect.Response[api.GetLedgerResponse], error) {
	ledger, err := s.loadOwned(ctx, req.Msg.LedgerID)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(&api.GetLedgerResponse{Ledger: toAPILedger(ledger, true)}), nil
}

// ListLedgers returns the caller's ledgers, newest first.
func (s *LedgerService) ListLedgers(ctx context.Context, _ *connect.Request[api.ListLedgersRequest]) (*connect.Response[api.ListLedgersResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	ledgers, err := s.store.ListLedgersByOwner(ctx, userID)
	if err != nil {
		s.logger.Error("ListLedgers failed", "user_id", userID, "error", err)
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.ListLedgersResponse{
		Ledgers: lo.Map(ledgers, func(l *models.Ledger, _ int) *api.Ledger { return toAPILedger(l, false) }),
	}), nil
}

// DeleteLedger removes a ledger and its logs.
func (s *LedgerService) DeleteLedger(ctx context.Context, req *connect.Request[api.DeleteLedgerRequest]) (*connect.Response[api.DeleteLedgerResponse], error) {
	ledger, err := s.loadOwned(ctx, req.Msg.LedgerID)
	if err != nil {
		return nil, err
	}
	if err := s.store.DeleteLedger(ctx, ledger.ID); err != nil {
		return nil, toConnectError(err)
	}
	s.logger.Info("Ledger deleted", "ledger_id", ledger.ID)
	return connect.NewResponse(&api.DeleteLedgerResponse{}), nil
}

// SetParticipants replaces the participant list. Participants still named by
// an expense or payment cannot be dropped.
func (s *LedgerService) SetParticipants(ctx context.Context, req *connect.Request[api.SetParticipantsRequest]) (*connect.Response[api.SetParticipantsResponse], error) {
	defer s.lockLedger(req.Msg.LedgerID)()

	ledger, err := s.loadOwned(ctx, req.Msg.LedgerID)
	if err != nil {
		return nil, err
	}

	next := settlement.NormalizeParticipants(req.Msg.Participants)
	if err := ledger.CheckParticipants(next); err != nil {
		return nil, toConnectError(err)
	}
	if err := s.store.SetParticipants(ctx, ledger.ID, next); err != nil {
		return nil, toConnectError(err)
	}

	s.logger.Info("Participants updated", "ledger_id", ledger.ID, "count", len(next))
	return connect.NewResponse(&api.SetParticipantsResponse{Participants: next}), nil
}

// AddExpense validates and appends an expense. Rejected expenses leave the
// log untouched.
func (s *LedgerService) AddExpense(ctx context.Context, req *connect.Request[api.AddExpenseRequest]) (*connect.Response[api.AddExpenseResponse], error) {
	defer s.lockLedger(req.Msg.LedgerID)()

	ledger, err := s.loadOwned(ctx, req.Msg.LedgerID)
	if err != nil {
		return nil, err
	}
	if err := validate.Struct(req.Msg); err != nil {
		return nil, toConnectError(err)
	}

	e, err := newExpense(req.Msg.Expense, ledger.Participants)
	if err != nil {
		s.logger.Warn("AddExpense rejected", "ledger_id", ledger.ID, "error", err)
		return nil, toConnectError(err)
	}

	expense := &models.Expense{LedgerID: ledger.ID, Expense: e}
	if err := s.store.AppendExpense(ctx, expense); err != nil {
		s.logger.Error("AddExpense failed", "ledger_id", ledger.ID, "error", err)
		return nil, toConnectError(err)
	}

	s.logger.Info("Expense added",
		"ledger_id", ledger.ID,
		"seq", expense.Seq,
		"amount", expense.Amount,
		"mode", expense.Mode,
	)
	out := toAPIExpense(*expense)
	return connect.NewResponse(&api.AddExpenseResponse{Expense: &out}), nil
}

// UndoLastExpense removes the newest expense.
func (s *LedgerService) UndoLastExpense(ctx context.Context, req *connect.Request[api.UndoLastExpenseRequest]) (*connect.Response[api.UndoLastExpenseResponse], error) {
	ledger, err := s.loadOwned(ctx, req.Msg.LedgerID)
	if err != nil {
		return nil, err
	}
	removed, err := s.store.RemoveLastExpense(ctx, ledger.ID)
	if err != nil {
		return nil, toConnectError(err)
	}

	s.logger.Info("Expense undone", "ledger_id", ledger.ID, "seq", removed.Seq)
	out := toAPIExpense(*removed)
	return connect.NewResponse(&api.UndoLastExpenseResponse{Removed: &out}), nil
}

// ClearExpenses empties the expense log. Payments are kept.
func (s *LedgerService) ClearExpenses(ctx context.Context, req *connect.Request[api.ClearExpensesRequest]) (*connect.Response[api.ClearExpensesResponse], error) {
	ledger, err := s.loadOwned(ctx, req.Msg.LedgerID)
	if err != nil {
		return nil, err
	}
	n, err := s.store.ClearExpenses(ctx, ledger.ID)
	if err != nil {
		return nil, toConnectError(err)
	}
	s.logger.Info("Expenses cleared", "ledger_id", ledger.ID, "removed", n)
	return connect.NewResponse(&api.ClearExpensesResponse{Removed: n}), nil
}

// RecordPayment logs money handed from one participant to another.
func (s *LedgerService) RecordPayment(ctx context.Context, req *connect.Request[api.RecordPaymentRequest]) (*connect.Response[api.RecordPaymentResponse], error) {
	defer s.lockLedger(req.Msg.LedgerID)()

	ledger, err := s.loadOwned(ctx, req.Msg.LedgerID)
	if err != nil {
		return nil, err
	}
	if err := validate.Struct(req.Msg); err != nil {
		return nil, toConnectError(err)
	}

	p, err := newPayment(req.Msg.Payment, ledger.Participants)
	if err != nil {
		return nil, toConnectError(err)
	}
	payment := &models.Payment{
		LedgerID:  ledger.ID,
		Payment:   p,
		Note:      strings.TrimSpace(req.Msg.Payment.Note),
		CreatedBy: ledger.OwnerID,
	}
	if err := s.store.CreatePayment(ctx, payment); err != nil {
		s.logger.Error("RecordPayment failed", "ledger_id", ledger.ID, "error", err)
		return nil, toConnectError(err)
	}

	s.logger.Info("Payment recorded", "ledger_id", ledger.ID, "from", p.From, "to", p.To, "amount", p.Amount)
	out := toAPIPayment(*payment)
	return connect.NewResponse(&api.RecordPaymentResponse{Payment: &out}), nil
}

// DeletePayment removes a recorded payment.
func (s *LedgerService) DeletePayment(ctx context.Context, req *connect.Request[api.DeletePaymentRequest]) (*connect.Response[api.DeletePaymentResponse], error) {
	ledger, err := s.loadOwned(ctx, req.Msg.LedgerID)
	if err != nil {
		return nil, err
	}
	if err := s.store.DeletePayment(ctx, ledger.ID, req.Msg.PaymentID); err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.DeletePaymentResponse{}), nil
}

// GetSummary recomputes balances and transfers from the ledger's logs.
func (s *LedgerService) GetSummary(ctx context.Context, req *connect.Request[api.GetSummaryRequest]) (*connect.Response[api.GetSummaryResponse], error) {
	ledger, err := s.loadOwned(ctx, req.Msg.LedgerID)
	if err != nil {
		return nil, err
	}
	summary, err := ledger.Summary()
	if err != nil {
		s.logger.Error("GetSummary failed", "ledger_id", ledger.ID, "error", err)
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.GetSummaryResponse{Summary: toAPISummary(ledger.Currency, summary)}), nil
}

// ExportCSV renders the transfers (default) or the expense log as CSV.
func (s *LedgerService) ExportCSV(ctx context.Context, req *connect.Request[api.ExportCSVRequest]) (*connect.Response[api.ExportCSVResponse], error) {
	if err := validate.Struct(req.Msg); err != nil {
		return nil, toConnectError(err)
	}
	ledger, err := s.loadOwned(ctx, req.Msg.LedgerID)
	if err != nil {
		return nil, err
	}

	var (
		buf      bytes.Buffer
		filename string
	)
	switch req.Msg.Kind {
	case api.ExportExpenses:
		filename = export.ExpensesFilename
		expenses := lo.Map(ledger.Expenses, func(e models.Expense, _ int) settlement.Expense { return e.Expense })
		err = export.WriteExpenses(&buf, ledger.Currency, expenses)
	default:
		filename = export.TransfersFilename
		var summary settlement.Summary
		if summary, err = ledger.Summary(); err == nil {
			err = export.WriteTransfers(&buf, ledger.Currency, summary.Transfers)
		}
	}
	if err != nil {
		s.logger.Error("ExportCSV failed", "ledger_id", ledger.ID, "error", err)
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.ExportCSVResponse{Filename: filename, Content: buf.String()}), nil
}
