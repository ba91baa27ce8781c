package service

import (
	"context"
	"fmt"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/tallyup/internal/settlement"
	"github.com/mmynk/tallyup/pkg/api"
	"github.com/mmynk/tallyup/pkg/api/apiconnect"
)

// CalculatorService runs the settlement engine on request data without
// touching storage.
type CalculatorService struct {
	logger *slog.Logger
}

var _ apiconnect.CalculatorServiceHandler = (*CalculatorService)(nil)

// NewCalculatorService creates a stateless calculator service.
func NewCalculatorService(logger *slog.Logger) *CalculatorService {
	return &CalculatorService{logger: logger}
}

// PreviewSplit shows how an amount would be divided.
func (s *CalculatorService) PreviewSplit(_ context.Context, req *connect.Request[api.PreviewSplitRequest]) (*connect.Response[api.PreviewSplitResponse], error) {
	if err := validate.Struct(req.Msg); err != nil {
		return nil, toConnectError(err)
	}
	participants := settlement.NormalizeParticipants(req.Msg.Participants)
	if len(participants) == 0 {
		return nil, toConnectError(fmt.Errorf("%w: no participants", settlement.ErrInvalidSplit))
	}

	// The payer has no effect on the shares.
	expense, err := newExpense(api.ExpenseInput{
		Amount:    req.Msg.Amount,
		PaidBy:    participants[0],
		SplitMode: req.Msg.SplitMode,
		Weights:   req.Msg.Weights,
	}, participants)
	if err != nil {
		return nil, toConnectError(err)
	}

	s.logger.Debug("PreviewSplit", "mode", expense.Mode, "amount", expense.Amount, "shares", expense.Shares.String())
	return connect.NewResponse(&api.PreviewSplitResponse{Shares: toAPIShares(expense.Shares)}), nil
}

// ComputeSettlement balances and settles an inline expense list.
func (s *CalculatorService) ComputeSettlement(_ context.Context, req *connect.Request[api.ComputeSettlementRequest]) (*connect.Response[api.ComputeSettlementResponse], error) {
	if err := validate.Struct(req.Msg); err != nil {
		return nil, toConnectError(err)
	}
	participants := settlement.NormalizeParticipants(req.Msg.Participants)

	expenses := make([]settlement.Expense, len(req.Msg.Expenses))
	for i, in := range req.Msg.Expenses {
		e, err := newExpense(in, participants)
		if err != nil {
			return nil, toConnectError(fmt.Errorf("expense %d: %w", i+1, err))
		}
		expenses[i] = e
	}
	payments := make([]settlement.Payment, len(req.Msg.Payments))
	for i, in := range req.Msg.Payments {
		p, err := newPayment(in, participants)
		if err != nil {
			return nil, toConnectError(fmt.Errorf("payment %d: %w", i+1, err))
		}
		payments[i] = p
	}

	summary, err := settlement.Summarize(participants, expenses, payments)
	if err != nil {
		return nil, toConnectError(err)
	}

	s.logger.Info("ComputeSettlement",
		"participants", len(participants),
		"expenses", len(expenses),
		"payments", len(payments),
		"transfers", len(summary.Transfers),
	)
	return connect.NewResponse(&api.ComputeSettlementResponse{Summary: toAPISummary("", summary)}), nil
}
