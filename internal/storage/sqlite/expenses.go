package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/tallyup/internal/models"
	"github.com/mmynk/tallyup/internal/settlement"
	"github.com/mmynk/tallyup/internal/storage"
)

// AppendExpense persists an expense at the end of its ledger's log.
func (s *SQLiteStore) AppendExpense(ctx context.Context, expense *models.Expense) error {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt == 0 {
		expense.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(seq), 0) + 1 FROM expenses WHERE ledger_id = ?",
		expense.LedgerID,
	).Scan(&expense.Seq)
	if err != nil {
		return fmt.Errorf("failed to allocate expense sequence: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO expenses (id, ledger_id, seq, description, amount, paid_by, split_mode, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		expense.ID, expense.LedgerID, expense.Seq, expense.Description,
		expense.Amount, expense.PaidBy, string(expense.Mode), expense.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	for i, share := range expense.Shares {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO expense_shares (expense_id, position, participant, amount) VALUES (?, ?, ?, ?)",
			expense.ID, i, share.Participant, share.Amount,
		)
		if err != nil {
			return fmt.Errorf("failed to insert expense share: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// RemoveLastExpense deletes the newest expense of a ledger.
func (s *SQLiteStore) RemoveLastExpense(ctx context.Context, ledgerID string) (*models.Expense, error) {
	expenses, err := s.loadExpenses(ctx, ledgerID)
	if err != nil {
		return nil, err
	}
	if len(expenses) == 0 {
		return nil, fmt.Errorf("expense log of ledger %s is empty: %w", ledgerID, storage.ErrNotFound)
	}
	last := expenses[len(expenses)-1]

	res, err := s.db.ExecContext(ctx, "DELETE FROM expenses WHERE id = ? AND ledger_id = ?", last.ID, ledgerID)
	if err != nil {
		return nil, fmt.Errorf("failed to delete expense: %w", err)
	}
	if err := expectAffected(res, "expense", last.ID); err != nil {
		return nil, err
	}
	return &last, nil
}

// ClearExpenses deletes every expense of a ledger.
func (s *SQLiteStore) ClearExpenses(ctx context.Context, ledgerID string) (int, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM expenses WHERE ledger_id = ?", ledgerID)
	if err != nil {
		return 0, fmt.Errorf("failed to clear expenses: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return int(n), nil
}

func (s *SQLiteStore) loadExpenses(ctx context.Context, ledgerID string) ([]models.Expense, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, ledger_id, seq, description, amount, paid_by, split_mode, created_at
		 FROM expenses WHERE ledger_id = ? ORDER BY seq`,
		ledgerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get expenses: %w", err)
	}
	defer rows.Close()

	var expenses []models.Expense
	for rows.Next() {
		var e models.Expense
		var mode string
		if err := rows.Scan(&e.ID, &e.LedgerID, &e.Seq, &e.Description, &e.Amount, &e.PaidBy, &mode, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		e.Mode = settlement.SplitMode(mode)
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}
	rows.Close()

	for i := range expenses {
		shares, err := s.loadShares(ctx, expenses[i].ID)
		if err != nil {
			return nil, err
		}
		expenses[i].Shares = shares
	}
	return expenses, nil
}

func (s *SQLiteStore) loadShares(ctx context.Context, expenseID string) (settlement.Shares, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT participant, amount FROM expense_shares WHERE expense_id = ? ORDER BY position",
		expenseID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get expense shares: %w", err)
	}
	defer rows.Close()

	var shares settlement.Shares
	for rows.Next() {
		var share settlement.Share
		if err := rows.Scan(&share.Participant, &share.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan expense share: %w", err)
		}
		shares = append(shares, share)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expense shares: %w", err)
	}
	return shares, nil
}
