package expense

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/splitledger/splitledger/internal/ledger"
	"github.com/splitledger/splitledger/pkg/money"
)

// Repository handles expense data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new expense repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// CreateWithSplits inserts an expense and its resolved splits in one
// transaction, so a committed expense always conserves its amount.
func (r *Repository) CreateWithSplits(ctx context.Context, req *CreateExpenseRequest, resolved []ledger.Split, percentages map[int64]decimal.Decimal) (*ExpenseWithSplits, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	expense := &Expense{}
	query := `
		INSERT INTO expenses (group_id, description, amount_cents, paid_by, split_type)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, group_id, description, amount_cents, paid_by, split_type, created_at
	`
	if err := tx.QueryRowContext(ctx, query,
		req.GroupID, req.Description, int64(req.Amount), req.PaidBy, req.SplitType,
	).Scan(
		&expense.ID,
		&expense.GroupID,
		&expense.Description,
		&expense.Amount,
		&expense.PaidBy,
		&expense.SplitType,
		&expense.CreatedAt,
	); err != nil {
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}

	splitQuery := `
		INSERT INTO splits (expense_id, user_id, percentage, amount_owed_cents)
		VALUES ($1, $2, $3, $4)
		RETURNING id, expense_id, user_id, percentage, amount_owed_cents
	`
	splits := make([]*Split, len(resolved))
	for i, rs := range resolved {
		var pct decimal.NullDecimal
		if p, ok := percentages[rs.UserID]; ok {
			pct = decimal.NullDecimal{Decimal: p, Valid: true}
		}

		split := &Split{}
		if err := tx.QueryRowContext(ctx, splitQuery,
			expense.ID, rs.UserID, pct, int64(rs.AmountOwed),
		).Scan(
			&split.ID,
			&split.ExpenseID,
			&split.UserID,
			&split.Percentage,
			&split.AmountOwed,
		); err != nil {
			return nil, fmt.Errorf("failed to create split for user %d: %w", rs.UserID, err)
		}
		splits[i] = split
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit expense creation: %w", err)
	}

	return &ExpenseWithSplits{Expense: expense, Splits: splits}, nil
}

// GetByID retrieves an expense by its ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*Expense, error) {
	query := `
		SELECT e.id, e.group_id, e.description, e.amount_cents, e.paid_by, e.split_type, e.created_at, u.name
		FROM expenses e
		JOIN users u ON u.id = e.paid_by
		WHERE e.id = $1
	`

	expense := &Expense{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&expense.ID,
		&expense.GroupID,
		&expense.Description,
		&expense.Amount,
		&expense.PaidBy,
		&expense.SplitType,
		&expense.CreatedAt,
		&expense.PayerName,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}

	return expense, nil
}

// GetSplitsByExpenseID retrieves the splits of an expense
func (r *Repository) GetSplitsByExpenseID(ctx context.Context, expenseID int64) ([]*Split, error) {
	query := `
		SELECT s.id, s.expense_id, s.user_id, s.percentage, s.amount_owed_cents, u.name
		FROM splits s
		JOIN users u ON u.id = s.user_id
		WHERE s.expense_id = $1
		ORDER BY s.user_id
	`

	rows, err := r.db.QueryContext(ctx, query, expenseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get splits: %w", err)
	}
	defer rows.Close()

	var splits []*Split
	for rows.Next() {
		split := &Split{}
		if err := rows.Scan(
			&split.ID,
			&split.ExpenseID,
			&split.UserID,
			&split.Percentage,
			&split.AmountOwed,
			&split.UserName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan split: %w", err)
		}
		splits = append(splits, split)
	}

	return splits, nil
}

// ListByGroupID retrieves expenses for a group with pagination
func (r *Repository) ListByGroupID(ctx context.Context, groupID int64, limit, offset int) ([]*Expense, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM expenses WHERE group_id = $1`
	if err := r.db.QueryRowContext(ctx, countQuery, groupID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count expenses: %w", err)
	}

	query := `
		SELECT e.id, e.group_id, e.description, e.amount_cents, e.paid_by, e.split_type, e.created_at, u.name
		FROM expenses e
		JOIN users u ON u.id = e.paid_by
		WHERE e.group_id = $1
		ORDER BY e.created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.QueryContext(ctx, query, groupID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*Expense
	for rows.Next() {
		expense := &Expense{}
		if err := rows.Scan(
			&expense.ID,
			&expense.GroupID,
			&expense.Description,
			&expense.Amount,
			&expense.PaidBy,
			&expense.SplitType,
			&expense.CreatedAt,
			&expense.PayerName,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, expense)
	}

	return expenses, total, nil
}

// Delete removes an expense and its splits
func (r *Repository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrExpenseNotFound
	}

	return nil
}

// LedgerExpensesByGroup loads a group's committed expenses in the shape the
// ledger engine aggregates: id, payer, amount and resolved splits.
func (r *Repository) LedgerExpensesByGroup(ctx context.Context, groupID int64) ([]ledger.Expense, error) {
	query := `
		SELECT e.id, e.paid_by, e.amount_cents, s.user_id, s.amount_owed_cents
		FROM expenses e
		JOIN splits s ON s.expense_id = e.id
		WHERE e.group_id = $1
		ORDER BY e.id, s.user_id
	`
	return r.scanLedgerExpenses(ctx, query, groupID)
}

// AllLedgerExpenses loads every committed expense across all groups for
// global balance aggregation.
func (r *Repository) AllLedgerExpenses(ctx context.Context) ([]ledger.Expense, error) {
	query := `
		SELECT e.id, e.paid_by, e.amount_cents, s.user_id, s.amount_owed_cents
		FROM expenses e
		JOIN splits s ON s.expense_id = e.id
		ORDER BY e.id, s.user_id
	`
	return r.scanLedgerExpenses(ctx, query)
}

func (r *Repository) scanLedgerExpenses(ctx context.Context, query string, args ...interface{}) ([]ledger.Expense, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger expenses: %w", err)
	}
	defer rows.Close()

	var expenses []ledger.Expense
	var current *ledger.Expense
	for rows.Next() {
		var (
			id, paidBy, userID     int64
			amountCents, owedCents int64
		)
		if err := rows.Scan(&id, &paidBy, &amountCents, &userID, &owedCents); err != nil {
			return nil, fmt.Errorf("failed to scan ledger expense: %w", err)
		}

		if current == nil || current.ID != id {
			expenses = append(expenses, ledger.Expense{
				ID:     id,
				PaidBy: paidBy,
				Amount: money.Amount(amountCents),
			})
			current = &expenses[len(expenses)-1]
		}
		current.Splits = append(current.Splits, ledger.Split{
			UserID:     userID,
			AmountOwed: money.Amount(owedCents),
		})
	}

	return expenses, nil
}
