package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lumeo/lumeo/internal/model"
)

// Ledger errors.
var (
	ErrInsufficientCredits = errors.New("insufficient credits")
	ErrInvalidAmount       = errors.New("invalid transaction amount")
)

// AppendTransaction inserts an immutable ledger entry and adjusts the
// owning user's credit counters in a single database transaction. Either
// both writes apply or neither does.
//
// The balance guard runs inside the UPDATE itself, so concurrent appends
// for the same user cannot overdraw: the row lock serializes them and the
// WHERE clause rejects the one that would go negative.
func (r *Repository) AppendTransaction(ctx context.Context, entry *model.CreditTransaction) error {
	if entry.Amount == 0 {
		return ErrInvalidAmount
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin ledger transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	insert := `
		INSERT INTO credit_transactions (id, user_id, amount, type, action, job_id, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err = tx.Exec(ctx, insert,
		entry.ID,
		entry.UserID,
		entry.Amount,
		entry.Type,
		entry.Action,
		entry.JobID,
		entry.Description,
		entry.CreatedAt,
	)
	if err != nil {
		// The FK on user_id rejects entries for nonexistent users before
		// the counter update runs.
		if isForeignKeyViolation(err) {
			return ErrUserNotFound
		}
		return fmt.Errorf("insert ledger entry: %w", err)
	}

	// Debits accumulate into credits_used; credits (purchase, refund,
	// bonus) only restore the balance.
	usedDelta := 0
	if entry.Amount < 0 {
		usedDelta = -entry.Amount
	}

	update := `
		UPDATE users
		SET credits_balance = credits_balance + $1,
		    credits_used = credits_used + $2,
		    updated_at = now()
		WHERE id = $3 AND credits_balance + $1 >= 0
	`
	tag, err := tx.Exec(ctx, update, entry.Amount, usedDelta, entry.UserID)
	if err != nil {
		if isCheckViolation(err) {
			return ErrInsufficientCredits
		}
		return fmt.Errorf("update credit counters: %w", err)
	}

	if tag.RowsAffected() == 0 {
		// The insert's FK already proved the user exists, so a zero-row
		// update can only mean the balance guard rejected an overdraft.
		return ErrInsufficientCredits
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit ledger transaction: %w", err)
	}

	return nil
}

// ListTransactions returns a user's ledger entries, newest first.
func (r *Repository) ListTransactions(ctx context.Context, userID string, limit int) ([]*model.CreditTransaction, error) {
	query := `
		SELECT id, user_id, amount, type, action, job_id, description, created_at
		FROM credit_transactions
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var entries []*model.CreditTransaction
	for rows.Next() {
		var e model.CreditTransaction
		err := rows.Scan(
			&e.ID,
			&e.UserID,
			&e.Amount,
			&e.Type,
			&e.Action,
			&e.JobID,
			&e.Description,
			&e.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		entries = append(entries, &e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transactions: %w", err)
	}

	return entries, nil
}

// SumTransactions returns the signed sum of all ledger entries for a user.
// Used by reconciliation checks: the sum must equal the user's current
// credits_balance because the signup grant is itself a ledger entry.
func (r *Repository) SumTransactions(ctx context.Context, userID string) (int, error) {
	var sum int
	query := `SELECT COALESCE(SUM(amount), 0) FROM credit_transactions WHERE user_id = $1`
	if err := r.pool.QueryRow(ctx, query, userID).Scan(&sum); err != nil {
		return 0, fmt.Errorf("failed to sum transactions: %w", err)
	}
	return sum, nil
}
