package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/lumeo/lumeo/internal/model"
)

// Common errors for user repository operations.
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrIdentityKeyExists = errors.New("identity key already exists")
)

const userColumns = `
	id, identity_key, email, name, avatar_url, plan,
	credits_balance, credits_used, billing_customer_id, password_hash,
	created_at, updated_at
`

// CreateUser inserts a new user into the database.
func (r *Repository) CreateUser(ctx context.Context, user *model.User) error {
	query := `
		INSERT INTO users (
			id, identity_key, email, name, avatar_url, plan,
			credits_balance, credits_used, billing_customer_id, password_hash,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.pool.Exec(ctx, query,
		user.ID,
		user.IdentityKey,
		user.Email,
		user.Name,
		user.AvatarURL,
		user.Plan,
		user.CreditsBalance,
		user.CreditsUsed,
		user.BillingCustomerID,
		user.PasswordHash,
		user.CreatedAt,
		user.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return ErrIdentityKeyExists
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

func scanUser(row pgx.Row) (*model.User, error) {
	var user model.User
	err := row.Scan(
		&user.ID,
		&user.IdentityKey,
		&user.Email,
		&user.Name,
		&user.AvatarURL,
		&user.Plan,
		&user.CreditsBalance,
		&user.CreditsUsed,
		&user.BillingCustomerID,
		&user.PasswordHash,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetUserByID retrieves a user by their ID.
func (r *Repository) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}
	return user, nil
}

// GetUserByIdentityKey retrieves a user by their external identity key.
func (r *Repository) GetUserByIdentityKey(ctx context.Context, identityKey string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE identity_key = $1`

	user, err := scanUser(r.pool.QueryRow(ctx, query, identityKey))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get user by identity key: %w", err)
	}
	return user, nil
}

// GetUserByEmail retrieves a user by their email address.
// When several records share an email the oldest record wins.
func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1 ORDER BY created_at ASC LIMIT 1`

	user, err := scanUser(r.pool.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return user, nil
}

// ProvisionUser inserts a new user together with its signup grant ledger
// entry in a single database transaction. The grant entry's amount becomes
// the user's starting balance, so the ledger reconciles from day one.
// Pass a nil grant to provision with a zero balance and no ledger entry.
func (r *Repository) ProvisionUser(ctx context.Context, user *model.User, grant *model.CreditTransaction) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin provisioning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	user.CreditsBalance = 0
	user.CreditsUsed = 0
	if grant != nil {
		user.CreditsBalance = grant.Amount
	}

	insert := `
		INSERT INTO users (
			id, identity_key, email, name, avatar_url, plan,
			credits_balance, credits_used, billing_customer_id, password_hash,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err = tx.Exec(ctx, insert,
		user.ID,
		user.IdentityKey,
		user.Email,
		user.Name,
		user.AvatarURL,
		user.Plan,
		user.CreditsBalance,
		user.CreditsUsed,
		user.BillingCustomerID,
		user.PasswordHash,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrIdentityKeyExists
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	if grant != nil {
		grantInsert := `
			INSERT INTO credit_transactions (id, user_id, amount, type, action, job_id, description, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`
		_, err = tx.Exec(ctx, grantInsert,
			grant.ID,
			user.ID,
			grant.Amount,
			grant.Type,
			grant.Action,
			grant.JobID,
			grant.Description,
			grant.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert signup grant: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit provisioning transaction: %w", err)
	}

	return nil
}

// GetOrCreateUser gets a user by identity key or provisions one if not
// found. Concurrent resolutions for the same unseen identity are safe:
// the unique constraint on identity_key rejects the loser, which then
// re-fetches the winner's record. The boolean reports whether a new
// record was created by this call.
func (r *Repository) GetOrCreateUser(ctx context.Context, user *model.User, grant *model.CreditTransaction) (*model.User, bool, error) {
	existing, err := r.GetUserByIdentityKey(ctx, user.IdentityKey)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, ErrUserNotFound) {
		return nil, false, err
	}

	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now
	if grant != nil && grant.CreatedAt.IsZero() {
		grant.CreatedAt = now
	}
	if err := r.ProvisionUser(ctx, user, grant); err != nil {
		// Another request may have created it concurrently
		if errors.Is(err, ErrIdentityKeyExists) {
			existing, err := r.GetUserByIdentityKey(ctx, user.IdentityKey)
			return existing, false, err
		}
		return nil, false, err
	}

	return user, true, nil
}
