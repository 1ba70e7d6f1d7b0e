package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/lumeo/lumeo/internal/metrics"
	"github.com/lumeo/lumeo/internal/model"
	"github.com/lumeo/lumeo/internal/repository"
)

// Credit service errors.
var (
	ErrUserNotFound        = errors.New("user not found")
	ErrInvalidAmount       = errors.New("amount must be positive")
	ErrInvalidGrantType    = errors.New("grant type must be purchase or bonus")
	ErrInsufficientCredits = errors.New("insufficient credits")
)

const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 100
)

// CreditService owns balance reads and ledger appends.
type CreditService struct {
	repo    *repository.Repository
	metrics metrics.Recorder
}

// NewCreditService creates a new CreditService.
func NewCreditService(repo *repository.Repository, recorder metrics.Recorder) *CreditService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &CreditService{
		repo:    repo,
		metrics: recorder,
	}
}

// Balance is the read projection of a user's credit state.
type Balance struct {
	Balance int
	Used    int
	Plan    model.Plan
}

// GetBalance returns the stored balance/used/plan for a user.
// A pure read: the projection is taken as stored, never recomputed here.
func (s *CreditService) GetBalance(ctx context.Context, userID string) (*Balance, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get balance: %w", err)
	}

	return &Balance{
		Balance: user.CreditsBalance,
		Used:    user.CreditsUsed,
		Plan:    user.Plan,
	}, nil
}

// SpendInput describes a credit-consuming operation.
type SpendInput struct {
	UserID string
	Amount int // positive number of credits to consume
	Action string
	JobID  string
}

// Spend appends a usage entry and debits the user's balance atomically.
func (s *CreditService) Spend(ctx context.Context, input SpendInput) (*model.CreditTransaction, error) {
	if input.Amount <= 0 {
		return nil, ErrInvalidAmount
	}

	entry := &model.CreditTransaction{
		ID:     ulid.Make().String(),
		UserID: input.UserID,
		Amount: -input.Amount,
		Type:   model.TransactionUsage,
		Action: input.Action,
		JobID:  input.JobID,
	}

	if err := s.append(ctx, entry); err != nil {
		return nil, err
	}

	s.metrics.IncCreditsSpent(input.Amount)
	return entry, nil
}

// GrantInput describes a credit-adding operation.
type GrantInput struct {
	UserID      string
	Amount      int // positive number of credits to add
	Type        model.TransactionType
	Description string
}

// Grant appends a purchase or bonus entry and credits the balance atomically.
func (s *CreditService) Grant(ctx context.Context, input GrantInput) (*model.CreditTransaction, error) {
	if input.Amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if input.Type != model.TransactionPurchase && input.Type != model.TransactionBonus {
		return nil, ErrInvalidGrantType
	}

	entry := &model.CreditTransaction{
		ID:          ulid.Make().String(),
		UserID:      input.UserID,
		Amount:      input.Amount,
		Type:        input.Type,
		Description: input.Description,
	}

	if err := s.append(ctx, entry); err != nil {
		return nil, err
	}

	s.metrics.IncCreditsGranted(input.Amount)
	return entry, nil
}

// RefundInput describes returning credits for a failed or cancelled job.
type RefundInput struct {
	UserID      string
	Amount      int // positive number of credits to return
	JobID       string
	Description string
}

// Refund appends a refund entry and credits the balance atomically.
// Refunds restore the balance but do not decrement credits_used.
func (s *CreditService) Refund(ctx context.Context, input RefundInput) (*model.CreditTransaction, error) {
	if input.Amount <= 0 {
		return nil, ErrInvalidAmount
	}

	entry := &model.CreditTransaction{
		ID:          ulid.Make().String(),
		UserID:      input.UserID,
		Amount:      input.Amount,
		Type:        model.TransactionRefund,
		JobID:       input.JobID,
		Description: input.Description,
	}

	if err := s.append(ctx, entry); err != nil {
		return nil, err
	}

	s.metrics.IncCreditsGranted(input.Amount)
	return entry, nil
}

// History returns a user's ledger entries, newest first.
func (s *CreditService) History(ctx context.Context, userID string, limit int) ([]*model.CreditTransaction, error) {
	entries, err := s.repo.ListTransactions(ctx, userID, clampHistoryLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}

	return entries, nil
}

// clampHistoryLimit normalizes a requested page size: non-positive values
// fall back to the default, over-cap values are clamped to the maximum.
func clampHistoryLimit(limit int) int {
	switch {
	case limit <= 0:
		return defaultHistoryLimit
	case limit > maxHistoryLimit:
		return maxHistoryLimit
	default:
		return limit
	}
}

// append runs the atomic ledger write and maps repository errors.
func (s *CreditService) append(ctx context.Context, entry *model.CreditTransaction) error {
	start := time.Now()
	err := s.repo.AppendTransaction(ctx, entry)
	s.metrics.ObserveLedgerAppendDuration(time.Since(start))

	if err != nil {
		switch {
		case errors.Is(err, repository.ErrInsufficientCredits):
			s.metrics.IncLedgerConflict()
			return ErrInsufficientCredits
		case errors.Is(err, repository.ErrUserNotFound):
			return ErrUserNotFound
		default:
			return fmt.Errorf("append ledger entry: %w", err)
		}
	}

	return nil
}
