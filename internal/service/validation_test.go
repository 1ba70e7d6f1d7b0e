package service

import (
	"context"
	"errors"
	"testing"

	"github.com/lumeo/lumeo/internal/model"
)

// Validation paths fail before any repository access, so a nil
// repository is safe here.

func TestIdentityService_Resolve_EmptyIdentityKey(t *testing.T) {
	t.Parallel()

	svc := NewIdentityService(nil, model.DefaultSignupCredits, nil)

	_, err := svc.Resolve(context.Background(), ResolveInput{IdentityKey: "   "})
	if !errors.Is(err, ErrInvalidIdentity) {
		t.Errorf("expected ErrInvalidIdentity, got %v", err)
	}
}

func TestCreditService_Spend_InvalidAmount(t *testing.T) {
	t.Parallel()

	svc := NewCreditService(nil, nil)

	for _, amount := range []int{0, -5} {
		_, err := svc.Spend(context.Background(), SpendInput{UserID: "user-1", Amount: amount})
		if !errors.Is(err, ErrInvalidAmount) {
			t.Errorf("Spend(%d): expected ErrInvalidAmount, got %v", amount, err)
		}
	}
}

func TestCreditService_Grant_InvalidType(t *testing.T) {
	t.Parallel()

	svc := NewCreditService(nil, nil)

	for _, tt := range []model.TransactionType{model.TransactionUsage, model.TransactionRefund, "other"} {
		_, err := svc.Grant(context.Background(), GrantInput{UserID: "user-1", Amount: 10, Type: tt})
		if !errors.Is(err, ErrInvalidGrantType) {
			t.Errorf("Grant(type=%s): expected ErrInvalidGrantType, got %v", tt, err)
		}
	}
}

func TestCreditService_Grant_InvalidAmount(t *testing.T) {
	t.Parallel()

	svc := NewCreditService(nil, nil)

	_, err := svc.Grant(context.Background(), GrantInput{UserID: "user-1", Amount: 0, Type: model.TransactionBonus})
	if !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("expected ErrInvalidAmount, got %v", err)
	}
}

func TestClampHistoryLimit(t *testing.T) {
	t.Parallel()

	cases := []struct {
		limit int
		want  int
	}{
		{limit: -1, want: defaultHistoryLimit},
		{limit: 0, want: defaultHistoryLimit},
		{limit: 1, want: 1},
		{limit: maxHistoryLimit, want: maxHistoryLimit},
		{limit: maxHistoryLimit + 1, want: maxHistoryLimit},
		{limit: 1000, want: maxHistoryLimit},
	}

	for _, tc := range cases {
		if got := clampHistoryLimit(tc.limit); got != tc.want {
			t.Errorf("clampHistoryLimit(%d) = %d, want %d", tc.limit, got, tc.want)
		}
	}
}

func TestCreditService_Refund_InvalidAmount(t *testing.T) {
	t.Parallel()

	svc := NewCreditService(nil, nil)

	_, err := svc.Refund(context.Background(), RefundInput{UserID: "user-1", Amount: -1})
	if !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("expected ErrInvalidAmount, got %v", err)
	}
}

func TestProjectService_Create_NameRequired(t *testing.T) {
	t.Parallel()

	svc := NewProjectService(nil)

	_, err := svc.Create(context.Background(), CreateProjectInput{UserID: "user-1", Name: "  "})
	if !errors.Is(err, ErrProjectNameRequired) {
		t.Errorf("expected ErrProjectNameRequired, got %v", err)
	}
}
