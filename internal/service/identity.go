// Package service provides business logic for the application.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/oklog/ulid/v2"

	"github.com/lumeo/lumeo/internal/auth"
	"github.com/lumeo/lumeo/internal/metrics"
	"github.com/lumeo/lumeo/internal/model"
	"github.com/lumeo/lumeo/internal/repository"
)

// Identity service errors.
var (
	ErrInvalidIdentity = errors.New("invalid identity token")
	ErrUnauthorized    = errors.New("unauthorized")
)

// legacyKeyPrefix derives an identity key from an email address for
// records provisioned before external identity tokens existed.
const legacyKeyPrefix = "email:"

// IdentityService resolves external identities to user records.
type IdentityService struct {
	repo          *repository.Repository
	signupCredits int
	metrics       metrics.Recorder
}

// NewIdentityService creates a new IdentityService.
func NewIdentityService(repo *repository.Repository, signupCredits int, recorder metrics.Recorder) *IdentityService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &IdentityService{
		repo:          repo,
		signupCredits: signupCredits,
		metrics:       recorder,
	}
}

// ResolveInput carries the caller identity and optional profile fields
// used when a record has to be provisioned.
type ResolveInput struct {
	IdentityKey string
	Email       string
	Name        string
	AvatarURL   string
}

// Resolve finds the user record for an external identity, provisioning
// one on first sight. Provisioning writes the signup grant as a bonus
// ledger entry in the same database transaction, so a brand-new user
// starts at the default balance with a reconciling ledger.
//
// Resolve is idempotent: concurrent calls for the same unseen identity
// produce exactly one record.
func (s *IdentityService) Resolve(ctx context.Context, input ResolveInput) (*model.User, error) {
	if strings.TrimSpace(input.IdentityKey) == "" {
		return nil, ErrInvalidIdentity
	}

	candidate := &model.User{
		ID:          ulid.Make().String(),
		IdentityKey: input.IdentityKey,
		Email:       strings.ToLower(strings.TrimSpace(input.Email)),
		Name:        input.Name,
		AvatarURL:   input.AvatarURL,
		Plan:        model.PlanFree,
	}

	var grant *model.CreditTransaction
	if s.signupCredits > 0 {
		grant = &model.CreditTransaction{
			ID:          ulid.Make().String(),
			UserID:      candidate.ID,
			Amount:      s.signupCredits,
			Type:        model.TransactionBonus,
			Action:      "signup_grant",
			Description: "Welcome credits",
		}
	}

	user, created, err := s.repo.GetOrCreateUser(ctx, candidate, grant)
	if err != nil {
		return nil, fmt.Errorf("resolve identity: %w", err)
	}
	if created {
		s.metrics.IncUserCreated()
	}

	return user, nil
}

// LoginByEmail validates an email/password pair against stored records.
// The lookup tries the email column first, then the derived legacy
// identity key. Records carrying a password hash are verified with
// Argon2id; records without one (guest/demo provisioned) accept any
// password, preserving the demo flow. Returns the minimal profile
// projection on success - balance is not part of it.
func (s *IdentityService) LoginByEmail(ctx context.Context, email, password string) (*model.Profile, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))

	user, err := s.repo.GetUserByEmail(ctx, normalized)
	if err != nil {
		if !errors.Is(err, repository.ErrUserNotFound) {
			return nil, fmt.Errorf("login lookup: %w", err)
		}
		user, err = s.repo.GetUserByIdentityKey(ctx, legacyKeyPrefix+normalized)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				s.metrics.IncLoginFailure()
				return nil, ErrUnauthorized
			}
			return nil, fmt.Errorf("login legacy lookup: %w", err)
		}
	}

	if user.HasPassword() {
		match, err := auth.VerifyPassword(password, *user.PasswordHash)
		if err != nil || !match {
			s.metrics.IncLoginFailure()
			return nil, ErrUnauthorized
		}
	}

	s.metrics.IncLoginSuccess()
	return model.ProfileOf(user), nil
}
