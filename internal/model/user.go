// Package model defines domain entities for the application.
package model

import "time"

// Plan represents a service tier governing entitlements.
type Plan string

const (
	PlanFree     Plan = "free"
	PlanStarter  Plan = "starter"
	PlanPro      Plan = "pro"
	PlanBusiness Plan = "business"
)

// ValidPlans contains all valid plan values.
var ValidPlans = []Plan{PlanFree, PlanStarter, PlanPro, PlanBusiness}

// IsValid checks if the plan is a known tier.
func (p Plan) IsValid() bool {
	switch p {
	case PlanFree, PlanStarter, PlanPro, PlanBusiness:
		return true
	}
	return false
}

// DefaultSignupCredits is the credit grant for newly provisioned users.
const DefaultSignupCredits = 50

// RateLimitConfig defines rate limit parameters per plan.
type RateLimitConfig struct {
	RequestsPerMinute int
	Burst             int
}

// PlanRateLimits maps plans to their API rate limit configurations.
// A zero RequestsPerMinute means unlimited.
var PlanRateLimits = map[Plan]RateLimitConfig{
	PlanFree:     {RequestsPerMinute: 60, Burst: 10},
	PlanStarter:  {RequestsPerMinute: 240, Burst: 30},
	PlanPro:      {RequestsPerMinute: 600, Burst: 50},
	PlanBusiness: {RequestsPerMinute: 0, Burst: 0},
}

// GetRateLimitConfig returns the rate limit configuration for a plan.
// Unknown plans fall back to the free tier.
func (p Plan) GetRateLimitConfig() RateLimitConfig {
	if config, ok := PlanRateLimits[p]; ok {
		return config
	}
	return PlanRateLimits[PlanFree]
}

// User represents an identity store record with credit counters.
// CreditsBalance must only change through a ledger append executed in
// the same database transaction (see repository.AppendTransaction).
type User struct {
	ID                string    `json:"id"`
	IdentityKey       string    `json:"identity_key"`
	Email             string    `json:"email"`
	Name              string    `json:"name"`
	AvatarURL         string    `json:"avatar_url,omitempty"`
	Plan              Plan      `json:"plan"`
	CreditsBalance    int       `json:"credits_balance"`
	CreditsUsed       int       `json:"credits_used"`
	BillingCustomerID *string   `json:"billing_customer_id,omitempty"`
	PasswordHash      *string   `json:"-"` // Never serialize
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// HasPassword returns true if the record carries a stored password hash.
// Token-provisioned users have none.
func (u *User) HasPassword() bool {
	return u.PasswordHash != nil && *u.PasswordHash != ""
}

// Profile is the minimal projection returned by the login path.
// Balance is intentionally not part of this projection.
type Profile struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Plan   Plan   `json:"plan"`
}

// ProfileOf builds the login projection for a user.
func ProfileOf(u *User) *Profile {
	return &Profile{
		UserID: u.ID,
		Name:   u.Name,
		Email:  u.Email,
		Plan:   u.Plan,
	}
}
