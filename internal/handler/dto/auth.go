package dto

import (
	"net/mail"
	"strings"

	"github.com/lumeo/lumeo/internal/model"
)

// LoginRequest represents the request body for email/password login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks the login payload. Runs before any database access
// so malformed requests never reach storage.
func (r *LoginRequest) Validate() []FieldIssue {
	var issues []FieldIssue

	email := strings.TrimSpace(r.Email)
	if email == "" {
		issues = append(issues, FieldIssue{Field: "email", Message: "email is required"})
	} else if _, err := mail.ParseAddress(email); err != nil {
		issues = append(issues, FieldIssue{Field: "email", Message: "email is not a valid address"})
	}

	if r.Password == "" {
		issues = append(issues, FieldIssue{Field: "password", Message: "password is required"})
	}

	return issues
}

// ProfileResponse represents the authenticated user in login responses.
type ProfileResponse struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Plan   string `json:"plan"`
}

// ToProfileResponse converts a Profile model to its response DTO.
func ToProfileResponse(p *model.Profile) *ProfileResponse {
	return &ProfileResponse{
		UserID: p.UserID,
		Name:   p.Name,
		Email:  p.Email,
		Plan:   string(p.Plan),
	}
}
