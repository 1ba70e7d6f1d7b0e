package dto

import (
	"time"

	"github.com/lumeo/lumeo/internal/model"
)

// BalanceResponse represents the credit balance projection.
type BalanceResponse struct {
	Balance int    `json:"balance"`
	Used    int    `json:"used"`
	Plan    string `json:"plan"`
}

// SpendRequest represents the request body for consuming credits.
type SpendRequest struct {
	Amount int    `json:"amount"`
	Action string `json:"action"`
	JobID  string `json:"jobId,omitempty"`
}

// Validate checks the spend payload.
func (r *SpendRequest) Validate() []FieldIssue {
	var issues []FieldIssue

	if r.Amount <= 0 {
		issues = append(issues, FieldIssue{Field: "amount", Message: "amount must be a positive integer"})
	}
	if r.Action == "" {
		issues = append(issues, FieldIssue{Field: "action", Message: "action is required"})
	}

	return issues
}

// TransactionResponse represents one ledger entry in API responses.
type TransactionResponse struct {
	ID          string    `json:"id"`
	Amount      int       `json:"amount"`
	Type        string    `json:"type"`
	Action      string    `json:"action,omitempty"`
	JobID       string    `json:"jobId,omitempty"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ToTransactionResponse converts a ledger entry to its response DTO.
func ToTransactionResponse(tx *model.CreditTransaction) *TransactionResponse {
	return &TransactionResponse{
		ID:          tx.ID,
		Amount:      tx.Amount,
		Type:        string(tx.Type),
		Action:      tx.Action,
		JobID:       tx.JobID,
		Description: tx.Description,
		CreatedAt:   tx.CreatedAt,
	}
}

// ToTransactionListResponse converts a slice of ledger entries.
func ToTransactionListResponse(txs []*model.CreditTransaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(txs))
	for i, tx := range txs {
		responses[i] = *ToTransactionResponse(tx)
	}
	return responses
}
