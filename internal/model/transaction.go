package model

import "time"

// TransactionType classifies a balance-affecting event.
type TransactionType string

const (
	TransactionPurchase TransactionType = "purchase"
	TransactionUsage    TransactionType = "usage"
	TransactionRefund   TransactionType = "refund"
	TransactionBonus    TransactionType = "bonus"
)

// ValidTransactionTypes contains all valid transaction type values.
var ValidTransactionTypes = []TransactionType{
	TransactionPurchase,
	TransactionUsage,
	TransactionRefund,
	TransactionBonus,
}

// IsValid checks if the transaction type is known.
func (t TransactionType) IsValid() bool {
	switch t {
	case TransactionPurchase, TransactionUsage, TransactionRefund, TransactionBonus:
		return true
	}
	return false
}

// IsDebit returns true for types that consume credits.
func (t TransactionType) IsDebit() bool {
	return t == TransactionUsage
}

// CreditTransaction is an immutable ledger entry recording one
// balance-affecting event. Entries are append-only: they are never
// updated or deleted after insertion.
type CreditTransaction struct {
	ID          string          `json:"id"`
	UserID      string          `json:"user_id"`
	Amount      int             `json:"amount"` // signed delta
	Type        TransactionType `json:"type"`
	Action      string          `json:"action,omitempty"`
	JobID       string          `json:"job_id,omitempty"`
	Description string          `json:"description,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}
