package model

import "testing"

func TestTransactionType_IsValid(t *testing.T) {
	t.Parallel()

	for _, tt := range ValidTransactionTypes {
		if !tt.IsValid() {
			t.Errorf("type %q should be valid", tt)
		}
	}

	for _, tt := range []TransactionType{"", "grant", "USAGE", "chargeback"} {
		if tt.IsValid() {
			t.Errorf("type %q should be invalid", tt)
		}
	}
}

func TestTransactionType_IsDebit(t *testing.T) {
	t.Parallel()

	if !TransactionUsage.IsDebit() {
		t.Error("usage should be a debit")
	}
	for _, tt := range []TransactionType{TransactionPurchase, TransactionRefund, TransactionBonus} {
		if tt.IsDebit() {
			t.Errorf("type %q should not be a debit", tt)
		}
	}
}
