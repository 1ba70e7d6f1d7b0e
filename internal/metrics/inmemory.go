package metrics

import (
	"sync/atomic"
	"time"
)

// Snapshot captures current in-memory counters.
type Snapshot struct {
	UsersCreated          uint64
	LoginSuccesses        uint64
	LoginFailures         uint64
	SessionCacheHits      uint64
	SessionCacheMisses    uint64
	CreditsSpent          uint64
	CreditsGranted        uint64
	LedgerConflicts       uint64
	LedgerAppendCount     uint64
	LedgerAppendTotalNs   int64
	TokensIssued          uint64
	TokenIssuanceFailures uint64
}

// InMemoryRecorder stores metrics in memory.
// Exposed via the /metrics endpoint and used directly in tests.
type InMemoryRecorder struct {
	usersCreated          uint64
	loginSuccesses        uint64
	loginFailures         uint64
	sessionCacheHits      uint64
	sessionCacheMisses    uint64
	creditsSpent          uint64
	creditsGranted        uint64
	ledgerConflicts       uint64
	ledgerAppendCount     uint64
	ledgerAppendTotalNs   int64
	tokensIssued          uint64
	tokenIssuanceFailures uint64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	return Snapshot{
		UsersCreated:          atomic.LoadUint64(&m.usersCreated),
		LoginSuccesses:        atomic.LoadUint64(&m.loginSuccesses),
		LoginFailures:         atomic.LoadUint64(&m.loginFailures),
		SessionCacheHits:      atomic.LoadUint64(&m.sessionCacheHits),
		SessionCacheMisses:    atomic.LoadUint64(&m.sessionCacheMisses),
		CreditsSpent:          atomic.LoadUint64(&m.creditsSpent),
		CreditsGranted:        atomic.LoadUint64(&m.creditsGranted),
		LedgerConflicts:       atomic.LoadUint64(&m.ledgerConflicts),
		LedgerAppendCount:     atomic.LoadUint64(&m.ledgerAppendCount),
		LedgerAppendTotalNs:   atomic.LoadInt64(&m.ledgerAppendTotalNs),
		TokensIssued:          atomic.LoadUint64(&m.tokensIssued),
		TokenIssuanceFailures: atomic.LoadUint64(&m.tokenIssuanceFailures),
	}
}

// IncUserCreated increments the provisioned-user counter.
func (m *InMemoryRecorder) IncUserCreated() {
	atomic.AddUint64(&m.usersCreated, 1)
}

// IncLoginSuccess increments the successful-login counter.
func (m *InMemoryRecorder) IncLoginSuccess() {
	atomic.AddUint64(&m.loginSuccesses, 1)
}

// IncLoginFailure increments the failed-login counter.
func (m *InMemoryRecorder) IncLoginFailure() {
	atomic.AddUint64(&m.loginFailures, 1)
}

// IncSessionCacheHit increments the session cache hit counter.
func (m *InMemoryRecorder) IncSessionCacheHit() {
	atomic.AddUint64(&m.sessionCacheHits, 1)
}

// IncSessionCacheMiss increments the session cache miss counter.
func (m *InMemoryRecorder) IncSessionCacheMiss() {
	atomic.AddUint64(&m.sessionCacheMisses, 1)
}

// IncCreditsSpent accumulates credits consumed by usage entries.
func (m *InMemoryRecorder) IncCreditsSpent(amount int) {
	if amount > 0 {
		atomic.AddUint64(&m.creditsSpent, uint64(amount))
	}
}

// IncCreditsGranted accumulates credits added by purchase/refund/bonus entries.
func (m *InMemoryRecorder) IncCreditsGranted(amount int) {
	if amount > 0 {
		atomic.AddUint64(&m.creditsGranted, uint64(amount))
	}
}

// IncLedgerConflict increments the overdraft-rejection counter.
func (m *InMemoryRecorder) IncLedgerConflict() {
	atomic.AddUint64(&m.ledgerConflicts, 1)
}

// ObserveLedgerAppendDuration records the duration of a ledger append.
func (m *InMemoryRecorder) ObserveLedgerAppendDuration(duration time.Duration) {
	atomic.AddUint64(&m.ledgerAppendCount, 1)
	atomic.AddInt64(&m.ledgerAppendTotalNs, duration.Nanoseconds())
}

// IncTokenIssued records an editor token issuance outcome.
func (m *InMemoryRecorder) IncTokenIssued(status string) {
	if status == "success" {
		atomic.AddUint64(&m.tokensIssued, 1)
		return
	}
	atomic.AddUint64(&m.tokenIssuanceFailures, 1)
}
