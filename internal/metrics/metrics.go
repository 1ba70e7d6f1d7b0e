// Package metrics provides lightweight hooks for instrumentation.
package metrics

import "time"

// Recorder captures metric events for the application.
// Implementations can expose these to Prometheus, StatsD, etc.
type Recorder interface {
	// Identity metrics
	IncUserCreated()
	IncLoginSuccess()
	IncLoginFailure()
	IncSessionCacheHit()
	IncSessionCacheMiss()

	// Ledger metrics
	IncCreditsSpent(amount int)
	IncCreditsGranted(amount int)
	IncLedgerConflict() // overdraft rejections
	ObserveLedgerAppendDuration(duration time.Duration)

	// Editor token metrics
	IncTokenIssued(status string) // status: "success" or "failed"
}

// Snapshotter exposes a snapshot of current metrics.
type Snapshotter interface {
	Snapshot() Snapshot
}
