package metrics

import "time"

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

// NewNoop returns a Recorder that discards all metrics.
func NewNoop() Recorder {
	return &NoopRecorder{}
}

// IncUserCreated is a no-op.
func (n *NoopRecorder) IncUserCreated() {}

// IncLoginSuccess is a no-op.
func (n *NoopRecorder) IncLoginSuccess() {}

// IncLoginFailure is a no-op.
func (n *NoopRecorder) IncLoginFailure() {}

// IncSessionCacheHit is a no-op.
func (n *NoopRecorder) IncSessionCacheHit() {}

// IncSessionCacheMiss is a no-op.
func (n *NoopRecorder) IncSessionCacheMiss() {}

// IncCreditsSpent is a no-op.
func (n *NoopRecorder) IncCreditsSpent(amount int) {}

// IncCreditsGranted is a no-op.
func (n *NoopRecorder) IncCreditsGranted(amount int) {}

// IncLedgerConflict is a no-op.
func (n *NoopRecorder) IncLedgerConflict() {}

// ObserveLedgerAppendDuration is a no-op.
func (n *NoopRecorder) ObserveLedgerAppendDuration(duration time.Duration) {}

// IncTokenIssued is a no-op.
func (n *NoopRecorder) IncTokenIssued(status string) {}
