package handler

import (
	"fmt"
	"net/http"

	"github.com/lumeo/lumeo/internal/metrics"
)

// MetricsHandler exposes in-memory metrics.
type MetricsHandler struct {
	snapshotter metrics.Snapshotter
}

// NewMetricsHandler creates a new MetricsHandler.
func NewMetricsHandler(snapshotter metrics.Snapshotter) *MetricsHandler {
	return &MetricsHandler{snapshotter: snapshotter}
}

// Metrics returns metrics in Prometheus exposition format.
func (h *MetricsHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	if h.snapshotter == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	snap := h.snapshotter.Snapshot()

	w.Header().Set("Content-Type", "text/plain; version=0.0.4")

	writeMetric(w, "lumeo_users_created_total %d\n", snap.UsersCreated)
	writeMetric(w, "lumeo_logins_total{status=\"success\"} %d\n", snap.LoginSuccesses)
	writeMetric(w, "lumeo_logins_total{status=\"failure\"} %d\n", snap.LoginFailures)

	writeMetric(w, "lumeo_session_cache_hits_total %d\n", snap.SessionCacheHits)
	writeMetric(w, "lumeo_session_cache_misses_total %d\n", snap.SessionCacheMisses)

	writeMetric(w, "lumeo_credits_spent_total %d\n", snap.CreditsSpent)
	writeMetric(w, "lumeo_credits_granted_total %d\n", snap.CreditsGranted)
	writeMetric(w, "lumeo_ledger_conflicts_total %d\n", snap.LedgerConflicts)
	writeMetric(w, "lumeo_ledger_append_duration_seconds_count %d\n", snap.LedgerAppendCount)
	writeMetric(w, "lumeo_ledger_append_duration_seconds_sum %.6f\n", float64(snap.LedgerAppendTotalNs)/1e9)

	writeMetric(w, "lumeo_editor_tokens_issued_total{status=\"success\"} %d\n", snap.TokensIssued)
	writeMetric(w, "lumeo_editor_tokens_issued_total{status=\"failure\"} %d\n", snap.TokenIssuanceFailures)
}

func writeMetric(w http.ResponseWriter, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
