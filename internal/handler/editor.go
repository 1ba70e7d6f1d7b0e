package handler

import (
	"log/slog"
	"net/http"

	"github.com/lumeo/lumeo/internal/auth"
	"github.com/lumeo/lumeo/internal/editor"
	"github.com/lumeo/lumeo/internal/metrics"
)

// EditorHandler proxies editor token issuance.
type EditorHandler struct {
	issuer  editor.Issuer
	logger  *slog.Logger
	metrics metrics.Recorder
}

// NewEditorHandler creates a new EditorHandler.
func NewEditorHandler(issuer editor.Issuer, logger *slog.Logger, recorder metrics.Recorder) *EditorHandler {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &EditorHandler{
		issuer:  issuer,
		logger:  logger,
		metrics: recorder,
	}
}

// Token handles POST /editor/token.
// The session must already be resolved; the issuer is called with
// fixed server-side configuration only.
func (h *EditorHandler) Token(w http.ResponseWriter, r *http.Request) {
	session := auth.MustSessionFromContext(r.Context())

	token, err := h.issuer.IssueToken(r.Context())
	if err != nil {
		h.metrics.IncTokenIssued("failure")
		h.logger.Error("editor token issuance failed",
			"error", err,
			"user_id", session.UserID,
		)
		writeError(w, http.StatusInternalServerError, CodeInternal, "Editor token issuance failed", nil)
		return
	}

	h.metrics.IncTokenIssued("success")

	writeData(w, http.StatusOK, map[string]string{"token": token})
}
