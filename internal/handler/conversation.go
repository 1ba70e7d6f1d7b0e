package handler

import (
	"log/slog"
	"net/http"

	"github.com/lumeo/lumeo/internal/auth"
	"github.com/lumeo/lumeo/internal/handler/dto"
	"github.com/lumeo/lumeo/internal/service"
)

// ConversationHandler handles HTTP requests for the conversation index.
type ConversationHandler struct {
	svc    *service.ConversationService
	logger *slog.Logger
}

// NewConversationHandler creates a new ConversationHandler.
func NewConversationHandler(svc *service.ConversationService, logger *slog.Logger) *ConversationHandler {
	return &ConversationHandler{
		svc:    svc,
		logger: logger,
	}
}

// List handles GET /conversations.
func (h *ConversationHandler) List(w http.ResponseWriter, r *http.Request) {
	session := auth.MustSessionFromContext(r.Context())

	summaries, err := h.svc.List(r.Context(), session.UserID)
	if err != nil {
		h.logger.Error("internal_error", "error", err)
		writeError(w, http.StatusInternalServerError, CodeInternal, "An internal error occurred", nil)
		return
	}

	writeData(w, http.StatusOK, dto.ToConversationListResponse(summaries))
}
