package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/lumeo/lumeo/internal/auth"
	"github.com/lumeo/lumeo/internal/handler/dto"
	"github.com/lumeo/lumeo/internal/service"
)

// CreditHandler handles HTTP requests for credit operations.
type CreditHandler struct {
	svc    *service.CreditService
	logger *slog.Logger
}

// NewCreditHandler creates a new CreditHandler.
func NewCreditHandler(svc *service.CreditService, logger *slog.Logger) *CreditHandler {
	return &CreditHandler{
		svc:    svc,
		logger: logger,
	}
}

// Balance handles GET /credits/balance.
func (h *CreditHandler) Balance(w http.ResponseWriter, r *http.Request) {
	session := auth.MustSessionFromContext(r.Context())

	balance, err := h.svc.GetBalance(r.Context(), session.UserID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeData(w, http.StatusOK, dto.BalanceResponse{
		Balance: balance.Balance,
		Used:    balance.Used,
		Plan:    string(balance.Plan),
	})
}

// History handles GET /credits/history.
func (h *CreditHandler) History(w http.ResponseWriter, r *http.Request) {
	session := auth.MustSessionFromContext(r.Context())

	limit := 0
	if l := r.URL.Query().Get("limit"); l != "" {
		parsed, err := strconv.Atoi(l)
		if err != nil || parsed <= 0 {
			writeError(w, http.StatusBadRequest, CodeInvalidInput, "Invalid limit parameter",
				[]dto.FieldIssue{{Field: "limit", Message: "limit must be a positive integer"}})
			return
		}
		limit = parsed
	}

	entries, err := h.svc.History(r.Context(), session.UserID, limit)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeData(w, http.StatusOK, dto.ToTransactionListResponse(entries))
}

// Spend handles POST /credits/spend.
func (h *CreditHandler) Spend(w http.ResponseWriter, r *http.Request) {
	session := auth.MustSessionFromContext(r.Context())

	var req dto.SpendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeInvalidInput, "Invalid request body", nil)
		return
	}

	if issues := req.Validate(); len(issues) > 0 {
		writeError(w, http.StatusBadRequest, CodeInvalidInput, "Invalid spend request", issues)
		return
	}

	entry, err := h.svc.Spend(r.Context(), service.SpendInput{
		UserID: session.UserID,
		Amount: req.Amount,
		Action: req.Action,
		JobID:  req.JobID,
	})
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("credits_spent",
		"user_id", session.UserID,
		"amount", req.Amount,
		"action", req.Action,
	)

	writeData(w, http.StatusCreated, dto.ToTransactionResponse(entry))
}

// handleServiceError maps credit service errors to HTTP responses.
func (h *CreditHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		writeError(w, http.StatusNotFound, CodeNotFound, "User not found", nil)
	case errors.Is(err, service.ErrInsufficientCredits):
		writeError(w, http.StatusPaymentRequired, CodeInsufficientCredits, "Insufficient credits", nil)
	case errors.Is(err, service.ErrInvalidAmount):
		writeError(w, http.StatusBadRequest, CodeInvalidInput, "Amount must be positive", nil)
	default:
		h.logger.Error("internal_error", "error", err)
		writeError(w, http.StatusInternalServerError, CodeInternal, "An internal error occurred", nil)
	}
}
