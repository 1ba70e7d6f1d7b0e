package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/lumeo/lumeo/internal/handler/dto"
	"github.com/lumeo/lumeo/internal/service"
)

// AuthHandler handles HTTP requests for the demo login flow.
type AuthHandler struct {
	identity *service.IdentityService
	logger   *slog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(identity *service.IdentityService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		identity: identity,
		logger:   logger,
	}
}

// Login handles POST /auth/login.
// The payload is validated before any storage access.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeInvalidInput, "Invalid request body", nil)
		return
	}

	if issues := req.Validate(); len(issues) > 0 {
		writeError(w, http.StatusBadRequest, CodeInvalidInput, "Invalid login request", issues)
		return
	}

	profile, err := h.identity.LoginByEmail(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrUnauthorized) {
			// Same message for unknown email and wrong password
			writeError(w, http.StatusUnauthorized, CodeUnauthorized, "Invalid email or password", nil)
			return
		}
		h.logger.Error("login failed", "error", err)
		writeError(w, http.StatusInternalServerError, CodeInternal, "An internal error occurred", nil)
		return
	}

	h.logger.Info("login_succeeded",
		"user_id", profile.UserID,
		"plan", string(profile.Plan),
	)

	writeData(w, http.StatusOK, dto.ToProfileResponse(profile))
}
