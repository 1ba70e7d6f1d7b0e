package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lumeo/lumeo/internal/auth"
	"github.com/lumeo/lumeo/internal/handler/dto"
	"github.com/lumeo/lumeo/internal/service"
)

// ProjectHandler handles HTTP requests for studio projects.
type ProjectHandler struct {
	svc    *service.ProjectService
	logger *slog.Logger
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(svc *service.ProjectService, logger *slog.Logger) *ProjectHandler {
	return &ProjectHandler{
		svc:    svc,
		logger: logger,
	}
}

// List handles GET /projects.
func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	session := auth.MustSessionFromContext(r.Context())

	projects, err := h.svc.List(r.Context(), session.UserID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeData(w, http.StatusOK, dto.ToProjectListResponse(projects))
}

// Create handles POST /projects.
func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	session := auth.MustSessionFromContext(r.Context())

	var req dto.CreateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeInvalidInput, "Invalid request body", nil)
		return
	}

	if issues := req.Validate(); len(issues) > 0 {
		writeError(w, http.StatusBadRequest, CodeInvalidInput, "Invalid project request", issues)
		return
	}

	project, err := h.svc.Create(r.Context(), service.CreateProjectInput{
		UserID:       session.UserID,
		Name:         req.Name,
		Description:  req.Description,
		ThumbnailURL: req.ThumbnailURL,
		FileRefs:     req.FileRefs,
	})
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("project_created",
		"project_id", project.ID,
		"user_id", session.UserID,
	)

	writeData(w, http.StatusCreated, dto.ToProjectResponse(project))
}

// Star handles POST /projects/{id}/star and DELETE /projects/{id}/star.
func (h *ProjectHandler) Star(starred bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session := auth.MustSessionFromContext(r.Context())

		id := chi.URLParam(r, "id")
		if id == "" {
			writeError(w, http.StatusBadRequest, CodeInvalidInput, "Project ID is required", nil)
			return
		}

		if err := h.svc.SetStarred(r.Context(), session.UserID, id, starred); err != nil {
			h.handleServiceError(w, err)
			return
		}

		writeData(w, http.StatusOK, map[string]bool{"starred": starred})
	}
}

// Delete handles DELETE /projects/{id}.
func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	session := auth.MustSessionFromContext(r.Context())

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, CodeInvalidInput, "Project ID is required", nil)
		return
	}

	if err := h.svc.Delete(r.Context(), session.UserID, id); err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("project_deleted",
		"project_id", id,
		"user_id", session.UserID,
	)

	w.WriteHeader(http.StatusNoContent)
}

// handleServiceError maps project service errors to HTTP responses.
func (h *ProjectHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrProjectNotFound):
		writeError(w, http.StatusNotFound, CodeNotFound, "Project not found", nil)
	case errors.Is(err, service.ErrProjectNameRequired):
		writeError(w, http.StatusBadRequest, CodeInvalidInput, "Project name is required", nil)
	default:
		h.logger.Error("internal_error", "error", err)
		writeError(w, http.StatusInternalServerError, CodeInternal, "An internal error occurred", nil)
	}
}
