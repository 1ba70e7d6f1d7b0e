package dto

import (
	"strings"
	"time"

	"github.com/lumeo/lumeo/internal/model"
)

// CreateProjectRequest represents the request body for creating a project.
type CreateProjectRequest struct {
	Name         string   `json:"name"`
	Description  string   `json:"description,omitempty"`
	ThumbnailURL string   `json:"thumbnailUrl,omitempty"`
	FileRefs     []string `json:"fileRefs,omitempty"`
}

// Validate checks the project payload.
func (r *CreateProjectRequest) Validate() []FieldIssue {
	var issues []FieldIssue

	if strings.TrimSpace(r.Name) == "" {
		issues = append(issues, FieldIssue{Field: "name", Message: "name is required"})
	}

	return issues
}

// ProjectResponse represents a project in API responses.
type ProjectResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	ThumbnailURL string    `json:"thumbnailUrl,omitempty"`
	FileRefs     []string  `json:"fileRefs"`
	Starred      bool      `json:"starred"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// ToProjectResponse converts a Project model to its response DTO.
func ToProjectResponse(p *model.Project) *ProjectResponse {
	fileRefs := p.FileRefs
	if fileRefs == nil {
		fileRefs = []string{}
	}
	return &ProjectResponse{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		ThumbnailURL: p.ThumbnailURL,
		FileRefs:     fileRefs,
		Starred:      p.Starred,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

// ToProjectListResponse converts a slice of projects.
func ToProjectListResponse(projects []*model.Project) []ProjectResponse {
	responses := make([]ProjectResponse, len(projects))
	for i, p := range projects {
		responses[i] = *ToProjectResponse(p)
	}
	return responses
}
