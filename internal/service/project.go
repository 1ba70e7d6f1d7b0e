package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/lumeo/lumeo/internal/model"
	"github.com/lumeo/lumeo/internal/repository"
)

// Project service errors.
var (
	ErrProjectNotFound     = errors.New("project not found")
	ErrProjectNameRequired = errors.New("project name is required")
)

// maxProjectPage caps the project listing.
const maxProjectPage = 50

// ProjectService owns studio project CRUD.
type ProjectService struct {
	repo *repository.Repository
}

// NewProjectService creates a new ProjectService.
func NewProjectService(repo *repository.Repository) *ProjectService {
	return &ProjectService{repo: repo}
}

// CreateProjectInput defines input for creating a project.
type CreateProjectInput struct {
	UserID       string
	Name         string
	Description  string
	ThumbnailURL string
	FileRefs     []string
}

// Create inserts a new project for the user.
func (s *ProjectService) Create(ctx context.Context, input CreateProjectInput) (*model.Project, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrProjectNameRequired
	}

	fileRefs := input.FileRefs
	if fileRefs == nil {
		fileRefs = []string{}
	}

	now := time.Now().UTC()
	project := &model.Project{
		ID:           ulid.Make().String(),
		UserID:       input.UserID,
		Name:         name,
		Description:  input.Description,
		ThumbnailURL: input.ThumbnailURL,
		FileRefs:     fileRefs,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.CreateProject(ctx, project); err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}

	return project, nil
}

// List returns the user's projects, starred first, then by recency.
func (s *ProjectService) List(ctx context.Context, userID string) ([]*model.Project, error) {
	projects, err := s.repo.ListProjects(ctx, userID, maxProjectPage)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return projects, nil
}

// SetStarred flips the starred flag on a project the user owns.
// A project owned by someone else reports not-found rather than
// revealing its existence.
func (s *ProjectService) SetStarred(ctx context.Context, userID, projectID string, starred bool) error {
	if err := s.requireOwnership(ctx, userID, projectID); err != nil {
		return err
	}

	if err := s.repo.SetProjectStarred(ctx, projectID, starred); err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("star project: %w", err)
	}

	return nil
}

// Delete removes a project the user owns.
func (s *ProjectService) Delete(ctx context.Context, userID, projectID string) error {
	if err := s.requireOwnership(ctx, userID, projectID); err != nil {
		return err
	}

	if err := s.repo.DeleteProject(ctx, projectID); err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("delete project: %w", err)
	}

	return nil
}

func (s *ProjectService) requireOwnership(ctx context.Context, userID, projectID string) error {
	project, err := s.repo.GetProjectByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("get project: %w", err)
	}
	if project.UserID != userID {
		return ErrProjectNotFound
	}
	return nil
}
