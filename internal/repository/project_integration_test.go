//go:build integration

package repository

import (
	"errors"
	"testing"

	"github.com/lumeo/lumeo/internal/testutil"
)

// ============================================================================
// Project Repository Integration Tests
// ============================================================================

func TestIntegrationProjectRepository_CreateAndGet(t *testing.T) {
	ctx, repo := newTestEnv(t)

	user := testutil.NewTestUser(t, testutil.UniqueIdentityKey("clerk"))
	if err := repo.ProvisionUser(ctx, user, signupGrant(user.ID)); err != nil {
		t.Fatalf("ProvisionUser failed: %v", err)
	}

	p := testutil.NewTestProject(t, user.ID, "Poster drafts")
	p.FileRefs = []string{"s3://lumeo/assets/a.png", "s3://lumeo/assets/b.png"}

	if err := repo.CreateProject(ctx, p); err != nil {
		t.Fatalf("CreateProject failed: %v", err)
	}

	retrieved, err := repo.GetProjectByID(ctx, p.ID)
	if err != nil {
		t.Fatalf("GetProjectByID failed: %v", err)
	}
	if retrieved.Name != "Poster drafts" {
		t.Errorf("Name = %q, want Poster drafts", retrieved.Name)
	}
	if len(retrieved.FileRefs) != 2 {
		t.Errorf("FileRefs = %d entries, want 2", len(retrieved.FileRefs))
	}
}

func TestIntegrationProjectRepository_StarredFirst(t *testing.T) {
	ctx, repo := newTestEnv(t)

	user := testutil.NewTestUser(t, testutil.UniqueIdentityKey("clerk"))
	if err := repo.ProvisionUser(ctx, user, signupGrant(user.ID)); err != nil {
		t.Fatalf("ProvisionUser failed: %v", err)
	}

	plain := testutil.NewTestProject(t, user.ID, "plain")
	starred := testutil.NewTestProject(t, user.ID, "starred")

	if err := repo.CreateProject(ctx, plain); err != nil {
		t.Fatalf("CreateProject failed: %v", err)
	}
	if err := repo.CreateProject(ctx, starred); err != nil {
		t.Fatalf("CreateProject failed: %v", err)
	}
	if err := repo.SetProjectStarred(ctx, starred.ID, true); err != nil {
		t.Fatalf("SetProjectStarred failed: %v", err)
	}

	projects, err := repo.ListProjects(ctx, user.ID, 50)
	if err != nil {
		t.Fatalf("ListProjects failed: %v", err)
	}
	if len(projects) != 2 {
		t.Fatalf("projects = %d, want 2", len(projects))
	}
	if projects[0].ID != starred.ID {
		t.Errorf("first project = %s, want the starred one", projects[0].ID)
	}
}

func TestIntegrationProjectRepository_DeleteNotFound(t *testing.T) {
	ctx, repo := newTestEnv(t)

	err := repo.DeleteProject(ctx, "no-such-project")
	if !errors.Is(err, ErrProjectNotFound) {
		t.Errorf("Expected ErrProjectNotFound, got: %v", err)
	}
}
