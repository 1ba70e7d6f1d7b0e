//go:build integration

package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/lumeo/lumeo/internal/testutil"
)

// ============================================================================
// Conversation Repository Integration Tests
// ============================================================================

func TestIntegrationConversationRepository_ListOrdering(t *testing.T) {
	ctx, repo := newTestEnv(t)

	user := testutil.NewTestUser(t, testutil.UniqueIdentityKey("clerk"))
	if err := repo.ProvisionUser(ctx, user, signupGrant(user.ID)); err != nil {
		t.Fatalf("ProvisionUser failed: %v", err)
	}

	base := time.Now().UTC().Add(-time.Hour)

	// oldest created, but touched most recently
	oldTouched := testutil.NewTestConversation(t, user.ID, "old but touched")
	oldTouched.CreatedAt = base
	touched := base.Add(30 * time.Minute)
	oldTouched.UpdatedAt = &touched

	// created later, never updated: orders by created_at
	fresh := testutil.NewTestConversation(t, user.ID, "fresh")
	fresh.CreatedAt = base.Add(10 * time.Minute)

	if err := repo.CreateConversation(ctx, oldTouched); err != nil {
		t.Fatalf("CreateConversation failed: %v", err)
	}
	if err := repo.CreateConversation(ctx, fresh); err != nil {
		t.Fatalf("CreateConversation failed: %v", err)
	}

	conversations, err := repo.ListConversations(ctx, user.ID, 50)
	if err != nil {
		t.Fatalf("ListConversations failed: %v", err)
	}
	if len(conversations) != 2 {
		t.Fatalf("conversations = %d, want 2", len(conversations))
	}

	if conversations[0].ID != oldTouched.ID {
		t.Errorf("first = %s, want the recently touched conversation", conversations[0].ID)
	}
	for i := 1; i < len(conversations); i++ {
		a := conversations[i-1].EffectiveUpdatedAt()
		b := conversations[i].EffectiveUpdatedAt()
		if b.After(a) {
			t.Errorf("conversation %d newer than %d; want descending recency", i, i-1)
		}
	}
}

func TestIntegrationConversationRepository_ListLimit(t *testing.T) {
	ctx, repo := newTestEnv(t)

	user := testutil.NewTestUser(t, testutil.UniqueIdentityKey("clerk"))
	if err := repo.ProvisionUser(ctx, user, signupGrant(user.ID)); err != nil {
		t.Fatalf("ProvisionUser failed: %v", err)
	}

	for i := 0; i < 55; i++ {
		c := testutil.NewTestConversation(t, user.ID, "")
		c.CreatedAt = time.Now().UTC().Add(time.Duration(i) * time.Second)
		if err := repo.CreateConversation(ctx, c); err != nil {
			t.Fatalf("CreateConversation %d failed: %v", i, err)
		}
	}

	conversations, err := repo.ListConversations(ctx, user.ID, 50)
	if err != nil {
		t.Fatalf("ListConversations failed: %v", err)
	}
	if len(conversations) != 50 {
		t.Errorf("conversations = %d, want 50", len(conversations))
	}
}

func TestIntegrationConversationRepository_Touch(t *testing.T) {
	ctx, repo := newTestEnv(t)

	user := testutil.NewTestUser(t, testutil.UniqueIdentityKey("clerk"))
	if err := repo.ProvisionUser(ctx, user, signupGrant(user.ID)); err != nil {
		t.Fatalf("ProvisionUser failed: %v", err)
	}

	c := testutil.NewTestConversation(t, user.ID, "")
	if err := repo.CreateConversation(ctx, c); err != nil {
		t.Fatalf("CreateConversation failed: %v", err)
	}

	title := "Renamed"
	if err := repo.TouchConversation(ctx, c.ID, &title); err != nil {
		t.Fatalf("TouchConversation failed: %v", err)
	}

	updated, err := repo.GetConversationByID(ctx, c.ID)
	if err != nil {
		t.Fatalf("GetConversationByID failed: %v", err)
	}
	if updated.Title != "Renamed" {
		t.Errorf("Title = %q, want Renamed", updated.Title)
	}
	if updated.UpdatedAt == nil {
		t.Error("UpdatedAt should be set after touch")
	}

	err = repo.TouchConversation(ctx, "no-such-conversation", nil)
	if !errors.Is(err, ErrConversationNotFound) {
		t.Errorf("Expected ErrConversationNotFound, got: %v", err)
	}
}
