package model

import (
	"testing"
	"time"
)

func TestConversation_EffectiveUpdatedAt(t *testing.T) {
	t.Parallel()

	created := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	updated := created.Add(2 * time.Hour)

	c := &Conversation{CreatedAt: created}
	if got := c.EffectiveUpdatedAt(); !got.Equal(created) {
		t.Errorf("EffectiveUpdatedAt = %v, want created_at %v", got, created)
	}

	c.UpdatedAt = &updated
	if got := c.EffectiveUpdatedAt(); !got.Equal(updated) {
		t.Errorf("EffectiveUpdatedAt = %v, want updated_at %v", got, updated)
	}
}

func TestConversation_DisplayTitle(t *testing.T) {
	t.Parallel()

	c := &Conversation{Mode: ModeChat}
	if got := c.DisplayTitle(); got != DefaultConversationTitle {
		t.Errorf("DisplayTitle = %q, want %q", got, DefaultConversationTitle)
	}

	c.Title = "Moodboard ideas"
	if got := c.DisplayTitle(); got != "Moodboard ideas" {
		t.Errorf("DisplayTitle = %q, want Moodboard ideas", got)
	}
}
