package service

import (
	"context"
	"fmt"
	"time"

	"github.com/lumeo/lumeo/internal/model"
	"github.com/lumeo/lumeo/internal/repository"
)

// maxConversationPage caps the conversation listing; there is no cursor.
const maxConversationPage = 50

// ConversationService lists a user's conversations. Creation and
// mutation belong to the chat/editor feature.
type ConversationService struct {
	repo *repository.Repository
}

// NewConversationService creates a new ConversationService.
func NewConversationService(repo *repository.Repository) *ConversationService {
	return &ConversationService{repo: repo}
}

// ConversationSummary is the listing projection.
type ConversationSummary struct {
	ID        string
	Title     string
	Mode      model.ConversationMode
	UpdatedAt time.Time
}

// List returns up to 50 of the user's conversations ordered by recency
// (update timestamp, falling back to creation timestamp). Untitled
// conversations get the default title.
func (s *ConversationService) List(ctx context.Context, userID string) ([]ConversationSummary, error) {
	conversations, err := s.repo.ListConversations(ctx, userID, maxConversationPage)
	if err != nil {
		return nil, fmt.Errorf("list conversations: %w", err)
	}

	summaries := make([]ConversationSummary, len(conversations))
	for i, c := range conversations {
		summaries[i] = ConversationSummary{
			ID:        c.ID,
			Title:     c.DisplayTitle(),
			Mode:      c.Mode,
			UpdatedAt: c.EffectiveUpdatedAt(),
		}
	}

	return summaries, nil
}
