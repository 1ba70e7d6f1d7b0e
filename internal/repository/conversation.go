package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/lumeo/lumeo/internal/model"
)

// ErrConversationNotFound is returned when a conversation does not exist.
var ErrConversationNotFound = errors.New("conversation not found")

// ListConversations returns a user's conversations ordered by recency:
// updated_at when set, otherwise created_at, newest first.
func (r *Repository) ListConversations(ctx context.Context, userID string, limit int) ([]*model.Conversation, error) {
	query := `
		SELECT id, user_id, title, mode, created_at, updated_at
		FROM conversations
		WHERE user_id = $1
		ORDER BY COALESCE(updated_at, created_at) DESC, id DESC
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list conversations: %w", err)
	}
	defer rows.Close()

	var conversations []*model.Conversation
	for rows.Next() {
		var c model.Conversation
		err := rows.Scan(
			&c.ID,
			&c.UserID,
			&c.Title,
			&c.Mode,
			&c.CreatedAt,
			&c.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan conversation: %w", err)
		}
		conversations = append(conversations, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate conversations: %w", err)
	}

	return conversations, nil
}

// CreateConversation inserts a new conversation. Used by the chat/editor
// collaborator when it opens a new session for a user.
func (r *Repository) CreateConversation(ctx context.Context, c *model.Conversation) error {
	query := `
		INSERT INTO conversations (id, user_id, title, mode, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.pool.Exec(ctx, query,
		c.ID,
		c.UserID,
		c.Title,
		c.Mode,
		c.CreatedAt,
		c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create conversation: %w", err)
	}

	return nil
}

// TouchConversation bumps a conversation's update timestamp, optionally
// retitling it.
func (r *Repository) TouchConversation(ctx context.Context, id string, title *string) error {
	query := `
		UPDATE conversations
		SET updated_at = $1,
		    title = COALESCE($2, title)
		WHERE id = $3
	`

	tag, err := r.pool.Exec(ctx, query, time.Now().UTC(), title, id)
	if err != nil {
		return fmt.Errorf("failed to touch conversation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrConversationNotFound
	}

	return nil
}

// GetConversationByID retrieves a single conversation.
func (r *Repository) GetConversationByID(ctx context.Context, id string) (*model.Conversation, error) {
	query := `
		SELECT id, user_id, title, mode, created_at, updated_at
		FROM conversations
		WHERE id = $1
	`

	var c model.Conversation
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&c.ID,
		&c.UserID,
		&c.Title,
		&c.Mode,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrConversationNotFound
		}
		return nil, fmt.Errorf("failed to get conversation: %w", err)
	}

	return &c, nil
}
