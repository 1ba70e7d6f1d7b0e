package model

import "time"

// ConversationMode identifies which surface of the product owns a conversation.
type ConversationMode string

const (
	ModeChat   ConversationMode = "chat"
	ModeImage  ConversationMode = "image"
	ModeStudio ConversationMode = "studio"
)

// DefaultConversationTitle is used when a conversation has no title yet.
const DefaultConversationTitle = "New conversation"

// Conversation is owned by the chat/editor feature; this service only
// lists and orders them for the owning user.
type Conversation struct {
	ID        string           `json:"id"`
	UserID    string           `json:"user_id"`
	Title     string           `json:"title"`
	Mode      ConversationMode `json:"mode"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt *time.Time       `json:"updated_at,omitempty"`
}

// EffectiveUpdatedAt returns the timestamp used for recency ordering:
// the update timestamp when present, otherwise the creation timestamp.
func (c *Conversation) EffectiveUpdatedAt() time.Time {
	if c.UpdatedAt != nil {
		return *c.UpdatedAt
	}
	return c.CreatedAt
}

// DisplayTitle returns the title, defaulted when empty.
func (c *Conversation) DisplayTitle() string {
	if c.Title == "" {
		return DefaultConversationTitle
	}
	return c.Title
}
