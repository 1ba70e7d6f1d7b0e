package dto

import (
	"time"

	"github.com/lumeo/lumeo/internal/service"
)

// ConversationResponse represents one conversation summary.
type ConversationResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Mode      string    `json:"mode"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ToConversationListResponse converts conversation summaries to DTOs.
func ToConversationListResponse(summaries []service.ConversationSummary) []ConversationResponse {
	responses := make([]ConversationResponse, len(summaries))
	for i, s := range summaries {
		responses[i] = ConversationResponse{
			ID:        s.ID,
			Title:     s.Title,
			Mode:      string(s.Mode),
			UpdatedAt: s.UpdatedAt,
		}
	}
	return responses
}
