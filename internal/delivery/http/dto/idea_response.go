package dto

import (
	"time"

	"launchboard/internal/domain/idea"
	"launchboard/internal/domain/profile"
)

type IdeaResponse struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type IdeaListItem struct {
	IdeaResponse
	Owner profile.Public `json:"owner"`
}

func NewIdeaResponse(i idea.Idea) IdeaResponse {
	return IdeaResponse{
		ID:          i.ID.String(),
		OwnerID:     i.OwnerID,
		Title:       i.Title,
		Description: i.Description,
		Status:      string(i.Status),
		CreatedAt:   i.CreatedAt,
		UpdatedAt:   i.UpdatedAt,
	}
}

func NewIdeaList(items []idea.WithOwner) []IdeaListItem {
	out := make([]IdeaListItem, 0, len(items))
	for _, w := range items {
		out = append(out, IdeaListItem{
			IdeaResponse: NewIdeaResponse(w.Idea),
			Owner:        w.Owner,
		})
	}
	return out
}
