package models

import (
	"time"

	"github.com/alex-pricope/hackathon-judging/storage"
)

type TeamCreateRequest struct {
	Name string `json:"name" binding:"required"`
}

type TeamResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

func TransformTeamFromStorage(t *storage.Team) TeamResponse {
	return TeamResponse{
		ID:        t.ID,
		Name:      t.Name,
		CreatedAt: t.CreatedAt,
	}
}
