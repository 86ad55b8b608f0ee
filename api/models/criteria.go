package models

import (
	"time"

	"github.com/alex-pricope/hackathon-judging/storage"
)

// CriterionCreateRequest accepts weight as a fallback for maxScore, which
// older admin clients sent instead.
type CriterionCreateRequest struct {
	Name     string   `json:"name" binding:"required"`
	MaxScore *float64 `json:"maxScore"`
	Weight   *float64 `json:"weight"`
}

type CriterionResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	MaxScore  float64   `json:"maxScore"`
	Weight    float64   `json:"weight"`
	CreatedAt time.Time `json:"createdAt"`
}

func TransformCriterionFromStorage(c *storage.Criterion) CriterionResponse {
	return CriterionResponse{
		ID:        c.ID,
		Name:      c.Name,
		MaxScore:  c.MaxScore,
		Weight:    c.Weight,
		CreatedAt: c.CreatedAt,
	}
}
