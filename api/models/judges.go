package models

import (
	"time"

	"github.com/alex-pricope/hackathon-judging/storage"
)

// JudgeCodeAlphabet and JudgeCodeLength shape the random part of JUDGE-XXXX codes.
const (
	JudgeCodePrefix   = "JUDGE-"
	JudgeCodeAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	JudgeCodeLength   = 4
)

type JudgeCreateRequest struct {
	Name string `json:"name" binding:"required"`
}

// JudgeResponse includes the login code; only admins can list judges.
type JudgeResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	SecretID  string    `json:"secretId"`
	CreatedAt time.Time `json:"createdAt"`
}

func TransformJudgeFromStorage(j *storage.Judge) JudgeResponse {
	return JudgeResponse{
		ID:        j.ID,
		Name:      j.Name,
		SecretID:  j.SecretID,
		CreatedAt: j.CreatedAt,
	}
}
