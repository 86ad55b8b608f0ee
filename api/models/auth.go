package models

import "github.com/alex-pricope/hackathon-judging/auth"

type LoginRequest struct {
	LoginCode string `json:"loginCode" binding:"required"`
}

type LoginResponse struct {
	Success bool           `json:"success"`
	Role    auth.Role      `json:"role"`
	User    *JudgeIdentity `json:"user,omitempty"`
}

type JudgeIdentity struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type SessionResponse struct {
	Role    auth.Role `json:"role"`
	Subject string    `json:"sub"`
	Name    string    `json:"name,omitempty"`
	Expires int64     `json:"exp"`
}

func TransformClaims(c *auth.Claims) SessionResponse {
	resp := SessionResponse{
		Role:    c.Role,
		Subject: c.Subject,
		Name:    c.Name,
	}
	if c.ExpiresAt != nil {
		resp.Expires = c.ExpiresAt.Unix()
	}
	return resp
}
