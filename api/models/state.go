package models

// ActiveTeamRequest sets the team being judged; a null teamId clears it.
type ActiveTeamRequest struct {
	TeamID *string `json:"teamId"`
}

type ActiveTeamResponse struct {
	TeamID *string `json:"teamId"`
}
