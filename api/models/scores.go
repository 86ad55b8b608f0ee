package models

import (
	"github.com/alex-pricope/hackathon-judging/scoring"
	"github.com/alex-pricope/hackathon-judging/storage"
)

type ScoreSubmitRequest struct {
	TeamID  string             `json:"teamId" binding:"required"`
	JudgeID string             `json:"judgeId"`
	Scores  map[string]float64 `json:"scores" binding:"required"`
}

type RatingResponse struct {
	TeamID  string             `json:"teamId"`
	JudgeID string             `json:"judgeId"`
	Scores  map[string]float64 `json:"scores"`
}

func TransformRatingFromStorage(r *storage.Rating) RatingResponse {
	scores := r.Scores
	if scores == nil {
		scores = map[string]float64{}
	}
	return RatingResponse{
		TeamID:  r.TeamID,
		JudgeID: r.JudgeID,
		Scores:  scores,
	}
}

// Snapshot is everything the leaderboard needs, read from storage.
type Snapshot struct {
	Teams    []*storage.Team
	Judges   []*storage.Judge
	Criteria []*storage.Criterion
	Ratings  []*storage.Rating
}

func (s *Snapshot) FinalScores() []scoring.FinalScore {
	teams := make([]scoring.Team, 0, len(s.Teams))
	for _, t := range s.Teams {
		teams = append(teams, scoring.Team{ID: t.ID, Name: t.Name})
	}
	judges := make([]scoring.Judge, 0, len(s.Judges))
	for _, j := range s.Judges {
		judges = append(judges, scoring.Judge{ID: j.ID})
	}
	criteria := make([]scoring.Criterion, 0, len(s.Criteria))
	for _, c := range s.Criteria {
		criteria = append(criteria, scoring.Criterion{ID: c.ID, MaxScore: c.MaxScore})
	}
	ratings := make([]scoring.Rating, 0, len(s.Ratings))
	for _, r := range s.Ratings {
		ratings = append(ratings, scoring.Rating{TeamID: r.TeamID, JudgeID: r.JudgeID, Scores: r.Scores})
	}
	return scoring.ComputeFinalScores(teams, judges, criteria, ratings)
}
