// Package scoring turns raw judge ratings into a ranked leaderboard.
package scoring

import (
	"math"
	"sort"
)

type Team struct {
	ID   string
	Name string
}

type Judge struct {
	ID string
}

type Criterion struct {
	ID       string
	MaxScore float64
}

// Rating is one judge's scores for one team, keyed by criterion ID.
type Rating struct {
	TeamID  string
	JudgeID string
	Scores  map[string]float64
}

type FinalScore struct {
	TeamID        string  `json:"teamId"`
	TeamName      string  `json:"teamName"`
	WeightedScore float64 `json:"weightedScore"`
	Rank          int     `json:"rank"`
}

// ComputeFinalScores ranks every team that has a rating from each judge.
//
// A judge's rating counts as the sum of its values over the sum of all
// criteria maxima, as a percentage; a team's score is the mean over judges,
// rounded to two decimals. Teams missing any rating are left out. Equal
// scores keep the order of teams and still get distinct ranks.
func ComputeFinalScores(teams []Team, judges []Judge, criteria []Criterion, ratings []Rating) []FinalScore {
	results := make([]FinalScore, 0, len(teams))

	totalMaxScore := 0.0
	for _, c := range criteria {
		totalMaxScore += c.MaxScore
	}
	if len(judges) == 0 || len(teams) == 0 || totalMaxScore == 0 {
		return results
	}

	byTeam := make(map[string][]Rating, len(teams))
	for _, r := range ratings {
		byTeam[r.TeamID] = append(byTeam[r.TeamID], r)
	}

	for _, team := range teams {
		teamRatings := byTeam[team.ID]
		if len(teamRatings) != len(judges) {
			continue
		}

		sum := 0.0
		for _, judge := range judges {
			sum += judgePercentage(teamRatings, judge.ID, totalMaxScore)
		}

		results = append(results, FinalScore{
			TeamID:        team.ID,
			TeamName:      team.Name,
			WeightedScore: round2(sum / float64(len(judges))),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].WeightedScore > results[j].WeightedScore
	})
	for i := range results {
		results[i].Rank = i + 1
	}
	return results
}

// judgePercentage is 0 when the judge has no rating among teamRatings, which
// only happens when the count matched through ratings of removed judges.
func judgePercentage(teamRatings []Rating, judgeID string, totalMaxScore float64) float64 {
	for _, r := range teamRatings {
		if r.JudgeID != judgeID {
			continue
		}
		// Sum in key order so repeated calls agree to the last bit.
		keys := make([]string, 0, len(r.Scores))
		for k := range r.Scores {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		raw := 0.0
		for _, k := range keys {
			raw += r.Scores[k]
		}
		return raw / totalMaxScore * 100
	}
	return 0
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
