package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/alex-pricope/hackathon-judging/logging"
)

type SQLRatingStorage struct {
	Database *SQLDatabase
}

func (s *SQLRatingStorage) GetAll(ctx context.Context) ([]*Rating, error) {
	return s.list(ctx, `SELECT team_id, judge_id, scores, updated_at FROM ratings`)
}

func (s *SQLRatingStorage) GetByJudge(ctx context.Context, judgeID string) ([]*Rating, error) {
	return s.list(ctx, `SELECT team_id, judge_id, scores, updated_at FROM ratings WHERE judge_id = ?`, judgeID)
}

func (s *SQLRatingStorage) Get(ctx context.Context, teamID, judgeID string) (*Rating, error) {
	var rating Rating
	var raw []byte
	err := s.Database.queryRow(ctx,
		`SELECT team_id, judge_id, scores, updated_at FROM ratings WHERE team_id = ? AND judge_id = ?`,
		teamID, judgeID).Scan(&rating.TeamID, &rating.JudgeID, &raw, &rating.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		logging.Log.Errorf("RATING: select for team %s judge %s failed: %v", teamID, judgeID, err)
		return nil, err
	}
	if err := json.Unmarshal(raw, &rating.Scores); err != nil {
		return nil, fmt.Errorf("decode scores: %w", err)
	}
	return &rating, nil
}

func (s *SQLRatingStorage) list(ctx context.Context, query string, args ...any) ([]*Rating, error) {
	rows, err := s.Database.query(ctx, query, args...)
	if err != nil {
		logging.Log.Errorf("RATING: select failed: %v", err)
		return nil, err
	}
	defer rows.Close()

	ratings := make([]*Rating, 0)
	for rows.Next() {
		var rating Rating
		var raw []byte
		if err := rows.Scan(&rating.TeamID, &rating.JudgeID, &raw, &rating.UpdatedAt); err != nil {
			logging.Log.Errorf("RATING: failed to scan rating: %v", err)
			return nil, err
		}
		if err := json.Unmarshal(raw, &rating.Scores); err != nil {
			return nil, fmt.Errorf("decode scores of team %s judge %s: %w", rating.TeamID, rating.JudgeID, err)
		}
		ratings = append(ratings, &rating)
	}
	return ratings, rows.Err()
}

func (s *SQLRatingStorage) Upsert(ctx context.Context, rating *Rating) error {
	if rating.UpdatedAt.IsZero() {
		rating.UpdatedAt = time.Now().UTC()
	}
	scores := rating.Scores
	if scores == nil {
		scores = map[string]float64{}
	}
	raw, err := json.Marshal(scores)
	if err != nil {
		return fmt.Errorf("encode scores: %w", err)
	}

	_, err = s.Database.exec(ctx, `
		INSERT INTO ratings (team_id, judge_id, scores, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (team_id, judge_id)
		DO UPDATE SET scores = excluded.scores, updated_at = excluded.updated_at`,
		rating.TeamID, rating.JudgeID, string(raw), rating.UpdatedAt)
	if err != nil {
		logging.Log.Errorf("RATING: failed to upsert rating: %v", err)
		return err
	}
	return nil
}

func (s *SQLRatingStorage) DeleteByTeam(ctx context.Context, teamID string) error {
	res, err := s.Database.exec(ctx, `DELETE FROM ratings WHERE team_id = ?`, teamID)
	if err != nil {
		logging.Log.Errorf("RATING: failed to delete ratings of team %s: %v", teamID, err)
		return err
	}
	n, _ := res.RowsAffected()
	logging.Log.Infof("RATING: deleted %d ratings of team %s", n, teamID)
	return nil
}

func (s *SQLRatingStorage) DeleteByJudge(ctx context.Context, judgeID string) error {
	res, err := s.Database.exec(ctx, `DELETE FROM ratings WHERE judge_id = ?`, judgeID)
	if err != nil {
		logging.Log.Errorf("RATING: failed to delete ratings of judge %s: %v", judgeID, err)
		return err
	}
	n, _ := res.RowsAffected()
	logging.Log.Infof("RATING: deleted %d ratings of judge %s", n, judgeID)
	return nil
}
