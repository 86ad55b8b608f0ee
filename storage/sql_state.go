package storage

import (
	"context"
	"database/sql"
	"errors"

	"github.com/alex-pricope/hackathon-judging/logging"
)

type SQLStateStorage struct {
	Database *SQLDatabase
}

func (s *SQLStateStorage) GetActiveTeam(ctx context.Context) (string, error) {
	var teamID sql.NullString
	err := s.Database.queryRow(ctx, `SELECT active_team_id FROM app_state WHERE id = 1`).Scan(&teamID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		logging.Log.Errorf("STATE: select failed: %v", err)
		return "", err
	}
	return teamID.String, nil
}

func (s *SQLStateStorage) SetActiveTeam(ctx context.Context, teamID string) error {
	value := sql.NullString{String: teamID, Valid: teamID != ""}
	_, err := s.Database.exec(ctx, `
		INSERT INTO app_state (id, active_team_id) VALUES (1, ?)
		ON CONFLICT (id) DO UPDATE SET active_team_id = excluded.active_team_id`, value)
	if err != nil {
		logging.Log.Errorf("STATE: failed to set active team: %v", err)
		return err
	}
	logging.Log.Infof("STATE: active team set to %q", teamID)
	return nil
}
