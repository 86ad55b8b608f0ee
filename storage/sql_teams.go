package storage

import (
	"context"
	"database/sql"
	"errors"

	"github.com/alex-pricope/hackathon-judging/logging"
)

type SQLTeamStorage struct {
	Database *SQLDatabase
}

func (s *SQLTeamStorage) Get(ctx context.Context, id string) (*Team, error) {
	var team Team
	err := s.Database.queryRow(ctx, `SELECT id, name, created_at FROM teams WHERE id = ?`, id).
		Scan(&team.ID, &team.Name, &team.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		logging.Log.Errorf("TEAM: select for ID %s failed: %v", id, err)
		return nil, err
	}
	return &team, nil
}

func (s *SQLTeamStorage) GetAll(ctx context.Context) ([]*Team, error) {
	rows, err := s.Database.query(ctx, `SELECT id, name, created_at FROM teams ORDER BY created_at ASC`)
	if err != nil {
		logging.Log.Errorf("TEAM: select all failed: %v", err)
		return nil, err
	}
	defer rows.Close()

	teams := make([]*Team, 0)
	for rows.Next() {
		var team Team
		if err := rows.Scan(&team.ID, &team.Name, &team.CreatedAt); err != nil {
			logging.Log.Errorf("TEAM: failed to scan team: %v", err)
			return nil, err
		}
		teams = append(teams, &team)
	}
	return teams, rows.Err()
}

func (s *SQLTeamStorage) Create(ctx context.Context, team *Team) error {
	_, err := s.Database.exec(ctx, `INSERT INTO teams (id, name, created_at) VALUES (?, ?, ?)`,
		team.ID, team.Name, team.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			logging.Log.Warnf("TEAM: item with ID %s already exists", team.ID)
			return ErrAlreadyExists
		}
		logging.Log.Errorf("TEAM: failed to create team: %v", err)
		return err
	}
	return nil
}

func (s *SQLTeamStorage) Delete(ctx context.Context, id string) error {
	if _, err := s.Database.exec(ctx, `DELETE FROM teams WHERE id = ?`, id); err != nil {
		logging.Log.Errorf("TEAM: failed to delete team with ID %s: %v", id, err)
		return err
	}
	logging.Log.Infof("TEAM: deleted team with ID %s", id)
	return nil
}
