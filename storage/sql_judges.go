package storage

import (
	"context"
	"database/sql"
	"errors"

	"github.com/alex-pricope/hackathon-judging/logging"
)

type SQLJudgeStorage struct {
	Database *SQLDatabase
}

const judgeColumns = `id, name, secret_id, created_at`

func (s *SQLJudgeStorage) Get(ctx context.Context, id string) (*Judge, error) {
	return s.getOne(ctx, `SELECT `+judgeColumns+` FROM judges WHERE id = ?`, id)
}

func (s *SQLJudgeStorage) GetBySecret(ctx context.Context, secretID string) (*Judge, error) {
	return s.getOne(ctx, `SELECT `+judgeColumns+` FROM judges WHERE secret_id = ?`, secretID)
}

func (s *SQLJudgeStorage) getOne(ctx context.Context, query string, arg string) (*Judge, error) {
	var judge Judge
	err := s.Database.queryRow(ctx, query, arg).
		Scan(&judge.ID, &judge.Name, &judge.SecretID, &judge.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		logging.Log.Errorf("JUDGE: select failed: %v", err)
		return nil, err
	}
	return &judge, nil
}

func (s *SQLJudgeStorage) GetAll(ctx context.Context) ([]*Judge, error) {
	rows, err := s.Database.query(ctx, `SELECT `+judgeColumns+` FROM judges ORDER BY created_at ASC`)
	if err != nil {
		logging.Log.Errorf("JUDGE: select all failed: %v", err)
		return nil, err
	}
	defer rows.Close()

	judges := make([]*Judge, 0)
	for rows.Next() {
		var judge Judge
		if err := rows.Scan(&judge.ID, &judge.Name, &judge.SecretID, &judge.CreatedAt); err != nil {
			logging.Log.Errorf("JUDGE: failed to scan judge: %v", err)
			return nil, err
		}
		judges = append(judges, &judge)
	}
	return judges, rows.Err()
}

func (s *SQLJudgeStorage) Create(ctx context.Context, judge *Judge) error {
	_, err := s.Database.exec(ctx, `INSERT INTO judges (id, name, secret_id, created_at) VALUES (?, ?, ?, ?)`,
		judge.ID, judge.Name, judge.SecretID, judge.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			logging.Log.Warnf("JUDGE: judge %s or secret already exists", judge.ID)
			return ErrAlreadyExists
		}
		logging.Log.Errorf("JUDGE: failed to create judge: %v", err)
		return err
	}
	return nil
}

func (s *SQLJudgeStorage) Delete(ctx context.Context, id string) error {
	if _, err := s.Database.exec(ctx, `DELETE FROM judges WHERE id = ?`, id); err != nil {
		logging.Log.Errorf("JUDGE: failed to delete judge with ID %s: %v", id, err)
		return err
	}
	logging.Log.Infof("JUDGE: deleted judge with ID %s", id)
	return nil
}
