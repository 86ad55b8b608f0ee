package storage

import (
	"context"

	"github.com/alex-pricope/hackathon-judging/logging"
)

type SQLCriterionStorage struct {
	Database *SQLDatabase
}

func (s *SQLCriterionStorage) GetAll(ctx context.Context) ([]*Criterion, error) {
	rows, err := s.Database.query(ctx, `SELECT id, name, max_score, weight, created_at FROM criteria ORDER BY created_at ASC`)
	if err != nil {
		logging.Log.Errorf("CRITERION: select all failed: %v", err)
		return nil, err
	}
	defer rows.Close()

	criteria := make([]*Criterion, 0)
	for rows.Next() {
		var c Criterion
		if err := rows.Scan(&c.ID, &c.Name, &c.MaxScore, &c.Weight, &c.CreatedAt); err != nil {
			logging.Log.Errorf("CRITERION: failed to scan criterion: %v", err)
			return nil, err
		}
		criteria = append(criteria, &c)
	}
	return criteria, rows.Err()
}

func (s *SQLCriterionStorage) Create(ctx context.Context, c *Criterion) error {
	_, err := s.Database.exec(ctx, `INSERT INTO criteria (id, name, max_score, weight, created_at) VALUES (?, ?, ?, ?, ?)`,
		c.ID, c.Name, c.MaxScore, c.Weight, c.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			logging.Log.Warnf("CRITERION: item with ID %s already exists", c.ID)
			return ErrAlreadyExists
		}
		logging.Log.Errorf("CRITERION: failed to create criterion: %v", err)
		return err
	}
	return nil
}

func (s *SQLCriterionStorage) Delete(ctx context.Context, id string) error {
	if _, err := s.Database.exec(ctx, `DELETE FROM criteria WHERE id = ?`, id); err != nil {
		logging.Log.Errorf("CRITERION: failed to delete criterion with ID %s: %v", id, err)
		return err
	}
	logging.Log.Infof("CRITERION: deleted criterion with ID %s", id)
	return nil
}
