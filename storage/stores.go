package storage

import "context"

type Pinger interface {
	Ping(ctx context.Context) error
}

// Stores bundles one implementation of every storage interface.
type Stores struct {
	Teams    TeamStorage
	Judges   JudgeStorage
	Criteria CriterionStorage
	Ratings  RatingStorage
	State    StateStorage
	Health   Pinger
}

func NewSQLStores(db *SQLDatabase) *Stores {
	return &Stores{
		Teams:    &SQLTeamStorage{Database: db},
		Judges:   &SQLJudgeStorage{Database: db},
		Criteria: &SQLCriterionStorage{Database: db},
		Ratings:  &SQLRatingStorage{Database: db},
		State:    &SQLStateStorage{Database: db},
		Health:   db,
	}
}
