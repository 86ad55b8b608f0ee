package storage

import "time"

type Team struct {
	ID        string    `dynamodbav:"PK"`
	Name      string    `dynamodbav:"Name"`
	CreatedAt time.Time `dynamodbav:"CreatedAt"`
}

type Judge struct {
	ID        string    `dynamodbav:"PK"`
	Name      string    `dynamodbav:"Name"`
	SecretID  string    `dynamodbav:"SecretID"` // Login code
	CreatedAt time.Time `dynamodbav:"CreatedAt"`
}

type Criterion struct {
	ID        string    `dynamodbav:"PK"`
	Name      string    `dynamodbav:"Name"`
	MaxScore  float64   `dynamodbav:"MaxScore"`
	Weight    float64   `dynamodbav:"Weight"`
	CreatedAt time.Time `dynamodbav:"CreatedAt"`
}

// Rating holds one judge's scores for one team, keyed by criterion ID.
type Rating struct {
	TeamID    string             `dynamodbav:"PK"`
	JudgeID   string             `dynamodbav:"SK"`
	Scores    map[string]float64 `dynamodbav:"Scores"`
	UpdatedAt time.Time          `dynamodbav:"UpdatedAt"`
}

type appState struct {
	Key          string `dynamodbav:"PK"`
	ActiveTeamID string `dynamodbav:"ActiveTeamID"`
}
