package storage

import (
	"context"

	"github.com/alex-pricope/hackathon-judging/logging"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// StateStorage holds the team currently being judged. An empty ID means none.
type StateStorage interface {
	GetActiveTeam(ctx context.Context) (string, error)
	SetActiveTeam(ctx context.Context, teamID string) error
}

const appStateKey = "app"

type DynamoStateStorage struct {
	Client    *dynamodb.Client
	TableName string
}

func (s *DynamoStateStorage) GetActiveTeam(ctx context.Context) (string, error) {
	out, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: &s.TableName,
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: appStateKey},
		},
	})
	if err != nil {
		logging.Log.Errorf("STATE: GetItem failed: %v", err)
		return "", err
	}
	if out.Item == nil {
		return "", nil
	}

	var state appState
	if err := attributevalue.UnmarshalMap(out.Item, &state); err != nil {
		logging.Log.Errorf("STATE: failed to unmarshal state: %v", err)
		return "", err
	}
	return state.ActiveTeamID, nil
}

func (s *DynamoStateStorage) SetActiveTeam(ctx context.Context, teamID string) error {
	item, err := attributevalue.MarshalMap(appState{Key: appStateKey, ActiveTeamID: teamID})
	if err != nil {
		logging.Log.Errorf("STATE: failed to marshal state: %v", err)
		return err
	}
	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: &s.TableName,
		Item:      item,
	})
	if err != nil {
		logging.Log.Errorf("STATE: failed to set active team: %v", err)
		return err
	}
	logging.Log.Infof("STATE: active team set to %q", teamID)
	return nil
}
