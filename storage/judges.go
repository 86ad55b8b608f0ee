package storage

import (
	"context"
	"errors"
	"sort"

	"github.com/alex-pricope/hackathon-judging/logging"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type JudgeStorage interface {
	Get(ctx context.Context, id string) (*Judge, error)
	GetBySecret(ctx context.Context, secretID string) (*Judge, error)
	GetAll(ctx context.Context) ([]*Judge, error)
	Create(ctx context.Context, judge *Judge) error
	Delete(ctx context.Context, id string) error
}

type DynamoJudgeStorage struct {
	Client    *dynamodb.Client
	TableName string
}

func (s *DynamoJudgeStorage) Get(ctx context.Context, id string) (*Judge, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"PK": id})
	if err != nil {
		logging.Log.Errorf("JUDGE: failed to marshal key: %v", err)
		return nil, err
	}

	out, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: &s.TableName,
		Key:       key,
	})
	if err != nil {
		logging.Log.Errorf("JUDGE: GetItem for ID %s failed: %v", id, err)
		return nil, err
	}
	if out.Item == nil {
		return nil, ErrNotFound
	}

	var judge Judge
	if err := attributevalue.UnmarshalMap(out.Item, &judge); err != nil {
		logging.Log.Errorf("JUDGE: failed to unmarshal judge: %v", err)
		return nil, err
	}
	return &judge, nil
}

func (s *DynamoJudgeStorage) GetBySecret(ctx context.Context, secretID string) (*Judge, error) {
	items, err := scanAll(ctx, s.Client, &dynamodb.ScanInput{
		TableName:        &s.TableName,
		FilterExpression: aws.String("SecretID = :secret"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":secret": &types.AttributeValueMemberS{Value: secretID},
		},
	})
	if err != nil {
		logging.Log.Errorf("JUDGE: scan by secret failed: %v", err)
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrNotFound
	}

	var judge Judge
	if err := attributevalue.UnmarshalMap(items[0], &judge); err != nil {
		logging.Log.Errorf("JUDGE: failed to unmarshal judge: %v", err)
		return nil, err
	}
	return &judge, nil
}

func (s *DynamoJudgeStorage) GetAll(ctx context.Context) ([]*Judge, error) {
	items, err := scanAll(ctx, s.Client, &dynamodb.ScanInput{
		TableName: &s.TableName,
	})
	if err != nil {
		logging.Log.Errorf("JUDGE: scan failed: %v", err)
		return nil, err
	}

	judges := make([]*Judge, 0, len(items))
	if err := attributevalue.UnmarshalListOfMaps(items, &judges); err != nil {
		logging.Log.Errorf("JUDGE: failed to unmarshal list: %v", err)
		return nil, err
	}
	sort.SliceStable(judges, func(i, j int) bool {
		return judges[i].CreatedAt.Before(judges[j].CreatedAt)
	})
	return judges, nil
}

// Create rejects a judge whose ID or secret is already taken. The secret check
// is a scan, so two concurrent creates with the same secret can both pass it.
func (s *DynamoJudgeStorage) Create(ctx context.Context, judge *Judge) error {
	existing, err := s.GetBySecret(ctx, judge.SecretID)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	if existing != nil {
		logging.Log.Warnf("JUDGE: secret %s already in use", judge.SecretID)
		return ErrAlreadyExists
	}

	item, err := attributevalue.MarshalMap(judge)
	if err != nil {
		logging.Log.Errorf("JUDGE: failed to marshal judge: %v", err)
		return err
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           &s.TableName,
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(PK)"),
	})
	if err != nil {
		var cce *types.ConditionalCheckFailedException
		if errors.As(err, &cce) {
			logging.Log.Warnf("JUDGE: item with ID %s already exists", judge.ID)
			return ErrAlreadyExists
		}
		logging.Log.Errorf("JUDGE: PUT storage failed: %v", err)
		return err
	}
	return nil
}

func (s *DynamoJudgeStorage) Delete(ctx context.Context, id string) error {
	key, err := attributevalue.MarshalMap(map[string]string{"PK": id})
	if err != nil {
		logging.Log.Errorf("JUDGE: failed to marshal key: %v", err)
		return err
	}

	_, err = s.Client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: &s.TableName,
		Key:       key,
	})
	if err != nil {
		logging.Log.Errorf("JUDGE: DEL storage item failed: %v", err)
		return err
	}
	logging.Log.Infof("JUDGE: deleted judge with ID %s", id)
	return nil
}
