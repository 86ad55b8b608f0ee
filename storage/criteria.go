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

type CriterionStorage interface {
	GetAll(ctx context.Context) ([]*Criterion, error)
	Create(ctx context.Context, criterion *Criterion) error
	Delete(ctx context.Context, id string) error
}

type DynamoCriterionStorage struct {
	Client    *dynamodb.Client
	TableName string
}

func (s *DynamoCriterionStorage) GetAll(ctx context.Context) ([]*Criterion, error) {
	items, err := scanAll(ctx, s.Client, &dynamodb.ScanInput{
		TableName: &s.TableName,
	})
	if err != nil {
		logging.Log.Errorf("CRITERION: scan failed: %v", err)
		return nil, err
	}

	criteria := make([]*Criterion, 0, len(items))
	if err := attributevalue.UnmarshalListOfMaps(items, &criteria); err != nil {
		logging.Log.Errorf("CRITERION: failed to unmarshal list: %v", err)
		return nil, err
	}
	sort.SliceStable(criteria, func(i, j int) bool {
		return criteria[i].CreatedAt.Before(criteria[j].CreatedAt)
	})
	return criteria, nil
}

func (s *DynamoCriterionStorage) Create(ctx context.Context, criterion *Criterion) error {
	item, err := attributevalue.MarshalMap(criterion)
	if err != nil {
		logging.Log.Errorf("CRITERION: failed to marshal criterion: %v", err)
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
			logging.Log.Warnf("CRITERION: item with ID %s already exists", criterion.ID)
			return ErrAlreadyExists
		}
		logging.Log.Errorf("CRITERION: failed to create criterion: %v", err)
		return err
	}
	return nil
}

func (s *DynamoCriterionStorage) Delete(ctx context.Context, id string) error {
	key, err := attributevalue.MarshalMap(map[string]string{"PK": id})
	if err != nil {
		logging.Log.Errorf("CRITERION: failed to marshal delete key for ID %s: %v", id, err)
		return err
	}

	_, err = s.Client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: &s.TableName,
		Key:       key,
	})
	if err != nil {
		logging.Log.Errorf("CRITERION: failed to delete criterion with ID %s: %v", id, err)
		return err
	}
	logging.Log.Infof("CRITERION: deleted criterion with ID %s", id)
	return nil
}
