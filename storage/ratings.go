package storage

import (
	"context"
	"time"

	"github.com/alex-pricope/hackathon-judging/logging"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// RatingStorage keeps at most one rating per (team, judge) pair.
type RatingStorage interface {
	GetAll(ctx context.Context) ([]*Rating, error)
	GetByJudge(ctx context.Context, judgeID string) ([]*Rating, error)
	Get(ctx context.Context, teamID, judgeID string) (*Rating, error)
	// Upsert replaces any earlier rating for the same pair.
	Upsert(ctx context.Context, rating *Rating) error
	DeleteByTeam(ctx context.Context, teamID string) error
	DeleteByJudge(ctx context.Context, judgeID string) error
}

type DynamoRatingStorage struct {
	Client    *dynamodb.Client
	TableName string
}

func (s *DynamoRatingStorage) GetAll(ctx context.Context) ([]*Rating, error) {
	items, err := scanAll(ctx, s.Client, &dynamodb.ScanInput{
		TableName: &s.TableName,
	})
	if err != nil {
		logging.Log.Errorf("RATING: scan failed: %v", err)
		return nil, err
	}

	ratings := make([]*Rating, 0, len(items))
	if err := attributevalue.UnmarshalListOfMaps(items, &ratings); err != nil {
		logging.Log.Errorf("RATING: failed to unmarshal rating list: %v", err)
		return nil, err
	}
	return ratings, nil
}

func (s *DynamoRatingStorage) GetByJudge(ctx context.Context, judgeID string) ([]*Rating, error) {
	items, err := scanAll(ctx, s.Client, &dynamodb.ScanInput{
		TableName:        &s.TableName,
		FilterExpression: aws.String("SK = :judge"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":judge": &types.AttributeValueMemberS{Value: judgeID},
		},
	})
	if err != nil {
		logging.Log.Errorf("RATING: failed to scan ratings of judge %s: %v", judgeID, err)
		return nil, err
	}

	ratings := make([]*Rating, 0, len(items))
	if err := attributevalue.UnmarshalListOfMaps(items, &ratings); err != nil {
		logging.Log.Errorf("RATING: failed to unmarshal ratings of judge %s: %v", judgeID, err)
		return nil, err
	}
	return ratings, nil
}

func (s *DynamoRatingStorage) Get(ctx context.Context, teamID, judgeID string) (*Rating, error) {
	out, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: &s.TableName,
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: teamID},
			"SK": &types.AttributeValueMemberS{Value: judgeID},
		},
	})
	if err != nil {
		logging.Log.Errorf("RATING: GetItem for team %s judge %s failed: %v", teamID, judgeID, err)
		return nil, err
	}
	if out.Item == nil {
		return nil, ErrNotFound
	}

	var rating Rating
	if err := attributevalue.UnmarshalMap(out.Item, &rating); err != nil {
		logging.Log.Errorf("RATING: failed to unmarshal rating: %v", err)
		return nil, err
	}
	return &rating, nil
}

func (s *DynamoRatingStorage) Upsert(ctx context.Context, rating *Rating) error {
	if rating.UpdatedAt.IsZero() {
		rating.UpdatedAt = time.Now().UTC()
	}
	item, err := attributevalue.MarshalMap(rating)
	if err != nil {
		logging.Log.Errorf("RATING: failed to marshal rating: %v", err)
		return err
	}
	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: &s.TableName,
		Item:      item,
	})
	if err != nil {
		logging.Log.Errorf("RATING: failed to put rating: %v", err)
		return err
	}
	return nil
}

func (s *DynamoRatingStorage) DeleteByTeam(ctx context.Context, teamID string) error {
	items, err := queryAll(ctx, s.Client, &dynamodb.QueryInput{
		TableName:              &s.TableName,
		KeyConditionExpression: aws.String("PK = :team"),
		ProjectionExpression:   aws.String("PK, SK"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":team": &types.AttributeValueMemberS{Value: teamID},
		},
	})
	if err != nil {
		logging.Log.Errorf("RATING: query for delete of team %s failed: %v", teamID, err)
		return err
	}
	return s.deleteItems(ctx, items)
}

func (s *DynamoRatingStorage) DeleteByJudge(ctx context.Context, judgeID string) error {
	items, err := scanAll(ctx, s.Client, &dynamodb.ScanInput{
		TableName:            &s.TableName,
		FilterExpression:     aws.String("SK = :judge"),
		ProjectionExpression: aws.String("PK, SK"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":judge": &types.AttributeValueMemberS{Value: judgeID},
		},
	})
	if err != nil {
		logging.Log.Errorf("RATING: scan for delete of judge %s failed: %v", judgeID, err)
		return err
	}
	return s.deleteItems(ctx, items)
}

func (s *DynamoRatingStorage) deleteItems(ctx context.Context, items []map[string]types.AttributeValue) error {
	return deleteRatingKeys(ctx, s.Client, s.TableName, items)
}

// deleteRatingKeys batches deletes by 25, the BatchWriteItem limit.
func deleteRatingKeys(ctx context.Context, client batchWriter, table string, items []map[string]types.AttributeValue) error {
	writeRequests := make([]types.WriteRequest, 0, len(items))
	for _, item := range items {
		writeRequests = append(writeRequests, types.WriteRequest{
			DeleteRequest: &types.DeleteRequest{
				Key: map[string]types.AttributeValue{
					"PK": item["PK"],
					"SK": item["SK"],
				},
			},
		})
	}

	for i := 0; i < len(writeRequests); i += 25 {
		end := min(i+25, len(writeRequests))
		if err := writeBatch(ctx, client, table, writeRequests[i:end]); err != nil {
			logging.Log.Errorf("RATING: batch delete failed: %v", err)
			return err
		}
		logging.Log.Infof("RATING: deleted batch of %d items", end-i)
	}
	return nil
}
