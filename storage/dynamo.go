package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/alex-pricope/hackathon-judging/logging"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// scanAll walks every page of a scan. The plain Scan call stops at 1MB.
func scanAll(ctx context.Context, client *dynamodb.Client, input *dynamodb.ScanInput) ([]map[string]types.AttributeValue, error) {
	var items []map[string]types.AttributeValue
	paginator := dynamodb.NewScanPaginator(client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		items = append(items, page.Items...)
	}
	return items, nil
}

func queryAll(ctx context.Context, client *dynamodb.Client, input *dynamodb.QueryInput) ([]map[string]types.AttributeValue, error) {
	var items []map[string]types.AttributeValue
	paginator := dynamodb.NewQueryPaginator(client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		items = append(items, page.Items...)
	}
	return items, nil
}

type DynamoTables struct {
	Teams    string
	Judges   string
	Criteria string
	Ratings  string
	State    string
}

func NewDynamoStores(client *dynamodb.Client, tables DynamoTables) *Stores {
	return &Stores{
		Teams:    &DynamoTeamStorage{Client: client, TableName: tables.Teams},
		Judges:   &DynamoJudgeStorage{Client: client, TableName: tables.Judges},
		Criteria: &DynamoCriterionStorage{Client: client, TableName: tables.Criteria},
		Ratings:  &DynamoRatingStorage{Client: client, TableName: tables.Ratings},
		State:    &DynamoStateStorage{Client: client, TableName: tables.State},
		Health:   &DynamoPinger{Client: client, TableName: tables.Teams},
	}
}

// DynamoPinger checks reachability by describing one table.
type DynamoPinger struct {
	Client    *dynamodb.Client
	TableName string
}

func (p *DynamoPinger) Ping(ctx context.Context) error {
	_, err := p.Client.DescribeTable(ctx, &dynamodb.DescribeTableInput{TableName: &p.TableName})
	return err
}

type batchWriter interface {
	BatchWriteItem(ctx context.Context, params *dynamodb.BatchWriteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.BatchWriteItemOutput, error)
}

const maxBatchAttempts = 5

var batchRetryDelay = 50 * time.Millisecond

// writeBatch sends one BatchWriteItem and resends whatever DynamoDB reports
// as unprocessed (throttling returns those without an error), backing off
// between attempts.
func writeBatch(ctx context.Context, client batchWriter, table string, requests []types.WriteRequest) error {
	pending := requests
	for attempt := 1; ; attempt++ {
		out, err := client.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{
			RequestItems: map[string][]types.WriteRequest{table: pending},
		})
		if err != nil {
			return err
		}
		pending = out.UnprocessedItems[table]
		if len(pending) == 0 {
			return nil
		}
		if attempt == maxBatchAttempts {
			return fmt.Errorf("%s: %d of %d writes after %d attempts: %w", table, len(pending), len(requests), attempt, ErrUnprocessedItems)
		}

		logging.Log.Warnf("DYNAMO: %d writes unprocessed in %s, retrying (attempt %d)", len(pending), table, attempt)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(batchRetryDelay << (attempt - 1)):
		}
	}
}
