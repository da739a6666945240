package dynamo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/ibeloyar/orderfuncs/internal/model"
	"github.com/ibeloyar/orderfuncs/pgk/retry"
)

// maxBatchSize - лимит BatchWriteItem на один запрос
const maxBatchSize = 25

var ErrUnprocessedItems = errors.New("unprocessed items left after batch write")

type Client interface {
	BatchWriteItem(ctx context.Context, params *dynamodb.BatchWriteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.BatchWriteItemOutput, error)
}

type Repository struct {
	client  Client
	table   string
	retrier *retry.Retrier
}

func New(client Client, table string) *Repository {
	return &Repository{
		client: client,
		table:  table,
		retrier: retry.New(retry.Config{
			MaxRetries: 5,
			BaseDelay:  50 * time.Millisecond,
			MaxDelay:   2 * time.Second,
		}),
	}
}

// PutBatch пишет записи пачками по 25 и дописывает UnprocessedItems.
// Ошибка любой пачки прерывает весь вызов, уже записанное не откатывается.
func (r *Repository) PutBatch(ctx context.Context, records []model.OrderRecord) error {
	requests := make([]types.WriteRequest, 0, len(records))
	for i, record := range records {
		item, err := MarshalItem(record)
		if err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
		requests = append(requests, types.WriteRequest{PutRequest: &types.PutRequest{Item: item}})
	}

	for start := 0; start < len(requests); start += maxBatchSize {
		end := min(start+maxBatchSize, len(requests))
		if err := r.flush(ctx, requests[start:end]); err != nil {
			return err
		}
	}

	return nil
}

func (r *Repository) flush(ctx context.Context, pending []types.WriteRequest) error {
	return r.retrier.Do(ctx, func(ctx context.Context) error {
		out, err := r.client.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{
			RequestItems: map[string][]types.WriteRequest{
				r.table: pending,
			},
		})
		if err != nil {
			return fmt.Errorf("batch write to %s: %w", r.table, err)
		}

		if out != nil {
			pending = out.UnprocessedItems[r.table]
		} else {
			pending = nil
		}

		if len(pending) > 0 {
			return retry.Retryable(fmt.Errorf("%w: %d", ErrUnprocessedItems, len(pending)))
		}

		return nil
	})
}
