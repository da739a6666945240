package pg

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/ibeloyar/orderfuncs/internal/model"
)

var ErrMissingTTL = errors.New("order record has no integer ttl")

// PutBatch пишет все записи одной транзакцией
func (r *Repository) PutBatch(ctx context.Context, records []model.OrderRecord) error {
	rows := make([]orderRow, 0, len(records))
	for i, record := range records {
		row, err := newOrderRow(record)
		if err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
		rows = append(rows, row)
	}

	return r.executeWithRetry(ctx, func(ctx context.Context) error {
		tx, err := r.db.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		defer tx.Rollback()

		for _, row := range rows {
			if _, err := tx.ExecContext(ctx, `INSERT INTO orders (item, ttl) VALUES ($1, $2)`, row.item, row.ttl); err != nil {
				return err
			}
		}

		return tx.Commit()
	})
}

// DeleteExpired удаляет записи с ttl <= now, возвращает число удаленных
func (r *Repository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	var deleted int64

	err := r.executeWithRetry(ctx, func(ctx context.Context) error {
		res, err := r.db.ExecContext(ctx, `DELETE FROM orders WHERE ttl <= $1`, now.Unix())
		if err != nil {
			return err
		}

		deleted, err = res.RowsAffected()
		return err
	})

	return deleted, err
}

type orderRow struct {
	item string
	ttl  int64
}

func newOrderRow(record model.OrderRecord) (orderRow, error) {
	ttlValue, ok := record.Get(model.TTLAttribute)
	if !ok || ttlValue.Kind() != model.KindInt {
		return orderRow{}, ErrMissingTTL
	}

	text, _ := ttlValue.NumberText()
	ttl, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return orderRow{}, fmt.Errorf("%w: %v", ErrMissingTTL, err)
	}

	item, err := json.Marshal(record)
	if err != nil {
		return orderRow{}, err
	}

	return orderRow{item: string(item), ttl: ttl}, nil
}
