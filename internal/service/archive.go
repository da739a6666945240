package service

import (
	"context"
	"fmt"
	"time"

	"github.com/ibeloyar/orderfuncs/internal/model"
	"github.com/ibeloyar/orderfuncs/pgk/logger"
	"go.uber.org/zap"
)

const (
	resultKeyPrefix = "orders/order_"
	resultKeyLayout = "2006-01-02T15:04:05.000000-07:00"
)

type Archiver struct {
	store BlobStore
	now   func() time.Time
	lg    *zap.SugaredLogger
}

func NewArchiver(store BlobStore, lg *zap.SugaredLogger) *Archiver {
	if lg == nil {
		lg = zap.NewNop().Sugar()
	}

	return &Archiver{
		store: store,
		now:   time.Now,
		lg:    lg,
	}
}

// Archive сохраняет результат заказа как JSON в объектное хранилище.
// Отклоненный заказ - ошибка вызова, запись не выполняется.
func (s *Archiver) Archive(ctx context.Context, event model.Value) error {
	lg := logger.WithLambdaContext(ctx, s.lg)

	status, ok := event.Get(model.StatusAttribute)
	if !ok {
		return model.ErrMissingStatus
	}

	if text, _ := status.AsString(); text == model.StatusRejected {
		lg.Warnf("order result has status %q, nothing is archived", text)
		return model.ErrRejectedOrder
	}

	body, err := model.MarshalIndentJSON(event, "  ")
	if err != nil {
		return fmt.Errorf("failed to encode order result: %w", err)
	}

	key := ResultKey(s.now())
	if err := s.store.Put(ctx, key, contentTypeJSON, body); err != nil {
		return fmt.Errorf("failed to upload order result to %s/%s: %w", s.store.Bucket(), key, err)
	}

	lg.Infof("order result saved to s3://%s/%s", s.store.Bucket(), key)
	return nil
}

// ResultKey - orders/order_<UTC ISO8601 с микросекундами и смещением +00:00>.json
func ResultKey(t time.Time) string {
	return resultKeyPrefix + t.UTC().Format(resultKeyLayout) + ".json"
}
