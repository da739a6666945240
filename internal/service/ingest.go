package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/ibeloyar/orderfuncs/internal/model"
	"github.com/ibeloyar/orderfuncs/pgk/logger"
	"go.uber.org/zap"
)

const contentTypeJSON = "application/json"

type Ingest struct {
	store OrderStore
	table string
	ttl   time.Duration
	now   func() time.Time
	lg    *zap.SugaredLogger
}

func NewIngest(store OrderStore, table string, ttl time.Duration, lg *zap.SugaredLogger) *Ingest {
	if lg == nil {
		lg = zap.NewNop().Sugar()
	}

	return &Ingest{
		store: store,
		table: table,
		ttl:   ttl,
		now:   time.Now,
		lg:    lg,
	}
}

// Handle обрабатывает POST с заказами: пустое тело - 400, иначе запись и 201.
// Ошибки разбора JSON и хранилища возвращаются как ошибка вызова.
func (s *Ingest) Handle(ctx context.Context, req model.IngestRequest) (events.APIGatewayProxyResponse, error) {
	lg := logger.WithLambdaContext(ctx, s.lg)
	lg.Infof("received %s request to %s endpoint", req.HTTPMethod, req.Path)

	if req.Body == nil {
		return errorResponse(http.StatusBadRequest, model.ErrEmptyBodyMessage)
	}

	records, err := decodeOrders(*req.Body)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	lg.Infof("orders received: %d", len(records))

	if err := s.Save(ctx, records); err != nil {
		return events.APIGatewayProxyResponse{}, err
	}

	return response(http.StatusCreated, ""), nil
}

// Save записывает все записи одним пакетом с общим ttl на весь вызов
func (s *Ingest) Save(ctx context.Context, records []model.OrderRecord) error {
	ttl := s.now().Unix() + int64(s.ttl/time.Second)

	prepared, err := PrepareRecords(records, ttl)
	if err != nil {
		return err
	}

	if err := s.store.PutBatch(ctx, prepared); err != nil {
		return fmt.Errorf("failed to save records to the DB table %s: %w", s.table, err)
	}

	logger.WithLambdaContext(ctx, s.lg).Infof("records are successfully saved to the DB table %s", s.table)
	return nil
}

// PrepareRecords переводит float в decimal и проставляет ttl каждой записи
func PrepareRecords(records []model.OrderRecord, ttl int64) ([]model.OrderRecord, error) {
	prepared := make([]model.OrderRecord, 0, len(records))
	for i, record := range records {
		if record.Kind() != model.KindObject {
			return nil, fmt.Errorf("%w: index %d is %s", model.ErrNotOrderRecord, i, record.Kind())
		}

		prepared = append(prepared, model.FloatsToDecimal(record).With(model.TTLAttribute, model.Int(ttl)))
	}

	return prepared, nil
}

// decodeOrders - тело приходит либо строкой с JSON, либо уже разобранным
func decodeOrders(body model.Value) ([]model.OrderRecord, error) {
	if text, ok := body.AsString(); ok {
		parsed, err := model.ParseJSON([]byte(text))
		if err != nil {
			return nil, err
		}
		body = parsed
	}

	if body.Kind() != model.KindList {
		return nil, fmt.Errorf("%w: got %s", model.ErrNotOrderList, body.Kind())
	}

	return body.Items(), nil
}

func response(statusCode int, body string) events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{
		IsBase64Encoded: false,
		StatusCode:      statusCode,
		Headers: map[string]string{
			"Content-Type": contentTypeJSON,
		},
		Body: body,
	}
}

func errorResponse(statusCode int, message string) (events.APIGatewayProxyResponse, error) {
	body, err := json.Marshal(model.ErrorBody{ErrorMessage: message})
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}

	return response(statusCode, string(body)), nil
}
