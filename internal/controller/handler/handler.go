package handler

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
	"github.com/ibeloyar/orderfuncs/internal/model"
	"github.com/ibeloyar/orderfuncs/pgk/logger"
	"go.uber.org/zap"
)

//go:generate mockgen -source=handler.go -destination=mocks/mock_handler.go -package=mocks

type Ingester interface {
	Handle(ctx context.Context, req model.IngestRequest) (events.APIGatewayProxyResponse, error)
}

type ResultArchiver interface {
	Archive(ctx context.Context, event model.Value) error
}

// Orders - точка входа Lambda для приема заказов.
// Сам реализует Ingester, поэтому локальный HTTP-стенд вызывает его так же, как Lambda.
type Orders struct {
	service Ingester
	lg      *zap.SugaredLogger
}

func NewOrders(s Ingester, lg *zap.SugaredLogger) *Orders {
	if lg == nil {
		lg = zap.NewNop().Sugar()
	}

	return &Orders{
		service: s,
		lg:      lg,
	}
}

func (h *Orders) Handle(ctx context.Context, req model.IngestRequest) (events.APIGatewayProxyResponse, error) {
	resp, err := h.service.Handle(ctx, req)
	if err != nil {
		logger.WithLambdaContext(ctx, h.lg).Errorf("failed to ingest orders: %v", err)
		return events.APIGatewayProxyResponse{}, err
	}

	return resp, nil
}

// Results - точка входа Lambda для архивации результатов заказов
type Results struct {
	service ResultArchiver
	lg      *zap.SugaredLogger
}

func NewResults(s ResultArchiver, lg *zap.SugaredLogger) *Results {
	if lg == nil {
		lg = zap.NewNop().Sugar()
	}

	return &Results{
		service: s,
		lg:      lg,
	}
}

func (h *Results) Archive(ctx context.Context, event model.Value) error {
	if err := h.service.Archive(ctx, event); err != nil {
		logger.WithLambdaContext(ctx, h.lg).Errorf("failed to archive order result: %v", err)
		return err
	}

	return nil
}
