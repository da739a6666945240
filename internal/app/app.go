package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/ibeloyar/orderfuncs/internal/config"
	"github.com/ibeloyar/orderfuncs/internal/controller/handler"
	"github.com/ibeloyar/orderfuncs/internal/repository/dynamo"
	"github.com/ibeloyar/orderfuncs/internal/repository/pg"
	"github.com/ibeloyar/orderfuncs/internal/repository/s3blob"
	"github.com/ibeloyar/orderfuncs/internal/service"
	"github.com/ibeloyar/orderfuncs/pgk/logger"
	"go.uber.org/zap"

	httpController "github.com/ibeloyar/orderfuncs/internal/controller/http"
)

// NewIngest собирает обработчик приема заказов; вызывается один раз при холодном старте
func NewIngest(ctx context.Context, cfg config.Ingest, lg *zap.SugaredLogger) (*handler.Orders, error) {
	store, _, err := newOrderStore(ctx, cfg, lg)
	if err != nil {
		return nil, err
	}

	s := service.NewIngest(store, cfg.TableName, cfg.OrderTTL, lg)

	return handler.NewOrders(s, lg), nil
}

// NewArchiver собирает обработчик архивации результатов
func NewArchiver(ctx context.Context, cfg config.Archiver, lg *zap.SugaredLogger) (*handler.Results, error) {
	awsCfg, err := loadAWSConfig(ctx, cfg.AWS)
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.AWS.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.AWS.Endpoint)
			o.UsePathStyle = true
		}
	})

	s := service.NewArchiver(s3blob.New(client, cfg.Bucket), lg)

	return handler.NewResults(s, lg), nil
}

// RunLocal поднимает HTTP-стенд с обеими функциями до SIGINT/SIGTERM
func RunLocal(cfg config.Local, lg *zap.SugaredLogger) error {
	ctx := context.Background()

	store, pgRepo, err := newOrderStore(ctx, cfg.Ingest, lg)
	if err != nil {
		return err
	}

	if pgRepo != nil {
		pgRepo.RunExpirySweeper(cfg.SweepInterval)
	}

	results, err := NewArchiver(ctx, cfg.Archiver, lg)
	if err != nil {
		return err
	}

	orders := handler.NewOrders(service.NewIngest(store, cfg.Ingest.TableName, cfg.Ingest.OrderTTL, lg), lg)

	router := chi.NewRouter()

	router.Use(logger.LoggingMiddleware(lg))
	router.Use(middleware.Recoverer)

	handlers := httpController.New(orders, results, lg)
	router = httpController.InitRoutes(router, handlers)

	srv := &http.Server{
		Addr:    cfg.RunAddress,
		Handler: router,
	}

	signalCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	lg.Infof("starting server on %s", cfg.RunAddress)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Fatalf("server ListenAndServe error: %v", err)
		}
	}()

	<-signalCtx.Done()
	lg.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown (server) error: %v", err)
	}

	if pgRepo != nil {
		pgRepo.StopExpirySweeper()

		if err := pgRepo.Shutdown(); err != nil {
			return fmt.Errorf("shutdown (repo) error: %v", err)
		}
	}

	lg.Info("server shutdown success")
	return nil
}

// newOrderStore возвращает хранилище заказов по ORDER_STORE.
// Для postgres дополнительно возвращается сам репозиторий (sweeper и закрытие пула).
func newOrderStore(ctx context.Context, cfg config.Ingest, lg *zap.SugaredLogger) (service.OrderStore, *pg.Repository, error) {
	switch cfg.OrderStore {
	case config.StorePostgres:
		repo, err := pg.New(cfg.DatabaseURI, lg)
		if err != nil {
			return nil, nil, err
		}
		return repo, repo, nil
	case config.StoreDynamoDB:
		awsCfg, err := loadAWSConfig(ctx, cfg.AWS)
		if err != nil {
			return nil, nil, err
		}

		client := dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
			if cfg.AWS.Endpoint != "" {
				o.BaseEndpoint = aws.String(cfg.AWS.Endpoint)
			}
		})

		return dynamo.New(client, cfg.TableName), nil, nil
	default:
		return nil, nil, fmt.Errorf("%w: %q", config.ErrUnknownOrderStore, cfg.OrderStore)
	}
}

func loadAWSConfig(ctx context.Context, cfg config.AWS) (aws.Config, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if cfg.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.Region))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return awsCfg, nil
}
