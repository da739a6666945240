package pg

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/ibeloyar/orderfuncs/pgk/retry"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"
)

const (
	migrationsTable = "schema_migrations"
	schemaName      = "public"
	migrationsDir   = "migrations"

	maxAttempts = 3
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Repository - хранилище заказов в Postgres для локального запуска.
// TTL эмулируется периодическим удалением просроченных записей.
type Repository struct {
	db         *sql.DB
	classifier *PostgresErrorClassifier
	retrier    *retry.Retrier
	lg         *zap.SugaredLogger

	shutdownCtx    context.Context
	shutdownCancel context.CancelFunc
	stopSweepChan  chan struct{}
	sweepDone      chan struct{}
}

func New(databaseURI string, lg *zap.SugaredLogger) (*Repository, error) {
	pool, err := pgxpool.New(context.Background(), databaseURI)
	if err != nil {
		return nil, err
	}

	db := stdlib.OpenDBFromPool(pool)

	if err := migrateUp(db); err != nil {
		db.Close()
		return nil, err
	}

	return newRepository(db, lg), nil
}

func newRepository(db *sql.DB, lg *zap.SugaredLogger) *Repository {
	if lg == nil {
		lg = zap.NewNop().Sugar()
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Repository{
		db:         db,
		classifier: NewPostgresErrorClassifier(),
		retrier: retry.New(retry.Config{
			MaxRetries: maxAttempts,
			BaseDelay:  100 * time.Millisecond,
			MaxDelay:   2 * time.Second,
		}),
		lg:             lg,
		shutdownCtx:    ctx,
		shutdownCancel: cancel,
	}
}

func migrateUp(db *sql.DB) error {
	driver, err := postgres.WithInstance(db, &postgres.Config{
		MigrationsTable: migrationsTable,
		SchemaName:      schemaName,
	})
	if err != nil {
		return err
	}

	source, err := iofs.New(migrationsFS, migrationsDir)
	if err != nil {
		return err
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}

	return nil
}

func (r *Repository) Ping() error {
	return r.db.Ping()
}

func (r *Repository) Shutdown() error {
	r.shutdownCancel()
	return r.db.Close()
}

// executeWithRetry повторяет fn только для временных ошибок Postgres
func (r *Repository) executeWithRetry(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.retrier.Do(ctx, func(ctx context.Context) error {
		err := fn(ctx)
		if err != nil && r.classifier.Classify(err) == Retriable {
			return retry.Retryable(err)
		}
		return err
	})
}
