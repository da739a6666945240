package pg

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/ibeloyar/orderfuncs/internal/model"
	"github.com/ibeloyar/orderfuncs/pgk/retry"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const insertQuery = "INSERT INTO orders \\(item, ttl\\) VALUES \\(\\$1, \\$2\\)"

func newTestRepository(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := newRepository(db, nil)
	repo.retrier = retry.New(retry.Config{
		MaxRetries: 2,
		BaseDelay:  time.Millisecond,
		MaxDelay:   2 * time.Millisecond,
		MaxJitter:  time.Millisecond,
	})

	return repo, mock
}

func order(id int64, ttl int64) model.OrderRecord {
	return model.Object(
		model.Member{Key: "id", Value: model.Int(id)},
		model.Member{Key: "price", Value: model.Decimal(decimal.RequireFromString("9.99"))},
		model.Member{Key: model.TTLAttribute, Value: model.Int(ttl)},
	)
}

func TestRepository_PutBatch_Success(t *testing.T) {
	repo, mock := newTestRepository(t)

	mock.ExpectBegin()
	mock.ExpectExec(insertQuery).
		WithArgs(`{"id":1,"price":9.99,"ttl":1700086400}`, int64(1700086400)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(insertQuery).
		WithArgs(`{"id":2,"price":9.99,"ttl":1700086400}`, int64(1700086400)).
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	err := repo.PutBatch(context.Background(), []model.OrderRecord{order(1, 1700086400), order(2, 1700086400)})

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_PutBatch_RollbackOnError(t *testing.T) {
	repo, mock := newTestRepository(t)

	insertErr := &pgconn.PgError{Code: "23502"}

	mock.ExpectBegin()
	mock.ExpectExec(insertQuery).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(insertQuery).WillReturnError(insertErr)
	mock.ExpectRollback()

	err := repo.PutBatch(context.Background(), []model.OrderRecord{order(1, 10), order(2, 10)})

	assert.ErrorIs(t, err, insertErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_PutBatch_RetriesConnectionError(t *testing.T) {
	repo, mock := newTestRepository(t)

	mock.ExpectBegin().WillReturnError(&pq.Error{Code: "08006"})
	mock.ExpectBegin()
	mock.ExpectExec(insertQuery).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err := repo.PutBatch(context.Background(), []model.OrderRecord{order(1, 10)})

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_PutBatch_MissingTTL(t *testing.T) {
	repo, mock := newTestRepository(t)

	err := repo.PutBatch(context.Background(), []model.OrderRecord{
		model.Object(model.Member{Key: "id", Value: model.Int(1)}),
	})

	assert.ErrorIs(t, err, ErrMissingTTL)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_DeleteExpired(t *testing.T) {
	repo, mock := newTestRepository(t)

	now := time.Unix(1700000000, 0)
	mock.ExpectExec("DELETE FROM orders WHERE ttl <= \\$1").
		WithArgs(now.Unix()).
		WillReturnResult(sqlmock.NewResult(0, 3))

	deleted, err := repo.DeleteExpired(context.Background(), now)

	require.NoError(t, err)
	assert.Equal(t, int64(3), deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_DeleteExpired_Error(t *testing.T) {
	repo, mock := newTestRepository(t)

	dbErr := errors.New("relation \"orders\" does not exist")
	mock.ExpectExec("DELETE FROM orders").WillReturnError(dbErr)

	_, err := repo.DeleteExpired(context.Background(), time.Now())

	assert.ErrorIs(t, err, dbErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}
