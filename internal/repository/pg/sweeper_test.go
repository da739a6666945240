package pg

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestRepository_ExpirySweeper(t *testing.T) {
	repo, mock := newTestRepository(t)

	core, logs := observer.New(zapcore.InfoLevel)
	repo.lg = zap.New(core).Sugar()

	mock.ExpectExec("DELETE FROM orders WHERE ttl <= \\$1").
		WithArgs(sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 2))

	repo.RunExpirySweeper(10 * time.Millisecond)

	assert.Eventually(t, func() bool {
		return logs.FilterMessage("expired orders deleted: 2").Len() == 1
	}, time.Second, 5*time.Millisecond)

	repo.StopExpirySweeper()

	assert.Equal(t, 1, logs.FilterMessage("expiry sweeper stopped").Len())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_StopExpirySweeper_NotRunning(t *testing.T) {
	repo, _ := newTestRepository(t)

	assert.NotPanics(t, repo.StopExpirySweeper)
}
