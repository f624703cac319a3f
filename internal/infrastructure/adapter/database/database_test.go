package database

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/saukimart/sauki-backend/internal/domain/entity"
	"github.com/saukimart/sauki-backend/internal/domain/port/core"
	"github.com/saukimart/sauki-backend/internal/infrastructure/adapter/logger"
	clock "github.com/saukimart/sauki-backend/internal/infrastructure/adapter/time"
	"github.com/saukimart/sauki-backend/internal/infrastructure/config"
	mockcore "github.com/saukimart/sauki-backend/mocks/port/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var testNow = time.Date(2026, 5, 10, 14, 0, 0, 0, time.UTC)

func attachMock(t *testing.T) (*Manager, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, sqlMock.ExpectationsWereMet())
		_ = sqlDB.Close()
	})

	manager := NewManager(config.DatabaseConfig{}, logger.NewNoopLogger(), clock.FixedClock{At: testNow})
	_, err = manager.Attach(postgres.New(postgres.Config{Conn: sqlDB}))
	require.NoError(t, err)
	return manager, sqlMock
}

func fundingTransaction() *entity.Transaction {
	agentID := uint64(4)
	return &entity.Transaction{
		Reference:          "FUND-887766",
		Type:               entity.TypeWalletFunding,
		Status:             entity.StatusPaid,
		Amount:             500000,
		Customer:           entity.Customer{Name: "Musa", Phone: "08031234567"},
		AgentID:            &agentID,
		PaymentProviderRef: "887766",
		Delivery:           entity.NotAttempted{},
		PaidAt:             &testNow,
		CreatedAt:          testNow,
		UpdatedAt:          testNow,
	}
}

func TestUnitOfWork_CommitsRepositoryWritesInOneTransaction(t *testing.T) {
	manager, sqlMock := attachMock(t)
	uow := manager.CreateUnitOfWork()

	sqlMock.ExpectBegin()
	sqlMock.ExpectQuery(`INSERT INTO "transactions"`).WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	sqlMock.ExpectExec(`UPDATE "agents" SET "balance"=balance \+ \$1`).WillReturnResult(sqlmock.NewResult(0, 1))
	sqlMock.ExpectCommit()

	ctx, err := uow.Begin(context.Background())
	require.NoError(t, err)

	require.NoError(t, uow.GetTransactionRepository(ctx).Create(ctx, fundingTransaction()))
	require.NoError(t, uow.GetAgentRepository(ctx).Credit(ctx, 4, 500000))
	require.NoError(t, uow.Commit(ctx))

	// rollback after commit is a no-op
	assert.NoError(t, uow.Rollback(ctx))
}

func TestUnitOfWork_RollbackOnDuplicate(t *testing.T) {
	manager, sqlMock := attachMock(t)
	uow := manager.CreateUnitOfWork()

	sqlMock.ExpectBegin()
	sqlMock.ExpectQuery(`INSERT INTO "transactions"`).WillReturnError(&pgconn.PgError{Code: "23505"})
	sqlMock.ExpectRollback()

	ctx, err := uow.Begin(context.Background())
	require.NoError(t, err)

	err = uow.GetTransactionRepository(ctx).Create(ctx, fundingTransaction())
	require.Error(t, err)
	require.NoError(t, uow.Rollback(ctx))
}

func TestUnitOfWork_WithoutTransaction(t *testing.T) {
	manager, _ := attachMock(t)
	uow := manager.CreateUnitOfWork()

	assert.Error(t, uow.Commit(context.Background()))
	assert.Error(t, uow.Rollback(context.Background()))
}

func TestManager_NowFuncUsesClock(t *testing.T) {
	manager, _ := attachMock(t)
	assert.Equal(t, testNow, manager.DB().NowFunc())
}

func TestDSN(t *testing.T) {
	dsn := DSN(config.DatabaseConfig{
		Host:         "db",
		Port:         "5432",
		Username:     "sauki",
		Password:     "secret",
		Database:     "sauki",
		QueryTimeout: 30 * time.Second,
	})
	assert.Equal(t,
		"host=db port=5432 user=sauki password=secret dbname=sauki sslmode=disable TimeZone=UTC statement_timeout=30000",
		dsn)
}

func TestGormLogger_Trace(t *testing.T) {
	newLogger := func(t *testing.T) (*mockcore.MockLogger, *GormLogger) {
		coreLogger := mockcore.NewMockLogger(t)
		coreLogger.On("GetLevel").Return(core.LogLevelInfo)
		return coreLogger, NewGormLogger(coreLogger, 100*time.Millisecond).(*GormLogger)
	}
	query := func() (string, int64) { return "SELECT * FROM agents", 1 }

	t.Run("slow query warns", func(t *testing.T) {
		coreLogger, gl := newLogger(t)
		coreLogger.On("Warn", "Slow SQL query", mock.MatchedBy(func(f map[string]any) bool {
			return f["type"] == "SELECT"
		})).Once()

		gl.Trace(context.Background(), time.Now().Add(-time.Second), query, nil)
	})

	t.Run("query error is logged", func(t *testing.T) {
		coreLogger, gl := newLogger(t)
		coreLogger.On("Error", "SQL error", mock.Anything).Once()

		gl.Trace(context.Background(), time.Now(), query, errors.New("boom"))
	})

	t.Run("record not found is silent", func(t *testing.T) {
		_, gl := newLogger(t)
		gl.Trace(context.Background(), time.Now(), query, gorm.ErrRecordNotFound)
	})
}

func TestPoolCollector(t *testing.T) {
	collector := NewPoolCollector(func() sql.DBStats {
		return sql.DBStats{MaxOpenConnections: 25, OpenConnections: 3, InUse: 1, Idle: 2}
	})
	assert.Equal(t, 8, testutil.CollectAndCount(collector))
}

func TestRetryOnTransientError(t *testing.T) {
	cfg := RetryConfig{MaxRetries: 3, RetryInterval: time.Millisecond, MaxInterval: 2 * time.Millisecond}

	t.Run("retries transient failures", func(t *testing.T) {
		calls := 0
		err := RetryOnTransientError(context.Background(), cfg, func() error {
			calls++
			if calls < 3 {
				return errors.New("dial tcp: connect: connection refused")
			}
			return nil
		}, logger.NewNoopLogger())
		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("permanent failure stops immediately", func(t *testing.T) {
		calls := 0
		err := RetryOnTransientError(context.Background(), cfg, func() error {
			calls++
			return errors.New("password authentication failed")
		}, logger.NewNoopLogger())
		require.Error(t, err)
		assert.Equal(t, 1, calls)
	})
}

func TestCalculateBackoffWithJitter_Capped(t *testing.T) {
	cfg := RetryConfig{RetryInterval: time.Second, MaxInterval: 4 * time.Second}
	assert.Equal(t, time.Second, calculateBackoffWithJitter(0, cfg))
	assert.Equal(t, 2*time.Second, calculateBackoffWithJitter(1, cfg))
	assert.Equal(t, 4*time.Second, calculateBackoffWithJitter(5, cfg))
}
