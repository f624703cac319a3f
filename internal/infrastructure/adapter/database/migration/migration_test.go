package migration

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/saukimart/sauki-backend/internal/infrastructure/adapter/logger"
	mockusecase "github.com/saukimart/sauki-backend/mocks/port/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, sqlMock.ExpectationsWereMet())
		_ = sqlDB.Close()
	})

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 gormlogger.Discard,
	})
	require.NoError(t, err)
	return db, sqlMock
}

func TestAddAgentBalanceCheck_Run(t *testing.T) {
	t.Run("adds the constraint once", func(t *testing.T) {
		db, sqlMock := newMockDB(t)

		sqlMock.ExpectQuery(`SELECT COUNT\(\*\) FROM pg_constraint WHERE conname = \$1`).
			WithArgs(balanceCheckName).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		sqlMock.ExpectExec(`ALTER TABLE agents ADD CONSTRAINT chk_agents_balance_non_negative CHECK \(balance >= 0\)`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		require.NoError(t, NewAddAgentBalanceCheck(db, logger.NewNoopLogger()).Run(context.Background()))
	})

	t.Run("existing constraint is left alone", func(t *testing.T) {
		db, sqlMock := newMockDB(t)

		sqlMock.ExpectQuery(`FROM pg_constraint`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		require.NoError(t, NewAddAgentBalanceCheck(db, logger.NewNoopLogger()).Run(context.Background()))
	})
}

func TestMigrationManager_GetCurrentVersion(t *testing.T) {
	t.Run("fresh database", func(t *testing.T) {
		db, sqlMock := newMockDB(t)
		sqlMock.ExpectQuery(`SELECT \* FROM "migration_versions"`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "version"}))

		version, err := NewMigrationManager(db, logger.NewNoopLogger(), nil).GetCurrentVersion(context.Background())
		require.NoError(t, err)
		assert.Empty(t, version)
	})

	t.Run("latest applied version", func(t *testing.T) {
		db, sqlMock := newMockDB(t)
		sqlMock.ExpectQuery(`SELECT \* FROM "migration_versions" ORDER BY applied_at desc, id desc`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "version"}).AddRow(2, "1.0.0"))

		version, err := NewMigrationManager(db, logger.NewNoopLogger(), nil).GetCurrentVersion(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "1.0.0", version)
	})
}

func TestCreateDefaultPlans(t *testing.T) {
	t.Run("seeds through the catalog", func(t *testing.T) {
		catalog := mockusecase.NewMockCatalogUseCase(t)
		catalog.On("SeedDefaultPlans", mock.Anything).Return(3, nil).Once()

		require.NoError(t, CreateDefaultPlans(context.Background(), catalog, logger.NewNoopLogger()))
	})

	t.Run("propagates failure", func(t *testing.T) {
		catalog := mockusecase.NewMockCatalogUseCase(t)
		catalog.On("SeedDefaultPlans", mock.Anything).Return(0, errors.New("db down")).Once()

		assert.Error(t, CreateDefaultPlans(context.Background(), catalog, logger.NewNoopLogger()))
	})
}
