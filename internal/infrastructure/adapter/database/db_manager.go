package database

import (
	"context"
	"fmt"
	"time"

	"github.com/saukimart/sauki-backend/internal/domain/port/core"
	"github.com/saukimart/sauki-backend/internal/infrastructure/adapter/database/migration"
	"github.com/saukimart/sauki-backend/internal/infrastructure/config"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Manager owns the gorm connection pool
type Manager struct {
	config config.DatabaseConfig
	db     *gorm.DB
	logger core.Logger
	clock  core.Clock
}

// NewManager creates a new database manager
func NewManager(cfg config.DatabaseConfig, logger core.Logger, clock core.Clock) *Manager {
	return &Manager{
		config: cfg,
		logger: logger.With(map[string]any{"component": "database"}),
		clock:  clock,
	}
}

// Connect opens the pool, retrying transient failures with backoff
func (m *Manager) Connect(ctx context.Context) (*gorm.DB, error) {
	if m.config.Driver != "" && m.config.Driver != "postgres" {
		return nil, fmt.Errorf("unsupported database driver: %s", m.config.Driver)
	}

	m.logger.Info("Connecting to database", map[string]any{
		"host": m.config.Host,
		"port": m.config.Port,
		"name": m.config.Database,
	})

	retry := DefaultRetryConfig()
	if m.config.RetryAttempts > 0 {
		retry.MaxRetries = m.config.RetryAttempts
	}
	if m.config.RetryDelay > 0 {
		retry.RetryInterval = m.config.RetryDelay
		retry.MaxInterval = 8 * m.config.RetryDelay
	}

	var gormDB *gorm.DB
	err := RetryOnTransientError(ctx, retry, func() error {
		db, err := m.open(postgres.Open(DSN(m.config)))
		if err != nil {
			return err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		if err := sqlDB.PingContext(ctx); err != nil {
			_ = sqlDB.Close()
			return err
		}
		gormDB = db
		return nil
	}, m.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", retry.MaxRetries, err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database connection: %w", err)
	}
	sqlDB.SetMaxOpenConns(m.config.MaxOpenConns)
	sqlDB.SetMaxIdleConns(m.config.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(m.config.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(m.config.ConnMaxIdleTime)

	m.logger.Info("Successfully connected to database", map[string]any{
		"max_open_conns": m.config.MaxOpenConns,
		"max_idle_conns": m.config.MaxIdleConns,
		"query_timeout":  m.config.QueryTimeout.String(),
	})

	m.db = gormDB
	return m.db, nil
}

// Attach uses an already opened dialector instead of dialling postgres.
// Tests pass a sqlmock-backed dialector here.
func (m *Manager) Attach(dialector gorm.Dialector) (*gorm.DB, error) {
	db, err := m.open(dialector)
	if err != nil {
		return nil, err
	}
	m.db = db
	return db, nil
}

func (m *Manager) open(dialector gorm.Dialector) (*gorm.DB, error) {
	return gorm.Open(dialector, &gorm.Config{
		Logger:  NewGormLogger(m.logger, m.config.SlowThreshold),
		NowFunc: m.clock.Now,
	})
}

// DB returns the GORM database instance
func (m *Manager) DB() *gorm.DB {
	return m.db
}

// Ping checks that the database answers within the query timeout
func (m *Manager) Ping(ctx context.Context) error {
	if m.db == nil {
		return fmt.Errorf("database not connected")
	}
	sqlDB, err := m.db.DB()
	if err != nil {
		return err
	}
	if m.config.QueryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.config.QueryTimeout)
		defer cancel()
	}
	return sqlDB.PingContext(ctx)
}

// Close closes the database connection
func (m *Manager) Close() error {
	if m.db == nil {
		return nil
	}
	m.logger.Info("Closing database connection", nil)

	sqlDB, err := m.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database connection: %w", err)
	}
	return sqlDB.Close()
}

// CreateUnitOfWork creates a new UnitOfWork bound to the pool
func (m *Manager) CreateUnitOfWork() *UnitOfWork {
	return NewUnitOfWork(m.db, m.logger)
}

// Migrator returns a migration manager for the connected database
func (m *Manager) Migrator() *migration.MigrationManager {
	return migration.NewMigrationManager(m.db, m.logger, m.clock)
}

// DSN builds the postgres connection string. The query timeout is enforced
// server side through statement_timeout.
func DSN(cfg config.DatabaseConfig) string {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
		cfg.Host, cfg.Port, cfg.Username, cfg.Password, cfg.Database, sslMode(cfg.SSLMode))
	if cfg.QueryTimeout > 0 {
		dsn += fmt.Sprintf(" statement_timeout=%d", cfg.QueryTimeout/time.Millisecond)
	}
	return dsn
}

func sslMode(mode string) string {
	if mode == "" {
		return "disable"
	}
	return mode
}
