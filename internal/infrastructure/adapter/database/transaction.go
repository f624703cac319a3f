package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/saukimart/sauki-backend/internal/domain/port/core"
	"github.com/saukimart/sauki-backend/internal/domain/port/persistence"
	"github.com/saukimart/sauki-backend/internal/infrastructure/adapter/repository"
	"gorm.io/gorm"
)

type contextKey string

const txKey contextKey = "tx"

// UnitOfWork implements persistence.UnitOfWork by carrying a gorm transaction in the context
type UnitOfWork struct {
	db     *gorm.DB
	logger core.Logger
}

// NewUnitOfWork creates a new UnitOfWork instance
func NewUnitOfWork(db *gorm.DB, logger core.Logger) *UnitOfWork {
	return &UnitOfWork{
		db:     db,
		logger: logger,
	}
}

var _ persistence.UnitOfWork = (*UnitOfWork)(nil)

// Begin starts a READ COMMITTED transaction. Consistency comes from the
// conditional updates and unique indexes, not from the isolation level.
func (u *UnitOfWork) Begin(ctx context.Context) (context.Context, error) {
	tx := u.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		u.logger.Error("Failed to begin transaction", map[string]any{"error": tx.Error.Error()})
		return ctx, fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}
	return context.WithValue(ctx, txKey, tx), nil
}

// Commit commits the current transaction
func (u *UnitOfWork) Commit(ctx context.Context) error {
	tx, ok := ctx.Value(txKey).(*gorm.DB)
	if !ok || tx == nil {
		return fmt.Errorf("no transaction found in context")
	}

	if err := tx.Commit().Error; err != nil {
		u.logger.Error("Failed to commit transaction", map[string]any{"error": err.Error()})
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Rollback rolls back the current transaction; a finished transaction is left alone
func (u *UnitOfWork) Rollback(ctx context.Context) error {
	tx, ok := ctx.Value(txKey).(*gorm.DB)
	if !ok || tx == nil {
		return fmt.Errorf("no transaction found in context")
	}

	err := tx.Rollback().Error
	if errors.Is(err, sql.ErrTxDone) {
		u.logger.Debug("Transaction already finished", nil)
		return nil
	}
	if err != nil {
		u.logger.Error("Failed to rollback transaction", map[string]any{"error": err.Error()})
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}
	return nil
}

// GetAgentRepository returns an agent repository in the current transaction
func (u *UnitOfWork) GetAgentRepository(ctx context.Context) persistence.AgentRepository {
	return repository.NewAgentRepository(u.dbFromContext(ctx), u.logger)
}

// GetTransactionRepository returns a transaction repository in the current transaction
func (u *UnitOfWork) GetTransactionRepository(ctx context.Context) persistence.TransactionRepository {
	return repository.NewTransactionRepository(u.dbFromContext(ctx), u.logger)
}

func (u *UnitOfWork) dbFromContext(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txKey).(*gorm.DB); ok && tx != nil {
		return tx
	}
	return u.db
}
