package migration

import (
	"context"

	"github.com/saukimart/sauki-backend/internal/domain/port/core"
	"gorm.io/gorm"
)

const balanceCheckName = "chk_agents_balance_non_negative"

// AddAgentBalanceCheck adds a CHECK constraint so no statement can drive a wallet negative
type AddAgentBalanceCheck struct {
	db     *gorm.DB
	logger core.Logger
}

// NewAddAgentBalanceCheck creates a new migration instance
func NewAddAgentBalanceCheck(db *gorm.DB, logger core.Logger) *AddAgentBalanceCheck {
	return &AddAgentBalanceCheck{
		db:     db,
		logger: logger,
	}
}

// Run executes the migration
func (m *AddAgentBalanceCheck) Run(ctx context.Context) error {
	db := m.db.WithContext(ctx)

	var count int64
	if err := db.Raw(
		"SELECT COUNT(*) FROM pg_constraint WHERE conname = ?", balanceCheckName,
	).Scan(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	m.logger.Info("Adding non-negative balance constraint to agents", nil)
	if err := db.Exec(
		"ALTER TABLE agents ADD CONSTRAINT " + balanceCheckName + " CHECK (balance >= 0)",
	).Error; err != nil {
		m.logger.Error("Failed to add balance constraint", map[string]any{"error": err.Error()})
		return err
	}
	return nil
}
