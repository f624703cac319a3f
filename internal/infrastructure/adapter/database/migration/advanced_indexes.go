package migration

import (
	"context"

	"github.com/saukimart/sauki-backend/internal/domain/port/core"
	"gorm.io/gorm"
)

// AdvancedIndexManager manages PostgreSQL-specific indexes AutoMigrate does not create
type AdvancedIndexManager struct {
	db     *gorm.DB
	logger core.Logger
}

// NewAdvancedIndexManager creates a new advanced index manager
func NewAdvancedIndexManager(db *gorm.DB, logger core.Logger) *AdvancedIndexManager {
	return &AdvancedIndexManager{
		db:     db,
		logger: logger,
	}
}

var advancedIndexes = []struct {
	name string
	sql  string
}{
	{
		// customer tracking reads newest-first by phone
		name: "idx_transactions_phone_created",
		sql:  `CREATE INDEX IF NOT EXISTS idx_transactions_phone_created ON transactions (customer_phone, created_at DESC)`,
	},
	{
		// admin retry queue
		name: "idx_transactions_failed_paid",
		sql:  `CREATE INDEX IF NOT EXISTS idx_transactions_failed_paid ON transactions (updated_at DESC) WHERE status = 'FAILED' AND paid_at IS NOT NULL`,
	},
	{
		name: "idx_transactions_status_type",
		sql:  `CREATE INDEX IF NOT EXISTS idx_transactions_status_type ON transactions (status, type)`,
	},
	{
		name: "idx_transactions_created_at_brin",
		sql:  `CREATE INDEX IF NOT EXISTS idx_transactions_created_at_brin ON transactions USING BRIN (created_at) WITH (pages_per_range = 32)`,
	},
	{
		name: "idx_data_plans_active_price",
		sql:  `CREATE INDEX IF NOT EXISTS idx_data_plans_active_price ON data_plans (price) WHERE active`,
	},
	{
		name: "idx_products_available",
		sql:  `CREATE INDEX IF NOT EXISTS idx_products_available ON products (created_at DESC) WHERE active AND in_stock`,
	},
}

// CreateAdvancedIndexes creates composite, partial and BRIN indexes
func (m *AdvancedIndexManager) CreateAdvancedIndexes(ctx context.Context) error {
	m.logger.Info("Creating advanced PostgreSQL indexes", nil)

	db := m.db.WithContext(ctx)
	for _, idx := range advancedIndexes {
		if err := db.Exec(idx.sql).Error; err != nil {
			m.logger.Error("Failed to create index", map[string]any{
				"index": idx.name,
				"error": err.Error(),
			})
			return err
		}
	}
	return nil
}

// CreatePerformanceTweaks applies storage settings; failures are logged and ignored
func (m *AdvancedIndexManager) CreatePerformanceTweaks(ctx context.Context) {
	db := m.db.WithContext(ctx)

	// status and delivery columns are rewritten in place on every transition
	if err := db.Exec(`ALTER TABLE transactions SET (fillfactor = 90)`).Error; err != nil {
		m.logger.Warn("Failed to set fillfactor for transactions table", map[string]any{"error": err.Error()})
	}
	if err := db.Exec(`ALTER TABLE agents SET (fillfactor = 90)`).Error; err != nil {
		m.logger.Warn("Failed to set fillfactor for agents table", map[string]any{"error": err.Error()})
	}
}
