package repository

import (
	"context"
	"time"

	"github.com/saukimart/sauki-backend/internal/domain/entity"
	errs "github.com/saukimart/sauki-backend/internal/domain/error"
	"github.com/saukimart/sauki-backend/internal/domain/port/core"
	"github.com/saukimart/sauki-backend/internal/domain/port/persistence"
	"github.com/saukimart/sauki-backend/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

const defaultListLimit = 50

// TransactionRepository implements persistence.TransactionRepository using GORM
type TransactionRepository struct {
	db              *gorm.DB
	logger          core.Logger
	errorClassifier *ErrorClassifier
}

// NewTransactionRepository creates a new TransactionRepository instance
func NewTransactionRepository(db *gorm.DB, logger core.Logger) *TransactionRepository {
	return &TransactionRepository{
		db:              db,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

var _ persistence.TransactionRepository = (*TransactionRepository)(nil)

// Create saves a new transaction and sets its ID
func (r *TransactionRepository) Create(ctx context.Context, transaction *entity.Transaction) error {
	row := transactionToModel(transaction)

	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		mapped := r.errorClassifier.MapError(err, nil, errs.ErrDuplicateTransaction)
		if r.errorClassifier.IsDuplicateKeyError(err) {
			r.logger.Debug("Duplicate transaction reference", map[string]any{
				"reference": transaction.Reference,
			})
		} else {
			r.logger.Error("Failed to create transaction", map[string]any{
				"reference": transaction.Reference,
				"error":     err.Error(),
			})
		}
		return mapped
	}

	transaction.ID = row.ID
	return nil
}

// GetByReference retrieves a transaction by its public reference
func (r *TransactionRepository) GetByReference(ctx context.Context, reference string) (*entity.Transaction, error) {
	var row model.Transaction
	err := r.db.WithContext(ctx).Where("reference = ?", reference).First(&row).Error
	if err != nil {
		return nil, r.errorClassifier.MapError(err, errs.ErrTransactionNotFound, nil)
	}
	return transactionToEntity(&row), nil
}

// GetByID retrieves a transaction by its internal ID
func (r *TransactionRepository) GetByID(ctx context.Context, id uint64) (*entity.Transaction, error) {
	var row model.Transaction
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if err != nil {
		return nil, r.errorClassifier.MapError(err, errs.ErrTransactionNotFound, nil)
	}
	return transactionToEntity(&row), nil
}

// MarkPaid moves a PENDING transaction to PAID in one conditional update
func (r *TransactionRepository) MarkPaid(ctx context.Context, reference, providerRef string, paidAt time.Time) (bool, error) {
	result := r.db.WithContext(ctx).Model(&model.Transaction{}).
		Where("reference = ? AND status = ?", reference, string(entity.StatusPending)).
		Updates(map[string]interface{}{
			"status":               string(entity.StatusPaid),
			"payment_provider_ref": providerRef,
			"paid_at":              paidAt,
			"updated_at":           paidAt,
		})
	if result.Error != nil {
		r.logger.Error("Failed to mark transaction paid", map[string]any{
			"reference": reference,
			"error":     result.Error.Error(),
		})
		return false, r.errorClassifier.MapError(result.Error, nil, nil)
	}
	return result.RowsAffected == 1, nil
}

// MarkFailed moves a PENDING transaction to FAILED in one conditional update
func (r *TransactionRepository) MarkFailed(ctx context.Context, reference string, at time.Time) (bool, error) {
	result := r.db.WithContext(ctx).Model(&model.Transaction{}).
		Where("reference = ? AND status = ?", reference, string(entity.StatusPending)).
		Updates(map[string]interface{}{
			"status":     string(entity.StatusFailed),
			"updated_at": at,
		})
	if result.Error != nil {
		return false, r.errorClassifier.MapError(result.Error, nil, nil)
	}
	return result.RowsAffected == 1, nil
}

// SaveDelivery writes the delivery columns unless the row is already DELIVERED
func (r *TransactionRepository) SaveDelivery(ctx context.Context, transaction *entity.Transaction) (bool, error) {
	row := transactionToModel(transaction)

	result := r.db.WithContext(ctx).Model(&model.Transaction{}).
		Where("id = ? AND status <> ?", transaction.ID, string(entity.StatusDelivered)).
		Updates(map[string]interface{}{
			"status":                  row.Status,
			"delivery_state":          row.DeliveryState,
			"delivery_provider_ref":   row.DeliveryProviderRef,
			"delivery_failure_reason": row.DeliveryFailureReason,
			"delivery_response":       row.DeliveryResponse,
			"delivery_attempts":       row.DeliveryAttempts,
			"delivered_at":            row.DeliveredAt,
			"updated_at":              row.UpdatedAt,
		})
	if result.Error != nil {
		r.logger.Error("Failed to save delivery outcome", map[string]any{
			"transaction_id": transaction.ID,
			"error":          result.Error.Error(),
		})
		return false, r.errorClassifier.MapError(result.Error, nil, nil)
	}
	return result.RowsAffected == 1, nil
}

// ListByPhone returns the newest transactions for a customer phone
func (r *TransactionRepository) ListByPhone(ctx context.Context, phone string, limit int) ([]*entity.Transaction, error) {
	var rows []model.Transaction
	err := r.db.WithContext(ctx).
		Where("customer_phone = ?", phone).
		Order("created_at DESC, id DESC").
		Limit(limitOrDefault(limit)).
		Find(&rows).Error
	if err != nil {
		return nil, r.errorClassifier.MapError(err, nil, nil)
	}
	return transactionsToEntities(rows), nil
}

// List returns the newest transactions matching filter
func (r *TransactionRepository) List(ctx context.Context, filter persistence.TransactionFilter) ([]*entity.Transaction, error) {
	query := r.db.WithContext(ctx).Model(&model.Transaction{})
	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}
	if filter.Type != "" {
		query = query.Where("type = ?", string(filter.Type))
	}

	var rows []model.Transaction
	err := query.Order("created_at DESC, id DESC").Limit(limitOrDefault(filter.Limit)).Find(&rows).Error
	if err != nil {
		return nil, r.errorClassifier.MapError(err, nil, nil)
	}
	return transactionsToEntities(rows), nil
}

const statsQuery = `
SELECT
	COALESCE(SUM(CASE WHEN status IN (?, ?) AND type <> ? THEN amount ELSE 0 END), 0) AS revenue,
	COUNT(*) FILTER (WHERE status = ?) AS paid_count,
	COUNT(*) FILTER (WHERE status = ?) AS delivered_count,
	COUNT(*) FILTER (WHERE status = ?) AS failed_count,
	COUNT(*) FILTER (WHERE status = ?) AS pending_count
FROM transactions`

type statsRow struct {
	Revenue        int64
	PaidCount      int64
	DeliveredCount int64
	FailedCount    int64
	PendingCount   int64
}

// Stats aggregates revenue and status counts in a single scan
func (r *TransactionRepository) Stats(ctx context.Context) (*persistence.TransactionStats, error) {
	var row statsRow
	err := r.db.WithContext(ctx).Raw(statsQuery,
		string(entity.StatusPaid), string(entity.StatusDelivered), string(entity.TypeWalletFunding),
		string(entity.StatusPaid), string(entity.StatusDelivered), string(entity.StatusFailed), string(entity.StatusPending),
	).Scan(&row).Error
	if err != nil {
		return nil, r.errorClassifier.MapError(err, nil, nil)
	}

	return &persistence.TransactionStats{
		Revenue:        row.Revenue,
		PaidCount:      row.PaidCount,
		DeliveredCount: row.DeliveredCount,
		FailedCount:    row.FailedCount,
		PendingCount:   row.PendingCount,
	}, nil
}

func transactionsToEntities(rows []model.Transaction) []*entity.Transaction {
	out := make([]*entity.Transaction, 0, len(rows))
	for i := range rows {
		out = append(out, transactionToEntity(&rows[i]))
	}
	return out
}

func limitOrDefault(limit int) int {
	if limit <= 0 {
		return defaultListLimit
	}
	return limit
}
