package repository

import (
	"context"

	"github.com/saukimart/sauki-backend/internal/domain/entity"
	errs "github.com/saukimart/sauki-backend/internal/domain/error"
	"github.com/saukimart/sauki-backend/internal/domain/port/core"
	"github.com/saukimart/sauki-backend/internal/domain/port/persistence"
	"github.com/saukimart/sauki-backend/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

// AgentRepository implements persistence.AgentRepository using GORM
type AgentRepository struct {
	db              *gorm.DB
	logger          core.Logger
	errorClassifier *ErrorClassifier
}

// NewAgentRepository creates a new AgentRepository instance
func NewAgentRepository(db *gorm.DB, logger core.Logger) *AgentRepository {
	return &AgentRepository{
		db:              db,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

var _ persistence.AgentRepository = (*AgentRepository)(nil)

// Create stores a new agent and sets its ID
func (r *AgentRepository) Create(ctx context.Context, agent *entity.Agent) error {
	row := agentToModel(agent)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if !r.errorClassifier.IsDuplicateKeyError(err) {
			r.logger.Error("Failed to create agent", map[string]any{"error": err.Error()})
		}
		return r.errorClassifier.MapError(err, nil, errs.ErrDuplicateAgent)
	}
	agent.ID = row.ID
	return nil
}

// GetByID retrieves an agent by ID
func (r *AgentRepository) GetByID(ctx context.Context, id uint64) (*entity.Agent, error) {
	var row model.Agent
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		return nil, r.errorClassifier.MapError(err, errs.ErrAgentNotFound, nil)
	}
	return agentToEntity(&row), nil
}

// GetByPhone retrieves an agent by phone number
func (r *AgentRepository) GetByPhone(ctx context.Context, phone string) (*entity.Agent, error) {
	var row model.Agent
	if err := r.db.WithContext(ctx).Where("phone = ?", phone).First(&row).Error; err != nil {
		return nil, r.errorClassifier.MapError(err, errs.ErrAgentNotFound, nil)
	}
	return agentToEntity(&row), nil
}

// UpdateStatus changes an agent's approval status
func (r *AgentRepository) UpdateStatus(ctx context.Context, id uint64, status entity.AgentStatus) error {
	return r.update(ctx, "update agent status", id, map[string]interface{}{
		"status": string(status),
	})
}

// SetVirtualAccount stores the agent's permanent funding account
func (r *AgentRepository) SetVirtualAccount(ctx context.Context, id uint64, account entity.VirtualAccount) error {
	return r.update(ctx, "set virtual account", id, map[string]interface{}{
		"virtual_account_bank":   account.BankName,
		"virtual_account_number": account.AccountNumber,
		"virtual_account_name":   account.AccountName,
	})
}

// Credit adds amount (kobo) to the balance
func (r *AgentRepository) Credit(ctx context.Context, id uint64, amount int64) error {
	return r.update(ctx, "credit wallet", id, map[string]interface{}{
		"balance": gorm.Expr("balance + ?", amount),
	})
}

// Debit subtracts amount only where the balance covers it; the check and the
// write are a single statement so concurrent purchases cannot overdraw
func (r *AgentRepository) Debit(ctx context.Context, id uint64, amount int64) (bool, error) {
	result := r.db.WithContext(ctx).Model(&model.Agent{}).
		Where("id = ? AND balance >= ?", id, amount).
		Update("balance", gorm.Expr("balance - ?", amount))
	if result.Error != nil {
		r.logger.Error("Failed to debit wallet", map[string]any{
			"agent_id": id,
			"amount":   amount,
			"error":    result.Error.Error(),
		})
		return false, r.errorClassifier.MapError(result.Error, nil, nil)
	}
	return result.RowsAffected == 1, nil
}

// List returns agents newest first, optionally filtered by status
func (r *AgentRepository) List(ctx context.Context, status entity.AgentStatus) ([]*entity.Agent, error) {
	query := r.db.WithContext(ctx).Model(&model.Agent{})
	if status != "" {
		query = query.Where("status = ?", string(status))
	}

	var rows []model.Agent
	if err := query.Order("created_at DESC, id DESC").Find(&rows).Error; err != nil {
		return nil, r.errorClassifier.MapError(err, nil, nil)
	}

	agents := make([]*entity.Agent, 0, len(rows))
	for i := range rows {
		agents = append(agents, agentToEntity(&rows[i]))
	}
	return agents, nil
}

// CountByStatus counts agents in a status
func (r *AgentRepository) CountByStatus(ctx context.Context, status entity.AgentStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Agent{}).
		Where("status = ?", string(status)).
		Count(&count).Error
	if err != nil {
		return 0, r.errorClassifier.MapError(err, nil, nil)
	}
	return count, nil
}

func (r *AgentRepository) update(ctx context.Context, operation string, id uint64, values map[string]interface{}) error {
	result := r.db.WithContext(ctx).Model(&model.Agent{}).Where("id = ?", id).Updates(values)
	if result.Error != nil {
		r.logger.Error("Failed to "+operation, map[string]any{
			"agent_id": id,
			"error":    result.Error.Error(),
		})
		return r.errorClassifier.MapError(result.Error, nil, nil)
	}
	if result.RowsAffected == 0 {
		return errs.ErrAgentNotFound
	}
	return nil
}
