package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/saukimart/sauki-backend/internal/domain/entity"
	errs "github.com/saukimart/sauki-backend/internal/domain/error"
	"github.com/saukimart/sauki-backend/internal/domain/port/core"
	"github.com/saukimart/sauki-backend/internal/domain/port/gateway"
	"github.com/saukimart/sauki-backend/internal/domain/port/persistence"
	portuse "github.com/saukimart/sauki-backend/internal/domain/port/usecase"
	"github.com/saukimart/sauki-backend/internal/domain/usecase/transaction"
)

// Service manages agents and their wallets
type Service struct {
	agentRepo persistence.AgentRepository
	txRepo    persistence.TransactionRepository
	planRepo  persistence.PlanRepository
	uow       persistence.UnitOfWork
	payments  gateway.PaymentGateway
	deliverer *transaction.Deliverer
	notifier  *transaction.EventNotifier
	metrics   core.Metrics
	clock     core.Clock
	logger    core.Logger
	bvn       string
}

var _ portuse.AgentUseCase = (*Service)(nil)

// Dependencies groups what the agent Service needs
type Dependencies struct {
	AgentRepo persistence.AgentRepository
	TxRepo    persistence.TransactionRepository
	PlanRepo  persistence.PlanRepository
	UoW       persistence.UnitOfWork
	Payments  gateway.PaymentGateway
	Deliverer *transaction.Deliverer
	Notifier  *transaction.EventNotifier
	Metrics   core.Metrics
	Clock     core.Clock
	Logger    core.Logger
	// BVN is required by the gateway for permanent accounts
	BVN string
}

// NewService creates a new agent Service
func NewService(deps Dependencies) *Service {
	return &Service{
		agentRepo: deps.AgentRepo,
		txRepo:    deps.TxRepo,
		planRepo:  deps.PlanRepo,
		uow:       deps.UoW,
		payments:  deps.Payments,
		deliverer: deps.Deliverer,
		notifier:  deps.Notifier,
		metrics:   deps.Metrics,
		clock:     deps.Clock,
		logger:    deps.Logger,
		bvn:       strings.TrimSpace(deps.BVN),
	}
}

// Register creates a PENDING agent awaiting admin approval
func (s *Service) Register(ctx context.Context, req portuse.RegisterAgentRequest) (*entity.Agent, error) {
	agent, err := entity.NewAgent(req.Name, req.Phone, req.Email, req.Pin, s.clock)
	if err != nil {
		return nil, err
	}

	if err := s.agentRepo.Create(ctx, agent); err != nil {
		if errors.Is(err, errs.ErrDuplicateAgent) {
			s.logger.Info("Agent phone already registered", map[string]any{"phone": agent.Phone})
		}
		return nil, err
	}

	s.logger.Info("Agent registered", map[string]any{
		"agent_id": agent.ID,
		"phone":    agent.Phone,
	})
	return agent, nil
}

// Login checks the PIN and that the agent was approved
func (s *Service) Login(ctx context.Context, phone, pin string) (*entity.Agent, error) {
	agent, err := s.agentRepo.GetByPhone(ctx, strings.TrimSpace(phone))
	if err != nil {
		if errs.IsNotFoundError(err) {
			return nil, errs.ErrInvalidCredentials
		}
		return nil, err
	}
	return s.authorize(agent, pin)
}

// CreateWalletAccount issues the agent's permanent funding account once
func (s *Service) CreateWalletAccount(ctx context.Context, agentID uint64, pin string) (*entity.Agent, error) {
	agent, err := s.load(ctx, agentID, pin)
	if err != nil {
		return nil, err
	}
	if agent.HasWalletAccount() {
		return agent, nil
	}
	if s.bvn == "" {
		s.logger.Error("Wallet account requested but no BVN is configured", map[string]any{"agent_id": agentID})
		return nil, fmt.Errorf("%w: wallet accounts are not configured", errs.ErrInternalServer)
	}

	account, err := s.payments.CreateVirtualAccount(ctx, gateway.VirtualAccountRequest{
		Reference: entity.AgentWalletReference(agent.ID),
		Name:      agent.Name,
		Phone:     agent.Phone,
		Email:     agent.Email,
		Narration: "Sauki Agent " + agent.Name,
		Permanent: true,
	})
	if err != nil {
		fields := errs.LogFields(err)
		fields["agent_id"] = agent.ID
		s.logger.Warn("Wallet account creation failed", fields)
		return nil, err
	}

	wallet := entity.VirtualAccount{
		BankName:      account.BankName,
		AccountNumber: account.AccountNumber,
		AccountName:   account.AccountName,
		ExpiresAt:     account.ExpiresAt,
	}
	if err := s.agentRepo.SetVirtualAccount(ctx, agent.ID, wallet); err != nil {
		return nil, err
	}
	agent.VirtualAccount = &wallet
	agent.UpdatedAt = s.clock.Now()

	s.logger.Info("Wallet account issued", map[string]any{
		"agent_id": agent.ID,
		"bank":     wallet.BankName,
	})
	return agent, nil
}

// Approve activates an agent
func (s *Service) Approve(ctx context.Context, id uint64) (*entity.Agent, error) {
	return s.setStatus(ctx, id, entity.AgentActive)
}

// Reject refuses an agent
func (s *Service) Reject(ctx context.Context, id uint64) (*entity.Agent, error) {
	return s.setStatus(ctx, id, entity.AgentRejected)
}

// Get returns one agent
func (s *Service) Get(ctx context.Context, id uint64) (*entity.Agent, error) {
	return s.agentRepo.GetByID(ctx, id)
}

// List returns agents; an empty status lists all of them
func (s *Service) List(ctx context.Context, status entity.AgentStatus) ([]*entity.Agent, error) {
	switch status {
	case "", entity.AgentPending, entity.AgentActive, entity.AgentRejected:
	default:
		return nil, errs.NewValidationError("status", "unknown agent status "+string(status), nil)
	}
	return s.agentRepo.List(ctx, status)
}

func (s *Service) setStatus(ctx context.Context, id uint64, status entity.AgentStatus) (*entity.Agent, error) {
	if err := s.agentRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	agent, err := s.agentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Agent status changed", map[string]any{
		"agent_id": id,
		"status":   status,
	})
	return agent, nil
}

// load fetches an agent and checks its PIN and approval
func (s *Service) load(ctx context.Context, agentID uint64, pin string) (*entity.Agent, error) {
	agent, err := s.agentRepo.GetByID(ctx, agentID)
	if err != nil {
		if errs.IsNotFoundError(err) {
			return nil, errs.ErrInvalidCredentials
		}
		return nil, err
	}
	return s.authorize(agent, pin)
}

func (s *Service) authorize(agent *entity.Agent, pin string) (*entity.Agent, error) {
	if !agent.VerifyPin(pin) {
		s.logger.Warn("Agent PIN rejected", map[string]any{"agent_id": agent.ID})
		return nil, errs.ErrInvalidCredentials
	}
	if !agent.IsActive() {
		return nil, errs.ErrAgentNotActive
	}
	return agent, nil
}

func (s *Service) rollback(ctx context.Context, operation string) {
	if err := s.uow.Rollback(ctx); err != nil {
		s.logger.Error("Failed to roll back", map[string]any{
			"operation": operation,
			"error":     err.Error(),
		})
	}
}
