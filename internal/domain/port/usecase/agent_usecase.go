package usecase

import (
	"context"

	"github.com/saukimart/sauki-backend/internal/domain/entity"
)

// RegisterAgentRequest is a reseller self-registration
type RegisterAgentRequest struct {
	Name  string
	Phone string
	Email string
	Pin   string
}

// FundingRequest is a successful transfer into an agent's permanent account
type FundingRequest struct {
	AgentReference  string
	ProviderEventID string
	Amount          int64
}

// AgentPurchaseRequest buys a catalog plan from the agent's wallet
type AgentPurchaseRequest struct {
	AgentID uint64
	Pin     string
	PlanID  uint64
	Phone   string
}

// AgentUseCase manages resellers and their wallets
type AgentUseCase interface {
	Register(ctx context.Context, req RegisterAgentRequest) (*entity.Agent, error)
	Login(ctx context.Context, phone, pin string) (*entity.Agent, error)
	CreateWalletAccount(ctx context.Context, agentID uint64, pin string) (*entity.Agent, error)

	// FundWallet credits a funding event once; credited is false for replays
	FundWallet(ctx context.Context, req FundingRequest) (tx *entity.Transaction, credited bool, err error)

	Purchase(ctx context.Context, req AgentPurchaseRequest) (*entity.Transaction, error)
	Approve(ctx context.Context, id uint64) (*entity.Agent, error)
	Reject(ctx context.Context, id uint64) (*entity.Agent, error)
	Get(ctx context.Context, id uint64) (*entity.Agent, error)
	List(ctx context.Context, status entity.AgentStatus) ([]*entity.Agent, error)
}
