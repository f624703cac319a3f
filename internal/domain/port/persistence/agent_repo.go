package persistence

import (
	"context"

	"github.com/saukimart/sauki-backend/internal/domain/entity"
)

// AgentRepository defines methods to interact with agent data and wallet balances
type AgentRepository interface {
	// Create stores a new agent and sets its ID
	//
	// Possible errors:
	// - ErrDuplicateAgent: If the phone number is already registered
	// - ErrDatabaseConnection: If database connection fails
	Create(ctx context.Context, agent *entity.Agent) error

	// GetByID retrieves an agent by ID
	//
	// Possible errors:
	// - ErrAgentNotFound: If agent with specified ID doesn't exist
	GetByID(ctx context.Context, id uint64) (*entity.Agent, error)

	// GetByPhone retrieves an agent by phone number
	//
	// Possible errors:
	// - ErrAgentNotFound: If no agent has the phone number
	GetByPhone(ctx context.Context, phone string) (*entity.Agent, error)

	// UpdateStatus changes an agent's approval status
	//
	// Possible errors:
	// - ErrAgentNotFound: If agent with specified ID doesn't exist
	UpdateStatus(ctx context.Context, id uint64, status entity.AgentStatus) error

	// SetVirtualAccount stores the agent's permanent funding account
	//
	// Possible errors:
	// - ErrAgentNotFound: If agent with specified ID doesn't exist
	SetVirtualAccount(ctx context.Context, id uint64, account entity.VirtualAccount) error

	// Credit adds amount (kobo) to the balance
	//
	// Possible errors:
	// - ErrAgentNotFound: If agent with specified ID doesn't exist
	Credit(ctx context.Context, id uint64, amount int64) error

	// Debit subtracts amount only if the balance covers it, in a single conditional update.
	// It returns false, without error, when funds are insufficient.
	Debit(ctx context.Context, id uint64, amount int64) (bool, error)

	// List returns agents, optionally filtered by status
	List(ctx context.Context, status entity.AgentStatus) ([]*entity.Agent, error)

	// CountByStatus counts agents in a status
	CountByStatus(ctx context.Context, status entity.AgentStatus) (int64, error)
}
