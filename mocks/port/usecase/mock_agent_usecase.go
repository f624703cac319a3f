package usecase

import (
	"context"

	"github.com/saukimart/sauki-backend/internal/domain/entity"
	portuse "github.com/saukimart/sauki-backend/internal/domain/port/usecase"
	"github.com/stretchr/testify/mock"
)

// MockAgentUseCase is a mock implementation of usecase.AgentUseCase
type MockAgentUseCase struct {
	mock.Mock
}

// NewMockAgentUseCase creates a mock and registers expectation checks on cleanup
func NewMockAgentUseCase(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockAgentUseCase {
	m := &MockAgentUseCase{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockAgentUseCase) Register(ctx context.Context, req portuse.RegisterAgentRequest) (*entity.Agent, error) {
	args := m.Called(ctx, req)
	return agentOrNil(args)
}

func (m *MockAgentUseCase) Login(ctx context.Context, phone, pin string) (*entity.Agent, error) {
	args := m.Called(ctx, phone, pin)
	return agentOrNil(args)
}

func (m *MockAgentUseCase) CreateWalletAccount(ctx context.Context, agentID uint64, pin string) (*entity.Agent, error) {
	args := m.Called(ctx, agentID, pin)
	return agentOrNil(args)
}

func (m *MockAgentUseCase) FundWallet(ctx context.Context, req portuse.FundingRequest) (*entity.Transaction, bool, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*entity.Transaction), args.Bool(1), args.Error(2)
}

func (m *MockAgentUseCase) Purchase(ctx context.Context, req portuse.AgentPurchaseRequest) (*entity.Transaction, error) {
	args := m.Called(ctx, req)
	return transactionOrNil(args)
}

func (m *MockAgentUseCase) Approve(ctx context.Context, id uint64) (*entity.Agent, error) {
	args := m.Called(ctx, id)
	return agentOrNil(args)
}

func (m *MockAgentUseCase) Reject(ctx context.Context, id uint64) (*entity.Agent, error) {
	args := m.Called(ctx, id)
	return agentOrNil(args)
}

func (m *MockAgentUseCase) Get(ctx context.Context, id uint64) (*entity.Agent, error) {
	args := m.Called(ctx, id)
	return agentOrNil(args)
}

func (m *MockAgentUseCase) List(ctx context.Context, status entity.AgentStatus) ([]*entity.Agent, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Agent), args.Error(1)
}

func agentOrNil(args mock.Arguments) (*entity.Agent, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Agent), args.Error(1)
}
