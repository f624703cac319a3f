package persistence

import (
	"context"

	"github.com/saukimart/sauki-backend/internal/domain/entity"
	"github.com/stretchr/testify/mock"
)

// MockAgentRepository is a mock implementation of persistence.AgentRepository
type MockAgentRepository struct {
	mock.Mock
}

// NewMockAgentRepository creates a mock and registers expectation checks on cleanup
func NewMockAgentRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockAgentRepository {
	m := &MockAgentRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockAgentRepository) Create(ctx context.Context, agent *entity.Agent) error {
	args := m.Called(ctx, agent)
	return args.Error(0)
}

func (m *MockAgentRepository) GetByID(ctx context.Context, id uint64) (*entity.Agent, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Agent), args.Error(1)
}

func (m *MockAgentRepository) GetByPhone(ctx context.Context, phone string) (*entity.Agent, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Agent), args.Error(1)
}

func (m *MockAgentRepository) UpdateStatus(ctx context.Context, id uint64, status entity.AgentStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockAgentRepository) SetVirtualAccount(ctx context.Context, id uint64, account entity.VirtualAccount) error {
	args := m.Called(ctx, id, account)
	return args.Error(0)
}

func (m *MockAgentRepository) Credit(ctx context.Context, id uint64, amount int64) error {
	args := m.Called(ctx, id, amount)
	return args.Error(0)
}

func (m *MockAgentRepository) Debit(ctx context.Context, id uint64, amount int64) (bool, error) {
	args := m.Called(ctx, id, amount)
	return args.Bool(0), args.Error(1)
}

func (m *MockAgentRepository) List(ctx context.Context, status entity.AgentStatus) ([]*entity.Agent, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Agent), args.Error(1)
}

func (m *MockAgentRepository) CountByStatus(ctx context.Context, status entity.AgentStatus) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}
