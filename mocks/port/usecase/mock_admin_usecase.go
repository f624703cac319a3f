package usecase

import (
	"context"

	"github.com/saukimart/sauki-backend/internal/domain/entity"
	"github.com/saukimart/sauki-backend/internal/domain/port/persistence"
	portuse "github.com/saukimart/sauki-backend/internal/domain/port/usecase"
	"github.com/stretchr/testify/mock"
)

// MockAdminUseCase is a mock implementation of usecase.AdminUseCase
type MockAdminUseCase struct {
	mock.Mock
}

// NewMockAdminUseCase creates a mock and registers expectation checks on cleanup
func NewMockAdminUseCase(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockAdminUseCase {
	m := &MockAdminUseCase{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockAdminUseCase) Login(ctx context.Context, email, password string) (*portuse.Session, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portuse.Session), args.Error(1)
}

func (m *MockAdminUseCase) Authenticate(ctx context.Context, token string) (string, error) {
	args := m.Called(ctx, token)
	return args.String(0), args.Error(1)
}

func (m *MockAdminUseCase) Logout(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockAdminUseCase) Stats(ctx context.Context) (*portuse.DashboardStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portuse.DashboardStats), args.Error(1)
}

func (m *MockAdminUseCase) ListTransactions(ctx context.Context, filter persistence.TransactionFilter) ([]*entity.Transaction, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Transaction), args.Error(1)
}
