package persistence

import (
	"context"
	"time"

	"github.com/saukimart/sauki-backend/internal/domain/entity"
	"github.com/saukimart/sauki-backend/internal/domain/port/persistence"
	"github.com/stretchr/testify/mock"
)

// MockTransactionRepository is a mock implementation of persistence.TransactionRepository
type MockTransactionRepository struct {
	mock.Mock
}

// NewMockTransactionRepository creates a mock and registers expectation checks on cleanup
func NewMockTransactionRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockTransactionRepository {
	m := &MockTransactionRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockTransactionRepository) Create(ctx context.Context, transaction *entity.Transaction) error {
	args := m.Called(ctx, transaction)
	return args.Error(0)
}

func (m *MockTransactionRepository) GetByReference(ctx context.Context, reference string) (*entity.Transaction, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) GetByID(ctx context.Context, id uint64) (*entity.Transaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) MarkPaid(ctx context.Context, reference, providerRef string, paidAt time.Time) (bool, error) {
	args := m.Called(ctx, reference, providerRef, paidAt)
	return args.Bool(0), args.Error(1)
}

func (m *MockTransactionRepository) MarkFailed(ctx context.Context, reference string, at time.Time) (bool, error) {
	args := m.Called(ctx, reference, at)
	return args.Bool(0), args.Error(1)
}

func (m *MockTransactionRepository) SaveDelivery(ctx context.Context, transaction *entity.Transaction) (bool, error) {
	args := m.Called(ctx, transaction)
	return args.Bool(0), args.Error(1)
}

func (m *MockTransactionRepository) ListByPhone(ctx context.Context, phone string, limit int) ([]*entity.Transaction, error) {
	args := m.Called(ctx, phone, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) List(ctx context.Context, filter persistence.TransactionFilter) ([]*entity.Transaction, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) Stats(ctx context.Context) (*persistence.TransactionStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*persistence.TransactionStats), args.Error(1)
}
