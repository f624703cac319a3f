package usecase

import (
	"context"

	"github.com/saukimart/sauki-backend/internal/domain/entity"
	portuse "github.com/saukimart/sauki-backend/internal/domain/port/usecase"
	"github.com/stretchr/testify/mock"
)

// MockTransactionUseCase is a mock implementation of usecase.TransactionUseCase
type MockTransactionUseCase struct {
	mock.Mock
}

// NewMockTransactionUseCase creates a mock and registers expectation checks on cleanup
func NewMockTransactionUseCase(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockTransactionUseCase {
	m := &MockTransactionUseCase{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockTransactionUseCase) Checkout(ctx context.Context, req portuse.CheckoutRequest) (*portuse.CheckoutResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portuse.CheckoutResult), args.Error(1)
}

func (m *MockTransactionUseCase) CreatePending(ctx context.Context, req portuse.PendingRequest) (*entity.Transaction, error) {
	args := m.Called(ctx, req)
	return transactionOrNil(args)
}

func (m *MockTransactionUseCase) ConfirmPayment(ctx context.Context, reference string, observedAmount int64, providerRef string) (*entity.Transaction, error) {
	args := m.Called(ctx, reference, observedAmount, providerRef)
	return transactionOrNil(args)
}

func (m *MockTransactionUseCase) VerifyPayment(ctx context.Context, reference string) (*entity.Transaction, error) {
	args := m.Called(ctx, reference)
	return transactionOrNil(args)
}

func (m *MockTransactionUseCase) RetryDelivery(ctx context.Context, transactionID uint64) (*entity.Transaction, error) {
	args := m.Called(ctx, transactionID)
	return transactionOrNil(args)
}

func (m *MockTransactionUseCase) Track(ctx context.Context, phone string, limit int) ([]*entity.Transaction, error) {
	args := m.Called(ctx, phone, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Transaction), args.Error(1)
}

func transactionOrNil(args mock.Arguments) (*entity.Transaction, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Transaction), args.Error(1)
}
