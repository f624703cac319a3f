package gateway

import (
	"context"

	"github.com/saukimart/sauki-backend/internal/domain/port/gateway"
	"github.com/stretchr/testify/mock"
)

// MockPaymentGateway is a mock implementation of gateway.PaymentGateway
type MockPaymentGateway struct {
	mock.Mock
}

// NewMockPaymentGateway creates a mock and registers expectation checks on cleanup
func NewMockPaymentGateway(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockPaymentGateway {
	m := &MockPaymentGateway{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockPaymentGateway) CreateVirtualAccount(ctx context.Context, req gateway.VirtualAccountRequest) (*gateway.VirtualAccount, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gateway.VirtualAccount), args.Error(1)
}

func (m *MockPaymentGateway) Verify(ctx context.Context, reference string) (*gateway.Verification, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gateway.Verification), args.Error(1)
}
