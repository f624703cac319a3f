package gateway

import (
	"context"

	"github.com/saukimart/sauki-backend/internal/domain/port/gateway"
	"github.com/stretchr/testify/mock"
)

// MockDeliveryGateway is a mock implementation of gateway.DeliveryGateway
type MockDeliveryGateway struct {
	mock.Mock
}

// NewMockDeliveryGateway creates a mock and registers expectation checks on cleanup
func NewMockDeliveryGateway(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockDeliveryGateway {
	m := &MockDeliveryGateway{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockDeliveryGateway) Deliver(ctx context.Context, req gateway.DeliveryRequest) gateway.DeliveryResult {
	args := m.Called(ctx, req)
	return args.Get(0).(gateway.DeliveryResult)
}
