package core

import (
	"time"

	"github.com/stretchr/testify/mock"
)

// MockMetrics is a mock implementation of core.Metrics
type MockMetrics struct {
	mock.Mock
}

// NewMockMetrics creates a MockMetrics and registers expectation checks on cleanup
func NewMockMetrics(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockMetrics {
	m := &MockMetrics{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// AllowAll accepts every metric call without asserting on it
func (m *MockMetrics) AllowAll() *MockMetrics {
	m.On("PaymentConfirmed", mock.Anything).Maybe()
	m.On("DeliveryCompleted", mock.Anything, mock.Anything).Maybe()
	m.On("WebhookHandled", mock.Anything).Maybe()
	m.On("WalletFunded", mock.Anything).Maybe()
	return m
}

func (m *MockMetrics) PaymentConfirmed(txType string) {
	m.Called(txType)
}

func (m *MockMetrics) DeliveryCompleted(outcome string, elapsed time.Duration) {
	m.Called(outcome, elapsed)
}

func (m *MockMetrics) WebhookHandled(outcome string) {
	m.Called(outcome)
}

func (m *MockMetrics) WalletFunded(amount int64) {
	m.Called(amount)
}
