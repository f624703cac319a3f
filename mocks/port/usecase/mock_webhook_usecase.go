package usecase

import (
	"context"

	portuse "github.com/saukimart/sauki-backend/internal/domain/port/usecase"
	"github.com/stretchr/testify/mock"
)

// MockWebhookUseCase is a mock implementation of usecase.WebhookUseCase
type MockWebhookUseCase struct {
	mock.Mock
}

// NewMockWebhookUseCase creates a mock and registers expectation checks on cleanup
func NewMockWebhookUseCase(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockWebhookUseCase {
	m := &MockWebhookUseCase{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockWebhookUseCase) VerifySignature(signature string) error {
	args := m.Called(signature)
	return args.Error(0)
}

func (m *MockWebhookUseCase) HandlePaymentEvent(ctx context.Context, event portuse.PaymentEvent) (portuse.WebhookOutcome, error) {
	args := m.Called(ctx, event)
	return args.Get(0).(portuse.WebhookOutcome), args.Error(1)
}
