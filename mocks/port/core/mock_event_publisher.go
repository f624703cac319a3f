package core

import (
	"context"

	domaincore "github.com/saukimart/sauki-backend/internal/domain/port/core"
	"github.com/stretchr/testify/mock"
)

// MockEventPublisher is a mock implementation of core.EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

// NewMockEventPublisher creates a MockEventPublisher and registers expectation checks on cleanup
func NewMockEventPublisher(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockEventPublisher {
	m := &MockEventPublisher{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockEventPublisher) Publish(ctx context.Context, event domaincore.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockEventPublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}

// EventOfType matches a published event by its type
func EventOfType(eventType string) any {
	return mock.MatchedBy(func(e domaincore.Event) bool { return e.Type == eventType })
}
