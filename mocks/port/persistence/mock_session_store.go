package persistence

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

// MockSessionStore is a mock implementation of persistence.SessionStore
type MockSessionStore struct {
	mock.Mock
}

// NewMockSessionStore creates a mock and registers expectation checks on cleanup
func NewMockSessionStore(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockSessionStore {
	m := &MockSessionStore{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockSessionStore) Save(ctx context.Context, sessionID, subject string, ttl time.Duration) error {
	args := m.Called(ctx, sessionID, subject, ttl)
	return args.Error(0)
}

func (m *MockSessionStore) Get(ctx context.Context, sessionID string) (string, error) {
	args := m.Called(ctx, sessionID)
	return args.String(0), args.Error(1)
}

func (m *MockSessionStore) Delete(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}
