package core

import (
	"time"

	"github.com/stretchr/testify/mock"
)

// MockClock is a mock implementation of core.Clock
type MockClock struct {
	mock.Mock
}

// NewMockClock creates a MockClock and registers expectation checks on cleanup
func NewMockClock(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockClock {
	m := &MockClock{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// NewFixedMockClock returns a clock whose Now always reports at
func NewFixedMockClock(t interface {
	mock.TestingT
	Cleanup(func())
}, at time.Time) *MockClock {
	m := NewMockClock(t)
	m.On("Now").Return(at).Maybe()
	return m
}

func (m *MockClock) Now() time.Time {
	args := m.Called()
	return args.Get(0).(time.Time)
}
