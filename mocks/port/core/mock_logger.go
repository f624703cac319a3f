package core

import (
	domaincore "github.com/saukimart/sauki-backend/internal/domain/port/core"
	"github.com/stretchr/testify/mock"
)

// MockLogger is a mock implementation of core.Logger
type MockLogger struct {
	mock.Mock
}

// NewMockLogger creates a MockLogger and registers expectation checks on cleanup
func NewMockLogger(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockLogger {
	m := &MockLogger{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// AllowAll accepts every log call without asserting on it
func (m *MockLogger) AllowAll() *MockLogger {
	for _, method := range []string{"Debug", "Info", "Warn", "Error"} {
		m.On(method, mock.Anything, mock.Anything).Maybe()
	}
	return m
}

func (m *MockLogger) SetLevel(level domaincore.LogLevel) {
	m.Called(level)
}

func (m *MockLogger) GetLevel() domaincore.LogLevel {
	args := m.Called()
	return args.Get(0).(domaincore.LogLevel)
}

func (m *MockLogger) With(fields map[string]any) domaincore.Logger {
	return m
}

func (m *MockLogger) Debug(message string, fields map[string]any) {
	m.Called(message, fields)
}

func (m *MockLogger) Info(message string, fields map[string]any) {
	m.Called(message, fields)
}

func (m *MockLogger) Warn(message string, fields map[string]any) {
	m.Called(message, fields)
}

func (m *MockLogger) Error(message string, fields map[string]any) {
	m.Called(message, fields)
}

func (m *MockLogger) Flush() error {
	args := m.Called()
	return args.Error(0)
}
