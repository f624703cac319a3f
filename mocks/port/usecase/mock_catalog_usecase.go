package usecase

import (
	"context"

	"github.com/saukimart/sauki-backend/internal/domain/entity"
	"github.com/saukimart/sauki-backend/internal/domain/port/persistence"
	"github.com/stretchr/testify/mock"
)

// MockCatalogUseCase is a mock implementation of usecase.CatalogUseCase
type MockCatalogUseCase struct {
	mock.Mock
}

// NewMockCatalogUseCase creates a mock and registers expectation checks on cleanup
func NewMockCatalogUseCase(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockCatalogUseCase {
	m := &MockCatalogUseCase{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockCatalogUseCase) ListPlans(ctx context.Context, filter persistence.PlanFilter) ([]*entity.DataPlan, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.DataPlan), args.Error(1)
}

func (m *MockCatalogUseCase) GetPlan(ctx context.Context, id uint64) (*entity.DataPlan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.DataPlan), args.Error(1)
}

func (m *MockCatalogUseCase) CreatePlan(ctx context.Context, plan *entity.DataPlan) error {
	args := m.Called(ctx, plan)
	return args.Error(0)
}

func (m *MockCatalogUseCase) UpdatePlan(ctx context.Context, plan *entity.DataPlan) error {
	args := m.Called(ctx, plan)
	return args.Error(0)
}

func (m *MockCatalogUseCase) DeletePlan(ctx context.Context, id uint64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCatalogUseCase) ListProducts(ctx context.Context, availableOnly bool) ([]*entity.Product, error) {
	args := m.Called(ctx, availableOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Product), args.Error(1)
}

func (m *MockCatalogUseCase) GetProduct(ctx context.Context, id uint64) (*entity.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Product), args.Error(1)
}

func (m *MockCatalogUseCase) CreateProduct(ctx context.Context, product *entity.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockCatalogUseCase) UpdateProduct(ctx context.Context, product *entity.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockCatalogUseCase) DeleteProduct(ctx context.Context, id uint64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCatalogUseCase) SeedDefaultPlans(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}
