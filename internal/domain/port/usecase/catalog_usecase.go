package usecase

import (
	"context"

	"github.com/saukimart/sauki-backend/internal/domain/entity"
	"github.com/saukimart/sauki-backend/internal/domain/port/persistence"
)

// CatalogUseCase manages data plans and products
type CatalogUseCase interface {
	ListPlans(ctx context.Context, filter persistence.PlanFilter) ([]*entity.DataPlan, error)
	GetPlan(ctx context.Context, id uint64) (*entity.DataPlan, error)
	CreatePlan(ctx context.Context, plan *entity.DataPlan) error
	UpdatePlan(ctx context.Context, plan *entity.DataPlan) error
	DeletePlan(ctx context.Context, id uint64) error

	ListProducts(ctx context.Context, availableOnly bool) ([]*entity.Product, error)
	GetProduct(ctx context.Context, id uint64) (*entity.Product, error)
	CreateProduct(ctx context.Context, product *entity.Product) error
	UpdateProduct(ctx context.Context, product *entity.Product) error
	DeleteProduct(ctx context.Context, id uint64) error

	// SeedDefaultPlans inserts the starter plans when the table is empty and returns how many were added
	SeedDefaultPlans(ctx context.Context) (int, error)
}
