package persistence

import (
	"context"

	"github.com/saukimart/sauki-backend/internal/domain/entity"
)

// PlanFilter narrows data plan listings
type PlanFilter struct {
	ActiveOnly bool
	NetworkID  int
}

// PlanRepository stores data plans
type PlanRepository interface {
	Create(ctx context.Context, plan *entity.DataPlan) error
	// Update overwrites all editable fields. Returns ErrPlanNotFound for an unknown id.
	Update(ctx context.Context, plan *entity.DataPlan) error
	// Delete removes a plan. Returns ErrPlanNotFound for an unknown id.
	Delete(ctx context.Context, id uint64) error
	GetByID(ctx context.Context, id uint64) (*entity.DataPlan, error)
	// List returns plans ordered by price ascending
	List(ctx context.Context, filter PlanFilter) ([]*entity.DataPlan, error)
	Count(ctx context.Context) (int64, error)
}

// ProductRepository stores devices for sale
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	// Update overwrites all editable fields. Returns ErrProductNotFound for an unknown id.
	Update(ctx context.Context, product *entity.Product) error
	// Delete removes a product. Returns ErrProductNotFound for an unknown id.
	Delete(ctx context.Context, id uint64) error
	GetByID(ctx context.Context, id uint64) (*entity.Product, error)
	// List returns products newest first; availableOnly keeps active, in-stock items
	List(ctx context.Context, availableOnly bool) ([]*entity.Product, error)
}
