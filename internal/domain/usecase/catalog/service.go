package catalog

import (
	"context"

	"github.com/saukimart/sauki-backend/internal/domain/entity"
	errs "github.com/saukimart/sauki-backend/internal/domain/error"
	"github.com/saukimart/sauki-backend/internal/domain/port/core"
	"github.com/saukimart/sauki-backend/internal/domain/port/persistence"
	portuse "github.com/saukimart/sauki-backend/internal/domain/port/usecase"
)

// DefaultPlans are the starter plans inserted into an empty catalog
func DefaultPlans() []entity.DataPlan {
	return []entity.DataPlan{
		{Network: "MTN", NetworkID: entity.NetworkMTN, PlanID: 1001, Name: "1GB SME - 30 Days", Validity: "30 Days", Price: 29000, Active: true},
		{Network: "MTN", NetworkID: entity.NetworkMTN, PlanID: 6666, Name: "2GB SME - 30 Days", Validity: "30 Days", Price: 58000, Active: true},
		{Network: "GLO", NetworkID: entity.NetworkGLO, PlanID: 206, Name: "1GB - 30 Days", Validity: "30 Days", Price: 30000, Active: true},
	}
}

// Service handles data plans and device products
type Service struct {
	planRepo    persistence.PlanRepository
	productRepo persistence.ProductRepository
	clock       core.Clock
	logger      core.Logger
}

var _ portuse.CatalogUseCase = (*Service)(nil)

// NewService creates a new catalog Service
func NewService(
	planRepo persistence.PlanRepository,
	productRepo persistence.ProductRepository,
	clock core.Clock,
	logger core.Logger,
) *Service {
	return &Service{
		planRepo:    planRepo,
		productRepo: productRepo,
		clock:       clock,
		logger:      logger,
	}
}

// ListPlans returns plans ordered by price
func (s *Service) ListPlans(ctx context.Context, filter persistence.PlanFilter) ([]*entity.DataPlan, error) {
	if filter.NetworkID != 0 {
		if _, ok := entity.NetworkName(filter.NetworkID); !ok {
			return nil, errs.NewValidationError("networkId", "unknown network", nil)
		}
	}
	return s.planRepo.List(ctx, filter)
}

// GetPlan returns one plan
func (s *Service) GetPlan(ctx context.Context, id uint64) (*entity.DataPlan, error) {
	return s.planRepo.GetByID(ctx, id)
}

// CreatePlan validates and stores a new plan
func (s *Service) CreatePlan(ctx context.Context, plan *entity.DataPlan) error {
	if err := plan.Validate(); err != nil {
		return err
	}
	now := s.clock.Now()
	plan.CreatedAt = now
	plan.UpdatedAt = now
	if err := s.planRepo.Create(ctx, plan); err != nil {
		return err
	}
	s.logger.Info("Data plan created", map[string]any{
		"plan_id": plan.ID,
		"network": plan.Network,
		"price":   plan.Price,
	})
	return nil
}

// UpdatePlan replaces an existing plan's fields
func (s *Service) UpdatePlan(ctx context.Context, plan *entity.DataPlan) error {
	existing, err := s.planRepo.GetByID(ctx, plan.ID)
	if err != nil {
		return err
	}
	if err := plan.Validate(); err != nil {
		return err
	}
	plan.CreatedAt = existing.CreatedAt
	plan.UpdatedAt = s.clock.Now()
	if err := s.planRepo.Update(ctx, plan); err != nil {
		return err
	}
	s.logger.Info("Data plan updated", map[string]any{"plan_id": plan.ID, "price": plan.Price})
	return nil
}

// DeletePlan removes a plan
func (s *Service) DeletePlan(ctx context.Context, id uint64) error {
	if err := s.planRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Data plan deleted", map[string]any{"plan_id": id})
	return nil
}

// ListProducts returns products, optionally only those that can be bought
func (s *Service) ListProducts(ctx context.Context, availableOnly bool) ([]*entity.Product, error) {
	return s.productRepo.List(ctx, availableOnly)
}

// GetProduct returns one product
func (s *Service) GetProduct(ctx context.Context, id uint64) (*entity.Product, error) {
	return s.productRepo.GetByID(ctx, id)
}

// CreateProduct validates and stores a new product
func (s *Service) CreateProduct(ctx context.Context, product *entity.Product) error {
	if err := product.Validate(); err != nil {
		return err
	}
	now := s.clock.Now()
	product.CreatedAt = now
	product.UpdatedAt = now
	if err := s.productRepo.Create(ctx, product); err != nil {
		return err
	}
	s.logger.Info("Product created", map[string]any{"product_id": product.ID, "price": product.Price})
	return nil
}

// UpdateProduct replaces an existing product's fields
func (s *Service) UpdateProduct(ctx context.Context, product *entity.Product) error {
	existing, err := s.productRepo.GetByID(ctx, product.ID)
	if err != nil {
		return err
	}
	if err := product.Validate(); err != nil {
		return err
	}
	product.CreatedAt = existing.CreatedAt
	product.UpdatedAt = s.clock.Now()
	if err := s.productRepo.Update(ctx, product); err != nil {
		return err
	}
	s.logger.Info("Product updated", map[string]any{"product_id": product.ID})
	return nil
}

// DeleteProduct removes a product
func (s *Service) DeleteProduct(ctx context.Context, id uint64) error {
	if err := s.productRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Product deleted", map[string]any{"product_id": id})
	return nil
}

// SeedDefaultPlans fills an empty plan table with DefaultPlans.
// It does nothing once any plan exists, so it is safe to run on every start.
func (s *Service) SeedDefaultPlans(ctx context.Context) (int, error) {
	count, err := s.planRepo.Count(ctx)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		s.logger.Debug("Plan catalog already populated", map[string]any{"plans": count})
		return 0, nil
	}

	created := 0
	for _, plan := range DefaultPlans() {
		plan := plan
		if err := s.CreatePlan(ctx, &plan); err != nil {
			return created, err
		}
		created++
	}

	s.logger.Info("Default plans seeded", map[string]any{"count": created})
	return created, nil
}
