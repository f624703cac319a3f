package repository

import (
	"context"

	"github.com/saukimart/sauki-backend/internal/domain/entity"
	errs "github.com/saukimart/sauki-backend/internal/domain/error"
	"github.com/saukimart/sauki-backend/internal/domain/port/core"
	"github.com/saukimart/sauki-backend/internal/domain/port/persistence"
	"github.com/saukimart/sauki-backend/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

// PlanRepository implements persistence.PlanRepository using GORM
type PlanRepository struct {
	db              *gorm.DB
	logger          core.Logger
	errorClassifier *ErrorClassifier
}

// NewPlanRepository creates a new PlanRepository instance
func NewPlanRepository(db *gorm.DB, logger core.Logger) *PlanRepository {
	return &PlanRepository{db: db, logger: logger, errorClassifier: NewErrorClassifier()}
}

var _ persistence.PlanRepository = (*PlanRepository)(nil)

func (r *PlanRepository) Create(ctx context.Context, plan *entity.DataPlan) error {
	row := planToModel(plan)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return r.errorClassifier.MapError(err, nil, nil)
	}
	plan.ID = row.ID
	return nil
}

// Update overwrites every editable column, including zero values such as active=false
func (r *PlanRepository) Update(ctx context.Context, plan *entity.DataPlan) error {
	row := planToModel(plan)
	result := r.db.WithContext(ctx).Model(&model.DataPlan{}).
		Where("id = ?", plan.ID).
		Select("network", "network_id", "plan_id", "name", "validity", "price", "active", "updated_at").
		Updates(&row)
	if result.Error != nil {
		return r.errorClassifier.MapError(result.Error, nil, nil)
	}
	if result.RowsAffected == 0 {
		return errs.ErrPlanNotFound
	}
	return nil
}

func (r *PlanRepository) Delete(ctx context.Context, id uint64) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.DataPlan{})
	if result.Error != nil {
		return r.errorClassifier.MapError(result.Error, nil, nil)
	}
	if result.RowsAffected == 0 {
		return errs.ErrPlanNotFound
	}
	return nil
}

func (r *PlanRepository) GetByID(ctx context.Context, id uint64) (*entity.DataPlan, error) {
	var row model.DataPlan
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		return nil, r.errorClassifier.MapError(err, errs.ErrPlanNotFound, nil)
	}
	return planToEntity(&row), nil
}

// List returns plans ordered by price ascending
func (r *PlanRepository) List(ctx context.Context, filter persistence.PlanFilter) ([]*entity.DataPlan, error) {
	query := r.db.WithContext(ctx).Model(&model.DataPlan{})
	if filter.ActiveOnly {
		query = query.Where("active = ?", true)
	}
	if filter.NetworkID > 0 {
		query = query.Where("network_id = ?", filter.NetworkID)
	}

	var rows []model.DataPlan
	if err := query.Order("price ASC, id ASC").Find(&rows).Error; err != nil {
		return nil, r.errorClassifier.MapError(err, nil, nil)
	}

	plans := make([]*entity.DataPlan, 0, len(rows))
	for i := range rows {
		plans = append(plans, planToEntity(&rows[i]))
	}
	return plans, nil
}

func (r *PlanRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.DataPlan{}).Count(&count).Error; err != nil {
		return 0, r.errorClassifier.MapError(err, nil, nil)
	}
	return count, nil
}

// ProductRepository implements persistence.ProductRepository using GORM
type ProductRepository struct {
	db              *gorm.DB
	logger          core.Logger
	errorClassifier *ErrorClassifier
}

// NewProductRepository creates a new ProductRepository instance
func NewProductRepository(db *gorm.DB, logger core.Logger) *ProductRepository {
	return &ProductRepository{db: db, logger: logger, errorClassifier: NewErrorClassifier()}
}

var _ persistence.ProductRepository = (*ProductRepository)(nil)

func (r *ProductRepository) Create(ctx context.Context, product *entity.Product) error {
	row := productToModel(product)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return r.errorClassifier.MapError(err, nil, nil)
	}
	product.ID = row.ID
	return nil
}

// Update overwrites every editable column, including in_stock=false and active=false
func (r *ProductRepository) Update(ctx context.Context, product *entity.Product) error {
	row := productToModel(product)
	result := r.db.WithContext(ctx).Model(&model.Product{}).
		Where("id = ?", product.ID).
		Select("name", "description", "price", "image_url", "in_stock", "active", "updated_at").
		Updates(&row)
	if result.Error != nil {
		return r.errorClassifier.MapError(result.Error, nil, nil)
	}
	if result.RowsAffected == 0 {
		return errs.ErrProductNotFound
	}
	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id uint64) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Product{})
	if result.Error != nil {
		return r.errorClassifier.MapError(result.Error, nil, nil)
	}
	if result.RowsAffected == 0 {
		return errs.ErrProductNotFound
	}
	return nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id uint64) (*entity.Product, error) {
	var row model.Product
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		return nil, r.errorClassifier.MapError(err, errs.ErrProductNotFound, nil)
	}
	return productToEntity(&row), nil
}

// List returns products newest first
func (r *ProductRepository) List(ctx context.Context, availableOnly bool) ([]*entity.Product, error) {
	query := r.db.WithContext(ctx).Model(&model.Product{})
	if availableOnly {
		query = query.Where("active = ? AND in_stock = ?", true, true)
	}

	var rows []model.Product
	if err := query.Order("created_at DESC, id DESC").Find(&rows).Error; err != nil {
		return nil, r.errorClassifier.MapError(err, nil, nil)
	}

	products := make([]*entity.Product, 0, len(rows))
	for i := range rows {
		products = append(products, productToEntity(&rows[i]))
	}
	return products, nil
}
