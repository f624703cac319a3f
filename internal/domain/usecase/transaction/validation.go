package transaction

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/saukimart/sauki-backend/internal/domain/entity"
	errs "github.com/saukimart/sauki-backend/internal/domain/error"
	"github.com/saukimart/sauki-backend/internal/domain/port/persistence"
	portuse "github.com/saukimart/sauki-backend/internal/domain/port/usecase"
)

// CheckoutValidator turns a guest checkout into a priced PendingRequest using the catalog
type CheckoutValidator struct {
	planRepo    persistence.PlanRepository
	productRepo persistence.ProductRepository
}

// NewCheckoutValidator creates a new CheckoutValidator
func NewCheckoutValidator(planRepo persistence.PlanRepository, productRepo persistence.ProductRepository) *CheckoutValidator {
	return &CheckoutValidator{
		planRepo:    planRepo,
		productRepo: productRepo,
	}
}

// Resolve validates the request and looks up the catalog item being bought
func (v *CheckoutValidator) Resolve(ctx context.Context, req portuse.CheckoutRequest) (portuse.PendingRequest, error) {
	customer := entity.Customer{
		Name:  strings.TrimSpace(req.Name),
		Phone: strings.TrimSpace(req.Phone),
		Email: strings.TrimSpace(req.Email),
	}
	if customer.Name == "" {
		return portuse.PendingRequest{}, errs.NewValidationError("name", "is required", nil)
	}
	if err := entity.ValidatePhone(customer.Phone); err != nil {
		return portuse.PendingRequest{}, err
	}

	switch req.Type {
	case entity.TypeDataPurchase:
		return v.resolvePlan(ctx, req, customer)
	case entity.TypeDevice:
		return v.resolveProduct(ctx, req, customer)
	case entity.TypeWalletFunding:
		return portuse.PendingRequest{}, errs.NewValidationError("type", "wallets are funded through the agent account", nil)
	default:
		return portuse.PendingRequest{}, errs.NewValidationError("type", "unknown transaction type "+string(req.Type), nil)
	}
}

func (v *CheckoutValidator) resolvePlan(ctx context.Context, req portuse.CheckoutRequest, customer entity.Customer) (portuse.PendingRequest, error) {
	if req.PlanID == nil || *req.PlanID == 0 {
		return portuse.PendingRequest{}, errs.NewValidationError("planId", "no plan selected", nil)
	}

	plan, err := v.planRepo.GetByID(ctx, *req.PlanID)
	if err != nil {
		return portuse.PendingRequest{}, err
	}
	if !plan.Active {
		return portuse.PendingRequest{}, errs.NewValidationError("planId", "plan is not available", nil)
	}

	planID := plan.ID
	return portuse.PendingRequest{
		Type:     entity.TypeDataPurchase,
		Amount:   plan.Price,
		Customer: customer,
		Purchase: entity.Purchase{
			NetworkID:     plan.NetworkID,
			PlanReference: strconv.Itoa(plan.PlanID),
			DataPlanID:    &planID,
			Description:   fmt.Sprintf("%s %s", plan.Network, plan.Name),
		},
	}, nil
}

func (v *CheckoutValidator) resolveProduct(ctx context.Context, req portuse.CheckoutRequest, customer entity.Customer) (portuse.PendingRequest, error) {
	if req.ProductID == nil || *req.ProductID == 0 {
		return portuse.PendingRequest{}, errs.NewValidationError("productId", "no product selected", nil)
	}

	product, err := v.productRepo.GetByID(ctx, *req.ProductID)
	if err != nil {
		return portuse.PendingRequest{}, err
	}
	if !product.IsAvailable() {
		return portuse.PendingRequest{}, errs.NewValidationError("productId", "product is out of stock", nil)
	}

	productID := product.ID
	return portuse.PendingRequest{
		Type:     entity.TypeDevice,
		Amount:   product.Price,
		Customer: customer,
		Purchase: entity.Purchase{
			ProductID:   &productID,
			Description: product.Name,
		},
	}, nil
}
