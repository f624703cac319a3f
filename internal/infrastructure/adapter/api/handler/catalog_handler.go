package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/saukimart/sauki-backend/internal/domain/port/persistence"
	"github.com/saukimart/sauki-backend/internal/domain/port/usecase"
	"github.com/saukimart/sauki-backend/internal/infrastructure/adapter/api/dto"
)

// CatalogHandler serves data plans and products, publicly and for admins
type CatalogHandler struct {
	catalog usecase.CatalogUseCase
}

// NewCatalogHandler creates a new catalog handler instance
func NewCatalogHandler(catalog usecase.CatalogUseCase) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// ListActivePlans handles GET /api/plans with an optional ?network filter
func (h *CatalogHandler) ListActivePlans(c *gin.Context) {
	h.listPlans(c, true)
}

// ListAllPlans handles GET /api/admin/plans
func (h *CatalogHandler) ListAllPlans(c *gin.Context) {
	h.listPlans(c, false)
}

func (h *CatalogHandler) listPlans(c *gin.Context, activeOnly bool) {
	networkID, ok := queryInt(c, "network")
	if !ok {
		return
	}

	plans, err := h.catalog.ListPlans(c.Request.Context(), persistence.PlanFilter{
		ActiveOnly: activeOnly,
		NetworkID:  networkID,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPlanResponses(plans))
}

// CreatePlan handles POST /api/admin/plans
func (h *CatalogHandler) CreatePlan(c *gin.Context) {
	var req dto.PlanRequest
	if !bindJSON(c, &req) {
		return
	}

	plan := req.ToEntity(0)
	if err := h.catalog.CreatePlan(c.Request.Context(), plan); err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewPlanResponse(plan))
}

// UpdatePlan handles PUT /api/admin/plans/:id
func (h *CatalogHandler) UpdatePlan(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.PlanRequest
	if !bindJSON(c, &req) {
		return
	}

	plan := req.ToEntity(id)
	if err := h.catalog.UpdatePlan(c.Request.Context(), plan); err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPlanResponse(plan))
}

// DeletePlan handles DELETE /api/admin/plans/:id
func (h *CatalogHandler) DeletePlan(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.catalog.DeletePlan(c.Request.Context(), id); err != nil {
		_ = c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListAvailableProducts handles GET /api/products
func (h *CatalogHandler) ListAvailableProducts(c *gin.Context) {
	h.listProducts(c, true)
}

// ListAllProducts handles GET /api/admin/products
func (h *CatalogHandler) ListAllProducts(c *gin.Context) {
	h.listProducts(c, false)
}

func (h *CatalogHandler) listProducts(c *gin.Context, availableOnly bool) {
	products, err := h.catalog.ListProducts(c.Request.Context(), availableOnly)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.NewProductResponses(products))
}

// CreateProduct handles POST /api/admin/products
func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	var req dto.ProductRequest
	if !bindJSON(c, &req) {
		return
	}

	product := req.ToEntity(0)
	if err := h.catalog.CreateProduct(c.Request.Context(), product); err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewProductResponse(product))
}

// UpdateProduct handles PUT /api/admin/products/:id
func (h *CatalogHandler) UpdateProduct(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.ProductRequest
	if !bindJSON(c, &req) {
		return
	}

	product := req.ToEntity(id)
	if err := h.catalog.UpdateProduct(c.Request.Context(), product); err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.NewProductResponse(product))
}

// DeleteProduct handles DELETE /api/admin/products/:id
func (h *CatalogHandler) DeleteProduct(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.catalog.DeleteProduct(c.Request.Context(), id); err != nil {
		_ = c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}
