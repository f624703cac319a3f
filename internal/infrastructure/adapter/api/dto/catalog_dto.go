package dto

import "github.com/saukimart/sauki-backend/internal/domain/entity"

// PlanRequest creates or replaces a data plan; price is in kobo
type PlanRequest struct {
	NetworkID int    `json:"networkId" binding:"required"`
	PlanID    int    `json:"planId" binding:"required"`
	Name      string `json:"name" binding:"required"`
	Validity  string `json:"validity"`
	Price     int64  `json:"price" binding:"required"`
	Active    *bool  `json:"active"`
}

// ToEntity maps the request; a missing active flag means active
func (r PlanRequest) ToEntity(id uint64) *entity.DataPlan {
	active := true
	if r.Active != nil {
		active = *r.Active
	}
	return &entity.DataPlan{
		ID:        id,
		NetworkID: r.NetworkID,
		PlanID:    r.PlanID,
		Name:      r.Name,
		Validity:  r.Validity,
		Price:     r.Price,
		Active:    active,
	}
}

// PlanResponse represents a data plan
type PlanResponse struct {
	ID           uint64 `json:"id"`
	Network      string `json:"network"`
	NetworkID    int    `json:"networkId"`
	PlanID       int    `json:"planId"`
	Name         string `json:"name"`
	Validity     string `json:"validity"`
	Price        int64  `json:"price"`
	PriceDisplay string `json:"priceDisplay"`
	Active       bool   `json:"active"`
}

// NewPlanResponse maps a plan for the API
func NewPlanResponse(p *entity.DataPlan) PlanResponse {
	return PlanResponse{
		ID:           p.ID,
		Network:      p.Network,
		NetworkID:    p.NetworkID,
		PlanID:       p.PlanID,
		Name:         p.Name,
		Validity:     p.Validity,
		Price:        p.Price,
		PriceDisplay: entity.FormatNaira(p.Price),
		Active:       p.Active,
	}
}

// NewPlanResponses maps a plan listing
func NewPlanResponses(plans []*entity.DataPlan) []PlanResponse {
	out := make([]PlanResponse, 0, len(plans))
	for _, p := range plans {
		out = append(out, NewPlanResponse(p))
	}
	return out
}

// ProductRequest creates or replaces a product; price is in kobo
type ProductRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Price       int64  `json:"price" binding:"required"`
	ImageURL    string `json:"imageUrl" binding:"omitempty,url"`
	InStock     *bool  `json:"inStock"`
	Active      *bool  `json:"active"`
}

// ToEntity maps the request; missing flags default to true
func (r ProductRequest) ToEntity(id uint64) *entity.Product {
	return &entity.Product{
		ID:          id,
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		ImageURL:    r.ImageURL,
		InStock:     r.InStock == nil || *r.InStock,
		Active:      r.Active == nil || *r.Active,
	}
}

// ProductResponse represents a product
type ProductResponse struct {
	ID           uint64 `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	Price        int64  `json:"price"`
	PriceDisplay string `json:"priceDisplay"`
	ImageURL     string `json:"imageUrl,omitempty"`
	InStock      bool   `json:"inStock"`
	Active       bool   `json:"active"`
}

// NewProductResponse maps a product for the API
func NewProductResponse(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		Price:        p.Price,
		PriceDisplay: entity.FormatNaira(p.Price),
		ImageURL:     p.ImageURL,
		InStock:      p.InStock,
		Active:       p.Active,
	}
}

// NewProductResponses maps a product listing
func NewProductResponses(products []*entity.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, NewProductResponse(p))
	}
	return out
}
