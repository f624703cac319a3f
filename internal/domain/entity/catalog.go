package entity

import (
	"strings"
	"time"

	errs "github.com/saukimart/sauki-backend/internal/domain/error"
)

// Provider network ids
const (
	NetworkMTN     = 1
	NetworkGLO     = 2
	Network9Mobile = 3
	NetworkAirtel  = 4
)

var networkNames = map[int]string{
	NetworkMTN:     "MTN",
	NetworkGLO:     "GLO",
	Network9Mobile: "9MOBILE",
	NetworkAirtel:  "AIRTEL",
}

// NetworkName returns the display name for a provider network id
func NetworkName(id int) (string, bool) {
	name, ok := networkNames[id]
	return name, ok
}

// DataPlan is a data bundle sold at a fixed price
type DataPlan struct {
	ID        uint64
	Network   string
	NetworkID int
	PlanID    int // provider plan code
	Name      string
	Validity  string
	Price     int64 // kobo
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks plan fields and fills the network name from its id
func (p *DataPlan) Validate() error {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return errs.NewValidationError("name", "is required", nil)
	}
	name, ok := NetworkName(p.NetworkID)
	if !ok {
		return errs.NewValidationError("networkId", "unknown network", nil)
	}
	if p.Network == "" {
		p.Network = name
	}
	if p.PlanID <= 0 {
		return errs.NewValidationError("planId", "must be a positive provider plan id", nil)
	}
	if p.Price <= 0 {
		return errs.NewValidationError("price", "must be greater than zero", errs.ErrInvalidAmount)
	}
	return nil
}

// Product is a device sold through the shop
type Product struct {
	ID          uint64
	Name        string
	Description string
	Price       int64 // kobo
	ImageURL    string
	InStock     bool
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Validate checks product fields
func (p *Product) Validate() error {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return errs.NewValidationError("name", "is required", nil)
	}
	if p.Price <= 0 {
		return errs.NewValidationError("price", "must be greater than zero", errs.ErrInvalidAmount)
	}
	return nil
}

// IsAvailable reports whether the product can be bought
func (p *Product) IsAvailable() bool {
	return p.Active && p.InStock
}
