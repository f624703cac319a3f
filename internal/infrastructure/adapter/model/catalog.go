package model

import (
	"time"
)

// DataPlan is the stored form of a data bundle
type DataPlan struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement"`
	Network   string    `gorm:"not null;size:20"`
	NetworkID int       `gorm:"not null;index"`
	PlanID    int       `gorm:"not null"`
	Name      string    `gorm:"not null;size:100"`
	Validity  string    `gorm:"size:50"`
	Price     int64     `gorm:"not null"`
	Active    bool      `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName specifies the table name for DataPlan
func (DataPlan) TableName() string {
	return "data_plans"
}

// Product is the stored form of a device for sale
type Product struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement"`
	Name        string    `gorm:"not null;size:150"`
	Description string    `gorm:"type:text"`
	Price       int64     `gorm:"not null"`
	ImageURL    string    `gorm:"size:500"`
	InStock     bool      `gorm:"not null"`
	Active      bool      `gorm:"not null"`
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`
}

// TableName specifies the table name for Product
func (Product) TableName() string {
	return "products"
}
