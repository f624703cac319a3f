package model

import (
	"time"

	"gorm.io/datatypes"
)

// Transaction represents the database model for payment transactions
type Transaction struct {
	ID                    uint64         `gorm:"primaryKey;autoIncrement"`
	Reference             string         `gorm:"uniqueIndex;not null;size:100"`
	Type                  string         `gorm:"not null;size:30;index"`
	Status                string         `gorm:"not null;size:20;index"`
	Amount                int64          `gorm:"not null"`
	CustomerName          string         `gorm:"size:150"`
	CustomerPhone         string         `gorm:"not null;size:20;index"`
	CustomerEmail         string         `gorm:"size:150"`
	NetworkID             int            `gorm:"not null"`
	PlanReference         string         `gorm:"size:50"`
	DataPlanID            *uint64        `gorm:"index"`
	ProductID             *uint64        `gorm:"index"`
	AgentID               *uint64        `gorm:"index"`
	Description           string         `gorm:"type:text"`
	PaymentProviderRef    string         `gorm:"size:100"`
	DeliveryState         string         `gorm:"not null;size:20"`
	DeliveryProviderRef   string         `gorm:"size:100"`
	DeliveryFailureReason string         `gorm:"type:text"`
	DeliveryResponse      datatypes.JSON `gorm:"type:jsonb"`
	DeliveryAttempts      int            `gorm:"not null"`
	PaidAt                *time.Time
	DeliveredAt           *time.Time
	CreatedAt             time.Time `gorm:"not null"`
	UpdatedAt             time.Time `gorm:"not null"`
}

// TableName specifies the table name for Transaction
func (Transaction) TableName() string {
	return "transactions"
}
