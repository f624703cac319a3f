package model

import (
	"time"
)

// Agent represents the database model for resellers and their wallets
type Agent struct {
	ID                   uint64    `gorm:"primaryKey;autoIncrement"`
	Name                 string    `gorm:"not null;size:150"`
	Phone                string    `gorm:"uniqueIndex;not null;size:20"`
	Email                string    `gorm:"size:150"`
	PinHash              string    `gorm:"not null;size:100"`
	Status               string    `gorm:"not null;size:20;index"`
	Balance              int64     `gorm:"not null"`
	VirtualAccountBank   string    `gorm:"size:100"`
	VirtualAccountNumber string    `gorm:"size:20"`
	VirtualAccountName   string    `gorm:"size:150"`
	CreatedAt            time.Time `gorm:"not null"`
	UpdatedAt            time.Time `gorm:"not null"`
}

// TableName specifies the table name for Agent
func (Agent) TableName() string {
	return "agents"
}
