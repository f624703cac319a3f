package entity

import (
	"regexp"
	"strings"
	"time"

	errs "github.com/saukimart/sauki-backend/internal/domain/error"
	"github.com/saukimart/sauki-backend/internal/domain/port/core"
	"golang.org/x/crypto/bcrypt"
)

// AgentStatus is the approval state of a reseller
type AgentStatus string

// Agent statuses
const (
	AgentPending  AgentStatus = "PENDING"
	AgentActive   AgentStatus = "ACTIVE"
	AgentRejected AgentStatus = "REJECTED"
)

var pinPattern = regexp.MustCompile(`^\d{4,6}$`)

// PinHashCost is the bcrypt cost used for agent PINs; tests lower it
var PinHashCost = bcrypt.DefaultCost

// VirtualAccount is a bank account issued by the payment gateway
type VirtualAccount struct {
	BankName      string
	AccountNumber string
	AccountName   string
	ExpiresAt     *time.Time
}

// Agent is a reseller with a wallet balance in kobo
type Agent struct {
	ID             uint64
	Name           string
	Phone          string
	Email          string
	PinHash        string
	Status         AgentStatus
	Balance        int64
	VirtualAccount *VirtualAccount
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NewAgent validates a self-registration and hashes the PIN
func NewAgent(name, phone, email, pin string, clock core.Clock) (*Agent, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errs.NewValidationError("name", "is required", nil)
	}
	phone = strings.TrimSpace(phone)
	if err := ValidatePhone(phone); err != nil {
		return nil, err
	}

	hash, err := HashPin(pin)
	if err != nil {
		return nil, err
	}

	now := clock.Now()
	return &Agent{
		Name:      name,
		Phone:     phone,
		Email:     strings.TrimSpace(email),
		PinHash:   hash,
		Status:    AgentPending,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// HashPin validates and bcrypt-hashes a PIN
func HashPin(pin string) (string, error) {
	if !pinPattern.MatchString(pin) {
		return "", errs.NewValidationError("pin", "must be 4 to 6 digits", errs.ErrInvalidPin)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), PinHashCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPin compares a PIN with the stored hash
func (a *Agent) VerifyPin(pin string) bool {
	if a.PinHash == "" || pin == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(a.PinHash), []byte(pin)) == nil
}

// IsActive reports whether the agent has been approved
func (a *Agent) IsActive() bool {
	return a.Status == AgentActive
}

// HasWalletAccount reports whether a permanent virtual account was issued
func (a *Agent) HasWalletAccount() bool {
	return a.VirtualAccount != nil && a.VirtualAccount.AccountNumber != ""
}

// CanAfford reports whether the balance covers amount
func (a *Agent) CanAfford(amount int64) bool {
	return amount > 0 && a.Balance >= amount
}
