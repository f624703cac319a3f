package entity

import (
	"encoding/json"
	"regexp"
	"strings"
	"time"

	errs "github.com/saukimart/sauki-backend/internal/domain/error"
	"github.com/saukimart/sauki-backend/internal/domain/port/core"
)

// TransactionType is what a transaction pays for
type TransactionType string

// Transaction types
const (
	TypeDataPurchase  TransactionType = "DATA_PURCHASE"
	TypeWalletFunding TransactionType = "WALLET_FUNDING"
	TypeDevice        TransactionType = "DEVICE"
)

// TransactionStatus defines possible status values for a transaction
type TransactionStatus string

// TransactionStatus constants
const (
	StatusPending   TransactionStatus = "PENDING"
	StatusPaid      TransactionStatus = "PAID"
	StatusDelivered TransactionStatus = "DELIVERED"
	StatusFailed    TransactionStatus = "FAILED"
)

var phonePattern = regexp.MustCompile(`^(0\d{10}|\+?234\d{10})$`)

// Customer identifies who is paying and, for data, whose line is topped up
type Customer struct {
	Name  string
	Phone string
	Email string
}

// Purchase describes what the money is for
type Purchase struct {
	NetworkID     int
	PlanReference string
	DataPlanID    *uint64
	ProductID     *uint64
	AgentID       *uint64
	Description   string
}

// Transaction is a single payment moving through PENDING -> PAID -> DELIVERED/FAILED
type Transaction struct {
	ID                 uint64
	Reference          string
	Type               TransactionType
	Status             TransactionStatus
	Amount             int64 // kobo
	Customer           Customer
	NetworkID          int
	PlanReference      string
	DataPlanID         *uint64
	ProductID          *uint64
	AgentID            *uint64
	Description        string
	PaymentProviderRef string
	Delivery           DeliveryOutcome
	DeliveryResponse   json.RawMessage
	DeliveryAttempts   int
	PaidAt             *time.Time
	DeliveredAt        *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// NewTransaction validates the request and builds a PENDING transaction
func NewTransaction(
	reference string,
	txType TransactionType,
	amount int64,
	customer Customer,
	purchase Purchase,
	clock core.Clock,
) (*Transaction, error) {
	if reference == "" {
		return nil, errs.NewValidationError("reference", "is required", nil)
	}
	if !IsValidTransactionType(txType) {
		return nil, errs.NewValidationError("type", "unknown transaction type "+string(txType), nil)
	}
	if amount <= 0 {
		return nil, errs.NewValidationError("amount", "must be greater than zero", errs.ErrInvalidAmount)
	}

	customer.Name = strings.TrimSpace(customer.Name)
	customer.Phone = strings.TrimSpace(customer.Phone)
	customer.Email = strings.TrimSpace(customer.Email)
	if err := ValidatePhone(customer.Phone); err != nil {
		return nil, err
	}

	if txType == TypeDataPurchase {
		if purchase.NetworkID <= 0 {
			return nil, errs.NewValidationError("networkId", "is required for data purchases", nil)
		}
		if strings.TrimSpace(purchase.PlanReference) == "" {
			return nil, errs.NewValidationError("planReference", "is required for data purchases", nil)
		}
	}

	now := clock.Now()
	return &Transaction{
		Reference:     reference,
		Type:          txType,
		Status:        StatusPending,
		Amount:        amount,
		Customer:      customer,
		NetworkID:     purchase.NetworkID,
		PlanReference: strings.TrimSpace(purchase.PlanReference),
		DataPlanID:    purchase.DataPlanID,
		ProductID:     purchase.ProductID,
		AgentID:       purchase.AgentID,
		Description:   purchase.Description,
		Delivery:      NotAttempted{},
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// ValidatePhone accepts 0XXXXXXXXXX, 234XXXXXXXXXX and +234XXXXXXXXXX
func ValidatePhone(phone string) error {
	if phone == "" {
		return errs.NewValidationError("phone", "is required", errs.ErrInvalidPhone)
	}
	if !phonePattern.MatchString(phone) {
		return errs.NewValidationError("phone", "must be a Nigerian mobile number", errs.ErrInvalidPhone)
	}
	return nil
}

// IsValidTransactionType reports whether t is a known type
func IsValidTransactionType(t TransactionType) bool {
	return t == TypeDataPurchase || t == TypeWalletFunding || t == TypeDevice
}

// IsPaid reports whether payment was confirmed for this transaction
func (t *Transaction) IsPaid() bool {
	return t.PaidAt != nil
}

// NeedsDelivery reports whether payment confirmation must be followed by a data top-up
func (t *Transaction) NeedsDelivery() bool {
	return t.Type == TypeDataPurchase
}

// MarkPaid moves a PENDING transaction to PAID at the given instant
func (t *Transaction) MarkPaid(providerRef string, at time.Time) {
	t.Status = StatusPaid
	t.PaymentProviderRef = providerRef
	t.PaidAt = &at
	t.UpdatedAt = at
}

// MarkFailed records that the transaction can no longer be paid
func (t *Transaction) MarkFailed(at time.Time) {
	t.Status = StatusFailed
	t.UpdatedAt = at
}

// CanRetryDelivery checks that a delivery may be (re)attempted
func (t *Transaction) CanRetryDelivery() error {
	if !t.NeedsDelivery() {
		return errs.NewValidationError("type", "only data purchases can be delivered", nil)
	}
	if t.Status == StatusDelivered {
		return errs.NewValidationError("status", "transaction already delivered", errs.ErrAlreadyDelivered)
	}
	if !t.IsPaid() {
		return errs.NewValidationError("status", "payment not yet confirmed", errs.ErrPaymentNotConfirmed)
	}
	return nil
}

// ApplyDelivery records the outcome of one delivery attempt and sets the status to match
func (t *Transaction) ApplyDelivery(outcome DeliveryOutcome, response json.RawMessage, clock core.Clock) {
	now := clock.Now()
	t.DeliveryAttempts++
	t.Delivery = outcome
	t.DeliveryResponse = response
	t.UpdatedAt = now

	switch outcome.(type) {
	case Delivered:
		t.Status = StatusDelivered
		t.DeliveredAt = &now
	default:
		t.Status = StatusFailed
	}
}

// DeliveryState returns the state of the latest delivery outcome
func (t *Transaction) DeliveryState() DeliveryState {
	if t.Delivery == nil {
		return DeliveryNotAttempted
	}
	return t.Delivery.State()
}

// CustomerMessage is the short status line shown to the paying customer
func (t *Transaction) CustomerMessage() string {
	switch t.Status {
	case StatusPending:
		return "payment not yet confirmed"
	case StatusPaid:
		if t.NeedsDelivery() {
			return "payment confirmed, delivery in progress"
		}
		return "payment confirmed"
	case StatusDelivered:
		return "data delivered"
	case StatusFailed:
		if t.IsPaid() {
			return "delivery failed, contact support"
		}
		return "payment could not be initialised"
	default:
		return string(t.Status)
	}
}

var paymentSuccessStatuses = map[string]struct{}{
	"successful": {},
	"succeeded":  {},
	"success":    {},
	"completed":  {},
}

// IsPaymentSuccessStatus reports whether a payment provider status means the money arrived
func IsPaymentSuccessStatus(status string) bool {
	_, ok := paymentSuccessStatuses[strings.ToLower(strings.TrimSpace(status))]
	return ok
}
