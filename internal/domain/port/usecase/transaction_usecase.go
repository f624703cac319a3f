package usecase

import (
	"context"

	"github.com/saukimart/sauki-backend/internal/domain/entity"
	"github.com/saukimart/sauki-backend/internal/domain/port/gateway"
)

// PendingRequest is everything needed to open a PENDING transaction
type PendingRequest struct {
	Type     entity.TransactionType
	Amount   int64
	Customer entity.Customer
	Purchase entity.Purchase
}

// CheckoutRequest is a guest purchase of a catalog item. The price always
// comes from the catalog: PlanID for data, ProductID for devices.
type CheckoutRequest struct {
	Name      string
	Phone     string
	Email     string
	Type      entity.TransactionType
	PlanID    *uint64
	ProductID *uint64
}

// CheckoutResult pairs the new transaction with the account to pay into
type CheckoutResult struct {
	Transaction *entity.Transaction
	Account     *gateway.VirtualAccount
}

// TransactionUseCase drives a transaction through payment and delivery
type TransactionUseCase interface {
	// Checkout creates a PENDING transaction and a one-time virtual account for it
	Checkout(ctx context.Context, req CheckoutRequest) (*CheckoutResult, error)

	// CreatePending persists a new PENDING transaction with a fresh reference
	CreatePending(ctx context.Context, req PendingRequest) (*entity.Transaction, error)

	// ConfirmPayment marks a PENDING transaction PAID exactly once and delivers data purchases
	ConfirmPayment(ctx context.Context, reference string, observedAmount int64, providerRef string) (*entity.Transaction, error)

	// VerifyPayment is the polling fallback: it asks the gateway and confirms if paid
	VerifyPayment(ctx context.Context, reference string) (*entity.Transaction, error)

	// RetryDelivery re-attempts delivery of a paid data purchase
	RetryDelivery(ctx context.Context, transactionID uint64) (*entity.Transaction, error)

	// Track returns the latest transactions for a phone number
	Track(ctx context.Context, phone string, limit int) ([]*entity.Transaction, error)
}
