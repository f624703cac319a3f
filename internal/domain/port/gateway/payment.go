package gateway

import (
	"context"
	"time"
)

// VirtualAccountRequest asks the payment gateway for a bank account tied to a reference
type VirtualAccountRequest struct {
	Reference string
	Amount    int64 // kobo; ignored for permanent accounts
	Name      string
	Phone     string
	Email     string
	Narration string
	// Permanent accounts are reused for every transfer, e.g. agent wallets
	Permanent bool
}

// VirtualAccount is where the customer should transfer money
type VirtualAccount struct {
	BankName      string
	AccountNumber string
	AccountName   string
	Amount        int64
	ExpiresAt     *time.Time
}

// Verification is the provider's view of a reference
type Verification struct {
	Paid           bool
	AmountObserved int64 // kobo
	ProviderRef    string
	Status         string
}

// PaymentGateway issues virtual accounts and verifies payments
type PaymentGateway interface {
	// CreateVirtualAccount returns a ProviderError when the gateway rejects the request
	CreateVirtualAccount(ctx context.Context, req VirtualAccountRequest) (*VirtualAccount, error)

	// Verify asks the gateway whether a reference has been paid
	Verify(ctx context.Context, reference string) (*Verification, error)
}
