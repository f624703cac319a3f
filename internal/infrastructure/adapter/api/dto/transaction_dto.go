package dto

import (
	"time"

	"github.com/saukimart/sauki-backend/internal/domain/entity"
	"github.com/saukimart/sauki-backend/internal/domain/port/usecase"
)

// CheckoutRequest represents the API request for a guest purchase.
// The amount always comes from the catalog item.
type CheckoutRequest struct {
	Name      string  `json:"name" binding:"required"`
	Phone     string  `json:"phone" binding:"required"`
	Email     string  `json:"email" binding:"omitempty,email"`
	Type      string  `json:"type" binding:"required,oneof=DATA_PURCHASE DEVICE"`
	PlanID    *uint64 `json:"planId"`
	ProductID *uint64 `json:"productId"`
}

// ToUseCase maps the request onto the checkout use case input
func (r CheckoutRequest) ToUseCase() usecase.CheckoutRequest {
	return usecase.CheckoutRequest{
		Name:      r.Name,
		Phone:     r.Phone,
		Email:     r.Email,
		Type:      entity.TransactionType(r.Type),
		PlanID:    r.PlanID,
		ProductID: r.ProductID,
	}
}

// CheckoutResponse tells the customer where to transfer the money
type CheckoutResponse struct {
	Reference     string     `json:"reference"`
	Amount        int64      `json:"amount"`
	AmountDisplay string     `json:"amountDisplay"`
	BankName      string     `json:"bankName"`
	AccountNumber string     `json:"accountNumber"`
	AccountName   string     `json:"accountName"`
	ExpiresAt     *time.Time `json:"expiresAt,omitempty"`
}

// NewCheckoutResponse builds the response from a checkout result
func NewCheckoutResponse(result *usecase.CheckoutResult) CheckoutResponse {
	amount := result.Transaction.Amount
	if result.Account.Amount > 0 {
		amount = result.Account.Amount
	}
	return CheckoutResponse{
		Reference:     result.Transaction.Reference,
		Amount:        amount,
		AmountDisplay: entity.FormatNaira(amount),
		BankName:      result.Account.BankName,
		AccountNumber: result.Account.AccountNumber,
		AccountName:   result.Account.AccountName,
		ExpiresAt:     result.Account.ExpiresAt,
	}
}

// TransactionStatusResponse is the polling answer for one reference
type TransactionStatusResponse struct {
	Reference      string `json:"reference"`
	Status         string `json:"status"`
	DeliveryStatus string `json:"deliveryStatus"`
	Message        string `json:"message"`
}

// NewTransactionStatusResponse builds the customer-facing status
func NewTransactionStatusResponse(tx *entity.Transaction) TransactionStatusResponse {
	return TransactionStatusResponse{
		Reference:      tx.Reference,
		Status:         string(tx.Status),
		DeliveryStatus: string(tx.DeliveryState()),
		Message:        tx.CustomerMessage(),
	}
}

// TransactionResponse represents a transaction in listings
type TransactionResponse struct {
	ID               uint64     `json:"id"`
	Reference        string     `json:"reference"`
	Type             string     `json:"type"`
	Status           string     `json:"status"`
	Amount           int64      `json:"amount"`
	AmountDisplay    string     `json:"amountDisplay"`
	CustomerName     string     `json:"customerName,omitempty"`
	CustomerPhone    string     `json:"customerPhone"`
	NetworkID        int        `json:"networkId,omitempty"`
	PlanReference    string     `json:"planReference,omitempty"`
	AgentID          *uint64    `json:"agentId,omitempty"`
	Description      string     `json:"description,omitempty"`
	DeliveryStatus   string     `json:"deliveryStatus"`
	DeliveryAttempts int        `json:"deliveryAttempts"`
	Message          string     `json:"message"`
	PaidAt           *time.Time `json:"paidAt,omitempty"`
	DeliveredAt      *time.Time `json:"deliveredAt,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
}

// NewTransactionResponse maps a domain transaction for the API
func NewTransactionResponse(tx *entity.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:               tx.ID,
		Reference:        tx.Reference,
		Type:             string(tx.Type),
		Status:           string(tx.Status),
		Amount:           tx.Amount,
		AmountDisplay:    entity.FormatNaira(tx.Amount),
		CustomerName:     tx.Customer.Name,
		CustomerPhone:    tx.Customer.Phone,
		NetworkID:        tx.NetworkID,
		PlanReference:    tx.PlanReference,
		AgentID:          tx.AgentID,
		Description:      tx.Description,
		DeliveryStatus:   string(tx.DeliveryState()),
		DeliveryAttempts: tx.DeliveryAttempts,
		Message:          tx.CustomerMessage(),
		PaidAt:           tx.PaidAt,
		DeliveredAt:      tx.DeliveredAt,
		CreatedAt:        tx.CreatedAt,
	}
}

// NewTransactionResponses maps a listing
func NewTransactionResponses(txs []*entity.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(txs))
	for _, tx := range txs {
		out = append(out, NewTransactionResponse(tx))
	}
	return out
}
