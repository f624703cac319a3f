package dto

import (
	"time"

	"github.com/saukimart/sauki-backend/internal/domain/entity"
)

// RegisterAgentRequest represents a reseller sign-up
type RegisterAgentRequest struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone" binding:"required"`
	Email string `json:"email" binding:"omitempty,email"`
	Pin   string `json:"pin" binding:"required"`
}

// AgentLoginRequest authenticates an agent by phone and PIN
type AgentLoginRequest struct {
	Phone string `json:"phone" binding:"required"`
	Pin   string `json:"pin" binding:"required"`
}

// CreateAccountRequest asks for the agent's permanent funding account
type CreateAccountRequest struct {
	AgentID uint64 `json:"agentId" binding:"required"`
	Pin     string `json:"pin" binding:"required"`
}

// AgentBuyRequest buys a plan from the agent wallet
type AgentBuyRequest struct {
	AgentID uint64 `json:"agentId" binding:"required"`
	Pin     string `json:"pin" binding:"required"`
	PlanID  uint64 `json:"planId" binding:"required"`
	Phone   string `json:"phone" binding:"required"`
}

// VirtualAccountResponse is the agent's funding account
type VirtualAccountResponse struct {
	BankName      string     `json:"bankName"`
	AccountNumber string     `json:"accountNumber"`
	AccountName   string     `json:"accountName"`
	ExpiresAt     *time.Time `json:"expiresAt,omitempty"`
}

// AgentResponse represents an agent; the PIN hash never leaves the service
type AgentResponse struct {
	ID             uint64                  `json:"id"`
	Name           string                  `json:"name"`
	Phone          string                  `json:"phone"`
	Email          string                  `json:"email,omitempty"`
	Status         string                  `json:"status"`
	Balance        int64                   `json:"balance"`
	BalanceDisplay string                  `json:"balanceDisplay"`
	VirtualAccount *VirtualAccountResponse `json:"virtualAccount,omitempty"`
	CreatedAt      time.Time               `json:"createdAt"`
}

// NewAgentResponse maps an agent for the API
func NewAgentResponse(a *entity.Agent) AgentResponse {
	resp := AgentResponse{
		ID:             a.ID,
		Name:           a.Name,
		Phone:          a.Phone,
		Email:          a.Email,
		Status:         string(a.Status),
		Balance:        a.Balance,
		BalanceDisplay: entity.FormatNaira(a.Balance),
		CreatedAt:      a.CreatedAt,
	}
	if a.VirtualAccount != nil {
		resp.VirtualAccount = &VirtualAccountResponse{
			BankName:      a.VirtualAccount.BankName,
			AccountNumber: a.VirtualAccount.AccountNumber,
			AccountName:   a.VirtualAccount.AccountName,
			ExpiresAt:     a.VirtualAccount.ExpiresAt,
		}
	}
	return resp
}

// NewAgentResponses maps an agent listing
func NewAgentResponses(agents []*entity.Agent) []AgentResponse {
	out := make([]AgentResponse, 0, len(agents))
	for _, a := range agents {
		out = append(out, NewAgentResponse(a))
	}
	return out
}
