package dto

import (
	"time"

	"github.com/saukimart/sauki-backend/internal/domain/entity"
	"github.com/saukimart/sauki-backend/internal/domain/port/usecase"
)

// AdminLoginRequest represents the admin credentials
type AdminLoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// SessionResponse carries an admin bearer token
type SessionResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// StatsResponse is the admin dashboard
type StatsResponse struct {
	Revenue        int64                 `json:"revenue"`
	RevenueDisplay string                `json:"revenueDisplay"`
	PaidCount      int64                 `json:"paidCount"`
	DeliveredCount int64                 `json:"deliveredCount"`
	FailedCount    int64                 `json:"failedCount"`
	PendingCount   int64                 `json:"pendingCount"`
	PendingAgents  int64                 `json:"pendingAgents"`
	Recent         []TransactionResponse `json:"recent"`
}

// NewStatsResponse maps the dashboard figures
func NewStatsResponse(stats *usecase.DashboardStats) StatsResponse {
	return StatsResponse{
		Revenue:        stats.Revenue,
		RevenueDisplay: entity.FormatNaira(stats.Revenue),
		PaidCount:      stats.PaidCount,
		DeliveredCount: stats.DeliveredCount,
		FailedCount:    stats.FailedCount,
		PendingCount:   stats.PendingCount,
		PendingAgents:  stats.PendingAgents,
		Recent:         NewTransactionResponses(stats.Recent),
	}
}
