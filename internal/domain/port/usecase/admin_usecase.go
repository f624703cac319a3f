package usecase

import (
	"context"
	"time"

	"github.com/saukimart/sauki-backend/internal/domain/entity"
	"github.com/saukimart/sauki-backend/internal/domain/port/persistence"
)

// Session is an issued admin bearer token
type Session struct {
	Token     string
	ExpiresAt time.Time
}

// DashboardStats is the admin overview
type DashboardStats struct {
	persistence.TransactionStats
	PendingAgents int64
	Recent        []*entity.Transaction
}

// AdminUseCase authenticates administrators and serves reporting
type AdminUseCase interface {
	Login(ctx context.Context, email, password string) (*Session, error)
	// Authenticate returns the admin email behind a live token
	Authenticate(ctx context.Context, token string) (string, error)
	Logout(ctx context.Context, token string) error
	Stats(ctx context.Context) (*DashboardStats, error)
	ListTransactions(ctx context.Context, filter persistence.TransactionFilter) ([]*entity.Transaction, error)
}
