package persistence

import (
	"context"
	"time"

	"github.com/saukimart/sauki-backend/internal/domain/entity"
)

// TransactionFilter narrows admin transaction listings
type TransactionFilter struct {
	Status entity.TransactionStatus
	Type   entity.TransactionType
	Limit  int
}

// TransactionStats aggregates the admin dashboard figures
type TransactionStats struct {
	Revenue        int64 // kobo, PAID + DELIVERED purchases, fundings excluded
	PaidCount      int64
	DeliveredCount int64
	FailedCount    int64
	PendingCount   int64
}

// TransactionRepository defines essential methods to interact with transaction data
type TransactionRepository interface {
	// Create saves a new transaction and sets its ID
	//
	// Possible errors:
	// - ErrDuplicateTransaction: If a transaction with the same reference already exists
	// - ErrDatabaseConnection: If database connection fails
	Create(ctx context.Context, transaction *entity.Transaction) error

	// GetByReference retrieves a transaction by its public reference
	//
	// Possible errors:
	// - ErrTransactionNotFound: If no transaction has the reference
	// - ErrDatabaseConnection: If database connection fails
	GetByReference(ctx context.Context, reference string) (*entity.Transaction, error)

	// GetByID retrieves a transaction by its internal ID
	//
	// Possible errors:
	// - ErrTransactionNotFound: If transaction with the given ID doesn't exist
	// - ErrDatabaseConnection: If database connection fails
	GetByID(ctx context.Context, id uint64) (*entity.Transaction, error)

	// MarkPaid atomically moves a transaction from PENDING to PAID.
	// It returns false, without error, when the transaction was no longer PENDING.
	//
	// Possible errors:
	// - ErrDatabaseConnection: If database connection fails
	MarkPaid(ctx context.Context, reference, providerRef string, paidAt time.Time) (bool, error)

	// MarkFailed atomically moves a transaction from PENDING to FAILED.
	// It returns false, without error, when the transaction was no longer PENDING.
	MarkFailed(ctx context.Context, reference string, at time.Time) (bool, error)

	// SaveDelivery persists the delivery outcome, response, attempt count and status.
	// A transaction already DELIVERED is never overwritten; false is returned instead.
	//
	// Possible errors:
	// - ErrDatabaseConnection: If database connection fails
	SaveDelivery(ctx context.Context, transaction *entity.Transaction) (bool, error)

	// ListByPhone returns the newest transactions for a customer phone
	ListByPhone(ctx context.Context, phone string, limit int) ([]*entity.Transaction, error)

	// List returns the newest transactions matching filter
	List(ctx context.Context, filter TransactionFilter) ([]*entity.Transaction, error)

	// Stats aggregates revenue and status counts
	Stats(ctx context.Context) (*TransactionStats, error)
}
