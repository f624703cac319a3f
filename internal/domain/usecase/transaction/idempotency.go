package transaction

import (
	"context"
	"fmt"

	"github.com/saukimart/sauki-backend/internal/domain/entity"
	"github.com/saukimart/sauki-backend/internal/domain/port/persistence"
)

// IdempotencyHandler decides whether a payment confirmation still has work to do
type IdempotencyHandler struct {
	transactionRepo persistence.TransactionRepository
}

// NewIdempotencyHandler creates a new IdempotencyHandler
func NewIdempotencyHandler(transactionRepo persistence.TransactionRepository) *IdempotencyHandler {
	return &IdempotencyHandler{
		transactionRepo: transactionRepo,
	}
}

// CheckConfirmation loads the transaction for reference and reports whether it
// is already settled, i.e. anything other than PENDING. A settled transaction
// must be returned as-is without side effects.
func (h *IdempotencyHandler) CheckConfirmation(
	ctx context.Context,
	reference string,
) (*entity.Transaction, bool, error) {
	txn, err := h.transactionRepo.GetByReference(ctx, reference)
	if err != nil {
		return nil, false, fmt.Errorf("failed to load transaction %s: %w", reference, err)
	}

	return txn, txn.Status != entity.StatusPending, nil
}

// Current re-reads the stored state after a lost conditional update
func (h *IdempotencyHandler) Current(ctx context.Context, reference string) (*entity.Transaction, error) {
	txn, err := h.transactionRepo.GetByReference(ctx, reference)
	if err != nil {
		return nil, fmt.Errorf("failed to reload transaction %s: %w", reference, err)
	}
	return txn, nil
}
