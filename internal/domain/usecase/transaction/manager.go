package transaction

import (
	"context"
	"errors"
	"fmt"

	"github.com/saukimart/sauki-backend/internal/domain/entity"
	errs "github.com/saukimart/sauki-backend/internal/domain/error"
	"github.com/saukimart/sauki-backend/internal/domain/port/core"
	"github.com/saukimart/sauki-backend/internal/domain/port/gateway"
	"github.com/saukimart/sauki-backend/internal/domain/port/persistence"
	portuse "github.com/saukimart/sauki-backend/internal/domain/port/usecase"
	"go.opentelemetry.io/otel/attribute"
)

const (
	defaultTrackLimit = 10
	maxTrackLimit     = 50
	// CreatePending regenerates the reference this many times on a unique-key collision
	maxReferenceAttempts = 3
)

// Manager owns the transaction lifecycle: PENDING -> PAID -> DELIVERED/FAILED.
// Every status change is a conditional update so duplicate notifications have no side effects.
type Manager struct {
	txRepo      persistence.TransactionRepository
	payments    gateway.PaymentGateway
	deliverer   *Deliverer
	validator   *CheckoutValidator
	idempotency *IdempotencyHandler
	notifier    *EventNotifier
	metrics     core.Metrics
	clock       core.Clock
	logger      core.Logger
	trackLimit  int
}

var _ portuse.TransactionUseCase = (*Manager)(nil)

// NewManager creates a new lifecycle Manager
func NewManager(
	txRepo persistence.TransactionRepository,
	payments gateway.PaymentGateway,
	deliverer *Deliverer,
	validator *CheckoutValidator,
	notifier *EventNotifier,
	metrics core.Metrics,
	clock core.Clock,
	logger core.Logger,
	trackLimit int,
) *Manager {
	if trackLimit <= 0 {
		trackLimit = defaultTrackLimit
	}
	return &Manager{
		txRepo:      txRepo,
		payments:    payments,
		deliverer:   deliverer,
		validator:   validator,
		idempotency: NewIdempotencyHandler(txRepo),
		notifier:    notifier,
		metrics:     metrics,
		clock:       clock,
		logger:      logger,
		trackLimit:  trackLimit,
	}
}

// CreatePending persists a new PENDING transaction under a fresh reference
func (m *Manager) CreatePending(ctx context.Context, req portuse.PendingRequest) (*entity.Transaction, error) {
	ctx, span := startSpan(ctx, "Manager.CreatePending", attribute.String("type", string(req.Type)))
	defer span.End()

	for attempt := 1; ; attempt++ {
		tx, err := entity.NewTransaction(
			entity.NewReference(entity.PrefixCheckout),
			req.Type,
			req.Amount,
			req.Customer,
			req.Purchase,
			m.clock,
		)
		if err != nil {
			return nil, spanError(span, err)
		}

		err = m.txRepo.Create(ctx, tx)
		if err == nil {
			m.logger.Info("Pending transaction created", map[string]any{
				"reference": tx.Reference,
				"type":      tx.Type,
				"amount":    tx.Amount,
			})
			return tx, nil
		}
		if !errors.Is(err, errs.ErrDuplicateTransaction) || attempt >= maxReferenceAttempts {
			return nil, spanError(span, fmt.Errorf("failed to create transaction: %w", err))
		}
		m.logger.Warn("Reference collision, regenerating", map[string]any{"reference": tx.Reference})
	}
}

// ConfirmPayment moves a PENDING transaction to PAID once and delivers data purchases.
// Settled transactions are returned unchanged; underpayments leave the record PENDING.
func (m *Manager) ConfirmPayment(
	ctx context.Context,
	reference string,
	observedAmount int64,
	providerRef string,
) (*entity.Transaction, error) {
	ctx, span := startSpan(ctx, "Manager.ConfirmPayment",
		attribute.String("reference", reference),
		attribute.Int64("observed_amount", observedAmount),
	)
	defer span.End()

	tx, settled, err := m.idempotency.CheckConfirmation(ctx, reference)
	if err != nil {
		return nil, spanError(span, err)
	}
	if settled {
		m.logger.Debug("Payment already confirmed, ignoring duplicate", map[string]any{
			"reference": reference,
			"status":    tx.Status,
		})
		return tx, nil
	}

	if observedAmount < tx.Amount {
		mismatch := errs.NewAmountMismatchError(reference, tx.Amount, observedAmount)
		m.logger.Warn("Payment below amount due", errs.LogFields(mismatch))
		return nil, spanError(span, mismatch)
	}

	paidAt := m.clock.Now()
	won, err := m.txRepo.MarkPaid(ctx, reference, providerRef, paidAt)
	if err != nil {
		return nil, spanError(span, fmt.Errorf("failed to mark transaction paid: %w", err))
	}
	if !won {
		// a concurrent confirmation got there first and owns delivery
		m.logger.Info("Concurrent confirmation detected", map[string]any{"reference": reference})
		return m.idempotency.Current(ctx, reference)
	}

	tx.MarkPaid(providerRef, paidAt)
	m.metrics.PaymentConfirmed(string(tx.Type))
	m.logger.Info("Payment confirmed", map[string]any{
		"reference":    reference,
		"type":         tx.Type,
		"amount":       tx.Amount,
		"observed":     observedAmount,
		"provider_ref": providerRef,
	})
	m.notifier.Notify(ctx, core.EventTransactionPaid, tx)

	if tx.NeedsDelivery() {
		m.deliverer.Deliver(ctx, tx)
	}
	return tx, nil
}

// RetryDelivery re-attempts delivery for a paid data purchase that is not yet DELIVERED
func (m *Manager) RetryDelivery(ctx context.Context, transactionID uint64) (*entity.Transaction, error) {
	ctx, span := startSpan(ctx, "Manager.RetryDelivery", attribute.Int64("transaction_id", int64(transactionID)))
	defer span.End()

	tx, err := m.txRepo.GetByID(ctx, transactionID)
	if err != nil {
		return nil, spanError(span, err)
	}
	if err := tx.CanRetryDelivery(); err != nil {
		return nil, spanError(span, err)
	}

	m.logger.Info("Retrying delivery", map[string]any{
		"reference":        tx.Reference,
		"previous_status":  tx.Status,
		"previous_attempt": tx.DeliveryAttempts,
	})
	m.deliverer.Deliver(ctx, tx)
	return tx, nil
}

// Track returns the latest transactions for a phone number, newest first
func (m *Manager) Track(ctx context.Context, phone string, limit int) ([]*entity.Transaction, error) {
	if err := entity.ValidatePhone(phone); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = m.trackLimit
	}
	if limit > maxTrackLimit {
		limit = maxTrackLimit
	}
	return m.txRepo.ListByPhone(ctx, phone, limit)
}
