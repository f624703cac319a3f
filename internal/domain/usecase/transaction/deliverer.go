package transaction

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/saukimart/sauki-backend/internal/domain/entity"
	errs "github.com/saukimart/sauki-backend/internal/domain/error"
	"github.com/saukimart/sauki-backend/internal/domain/port/core"
	"github.com/saukimart/sauki-backend/internal/domain/port/gateway"
	"github.com/saukimart/sauki-backend/internal/domain/port/persistence"
	"go.opentelemetry.io/otel/attribute"
)

// DeliveryResult reports one fulfilment attempt to the caller
type DeliveryResult struct {
	Success          bool
	ProviderResponse json.RawMessage
}

// Deliverer performs one delivery attempt per call and records the outcome on the transaction.
// It never returns an error: provider and storage failures end up in logs and in the FAILED status.
type Deliverer struct {
	gateway  gateway.DeliveryGateway
	txRepo   persistence.TransactionRepository
	notifier *EventNotifier
	metrics  core.Metrics
	clock    core.Clock
	logger   core.Logger
	timeout  time.Duration
}

// NewDeliverer creates a new Deliverer. timeout bounds each provider call; zero leaves it to the gateway client.
func NewDeliverer(
	deliveryGateway gateway.DeliveryGateway,
	txRepo persistence.TransactionRepository,
	notifier *EventNotifier,
	metrics core.Metrics,
	clock core.Clock,
	logger core.Logger,
	timeout time.Duration,
) *Deliverer {
	return &Deliverer{
		gateway:  deliveryGateway,
		txRepo:   txRepo,
		notifier: notifier,
		metrics:  metrics,
		clock:    clock,
		logger:   logger,
		timeout:  timeout,
	}
}

// IdempotencyKey is sent to the provider so the same attempt is never fulfilled twice
func IdempotencyKey(tx *entity.Transaction, attempt int) string {
	return fmt.Sprintf("SAUKI-DLV-%d-%d", tx.ID, attempt)
}

// Deliver submits tx to the delivery provider and persists the outcome. The
// attempt outlives the caller's cancellation: once the provider may have sent
// data, the outcome has to reach the store.
func (d *Deliverer) Deliver(ctx context.Context, tx *entity.Transaction) DeliveryResult {
	attempt := tx.DeliveryAttempts + 1
	ctx, span := startSpan(context.WithoutCancel(ctx), "Deliverer.Deliver",
		attribute.String("reference", tx.Reference),
		attribute.Int("attempt", attempt),
	)
	defer span.End()

	callCtx := ctx
	if d.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	started := d.clock.Now()
	result := d.gateway.Deliver(callCtx, gateway.DeliveryRequest{
		NetworkID:      tx.NetworkID,
		Phone:          tx.Customer.Phone,
		PlanReference:  tx.PlanReference,
		IdempotencyKey: IdempotencyKey(tx, attempt),
	})
	elapsed := d.clock.Now().Sub(started)

	var outcome entity.DeliveryOutcome
	if result.Success {
		outcome = entity.Delivered{ProviderRef: result.ProviderRef}
	} else {
		reason := result.Reason
		if reason == "" {
			reason = "provider rejected the request"
		}
		outcome = entity.Failed{Reason: reason}
	}
	tx.ApplyDelivery(outcome, result.Response, d.clock)
	d.metrics.DeliveryCompleted(string(outcome.State()), elapsed)

	saved, err := d.txRepo.SaveDelivery(ctx, tx)
	switch {
	case err != nil:
		spanError(span, err)
		d.logger.Error("Failed to record delivery outcome", map[string]any{
			"reference": tx.Reference,
			"outcome":   outcome.State(),
			"attempt":   attempt,
			"error":     err.Error(),
		})
	case !saved:
		d.logger.Warn("Delivery outcome not recorded, transaction already delivered", map[string]any{
			"reference": tx.Reference,
			"attempt":   attempt,
		})
	}

	if result.Success {
		d.logger.Info("Data delivered", map[string]any{
			"reference":    tx.Reference,
			"provider_ref": result.ProviderRef,
			"attempt":      attempt,
			"elapsed_ms":   elapsed.Milliseconds(),
		})
		d.notifier.Notify(ctx, core.EventTransactionDelivered, tx)
	} else {
		failure := &errs.DeliveryError{
			TransactionID: tx.ID,
			Reference:     tx.Reference,
			Attempt:       attempt,
			Reason:        outcome.(entity.Failed).Reason,
		}
		spanError(span, failure)
		d.logger.Warn("Data delivery failed", failure.LogFields())
		d.notifier.Notify(ctx, core.EventTransactionDeliveryFailed, tx)
	}

	return DeliveryResult{Success: result.Success, ProviderResponse: result.Response}
}
