package transaction

import (
	"context"
	"fmt"

	"github.com/saukimart/sauki-backend/internal/domain/entity"
	errs "github.com/saukimart/sauki-backend/internal/domain/error"
	"github.com/saukimart/sauki-backend/internal/domain/port/core"
	"github.com/saukimart/sauki-backend/internal/domain/port/gateway"
	portuse "github.com/saukimart/sauki-backend/internal/domain/port/usecase"
	"go.opentelemetry.io/otel/attribute"
)

// Checkout opens a PENDING transaction for a catalog item and asks the gateway for a
// one-time account to pay into. If the gateway refuses, the transaction is marked FAILED.
func (m *Manager) Checkout(ctx context.Context, req portuse.CheckoutRequest) (*portuse.CheckoutResult, error) {
	ctx, span := startSpan(ctx, "Manager.Checkout", attribute.String("type", string(req.Type)))
	defer span.End()

	pending, err := m.validator.Resolve(ctx, req)
	if err != nil {
		return nil, spanError(span, err)
	}

	tx, err := m.CreatePending(ctx, pending)
	if err != nil {
		return nil, spanError(span, err)
	}

	account, err := m.payments.CreateVirtualAccount(ctx, gateway.VirtualAccountRequest{
		Reference: tx.Reference,
		Amount:    tx.Amount,
		Name:      tx.Customer.Name,
		Phone:     tx.Customer.Phone,
		Email:     tx.Customer.Email,
		Narration: narration(tx),
	})
	if err != nil {
		m.failPending(ctx, tx, err)
		return nil, spanError(span, err)
	}

	m.logger.Info("Virtual account issued", map[string]any{
		"reference": tx.Reference,
		"bank":      account.BankName,
	})
	return &portuse.CheckoutResult{Transaction: tx, Account: account}, nil
}

// VerifyPayment is the polling fallback for a lost or late webhook. A PENDING
// transaction is checked with the gateway and confirmed through ConfirmPayment,
// so the same amount rule applies. Gateway errors leave the record untouched.
func (m *Manager) VerifyPayment(ctx context.Context, reference string) (*entity.Transaction, error) {
	ctx, span := startSpan(ctx, "Manager.VerifyPayment", attribute.String("reference", reference))
	defer span.End()

	tx, err := m.txRepo.GetByReference(ctx, reference)
	if err != nil {
		return nil, spanError(span, err)
	}
	if tx.Status != entity.StatusPending {
		return tx, nil
	}

	verification, err := m.payments.Verify(ctx, reference)
	if err != nil {
		m.logger.Warn("Payment verification unavailable", map[string]any{
			"reference": reference,
			"error":     err.Error(),
		})
		return tx, nil
	}
	if !verification.Paid {
		return tx, nil
	}

	return m.ConfirmPayment(ctx, reference, verification.AmountObserved, verification.ProviderRef)
}

func (m *Manager) failPending(ctx context.Context, tx *entity.Transaction, cause error) {
	fields := errs.LogFields(cause)
	fields["reference"] = tx.Reference
	m.logger.Warn("Virtual account creation failed", fields)

	// a dropped client must not leave the record PENDING
	ctx = context.WithoutCancel(ctx)
	now := m.clock.Now()
	failed, err := m.txRepo.MarkFailed(ctx, tx.Reference, now)
	if err != nil {
		m.logger.Error("Failed to mark transaction failed", map[string]any{
			"reference": tx.Reference,
			"error":     err.Error(),
		})
		return
	}
	if failed {
		tx.MarkFailed(now)
		m.notifier.Notify(ctx, core.EventTransactionFailed, tx)
	}
}

func narration(tx *entity.Transaction) string {
	kind := "Item"
	if tx.Type == entity.TypeDataPurchase {
		kind = "Data"
	}
	return fmt.Sprintf("Sauki %s %s", kind, tx.Customer.Phone)
}
