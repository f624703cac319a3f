package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/saukimart/sauki-backend/internal/domain/entity"
	errs "github.com/saukimart/sauki-backend/internal/domain/error"
	"github.com/saukimart/sauki-backend/internal/domain/port/core"
	portuse "github.com/saukimart/sauki-backend/internal/domain/port/usecase"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// WalletProviderRef marks transactions paid from an agent balance
const WalletProviderRef = "WALLET"

var tracer = otel.Tracer("sauki/agent")

// FundWallet credits a funding event exactly once. The FUND- transaction and the
// credit share one database transaction, so a replay hits the unique reference
// and leaves the balance alone.
func (s *Service) FundWallet(ctx context.Context, req portuse.FundingRequest) (*entity.Transaction, bool, error) {
	ctx, span := tracer.Start(ctx, "Agent.FundWallet", trace.WithAttributes(
		attribute.String("agent_reference", req.AgentReference),
		attribute.String("provider_event_id", req.ProviderEventID),
	))
	defer span.End()

	agentID, ok := entity.ParseAgentWalletReference(req.AgentReference)
	if !ok {
		return nil, false, recordError(span, errs.NewValidationError("reference", "not an agent wallet reference", nil))
	}
	eventID := strings.TrimSpace(req.ProviderEventID)
	if eventID == "" {
		return nil, false, recordError(span, errs.NewValidationError("id", "funding event has no provider id", nil))
	}
	if req.Amount <= 0 {
		return nil, false, recordError(span, errs.NewValidationError("amount", "must be greater than zero", errs.ErrInvalidAmount))
	}

	agent, err := s.agentRepo.GetByID(ctx, agentID)
	if err != nil {
		return nil, false, recordError(span, err)
	}

	reference := entity.FundingReference(eventID)
	tx, err := entity.NewTransaction(
		reference,
		entity.TypeWalletFunding,
		req.Amount,
		entity.Customer{Name: agent.Name, Phone: agent.Phone, Email: agent.Email},
		entity.Purchase{AgentID: &agent.ID, Description: "Wallet funding"},
		s.clock,
	)
	if err != nil {
		return nil, false, recordError(span, err)
	}
	tx.MarkPaid(eventID, s.clock.Now())

	txCtx, err := s.uow.Begin(ctx)
	if err != nil {
		return nil, false, recordError(span, fmt.Errorf("failed to begin funding: %w", err))
	}

	if err := s.uow.GetTransactionRepository(txCtx).Create(txCtx, tx); err != nil {
		s.rollback(txCtx, "fund_wallet")
		if errors.Is(err, errs.ErrDuplicateTransaction) {
			s.logger.Debug("Funding event already credited", map[string]any{
				"reference": reference,
				"agent_id":  agentID,
			})
			existing, getErr := s.txRepo.GetByReference(ctx, reference)
			if getErr != nil {
				return nil, false, recordError(span, getErr)
			}
			return existing, false, nil
		}
		return nil, false, recordError(span, err)
	}

	if err := s.uow.GetAgentRepository(txCtx).Credit(txCtx, agentID, req.Amount); err != nil {
		s.rollback(txCtx, "fund_wallet")
		return nil, false, recordError(span, fmt.Errorf("failed to credit agent %d: %w", agentID, err))
	}

	if err := s.uow.Commit(txCtx); err != nil {
		s.rollback(txCtx, "fund_wallet")
		return nil, false, recordError(span, fmt.Errorf("failed to commit funding: %w", err))
	}

	s.metrics.WalletFunded(req.Amount)
	s.logger.Info("Agent wallet funded", map[string]any{
		"agent_id":  agentID,
		"reference": reference,
		"amount":    req.Amount,
	})
	s.notifier.Notify(ctx, core.EventWalletFunded, tx)
	return tx, true, nil
}

// Purchase buys a catalog plan from the agent's balance. The debit is a single
// conditional update; delivery runs after the debit and the PAID record commit.
func (s *Service) Purchase(ctx context.Context, req portuse.AgentPurchaseRequest) (*entity.Transaction, error) {
	ctx, span := tracer.Start(ctx, "Agent.Purchase", trace.WithAttributes(
		attribute.Int64("agent_id", int64(req.AgentID)),
		attribute.Int64("plan_id", int64(req.PlanID)),
	))
	defer span.End()

	agent, err := s.load(ctx, req.AgentID, req.Pin)
	if err != nil {
		return nil, recordError(span, err)
	}

	plan, err := s.planRepo.GetByID(ctx, req.PlanID)
	if err != nil {
		return nil, recordError(span, err)
	}
	if !plan.Active {
		return nil, recordError(span, errs.NewValidationError("planId", "plan is not available", nil))
	}

	if !agent.CanAfford(plan.Price) {
		return nil, recordError(span, errs.NewInsufficientFundsError(agent.ID, plan.Price, agent.Balance))
	}

	planID := plan.ID
	tx, err := entity.NewTransaction(
		entity.NewReference(entity.PrefixAgentPurchase),
		entity.TypeDataPurchase,
		plan.Price,
		entity.Customer{Name: agent.Name, Phone: strings.TrimSpace(req.Phone), Email: agent.Email},
		entity.Purchase{
			NetworkID:     plan.NetworkID,
			PlanReference: fmt.Sprint(plan.PlanID),
			DataPlanID:    &planID,
			AgentID:       &agent.ID,
			Description:   fmt.Sprintf("%s %s", plan.Network, plan.Name),
		},
		s.clock,
	)
	if err != nil {
		return nil, recordError(span, err)
	}
	tx.MarkPaid(WalletProviderRef, s.clock.Now())

	txCtx, err := s.uow.Begin(ctx)
	if err != nil {
		return nil, recordError(span, fmt.Errorf("failed to begin purchase: %w", err))
	}

	debited, err := s.uow.GetAgentRepository(txCtx).Debit(txCtx, agent.ID, plan.Price)
	if err != nil {
		s.rollback(txCtx, "agent_purchase")
		return nil, recordError(span, fmt.Errorf("failed to debit agent %d: %w", agent.ID, err))
	}
	if !debited {
		s.rollback(txCtx, "agent_purchase")
		// balance changed since it was read
		return nil, recordError(span, errs.NewInsufficientFundsError(agent.ID, plan.Price, agent.Balance))
	}

	if err := s.uow.GetTransactionRepository(txCtx).Create(txCtx, tx); err != nil {
		s.rollback(txCtx, "agent_purchase")
		return nil, recordError(span, err)
	}

	if err := s.uow.Commit(txCtx); err != nil {
		s.rollback(txCtx, "agent_purchase")
		return nil, recordError(span, fmt.Errorf("failed to commit purchase: %w", err))
	}

	s.logger.Info("Agent purchase paid from wallet", map[string]any{
		"agent_id":  agent.ID,
		"reference": tx.Reference,
		"amount":    tx.Amount,
	})
	s.metrics.PaymentConfirmed(string(tx.Type))
	s.notifier.Notify(ctx, core.EventAgentPurchase, tx)

	s.deliverer.Deliver(ctx, tx)
	return tx, nil
}

func recordError(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}
