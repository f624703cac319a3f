package agent

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/saukimart/sauki-backend/internal/domain/entity"
	errs "github.com/saukimart/sauki-backend/internal/domain/error"
	"github.com/saukimart/sauki-backend/internal/domain/port/gateway"
	portuse "github.com/saukimart/sauki-backend/internal/domain/port/usecase"
	"github.com/saukimart/sauki-backend/internal/domain/usecase/transaction"
	mcore "github.com/saukimart/sauki-backend/mocks/port/core"
	mgw "github.com/saukimart/sauki-backend/mocks/port/gateway"
	mpers "github.com/saukimart/sauki-backend/mocks/port/persistence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var fixedNow = time.Date(2026, 5, 10, 9, 30, 0, 0, time.UTC)

type txCtxKey struct{}

func TestMain(m *testing.M) {
	entity.PinHashCost = bcrypt.MinCost
	os.Exit(m.Run())
}

type fixture struct {
	agentRepo *mpers.MockAgentRepository
	txRepo    *mpers.MockTransactionRepository
	planRepo  *mpers.MockPlanRepository
	uow       *mpers.MockUnitOfWork
	uowAgents *mpers.MockAgentRepository
	uowTxs    *mpers.MockTransactionRepository
	payments  *mgw.MockPaymentGateway
	delivery  *mgw.MockDeliveryGateway
	publisher *mcore.MockEventPublisher
	metrics   *mcore.MockMetrics
	txCtx     context.Context
	service   *Service
}

func newFixture(t *testing.T, bvn string) *fixture {
	f := &fixture{
		agentRepo: mpers.NewMockAgentRepository(t),
		txRepo:    mpers.NewMockTransactionRepository(t),
		planRepo:  mpers.NewMockPlanRepository(t),
		uow:       mpers.NewMockUnitOfWork(t),
		uowAgents: mpers.NewMockAgentRepository(t),
		uowTxs:    mpers.NewMockTransactionRepository(t),
		payments:  mgw.NewMockPaymentGateway(t),
		delivery:  mgw.NewMockDeliveryGateway(t),
		publisher: mcore.NewMockEventPublisher(t),
		metrics:   mcore.NewMockMetrics(t).AllowAll(),
		txCtx:     context.WithValue(context.Background(), txCtxKey{}, "tx"),
	}
	clock := mcore.NewFixedMockClock(t, fixedNow)
	logger := mcore.NewMockLogger(t).AllowAll()
	f.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil).Maybe()
	f.uow.On("GetAgentRepository", f.txCtx).Return(f.uowAgents).Maybe()
	f.uow.On("GetTransactionRepository", f.txCtx).Return(f.uowTxs).Maybe()

	notifier := transaction.NewEventNotifier(f.publisher, clock, logger)
	deliverer := transaction.NewDeliverer(f.delivery, f.txRepo, notifier, f.metrics, clock, logger, time.Second)

	f.service = NewService(Dependencies{
		AgentRepo: f.agentRepo,
		TxRepo:    f.txRepo,
		PlanRepo:  f.planRepo,
		UoW:       f.uow,
		Payments:  f.payments,
		Deliverer: deliverer,
		Notifier:  notifier,
		Metrics:   f.metrics,
		Clock:     clock,
		Logger:    logger,
		BVN:       bvn,
	})
	return f
}

func activeAgent(t *testing.T, balance int64) *entity.Agent {
	hash, err := entity.HashPin("1234")
	require.NoError(t, err)
	return &entity.Agent{
		ID:      7,
		Name:    "Kabir Stores",
		Phone:   "08051112222",
		PinHash: hash,
		Status:  entity.AgentActive,
		Balance: balance,
	}
}

func TestService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("Creates a pending agent with a hashed PIN", func(t *testing.T) {
		f := newFixture(t, "")
		f.agentRepo.On("Create", mock.Anything, mock.MatchedBy(func(a *entity.Agent) bool {
			return a.Status == entity.AgentPending && a.PinHash != "1234"
		})).Return(nil).Once()

		agent, err := f.service.Register(ctx, portuse.RegisterAgentRequest{
			Name: "Kabir", Phone: "08051112222", Pin: "1234",
		})

		require.NoError(t, err)
		assert.True(t, agent.VerifyPin("1234"))
	})

	t.Run("Duplicate phone", func(t *testing.T) {
		f := newFixture(t, "")
		f.agentRepo.On("Create", mock.Anything, mock.Anything).Return(errs.ErrDuplicateAgent).Once()

		_, err := f.service.Register(ctx, portuse.RegisterAgentRequest{
			Name: "Kabir", Phone: "08051112222", Pin: "1234",
		})

		assert.ErrorIs(t, err, errs.ErrDuplicateAgent)
	})

	t.Run("Short PIN never reaches the store", func(t *testing.T) {
		f := newFixture(t, "")

		_, err := f.service.Register(ctx, portuse.RegisterAgentRequest{
			Name: "Kabir", Phone: "08051112222", Pin: "12",
		})

		assert.ErrorIs(t, err, errs.ErrInvalidPin)
		f.agentRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestService_Login(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name   string
		setup  func(t *testing.T, f *fixture)
		pin    string
		target error
	}{
		{
			name: "Valid PIN",
			setup: func(t *testing.T, f *fixture) {
				f.agentRepo.On("GetByPhone", mock.Anything, "08051112222").Return(activeAgent(t, 0), nil).Once()
			},
			pin: "1234",
		},
		{
			name: "Unknown phone",
			setup: func(t *testing.T, f *fixture) {
				f.agentRepo.On("GetByPhone", mock.Anything, "08051112222").Return(nil, errs.ErrAgentNotFound).Once()
			},
			pin:    "1234",
			target: errs.ErrInvalidCredentials,
		},
		{
			name: "Wrong PIN",
			setup: func(t *testing.T, f *fixture) {
				f.agentRepo.On("GetByPhone", mock.Anything, "08051112222").Return(activeAgent(t, 0), nil).Once()
			},
			pin:    "9999",
			target: errs.ErrInvalidCredentials,
		},
		{
			name: "Awaiting approval",
			setup: func(t *testing.T, f *fixture) {
				agent := activeAgent(t, 0)
				agent.Status = entity.AgentPending
				f.agentRepo.On("GetByPhone", mock.Anything, "08051112222").Return(agent, nil).Once()
			},
			pin:    "1234",
			target: errs.ErrAgentNotActive,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t, "")
			tc.setup(t, f)

			agent, err := f.service.Login(ctx, "08051112222", tc.pin)

			if tc.target != nil {
				assert.ErrorIs(t, err, tc.target)
				assert.Nil(t, agent)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, uint64(7), agent.ID)
		})
	}

	t.Run("Unknown phone and wrong PIN look the same", func(t *testing.T) {
		assert.True(t, errs.IsAuthError(errs.ErrInvalidCredentials))
	})
}

func TestService_CreateWalletAccount(t *testing.T) {
	ctx := context.Background()

	t.Run("Issues a permanent account bound to the agent reference", func(t *testing.T) {
		f := newFixture(t, "22222222222")
		f.agentRepo.On("GetByID", mock.Anything, uint64(7)).Return(activeAgent(t, 0), nil).Once()
		f.payments.On("CreateVirtualAccount", mock.Anything, mock.MatchedBy(func(r gateway.VirtualAccountRequest) bool {
			return r.Permanent && r.Reference == "AGENT-7"
		})).Return(&gateway.VirtualAccount{
			BankName:      "WEMA BANK",
			AccountNumber: "7820000007",
			AccountName:   "Kabir Stores FLW",
		}, nil).Once()
		f.agentRepo.On("SetVirtualAccount", mock.Anything, uint64(7), entity.VirtualAccount{
			BankName:      "WEMA BANK",
			AccountNumber: "7820000007",
			AccountName:   "Kabir Stores FLW",
		}).Return(nil).Once()

		agent, err := f.service.CreateWalletAccount(ctx, 7, "1234")

		require.NoError(t, err)
		assert.True(t, agent.HasWalletAccount())
		assert.Equal(t, "7820000007", agent.VirtualAccount.AccountNumber)
	})

	t.Run("Existing account is returned as is", func(t *testing.T) {
		f := newFixture(t, "22222222222")
		agent := activeAgent(t, 0)
		agent.VirtualAccount = &entity.VirtualAccount{BankName: "WEMA BANK", AccountNumber: "7820000007"}
		f.agentRepo.On("GetByID", mock.Anything, uint64(7)).Return(agent, nil).Once()

		result, err := f.service.CreateWalletAccount(ctx, 7, "1234")

		require.NoError(t, err)
		assert.Same(t, agent, result)
		f.payments.AssertNotCalled(t, "CreateVirtualAccount", mock.Anything, mock.Anything)
	})

	t.Run("No BVN configured", func(t *testing.T) {
		f := newFixture(t, "")
		f.agentRepo.On("GetByID", mock.Anything, uint64(7)).Return(activeAgent(t, 0), nil).Once()

		_, err := f.service.CreateWalletAccount(ctx, 7, "1234")

		assert.ErrorIs(t, err, errs.ErrInternalServer)
		f.payments.AssertNotCalled(t, "CreateVirtualAccount", mock.Anything, mock.Anything)
	})

	t.Run("Provider rejection", func(t *testing.T) {
		f := newFixture(t, "22222222222")
		f.agentRepo.On("GetByID", mock.Anything, uint64(7)).Return(activeAgent(t, 0), nil).Once()
		f.payments.On("CreateVirtualAccount", mock.Anything, mock.Anything).
			Return(nil, errs.NewProviderError("flutterwave", "create_account", 400, "invalid bvn", nil)).Once()

		_, err := f.service.CreateWalletAccount(ctx, 7, "1234")

		assert.True(t, errs.IsProviderError(err))
		f.agentRepo.AssertNotCalled(t, "SetVirtualAccount", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestService_ApproveReject(t *testing.T) {
	ctx := context.Background()

	t.Run("Approve", func(t *testing.T) {
		f := newFixture(t, "")
		f.agentRepo.On("UpdateStatus", mock.Anything, uint64(7), entity.AgentActive).Return(nil).Once()
		f.agentRepo.On("GetByID", mock.Anything, uint64(7)).Return(activeAgent(t, 0), nil).Once()

		agent, err := f.service.Approve(ctx, 7)

		require.NoError(t, err)
		assert.Equal(t, entity.AgentActive, agent.Status)
	})

	t.Run("Reject unknown agent", func(t *testing.T) {
		f := newFixture(t, "")
		f.agentRepo.On("UpdateStatus", mock.Anything, uint64(8), entity.AgentRejected).Return(errs.ErrAgentNotFound).Once()

		_, err := f.service.Reject(ctx, 8)

		assert.ErrorIs(t, err, errs.ErrAgentNotFound)
	})

	t.Run("List rejects unknown status", func(t *testing.T) {
		f := newFixture(t, "")

		_, err := f.service.List(ctx, "BANNED")

		assert.ErrorIs(t, err, errs.ErrValidation)
	})
}

func TestService_FundWallet(t *testing.T) {
	ctx := context.Background()
	req := portuse.FundingRequest{AgentReference: "AGENT-7", ProviderEventID: "4455001", Amount: 100000}

	t.Run("Replaying the same event credits once", func(t *testing.T) {
		f := newFixture(t, "")
		f.agentRepo.On("GetByID", mock.Anything, uint64(7)).Return(activeAgent(t, 0), nil).Twice()
		f.uow.On("Begin", mock.Anything).Return(f.txCtx, nil).Twice()
		f.uowTxs.On("Create", f.txCtx, mock.MatchedBy(func(tx *entity.Transaction) bool {
			return tx.Reference == "FUND-4455001" && tx.Type == entity.TypeWalletFunding && tx.Status == entity.StatusPaid
		})).Return(nil).Once()
		f.uowAgents.On("Credit", f.txCtx, uint64(7), int64(100000)).Return(nil).Once()
		f.uow.On("Commit", f.txCtx).Return(nil).Once()
		// the replay collides on the unique reference
		f.uowTxs.On("Create", f.txCtx, mock.Anything).Return(errs.ErrDuplicateTransaction).Once()
		f.uow.On("Rollback", f.txCtx).Return(nil).Once()
		stored := &entity.Transaction{Reference: "FUND-4455001", Status: entity.StatusPaid}
		f.txRepo.On("GetByReference", mock.Anything, "FUND-4455001").Return(stored, nil).Once()

		first, credited, err := f.service.FundWallet(ctx, req)
		require.NoError(t, err)
		assert.True(t, credited)
		assert.Equal(t, "FUND-4455001", first.Reference)

		second, credited, err := f.service.FundWallet(ctx, req)
		require.NoError(t, err)
		assert.False(t, credited)
		assert.Same(t, stored, second)

		f.uowAgents.AssertNumberOfCalls(t, "Credit", 1)
		f.metrics.AssertNumberOfCalls(t, "WalletFunded", 1)
	})

	t.Run("Credit failure rolls back", func(t *testing.T) {
		f := newFixture(t, "")
		f.agentRepo.On("GetByID", mock.Anything, uint64(7)).Return(activeAgent(t, 0), nil).Once()
		f.uow.On("Begin", mock.Anything).Return(f.txCtx, nil).Once()
		f.uowTxs.On("Create", f.txCtx, mock.Anything).Return(nil).Once()
		f.uowAgents.On("Credit", f.txCtx, uint64(7), int64(100000)).Return(errs.ErrDatabaseConnection).Once()
		f.uow.On("Rollback", f.txCtx).Return(nil).Once()

		_, credited, err := f.service.FundWallet(ctx, req)

		assert.ErrorIs(t, err, errs.ErrDatabaseConnection)
		assert.False(t, credited)
		f.uow.AssertNotCalled(t, "Commit", mock.Anything)
	})

	testCases := []struct {
		name string
		req  portuse.FundingRequest
	}{
		{"Not an agent reference", portuse.FundingRequest{AgentReference: "SAUKI-1", ProviderEventID: "1", Amount: 100}},
		{"Missing event id", portuse.FundingRequest{AgentReference: "AGENT-7", Amount: 100}},
		{"Zero amount", portuse.FundingRequest{AgentReference: "AGENT-7", ProviderEventID: "1"}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t, "")

			_, credited, err := f.service.FundWallet(ctx, tc.req)

			assert.ErrorIs(t, err, errs.ErrValidation)
			assert.False(t, credited)
			f.uow.AssertNotCalled(t, "Begin", mock.Anything)
		})
	}
}

func walletPlan(price int64) *entity.DataPlan {
	return &entity.DataPlan{
		ID:        4,
		Network:   "MTN",
		NetworkID: entity.NetworkMTN,
		PlanID:    6666,
		Name:      "2GB SME - 30 Days",
		Price:     price,
		Active:    true,
	}
}

func TestService_Purchase(t *testing.T) {
	ctx := context.Background()
	req := portuse.AgentPurchaseRequest{AgentID: 7, Pin: "1234", PlanID: 4, Phone: "08039998888"}

	t.Run("Balance below plan price", func(t *testing.T) {
		// ₦1000 balance, ₦1500 plan
		f := newFixture(t, "")
		agent := activeAgent(t, 100000)
		f.agentRepo.On("GetByID", mock.Anything, uint64(7)).Return(agent, nil).Once()
		f.planRepo.On("GetByID", mock.Anything, uint64(4)).Return(walletPlan(150000), nil).Once()

		tx, err := f.service.Purchase(ctx, req)

		assert.Nil(t, tx)
		require.Error(t, err)
		var insufficient *errs.InsufficientFundsError
		require.True(t, errors.As(err, &insufficient))
		assert.Equal(t, int64(100000), insufficient.Balance)
		assert.Equal(t, int64(150000), insufficient.Amount)
		assert.Equal(t, int64(100000), agent.Balance)
		f.uow.AssertNotCalled(t, "Begin", mock.Anything)
		f.delivery.AssertNotCalled(t, "Deliver", mock.Anything, mock.Anything)
	})

	t.Run("Conditional debit loses to a concurrent spend", func(t *testing.T) {
		f := newFixture(t, "")
		f.agentRepo.On("GetByID", mock.Anything, uint64(7)).Return(activeAgent(t, 200000), nil).Once()
		f.planRepo.On("GetByID", mock.Anything, uint64(4)).Return(walletPlan(150000), nil).Once()
		f.uow.On("Begin", mock.Anything).Return(f.txCtx, nil).Once()
		f.uowAgents.On("Debit", f.txCtx, uint64(7), int64(150000)).Return(false, nil).Once()
		f.uow.On("Rollback", f.txCtx).Return(nil).Once()

		_, err := f.service.Purchase(ctx, req)

		assert.True(t, errs.IsInsufficientFundsError(err))
		f.uowTxs.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		f.delivery.AssertNotCalled(t, "Deliver", mock.Anything, mock.Anything)
	})

	t.Run("Debit, record and deliver", func(t *testing.T) {
		f := newFixture(t, "")
		f.agentRepo.On("GetByID", mock.Anything, uint64(7)).Return(activeAgent(t, 200000), nil).Once()
		f.planRepo.On("GetByID", mock.Anything, uint64(4)).Return(walletPlan(58000), nil).Once()
		f.uow.On("Begin", mock.Anything).Return(f.txCtx, nil).Once()
		f.uowAgents.On("Debit", f.txCtx, uint64(7), int64(58000)).Return(true, nil).Once()
		f.uowTxs.On("Create", f.txCtx, mock.MatchedBy(func(tx *entity.Transaction) bool {
			return tx.Status == entity.StatusPaid && tx.AgentID != nil && *tx.AgentID == 7
		})).Return(nil).Once()
		f.uow.On("Commit", f.txCtx).Return(nil).Once()
		f.delivery.On("Deliver", mock.Anything, mock.MatchedBy(func(r gateway.DeliveryRequest) bool {
			return r.Phone == "08039998888" && r.PlanReference == "6666" && r.NetworkID == entity.NetworkMTN
		})).Return(gateway.DeliveryResult{
			Success:     true,
			ProviderRef: "AMG-1",
			Response:    json.RawMessage(`{"success":true}`),
		}).Once()
		f.txRepo.On("SaveDelivery", mock.Anything, mock.Anything).Return(true, nil).Once()

		tx, err := f.service.Purchase(ctx, req)

		require.NoError(t, err)
		assert.Regexp(t, `^AGT-[0-9A-F]{32}$`, tx.Reference)
		assert.Equal(t, entity.StatusDelivered, tx.Status)
		assert.Equal(t, WalletProviderRef, tx.PaymentProviderRef)
	})

	t.Run("Inactive agent cannot buy", func(t *testing.T) {
		f := newFixture(t, "")
		agent := activeAgent(t, 200000)
		agent.Status = entity.AgentRejected
		f.agentRepo.On("GetByID", mock.Anything, uint64(7)).Return(agent, nil).Once()

		_, err := f.service.Purchase(ctx, req)

		assert.ErrorIs(t, err, errs.ErrAgentNotActive)
		f.planRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})
}
