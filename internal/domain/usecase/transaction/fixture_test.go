package transaction

import (
	"testing"
	"time"

	"github.com/saukimart/sauki-backend/internal/domain/entity"
	mcore "github.com/saukimart/sauki-backend/mocks/port/core"
	mgw "github.com/saukimart/sauki-backend/mocks/port/gateway"
	mpers "github.com/saukimart/sauki-backend/mocks/port/persistence"
	"github.com/stretchr/testify/mock"
)

var fixedNow = time.Date(2026, 5, 10, 14, 0, 0, 0, time.UTC)

type fixture struct {
	txRepo      *mpers.MockTransactionRepository
	planRepo    *mpers.MockPlanRepository
	productRepo *mpers.MockProductRepository
	payments    *mgw.MockPaymentGateway
	delivery    *mgw.MockDeliveryGateway
	publisher   *mcore.MockEventPublisher
	metrics     *mcore.MockMetrics
	clock       *mcore.MockClock
	deliverer   *Deliverer
	manager     *Manager
}

func newFixture(t *testing.T) *fixture {
	f := &fixture{
		txRepo:      mpers.NewMockTransactionRepository(t),
		planRepo:    mpers.NewMockPlanRepository(t),
		productRepo: mpers.NewMockProductRepository(t),
		payments:    mgw.NewMockPaymentGateway(t),
		delivery:    mgw.NewMockDeliveryGateway(t),
		publisher:   mcore.NewMockEventPublisher(t),
		metrics:     mcore.NewMockMetrics(t).AllowAll(),
		clock:       mcore.NewFixedMockClock(t, fixedNow),
	}
	logger := mcore.NewMockLogger(t).AllowAll()
	f.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil).Maybe()

	notifier := NewEventNotifier(f.publisher, f.clock, logger)
	f.deliverer = NewDeliverer(f.delivery, f.txRepo, notifier, f.metrics, f.clock, logger, 5*time.Second)
	f.manager = NewManager(
		f.txRepo,
		f.payments,
		f.deliverer,
		NewCheckoutValidator(f.planRepo, f.productRepo),
		notifier,
		f.metrics,
		f.clock,
		logger,
		10,
	)
	return f
}

func pendingDataTx(id uint64, reference string, amount int64) *entity.Transaction {
	return &entity.Transaction{
		ID:            id,
		Reference:     reference,
		Type:          entity.TypeDataPurchase,
		Status:        entity.StatusPending,
		Amount:        amount,
		Customer:      entity.Customer{Name: "Aisha Bello", Phone: "08031234567"},
		NetworkID:     entity.NetworkMTN,
		PlanReference: "1001",
		Delivery:      entity.NotAttempted{},
		CreatedAt:     fixedNow.Add(-10 * time.Minute),
	}
}

func paidAt() *time.Time {
	at := fixedNow.Add(-time.Minute)
	return &at
}
