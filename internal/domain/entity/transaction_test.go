package entity

import (
	"encoding/json"
	"testing"
	"time"

	errs "github.com/saukimart/sauki-backend/internal/domain/error"
	coremocks "github.com/saukimart/sauki-backend/mocks/port/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dataPurchase() Purchase {
	return Purchase{NetworkID: NetworkMTN, PlanReference: "1001", Description: "1GB SME"}
}

func TestNewTransaction(t *testing.T) {
	fixedTime := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	clock := coremocks.NewFixedMockClock(t, fixedTime)

	t.Run("Valid data purchase", func(t *testing.T) {
		tx, err := NewTransaction("SAUKI-1", TypeDataPurchase, 50000,
			Customer{Name: " Aisha Bello ", Phone: "08031234567"}, dataPurchase(), clock)

		require.NoError(t, err)
		assert.Equal(t, StatusPending, tx.Status)
		assert.Equal(t, "Aisha Bello", tx.Customer.Name)
		assert.Equal(t, int64(50000), tx.Amount)
		assert.Equal(t, "1001", tx.PlanReference)
		assert.Equal(t, DeliveryNotAttempted, tx.DeliveryState())
		assert.Equal(t, fixedTime, tx.CreatedAt)
		assert.False(t, tx.IsPaid())
	})

	t.Run("Device purchase needs no plan", func(t *testing.T) {
		tx, err := NewTransaction("SAUKI-2", TypeDevice, 4500000,
			Customer{Name: "Musa", Phone: "+2348031234567"}, Purchase{}, clock)

		require.NoError(t, err)
		assert.False(t, tx.NeedsDelivery())
	})

	testCases := []struct {
		name     string
		txType   TransactionType
		amount   int64
		phone    string
		purchase Purchase
		target   error
	}{
		{"Zero amount", TypeDataPurchase, 0, "08031234567", dataPurchase(), errs.ErrInvalidAmount},
		{"Negative amount", TypeDevice, -100, "08031234567", Purchase{}, errs.ErrInvalidAmount},
		{"Missing phone", TypeDataPurchase, 50000, "", dataPurchase(), errs.ErrInvalidPhone},
		{"Malformed phone", TypeDataPurchase, 50000, "12345", dataPurchase(), errs.ErrInvalidPhone},
		{"Unknown type", TransactionType("AIRTIME"), 50000, "08031234567", Purchase{}, errs.ErrValidation},
		{"Data purchase without network", TypeDataPurchase, 50000, "08031234567", Purchase{PlanReference: "1001"}, errs.ErrValidation},
		{"Data purchase without plan", TypeDataPurchase, 50000, "08031234567", Purchase{NetworkID: 1}, errs.ErrValidation},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tx, err := NewTransaction("SAUKI-X", tc.txType, tc.amount,
				Customer{Name: "Test", Phone: tc.phone}, tc.purchase, clock)

			assert.Nil(t, tx)
			assert.ErrorIs(t, err, tc.target)
			assert.True(t, errs.IsValidationError(err))
		})
	}
}

func TestTransaction_Lifecycle(t *testing.T) {
	paidAt := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	clock := coremocks.NewFixedMockClock(t, paidAt)

	tx, err := NewTransaction("SAUKI-1", TypeDataPurchase, 50000,
		Customer{Name: "Aisha", Phone: "08031234567"}, dataPurchase(), clock)
	require.NoError(t, err)

	// Arrange: pending transactions cannot be delivered
	assert.ErrorIs(t, tx.CanRetryDelivery(), errs.ErrPaymentNotConfirmed)
	assert.Equal(t, "payment not yet confirmed", tx.CustomerMessage())

	tx.MarkPaid("FLW-991", paidAt)
	assert.Equal(t, StatusPaid, tx.Status)
	assert.Equal(t, &paidAt, tx.PaidAt)
	assert.NoError(t, tx.CanRetryDelivery())

	tx.ApplyDelivery(Failed{Reason: "timeout"}, json.RawMessage(`{"error":"timeout"}`), clock)
	assert.Equal(t, StatusFailed, tx.Status)
	assert.Equal(t, 1, tx.DeliveryAttempts)
	assert.Equal(t, "delivery failed, contact support", tx.CustomerMessage())
	assert.NoError(t, tx.CanRetryDelivery())

	tx.ApplyDelivery(Delivered{ProviderRef: "AMG-1"}, json.RawMessage(`{"success":true}`), clock)
	assert.Equal(t, StatusDelivered, tx.Status)
	assert.Equal(t, 2, tx.DeliveryAttempts)
	assert.Equal(t, Delivered{ProviderRef: "AMG-1"}, tx.Delivery)
	assert.NotNil(t, tx.DeliveredAt)
	assert.ErrorIs(t, tx.CanRetryDelivery(), errs.ErrAlreadyDelivered)
}

func TestTransaction_CustomerMessage(t *testing.T) {
	now := time.Now()
	testCases := []struct {
		name     string
		tx       Transaction
		expected string
	}{
		{"Paid data", Transaction{Type: TypeDataPurchase, Status: StatusPaid, PaidAt: &now}, "payment confirmed, delivery in progress"},
		{"Paid device", Transaction{Type: TypeDevice, Status: StatusPaid, PaidAt: &now}, "payment confirmed"},
		{"Delivered", Transaction{Type: TypeDataPurchase, Status: StatusDelivered, PaidAt: &now}, "data delivered"},
		{"Failed before payment", Transaction{Type: TypeDataPurchase, Status: StatusFailed}, "payment could not be initialised"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.tx.CustomerMessage())
		})
	}
}

func TestTransaction_CanRetryDeliveryRejectsDevices(t *testing.T) {
	now := time.Now()
	tx := Transaction{Type: TypeDevice, Status: StatusPaid, PaidAt: &now}

	err := tx.CanRetryDelivery()
	assert.ErrorIs(t, err, errs.ErrValidation)
}

func TestIsPaymentSuccessStatus(t *testing.T) {
	for _, status := range []string{"successful", "SUCCEEDED", "Success", " completed "} {
		assert.True(t, IsPaymentSuccessStatus(status), status)
	}
	for _, status := range []string{"failed", "pending", "", "successfully"} {
		assert.False(t, IsPaymentSuccessStatus(status), status)
	}
}
