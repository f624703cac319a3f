package observability

import (
	"time"

	"github.com/saukimart/sauki-backend/internal/domain/port/core"
)

// NoopMetrics discards every measurement
type NoopMetrics struct{}

var _ core.Metrics = NoopMetrics{}

func (NoopMetrics) PaymentConfirmed(string) {}

func (NoopMetrics) DeliveryCompleted(string, time.Duration) {}

func (NoopMetrics) WebhookHandled(string) {}

func (NoopMetrics) WalletFunded(int64) {}

func (NoopMetrics) ObserveHTTP(string, string, int, time.Duration) {}
