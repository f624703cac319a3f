package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/saukimart/sauki-backend/internal/domain/port/core"
)

const namespace = "sauki"

// PrometheusMetrics implements core.Metrics and also records HTTP traffic
type PrometheusMetrics struct {
	paymentsConfirmed *prometheus.CounterVec
	deliveries        *prometheus.CounterVec
	deliveryDuration  *prometheus.HistogramVec
	webhookEvents     *prometheus.CounterVec
	walletFundings    prometheus.Counter
	walletFundedKobo  prometheus.Counter
	httpRequests      *prometheus.CounterVec
	httpDuration      *prometheus.HistogramVec
}

var _ core.Metrics = (*PrometheusMetrics)(nil)

// NewRegistry returns a registry with the Go runtime and process collectors
func NewRegistry() *prometheus.Registry {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return registry
}

// NewPrometheusMetrics creates and registers every sauki_* metric
func NewPrometheusMetrics(registerer prometheus.Registerer) (*PrometheusMetrics, error) {
	m := &PrometheusMetrics{
		paymentsConfirmed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "payments_confirmed_total",
			Help:      "Transactions moved from PENDING to PAID",
		}, []string{"type"}),
		deliveries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "deliveries_total",
			Help:      "Data delivery attempts by outcome",
		}, []string{"outcome"}),
		deliveryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "delivery_duration_seconds",
			Help:      "Time spent waiting on the data provider",
			Buckets:   []float64{0.25, 0.5, 1, 2, 5, 10, 20, 30},
		}, []string{"outcome"}),
		webhookEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "webhook_events_total",
			Help:      "Inbound payment webhooks by outcome",
		}, []string{"outcome"}),
		walletFundings: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "wallet_fundings_total",
			Help:      "Agent wallet fundings credited",
		}),
		walletFundedKobo: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "wallet_funded_kobo_total",
			Help:      "Kobo credited to agent wallets",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	for _, c := range []prometheus.Collector{
		m.paymentsConfirmed,
		m.deliveries,
		m.deliveryDuration,
		m.webhookEvents,
		m.walletFundings,
		m.walletFundedKobo,
		m.httpRequests,
		m.httpDuration,
	} {
		if err := registerer.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *PrometheusMetrics) PaymentConfirmed(txType string) {
	m.paymentsConfirmed.WithLabelValues(txType).Inc()
}

func (m *PrometheusMetrics) DeliveryCompleted(outcome string, elapsed time.Duration) {
	m.deliveries.WithLabelValues(outcome).Inc()
	m.deliveryDuration.WithLabelValues(outcome).Observe(elapsed.Seconds())
}

func (m *PrometheusMetrics) WebhookHandled(outcome string) {
	m.webhookEvents.WithLabelValues(outcome).Inc()
}

func (m *PrometheusMetrics) WalletFunded(amount int64) {
	m.walletFundings.Inc()
	m.walletFundedKobo.Add(float64(amount))
}

// ObserveHTTP records one finished request; route is the matched pattern, not the raw path
func (m *PrometheusMetrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// Handler serves the exposition format for gatherer
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
