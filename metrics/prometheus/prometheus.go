package prometheusmetrics

import (
	"time"

	"github.com/adverxo/prebid-bidder/config"
	"github.com/adverxo/prebid-bidder/metrics"
	"github.com/adverxo/prebid-bidder/openrtb_ext"
	"github.com/adverxo/prebid-bidder/usersync"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics defines the Prometheus metrics backing the MetricsEngine implementation.
type Metrics struct {
	Registry *prometheus.Registry

	// General Metrics
	connectionsClosed prometheus.Counter
	connectionsError  *prometheus.CounterVec
	connectionsOpened prometheus.Counter
	requests          *prometheus.CounterVec
	requestsTimer     *prometheus.HistogramVec

	// Adapter Metrics
	adapterBids            *prometheus.CounterVec
	adapterErrors          *prometheus.CounterVec
	adapterInvalidRequests prometheus.Counter
	adapterRequests        prometheus.Counter
	adapterUserSync        *prometheus.CounterVec
}

const (
	adapterErrorLabel    = "adapter_error"
	bidTypeLabel         = "bid_type"
	connectionErrorLabel = "connection_error"
	endpointLabel        = "endpoint"
	requestStatusLabel   = "request_status"
	syncTypeLabel        = "sync_type"
)

const (
	connectionAcceptError = "accept"
	connectionCloseError  = "close"
)

// NewMetrics initializes a new Prometheus metrics instance with preloaded label values.
func NewMetrics(cfg config.PrometheusMetrics) *Metrics {
	standardTimeBuckets := []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1}

	metrics := Metrics{}
	metrics.Registry = prometheus.NewRegistry()

	metrics.connectionsClosed = newCounterWithoutLabels(cfg, metrics.Registry,
		"connections_closed",
		"Count of successful connections closed to the sandbox server.")

	metrics.connectionsError = newCounter(cfg, metrics.Registry,
		"connections_error",
		"Count of errors for connection open and close attempts to the sandbox server labeled by type.",
		[]string{connectionErrorLabel})

	metrics.connectionsOpened = newCounterWithoutLabels(cfg, metrics.Registry,
		"connections_opened",
		"Count of successful connections opened to the sandbox server.")

	metrics.requests = newCounter(cfg, metrics.Registry,
		"requests",
		"Count of total requests to the sandbox server labeled by endpoint and status.",
		[]string{endpointLabel, requestStatusLabel})

	metrics.requestsTimer = newHistogramVec(cfg, metrics.Registry,
		"request_time_seconds",
		"Seconds to serve a sandbox request labeled by endpoint.",
		[]string{endpointLabel},
		standardTimeBuckets)

	metrics.adapterBids = newCounter(cfg, metrics.Registry,
		"adapter_bids",
		"Count of bids interpreted from exchange responses labeled by bid type.",
		[]string{bidTypeLabel})

	metrics.adapterErrors = newCounter(cfg, metrics.Registry,
		"adapter_errors",
		"Count of errors and warnings returned by the adapter labeled by error type.",
		[]string{adapterErrorLabel})

	metrics.adapterInvalidRequests = newCounterWithoutLabels(cfg, metrics.Registry,
		"adapter_invalid_bid_requests",
		"Count of bid requests rejected by the adapter params validator.")

	metrics.adapterRequests = newCounterWithoutLabels(cfg, metrics.Registry,
		"adapter_requests",
		"Count of outbound exchange requests built by the adapter.")

	metrics.adapterUserSync = newCounter(cfg, metrics.Registry,
		"adapter_user_syncs",
		"Count of user sync instructions returned by the adapter labeled by sync type.",
		[]string{syncTypeLabel})

	preloadLabelValues(&metrics)

	return &metrics
}

func newCounter(cfg config.PrometheusMetrics, registry *prometheus.Registry, name, help string, labels []string) *prometheus.CounterVec {
	opts := prometheus.CounterOpts{
		Namespace: cfg.Namespace,
		Subsystem: cfg.Subsystem,
		Name:      name,
		Help:      help,
	}
	counter := prometheus.NewCounterVec(opts, labels)
	registry.MustRegister(counter)
	return counter
}

func newCounterWithoutLabels(cfg config.PrometheusMetrics, registry *prometheus.Registry, name, help string) prometheus.Counter {
	opts := prometheus.CounterOpts{
		Namespace: cfg.Namespace,
		Subsystem: cfg.Subsystem,
		Name:      name,
		Help:      help,
	}
	counter := prometheus.NewCounter(opts)
	registry.MustRegister(counter)
	return counter
}

func newHistogramVec(cfg config.PrometheusMetrics, registry *prometheus.Registry, name, help string, labels []string, buckets []float64) *prometheus.HistogramVec {
	opts := prometheus.HistogramOpts{
		Namespace: cfg.Namespace,
		Subsystem: cfg.Subsystem,
		Name:      name,
		Help:      help,
		Buckets:   buckets,
	}
	histogram := prometheus.NewHistogramVec(opts, labels)
	registry.MustRegister(histogram)
	return histogram
}

func (m *Metrics) RecordConnectionAccept(success bool) {
	if success {
		m.connectionsOpened.Inc()
	} else {
		m.connectionsError.With(prometheus.Labels{
			connectionErrorLabel: connectionAcceptError,
		}).Inc()
	}
}

func (m *Metrics) RecordConnectionClose(success bool) {
	if success {
		m.connectionsClosed.Inc()
	} else {
		m.connectionsError.With(prometheus.Labels{
			connectionErrorLabel: connectionCloseError,
		}).Inc()
	}
}

func (m *Metrics) RecordRequest(labels metrics.Labels) {
	m.requests.With(prometheus.Labels{
		endpointLabel:      string(labels.Endpoint),
		requestStatusLabel: string(labels.RequestStatus),
	}).Inc()
}

func (m *Metrics) RecordRequestTime(labels metrics.Labels, length time.Duration) {
	m.requestsTimer.With(prometheus.Labels{
		endpointLabel: string(labels.Endpoint),
	}).Observe(length.Seconds())
}

func (m *Metrics) RecordInvalidBidRequests(count int) {
	if count > 0 {
		m.adapterInvalidRequests.Add(float64(count))
	}
}

func (m *Metrics) RecordOutboundRequests(count int) {
	if count > 0 {
		m.adapterRequests.Add(float64(count))
	}
}

func (m *Metrics) RecordBid(bidType openrtb_ext.BidType) {
	m.adapterBids.With(prometheus.Labels{
		bidTypeLabel: string(bidType),
	}).Inc()
}

func (m *Metrics) RecordAdapterError(adapterError metrics.AdapterError) {
	m.adapterErrors.With(prometheus.Labels{
		adapterErrorLabel: string(adapterError),
	}).Inc()
}

func (m *Metrics) RecordUserSync(syncType usersync.SyncType) {
	m.adapterUserSync.With(prometheus.Labels{
		syncTypeLabel: string(syncType),
	}).Inc()
}
