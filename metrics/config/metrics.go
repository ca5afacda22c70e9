package config

import (
	"github.com/adverxo/prebid-bidder/config"
	"github.com/adverxo/prebid-bidder/metrics"
	prometheusmetrics "github.com/adverxo/prebid-bidder/metrics/prometheus"
)

// DetailedMetricsEngine is a MetricsEngine which also exposes the backend registries,
// so the admin server can publish them.
type DetailedMetricsEngine struct {
	metrics.MetricsEngine
	PrometheusMetrics *prometheusmetrics.Metrics
}

// NewMetricsEngine reads the configuration and returns the appropriate metrics engine
// for this instance.
func NewMetricsEngine(cfg *config.Configuration) *DetailedMetricsEngine {
	returnEngine := DetailedMetricsEngine{}

	if cfg.Metrics.Prometheus.Enabled {
		returnEngine.PrometheusMetrics = prometheusmetrics.NewMetrics(cfg.Metrics.Prometheus)
		returnEngine.MetricsEngine = returnEngine.PrometheusMetrics
		return &returnEngine
	}

	returnEngine.MetricsEngine = &metrics.NilMetricsEngine{}
	return &returnEngine
}
