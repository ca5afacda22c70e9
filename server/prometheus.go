package server

import (
	"net/http"

	"github.com/adverxo/prebid-bidder/config"
	metricsconfig "github.com/adverxo/prebid-bidder/metrics/config"
	"github.com/golang/glog"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// withPrometheus mounts the Prometheus registry under /metrics next to the admin handler.
// The admin handler is returned untouched when no Prometheus engine is configured.
func withPrometheus(cfg *config.Configuration, adminHandler http.Handler, metricsEngine *metricsconfig.DetailedMetricsEngine) http.Handler {
	if metricsEngine == nil || metricsEngine.PrometheusMetrics == nil {
		return adminHandler
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(metricsEngine.PrometheusMetrics.Registry, promhttp.HandlerOpts{
		ErrorLog:            loggerForPrometheus{},
		MaxRequestsInFlight: 5,
		Timeout:             cfg.Metrics.Prometheus.Timeout(),
	}))
	if adminHandler != nil {
		mux.Handle("/", adminHandler)
	}
	return mux
}

type loggerForPrometheus struct{}

func (loggerForPrometheus) Println(v ...interface{}) {
	glog.Warningln(v...)
}
