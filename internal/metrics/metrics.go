package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "admin_http_requests_total",
		Help: "HTTP requests served by the admin console",
	}, []string{"method", "route", "status"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "admin_http_request_duration_seconds",
		Help:    "Latency of admin console requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	BackendCalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "admin_backend_calls_total",
		Help: "Calls to the booking API by operation and outcome",
	}, []string{"op", "outcome"})

	Exports = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "admin_exports_total",
		Help: "Report exports by kind and format",
	}, []string{"kind", "format"})

	APKBytes = promauto.NewCounter(prometheus.CounterOpts{
		Name: "admin_apk_bytes_total",
		Help: "Bytes relayed by the APK download proxy",
	})

	APKProbeUp = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "admin_apk_probe_up",
		Help: "1 when the last APK upstream probe succeeded",
	})

	DownloadWriteErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "admin_download_write_errors_total",
		Help: "Downloads aborted while writing to the client",
	})
)

// Outcome labels a call result.
func Outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
