package telemetry

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Request metrics recorded by the resource client. Exposed over HTTP only
// when watch mode is given a metrics address; one-shot commands just keep
// the counters in-process.

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "forumcli_requests_total",
		Help: "Outgoing API requests by method and HTTP status (status 0 is a transport failure).",
	}, []string{"method", "status"})

	requestSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "forumcli_request_seconds",
		Help:    "Outgoing API request latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method"})
)

// ObserveRequest records one completed request attempt.
func ObserveRequest(method string, status int, elapsed time.Duration) {
	requestsTotal.WithLabelValues(method, strconv.Itoa(status)).Inc()
	requestSeconds.WithLabelValues(method).Observe(elapsed.Seconds())
}

// Handler returns the HTTP handler serving the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
