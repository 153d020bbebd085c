// Package metrics exposes the Prometheus registry used by the places client.
// Metrics are defined next to the code that records them (client, pagination,
// ratelimit) and registered through promauto; this package only serves them
// and documents the catalogue.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry is the registerer all places metrics are registered with.
var Registry = prometheus.DefaultRegisterer

// Gatherer is the gatherer Handler serves from.
var Gatherer = prometheus.DefaultGatherer

// Handler returns an HTTP handler exposing every registered metric.
func Handler() http.Handler {
	return promhttp.HandlerFor(Gatherer, promhttp.HandlerOpts{})
}

// Metrics Documentation
//
// Request Metrics (pkg/client):
//   - places_requests_total{endpoint, status} (Counter): HTTP requests by endpoint and HTTP status
//   - places_request_duration_seconds{endpoint} (Histogram): request latency
//   - places_errors_total{class} (Counter): failures by class (network, client, server, quota, decode)
//   - places_upstream_status_total{endpoint, status} (Counter): body status codes (OK, ZERO_RESULTS, ...)
//
// Retry Metrics (pkg/client):
//   - places_retries_total{error_class} (Counter): retry attempts
//   - places_retry_backoff_seconds{error_class} (Histogram): backoff applied
//   - places_retry_exhausted_total{error_class} (Counter): operations that ran out of attempts
//
// Pagination Metrics (pkg/pagination):
//   - places_pages_fetched_total{endpoint, outcome} (Counter): pages fetched (ok, error)
//   - places_page_delays_total{endpoint} (Counter): inter-page delays applied
//   - places_execute_pages{endpoint} (Histogram): pages per successful query
//
// Quota Metrics (pkg/ratelimit):
//   - places_quota_exceeded_total (Counter): OVER_QUERY_LIMIT responses seen
//   - places_quota_blocks_total (Counter): requests refused during a cool-down
//   - places_quota_blocked (Gauge): 1 while a cool-down is active
//
// Example Prometheus Queries:
//
//   # Share of queries hitting the page cap
//   sum(rate(places_execute_pages_bucket{le="1"}[5m]))
//
//   # Upstream error status rate
//   sum by (status) (rate(places_upstream_status_total{status!="OK"}[5m]))
//
//   # P95 request latency
//   histogram_quantile(0.95, rate(places_request_duration_seconds_bucket[5m]))
