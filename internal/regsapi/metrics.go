package regsapi

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// totalRequests tracks every outbound HTTP call, retries included.
	totalRequests = promauto.NewCounter(prometheus.CounterOpts{
		Name: "docketsync_api_requests_total",
		Help: "The total number of API requests sent, including retries.",
	})
	// totalRequestErrors tracks requests that ended in a terminal error.
	totalRequestErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "docketsync_api_request_errors_total",
		Help: "The total number of API requests that failed terminally.",
	})
	// totalRateLimitHits tracks HTTP 429 responses from the upstream.
	totalRateLimitHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "docketsync_api_rate_limit_hits_total",
		Help: "The total number of times the upstream rate limited a request.",
	})
	// totalRetries tracks cooldown retries after 429 or 5xx responses.
	totalRetries = promauto.NewCounter(prometheus.CounterOpts{
		Name: "docketsync_api_retries_total",
		Help: "The total number of retried API requests.",
	})
	// totalDownloads tracks attachment payloads streamed to disk.
	totalDownloads = promauto.NewCounter(prometheus.CounterOpts{
		Name: "docketsync_attachment_downloads_total",
		Help: "The total number of attachment files downloaded.",
	})
)
