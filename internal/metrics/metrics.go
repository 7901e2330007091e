// Package metrics defines the Prometheus metrics of the order portal: the
// client-side request metrics and the counters the sandbox backend exposes.
// Every metric registers with the default registry on package init.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "order_portal"

// ── Client metrics ────────────────────────────────────────────────────────────

// ClientRequestsTotal counts requests issued by the HTTP client.
// Labels:
//   - method: HTTP method
//   - code:   response status code, or "error" when no response arrived
var ClientRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "client",
		Name:      "requests_total",
		Help:      "Total number of backend requests issued, by method and status code.",
	},
	[]string{"method", "code"},
)

// ClientRequestDuration measures time from send to full response body read.
var ClientRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "client",
		Name:      "request_duration_seconds",
		Help:      "Duration of backend requests including body read.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method"},
)

// LogoutNotifyFailuresTotal counts best-effort logout notifications that
// did not reach the backend.
var LogoutNotifyFailuresTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "session",
		Name:      "logout_notify_failures_total",
		Help:      "Total number of logout notifications that failed.",
	},
)

// SessionTransitionsTotal counts session state transitions.
// Label:
//   - transition: "login", "logout", "token_update"
var SessionTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "session",
		Name:      "transitions_total",
		Help:      "Total number of session state transitions.",
	},
	[]string{"transition"},
)

// ── Sandbox metrics ───────────────────────────────────────────────────────────

// SandboxLoginsTotal counts login attempts against the sandbox backend.
// Label:
//   - result: "ok", "invalid_credentials", "error"
var SandboxLoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "sandbox",
		Name:      "logins_total",
		Help:      "Total number of sandbox login attempts, by result.",
	},
	[]string{"result"},
)

// SandboxTokensRefreshedTotal counts successful refresh-token rotations.
var SandboxTokensRefreshedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "sandbox",
		Name:      "tokens_refreshed_total",
		Help:      "Total number of refresh tokens rotated by the sandbox.",
	},
)

// StatusLabel renders a status code for the "code" label.
func StatusLabel(status int) string {
	if status <= 0 {
		return "error"
	}
	return strconv.Itoa(status)
}
