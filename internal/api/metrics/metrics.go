// Package metrics defines and registers all custom Prometheus metrics for the
// voting API. It is the single source of truth for metric names, labels, and
// help strings. Metrics register with the default registry at import time and
// are exposed through the /metrics endpoint.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "voting"

// LoginAttemptsTotal counts password verifications.
// Label:
//   - result: "success" or "failure" (failure covers unknown login and wrong
//     password alike, matching the login endpoint's behaviour)
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, labelled by result.",
	},
	[]string{"result"},
)

// RegistrationsTotal counts member registrations.
// Label:
//   - result: "success" or "failure" (duplicate login, storage error)
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of member registrations, labelled by result.",
	},
	[]string{"result"},
)

// PasswordVerifyDuration measures bcrypt comparison latency. The cost factor
// is tuned for roughly 100ms, so a drifting histogram signals a cost change
// or CPU starvation.
var PasswordVerifyDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "password_verify_duration_seconds",
		Help:      "Duration of bcrypt password verification.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
)

// SessionsIssuedTotal counts sessions created on successful login.
var SessionsIssuedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_issued_total",
		Help:      "Total number of sessions issued.",
	},
)
