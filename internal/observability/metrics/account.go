package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	AccountRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "account_requests_total",
			Help: "Total number of account service requests",
		},
		[]string{"method", "path"},
	)

	AccountRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "account_requests_in_flight",
			Help: "Number of account requests currently being processed",
		},
	)

	AccountRequestDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "account_request_duration_seconds",
			Help:    "Duration of account requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	SignupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "account_signups_total",
			Help: "Total number of signup attempts by result",
		},
		[]string{"result"},
	)

	LoginsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "account_logins_total",
			Help: "Total number of login attempts by result",
		},
		[]string{"result"},
	)

	SessionTokensIssued = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "session_tokens_issued_total",
			Help: "Total number of session tokens issued",
		},
	)

	TokenValidationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "session_token_validations_total",
			Help: "Total number of session token validations",
		},
	)

	TokenValidationsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "session_token_validations_failed_total",
			Help: "Total number of failed session token validations by reason",
		},
		[]string{"reason"},
	)

	PasswordHashDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "password_hash_duration_seconds",
			Help:    "CPU time spent hashing or verifying passwords",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2},
		},
		[]string{"operation"},
	)
)
