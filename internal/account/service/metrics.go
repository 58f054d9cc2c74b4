package service

import "github.com/AlibekovAA/account-service/internal/observability/metrics"

func recordSignup(result string) {
	metrics.SignupsTotal.WithLabelValues(result).Inc()
}

func recordLogin(result string) {
	metrics.LoginsTotal.WithLabelValues(result).Inc()
}

func incrementSessionTokensIssued() {
	metrics.SessionTokensIssued.Inc()
}
