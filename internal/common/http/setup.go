package http

import (
	"net/http"

	"github.com/AlibekovAA/account-service/internal/common/constants"
	"github.com/AlibekovAA/account-service/internal/common/httpmetrics"
	"github.com/AlibekovAA/account-service/internal/common/logger"
)

func BuildBaseHandler(allowedOrigin string, log *logger.Logger, handler http.Handler) http.Handler {
	metrics := httpmetrics.New()
	cors := CORSMiddleware(allowedOrigin)
	recovery := RecoveryMiddleware(log)
	traceID := TraceIDMiddleware
	maxRequestSize := MaxRequestSizeMiddleware(constants.DefaultMaxRequestSize)
	securityHeaders := SecurityHeadersMiddleware

	return securityHeaders(cors(recovery(traceID(maxRequestSize(metrics.Wrap(handler))))))
}
