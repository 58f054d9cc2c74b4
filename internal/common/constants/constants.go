package constants

import "time"

const (
	PasswordMaxLength  = 72
	JWTSecretMinLength = 32
	BcryptCost         = 10

	DefaultMaxRequestSize = 1 << 20

	DBPoolMaxOpenConns    = 25
	DBPoolMinOpenConns    = 5
	DBPoolConnMaxLifetime = time.Hour
	DBPoolConnMaxIdleTime = 30 * time.Minute
	DBPoolHealthCheck     = 1 * time.Minute
	DBPoolConnectTimeout  = 5 * time.Second
	DBPoolMaxAttempts     = 10
	DBPoolRetryDelay      = 1 * time.Second
	DBPoolMetricsInterval = 30 * time.Second
	DBQueryTimeout        = 30 * time.Second

	ServerReadHeaderTimeout = 10 * time.Second
	ServerReadTimeout       = 30 * time.Second
	ServerWriteTimeout      = 30 * time.Second
	ServerIdleTimeout       = 120 * time.Second

	ShutdownTimeout = 30 * time.Second
	DrainTimeout    = 10 * time.Second

	DefaultHTTPPort = "10000"

	DefaultCircuitBreakerThreshold = 50
	DefaultCircuitBreakerTimeout   = 15 * time.Second
	DefaultCircuitBreakerReset     = 10 * time.Second

	DefaultRequestTimeout = 5 * time.Second
	DefaultTokenTTL       = 7 * 24 * time.Hour

	RateLimitCleanupInterval = 5 * time.Minute

	RateLimitSignupRequestsPerSecond  = 0.2
	RateLimitSignupBurst              = 5
	RateLimitLoginRequestsPerSecond   = 0.5
	RateLimitLoginBurst               = 10
	RateLimitLogoutRequestsPerSecond  = 1
	RateLimitLogoutBurst              = 10
	RateLimitGeneralRequestsPerSecond = 10
	RateLimitGeneralBurst             = 20

	LoggerMaxSize    = 100
	LoggerMaxBackups = 3
	LoggerMaxAge     = 28

	TestJWTSecret = "test-secret-key-must-be-at-least-32-bytes-long"
	TestTokenTTL  = 1 * time.Hour
)

type TraceIDKeyType string

const TraceIDKey TraceIDKeyType = "trace_id"
