package db

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgerrcode"
	pgx "github.com/jackc/pgx/v4"

	commonerrors "github.com/AlibekovAA/account-service/internal/common/errors"
	"github.com/AlibekovAA/account-service/internal/common/logger"
	"github.com/AlibekovAA/account-service/internal/observability/metrics"
)

const breakerName = "database"

type DBCircuitBreaker struct {
	failures    atomic.Int32
	lastFailure atomic.Int64
	threshold   int32
	timeout     time.Duration
	resetAfter  time.Duration
	now         func() time.Time
	log         *logger.Logger
}

func NewDBCircuitBreaker(threshold int32, timeout, resetAfter time.Duration, log *logger.Logger) *DBCircuitBreaker {
	return &DBCircuitBreaker{
		threshold:  threshold,
		timeout:    timeout,
		resetAfter: resetAfter,
		now:        time.Now,
		log:        log,
	}
}

func (cb *DBCircuitBreaker) isOpen() bool {
	if cb.failures.Load() < cb.threshold {
		metrics.CircuitBreakerState.WithLabelValues(breakerName).Set(0)
		return false
	}

	lastFailure := cb.lastFailure.Load()
	if lastFailure == 0 {
		metrics.CircuitBreakerState.WithLabelValues(breakerName).Set(0)
		return false
	}

	if cb.now().Sub(time.Unix(0, lastFailure)) > cb.resetAfter {
		cb.reset()
		metrics.CircuitBreakerState.WithLabelValues(breakerName).Set(0)
		return false
	}

	metrics.CircuitBreakerState.WithLabelValues(breakerName).Set(1)
	return true
}

func (cb *DBCircuitBreaker) recordFailure(err error) {
	cb.failures.Add(1)
	cb.lastFailure.Store(cb.now().UnixNano())
	metrics.CircuitBreakerFailures.WithLabelValues(breakerName).Inc()
	cb.log.Warnf("database circuit breaker: failure recorded: %v", err)
}

func (cb *DBCircuitBreaker) reset() {
	cb.failures.Store(0)
	cb.lastFailure.Store(0)
}

// Call runs fn with a bounded context. Only infrastructure failures count
// toward opening the circuit; missing rows, constraint violations and
// caller cancellation do not.
func (cb *DBCircuitBreaker) Call(ctx context.Context, fn func(context.Context) error) error {
	if cb.isOpen() {
		cb.log.Warn("database circuit breaker: circuit is open, rejecting request")
		return commonerrors.ErrCircuitOpen
	}

	callCtx, cancel := context.WithTimeout(ctx, cb.timeout)
	defer cancel()

	err := fn(callCtx)
	if err == nil {
		cb.reset()
		return nil
	}

	if countsAsFailure(ctx, err) {
		cb.recordFailure(err)
	}
	return err
}

func countsAsFailure(ctx context.Context, err error) bool {
	if errors.Is(err, pgx.ErrNoRows) {
		return false
	}
	if ctx.Err() != nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgerrcode.IsIntegrityConstraintViolation(pgErr.Code) {
		return false
	}
	return true
}
