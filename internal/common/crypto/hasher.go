package crypto

import (
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/AlibekovAA/account-service/internal/common/constants"
	"github.com/AlibekovAA/account-service/internal/observability/metrics"
)

// ErrCorruptCredential is returned by Verify when the stored hash cannot be parsed.
var ErrCorruptCredential = errors.New("stored credential is corrupt")

type PasswordHasher interface {
	Hash(password string) (string, error)
	// Verify reports whether password matches hash. A mismatch is (false, nil);
	// an error is returned only for a malformed hash.
	Verify(password string, hash string) (bool, error)
}

// BcryptHasher is CPU bound: each call occupies a worker for the whole
// key-stretching phase, so signup/login throughput scales with cores, not I/O.
type BcryptHasher struct {
	cost int
}

func NewBcryptHasher() *BcryptHasher {
	return &BcryptHasher{cost: constants.BcryptCost}
}

func NewBcryptHasherWithCost(cost int) *BcryptHasher {
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	start := time.Now()
	defer func() {
		metrics.PasswordHashDurationSeconds.WithLabelValues("hash").Observe(time.Since(start).Seconds())
	}()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

func (h *BcryptHasher) Verify(password string, hash string) (bool, error) {
	start := time.Now()
	defer func() {
		metrics.PasswordHashDurationSeconds.WithLabelValues("verify").Observe(time.Since(start).Seconds())
	}()

	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("%w: %v", ErrCorruptCredential, err)
	}
}
