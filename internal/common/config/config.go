package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/AlibekovAA/account-service/internal/common/constants"
)

var (
	ErrInvalidJWTSecret = errors.New("JWT_SECRET must be at least 32 bytes")
	ErrInvalidTokenTTL  = errors.New("TOKEN_TTL must be positive")
)

// AccountConfig is loaded once at startup and passed by value afterwards.
type AccountConfig struct {
	HTTPPort       string        `env:"PORT"                    envDefault:"10000"`
	DatabaseURL    string        `env:"DATABASE_URL"`
	JWTSecret      string        `env:"JWT_SECRET,required,notEmpty"`
	TokenTTL       time.Duration `env:"TOKEN_TTL"               envDefault:"168h"`
	RequestTimeout time.Duration `env:"ACCOUNT_REQUEST_TIMEOUT" envDefault:"5s"`
	AllowedOrigin  string        `env:"ALLOWED_ORIGIN"          envDefault:"https://europeangoldfishsignuppage.netlify.app"`
	LogDir         string        `env:"LOG_DIR"`
	LogLevel       string        `env:"LOG_LEVEL"               envDefault:"info"`

	TrustProxyHeaders bool `env:"TRUST_PROXY_HEADERS" envDefault:"false"`

	CircuitBreakerThreshold int32         `env:"DB_CIRCUIT_BREAKER_THRESHOLD" envDefault:"50"`
	CircuitBreakerTimeout   time.Duration `env:"DB_CIRCUIT_BREAKER_TIMEOUT"   envDefault:"15s"`
	CircuitBreakerReset     time.Duration `env:"DB_CIRCUIT_BREAKER_RESET"     envDefault:"10s"`
}

func LoadAccountConfig() (AccountConfig, error) {
	return parse(env.Options{})
}

// LoadAccountConfigFrom reads configuration from the given map instead of the
// process environment.
func LoadAccountConfigFrom(environment map[string]string) (AccountConfig, error) {
	return parse(env.Options{Environment: environment})
}

func parse(opts env.Options) (AccountConfig, error) {
	var cfg AccountConfig
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return AccountConfig{}, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return AccountConfig{}, err
	}

	return cfg, nil
}

func (c AccountConfig) Validate() error {
	if err := validateJWTSecret(c.JWTSecret); err != nil {
		return err
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("%w: got %s", ErrInvalidTokenTTL, c.TokenTTL)
	}
	return nil
}

func validateJWTSecret(secret string) error {
	if len(secret) < constants.JWTSecretMinLength {
		return fmt.Errorf("%w: got %d bytes", ErrInvalidJWTSecret, len(secret))
	}
	return nil
}

// MigrateConfig is what the migrate command needs: a database and a logger,
// no signing secret.
type MigrateConfig struct {
	DatabaseURL string `env:"DATABASE_URL,required,notEmpty"`
	LogDir      string `env:"LOG_DIR"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
}

func LoadMigrateConfig() (MigrateConfig, error) {
	return parseMigrate(env.Options{})
}

func LoadMigrateConfigFrom(environment map[string]string) (MigrateConfig, error) {
	return parseMigrate(env.Options{Environment: environment})
}

func parseMigrate(opts env.Options) (MigrateConfig, error) {
	var cfg MigrateConfig
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return MigrateConfig{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
