package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	accounthttp "github.com/AlibekovAA/account-service/internal/account/http"
	"github.com/AlibekovAA/account-service/internal/account/repository"
	"github.com/AlibekovAA/account-service/internal/account/service"
	"github.com/AlibekovAA/account-service/internal/common/clock"
	"github.com/AlibekovAA/account-service/internal/common/config"
	"github.com/AlibekovAA/account-service/internal/common/constants"
	"github.com/AlibekovAA/account-service/internal/common/crypto"
	"github.com/AlibekovAA/account-service/internal/common/db"
	commonhttp "github.com/AlibekovAA/account-service/internal/common/http"
	"github.com/AlibekovAA/account-service/internal/common/logger"
	srv "github.com/AlibekovAA/account-service/internal/common/server"
)

var errDatabaseURLRequired = errors.New("DATABASE_URL is required unless --memory is set")

type serveOptions struct {
	memory  bool
	migrate bool
}

// NewServeCmd creates the serve subcommand.
func NewServeCmd() *cobra.Command {
	opts := &serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP account service",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().BoolVar(&opts.memory, "memory", false, "keep accounts in memory instead of PostgreSQL")
	cmd.Flags().BoolVar(&opts.migrate, "migrate", false, "apply database migrations before serving")

	return cmd
}

func runServe(ctx context.Context, opts *serveOptions) error {
	cfg, err := config.LoadAccountConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.New(cfg.LogDir, "account", cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	realClock := clock.NewRealClock()
	idGenerator := crypto.NewUUIDGenerator()

	var (
		directory repository.Directory
		pool      *pgxpool.Pool
	)

	if opts.memory {
		log.Warn("account service: using in-memory directory, accounts are lost on restart")
		directory = repository.NewMemoryDirectory(idGenerator, realClock)
	} else {
		if cfg.DatabaseURL == "" {
			return errDatabaseURLRequired
		}

		if opts.migrate {
			if err := db.Migrate(ctx, log, cfg.DatabaseURL); err != nil {
				return err
			}
		}

		pool, err = db.NewPool(ctx, log, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		db.StartPoolMetrics(ctx, pool, constants.DBPoolMetricsInterval)

		breaker := db.NewDBCircuitBreaker(cfg.CircuitBreakerThreshold, cfg.CircuitBreakerTimeout, cfg.CircuitBreakerReset, log)
		directory = repository.NewPgDirectory(pool, breaker, idGenerator)
	}

	tokens := service.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL, realClock)
	accounts := service.NewAccountService(service.AccountServiceDeps{
		Directory: directory,
		Hasher:    crypto.NewBcryptHasher(),
		Tokens:    tokens,
		Log:       log,
	})

	mux := http.NewServeMux()
	mux.Handle("/", accounthttp.NewHandler(accounts, tokens, cfg, log))
	mux.Handle("/metrics", promhttp.Handler())

	rateLimiter := commonhttp.NewStrictRateLimiter(cfg.TrustProxyHeaders)
	handler := rateLimiter.Middleware(commonhttp.BuildBaseHandler(cfg.AllowedOrigin, log, mux))

	server := srv.NewServer(srv.DefaultServerConfig(cfg.HTTPPort), handler)

	hooks := []srv.ShutdownHook{
		func(context.Context) error {
			rateLimiter.Stop()
			return nil
		},
	}
	if pool != nil {
		hooks = append(hooks, func(context.Context) error {
			log.Infof("account service: closing database pool")
			pool.Close()
			return nil
		})
	}

	return srv.StartWithGracefulShutdown(ctx, server, log, "account", hooks...)
}
