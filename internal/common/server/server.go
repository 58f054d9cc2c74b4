package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/AlibekovAA/account-service/internal/common/constants"
	"github.com/AlibekovAA/account-service/internal/common/logger"
)

type ShutdownHook func(ctx context.Context) error

// StartWithGracefulShutdown serves until SIGINT/SIGTERM or ctx cancellation,
// then drains connections and runs hooks in order.
func StartWithGracefulShutdown(
	ctx context.Context,
	server *http.Server,
	log *logger.Logger,
	serviceName string,
	hooks ...ShutdownHook,
) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		log.Infof("%s service listening on %s", serviceName, server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("failed to start %s service: %w", serviceName, err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Infof("shutting down %s service...", serviceName)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
	defer shutdownCancel()

	log.Infof("%s service: stopping accepting new connections (drain period: %v)", serviceName, constants.DrainTimeout)
	server.SetKeepAlivesEnabled(false)

	drainCtx, drainCancel := context.WithTimeout(shutdownCtx, constants.DrainTimeout)
	err := server.Shutdown(drainCtx)
	drainCancel()
	if err != nil {
		log.Errorf("%s service forced to shutdown: %v", serviceName, err)
		_ = server.Close()
	} else {
		log.Infof("%s service stopped gracefully", serviceName)
	}

	for i, hook := range hooks {
		if hookErr := hook(shutdownCtx); hookErr != nil {
			log.Errorf("%s service: shutdown hook %d failed: %v", serviceName, i, hookErr)
		}
	}

	return nil
}
