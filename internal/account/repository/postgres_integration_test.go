//go:build integration

package repository

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/AlibekovAA/account-service/internal/account/domain"
	"github.com/AlibekovAA/account-service/internal/common/crypto"
	"github.com/AlibekovAA/account-service/internal/common/db"
	"github.com/AlibekovAA/account-service/internal/common/logger"
)

func setupPgDirectory(t *testing.T) *PgDirectory {
	t.Helper()
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("accounts_test"),
		postgres.WithUsername("accounts"),
		postgres.WithPassword("accounts"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	log := logger.NewWithWriter(io.Discard, "test", "error")
	require.NoError(t, db.Migrate(ctx, log, connStr))

	pool, err := db.NewPool(ctx, log, connStr)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	breaker := db.NewDBCircuitBreaker(50, 5*time.Second, 10*time.Second, log)
	return NewPgDirectory(pool, breaker, crypto.NewUUIDGenerator())
}

func TestPgDirectory(t *testing.T) {
	dir := setupPgDirectory(t)
	ctx := context.Background()

	created, err := dir.Create(ctx, domain.NewAccount{Email: "a@x.com", Username: "abc", PasswordHash: "hash"})
	require.NoError(t, err)
	assert.False(t, created.CreatedAt.IsZero())

	t.Run("lookups", func(t *testing.T) {
		byEmail, err := dir.FindByEmail(ctx, "A@X.COM")
		require.NoError(t, err)
		assert.Equal(t, created.ID, byEmail.ID)
		assert.Equal(t, "hash", byEmail.PasswordHash)

		for _, identifier := range []string{"a@x.com", "abc"} {
			got, err := dir.FindByIdentifier(ctx, identifier)
			require.NoError(t, err)
			assert.Equal(t, created.ID, got.ID)
		}

		_, err = dir.FindByIdentifier(ctx, "nobody")
		assert.ErrorIs(t, err, ErrAccountNotFound)
	})

	t.Run("duplicates", func(t *testing.T) {
		_, err := dir.Create(ctx, domain.NewAccount{Email: "a@x.com", Username: "zzz", PasswordHash: "h"})
		var dup *DuplicateAccountError
		require.True(t, errors.As(err, &dup))
		assert.Equal(t, FieldEmail, dup.Field)

		_, err = dir.Create(ctx, domain.NewAccount{Email: "z@x.com", Username: "abc", PasswordHash: "h"})
		require.True(t, errors.As(err, &dup))
		assert.Equal(t, FieldUsername, dup.Field)
	})

	t.Run("concurrent create", func(t *testing.T) {
		const workers = 16
		var (
			wg        sync.WaitGroup
			mu        sync.Mutex
			successes int
			conflicts int
		)

		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, err := dir.Create(ctx, domain.NewAccount{
					Email:        "race@x.com",
					Username:     fmt.Sprintf("racer%d", i),
					PasswordHash: "hash",
				})

				mu.Lock()
				defer mu.Unlock()
				var dup *DuplicateAccountError
				if err == nil {
					successes++
				} else if errors.As(err, &dup) && dup.Field == FieldEmail {
					conflicts++
				} else {
					t.Errorf("unexpected error: %v", err)
				}
			}(i)
		}
		wg.Wait()

		assert.Equal(t, 1, successes)
		assert.Equal(t, workers-1, conflicts)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, dir.Delete(ctx, created.ID))

		_, err := dir.FindByID(ctx, created.ID)
		assert.ErrorIs(t, err, ErrAccountNotFound)
		assert.ErrorIs(t, dir.Delete(ctx, created.ID), ErrAccountNotFound)
	})
}
