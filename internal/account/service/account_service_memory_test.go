package service_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/AlibekovAA/account-service/internal/account/repository"
	"github.com/AlibekovAA/account-service/internal/account/service"
	"github.com/AlibekovAA/account-service/internal/common/clock"
	"github.com/AlibekovAA/account-service/internal/common/constants"
	"github.com/AlibekovAA/account-service/internal/common/crypto"
	"github.com/AlibekovAA/account-service/internal/common/jwtverify"
)

func setupMemoryService(t *testing.T) (*service.AccountService, *service.TokenIssuer, *repository.MemoryDirectory, *clock.MockClock) {
	t.Helper()
	mockClock := clock.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	dir := repository.NewMemoryDirectory(crypto.NewUUIDGenerator(), mockClock)
	tokens := service.NewTokenIssuer(constants.TestJWTSecret, constants.TestTokenTTL, mockClock)

	svc := service.NewAccountService(service.AccountServiceDeps{
		Directory: dir,
		Hasher:    crypto.NewBcryptHasherWithCost(bcrypt.MinCost),
		Tokens:    tokens,
		Log:       testLogger(),
	})
	return svc, tokens, dir, mockClock
}

func TestAccountService_EndToEnd(t *testing.T) {
	svc, tokens, dir, mockClock := setupMemoryService(t)
	ctx := context.Background()

	signup, err := svc.Signup(ctx, service.SignupInput{Email: "a@x.com", Username: "abc", Password: "secret1"})
	require.NoError(t, err)

	_, err = svc.Signup(ctx, service.SignupInput{Email: "a@x.com", Username: "other", Password: "secret1"})
	require.ErrorIs(t, err, service.ErrEmailTaken)

	_, err = svc.Signup(ctx, service.SignupInput{Email: "b@x.com", Username: "abc", Password: "secret1"})
	require.ErrorIs(t, err, service.ErrUsernameTaken)

	for _, identifier := range []string{"a@x.com", "A@X.COM", "abc"} {
		login, err := svc.Login(ctx, service.LoginInput{Identifier: identifier, Password: "secret1"})
		require.NoError(t, err, identifier)
		assert.Equal(t, signup.Account.ID, login.Account.ID)
	}

	_, err = svc.Login(ctx, service.LoginInput{Identifier: "abc", Password: "secret2"})
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)

	claims, err := tokens.Verify(signup.Token)
	require.NoError(t, err)

	view, err := svc.Profile(ctx, claims)
	require.NoError(t, err)
	assert.Equal(t, signup.Account, view)

	mockClock.Advance(constants.TestTokenTTL)
	_, err = tokens.Verify(signup.Token)
	assert.Error(t, err)

	require.NoError(t, dir.Delete(ctx, signup.Account.ID))
	_, err = svc.Profile(ctx, jwtverify.Claims{SubjectID: claims.SubjectID})
	assert.ErrorIs(t, err, service.ErrAccountNotFound)
}

func TestAccountService_ConcurrentSignupSameEmail(t *testing.T) {
	svc, _, _, _ := setupMemoryService(t)

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
			_, err := svc.Signup(context.Background(), service.SignupInput{
				Email:    "race@x.com",
				Username: fmt.Sprintf("user%d", i),
				Password: "secret1",
			})

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case errors.Is(err, service.ErrEmailTaken):
				conflicts++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, workers-1, conflicts)
}
