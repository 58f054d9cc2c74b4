package service_test

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/AlibekovAA/account-service/internal/account/domain"
	"github.com/AlibekovAA/account-service/internal/account/repository"
	"github.com/AlibekovAA/account-service/internal/account/service"
	"github.com/AlibekovAA/account-service/internal/common/clock"
	"github.com/AlibekovAA/account-service/internal/common/constants"
	"github.com/AlibekovAA/account-service/internal/common/logger"
)

type mockDirectory struct {
	findByEmailFunc      func(ctx context.Context, email string) (domain.Account, error)
	findByIdentifierFunc func(ctx context.Context, identifier string) (domain.Account, error)
	findByIDFunc         func(ctx context.Context, id domain.ID) (domain.Account, error)
	createFunc           func(ctx context.Context, account domain.NewAccount) (domain.Account, error)
	deleteFunc           func(ctx context.Context, id domain.ID) error
}

func (m *mockDirectory) FindByEmail(ctx context.Context, email string) (domain.Account, error) {
	if m.findByEmailFunc != nil {
		return m.findByEmailFunc(ctx, email)
	}
	return domain.Account{}, repository.ErrAccountNotFound
}

func (m *mockDirectory) FindByIdentifier(ctx context.Context, identifier string) (domain.Account, error) {
	if m.findByIdentifierFunc != nil {
		return m.findByIdentifierFunc(ctx, identifier)
	}
	return domain.Account{}, repository.ErrAccountNotFound
}

func (m *mockDirectory) FindByID(ctx context.Context, id domain.ID) (domain.Account, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return domain.Account{}, repository.ErrAccountNotFound
}

func (m *mockDirectory) Create(ctx context.Context, account domain.NewAccount) (domain.Account, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, account)
	}
	return domain.Account{
		ID:           "user-123",
		Email:        account.Email,
		Username:     account.Username,
		PasswordHash: account.PasswordHash,
		CreatedAt:    time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}, nil
}

func (m *mockDirectory) Delete(ctx context.Context, id domain.ID) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

type mockHasher struct {
	hashFunc    func(password string) (string, error)
	verifyFunc  func(password, hash string) (bool, error)
	hashCalls   int
	verifyCalls int
}

func (m *mockHasher) Hash(password string) (string, error) {
	m.hashCalls++
	if m.hashFunc != nil {
		return m.hashFunc(password)
	}
	return "hashed:" + password, nil
}

func (m *mockHasher) Verify(password, hash string) (bool, error) {
	m.verifyCalls++
	if m.verifyFunc != nil {
		return m.verifyFunc(password, hash)
	}
	return hash == "hashed:"+password, nil
}

func testLogger() *logger.Logger {
	return logger.NewWithWriter(io.Discard, "test", "error")
}

func setupAccountService(t *testing.T) (*service.AccountService, *mockDirectory, *mockHasher, *clock.MockClock) {
	t.Helper()
	dir := &mockDirectory{}
	hasher := &mockHasher{}
	mockClock := clock.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))

	svc := service.NewAccountService(service.AccountServiceDeps{
		Directory: dir,
		Hasher:    hasher,
		Tokens:    service.NewTokenIssuer(constants.TestJWTSecret, constants.TestTokenTTL, mockClock),
		Log:       testLogger(),
	})
	hasher.hashCalls = 0

	return svc, dir, hasher, mockClock
}
