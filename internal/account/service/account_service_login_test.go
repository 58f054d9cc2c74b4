package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/AlibekovAA/account-service/internal/account/domain"
	"github.com/AlibekovAA/account-service/internal/account/service"
	"github.com/AlibekovAA/account-service/internal/common/clock"
	"github.com/AlibekovAA/account-service/internal/common/constants"
	"github.com/AlibekovAA/account-service/internal/common/crypto"
	commonerrors "github.com/AlibekovAA/account-service/internal/common/errors"
)

var storedAccount = domain.Account{
	ID:           "user-123",
	Email:        "a@x.com",
	Username:     "abc",
	PasswordHash: "hashed:secret1",
}

func TestAccountService_Login_Success(t *testing.T) {
	svc, dir, _, _ := setupAccountService(t)

	var lookedUp string
	dir.findByIdentifierFunc = func(ctx context.Context, identifier string) (domain.Account, error) {
		lookedUp = identifier
		return storedAccount, nil
	}

	result, err := svc.Login(context.Background(), service.LoginInput{Identifier: " abc ", Password: "secret1"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if lookedUp != "abc" {
		t.Errorf("expected trimmed identifier, got %q", lookedUp)
	}
	if result.Token == "" {
		t.Error("expected token")
	}
	if result.Account.ID != storedAccount.ID {
		t.Errorf("expected account %s, got %s", storedAccount.ID, result.Account.ID)
	}
}

func TestAccountService_Login_GenericFailures(t *testing.T) {
	svc, dir, hasher, _ := setupAccountService(t)

	dir.findByIdentifierFunc = func(ctx context.Context, identifier string) (domain.Account, error) {
		if identifier == "abc" {
			return storedAccount, nil
		}
		return domain.Account{}, errNotFound()
	}

	_, wrongPassword := svc.Login(context.Background(), service.LoginInput{Identifier: "abc", Password: "wrong-password"})
	verifyCallsAfterWrongPassword := hasher.verifyCalls

	_, unknownUser := svc.Login(context.Background(), service.LoginInput{Identifier: "nobody", Password: "wrong-password"})

	for name, err := range map[string]error{"wrong password": wrongPassword, "unknown user": unknownUser} {
		if !errors.Is(err, service.ErrInvalidCredentials) {
			t.Errorf("%s: expected ErrInvalidCredentials, got %v", name, err)
		}
	}

	a, _ := commonerrors.AsDomainError(wrongPassword)
	b, _ := commonerrors.AsDomainError(unknownUser)
	if a.Code() != b.Code() || a.Message() != b.Message() || a.HTTPStatus() != b.HTTPStatus() {
		t.Errorf("expected indistinguishable errors, got %q/%q and %q/%q", a.Code(), a.Message(), b.Code(), b.Message())
	}

	if hasher.verifyCalls != verifyCallsAfterWrongPassword+1 {
		t.Error("expected unknown identifier to still run one password comparison")
	}
}

func TestAccountService_DummyHashPreparedAtConstruction(t *testing.T) {
	hasher := &mockHasher{}
	dir := &mockDirectory{}

	svc := service.NewAccountService(service.AccountServiceDeps{
		Directory: dir,
		Hasher:    hasher,
		Tokens:    service.NewTokenIssuer(constants.TestJWTSecret, constants.TestTokenTTL, clock.NewRealClock()),
		Log:       testLogger(),
	})
	if hasher.hashCalls != 1 {
		t.Fatalf("expected dummy hash to be computed once at construction, got %d hash calls", hasher.hashCalls)
	}

	for i := 0; i < 3; i++ {
		_, err := svc.Login(context.Background(), service.LoginInput{Identifier: "nobody", Password: "wrong-password"})
		if !errors.Is(err, service.ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	}

	if hasher.hashCalls != 1 {
		t.Errorf("expected no hashing during login, got %d hash calls", hasher.hashCalls)
	}
	if hasher.verifyCalls != 3 {
		t.Errorf("expected one comparison per login, got %d", hasher.verifyCalls)
	}
}

func TestAccountService_Login_Validation(t *testing.T) {
	svc, _, _, _ := setupAccountService(t)

	for _, input := range []service.LoginInput{
		{Identifier: "", Password: "secret1"},
		{Identifier: "   ", Password: "secret1"},
		{Identifier: "abc", Password: ""},
	} {
		if _, err := svc.Login(context.Background(), input); !errors.Is(err, service.ErrValidation) {
			t.Errorf("input %+v: expected ErrValidation, got %v", input, err)
		}
	}
}

func TestAccountService_Login_PasswordOverHashLimit(t *testing.T) {
	svc, dir, _, _ := setupAccountService(t)

	dir.findByIdentifierFunc = func(ctx context.Context, identifier string) (domain.Account, error) {
		t.Fatal("lookup must not run for an over-long password")
		return domain.Account{}, nil
	}

	_, err := svc.Login(context.Background(), service.LoginInput{Identifier: "abc", Password: strings.Repeat("p", 73)})
	if !errors.Is(err, service.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAccountService_Login_CorruptCredential(t *testing.T) {
	svc, dir, hasher, _ := setupAccountService(t)

	dir.findByIdentifierFunc = func(ctx context.Context, identifier string) (domain.Account, error) {
		return storedAccount, nil
	}
	hasher.verifyFunc = func(password, hash string) (bool, error) {
		return false, crypto.ErrCorruptCredential
	}

	_, err := svc.Login(context.Background(), service.LoginInput{Identifier: "abc", Password: "secret1"})

	if !errors.Is(err, service.ErrCorruptCredential) {
		t.Fatalf("expected ErrCorruptCredential, got %v", err)
	}
	domainErr, _ := commonerrors.AsDomainError(err)
	if domainErr.HTTPStatus() != 500 {
		t.Errorf("expected status 500, got %d", domainErr.HTTPStatus())
	}
}

func TestAccountService_Login_StoreError(t *testing.T) {
	svc, dir, _, _ := setupAccountService(t)

	dir.findByIdentifierFunc = func(ctx context.Context, identifier string) (domain.Account, error) {
		return domain.Account{}, errors.New("connection refused")
	}

	_, err := svc.Login(context.Background(), service.LoginInput{Identifier: "abc", Password: "secret1"})
	if !errors.Is(err, service.ErrDBError) {
		t.Errorf("expected ErrDBError, got %v", err)
	}
}
