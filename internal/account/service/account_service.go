package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/AlibekovAA/account-service/internal/account/domain"
	"github.com/AlibekovAA/account-service/internal/account/repository"
	"github.com/AlibekovAA/account-service/internal/common/constants"
	commoncrypto "github.com/AlibekovAA/account-service/internal/common/crypto"
	commonerrors "github.com/AlibekovAA/account-service/internal/common/errors"
	"github.com/AlibekovAA/account-service/internal/common/jwtverify"
	"github.com/AlibekovAA/account-service/internal/common/logger"
)

// dummyPassword is hashed once and compared against when the login
// identifier matches nobody, so both failure paths pay for one bcrypt run.
const dummyPassword = "account-service-timing-equalizer"

type Service interface {
	Signup(ctx context.Context, input SignupInput) (AuthResult, error)
	Login(ctx context.Context, input LoginInput) (AuthResult, error)
	Profile(ctx context.Context, claims jwtverify.Claims) (domain.PublicView, error)
	Logout(ctx context.Context, claims jwtverify.Claims) error
}

type AccountServiceDeps struct {
	Directory repository.Directory
	Hasher    commoncrypto.PasswordHasher
	Tokens    *TokenIssuer
	Log       *logger.Logger
}

type AccountService struct {
	directory repository.Directory
	hasher    commoncrypto.PasswordHasher
	tokens    *TokenIssuer
	validator *InputValidator
	log       *logger.Logger

	dummyHash string
}

// NewAccountService hashes the dummy credential up front so the first
// unknown-identifier login costs the same as any other.
func NewAccountService(deps AccountServiceDeps) *AccountService {
	s := &AccountService{
		directory: deps.Directory,
		hasher:    deps.Hasher,
		tokens:    deps.Tokens,
		validator: NewInputValidator(),
		log:       deps.Log,
	}

	hash, err := s.hasher.Hash(dummyPassword)
	if err != nil {
		s.log.Errorf("failed to prepare dummy credential: %v", err)
	}
	s.dummyHash = hash

	return s
}

type SignupInput struct {
	Email    string
	Username string
	Password string
}

type LoginInput struct {
	Identifier string
	Password   string
}

type AuthResult struct {
	Account   domain.PublicView
	Token     string
	ExpiresAt time.Time
}

func (s *AccountService) Signup(ctx context.Context, input SignupInput) (AuthResult, error) {
	schema := signupSchema{
		Email:    normalizeEmail(input.Email),
		Username: strings.TrimSpace(input.Username),
		Password: input.Password,
	}

	s.log.WithFields(ctx, logger.Fields{
		"username": schema.Username,
		"action":   "signup_attempt",
	}).Info("signup attempt")

	if err := s.validator.Struct(schema); err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"username": schema.Username,
			"action":   "signup_validation_failed",
		}).Warnf("signup validation failed: %v", err)
		recordSignup("invalid")
		return AuthResult{}, err
	}

	_, err := s.directory.FindByEmail(ctx, schema.Email)
	switch {
	case err == nil:
		s.log.WithFields(ctx, logger.Fields{
			"username": schema.Username,
			"action":   "signup_email_exists",
		}).Warn("signup failed: email already registered")
		recordSignup("conflict")
		return AuthResult{}, conflictError(&repository.DuplicateAccountError{Field: repository.FieldEmail})
	case !errors.Is(err, repository.ErrAccountNotFound):
		s.log.WithFields(ctx, logger.Fields{
			"username": schema.Username,
			"action":   "signup_lookup_failed",
		}).Errorf("signup failed: %v", err)
		recordSignup("error")
		return AuthResult{}, storeError(err)
	}

	hash, err := s.hasher.Hash(schema.Password)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"username": schema.Username,
			"action":   "signup_hash_failed",
		}).Errorf("signup failed: password hash error: %v", err)
		recordSignup("error")
		return AuthResult{}, commonerrors.ErrInternalError.WithCause(err)
	}

	account, err := s.directory.Create(ctx, domain.NewAccount{
		Email:        schema.Email,
		Username:     schema.Username,
		PasswordHash: hash,
	})
	if err != nil {
		var dup *repository.DuplicateAccountError
		if errors.As(err, &dup) {
			s.log.WithFields(ctx, logger.Fields{
				"username": schema.Username,
				"field":    dup.Field,
				"action":   "signup_conflict",
			}).Warn("signup failed: already exists")
			recordSignup("conflict")
			return AuthResult{}, conflictError(dup)
		}
		s.log.WithFields(ctx, logger.Fields{
			"username": schema.Username,
			"action":   "signup_create_failed",
		}).Errorf("signup failed: %v", err)
		recordSignup("error")
		return AuthResult{}, storeError(err)
	}

	result, err := s.issue(ctx, account, "signup")
	if err != nil {
		recordSignup("error")
		return AuthResult{}, err
	}

	s.log.WithFields(ctx, logger.Fields{
		"username": account.Username,
		"user_id":  string(account.ID),
		"action":   "signup_success",
	}).Info("signup success")
	recordSignup("success")

	return result, nil
}

func (s *AccountService) Login(ctx context.Context, input LoginInput) (AuthResult, error) {
	schema := loginSchema{
		Identifier: strings.TrimSpace(input.Identifier),
		Password:   input.Password,
	}

	s.log.WithFields(ctx, logger.Fields{
		"identifier": schema.Identifier,
		"action":     "login_attempt",
	}).Info("login attempt")

	if err := s.validator.Struct(schema); err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"identifier": schema.Identifier,
			"action":     "login_validation_failed",
		}).Warnf("login validation failed: %v", err)
		recordLogin("invalid")
		return AuthResult{}, err
	}

	if len(schema.Password) > constants.PasswordMaxLength {
		s.equalizeTiming(schema.Password)
		s.log.WithFields(ctx, logger.Fields{
			"identifier": schema.Identifier,
			"action":     "login_password_too_long",
		}).Warn("login failed: password exceeds hash input limit")
		recordLogin("invalid_credentials")
		return AuthResult{}, ErrInvalidCredentials
	}

	account, err := s.directory.FindByIdentifier(ctx, schema.Identifier)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			s.equalizeTiming(schema.Password)
			s.log.WithFields(ctx, logger.Fields{
				"identifier": schema.Identifier,
				"action":     "login_user_not_found",
			}).Warn("login failed: not found")
			recordLogin("invalid_credentials")
			return AuthResult{}, ErrInvalidCredentials
		}
		s.log.WithFields(ctx, logger.Fields{
			"identifier": schema.Identifier,
			"action":     "login_fetch_failed",
		}).Errorf("login failed: %v", err)
		recordLogin("error")
		return AuthResult{}, storeError(err)
	}

	ok, err := s.hasher.Verify(schema.Password, account.PasswordHash)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"user_id": string(account.ID),
			"action":  "login_corrupt_credential",
		}).Errorf("login failed: stored credential unreadable: %v", err)
		recordLogin("error")
		return AuthResult{}, ErrCorruptCredential.WithCause(err)
	}
	if !ok {
		s.log.WithFields(ctx, logger.Fields{
			"identifier": schema.Identifier,
			"action":     "login_invalid_password",
		}).Warn("login failed: invalid password")
		recordLogin("invalid_credentials")
		return AuthResult{}, ErrInvalidCredentials
	}

	result, err := s.issue(ctx, account, "login")
	if err != nil {
		recordLogin("error")
		return AuthResult{}, err
	}

	s.log.WithFields(ctx, logger.Fields{
		"username": account.Username,
		"user_id":  string(account.ID),
		"action":   "login_success",
	}).Info("login success")
	recordLogin("success")

	return result, nil
}

// Profile loads the account named by already-verified claims. The account may
// have been deleted after the token was issued.
func (s *AccountService) Profile(ctx context.Context, claims jwtverify.Claims) (domain.PublicView, error) {
	account, err := s.directory.FindByID(ctx, domain.ID(claims.SubjectID))
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			s.log.WithFields(ctx, logger.Fields{
				"user_id": claims.SubjectID,
				"action":  "profile_not_found",
			}).Warn("profile failed: account no longer exists")
			return domain.PublicView{}, ErrAccountNotFound
		}
		s.log.WithFields(ctx, logger.Fields{
			"user_id": claims.SubjectID,
			"action":  "profile_fetch_failed",
		}).Errorf("profile failed: %v", err)
		return domain.PublicView{}, storeError(err)
	}

	s.log.WithFields(ctx, logger.Fields{
		"user_id": claims.SubjectID,
		"action":  "profile_success",
	}).Debug("profile fetched")

	return account.Public(), nil
}

// Logout has no server-side effect: sessions are stateless and the client
// discards its token. Reaching here means the token passed verification.
func (s *AccountService) Logout(ctx context.Context, claims jwtverify.Claims) error {
	s.log.WithFields(ctx, logger.Fields{
		"user_id": claims.SubjectID,
		"action":  "logout_success",
	}).Info("logout success")
	return nil
}

func (s *AccountService) issue(ctx context.Context, account domain.Account, operation string) (AuthResult, error) {
	token, claims, err := s.tokens.Issue(account)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"user_id": string(account.ID),
			"action":  operation + "_token_issue_failed",
		}).Errorf("%s failed: token issue error: %v", operation, err)
		return AuthResult{}, ErrTokenIssue.WithCause(err)
	}

	return AuthResult{
		Account:   account.Public(),
		Token:     token,
		ExpiresAt: claims.ExpiresAt,
	}, nil
}

func (s *AccountService) equalizeTiming(password string) {
	if s.dummyHash != "" {
		_, _ = s.hasher.Verify(password, s.dummyHash)
	}
}
