package service

import (
	"net/http"

	commonerrors "github.com/AlibekovAA/account-service/internal/common/errors"
)

var (
	ErrValidation = commonerrors.NewDomainError(
		"VALIDATION_FAILED",
		commonerrors.CategoryValidation,
		http.StatusBadRequest,
		"validation failed",
	)

	ErrEmailTaken = commonerrors.NewDomainError(
		"EMAIL_TAKEN",
		commonerrors.CategoryConflict,
		http.StatusConflict,
		"an account with this email already exists",
	)

	ErrUsernameTaken = commonerrors.NewDomainError(
		"USERNAME_TAKEN",
		commonerrors.CategoryConflict,
		http.StatusConflict,
		"an account with this username already exists",
	)

	// ErrInvalidCredentials is shared by the unknown-identifier and
	// wrong-password paths so login never reveals which one happened.
	ErrInvalidCredentials = commonerrors.NewDomainError(
		"INVALID_CREDENTIALS",
		commonerrors.CategoryUnauthorized,
		http.StatusUnauthorized,
		"invalid credentials",
	)

	ErrAccountNotFound = commonerrors.NewDomainError(
		"ACCOUNT_NOT_FOUND",
		commonerrors.CategoryNotFound,
		http.StatusNotFound,
		"account not found",
	)

	ErrCorruptCredential = commonerrors.NewDomainError(
		"CORRUPT_CREDENTIAL",
		commonerrors.CategoryInternal,
		http.StatusInternalServerError,
		"internal server error",
	)

	ErrDBError = commonerrors.NewDomainError(
		"DB_ERROR",
		commonerrors.CategoryInternal,
		http.StatusInternalServerError,
		"internal server error",
	)

	ErrTokenIssue = commonerrors.NewDomainError(
		"TOKEN_ISSUE_FAILED",
		commonerrors.CategoryInternal,
		http.StatusInternalServerError,
		"internal server error",
	)
)
