package service

import (
	"errors"

	"github.com/AlibekovAA/account-service/internal/account/repository"
	commonerrors "github.com/AlibekovAA/account-service/internal/common/errors"
)

// storeError keeps domain errors raised below the service (an open circuit)
// and hides every other store failure behind DB_ERROR.
func storeError(err error) error {
	if errors.Is(err, commonerrors.ErrCircuitOpen) {
		return err
	}
	return ErrDBError.WithCause(err)
}

func conflictError(err *repository.DuplicateAccountError) error {
	if err.Field == repository.FieldUsername {
		return ErrUsernameTaken.WithDetails(map[string]any{"field": repository.FieldUsername})
	}
	return ErrEmailTaken.WithDetails(map[string]any{"field": repository.FieldEmail})
}
