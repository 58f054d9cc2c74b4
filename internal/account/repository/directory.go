package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/AlibekovAA/account-service/internal/account/domain"
)

const (
	FieldEmail    = "email"
	FieldUsername = "username"
)

var ErrAccountNotFound = errors.New("account not found")

// DuplicateAccountError reports which unique field a create collided on.
type DuplicateAccountError struct {
	Field string
}

func (e *DuplicateAccountError) Error() string {
	return fmt.Sprintf("account with this %s already exists", e.Field)
}

// Directory stores accounts and enforces email and username uniqueness.
// Lookups return ErrAccountNotFound when nothing matches.
type Directory interface {
	FindByEmail(ctx context.Context, email string) (domain.Account, error)
	// FindByIdentifier matches identifier against the email or the username.
	FindByIdentifier(ctx context.Context, identifier string) (domain.Account, error)
	FindByID(ctx context.Context, id domain.ID) (domain.Account, error)
	// Create checks both unique fields and inserts atomically, failing with
	// *DuplicateAccountError on collision.
	Create(ctx context.Context, account domain.NewAccount) (domain.Account, error)
	Delete(ctx context.Context, id domain.ID) error
}
