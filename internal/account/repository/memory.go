package repository

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/AlibekovAA/account-service/internal/account/domain"
	"github.com/AlibekovAA/account-service/internal/common/clock"
	"github.com/AlibekovAA/account-service/internal/common/crypto"
)

type MemoryDirectory struct {
	mu         sync.RWMutex
	byID       map[domain.ID]domain.Account
	byEmail    map[string]domain.ID
	byUsername map[string]domain.ID
	idGen      crypto.IDGenerator
	clock      clock.Clock
}

func NewMemoryDirectory(idGen crypto.IDGenerator, clk clock.Clock) *MemoryDirectory {
	return &MemoryDirectory{
		byID:       make(map[domain.ID]domain.Account),
		byEmail:    make(map[string]domain.ID),
		byUsername: make(map[string]domain.ID),
		idGen:      idGen,
		clock:      clk,
	}
}

func (d *MemoryDirectory) FindByEmail(ctx context.Context, email string) (domain.Account, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return d.lookup(d.byEmail, strings.ToLower(email))
}

func (d *MemoryDirectory) FindByIdentifier(ctx context.Context, identifier string) (domain.Account, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if account, err := d.lookup(d.byEmail, strings.ToLower(identifier)); err == nil {
		return account, nil
	}
	return d.lookup(d.byUsername, identifier)
}

func (d *MemoryDirectory) FindByID(ctx context.Context, id domain.ID) (domain.Account, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	account, ok := d.byID[id]
	if !ok {
		return domain.Account{}, ErrAccountNotFound
	}
	return account, nil
}

func (d *MemoryDirectory) Create(ctx context.Context, account domain.NewAccount) (domain.Account, error) {
	id, err := d.idGen.NewID()
	if err != nil {
		return domain.Account{}, fmt.Errorf("failed to generate account id: %w", err)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.byEmail[account.Email]; exists {
		return domain.Account{}, &DuplicateAccountError{Field: FieldEmail}
	}
	if _, exists := d.byUsername[account.Username]; exists {
		return domain.Account{}, &DuplicateAccountError{Field: FieldUsername}
	}

	created := domain.Account{
		ID:           domain.ID(id),
		Email:        account.Email,
		Username:     account.Username,
		PasswordHash: account.PasswordHash,
		CreatedAt:    d.clock.Now().UTC(),
	}

	d.byID[created.ID] = created
	d.byEmail[created.Email] = created.ID
	d.byUsername[created.Username] = created.ID

	return created, nil
}

func (d *MemoryDirectory) Delete(ctx context.Context, id domain.ID) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	account, ok := d.byID[id]
	if !ok {
		return ErrAccountNotFound
	}

	delete(d.byID, id)
	delete(d.byEmail, account.Email)
	delete(d.byUsername, account.Username)
	return nil
}

func (d *MemoryDirectory) lookup(index map[string]domain.ID, key string) (domain.Account, error) {
	id, ok := index[key]
	if !ok {
		return domain.Account{}, ErrAccountNotFound
	}
	return d.byID[id], nil
}
