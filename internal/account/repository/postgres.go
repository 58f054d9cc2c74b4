package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgerrcode"
	pgx "github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/AlibekovAA/account-service/internal/account/domain"
	"github.com/AlibekovAA/account-service/internal/common/crypto"
	"github.com/AlibekovAA/account-service/internal/common/db"
)

const selectAccount = `SELECT id, email, username, password_hash, created_at FROM accounts`

var constraintFields = map[string]string{
	"accounts_email_key":    FieldEmail,
	"accounts_username_key": FieldUsername,
}

type PgDirectory struct {
	pool    *pgxpool.Pool
	tx      *db.TxManager
	breaker *db.DBCircuitBreaker
	idGen   crypto.IDGenerator
}

func NewPgDirectory(pool *pgxpool.Pool, breaker *db.DBCircuitBreaker, idGen crypto.IDGenerator) *PgDirectory {
	return &PgDirectory{
		pool:    pool,
		tx:      db.NewTxManager(pool),
		breaker: breaker,
		idGen:   idGen,
	}
}

func (r *PgDirectory) FindByEmail(ctx context.Context, email string) (domain.Account, error) {
	return r.findOne(ctx, "find account by email", selectAccount+` WHERE email = lower($1)`, email)
}

func (r *PgDirectory) FindByIdentifier(ctx context.Context, identifier string) (domain.Account, error) {
	return r.findOne(ctx, "find account by identifier", selectAccount+` WHERE email = lower($1) OR username = $1 LIMIT 1`, identifier)
}

func (r *PgDirectory) FindByID(ctx context.Context, id domain.ID) (domain.Account, error) {
	return r.findOne(ctx, "find account by id", selectAccount+` WHERE id = $1`, string(id))
}

func (r *PgDirectory) findOne(ctx context.Context, operation, query string, arg string) (domain.Account, error) {
	var account domain.Account

	start := time.Now()
	err := r.breaker.Call(ctx, func(ctx context.Context) error {
		return r.pool.QueryRow(ctx, query, arg).Scan(
			&account.ID,
			&account.Email,
			&account.Username,
			&account.PasswordHash,
			&account.CreatedAt,
		)
	})
	if err := db.HandleQueryError(err, ErrAccountNotFound, operation, start); err != nil {
		return domain.Account{}, err
	}

	return account, nil
}

func (r *PgDirectory) Create(ctx context.Context, account domain.NewAccount) (domain.Account, error) {
	id, err := r.idGen.NewID()
	if err != nil {
		return domain.Account{}, fmt.Errorf("failed to generate account id: %w", err)
	}

	created := domain.Account{
		ID:           domain.ID(id),
		Email:        account.Email,
		Username:     account.Username,
		PasswordHash: account.PasswordHash,
	}

	var duplicateField string
	err = r.breaker.Call(ctx, func(ctx context.Context) error {
		return r.tx.WithTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
			field, err := existingField(ctx, tx, account)
			if err != nil {
				return err
			}
			if field != "" {
				duplicateField = field
				return nil
			}

			start := time.Now()
			err = tx.QueryRow(
				ctx,
				`INSERT INTO accounts (id, email, username, password_hash)
				 VALUES ($1, $2, $3, $4)
				 RETURNING created_at`,
				id,
				account.Email,
				account.Username,
				account.PasswordHash,
			).Scan(&created.CreatedAt)
			if field, ok := uniqueViolationField(err); ok {
				duplicateField = field
			}
			return db.HandleExecError(err, "insert account", start)
		})
	})

	if duplicateField != "" {
		return domain.Account{}, &DuplicateAccountError{Field: duplicateField}
	}
	if err != nil {
		return domain.Account{}, err
	}

	return created, nil
}

// existingField returns the first unique field already taken, email before username.
func existingField(ctx context.Context, tx pgx.Tx, account domain.NewAccount) (string, error) {
	checks := []struct {
		field string
		query string
		arg   string
	}{
		{FieldEmail, `SELECT EXISTS (SELECT 1 FROM accounts WHERE email = $1)`, account.Email},
		{FieldUsername, `SELECT EXISTS (SELECT 1 FROM accounts WHERE username = $1)`, account.Username},
	}

	for _, c := range checks {
		start := time.Now()
		var exists bool
		err := tx.QueryRow(ctx, c.query, c.arg).Scan(&exists)
		if err := db.HandleExecError(err, "check account "+c.field, start); err != nil {
			return "", err
		}
		if exists {
			return c.field, nil
		}
	}

	return "", nil
}

// uniqueViolationField maps a unique violation raised by a concurrent insert
// back to the field whose constraint fired.
func uniqueViolationField(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgerrcode.UniqueViolation {
		return "", false
	}
	if field, ok := constraintFields[pgErr.ConstraintName]; ok {
		return field, true
	}
	return FieldEmail, true
}

func (r *PgDirectory) Delete(ctx context.Context, id domain.ID) error {
	var affected int64

	start := time.Now()
	err := r.breaker.Call(ctx, func(ctx context.Context) error {
		tag, err := r.pool.Exec(ctx, `DELETE FROM accounts WHERE id = $1`, string(id))
		affected = tag.RowsAffected()
		return err
	})
	if err := db.HandleExecError(err, "delete account", start); err != nil {
		return err
	}
	if affected == 0 {
		return ErrAccountNotFound
	}
	return nil
}
