package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgerrcode"
	"github.com/stretchr/testify/assert"
)

func TestUniqueViolationField(t *testing.T) {
	testCases := []struct {
		name      string
		err       error
		wantField string
		wantOK    bool
	}{
		{"nil", nil, "", false},
		{"plain error", errors.New("boom"), "", false},
		{"other sqlstate", &pgconn.PgError{Code: pgerrcode.NotNullViolation}, "", false},
		{"email constraint", &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "accounts_email_key"}, FieldEmail, true},
		{"username constraint", &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "accounts_username_key"}, FieldUsername, true},
		{"wrapped", fmt.Errorf("insert: %w", &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "accounts_username_key"}), FieldUsername, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			field, ok := uniqueViolationField(tc.err)
			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.wantField, field)
		})
	}
}
