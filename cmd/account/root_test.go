package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmd_Subcommands(t *testing.T) {
	cmd := NewRootCmd()

	for _, name := range []string{"serve", "migrate"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, sub.Name())
	}
}

func TestServeCmd_Flags(t *testing.T) {
	cmd := NewServeCmd()

	for _, name := range []string{"memory", "migrate"} {
		flag := cmd.Flags().Lookup(name)
		require.NotNil(t, flag, name)
		assert.Equal(t, "false", flag.DefValue)
	}
}

func TestMigrateCmd_RequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	cmd := NewRootCmd()
	cmd.SetArgs([]string{"migrate"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.ErrorContains(t, err, "DATABASE_URL")
}

func TestServeCmd_RequiresDatabaseURLWithoutMemory(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-key-must-be-at-least-32-bytes-long")
	t.Setenv("DATABASE_URL", "")

	cmd := NewRootCmd()
	cmd.SetArgs([]string{"serve"})

	err := cmd.Execute()
	assert.ErrorIs(t, err, errDatabaseURLRequired)
}

func TestServeCmd_RejectsMissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	cmd := NewRootCmd()
	cmd.SetArgs([]string{"serve", "--memory"})

	err := cmd.Execute()
	assert.ErrorContains(t, err, "failed to load config")
}
