package main

import (
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for the account service CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "account",
		Short:         "User account service: signup, login, profile, logout",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewMigrateCmd())

	return cmd
}
