package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AlibekovAA/account-service/internal/common/config"
	"github.com/AlibekovAA/account-service/internal/common/db"
	"github.com/AlibekovAA/account-service/internal/common/logger"
)

// NewMigrateCmd creates the migrate subcommand.
func NewMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE:  runMigrate,
	}
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadMigrateConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.New(cfg.LogDir, "account", cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := db.Migrate(cmd.Context(), log, cfg.DatabaseURL); err != nil {
		return err
	}

	cmd.Println("Migrations completed successfully")
	return nil
}
