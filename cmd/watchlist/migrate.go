package main

import (
	"fmt"

	"github.com/jermspeaks/watchlist/internal/config"
	"github.com/jermspeaks/watchlist/internal/database"
	"github.com/jermspeaks/watchlist/internal/logger"
	"github.com/jermspeaks/watchlist/internal/modules/modulemanager"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDatabase()
		if err != nil {
			return err
		}
		defer database.Close(db)

		modulemanager.Registry.SetDisabled(config.Get().Modules.Disabled)
		if err := modulemanager.Registry.MigrateAll(db); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		logger.Info("Migrations complete")
		fmt.Fprintln(cmd.OutOrStdout(), "Database schema is up to date")
		return nil
	},
}
