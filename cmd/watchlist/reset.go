package main

import (
	"fmt"

	"github.com/jermspeaks/watchlist/internal/database"
	"github.com/jermspeaks/watchlist/internal/logger"
	"github.com/jermspeaks/watchlist/internal/modules/modulemanager"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var resetNoSeed bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Drop the catalog tables, migrate them again and reseed",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDatabase()
		if err != nil {
			return err
		}
		defer database.Close(db)

		logger.Warn("Dropping catalog tables", []logger.Field{logger.Bool("reseed", !resetNoSeed)})
		if err := dropCatalog(db); err != nil {
			return err
		}

		if err := loadModules(modulemanager.Registry, db); err != nil {
			return err
		}
		if resetNoSeed {
			fmt.Fprintln(cmd.OutOrStdout(), "Database reset")
			return nil
		}
		return runSeed(cmd.Context(), cmd.OutOrStdout(), modulemanager.Registry, true)
	},
}

func init() {
	resetCmd.Flags().BoolVar(&resetNoSeed, "no-seed", false, "leave the catalog empty after the reset")
}

// catalogTables lists the catalog tables, extension tables first so the
// foreign keys never dangle while dropping
func catalogTables() []interface{} {
	return []interface{}{&database.Book{}, &database.Place{}, &database.Item{}, &database.Tag{}}
}

// dropCatalog removes every catalog table that exists
func dropCatalog(db *gorm.DB) error {
	for _, table := range catalogTables() {
		if !db.Migrator().HasTable(table) {
			continue
		}
		if err := db.Migrator().DropTable(table); err != nil {
			return fmt.Errorf("drop table: %w", err)
		}
	}
	return nil
}
