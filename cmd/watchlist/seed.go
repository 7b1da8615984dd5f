package main

import (
	"context"
	"fmt"
	"io"

	"github.com/jermspeaks/watchlist/internal/database"
	"github.com/jermspeaks/watchlist/internal/logger"
	"github.com/jermspeaks/watchlist/internal/modules/bookmodule"
	"github.com/jermspeaks/watchlist/internal/modules/catalogmodule"
	"github.com/jermspeaks/watchlist/internal/modules/modulemanager"
	"github.com/jermspeaks/watchlist/internal/modules/placemodule"
	"github.com/jermspeaks/watchlist/internal/seed"
	"github.com/spf13/cobra"
)

var seedForce bool

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert the sample books, places and tags",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDatabase()
		if err != nil {
			return err
		}
		defer database.Close(db)

		if err := loadModules(modulemanager.Registry, db); err != nil {
			return err
		}
		return runSeed(cmd.Context(), cmd.OutOrStdout(), modulemanager.Registry, seedForce)
	},
}

func init() {
	seedCmd.Flags().BoolVar(&seedForce, "force", false, "seed even when items already exist")
}

// runSeed writes the embedded sample catalog through the loaded modules'
// repositories. A disabled place module skips places.
func runSeed(ctx context.Context, out io.Writer, registry *modulemanager.ModuleRegistry, force bool) error {
	doc, err := seed.Default()
	if err != nil {
		return err
	}

	catalog, ok := lookup[*catalogmodule.Module](registry, catalogmodule.ModuleID)
	if !ok {
		return fmt.Errorf("catalog module is not loaded")
	}
	books, ok := lookup[*bookmodule.Module](registry, bookmodule.ModuleID)
	if !ok {
		return fmt.Errorf("book module is not loaded")
	}

	seeder := seed.NewSeeder(books.Repository(), nil, catalog.Tags())
	if places, ok := lookup[*placemodule.Module](registry, placemodule.ModuleID); ok && places.IsInitialized() {
		seeder = seed.NewSeeder(books.Repository(), places.Repository(), catalog.Tags())
	}

	res, err := seeder.Run(ctx, doc, force)
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	logger.Info("Seed complete", []logger.Field{
		logger.Int("books", res.Books),
		logger.Int("places", res.Places),
		logger.Int("tags", res.Tags),
		logger.Bool("forced", force),
	})
	fmt.Fprintf(out, "Seeded %d books, %d places, %d tags\n", res.Books, res.Places, res.Tags)
	return nil
}

// lookup returns the registered module with the given id as a T
func lookup[T modulemanager.Module](registry *modulemanager.ModuleRegistry, id string) (T, bool) {
	var zero T
	m, ok := registry.GetModule(id)
	if !ok {
		return zero, false
	}
	typed, ok := m.(T)
	return typed, ok
}
