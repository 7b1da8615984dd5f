// Package placemodule tracks places on the watchlist
package placemodule

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/jermspeaks/watchlist/internal/base"
	"github.com/jermspeaks/watchlist/internal/config"
	"github.com/jermspeaks/watchlist/internal/database"
	"github.com/jermspeaks/watchlist/internal/logger"
	"github.com/jermspeaks/watchlist/internal/modules/catalogmodule"
	"github.com/jermspeaks/watchlist/internal/modules/catalogmodule/types"
	"github.com/jermspeaks/watchlist/internal/modules/modulemanager"
	"github.com/jermspeaks/watchlist/internal/modules/placemodule/api"
	"github.com/jermspeaks/watchlist/internal/modules/placemodule/core/repository"
	"gorm.io/gorm"
)

// Auto-register the module when imported
func init() {
	Register()
}

const (
	// ModuleID is the unique identifier for the place module
	ModuleID = "catalog.places"

	// ModuleName is the display name for the place module
	ModuleName = "Places"

	// ModuleVersion is the version of the place module
	ModuleVersion = "1.0.0"
)

// Module implements place tracking as a module. It is optional and can be
// disabled without affecting books.
type Module struct {
	*base.BaseModule
	routes *base.BaseRouteRegistrar
	repo   *repository.PlaceRepository
	paging *types.Paging
}

// Register registers the place module with the global module registry
func Register() {
	modulemanager.Register(NewModule(nil, nil))
}

// NewModule creates the module. A nil db or paging is resolved from the
// global database handle and configuration during Init.
func NewModule(db *gorm.DB, paging *types.Paging) *Module {
	m := &Module{
		BaseModule: base.NewBaseModule(ModuleID, ModuleName, ModuleVersion, false),
		paging:     paging,
	}
	m.routes = base.NewBaseRouteRegistrar("/api/places", m.BaseModule)
	m.SetDB(db)
	return m
}

// Dependencies returns module dependencies
func (m *Module) Dependencies() []string {
	return []string{catalogmodule.ModuleID}
}

// Migrate creates the places table and its foreign key to items
func (m *Module) Migrate(db *gorm.DB) error {
	logger.Info("Migrating place database schema")
	if err := db.AutoMigrate(&database.Item{}, &database.Place{}); err != nil {
		return fmt.Errorf("failed to migrate place models: %w", err)
	}
	return nil
}

// Init initializes the place repository
func (m *Module) Init() error {
	if m.GetDB() == nil {
		m.SetDB(database.GetDB())
	}
	if m.GetDB() == nil {
		return fmt.Errorf("place module: database not initialized")
	}

	paging := types.DefaultPaging
	if m.paging != nil {
		paging = *m.paging
	} else if cfg := config.Get(); cfg != nil {
		paging = types.Paging{
			DefaultPageSize: cfg.API.DefaultPageSize,
			MaxPageSize:     cfg.API.MaxPageSize,
		}
	}

	m.repo = repository.NewPlaceRepository(m.GetDB(), repository.WithPaging(paging))
	m.SetInitialized(true)
	return nil
}

// Repository returns the place repository
func (m *Module) Repository() *repository.PlaceRepository {
	return m.repo
}

// RegisterRoutes registers HTTP routes
func (m *Module) RegisterRoutes(router gin.IRouter) {
	m.routes.RegisterRoutes(router, func(group *gin.RouterGroup) {
		api.RegisterRoutes(group, api.NewHandler(m.repo))
	})
}
