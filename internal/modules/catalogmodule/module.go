// Package catalogmodule owns the generic items table and the tag vocabulary
// that every media type module builds on.
package catalogmodule

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/jermspeaks/watchlist/internal/base"
	"github.com/jermspeaks/watchlist/internal/database"
	"github.com/jermspeaks/watchlist/internal/logger"
	"github.com/jermspeaks/watchlist/internal/modules/catalogmodule/api"
	"github.com/jermspeaks/watchlist/internal/modules/catalogmodule/core/repository"
	"github.com/jermspeaks/watchlist/internal/modules/modulemanager"
	"gorm.io/gorm"
)

// Auto-register the module when imported
func init() {
	Register()
}

const (
	// ModuleID is the unique identifier for the catalog module
	ModuleID = "catalog.core"

	// ModuleName is the display name for the catalog module
	ModuleName = "Catalog"

	// ModuleVersion is the version of the catalog module
	ModuleVersion = "1.0.0"
)

// Module migrates the shared tables and serves the tag list
type Module struct {
	*base.BaseModule
	routes *base.BaseRouteRegistrar
	tags   *repository.TagRepository
}

// Register registers the catalog module with the global module registry
func Register() {
	modulemanager.Register(NewModule(nil))
}

// NewModule creates the module. A nil db is resolved from the global
// database handle during Init.
func NewModule(db *gorm.DB) *Module {
	m := &Module{BaseModule: base.NewBaseModule(ModuleID, ModuleName, ModuleVersion, true)}
	m.routes = base.NewBaseRouteRegistrar("/api/tags", m.BaseModule)
	m.SetDB(db)
	return m
}

// Migrate creates the items and tags tables
func (m *Module) Migrate(db *gorm.DB) error {
	logger.Info("Migrating catalog database schema")
	if err := db.AutoMigrate(&database.Item{}, &database.Tag{}); err != nil {
		return fmt.Errorf("failed to migrate catalog models: %w", err)
	}
	return nil
}

// Init wires the tag repository and makes sure the default tags exist
func (m *Module) Init() error {
	if m.GetDB() == nil {
		m.SetDB(database.GetDB())
	}
	if m.GetDB() == nil {
		return fmt.Errorf("catalog module: database not initialized")
	}

	m.tags = repository.NewTagRepository(m.GetDB())
	if err := m.tags.EnsureDefaults(context.Background()); err != nil {
		return err
	}

	m.SetInitialized(true)
	return nil
}

// Tags returns the tag repository
func (m *Module) Tags() *repository.TagRepository {
	return m.tags
}

// RegisterRoutes registers HTTP routes
func (m *Module) RegisterRoutes(router gin.IRouter) {
	m.routes.RegisterRoutes(router, func(group *gin.RouterGroup) {
		api.RegisterRoutes(group, api.NewHandler(m.tags))
	})
}
