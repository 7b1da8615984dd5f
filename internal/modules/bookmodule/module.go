// Package bookmodule tracks books on the watchlist
package bookmodule

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/jermspeaks/watchlist/internal/base"
	"github.com/jermspeaks/watchlist/internal/config"
	"github.com/jermspeaks/watchlist/internal/database"
	"github.com/jermspeaks/watchlist/internal/logger"
	"github.com/jermspeaks/watchlist/internal/modules/bookmodule/api"
	"github.com/jermspeaks/watchlist/internal/modules/bookmodule/core/repository"
	"github.com/jermspeaks/watchlist/internal/modules/catalogmodule"
	"github.com/jermspeaks/watchlist/internal/modules/catalogmodule/types"
	"github.com/jermspeaks/watchlist/internal/modules/modulemanager"
	"gorm.io/gorm"
)

// Auto-register the module when imported
func init() {
	Register()
}

const (
	// ModuleID is the unique identifier for the book module
	ModuleID = "catalog.books"

	// ModuleName is the display name for the book module
	ModuleName = "Books"

	// ModuleVersion is the version of the book module
	ModuleVersion = "1.0.0"
)

// Module implements book tracking as a module
type Module struct {
	*base.BaseModule
	routes *base.BaseRouteRegistrar
	repo   *repository.BookRepository
	paging *types.Paging
}

// Register registers the book module with the global module registry
func Register() {
	modulemanager.Register(NewModule(nil, nil))
}

// NewModule creates the module. A nil db or paging is resolved from the
// global database handle and configuration during Init.
func NewModule(db *gorm.DB, paging *types.Paging) *Module {
	m := &Module{
		BaseModule: base.NewBaseModule(ModuleID, ModuleName, ModuleVersion, true),
		paging:     paging,
	}
	m.routes = base.NewBaseRouteRegistrar("/api/books", m.BaseModule)
	m.SetDB(db)
	return m
}

// Dependencies returns module dependencies
func (m *Module) Dependencies() []string {
	return []string{catalogmodule.ModuleID}
}

// Migrate creates the books table and its foreign key to items
func (m *Module) Migrate(db *gorm.DB) error {
	logger.Info("Migrating book database schema")
	if err := db.AutoMigrate(&database.Item{}, &database.Book{}); err != nil {
		return fmt.Errorf("failed to migrate book models: %w", err)
	}
	return nil
}

// Init initializes the book repository
func (m *Module) Init() error {
	if m.GetDB() == nil {
		m.SetDB(database.GetDB())
	}
	if m.GetDB() == nil {
		return fmt.Errorf("book module: database not initialized")
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

	m.repo = repository.NewBookRepository(m.GetDB(), repository.WithPaging(paging))
	m.SetInitialized(true)
	return nil
}

// Repository returns the book repository
func (m *Module) Repository() *repository.BookRepository {
	return m.repo
}

// RegisterRoutes registers HTTP routes
func (m *Module) RegisterRoutes(router gin.IRouter) {
	m.routes.RegisterRoutes(router, func(group *gin.RouterGroup) {
		api.RegisterRoutes(group, api.NewHandler(m.repo))
	})
}
