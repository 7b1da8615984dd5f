package base

import (
	"context"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/jermspeaks/watchlist/internal/database"
	"github.com/jermspeaks/watchlist/internal/logger"
	"gorm.io/gorm"
)

// BaseModule provides the bookkeeping shared by every catalog module
type BaseModule struct {
	id          string
	name        string
	version     string
	core        bool
	initialized bool
	db          *gorm.DB
	mu          sync.RWMutex
}

// NewBaseModule creates a new base module with common properties
func NewBaseModule(id, name, version string, core bool) *BaseModule {
	return &BaseModule{
		id:      id,
		name:    name,
		version: version,
		core:    core,
	}
}

func (m *BaseModule) ID() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.id
}

func (m *BaseModule) Name() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.name
}

func (m *BaseModule) Version() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.version
}

func (m *BaseModule) Core() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.core
}

func (m *BaseModule) IsInitialized() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.initialized
}

// SetInitialized marks the module as initialized
func (m *BaseModule) SetInitialized(initialized bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.initialized = initialized
}

// SetDB sets the database connection
func (m *BaseModule) SetDB(db *gorm.DB) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.db = db
}

// GetDB returns the database connection
func (m *BaseModule) GetDB() *gorm.DB {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.db
}

// BaseRouteRegistrar mounts a module's routes under one path prefix
type BaseRouteRegistrar struct {
	basePath string
	module   *BaseModule
}

// NewBaseRouteRegistrar creates a new route registrar
func NewBaseRouteRegistrar(basePath string, module *BaseModule) *BaseRouteRegistrar {
	return &BaseRouteRegistrar{
		basePath: basePath,
		module:   module,
	}
}

// RegisterRoutes calls routes with a group rooted at the base path. Modules
// that were never initialized register nothing.
func (r *BaseRouteRegistrar) RegisterRoutes(router gin.IRouter, routes func(*gin.RouterGroup)) {
	if !r.module.IsInitialized() {
		logger.Warn("Skipping route registration for uninitialized module: %s", r.module.Name())
		return
	}

	group := router.Group(r.basePath)
	routes(group)

	logger.Debug("Routes registered for module: %s", r.module.Name())
}

// HealthCheck reports whether the module is initialized and its database answers
func (m *BaseModule) HealthCheck(ctx context.Context) error {
	if !m.IsInitialized() {
		return ErrModuleNotInitialized
	}

	if db := m.GetDB(); db != nil {
		if err := database.Ping(ctx, db); err != nil {
			return NewModuleError(ErrDatabasePing.Code, ErrDatabasePing.Message, err)
		}
	}

	return nil
}

// Common errors
var (
	ErrModuleNotInitialized = &ModuleError{Code: "MODULE_NOT_INITIALIZED", Message: "Module is not initialized"}
	ErrDatabasePing         = &ModuleError{Code: "DATABASE_PING", Message: "Database ping failed"}
)

// ModuleError provides structured error handling
type ModuleError struct {
	Code    string
	Message string
	Cause   error
}

func (e *ModuleError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *ModuleError) Unwrap() error {
	return e.Cause
}

// NewModuleError creates a new module error with optional cause
func NewModuleError(code, message string, cause error) *ModuleError {
	return &ModuleError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}
