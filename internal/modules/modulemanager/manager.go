package modulemanager

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jermspeaks/watchlist/internal/logger"
	"gorm.io/gorm"
)

// ModuleRegistry manages module registration and initialization
type ModuleRegistry struct {
	modules         map[string]Module
	disabledModules map[string]bool
	loaded          []Module
	mu              sync.RWMutex
	initialized     bool
}

// Registry is the global module registry
var Registry = NewRegistry()

// NewRegistry creates an empty registry
func NewRegistry() *ModuleRegistry {
	return &ModuleRegistry{
		modules:         make(map[string]Module),
		disabledModules: make(map[string]bool),
	}
}

// Register adds a module to the global registry
func Register(m Module) {
	Registry.Register(m)
}

// Register adds a module to the registry
func (r *ModuleRegistry) Register(m Module) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.initialized {
		logger.Warn("Module %s (%s) registered after initialization", m.Name(), m.ID())
	}

	r.modules[m.ID()] = m
	logger.Debug("Module registered: %s (%s)", m.Name(), m.ID())
}

// LoadAll migrates and initializes all registered modules on the global registry
func LoadAll(db *gorm.DB) error {
	return Registry.LoadAll(db)
}

// LoadAll migrates and initializes all enabled modules in dependency order
func (r *ModuleRegistry) LoadAll(db *gorm.DB) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.initialized {
		logger.Warn("Module system already initialized")
		return nil
	}

	enabled := make(map[string]Module)
	for id, module := range r.modules {
		if r.disabledModules[id] {
			if module.Core() {
				return fmt.Errorf("attempted to disable core module: %s", id)
			}
			logger.Warn("Skipping module %s (disabled)", module.Name())
			continue
		}
		enabled[id] = module
	}

	order, err := initializationOrder(enabled)
	if err != nil {
		return fmt.Errorf("failed to determine initialization order: %w", err)
	}

	logger.Info("Loading %d modules", len(order))
	for i, module := range order {
		logger.Debug("[%d/%d] Initializing module: %s", i+1, len(order), module.Name())

		if err := module.Migrate(db); err != nil {
			return fmt.Errorf("failed to migrate %s: %w", module.Name(), err)
		}
		if err := module.Init(); err != nil {
			return fmt.Errorf("failed to initialize %s: %w", module.Name(), err)
		}

		logger.Info("Module loaded", "module", module.ID())
	}

	r.loaded = order
	r.initialized = true
	return nil
}

// MigrateAll runs every enabled module's migrations without initializing it
func (r *ModuleRegistry) MigrateAll(db *gorm.DB) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	enabled := make(map[string]Module)
	for id, module := range r.modules {
		if !r.disabledModules[id] {
			enabled[id] = module
		}
	}
	order, err := initializationOrder(enabled)
	if err != nil {
		return fmt.Errorf("failed to determine migration order: %w", err)
	}
	for _, module := range order {
		if err := module.Migrate(db); err != nil {
			return fmt.Errorf("failed to migrate %s: %w", module.Name(), err)
		}
	}
	return nil
}

// DisableModule marks a module as disabled. Core modules cannot be disabled.
func (r *ModuleRegistry) DisableModule(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	module, exists := r.modules[id]
	if !exists {
		logger.Warn("Attempted to disable non-existent module: %s", id)
		return
	}

	if module.Core() {
		logger.Error("Cannot disable core module: %s", id)
		return
	}

	r.disabledModules[id] = true
	logger.Info("Module disabled: %s", id)
}

// EnableModule enables a previously disabled module
func (r *ModuleRegistry) EnableModule(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.disabledModules, id)
}

// SetDisabled disables the listed modules and enables every other one.
// Core modules stay enabled.
func (r *ModuleRegistry) SetDisabled(ids []string) {
	disabled := make(map[string]bool, len(ids))
	for _, id := range ids {
		disabled[id] = true
		r.DisableModule(id)
	}
	for _, module := range r.ListModules() {
		if !disabled[module.ID()] {
			r.EnableModule(module.ID())
		}
	}
}

// GetModule returns a module by ID
func (r *ModuleRegistry) GetModule(id string) (Module, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	module, exists := r.modules[id]
	return module, exists
}

// ListModules returns all registered modules sorted by ID
func (r *ModuleRegistry) ListModules() []Module {
	r.mu.RLock()
	defer r.mu.RUnlock()
	modules := make([]Module, 0, len(r.modules))
	for _, module := range r.modules {
		modules = append(modules, module)
	}
	sort.Slice(modules, func(i, j int) bool { return modules[i].ID() < modules[j].ID() })
	return modules
}

// RegisterRoutes registers routes for all loaded modules that implement RouteRegistrar
func (r *ModuleRegistry) RegisterRoutes(router gin.IRouter) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, module := range r.loaded {
		if routeRegistrar, ok := module.(RouteRegistrar); ok {
			logger.Debug("Registering routes for module: %s", module.Name())
			routeRegistrar.RegisterRoutes(router)
		}
	}
}

// Health checks every loaded module that implements HealthChecker
func (r *ModuleRegistry) Health(ctx context.Context) map[string]HealthStatus {
	r.mu.RLock()
	loaded := append([]Module(nil), r.loaded...)
	r.mu.RUnlock()

	result := make(map[string]HealthStatus, len(loaded))
	for _, module := range loaded {
		status := HealthStatus{Status: HealthStateUnknown, LastChecked: time.Now().UTC()}
		if checker, ok := module.(HealthChecker); ok {
			if err := checker.HealthCheck(ctx); err != nil {
				status.Status = HealthStateUnhealthy
				status.Message = err.Error()
			} else {
				status.Status = HealthStateHealthy
			}
		}
		result[module.ID()] = status
	}
	return result
}
