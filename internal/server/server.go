// Package server wires the HTTP engine, the shared middleware and the
// module routes together and runs the listener.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jermspeaks/watchlist/internal/api"
	"github.com/jermspeaks/watchlist/internal/config"
	"github.com/jermspeaks/watchlist/internal/logger"
	"github.com/jermspeaks/watchlist/internal/middleware"
	"github.com/jermspeaks/watchlist/internal/modules/modulemanager"
	"gorm.io/gorm"
)

// ShutdownTimeout bounds how long in-flight requests get after a stop signal
const ShutdownTimeout = 5 * time.Second

// SetupRouter configures and returns the main router. Module routes are
// registered for every module the registry has loaded.
func SetupRouter(cfg *config.Config, db *gorm.DB, registry *modulemanager.ModuleRegistry) *gin.Engine {
	r := gin.New()

	r.Use(api.ErrorMiddleware())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.ErrorLogger())
	if cfg.Server.EnableCORS {
		r.Use(corsMiddleware(cfg.Server.AllowedOrigins))
	}

	setupRoutes(r, db, registry)
	logModuleStatus(registry)

	return r
}

// corsMiddleware answers preflight requests and tags responses for the
// allowed origins. A "*" entry allows any origin.
func corsMiddleware(allowed []string) gin.HandlerFunc {
	allowAll := false
	origins := make(map[string]bool, len(allowed))
	for _, o := range allowed {
		if o == "*" {
			allowAll = true
		}
		origins[o] = true
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		switch {
		case allowAll:
			c.Header("Access-Control-Allow-Origin", "*")
		case origin != "" && origins[origin]:
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Vary", "Origin")
		}
		c.Header("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization, "+middleware.RequestIDHeader)

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// Serve runs srv until ctx is cancelled, then shuts it down gracefully
func Serve(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting watchlist server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down gracefully...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	logger.Info("Server shutdown complete")
	return nil
}

// NewHTTPServer builds the listener for cfg around handler
func NewHTTPServer(cfg config.ServerConfig, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
}

// logModuleStatus logs the loaded modules
func logModuleStatus(registry *modulemanager.ModuleRegistry) {
	modules := registry.ListModules()
	log := logger.Named("modules")

	log.Info(fmt.Sprintf("Module system initialized with %d modules", len(modules)))
	log.Info(fmt.Sprintf("%-20s | %-25s | %-4s", "MODULE NAME", "MODULE ID", "CORE"))
	for _, module := range modules {
		core := "No"
		if module.Core() {
			core = "Yes"
		}
		log.Info(fmt.Sprintf("%-20s | %-25s | %-4s", truncate(module.Name(), 20), truncate(module.ID(), 25), core))
	}
}

// truncate shortens a string to the given length, adding ... if needed
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
