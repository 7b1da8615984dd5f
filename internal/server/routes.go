package server

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jermspeaks/watchlist/internal/database"
	"github.com/jermspeaks/watchlist/internal/modules/modulemanager"
	"gorm.io/gorm"
)

// healthTimeout bounds the database ping behind /api/health
const healthTimeout = 2 * time.Second

// RouteInfo describes one path in the discovery listing
type RouteInfo struct {
	Path    string   `json:"path"`
	Methods []string `json:"methods"`
}

func setupRoutes(r *gin.Engine, db *gorm.DB, registry *modulemanager.ModuleRegistry) {
	apiGroup := r.Group("/api")
	{
		apiGroup.GET("", listRoutes(r))
		apiGroup.GET("/health", healthHandler(db, registry))
	}

	registry.RegisterRoutes(r)
}

// listRoutes serves every registered route, grouped by path
func listRoutes(r *gin.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"routes": collectRoutes(r.Routes())})
	}
}

func collectRoutes(routes gin.RoutesInfo) []RouteInfo {
	byPath := make(map[string][]string)
	for _, route := range routes {
		byPath[route.Path] = append(byPath[route.Path], route.Method)
	}

	out := make([]RouteInfo, 0, len(byPath))
	for path, methods := range byPath {
		sort.Strings(methods)
		out = append(out, RouteInfo{Path: path, Methods: methods})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Path < out[j].Path
	})
	return out
}

// healthHandler reports the database and per-module health. A failed ping
// turns the whole response into a 503.
func healthHandler(db *gorm.DB, registry *modulemanager.ModuleRegistry) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
		defer cancel()

		status := "ok"
		dbStatus := "connected"
		code := http.StatusOK
		if err := database.Ping(ctx, db); err != nil {
			status = "degraded"
			dbStatus = err.Error()
			code = http.StatusServiceUnavailable
		}

		c.JSON(code, gin.H{
			"status":   status,
			"database": dbStatus,
			"modules":  registry.Health(ctx),
		})
	}
}
