package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/jermspeaks/watchlist/internal/config"
	"github.com/jermspeaks/watchlist/internal/database"
	"github.com/jermspeaks/watchlist/internal/logger"
	"github.com/jermspeaks/watchlist/internal/modules/modulemanager"
	"github.com/jermspeaks/watchlist/internal/server"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return serve(ctx)
	},
}

func serve(ctx context.Context) error {
	db, err := openDatabase()
	if err != nil {
		return err
	}
	defer database.Close(db)

	if err := loadModules(modulemanager.Registry, db); err != nil {
		return err
	}

	// Re-apply the log level whenever the config file is reloaded
	config.AddWatcher(func(oldConfig, newConfig *config.Config) {
		if oldConfig.Logging.Level != newConfig.Logging.Level {
			logger.SetLevel(newConfig.Logging.Level)
			logger.Info("Log level changed", "from", oldConfig.Logging.Level, "to", newConfig.Logging.Level)
		}
	})

	cfg := config.Get()
	if cfg.Watch.Enabled {
		watcher, err := config.NewFileWatcher(config.GetConfigManager(), logger.Logger(), cfg.Watch.Debounce)
		if err != nil {
			logger.Warn("Config hot reload disabled", []logger.Field{logger.Err("error", err)})
		} else if err := watcher.Start(); err != nil {
			logger.Warn("Config hot reload disabled", []logger.Field{logger.Err("error", err)})
		} else {
			defer watcher.Stop()
		}
	}

	router := server.SetupRouter(cfg, db, modulemanager.Registry)
	return server.Serve(ctx, server.NewHTTPServer(cfg.Server, router))
}
