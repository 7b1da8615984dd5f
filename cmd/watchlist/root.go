package main

import (
	"fmt"
	"os"

	"github.com/jermspeaks/watchlist/internal/config"
	"github.com/jermspeaks/watchlist/internal/database"
	"github.com/jermspeaks/watchlist/internal/logger"
	"github.com/jermspeaks/watchlist/internal/modules/modulemanager"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gorm.io/gorm"
)

// Flag names, also used as viper keys
const (
	flagConfig   = "config"
	flagLogLevel = "log-level"
	flagDBType   = "db-type"
	flagDBPath   = "db-path"
	flagPort     = "port"
)

// defaultConfigPaths are tried in order when no --config is given
var defaultConfigPaths = []string{"./watchlist.yaml", "./watchlist.json"}

// settings holds the flag values; env WATCHLIST_CONFIG also feeds --config
var settings = newSettings()

var rootCmd = &cobra.Command{
	Use:          "watchlist",
	Short:        "Watchlist tracks books and places you want to get to",
	Version:      version,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip config for version command
		if cmd.Name() == versionCmd.Name() {
			return nil
		}
		return loadConfig(settings)
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String(flagConfig, "", "config file, YAML or JSON (default: ./watchlist.yaml if present)")
	flags.String(flagLogLevel, "", "log level: trace, debug, info, warn, error")
	flags.String(flagDBType, "", "database type: sqlite or postgres")
	flags.String(flagDBPath, "", "sqlite database file")
	flags.Int(flagPort, 0, "HTTP port")

	for _, name := range []string{flagConfig, flagLogLevel, flagDBType, flagDBPath, flagPort} {
		if err := settings.BindPFlag(name, flags.Lookup(name)); err != nil {
			panic(err)
		}
	}

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(resetCmd)
}

func newSettings() *viper.Viper {
	v := viper.New()
	_ = v.BindEnv(flagConfig, "WATCHLIST_CONFIG")
	return v
}

// resolveConfigPath returns the --config value, else the first default
// path that exists, else "" for defaults plus environment.
func resolveConfigPath(v *viper.Viper) string {
	if path := v.GetString(flagConfig); path != "" {
		return path
	}
	for _, path := range defaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// loadConfig layers defaults, file and environment, then the flags on top,
// and configures logging from the result.
func loadConfig(v *viper.Viper) error {
	path := resolveConfigPath(v)
	if err := config.Load(path); err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := config.GetConfigManager().Apply(func(cfg *config.Config) { applyFlags(v, cfg) }); err != nil {
		return fmt.Errorf("apply flags: %w", err)
	}

	cfg := config.Get()
	logger.Configure(cfg.Logging.Level, cfg.Logging.Format)
	if path != "" {
		logger.Info("Configuration loaded", "path", path)
	}
	return nil
}

// applyFlags copies the flags that were given onto cfg
func applyFlags(v *viper.Viper, cfg *config.Config) {
	if level := v.GetString(flagLogLevel); level != "" {
		cfg.Logging.Level = level
	}
	if dbType := v.GetString(flagDBType); dbType != "" {
		cfg.Database.Type = dbType
	}
	if dbPath := v.GetString(flagDBPath); dbPath != "" {
		cfg.Database.Path = dbPath
	}
	if port := v.GetInt(flagPort); port != 0 {
		cfg.Server.Port = port
	}
}

// loadModules migrates and initializes the registry, skipping the modules
// listed in modules.disabled
func loadModules(registry *modulemanager.ModuleRegistry, db *gorm.DB) error {
	registry.SetDisabled(config.Get().Modules.Disabled)
	if err := registry.LoadAll(db); err != nil {
		return fmt.Errorf("load modules: %w", err)
	}
	return nil
}

// openDatabase initializes the global database handle from the loaded config
func openDatabase() (*gorm.DB, error) {
	cfg := config.Get()
	if err := database.Initialize(cfg.Database); err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	logger.Info("Database connected", []logger.Field{logger.String("type", cfg.Database.Type)})
	return database.GetDB(), nil
}
