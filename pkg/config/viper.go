// Package config is responsible for initializing the application's
// configuration. It uses the Viper library to read settings from a config
// file, environment variables, and command-line flags, providing a unified
// configuration system.
package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Init initializes the application's configuration using Viper. It sets up
// default values, defines configuration search paths, and enables reading
// from environment variables (including a local .env file). It is designed
// to be called once at application startup.
func Init() error {
	// A .env file is optional; ignore its absence.
	_ = godotenv.Load()

	// --- Set Search Paths ---
	viper.SetConfigName("config")
	viper.AddConfigPath(".")                 // Current working directory
	viper.AddConfigPath("/etc/docketsync/")  // System-wide configuration
	viper.AddConfigPath("$HOME/.docketsync") // User-specific configuration

	// --- Set Defaults ---
	viper.SetDefault("api.base_url", "https://api.data.gov/regulations/v3")
	viper.SetDefault("api.delay", "2s")
	viper.SetDefault("api.cooldown", "120s")

	viper.SetDefault("sync.posted_date", "")
	viper.SetDefault("sync.rpp", 25)
	viper.SetDefault("sync.page_offset", 0)
	viper.SetDefault("sync.attachments_dir", "attachments")
	viper.SetDefault("sync.describe_docket", false)

	viper.SetDefault("store.table", "comments")
	viper.SetDefault("store.sqlite", "")
	viper.SetDefault("store.csv", "")
	viper.SetDefault("store.load", false)

	viper.SetDefault("log.file", "")

	// --- Environment Variables ---
	viper.SetEnvPrefix("DOCKETSYNC") // e.g., DOCKETSYNC_SYNC_RPP=100
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	// The API key only ever comes from the environment.
	if err := viper.BindEnv("api.key", "DOCKETSYNC_API_KEY", "REGS_API_KEY"); err != nil {
		return fmt.Errorf("bind api key env: %w", err)
	}

	// --- Read Config File ---
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Not fatal: defaults, env vars, and flags still apply.
			return nil
		}
		return fmt.Errorf("read config file: %w", err)
	}
	return nil
}
