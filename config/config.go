// Package config loads the wlt settings from the environment and an optional
// .env file.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	File         string        // snapshot path
	SaveDelay    time.Duration // debounce delay of snapshot writes
	Currency     string        // display currency
	LogLevel     string
	BackupBucket string // Cloud Storage bucket for backups, optional
	BackupObject string
	GeminiAPIKey string
	GeminiModel  string
}

// Load reads the configuration. Values come, by increasing priority, from the
// defaults, the .env files (".env" when none is given) and the environment.
func Load(envFiles ...string) (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load(envFiles...)

	v := viper.New()
	v.SetDefault("WALLET_FILE", "wallet.json")
	v.SetDefault("WALLET_SAVE_DELAY", "1s")
	v.SetDefault("WALLET_CURRENCY", "EGP")
	v.SetDefault("WALLET_LOG_LEVEL", "info")
	v.SetDefault("WALLET_BACKUP_BUCKET", "")
	v.SetDefault("WALLET_BACKUP_OBJECT", "wallet.json")
	v.SetDefault("GEMINI_API_KEY", "")
	v.SetDefault("GEMINI_MODEL", "gemini-2.5-flash")
	v.AutomaticEnv()

	delay, err := time.ParseDuration(v.GetString("WALLET_SAVE_DELAY"))
	if err != nil {
		return nil, fmt.Errorf("invalid WALLET_SAVE_DELAY %q: %w", v.GetString("WALLET_SAVE_DELAY"), err)
	}
	if delay < 0 {
		return nil, fmt.Errorf("invalid WALLET_SAVE_DELAY %q: must not be negative", v.GetString("WALLET_SAVE_DELAY"))
	}

	return &Config{
		File:         v.GetString("WALLET_FILE"),
		SaveDelay:    delay,
		Currency:     strings.ToUpper(v.GetString("WALLET_CURRENCY")),
		LogLevel:     v.GetString("WALLET_LOG_LEVEL"),
		BackupBucket: v.GetString("WALLET_BACKUP_BUCKET"),
		BackupObject: v.GetString("WALLET_BACKUP_OBJECT"),
		GeminiAPIKey: v.GetString("GEMINI_API_KEY"),
		GeminiModel:  v.GetString("GEMINI_MODEL"),
	}, nil
}
