// Package config reads service configuration from the environment, with a
// best-effort .env load for local development.
package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	SecretKey     string
	DocStorePath  string
	RelationalDSN string
	CookieSecure  bool
	LogLevel      string
	LogDev        bool
}

// Load reads configuration from env vars. A missing .env file is not an
// error; real environment values always win.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port:          getEnv("PORT", "8080"),
		SecretKey:     getEnv("SECRET_KEY", "change_me_in_production"),
		DocStorePath:  getEnv("DOC_STORE_PATH", filepath.Join("data", "tally.db")),
		RelationalDSN: getEnv("DATABASE_URL", filepath.Join("data", "tally-actuals.db")),
		CookieSecure:  os.Getenv("COOKIE_SECURE") == "1",
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogDev:        os.Getenv("LOG_DEV") == "1",
	}
}

func getEnv(key string, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}
