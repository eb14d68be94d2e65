package config

import (
	"os"
	"time"
)

// Config carries everything main needs to wire the service. The backing
// store is chosen once at startup: a MySQL DSN selects the remote store,
// otherwise the service falls back to the local SQLite file.
type Config struct {
	Port           string
	MySQLDSN       string
	SQLitePath     string
	ReloadInterval time.Duration
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func Load() Config {
	cfg := Config{
		Port:           getEnv("PORT", "8080"),
		MySQLDSN:       os.Getenv("MYSQL_DSN"),
		SQLitePath:     getEnv("SQLITE_PATH", "canteen_local.db"),
		ReloadInterval: 2 * time.Second,
	}
	if raw := os.Getenv("RELOAD_INTERVAL"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil && d > 0 {
			cfg.ReloadInterval = d
		}
	}
	return cfg
}
