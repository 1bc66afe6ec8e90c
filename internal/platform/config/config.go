// Package config loads application configuration from the environment.
// A local .env file is loaded first (best effort) so that development
// setups work without exporting every variable by hand.
package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every recognized configuration option for the server.
type Config struct {
	Host    string
	Port    string
	DevMode bool

	DB    DBConfig
	Redis RedisConfig

	// JWT
	JWTSecret   string
	TokenExpiry time.Duration

	// Quote cache freshness windows
	QuoteTTL   time.Duration
	HistoryTTL time.Duration

	// Outbound provider rate limit (calls per minute)
	ProviderRateLimit int

	// CORS
	CORSOrigins []string
	CORSMethods []string
	CORSHeaders []string

	// Optional ngrok tunnel token. The tunnel itself runs out of process;
	// the token is only recognized (and logged masked) here.
	NgrokAuthToken string
}

// DBConfig holds the relational store connection settings.
type DBConfig struct {
	User         string
	Password     string
	Host         string
	Port         string
	Name         string
	InstanceName string
}

// RedisConfig holds the quote cache connection settings.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
}

// Load reads configuration from the environment with sensible defaults.
func Load() Config {
	// Missing .env is fine; variables may come from the real environment.
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", "error", err)
	}

	cfg := Config{
		Host:    getEnv("HOST", "0.0.0.0"),
		Port:    getEnv("PORT", "8080"),
		DevMode: getEnvBool("DEV_MODE", false),
		DB: DBConfig{
			User:         os.Getenv("DB_USER"),
			Password:     os.Getenv("DB_PASSWORD"),
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         getEnv("DB_PORT", "5432"),
			Name:         getEnv("DB_NAME", "bloomberg_lite"),
			InstanceName: os.Getenv("INSTANCE_CONNECTION_NAME"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
		},
		JWTSecret:         os.Getenv("JWT_SECRET"),
		TokenExpiry:       time.Duration(getEnvInt("ACCESS_TOKEN_EXPIRE_MINUTES", 30)) * time.Minute,
		QuoteTTL:          time.Duration(getEnvInt("QUOTE_TTL_SECONDS", 300)) * time.Second,
		HistoryTTL:        time.Duration(getEnvInt("HISTORY_TTL_SECONDS", 86400)) * time.Second,
		ProviderRateLimit: getEnvInt("PROVIDER_RATE_LIMIT", 8),
		CORSOrigins:       getEnvList("CORS_ORIGINS", []string{"*"}),
		CORSMethods:       getEnvList("CORS_METHODS", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		CORSHeaders:       getEnvList("CORS_HEADERS", []string{"Origin", "Content-Type", "Authorization"}),
		NgrokAuthToken:    os.Getenv("NGROK_AUTH_TOKEN"),
	}

	if cfg.NgrokAuthToken != "" {
		slog.Info("ngrok tunnel token configured", "token", mask(cfg.NgrokAuthToken))
	}

	return cfg
}

// getEnv returns the value of key, or def when unset or empty.
func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// getEnvInt returns the integer value of key, or def when unset or unparsable.
func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("invalid integer in environment, using default", "key", key, "value", v, "default", def)
		return def
	}
	return n
}

// getEnvBool returns the boolean value of key, or def when unset.
func getEnvBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return strings.EqualFold(v, "true") || v == "1"
}

// getEnvList splits a comma-separated environment value into a slice.
func getEnvList(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

// mask hides all but the first few characters of a secret for logging.
func mask(s string) string {
	if len(s) <= 4 {
		return "****"
	}
	return s[:4] + "..."
}
