package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Admin     AdminConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	Webhook   WebhookConfig
	Log       LogConfig
	Secure    SecureConfig
	Metrics   MetricsConfig
}

type ServerConfig struct {
	Port string
}

// DatabaseConfig selects the store. An empty URL runs the in-memory store.
type DatabaseConfig struct {
	URL      string
	MaxConns int32
}

type RedisConfig struct {
	URL string
}

type AdminConfig struct {
	Secret string

	// Consecutive wrong keys before a client is locked out. 0 disables.
	LockoutAttempts int
	LockoutCooldown time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

type RateLimitConfig struct {
	// Rate per IP ("100-M" = 100/min). Empty disables.
	RatePerIP string
}

type WebhookConfig struct {
	URL    string
	Secret string
}

type LogConfig struct {
	Level  string
	Format string // console or json
}

type SecureConfig struct {
	IsDevelopment bool
}

type MetricsConfig struct {
	Enabled bool
}

// Load reads .env (when present), an optional CONFIG_FILE and the environment, in increasing precedence.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("PORT", "8080")
	v.SetDefault("DATABASE_MAX_CONNS", 10)
	v.SetDefault("RATE_LIMIT_PER_IP", "300-M")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")
	v.SetDefault("METRICS_ENABLED", true)
	v.SetDefault("ADMIN_LOCKOUT_ATTEMPTS", 10)
	v.SetDefault("ADMIN_LOCKOUT_COOLDOWN", "15m")
	if p := os.Getenv("CONFIG_FILE"); p != "" {
		v.SetConfigFile(p)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read %s: %w", p, err)
		}
	}

	cfg := &Config{
		Server:   ServerConfig{Port: v.GetString("PORT")},
		Database: DatabaseConfig{URL: v.GetString("DATABASE_URL"), MaxConns: v.GetInt32("DATABASE_MAX_CONNS")},
		Redis:    RedisConfig{URL: v.GetString("REDIS_URL")},
		Admin: AdminConfig{
			Secret:          v.GetString("ADMIN_SECRET"),
			LockoutAttempts: v.GetInt("ADMIN_LOCKOUT_ATTEMPTS"),
			LockoutCooldown: v.GetDuration("ADMIN_LOCKOUT_COOLDOWN"),
		},
		CORS:      CORSConfig{AllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS"))},
		RateLimit: RateLimitConfig{RatePerIP: v.GetString("RATE_LIMIT_PER_IP")},
		Webhook:   WebhookConfig{URL: v.GetString("WEBHOOK_URL"), Secret: v.GetString("WEBHOOK_SECRET")},
		Log:       LogConfig{Level: strings.ToLower(v.GetString("LOG_LEVEL")), Format: strings.ToLower(v.GetString("LOG_FORMAT"))},
		Secure:    SecureConfig{IsDevelopment: v.GetBool("SECURE_DEVELOPMENT")},
		Metrics:   MetricsConfig{Enabled: v.GetBool("METRICS_ENABLED")},
	}
	if cfg.Database.MaxConns <= 0 {
		cfg.Database.MaxConns = 10
	}
	if cfg.Log.Format != "console" && cfg.Log.Format != "json" {
		return nil, fmt.Errorf("LOG_FORMAT must be console or json, got %q", cfg.Log.Format)
	}
	return cfg, nil
}

// splitList parses a comma-separated value, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
