package api

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	cartmemory "github.com/Apurer/go-gin-storefront/internal/domains/cart/adapters/memory"
	catalogcache "github.com/Apurer/go-gin-storefront/internal/domains/catalog/adapters/cache/redis"
	platformobservability "github.com/Apurer/go-gin-storefront/internal/platform/observability"
)

// Config carries environment-driven settings for the storefront process.
type Config struct {
	Port                 string
	PostgresDSN          string
	RedisAddr            string
	CatalogCacheTTL      time.Duration
	CatalogSeed          bool
	CartMaxSessions      int
	CartSessionIdleTTL   time.Duration
	SessionCookieName    string
	SessionCookieSecure  bool
	SessionTTL           time.Duration
	SessionPurgeInterval time.Duration
	LogLevel             slog.Level
}

// LoadConfig loads an optional .env file, then reads environment variables,
// applies defaults, and validates basic constraints. Variables already set in
// the environment win over the file.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return loadConfigFromEnv()
}

func loadConfigFromEnv() (Config, error) {
	cfg := Config{
		Port:              envDefault("PORT", "8080"),
		PostgresDSN:       strings.TrimSpace(os.Getenv("POSTGRES_DSN")),
		RedisAddr:         strings.TrimSpace(os.Getenv("REDIS_ADDR")),
		SessionCookieName: envDefault("SESSION_COOKIE_NAME", "storefront_session"),
	}
	var errs []error
	cfg.CatalogCacheTTL = durationEnv("CATALOG_CACHE_TTL", catalogcache.DefaultTTL, &errs)
	cfg.CartSessionIdleTTL = durationEnv("CART_SESSION_IDLE_TTL", cartmemory.DefaultIdleTTL, &errs)
	cfg.CartMaxSessions = positiveIntEnv("CART_MAX_SESSIONS", cartmemory.DefaultMaxSessions, &errs)
	cfg.SessionTTL = time.Duration(positiveIntEnv("SESSION_TTL_HOURS", 24, &errs)) * time.Hour
	cfg.CatalogSeed = boolEnv("CATALOG_SEED", true, &errs)
	cfg.SessionCookieSecure = boolEnv("SESSION_COOKIE_SECURE", false, &errs)
	if raw := strings.TrimSpace(os.Getenv("SESSION_PURGE_INTERVAL_MINUTES")); raw != "" {
		minutes, err := strconv.Atoi(raw)
		if err != nil || minutes < 0 {
			errs = append(errs, fmt.Errorf("SESSION_PURGE_INTERVAL_MINUTES must be a non-negative integer"))
		}
		cfg.SessionPurgeInterval = time.Duration(minutes) * time.Minute
	}
	level, err := platformobservability.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		errs = append(errs, fmt.Errorf("LOG_LEVEL: %w", err))
	}
	cfg.LogLevel = level
	if err := errors.Join(errs...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func envDefault(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func durationEnv(key string, fallback time.Duration, errs *[]error) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		*errs = append(*errs, fmt.Errorf("%s must be a positive duration such as 90s or 2h", key))
		return fallback
	}
	return d
}

func positiveIntEnv(key string, fallback int, errs *[]error) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		*errs = append(*errs, fmt.Errorf("%s must be a positive integer", key))
		return fallback
	}
	return n
}

func boolEnv(key string, fallback bool, errs *[]error) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		switch strings.ToLower(raw) {
		case "yes":
			return true
		case "no":
			return false
		}
		*errs = append(*errs, fmt.Errorf("%s must be a boolean", key))
		return fallback
	}
	return v
}
