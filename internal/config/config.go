// Package config loads runtime configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	"github.com/shopspring/decimal"
)

// Config holds application configuration loaded from the environment.
type Config struct {
	AppEnv             string
	Port               string
	DatabaseURL        string
	RedisURL           string
	CORSAllowedOrigins []string

	DBMaxOpenConns int
	DBMaxIdleConns int

	JWTSecret      string
	JWTIssuer      string
	JWTAudience    string
	AccessTokenTTL time.Duration
	JWTClockSkew   time.Duration

	PreviewHMACSecret string
	PreviewTTL        time.Duration

	FreeDeliveryThreshold decimal.Decimal
	CODSurcharge          decimal.Decimal
	PlatformFee           decimal.Decimal
	DefaultTaxRate        decimal.Decimal
	Currency              string

	CatalogCacheTTL time.Duration

	EmailEnabled      bool
	EmailFrom         string
	EmailQueue        string
	EmailMaxRetry     int
	WorkerConcurrency int

	PreviewRatePerMinute int
	IdempotencyTTL       time.Duration
}

// Load reads configuration from environment variables and optional .env files.
func Load() (*Config, error) {
	_ = godotenv.Load()

	k := koanf.New(".")
	if err := k.Load(env.Provider("", ".", func(s string) string { return s }), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	cfg := &Config{
		AppEnv:             valueOrDefault(k.String("APP_ENV"), "development"),
		Port:               valueOrDefault(k.String("PORT"), "8080"),
		DatabaseURL:        k.String("DATABASE_URL"),
		RedisURL:           k.String("REDIS_URL"),
		CORSAllowedOrigins: splitAndTrim(k.String("CORS_ALLOWED_ORIGINS")),

		DBMaxOpenConns: parseInt(k.String("DB_MAX_OPEN_CONNS"), 0),
		DBMaxIdleConns: parseInt(k.String("DB_MAX_IDLE_CONNS"), 0),

		JWTSecret:      k.String("JWT_SECRET"),
		JWTIssuer:      valueOrDefault(k.String("JWT_ISSUER"), "backend-bazaar"),
		JWTAudience:    valueOrDefault(k.String("JWT_AUDIENCE"), "bazaar-frontend"),
		AccessTokenTTL: parseDuration(k.String("ACCESS_TOKEN_TTL"), "15m"),
		JWTClockSkew:   parseDuration(k.String("JWT_CLOCK_SKEW"), "30s"),

		PreviewHMACSecret: k.String("PREVIEW_HMAC_SECRET"),
		PreviewTTL:        parseDuration(k.String("PREVIEW_TTL"), "15m"),

		FreeDeliveryThreshold: parseDecimal(k.String("PRICING_FREE_DELIVERY_THRESHOLD"), "499"),
		CODSurcharge:          parseDecimal(k.String("PRICING_COD_SURCHARGE"), "50"),
		PlatformFee:           parseDecimal(k.String("PRICING_PLATFORM_FEE"), "5"),
		DefaultTaxRate:        parseDecimal(k.String("PRICING_DEFAULT_TAX_RATE"), "18"),
		Currency:              valueOrDefault(k.String("PRICING_CURRENCY"), "INR"),

		CatalogCacheTTL: parseDuration(k.String("CATALOG_CACHE_TTL"), "5m"),

		EmailEnabled:      parseBool(k.String("EMAIL_ENABLED")),
		EmailFrom:         valueOrDefault(k.String("EMAIL_FROM"), "orders@bazaar.example"),
		EmailQueue:        valueOrDefault(k.String("EMAIL_QUEUE"), "email"),
		EmailMaxRetry:     parseInt(k.String("EMAIL_MAX_RETRY"), 5),
		WorkerConcurrency: parseInt(k.String("WORKER_CONCURRENCY"), 10),

		PreviewRatePerMinute: parseInt(k.String("RATE_LIMIT_PREVIEW_PER_MINUTE"), 60),
		IdempotencyTTL:       parseDuration(k.String("IDEMPOTENCY_TTL"), "24h"),
	}

	if cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL is required")
	}
	if cfg.RedisURL == "" {
		return nil, errors.New("REDIS_URL is required")
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}
	if cfg.PreviewHMACSecret == "" {
		return nil, errors.New("PREVIEW_HMAC_SECRET is required")
	}
	if cfg.FreeDeliveryThreshold.IsNegative() || cfg.CODSurcharge.IsNegative() || cfg.PlatformFee.IsNegative() {
		return nil, errors.New("pricing fees must not be negative")
	}
	if cfg.DefaultTaxRate.IsNegative() || cfg.DefaultTaxRate.GreaterThan(decimal.NewFromInt(100)) {
		return nil, errors.New("PRICING_DEFAULT_TAX_RATE must be between 0 and 100")
	}

	return cfg, nil
}

// HTTPAddr returns the address the HTTP server should bind to.
func (c *Config) HTTPAddr() string {
	port := strings.TrimSpace(c.Port)
	if port == "" {
		port = "8080"
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return ":" + port
}

func splitAndTrim(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func valueOrDefault(value, fallback string) string {
	if strings.TrimSpace(value) != "" {
		return value
	}
	return fallback
}

func parseDuration(value, fallback string) time.Duration {
	base := strings.TrimSpace(value)
	if base == "" {
		base = fallback
	}
	d, err := time.ParseDuration(base)
	if err != nil {
		d, _ = time.ParseDuration(fallback)
	}
	return d
}

func parseBool(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

func parseInt(value string, fallback int) int {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fallback
	}
	n, err := strconv.Atoi(trimmed)
	if err != nil {
		return fallback
	}
	return n
}

func parseDecimal(value, fallback string) decimal.Decimal {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		trimmed = fallback
	}
	d, err := decimal.NewFromString(trimmed)
	if err != nil {
		d, _ = decimal.NewFromString(fallback)
	}
	return d
}

// MustLoad behaves like Load but panics on error. Useful for tests and command entrypoints.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

// LoadForTests allows tests to override environment variables without touching the real environment.
func LoadForTests(env map[string]string) (*Config, error) {
	original := make(map[string]string, len(env))
	for key := range env {
		original[key] = os.Getenv(key)
		if err := setEnvVar(key, env[key]); err != nil {
			return nil, err
		}
	}
	cfg, err := Load()
	restoreErr := restoreEnv(original)
	if err != nil {
		return nil, err
	}
	return cfg, restoreErr
}

func setEnvVar(key, value string) error {
	if value == "" {
		return os.Unsetenv(key)
	}
	return os.Setenv(key, value)
}

func restoreEnv(values map[string]string) error {
	var errs []string
	for key, value := range values {
		if err := setEnvVar(key, value); err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", key, err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("restore env: %s", strings.Join(errs, "; "))
	}
	return nil
}
