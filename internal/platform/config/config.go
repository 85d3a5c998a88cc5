package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const defaultJWTSecret = "a-very-secret-key-should-be-longer-and-random"

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	DBMaxConns    int32
	Port          string
	IsProduction  bool
	EnableDBCheck bool
	JWTSecret     string
	JWTIssuer     string

	// Redis is optional; without it the ledger lock is skipped and summaries are not cached.
	RedisURL          string
	LedgerLockTTL     time.Duration
	LedgerLockRetries int
	LedgerLockBackoff time.Duration
	SummaryCacheTTL   time.Duration

	RateLimit          string `mapstructure:"RATE_LIMIT"` // ulule format, e.g. "100-M"
	CORSAllowedOrigins []string

	// BusinessLocation is the zone in which "today" is evaluated for PTP buckets and sweeps.
	BusinessLocation     *time.Location
	OverdueSweepSchedule string

	PosthogAPIKey   string
	PosthogEndpoint string

	ActivityDefaultLimit     int
	ActivityDefaultSinceDays int
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PGSQL_MAX_CONNS", 0)
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("JWT_SECRET", defaultJWTSecret)
	viper.SetDefault("JWT_ISSUER", "")
	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("LEDGER_LOCK_TTL", "10s")
	viper.SetDefault("LEDGER_LOCK_RETRIES", 5)
	viper.SetDefault("LEDGER_LOCK_BACKOFF", "100ms")
	viper.SetDefault("SUMMARY_CACHE_TTL", "60s")
	viper.SetDefault("RATE_LIMIT", "300-M")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("BUSINESS_TIMEZONE", "Asia/Kolkata")
	viper.SetDefault("OVERDUE_SWEEP_SCHEDULE", "0 5 0 * * *")
	viper.SetDefault("POSTHOG_API_KEY", "")
	viper.SetDefault("POSTHOG_ENDPOINT", "https://us.i.posthog.com")
	viper.SetDefault("ACTIVITY_DEFAULT_LIMIT", 50)
	viper.SetDefault("ACTIVITY_DEFAULT_SINCE_DAYS", 30)

	// Environment variables override defaults and .env values.
	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}
	cfg.DBMaxConns = viper.GetInt32("PGSQL_MAX_CONNS")

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" || cfg.JWTSecret == defaultJWTSecret {
		cfg.JWTSecret = defaultJWTSecret // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	cfg.RedisURL = viper.GetString("REDIS_URL")
	if cfg.RedisURL == "" {
		log.Println("Warning: REDIS_URL not set. Ledger locks and summary caching are disabled.")
	}
	cfg.LedgerLockTTL = durationOrDefault("LEDGER_LOCK_TTL", 10*time.Second)
	cfg.LedgerLockRetries = viper.GetInt("LEDGER_LOCK_RETRIES")
	if cfg.LedgerLockRetries < 0 {
		cfg.LedgerLockRetries = 0
	}
	cfg.LedgerLockBackoff = durationOrDefault("LEDGER_LOCK_BACKOFF", 100*time.Millisecond)
	cfg.SummaryCacheTTL = durationOrDefault("SUMMARY_CACHE_TTL", time.Minute)

	cfg.RateLimit = viper.GetString("RATE_LIMIT")
	cfg.CORSAllowedOrigins = splitList(viper.GetString("CORS_ALLOWED_ORIGINS"))

	tz := viper.GetString("BUSINESS_TIMEZONE")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		log.Printf("Warning: Invalid value for BUSINESS_TIMEZONE ('%s'). Defaulting to UTC.\n", tz)
		loc = time.UTC
	}
	cfg.BusinessLocation = loc
	cfg.OverdueSweepSchedule = viper.GetString("OVERDUE_SWEEP_SCHEDULE")

	cfg.PosthogAPIKey = viper.GetString("POSTHOG_API_KEY")
	cfg.PosthogEndpoint = viper.GetString("POSTHOG_ENDPOINT")

	cfg.ActivityDefaultLimit = viper.GetInt("ACTIVITY_DEFAULT_LIMIT")
	cfg.ActivityDefaultSinceDays = viper.GetInt("ACTIVITY_DEFAULT_SINCE_DAYS")

	return cfg, nil
}

// durationOrDefault parses key as a time.Duration, falling back to def with a warning.
func durationOrDefault(key string, def time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, def)
		}
		return def
	}
	return d
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
