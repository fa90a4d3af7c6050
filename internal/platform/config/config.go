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
	Port         string
	IsProduction bool
	LogLevel     string
	LogFormat    string

	// Primary store. Empty runs on the in-memory store.
	DatabaseURL   string
	EnableDBCheck bool

	// Cache store and distributed locks. Empty disables both.
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	RedisKeyPrefix string

	// Payment events. No brokers disables publishing.
	KafkaBrokers       []string
	KafkaPaymentsTopic string

	JWTSecret          string
	CORSAllowedOrigins []string
	RateLimit          string // e.g. "30-M"
	LockTTL            time.Duration
	PostingTimeout     time.Duration
	CacheRefreshEvery  time.Duration // zero disables the refresher

	CurrencySymbol  string
	CurrencyLocale  string
	DefaultPageSize int
	IDWorker        int64
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FORMAT", "json")
	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("ENABLE_DB_CHECK", true)
	viper.SetDefault("REDIS_ADDR", "")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("REDIS_KEY_PREFIX", "ledgers")
	viper.SetDefault("KAFKA_BROKERS", "")
	viper.SetDefault("KAFKA_PAYMENTS_TOPIC", "ledger.payments.posted")
	viper.SetDefault("JWT_SECRET", defaultJWTSecret)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("RATE_LIMIT", "30-M")
	viper.SetDefault("LOCK_TTL", "10s")
	viper.SetDefault("POSTING_TIMEOUT", "30s")
	viper.SetDefault("CACHE_REFRESH_MINUTES", 15)
	viper.SetDefault("CURRENCY_SYMBOL", "Rp")
	viper.SetDefault("CURRENCY_LOCALE", "id")
	viper.SetDefault("DEFAULT_PAGE_SIZE", 20)
	viper.SetDefault("ID_WORKER", 1)

	viper.AutomaticEnv()

	cfg := &Config{
		Port:               viper.GetString("PORT"),
		IsProduction:       viper.GetBool("IS_PRODUCTION"),
		LogLevel:           viper.GetString("LOG_LEVEL"),
		LogFormat:          viper.GetString("LOG_FORMAT"),
		DatabaseURL:        viper.GetString("PGSQL_URL"),
		EnableDBCheck:      viper.GetBool("ENABLE_DB_CHECK"),
		RedisAddr:          viper.GetString("REDIS_ADDR"),
		RedisPassword:      viper.GetString("REDIS_PASSWORD"),
		RedisDB:            viper.GetInt("REDIS_DB"),
		RedisKeyPrefix:     viper.GetString("REDIS_KEY_PREFIX"),
		KafkaBrokers:       splitList(viper.GetString("KAFKA_BROKERS")),
		KafkaPaymentsTopic: viper.GetString("KAFKA_PAYMENTS_TOPIC"),
		JWTSecret:          viper.GetString("JWT_SECRET"),
		CORSAllowedOrigins: splitList(viper.GetString("CORS_ALLOWED_ORIGINS")),
		RateLimit:          viper.GetString("RATE_LIMIT"),
		CurrencySymbol:     viper.GetString("CURRENCY_SYMBOL"),
		CurrencyLocale:     viper.GetString("CURRENCY_LOCALE"),
		DefaultPageSize:    viper.GetInt("DEFAULT_PAGE_SIZE"),
		IDWorker:           viper.GetInt64("ID_WORKER"),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set. Collections are kept in memory only.")
	}

	if cfg.JWTSecret == "" {
		cfg.JWTSecret = defaultJWTSecret // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	lockTTLStr := viper.GetString("LOCK_TTL")
	lockTTL, err := time.ParseDuration(lockTTLStr)
	if err != nil || lockTTL <= 0 {
		lockTTL = 10 * time.Second
		log.Printf("Warning: Invalid value for LOCK_TTL ('%s'). Defaulting to %s.\n", lockTTLStr, lockTTL)
	}
	cfg.LockTTL = lockTTL

	postingTimeoutStr := viper.GetString("POSTING_TIMEOUT")
	postingTimeout, err := time.ParseDuration(postingTimeoutStr)
	if err != nil || postingTimeout <= 0 {
		postingTimeout = 30 * time.Second
		log.Printf("Warning: Invalid value for POSTING_TIMEOUT ('%s'). Defaulting to %s.\n", postingTimeoutStr, postingTimeout)
	}
	cfg.PostingTimeout = postingTimeout

	refreshMinutes := viper.GetInt("CACHE_REFRESH_MINUTES")
	if refreshMinutes < 0 {
		log.Printf("Warning: Negative CACHE_REFRESH_MINUTES (%d). Disabling cache refresh.\n", refreshMinutes)
		refreshMinutes = 0
	}
	cfg.CacheRefreshEvery = time.Duration(refreshMinutes) * time.Minute

	if cfg.DefaultPageSize <= 0 {
		log.Printf("Warning: Invalid DEFAULT_PAGE_SIZE (%d). Defaulting to 20.\n", cfg.DefaultPageSize)
		cfg.DefaultPageSize = 20
	}

	return cfg, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
