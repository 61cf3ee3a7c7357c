package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
)

var ErrMissingJWTSecret = errors.New("config: JWT_SECRET is required")

type Config struct {
	Port     string
	AppEnv   string
	LogLevel string

	StoreBackend   string
	AllowAnonymous bool

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	RedisHost      string
	RedisPort      string
	RedisPassword  string
	RedisDB        int
	RedisNamespace string

	SQLitePath string

	JWTSecret string
	JWTIssuer string
	TokenTTL  time.Duration

	MQTTBrokerURL string
	MQTTClientID  string

	Timezone        *time.Location
	NominatimURL    string
	AladhanURL      string
	ProviderTimeout time.Duration
	TimingsCacheTTL time.Duration

	RateLimit int
}

// Load reads the environment, optionally seeded from a .env file.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file, using environment variables")
	}

	cfg := &Config{
		Port:     getEnv("PORT", "8080"),
		AppEnv:   getEnv("APP_ENV", "production"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		StoreBackend: strings.ToLower(getEnv("STORE_BACKEND", BackendMemory)),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "salat_user"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "salat_db"),

		RedisHost:      getEnv("REDIS_HOST", ""),
		RedisPort:      getEnv("REDIS_PORT", "6379"),
		RedisPassword:  getEnv("REDIS_PASSWORD", ""),
		RedisNamespace: getEnv("REDIS_NAMESPACE", "salat:"),

		SQLitePath: getEnv("SQLITE_PATH", "salat.db"),

		JWTSecret: getEnv("JWT_SECRET", ""),
		JWTIssuer: getEnv("JWT_ISSUER", "salat-sync-engine"),

		MQTTBrokerURL: getEnv("MQTT_BROKER_URL", ""),
		MQTTClientID:  getEnv("MQTT_CLIENT_ID", "salat-sync-engine"),

		NominatimURL: getEnv("NOMINATIM_URL", "https://nominatim.openstreetmap.org"),
		AladhanURL:   getEnv("ALADHAN_URL", "https://api.aladhan.com"),
	}

	var err error
	if cfg.AllowAnonymous, err = strconv.ParseBool(getEnv("ALLOW_ANONYMOUS", "false")); err != nil {
		return nil, fmt.Errorf("config: ALLOW_ANONYMOUS: %w", err)
	}
	if cfg.RedisDB, err = strconv.Atoi(getEnv("REDIS_DB", "0")); err != nil {
		return nil, fmt.Errorf("config: REDIS_DB: %w", err)
	}
	if cfg.RateLimit, err = strconv.Atoi(getEnv("RATE_LIMIT", "100")); err != nil {
		return nil, fmt.Errorf("config: RATE_LIMIT: %w", err)
	}
	if cfg.TokenTTL, err = time.ParseDuration(getEnv("TOKEN_TTL", "72h")); err != nil {
		return nil, fmt.Errorf("config: TOKEN_TTL: %w", err)
	}
	if cfg.ProviderTimeout, err = time.ParseDuration(getEnv("PROVIDER_TIMEOUT", "10s")); err != nil {
		return nil, fmt.Errorf("config: PROVIDER_TIMEOUT: %w", err)
	}
	if cfg.TimingsCacheTTL, err = time.ParseDuration(getEnv("TIMINGS_CACHE_TTL", "12h")); err != nil {
		return nil, fmt.Errorf("config: TIMINGS_CACHE_TTL: %w", err)
	}
	if cfg.Timezone, err = time.LoadLocation(getEnv("TIMEZONE", "UTC")); err != nil {
		return nil, fmt.Errorf("config: TIMEZONE: %w", err)
	}

	switch cfg.StoreBackend {
	case BackendMemory, BackendRedis, BackendPostgres, BackendSQLite:
	default:
		return nil, fmt.Errorf("config: unknown STORE_BACKEND %q", cfg.StoreBackend)
	}
	if cfg.StoreBackend == BackendRedis && cfg.RedisHost == "" {
		cfg.RedisHost = "localhost"
	}

	if cfg.JWTSecret == "" {
		return nil, ErrMissingJWTSecret
	}

	return cfg, nil
}

func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
}

// SetupLogger configures the global zerolog logger. Development gets the
// human-readable console writer, everything else JSON on stdout.
func (c *Config) SetupLogger() {
	level, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339

	if c.AppEnv == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen})
		return
	}
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Str("service", "salat-sync-engine").Logger()
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
