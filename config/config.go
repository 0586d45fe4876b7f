package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Repository drivers
const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

type Config struct {
	Port     string
	Env      string
	LogLevel string
	APIURL   string
	// Storage
	RepositoryDriver string
	DBUrl            string
	DBAutoMigrate    bool
	// DB Config
	DBMaxConns        int32
	DBMinConns        int32
	DBMaxConnIdleTime time.Duration
	// HTTP
	AllowedOrigin  string
	RequestTimeout time.Duration
	RateLimitRPS   float64
	RateLimitBurst int
	// Cache
	CacheProductTTL time.Duration
}

func LoadConfig() *Config {
	// 1. Check if a specific config file is requested via env var
	configFile := os.Getenv("CONFIG_FILE")
	if configFile != "" {
		if err := godotenv.Load(configFile); err != nil {
			log.Printf("Warning: Failed to load config file '%s': %v", configFile, err)
		} else {
			log.Printf("Loaded configuration from %s", configFile)
		}
	} else {
		// 2. Default fallback: .env for local dev. Containers rely on system env vars.
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file found or error loading it, relying on system env vars")
		}
	}

	return FromEnv()
}

// FromEnv builds a Config from the process environment only.
func FromEnv() *Config {
	port := getEnv("PORT", "3333")
	return &Config{
		Port:     port,
		Env:      getEnv("ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		APIURL:   getEnv("API_URL", "http://localhost:"+port),

		RepositoryDriver: getEnv("REPOSITORY_DRIVER", DriverPostgres),
		DBUrl:            getEnv("DB_DSN", ""),
		DBAutoMigrate:    getBoolEnv("DB_AUTO_MIGRATE", false),

		DBMaxConns:        getInt32Env("DB_MAX_CONNS", 50),
		DBMinConns:        getInt32Env("DB_MIN_CONNS", 10),
		DBMaxConnIdleTime: getDurationEnv("DB_MAX_CONN_IDLE_TIME", time.Minute*15),

		AllowedOrigin:  getEnv("ALLOWED_ORIGIN", "http://localhost:3000"),
		RequestTimeout: getDurationEnv("REQUEST_TIMEOUT", 5*time.Second),
		RateLimitRPS:   getFloatEnv("RATE_LIMIT_RPS", 50),
		RateLimitBurst: getIntEnv("RATE_LIMIT_BURST", 100),

		CacheProductTTL: getDurationEnv("CACHE_PRODUCT_TTL", 10*time.Minute),
	}
}

func (c *Config) Validate() error {
	var errs []error

	switch c.Env {
	case "development", "production", "test":
	default:
		errs = append(errs, fmt.Errorf("ENV must be one of development, production, test (got %q)", c.Env))
	}

	switch c.RepositoryDriver {
	case DriverPostgres:
		if c.DBUrl == "" {
			errs = append(errs, errors.New("DB_DSN environment variable is required for the postgres driver"))
		}
		if c.DBMinConns > c.DBMaxConns {
			errs = append(errs, errors.New("DB_MIN_CONNS must not exceed DB_MAX_CONNS"))
		}
	case DriverMemory:
	default:
		errs = append(errs, fmt.Errorf("REPOSITORY_DRIVER must be postgres or memory (got %q)", c.RepositoryDriver))
	}

	if c.RequestTimeout <= 0 {
		errs = append(errs, errors.New("REQUEST_TIMEOUT must be positive"))
	}
	if c.RateLimitRPS <= 0 || c.RateLimitBurst < 1 {
		errs = append(errs, errors.New("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive"))
	}

	return errors.Join(errs...)
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
