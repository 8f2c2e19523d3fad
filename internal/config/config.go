package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	MediumDriverFile     = "file"
	MediumDriverMemory   = "memory"
	MediumDriverRedis    = "redis"
	MediumDriverPostgres = "postgres"
)

type Config struct {
	Environment string
	Server      ServerConfig
	Medium      MediumConfig
	Database    DatabaseConfig
	Redis       RedisConfig
	JWT         JWTConfig
	RateLimit   RateLimitConfig
	Log         LogConfig
}

type ServerConfig struct {
	Port         int
	Host         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type MediumConfig struct {
	Driver  string
	DataDir string
}

type DatabaseConfig struct {
	DSN string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret    string
	AccessTTL time.Duration
	Issuer    string
}

type RateLimitConfig struct {
	Requests int
	Window   time.Duration
}

type LogConfig struct {
	Level string
}

func Load() (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	cfg := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Server: ServerConfig{
			Port:         getEnvAsInt("SERVER_PORT", 8080),
			Host:         getEnv("SERVER_HOST", "0.0.0.0"),
			ReadTimeout:  getEnvAsDuration("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout: getEnvAsDuration("SERVER_WRITE_TIMEOUT", 15*time.Second),
		},
		Medium: MediumConfig{
			Driver:  getEnv("MEDIUM_DRIVER", MediumDriverFile),
			DataDir: getEnv("MEDIUM_DATA_DIR", "./data"),
		},
		Database: DatabaseConfig{
			DSN: getEnv("DATABASE_DSN", ""),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			Secret:    getEnv("JWT_SECRET", "change-me-in-production"),
			AccessTTL: getEnvAsDuration("JWT_ACCESS_TTL", 24*time.Hour),
			Issuer:    getEnv("JWT_ISSUER", "talent-messenger"),
		},
		RateLimit: RateLimitConfig{
			Requests: getEnvAsInt("RATE_LIMIT_REQUESTS", 100),
			Window:   getEnvAsDuration("RATE_LIMIT_WINDOW", time.Minute),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Medium.Driver {
	case MediumDriverFile, MediumDriverMemory, MediumDriverRedis, MediumDriverPostgres:
	default:
		return fmt.Errorf("unknown medium driver %q", c.Medium.Driver)
	}
	if c.Medium.Driver == MediumDriverFile && c.Medium.DataDir == "" {
		return fmt.Errorf("MEDIUM_DATA_DIR must be set for the file driver")
	}
	if c.Medium.Driver == MediumDriverPostgres && c.Database.DSN == "" {
		return fmt.Errorf("DATABASE_DSN must be set for the postgres driver")
	}
	if c.Medium.Driver == MediumDriverRedis && c.Redis.Addr == "" {
		return fmt.Errorf("REDIS_ADDR must be set for the redis driver")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT secret must be set")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}
