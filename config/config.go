package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env   string
	HTTP  HTTPConfig
	Mongo MongoConfig
	Redis RedisConfig
	Auth  AuthConfig
	Floor FloorConfig
	Log   LogConfig
}

type HTTPConfig struct {
	Port            string
	ShutdownTimeout time.Duration
}

type MongoConfig struct {
	URI      string
	Database string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type AuthConfig struct {
	StaffUsername string
	StaffPassword string
	JWTSecret     string
	TokenTTL      time.Duration
}

type FloorConfig struct {
	BroadcastInterval time.Duration
}

type LogConfig struct {
	Level  string
	Format string
}

func Load() (*Config, error) {
	// Load .env file if exists
	_ = godotenv.Load()

	cfg := &Config{
		Env: getEnv("ENV", "development"),
		HTTP: HTTPConfig{
			Port:            getEnv("HTTP_PORT", "8080"),
			ShutdownTimeout: getEnvAsDuration("HTTP_SHUTDOWN_TIMEOUT", 30*time.Second),
		},
		Mongo: MongoConfig{
			URI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
			Database: getEnv("MONGO_DATABASE", "gamedesk"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Auth: AuthConfig{
			StaffUsername: getEnv("STAFF_USERNAME", "admin"),
			StaffPassword: getEnv("STAFF_PASSWORD", "password123"),
			JWTSecret:     getEnv("JWT_SECRET", "super-secret-key-change-in-production"),
			TokenTTL:      getEnvAsDuration("JWT_TOKEN_TTL", 12*time.Hour),
		},
		Floor: FloorConfig{
			BroadcastInterval: getEnvAsDuration("FLOOR_BROADCAST_INTERVAL", 15*time.Second),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "console"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Mongo.URI == "" {
		return fmt.Errorf("MONGO_URI must not be empty")
	}
	if c.Redis.Addr == "" {
		return fmt.Errorf("REDIS_ADDR must not be empty")
	}
	if c.Floor.BroadcastInterval <= 0 {
		return fmt.Errorf("FLOOR_BROADCAST_INTERVAL must be positive")
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return defaultVal
}

func getEnvAsDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}
