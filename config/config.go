package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Firebase  FirebaseConfig
	LLM       LLMConfig
	Storage   StorageConfig
	Uploads   UploadsConfig
	RateLimit RateLimitConfig
	App       AppConfig
}

type ServerConfig struct {
	Port           string
	AllowedOrigins []string
}

type DatabaseConfig struct {
	DSN      string
	MaxConns int
	MinConns int
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type FirebaseConfig struct {
	CredentialsPath string
}

type LLMConfig struct {
	BaseURL     string
	APIKey      string
	Model       string
	ImageAPIURL string
	ImageAPIKey string
	Timeout     time.Duration
}

type StorageConfig struct {
	Bucket  string
	Region  string
	BaseURL string
}

type UploadsConfig struct {
	Dir          string
	MaxFileSize  int64
	MaxAudioSize int64
	SweepEvery   time.Duration
	MaxAge       time.Duration
}

type RateLimitConfig struct {
	Window      time.Duration
	MaxRequests int
}

type AppConfig struct {
	Environment string
	Version     string
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:           getEnv("PORT", "8080"),
			AllowedOrigins: splitEnv("ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:3000"),
		},
		Database: DatabaseConfig{
			DSN:      getEnv("DB_DSN", ""),
			MaxConns: getEnvAsInt("DB_MAX_CONNS", 10),
			MinConns: getEnvAsInt("DB_MIN_CONNS", 2),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Firebase: FirebaseConfig{
			CredentialsPath: getEnv("FIREBASE_CREDENTIALS_PATH", ""),
		},
		LLM: LLMConfig{
			BaseURL:     getEnv("LLM_BASE_URL", "https://generativelanguage.googleapis.com/v1beta/openai"),
			APIKey:      getEnv("LLM_API_KEY", ""),
			Model:       getEnv("LLM_MODEL", "gemini-2.0-flash"),
			ImageAPIURL: getEnv("IMAGE_API_URL", "https://clipdrop-api.co"),
			ImageAPIKey: getEnv("IMAGE_API_KEY", ""),
			Timeout:     getEnvAsDuration("LLM_TIMEOUT", 60*time.Second),
		},
		Storage: StorageConfig{
			Bucket:  getEnv("STORAGE_BUCKET", ""),
			Region:  getEnv("STORAGE_REGION", "us-east-1"),
			BaseURL: getEnv("STORAGE_BASE_URL", ""),
		},
		Uploads: UploadsConfig{
			Dir:          getEnv("UPLOADS_DIR", "/tmp/uploads"),
			MaxFileSize:  getEnvAsInt64("UPLOAD_MAX_FILE_BYTES", 5*1024*1024),
			MaxAudioSize: getEnvAsInt64("UPLOAD_MAX_AUDIO_BYTES", 10*1024*1024),
			SweepEvery:   getEnvAsDuration("UPLOAD_SWEEP_EVERY", 15*time.Minute),
			MaxAge:       getEnvAsDuration("UPLOAD_MAX_AGE", time.Hour),
		},
		RateLimit: RateLimitConfig{
			Window:      getEnvAsDuration("RATE_LIMIT_WINDOW", 15*time.Minute),
			MaxRequests: getEnvAsInt("RATE_LIMIT_MAX", 100),
		},
		App: AppConfig{
			Environment: getEnv("APP_ENV", "development"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if c.Database.DSN == "" {
		return fmt.Errorf("DB_DSN is required")
	}

	if c.RateLimit.MaxRequests <= 0 {
		return fmt.Errorf("RATE_LIMIT_MAX must be positive")
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
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseInt(valueStr, 10, 64)
	if err != nil {
		log.Printf("Warning: Invalid integer for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid duration for %s, using default: %s", key, defaultValue)
		return defaultValue
	}

	return value
}

func splitEnv(key, defaultValue string) []string {
	raw := getEnv(key, defaultValue)
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
