package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerPort string
	ServerHost string

	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// JWT configuration
	JWTSecret string

	// AI gateway configuration. The API key is required at startup; every
	// outbound generation, scoring and image call authenticates with it.
	AIGatewayURL string
	AIAPIKey     string
	AIModel      string
	AIImageURL   string
	AIImageModel string
	AITimeout    time.Duration

	// Image storage (optional; provider URLs are kept when unset)
	S3Bucket  string
	AWSRegion string
}

// LoadConfig reads configuration from the environment (and an optional .env
// file) into a Config and validates it for the current environment.
func LoadConfig() (*Config, error) {
	// A missing .env file is fine; the environment may be fully populated
	// already (containers, CI).
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_NAME", "recipefinder")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("AI_GATEWAY_URL", "https://openrouter.ai/api/v1")
	v.SetDefault("AI_MODEL", "google/gemini-2.5-flash")
	v.SetDefault("AI_IMAGES_URL", "https://api.openai.com/v1/images/generations")
	v.SetDefault("AI_IMAGE_MODEL", "dall-e-3")
	v.SetDefault("AI_TIMEOUT", "60s")
	v.SetDefault("AWS_REGION", "us-east-1")

	cfg := &Config{
		ServerPort:    v.GetString("SERVER_PORT"),
		ServerHost:    v.GetString("SERVER_HOST"),
		DBHost:        v.GetString("DB_HOST"),
		DBPort:        v.GetString("DB_PORT"),
		DBUser:        v.GetString("DB_USER"),
		DBPassword:    stringOrFile(v, "DB_PASSWORD"),
		DBName:        v.GetString("DB_NAME"),
		DBSSLMode:     v.GetString("DB_SSL_MODE"),
		RedisHost:     v.GetString("REDIS_HOST"),
		RedisPort:     v.GetString("REDIS_PORT"),
		RedisPassword: stringOrFile(v, "REDIS_PASSWORD"),
		RedisDB:       v.GetInt("REDIS_DB"),
		RedisURL:      v.GetString("REDIS_URL"),
		JWTSecret:     stringOrFile(v, "JWT_SECRET"),
		AIGatewayURL:  v.GetString("AI_GATEWAY_URL"),
		AIAPIKey:      stringOrFile(v, "AI_API_KEY"),
		AIModel:       v.GetString("AI_MODEL"),
		AIImageURL:    v.GetString("AI_IMAGES_URL"),
		AIImageModel:  v.GetString("AI_IMAGE_MODEL"),
		AITimeout:     v.GetDuration("AI_TIMEOUT"),
		S3Bucket:      v.GetString("S3_BUCKET_NAME"),
		AWSRegion:     v.GetString("AWS_REGION"),
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// stringOrFile resolves KEY, falling back to the contents of the file named
// by KEY_FILE (Docker secrets convention).
func stringOrFile(v *viper.Viper, key string) string {
	if val := v.GetString(key); val != "" {
		return val
	}
	path := v.GetString(key + "_FILE")
	if path == "" {
		return ""
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}
