package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	Debug       bool
	DBUrl       string
	JWTSecret   string
	FrontendURL string

	// Blob storage: "local" keeps files under UploadDir, "s3" uses the
	// bucket settings below.
	StorageDriver string
	UploadDir     string
	S3AccessKey   string
	S3SecretKey   string
	S3Region      string
	S3Bucket      string
	S3Endpoint    string

	// External resume-matcher service; empty disables scoring.
	ScorerURL string

	// Redis (rate limiting); empty falls back to in-memory counters.
	RedisURL      string
	RedisPassword string

	RateLimitWindowSeconds int
	RateLimitThreshold     int
}

func LoadConfig() (*Config, error) {
	// Only effective locally; ignored in production when the file is absent.
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		Debug:       getEnvBool("DEBUG", false),
		DBUrl:       getEnv("DATABASE_URL", ""),
		JWTSecret:   getEnv("JWT_SECRET", ""),
		FrontendURL: strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:3000"), "/"),

		StorageDriver: getEnv("STORAGE_DRIVER", "local"),
		UploadDir:     getEnv("UPLOAD_DIR", "uploads"),
		S3AccessKey:   getEnv("S3_ACCESS_KEY_ID", ""),
		S3SecretKey:   getEnv("S3_SECRET_ACCESS_KEY", ""),
		S3Region:      getEnv("S3_REGION", "ap-south-1"),
		S3Bucket:      getEnv("S3_BUCKET", ""),
		S3Endpoint:    getEnv("S3_ENDPOINT", ""),

		ScorerURL: getEnv("SCORER_URL", ""),

		RedisURL:      getEnv("REDIS_URL", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),

		RateLimitWindowSeconds: getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),
		RateLimitThreshold:     getEnvInt("RATE_LIMIT_THRESHOLD", 100),
	}

	if cfg.DBUrl == "" {
		log.Println("WARNING: DATABASE_URL is missing. Falling back to in-memory repositories.")
	}
	if cfg.JWTSecret == "" {
		log.Println("WARNING: JWT_SECRET is missing. Authenticated endpoints will reject all tokens.")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}
