package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"
)

// Config holds all runtime configuration. It is constructed once at startup
// and treated as immutable afterwards.
type Config struct {
	Port        string
	Env         string
	DatabaseDSN string

	JWTSecret          string
	AccessTokenExpiry  time.Duration
	RefreshTokenExpiry time.Duration

	S3Endpoint  string
	S3Region    string
	S3Bucket    string
	S3AccessKey string
	S3SecretKey string
}

func Load() Config {
	cfg := Config{
		Port:        getEnv("PORT", "8080"),
		Env:         getEnv("ENV", "development"),
		DatabaseDSN: getEnv("DATABASE_DSN", "root:password@tcp(127.0.0.1:3306)/fobfinder?parseTime=true"),

		JWTSecret:          getEnv("JWT_SECRET", "dev-secret-change-in-production"),
		AccessTokenExpiry:  getMinutes("ACCESS_TOKEN_EXPIRY_MINUTES", 90),
		RefreshTokenExpiry: getMinutes("REFRESH_TOKEN_EXPIRY_MINUTES", 7*24*60),

		S3Endpoint:  getEnv("S3_ENDPOINT", ""),
		S3Region:    getEnv("S3_REGION", "us-east-1"),
		S3Bucket:    getEnv("S3_BUCKET", "fobfinder-pictures"),
		S3AccessKey: getEnv("S3_ACCESS_KEY", ""),
		S3SecretKey: getEnv("S3_SECRET_KEY", ""),
	}

	if cfg.Env == "production" && cfg.JWTSecret == "dev-secret-change-in-production" {
		slog.Error("JWT_SECRET must be set in production environment")
		os.Exit(1)
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getMinutes(key string, fallback int) time.Duration {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return time.Duration(n) * time.Minute
		}
		slog.Warn("ignoring invalid duration value", "key", key, "value", v)
	}
	return time.Duration(fallback) * time.Minute
}
