package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	UploadDriverLocal = "local"
	UploadDriverS3    = "s3"
)

// Config holds runtime configuration sourced from env vars.
type Config struct {
	Port        string
	DatabaseURL string
	JWTSecret   string
	JWTIssuer   string
	JWTTTL      time.Duration
	CORSOrigins string
	SessionTTL  time.Duration

	UploadDriver  string
	UploadDir     string
	UploadURLPath string

	S3Bucket    string
	S3Region    string
	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string
	S3PublicURL string
}

// Load reads configuration from the environment and performs minimal validation.
func Load() (Config, error) {
	cfg := Config{
		Port:          fallback(os.Getenv("PORT"), "5000"),
		DatabaseURL:   DatabaseURL(),
		JWTSecret:     strings.TrimSpace(os.Getenv("JWT_SECRET")),
		JWTIssuer:     fallback(os.Getenv("JWT_ISSUER"), "inventory-spa"),
		JWTTTL:        minutes("JWT_TTL_MINUTES", 60),
		CORSOrigins:   fallback(os.Getenv("CORS_ALLOWED_ORIGINS"), "*"),
		SessionTTL:    minutes("SESSION_TTL_MINUTES", 60),
		UploadDriver:  strings.ToLower(fallback(os.Getenv("UPLOAD_DRIVER"), UploadDriverLocal)),
		UploadDir:     fallback(os.Getenv("UPLOAD_DIR"), "uploads"),
		UploadURLPath: "/uploads",
		S3Bucket:      strings.TrimSpace(os.Getenv("S3_BUCKET")),
		S3Region:      fallback(os.Getenv("S3_REGION"), "us-east-1"),
		S3Endpoint:    strings.TrimSpace(os.Getenv("S3_ENDPOINT")),
		S3AccessKey:   strings.TrimSpace(os.Getenv("S3_ACCESS_KEY")),
		S3SecretKey:   strings.TrimSpace(os.Getenv("S3_SECRET_KEY")),
		S3PublicURL:   strings.TrimSpace(os.Getenv("S3_PUBLIC_URL")),
	}

	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("DATABASE_URL (or DB_HOST) is required")
	}
	if cfg.JWTSecret == "" {
		return Config{}, errors.New("JWT_SECRET is required")
	}
	switch cfg.UploadDriver {
	case UploadDriverLocal:
	case UploadDriverS3:
		if cfg.S3Bucket == "" {
			return Config{}, errors.New("S3_BUCKET is required when UPLOAD_DRIVER=s3")
		}
	default:
		return Config{}, fmt.Errorf("unknown UPLOAD_DRIVER %q", cfg.UploadDriver)
	}

	return cfg, nil
}

// DatabaseURL returns DATABASE_URL, or a DSN assembled from the DB_* variables.
func DatabaseURL() string {
	if dsn := strings.TrimSpace(os.Getenv("DATABASE_URL")); dsn != "" {
		return dsn
	}
	if strings.TrimSpace(os.Getenv("DB_HOST")) == "" {
		return ""
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		fallback(os.Getenv("DB_PORT"), "5432"),
	)
}

// HTTPAddress returns the host:port pair for the HTTP server to bind to.
func (c Config) HTTPAddress() string {
	return fmt.Sprintf(":%s", c.Port)
}

func fallback(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return strings.TrimSpace(value)
}

func minutes(key string, def int) time.Duration {
	if n, err := strconv.Atoi(strings.TrimSpace(os.Getenv(key))); err == nil && n > 0 {
		return time.Duration(n) * time.Minute
	}
	return time.Duration(def) * time.Minute
}
