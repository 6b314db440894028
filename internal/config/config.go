package config

import (
	"errors"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration. It is loaded once in main and
// injected into the pieces that need it; nothing below main reads the
// environment directly.
type Config struct {
	Port        string
	DatabaseURL string

	JWTSecret string

	ResendAPIKey string
	EmailFrom    string

	AWSRegion      string
	AWSEndpointURL string // empty in prod, set for MinIO/LocalStack in dev
	AWSAccessKeyID string
	AWSSecretKey   string
	S3Bucket       string
	S3PublicBase   string // base URL for public object links

	PinTTL time.Duration
}

// Load reads .env if present, then the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:           getenv("PORT", "8080"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		JWTSecret:      getenv("JWT_SECRET", "dev-secret-please-change"),
		ResendAPIKey:   os.Getenv("RESEND_API_KEY"),
		EmailFrom:      getenv("EMAIL_FROM", "PureBreed Pork <onboarding@resend.dev>"),
		AWSRegion:      getenv("AWS_REGION", "af-south-1"),
		AWSEndpointURL: os.Getenv("AWS_ENDPOINT_URL"),
		AWSAccessKeyID: os.Getenv("AWS_ACCESS_KEY_ID"),
		AWSSecretKey:   os.Getenv("AWS_SECRET_ACCESS_KEY"),
		S3Bucket:       getenv("S3_BUCKET", "product-images"),
		S3PublicBase:   os.Getenv("S3_PUBLIC_BASE"),
		PinTTL:         10 * time.Minute,
	}

	if cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL not set")
	}
	if cfg.ResendAPIKey == "" {
		return nil, errors.New("RESEND_API_KEY not set")
	}
	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
