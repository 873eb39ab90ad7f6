package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Env   string
	Port  int
	DBURL string

	// Token service. The secret is required and must never be logged.
	JWTSecret string
	TokenTTL  time.Duration

	// Payment-proof upload storage.
	UploadDir      string
	MaxUploadBytes int64

	// Static payer identity printed on every receipt.
	PayerName  string
	PayerEmail string

	// Optional collaborators; empty means disabled.
	RedisAddr    string
	OTELEndpoint string

	AdminEmail    string
	AdminPassword string
	AdminName     string
}

func Load() (Config, error) {
	secret := os.Getenv("JWT_SECRET")

	if secret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}

	cfg := Config{
		Env:   getEnv("APP_ENV", "dev"),
		Port:  getEnvInt("PORT", 8080),
		DBURL: buildDBURL(),

		JWTSecret: secret,
		TokenTTL:  getEnvDuration("TOKEN_TTL", 24*time.Hour),

		UploadDir:      getEnv("UPLOAD_DIR", "./uploads"),
		MaxUploadBytes: int64(getEnvInt("MAX_UPLOAD_BYTES", 25*1024*1024)),

		PayerName:  getEnv("RECEIPT_PAYER_NAME", "Suphanat Bamrungna"),
		PayerEmail: getEnv("RECEIPT_PAYER_EMAIL", "suphanat@gmail.com"),

		RedisAddr:    getEnv("REDIS_ADDR", ""),
		OTELEndpoint: getEnv("OTEL_EXPORTER_ENDPOINT", ""),

		AdminEmail:    getEnv("ADMIN_EMAIL", ""),
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),
		AdminName:     getEnv("ADMIN_NAME", "Administrator"),
	}

	return cfg, nil
}

func buildDBURL() string {
	host := getEnv("DB_HOST", "127.0.0.1")
	port := getEnv("DB_PORT", "5432")
	user := getEnv("DB_USER", "billing")
	pass := getEnv("DB_PASSWORD", "billing")
	name := getEnv("DB_NAME", "billing")
	ssl := getEnv("DB_SSLMODE", "disable")

	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=" + ssl
}

func WithTimeout(duration time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), duration)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		num, err := strconv.Atoi(v)

		if err != nil {
			return fallback
		}

		return num
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)

		if err != nil {
			return fallback
		}

		return d
	}
	return fallback
}
