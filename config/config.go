package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port         string
	Environment  string
	DatabaseURL  string
	RedisURL     string
	JWTSecret    string
	CookieDomain string
	CORSOrigin   string

	CartTTL time.Duration

	// Fixed-window limits for the auth endpoints.
	SignInMaxAttempts int
	SignInWindow      time.Duration
	SignUpMaxAttempts int
	SignUpWindow      time.Duration

	// When true the limiter counters live in Redis instead of process memory.
	RateLimitUseRedis bool
}

func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	return Config{
		Port:         getEnv("PORT", "8080"),
		Environment:  getEnv("ENVIRONMENT", "development"),
		DatabaseURL:  getEnv("DATABASE_URL", "host=localhost user=postgres password=postgres dbname=storefront port=5432 sslmode=disable"),
		RedisURL:     getEnv("REDIS_URL", "redis://localhost:6379"),
		JWTSecret:    getEnv("JWT_SECRET", "dev-secret-change-me"),
		CookieDomain: getEnv("COOKIE_DOMAIN", "localhost"),
		CORSOrigin:   getEnv("CORS_ORIGIN", "http://localhost:3000"),

		CartTTL: time.Hour * 24 * 7, // default 7 days

		SignInMaxAttempts: getEnvInt("SIGNIN_MAX_ATTEMPTS", 5),
		SignInWindow:      getEnvDuration("SIGNIN_WINDOW", 15*time.Minute),
		SignUpMaxAttempts: getEnvInt("SIGNUP_MAX_ATTEMPTS", 1),
		SignUpWindow:      getEnvDuration("SIGNUP_WINDOW", 15*time.Minute),

		RateLimitUseRedis: getEnv("RATELIMIT_BACKEND", "memory") == "redis",
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}
