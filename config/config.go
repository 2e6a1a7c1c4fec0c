package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"contact-backend/utils"
)

const (
	defaultPort            = "8080"
	defaultBodyLimitMB     = 4
	defaultRateLimitMax    = 60
	defaultRateLimitWindow = 60
	// Site origins allowed to call the API from a browser.
	defaultAllowedOrigins = "https://www.hoamx.com, https://hoamx.com"
)

type Config struct {
	DatabaseURL     string
	HealthToken     string
	Port            string
	AllowedOrigins  string
	BodyLimitBytes  int
	RateLimitMax    int
	RateLimitWindow time.Duration
}

// Load reads the environment (plus an optional .env file) into a Config.
// A missing .env is not an error; containerized deploys set real env vars.
// DATABASE_URL absence is not checked here: the database layer surfaces it
// lazily so the process still boots without configuration.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		DatabaseURL:     strings.TrimSpace(os.Getenv("DATABASE_URL")),
		HealthToken:     strings.TrimSpace(os.Getenv("HEALTHCHECK_TOKEN")),
		Port:            getEnvOrDefault("PORT", defaultPort),
		AllowedOrigins:  getEnvOrDefault("ALLOWED_ORIGINS", defaultAllowedOrigins),
		RateLimitMax:    utils.ParseIntDefault(os.Getenv("RATE_LIMIT_MAX"), defaultRateLimitMax),
		RateLimitWindow: time.Duration(utils.ParseIntDefault(os.Getenv("RATE_LIMIT_WINDOW_SECONDS"), defaultRateLimitWindow)) * time.Second,
	}

	// Fiber's default BodyLimit is 4MB; allow overriding in bytes or MB.
	cfg.BodyLimitBytes = utils.ParseIntDefault(os.Getenv("BODY_LIMIT_BYTES"), 0)
	if cfg.BodyLimitBytes <= 0 {
		cfg.BodyLimitBytes = utils.ParseIntDefault(os.Getenv("BODY_LIMIT_MB"), defaultBodyLimitMB) * 1024 * 1024
	}

	return cfg
}

func getEnvOrDefault(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}
