package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config contains runtime configuration values.
type Config struct {
	Environment          string
	HTTPPort             string
	ServiceName          string
	SigningSecret        string
	ExternalApex         string
	AccountServiceURL    string
	CompanyServiceURL    string
	InternalAPIKey       string
	ResetTokenTTL        time.Duration
	ShortSessionTTL      time.Duration
	ResetRequestInterval time.Duration
	RedisAddr            string
	RedisPassword        string
	RedisDB              int
	RateLimitRPM         int
	TelemetryEndpoint    string
	TelemetryInsecure    bool
}

// Load reads configuration from environment variables with sane defaults.
func Load() (Config, error) {
	_ = godotenv.Load()

	signingSecret := strings.TrimSpace(os.Getenv("SIGNING_SECRET"))
	if signingSecret == "" {
		return Config{}, fmt.Errorf("SIGNING_SECRET is required")
	}
	externalApex := strings.TrimSpace(os.Getenv("EXTERNAL_APEX"))
	if externalApex == "" {
		return Config{}, fmt.Errorf("EXTERNAL_APEX is required")
	}

	cfg := Config{
		Environment:          getEnv("APP_ENV", "development"),
		HTTPPort:             getEnv("HTTP_PORT", "8080"),
		ServiceName:          getEnv("SERVICE_NAME", "valora-web"),
		SigningSecret:        signingSecret,
		ExternalApex:         externalApex,
		AccountServiceURL:    getEnv("ACCOUNT_SERVICE_URL", "http://account-service:8080"),
		CompanyServiceURL:    getEnv("COMPANY_SERVICE_URL", "http://company-service:8080"),
		InternalAPIKey:       os.Getenv("INTERNAL_API_KEY"),
		ResetTokenTTL:        getDuration("RESET_TOKEN_TTL", 48*time.Hour),
		ShortSessionTTL:      getDuration("SHORT_SESSION_TTL", 12*time.Hour),
		ResetRequestInterval: getDuration("RESET_REQUEST_INTERVAL", 5*time.Minute),
		RedisAddr:            getEnv("REDIS_ADDR", "127.0.0.1:6379"),
		RedisPassword:        os.Getenv("REDIS_PASSWORD"),
		RedisDB:              getInt("REDIS_DB", 0),
		RateLimitRPM:         getInt("RATE_LIMIT_RPM", 600),
		TelemetryEndpoint:    os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		TelemetryInsecure:    getBool("OTEL_EXPORTER_OTLP_INSECURE", true),
	}

	// A session obtained from an email link must stay short-lived.
	if cfg.ShortSessionTTL > 24*time.Hour {
		cfg.ShortSessionTTL = 24 * time.Hour
	}

	return cfg, nil
}

// Scheme returns the external URL scheme for the current environment.
func (c Config) Scheme() string {
	if c.Environment == "development" {
		return "http"
	}
	return "https"
}

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	if v, ok := os.LookupEnv(key); ok {
		d, err := time.ParseDuration(v)
		if err == nil {
			return d
		}
	}
	return def
}

func getInt(key string, def int) int {
	if v, ok := os.LookupEnv(key); ok {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getBool(key string, def bool) bool {
	if v, ok := os.LookupEnv(key); ok {
		switch strings.ToLower(v) {
		case "1", "true", "t", "yes", "y", "on":
			return true
		case "0", "false", "f", "no", "n", "off":
			return false
		}
	}
	return def
}
