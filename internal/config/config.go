package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Supported values for STORE_DRIVER.
const (
	StoreMongo    = "mongo"
	StorePostgres = "postgres"
	StoreSQLite   = "sqlite"
)

type Config struct {
	Port           string
	Environment    string   // ENV: production, development, etc.
	Host           string   // Raw HOST env (e.g. https://api.mindjournal.app)
	AllowedHost    string   // Hostname only for strict host check (production only)
	AllowedOrigins []string // CORS: from ALLOWED_ORIGINS or FRONTEND_URL(s)
	TrustProxy     bool     // Read client IPs from X-Forwarded-For / X-Real-IP

	StoreDriver string
	MongoURI    string
	PostgresURI string
	SQLitePath  string
	RedisURI    string // optional; enables session-token auth

	JWTSecret     string
	EncryptionKey string // optional; base64 32 bytes, seals journal text at rest

	GeminiAPIKey    string
	GeminiModel     string
	YouTubeAPIKey   string
	ProviderTimeout time.Duration
}

func Load() *Config {
	env := strings.ToLower(strings.TrimSpace(getEnv("ENV", "development")))
	host := getEnv("HOST", "http://localhost:8080")

	// AllowedHost is only set in production; host check is skipped in development
	var allowedHost string
	if env == "production" {
		allowedHost = hostname(host)
	}

	allowedOrigins := parseList(getEnv("ALLOWED_ORIGINS", ""))
	if len(allowedOrigins) == 0 {
		for _, u := range []string{getEnv("FRONTEND_URL", "http://localhost:3000"), getEnv("FRONTEND_URL_2", "")} {
			u = strings.TrimSpace(u)
			if u != "" {
				allowedOrigins = append(allowedOrigins, u)
			}
		}
	}

	return &Config{
		Port:           getEnv("PORT", "8080"),
		Environment:    env,
		Host:           host,
		AllowedHost:    allowedHost,
		AllowedOrigins: allowedOrigins,
		TrustProxy:     getBool("TRUST_PROXY", false),

		StoreDriver: strings.ToLower(strings.TrimSpace(getEnv("STORE_DRIVER", StoreMongo))),
		MongoURI:    getEnv("MONGODB_URI", getEnv("MONGO_URI", "mongodb://localhost:27017/mindjournal")),
		PostgresURI: getEnv("POSTGRES_URI", "postgres://localhost:5432/mindjournal?sslmode=disable"),
		SQLitePath:  getEnv("SQLITE_PATH", "mindjournal.db"),
		RedisURI:    getEnv("REDIS_URI", ""),

		JWTSecret:     getEnv("JWT_SECRET", ""),
		EncryptionKey: getEnv("ENCRYPTION_KEY", ""),

		GeminiAPIKey:    getEnv("GEMINI_API_KEY", ""),
		GeminiModel:     getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		YouTubeAPIKey:   getEnv("YOUTUBE_API_KEY", ""),
		ProviderTimeout: getDuration("PROVIDER_TIMEOUT", 45*time.Second),
	}
}

// Validate reports configuration that would leave the server unable to serve requests.
func (c *Config) Validate() error {
	switch c.StoreDriver {
	case StoreMongo, StorePostgres, StoreSQLite:
	default:
		return fmt.Errorf("STORE_DRIVER must be one of mongo, postgres, sqlite (got %q)", c.StoreDriver)
	}
	if c.JWTSecret == "" && c.RedisURI == "" {
		return fmt.Errorf("JWT_SECRET or REDIS_URI is required to authenticate requests")
	}
	if c.ProviderTimeout <= 0 {
		return fmt.Errorf("PROVIDER_TIMEOUT must be positive")
	}
	return nil
}

// IsProduction returns true when ENV is set to "production".
func (c *Config) IsProduction() bool {
	return strings.ToLower(strings.TrimSpace(c.Environment)) == "production"
}

// hostname strips scheme, path and port from a HOST value.
func hostname(host string) string {
	for _, prefix := range []string{"https://", "http://"} {
		host = strings.TrimPrefix(host, prefix)
	}
	if idx := strings.Index(host, "/"); idx != -1 {
		host = host[:idx]
	}
	if idx := strings.Index(host, ":"); idx != -1 {
		host = host[:idx]
	}
	return strings.TrimSpace(host)
}

func parseList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBool(key string, defaultValue bool) bool {
	v, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return v
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	d, err := time.ParseDuration(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return d
}
