package config

import (
	"os"
	"strings"
)

// Config holds all runtime settings, loaded from the environment.
type Config struct {
	MongoURI            string
	PostgresURI         string
	RedisURI            string
	Port                string
	Environment         string // ENV: production, development, etc.
	Host                string // Raw HOST env (e.g. https://api.solacejournal.app)
	AllowedHost         string // Hostname only, for the production host check
	AllowedOrigins      []string
	EncryptionKey       string
	CloudinaryName      string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string
}

// Load reads configuration from environment variables with development
// defaults. MONGODB_URI may be empty: the server then falls back to the
// in-memory entry store (dev only).
func Load() *Config {
	env := strings.ToLower(strings.TrimSpace(getEnv("ENV", "development")))
	host := getEnv("HOST", "http://localhost:8080")

	// Host check only applies in production; development skips it.
	var allowedHost string
	if env == "production" {
		allowedHost = bareHostname(host)
	}

	allowedOrigins := splitList(getEnv("ALLOWED_ORIGINS", ""))
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{getEnv("FRONTEND_URL", "http://localhost:3000")}
	}

	return &Config{
		MongoURI:            getEnv("MONGODB_URI", ""),
		PostgresURI:         getEnv("POSTGRES_URI", "postgres://localhost:5432/solace?sslmode=disable"),
		RedisURI:            getEnv("REDIS_URI", "redis://localhost:6379/0"),
		Port:                getEnv("PORT", "8080"),
		Environment:         env,
		Host:                host,
		AllowedHost:         allowedHost,
		AllowedOrigins:      allowedOrigins,
		EncryptionKey:       getEnv("ENCRYPTION_KEY", ""),
		CloudinaryName:      getEnv("CLOUDINARY_CLOUD_NAME", ""),
		CloudinaryAPIKey:    getEnv("CLOUDINARY_API_KEY", ""),
		CloudinaryAPISecret: getEnv("CLOUDINARY_API_SECRET", ""),
	}
}

// IsProduction returns true when ENV is set to "production".
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// bareHostname strips scheme, path and port from a URL-ish host string.
func bareHostname(host string) string {
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

func splitList(s string) []string {
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
