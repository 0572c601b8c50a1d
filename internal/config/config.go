package config

import (
	"os"
	"strconv"
	"strings"
)

// Config holds runtime configuration loaded from environment variables.
type Config struct {
	DatabaseURL          string
	JWTSecret            string
	JWTIssuer            string
	TokenTTLSeconds      int64
	AdminPassword        string
	AdminEmail           string
	BrevoAPIKey          string
	NotifyTimeoutSeconds int
	MetricsDiskPath      string
	CorsOrigins          []string
}

func Load() Config {
	return Config{
		DatabaseURL:          mustEnv("DATABASE_URL"),
		JWTSecret:            mustEnv("JWT_SECRET"),
		JWTIssuer:            envOr("JWT_ISSUER", "portfolio"),
		TokenTTLSeconds:      int64(envOrInt("TOKEN_TTL_SECONDS", 28800)),
		AdminPassword:        mustEnv("ADMIN_PASSWORD"),
		AdminEmail:           envOr("ADMIN_EMAIL", ""),
		BrevoAPIKey:          envOr("BREVO_API_KEY", ""),
		NotifyTimeoutSeconds: envOrInt("NOTIFY_TIMEOUT_SECONDS", 10),
		MetricsDiskPath:      envOr("METRICS_DISK_PATH", "/"),
		CorsOrigins:          parseCSV(envOr("CORS_ORIGINS", "")),
	}
}

func mustEnv(key string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		panic("missing env var: " + key)
	}
	return value
}

func envOr(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func envOrInt(key string, fallback int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func parseCSV(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		value := strings.TrimSpace(part)
		if value != "" {
			items = append(items, value)
		}
	}
	return items
}
