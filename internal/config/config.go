package config

import (
	"log"
	"os"
	"strings"
	"time"
)

// Config holds runtime configuration shared across the application.
type Config struct {
	Addr             string
	MongoURI         string
	MongoDatabase    string
	StoreCollection  string
	ReviewCollection string
	UserCollection   string
	Timeout          time.Duration
	ServerLog        *log.Logger
	JWTSecret        []byte
	JWTIssuer        string
	JWTAudience      string
	AllowedOrigins   []string
}

// Load reads environment variables and returns a fully populated Config.
func Load() Config {
	timeout := 10 * time.Second
	if v := os.Getenv("MONGO_CONNECT_TIMEOUT"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			timeout = parsed
		}
	}

	secret := strings.TrimSpace(os.Getenv("AUTH_JWT_SECRET"))
	if secret == "" {
		log.Fatal("AUTH_JWT_SECRET must be configured")
	}

	cfg := Config{
		Addr:             envOrDefault("HTTP_ADDR", ":8080"),
		MongoURI:         envOrDefault("MONGO_URI", "mongodb://mongo:27017"),
		MongoDatabase:    envOrDefault("MONGO_DB", "tastetrail"),
		StoreCollection:  envOrDefault("STORE_COLLECTION", "stores"),
		ReviewCollection: envOrDefault("REVIEW_COLLECTION", "reviews"),
		UserCollection:   envOrDefault("USER_COLLECTION", "users"),
		Timeout:          timeout,
		ServerLog:        log.New(os.Stdout, "[tastetrail-api] ", log.LstdFlags|log.Lshortfile),
		JWTSecret:        []byte(secret),
		JWTIssuer:        envOrDefault("AUTH_JWT_ISSUER", "tastetrail-auth"),
		JWTAudience:      strings.TrimSpace(os.Getenv("AUTH_JWT_AUDIENCE")),
		AllowedOrigins:   parseList("API_ALLOWED_ORIGINS", []string{"*"}),
	}

	return cfg
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseList(key string, fallback []string) []string {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			values = append(values, part)
		}
	}

	if len(values) == 0 {
		return fallback
	}
	return values
}
