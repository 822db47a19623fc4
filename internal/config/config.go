package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"founderhub/internal/utils"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

// AppConfig holds everything the server needs besides the database DSN
type AppConfig struct {
	JWTSecret         string
	SessionTTL        time.Duration
	ServerPort        string
	BcryptCost        int
	RequestTimeout    time.Duration
	StorageDriver     string
	RedisURL          string
	LoginRateLimit    int
	LoginRateWindow   time.Duration
	CORSAllowedOrigin string
	IdeasCatalogPath  string
	// TrustedProxies may set X-Forwarded-For; nil means the socket peer is the client
	TrustedProxies []string
}

// LoadAppConfig loads application configuration from environment variables
func LoadAppConfig() (*AppConfig, error) {
	cfg := &AppConfig{
		JWTSecret:         os.Getenv("JWT_SECRET_KEY"),
		SessionTTL:        time.Duration(intEnv("JWT_EXPIRATION_HOURS", 24)) * time.Hour,
		ServerPort:        stringEnv("SERVER_PORT", "8080"),
		BcryptCost:        utils.NormalizeCost(intEnv("BCRYPT_COST", utils.DefaultBcryptCost)),
		RequestTimeout:    time.Duration(intEnv("REQUEST_TIMEOUT_SECONDS", 5)) * time.Second,
		StorageDriver:     stringEnv("STORAGE_DRIVER", StorageDriverPostgres),
		RedisURL:          os.Getenv("REDIS_URL"),
		LoginRateLimit:    intEnv("LOGIN_RATE_LIMIT", 5),
		LoginRateWindow:   time.Duration(intEnv("LOGIN_RATE_WINDOW_SECONDS", 60)) * time.Second,
		CORSAllowedOrigin: stringEnv("CORS_ALLOWED_ORIGIN", "*"),
		IdeasCatalogPath:  os.Getenv("IDEAS_CATALOG_PATH"),
		TrustedProxies:    listEnv("TRUSTED_PROXIES"),
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET_KEY not set in environment")
	}
	if cfg.StorageDriver != StorageDriverPostgres && cfg.StorageDriver != StorageDriverMemory {
		return nil, fmt.Errorf("unsupported STORAGE_DRIVER %q (want %s or %s)", cfg.StorageDriver, StorageDriverPostgres, StorageDriverMemory)
	}
	return cfg, nil
}

func stringEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// listEnv splits a comma separated variable, dropping blanks
func listEnv(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func intEnv(key string, def int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("Invalid %s, defaulting to %d: %v", key, def, err)
		return def
	}
	return v
}
