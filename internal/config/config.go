package config

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Config holds runtime configuration sourced from env vars. It is built
// once in main and passed by value into constructors; nothing reads the
// environment after startup.
type Config struct {
	Port        string
	DatabaseURL string
	// JWTSecret is the base64-encoded HMAC signing key. It must decode
	// to at least 32 bytes.
	JWTSecret   string
	JWTTTL      time.Duration
	BcryptCost  int
	CORSOrigins []string
}

// Load reads configuration from the environment and performs minimal validation.
func Load() (Config, error) {
	cfg := Config{
		Port:        fallback(os.Getenv("PORT"), "8080"),
		DatabaseURL: strings.TrimSpace(os.Getenv("DATABASE_URL")),
		JWTSecret:   strings.TrimSpace(os.Getenv("JWT_SECRET")),
		CORSOrigins: parseCSV(fallback(os.Getenv("CORS_ALLOWED_ORIGINS"), "*")),
	}

	minutes := fallback(os.Getenv("JWT_TTL_MINUTES"), "60")
	if ttlMinutes, err := strconv.Atoi(minutes); err == nil && ttlMinutes > 0 {
		cfg.JWTTTL = time.Duration(ttlMinutes) * time.Minute
	} else {
		cfg.JWTTTL = 60 * time.Minute
	}

	cost := fallback(os.Getenv("BCRYPT_COST"), strconv.Itoa(bcrypt.DefaultCost))
	if parsed, err := strconv.Atoi(cost); err == nil && parsed >= bcrypt.MinCost && parsed <= bcrypt.MaxCost {
		cfg.BcryptCost = parsed
	} else {
		cfg.BcryptCost = bcrypt.DefaultCost
	}

	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		return Config{}, errors.New("JWT_SECRET is required")
	}
	if key, err := base64.StdEncoding.DecodeString(cfg.JWTSecret); err != nil {
		return Config{}, fmt.Errorf("JWT_SECRET must be base64-encoded: %w", err)
	} else if len(key) < 32 {
		return Config{}, errors.New("JWT_SECRET must decode to at least 32 bytes")
	}

	return cfg, nil
}

// HTTPAddress returns the host:port pair for the HTTP server to bind to.
func (c Config) HTTPAddress() string {
	return fmt.Sprintf(":%s", c.Port)
}

func fallback(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return strings.TrimSpace(value)
}

func parseCSV(input string) []string {
	parts := strings.Split(input, ",")
	var out []string
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}
