// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const minJWTSecretLen = 32

type Config struct {
	Port           int
	DatabaseURL    string
	DBMaxOpenConns int
	JWTSecret      string
	TokenTTL       time.Duration
	CORSOrigins    []string
	AuthRateLimit  int
	ChurchName     string
	LogLevel       string
	LogFormat      string
}

// ParseFlags builds the configuration. CLI flags win over environment
// variables, which win over values from the .env file.
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	var envFile, origins, ttl string

	fs := flag.NewFlagSet("proyek-gereja", flag.ContinueOnError)

	fs.StringVar(&envFile, "env", ".env", "Path to an optional .env file")
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.IntVar(&cfg.DBMaxOpenConns, "max-conns", 0, "Maximum open database connections")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.JWTSecret, "jwt-secret", "", "JWT signing secret (prefer env)")
	fs.StringVar(&ttl, "token-ttl", "", "Token lifetime, e.g. 24h")

	fs.StringVar(&origins, "cors-origins", "", "Comma separated allowed origins")
	fs.IntVar(&cfg.AuthRateLimit, "auth-rate", 0, "Auth requests per minute per IP")
	fs.StringVar(&cfg.ChurchName, "church", "", "Church name printed on exports")
	fs.StringVar(&cfg.LogLevel, "log-level", "", "debug, info, warn or error")
	fs.StringVar(&cfg.LogFormat, "log-format", "", "text or json")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if err := loadEnvFile(envFile); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	var err error
	if cfg.Port == 0 {
		if cfg.Port, err = envInt("PORT", 5001); err != nil {
			return Config{}, err
		}
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}
	if cfg.DBMaxOpenConns == 0 {
		if cfg.DBMaxOpenConns, err = envInt("DB_MAX_OPEN_CONNS", 10); err != nil {
			return Config{}, err
		}
	}

	if cfg.JWTSecret == "" {
		cfg.JWTSecret = os.Getenv("JWT_SECRET")
	}
	if cfg.JWTSecret == "" {
		return Config{}, errors.New("JWT_SECRET required")
	}
	if len(cfg.JWTSecret) < minJWTSecretLen {
		return Config{}, fmt.Errorf("JWT_SECRET must be at least %d characters", minJWTSecretLen)
	}

	if ttl == "" {
		ttl = os.Getenv("TOKEN_TTL")
	}
	cfg.TokenTTL = 24 * time.Hour
	if ttl != "" {
		d, err := time.ParseDuration(ttl)
		if err != nil || d <= 0 {
			return Config{}, errors.New("invalid TOKEN_TTL")
		}
		cfg.TokenTTL = d
	}

	if origins == "" {
		origins = os.Getenv("CORS_ORIGINS")
	}
	cfg.CORSOrigins = splitList(origins)
	if len(cfg.CORSOrigins) == 0 {
		cfg.CORSOrigins = []string{"*"}
	}

	if cfg.AuthRateLimit == 0 {
		if cfg.AuthRateLimit, err = envInt("AUTH_RATE_LIMIT", 20); err != nil {
			return Config{}, err
		}
	}

	cfg.ChurchName = firstNonEmpty(cfg.ChurchName, os.Getenv("CHURCH_NAME"), "GEREJA XYZ")
	cfg.LogLevel = firstNonEmpty(cfg.LogLevel, os.Getenv("LOG_LEVEL"), "info")
	cfg.LogFormat = firstNonEmpty(cfg.LogFormat, os.Getenv("LOG_FORMAT"), "text")

	return cfg, nil
}

// loadEnvFile reads KEY=VALUE pairs without overriding variables that are
// already set. A missing file is not an error.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	err := godotenv.Load(path)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("loading %s: %w", path, err)
}

func envInt(key string, def int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s env variable", key)
	}
	return n, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
