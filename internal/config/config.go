// Package config handles application configuration via environment variables.
package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configurable values for the app.
type Config struct {
	Env                     string
	Port                    string
	DatabaseURL             string
	DBMaxConns              int32
	RateLimitRPS            float64
	RateLimitBurst          int
	MetricsUser             string
	MetricsPass             string
	DefaultUTCOffsetMinutes int
	Cloudinary              CloudinaryConfig
}

const DefaultCloudinaryFolder = "early-wakeup"

type CloudinaryConfig struct {
	CloudName string
	APIKey    string
	APISecret string
	Folder    string
}

// Validate reports every missing credential at once.
func (c CloudinaryConfig) Validate() error {
	var missing []string
	if c.CloudName == "" {
		missing = append(missing, "CLOUDINARY_CLOUD_NAME: required")
	}
	if c.APIKey == "" {
		missing = append(missing, "CLOUDINARY_API_KEY: required")
	}
	if c.APISecret == "" {
		missing = append(missing, "CLOUDINARY_API_SECRET: required")
	}
	if len(missing) > 0 {
		return fmt.Errorf("Invalid environment configuration: %s", strings.Join(missing, "; "))
	}
	return nil
}

// LoadDotEnv loads .env.local for local development and falls back to .env.
// Missing files are not an error.
func LoadDotEnv() {
	if err := godotenv.Load(".env.local"); err != nil {
		_ = godotenv.Load()
	}
}

// Load reads environment variables and populates a Config struct.
func Load() (*Config, error) {
	maxConns, err := strconv.Atoi(getEnv("DB_MAX_CONNS", "25"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_CONNS: %w", err)
	}

	rps, err := strconv.ParseFloat(getEnv("RATE_LIMIT_RPS", "5"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_RPS: %w", err)
	}

	burst, err := strconv.Atoi(getEnv("RATE_LIMIT_BURST", "30"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_BURST: %w", err)
	}

	// Salt Lake City (UTC-7) was the only timezone before offsets were stored.
	defaultOffset, err := strconv.Atoi(getEnv("DEFAULT_UTC_OFFSET_MINUTES", "-420"))
	if err != nil {
		return nil, fmt.Errorf("invalid DEFAULT_UTC_OFFSET_MINUTES: %w", err)
	}

	folder := getEnv("CLOUDINARY_FOLDER", "")
	if strings.TrimSpace(folder) == "" {
		folder = DefaultCloudinaryFolder
	}

	return &Config{
		Env:                     getEnv("ENV", "development"),
		Port:                    getEnv("PORT", "3333"),
		DatabaseURL:             getEnv("DATABASE_URL", "data/habits.db"),
		DBMaxConns:              int32(maxConns),
		RateLimitRPS:            rps,
		RateLimitBurst:          burst,
		MetricsUser:             getEnv("METRICS_USER", ""),
		MetricsPass:             getEnv("METRICS_PASS", ""),
		DefaultUTCOffsetMinutes: defaultOffset,
		Cloudinary: CloudinaryConfig{
			CloudName: getEnv("CLOUDINARY_CLOUD_NAME", ""),
			APIKey:    getEnv("CLOUDINARY_API_KEY", ""),
			APISecret: getEnv("CLOUDINARY_API_SECRET", ""),
			Folder:    strings.TrimSpace(folder),
		},
	}, nil
}

var (
	surroundingQuotes = regexp.MustCompile(`^["']|["']$`)
	lineBreaks        = regexp.MustCompile(`[\r\n]+`)
)

// CleanEnvValue strips wrapping quotes and stray line breaks that hosting
// dashboards tend to paste into secrets.
func CleanEnvValue(value string) string {
	value = strings.TrimSpace(value)
	value = surroundingQuotes.ReplaceAllString(value, "")
	value = lineBreaks.ReplaceAllString(value, "")
	return strings.TrimSpace(value)
}

func getEnv(key, fallback string) string {
	val := os.Getenv(key)
	if strings.HasPrefix(key, "DATABASE_") || strings.HasPrefix(key, "CLOUDINARY_") {
		val = CleanEnvValue(val)
	}
	if val != "" {
		return val
	}
	return fallback
}
