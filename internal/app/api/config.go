package api

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"go.temporal.io/sdk/client"
)

// DefaultRadiusKm is the store search radius when DEFAULT_RADIUS_KM is unset.
const DefaultRadiusKm = 10.0

// Config carries environment-driven settings for the API and worker processes.
type Config struct {
	Port               string
	PostgresDSN        string
	TemporalAddress    string
	TemporalNamespace  string
	TemporalDisabled   bool
	CatalogSeedFile    string
	CORSAllowedOrigins []string
	DefaultRadiusKm    float64
	LogLevel           string
	Environment        string
}

// TemporalEnabled reports whether orders should be placed through Temporal workflows.
func (c Config) TemporalEnabled() bool {
	return c.TemporalAddress != "" && !c.TemporalDisabled
}

// LoadConfig reads a .env file when present, then environment variables,
// applies defaults, and validates basic constraints.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	cfg := Config{
		Port:               envDefault("PORT", "8080"),
		PostgresDSN:        strings.TrimSpace(os.Getenv("POSTGRES_DSN")),
		TemporalAddress:    strings.TrimSpace(os.Getenv("TEMPORAL_ADDRESS")),
		TemporalNamespace:  envDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace),
		TemporalDisabled:   isTruthy(os.Getenv("TEMPORAL_DISABLED")),
		CatalogSeedFile:    strings.TrimSpace(os.Getenv("CATALOG_SEED_FILE")),
		CORSAllowedOrigins: splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
		DefaultRadiusKm:    DefaultRadiusKm,
		LogLevel:           envDefault("LOG_LEVEL", "info"),
		Environment:        envDefault("ENVIRONMENT", "local"),
	}
	if port, err := strconv.Atoi(cfg.Port); err != nil || port <= 0 || port > 65535 {
		return Config{}, fmt.Errorf("PORT must be a valid TCP port")
	}
	if raw := strings.TrimSpace(os.Getenv("DEFAULT_RADIUS_KM")); raw != "" {
		radius, err := strconv.ParseFloat(raw, 64)
		if err != nil || radius <= 0 || math.IsInf(radius, 0) || math.IsNaN(radius) {
			return Config{}, fmt.Errorf("DEFAULT_RADIUS_KM must be a positive number")
		}
		cfg.DefaultRadiusKm = radius
	}
	return cfg, nil
}

func envDefault(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func isTruthy(value string) bool {
	value = strings.TrimSpace(strings.ToLower(value))
	return value == "1" || value == "true" || value == "yes"
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
