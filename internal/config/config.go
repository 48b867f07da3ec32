package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds everything the API server and storectl read from the environment.
type Config struct {
	AppEnv   string
	HTTPAddr string
	LogLevel string

	Database DatabaseConfig

	JWTSecret   string
	JWTIssuer   string
	JWTTTLHours int

	CORSOrigin string
	UploadDir  string
	BaseURL    string

	// SeedOnStartup runs the idempotent catalog seeder before the server starts listening.
	SeedOnStartup bool
	// PublicCatalogWrites mounts the brand and shipping-zone admin routes without the admin guard.
	PublicCatalogWrites bool
}

// DevJWTSecret is the signing secret used when JWT_SECRET is unset. Validate
// rejects it outside development.
const DevJWTSecret = "change-me-in-production"

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
}

func Load() Config {
	return Config{
		AppEnv:   get("APP_ENV", "production"),
		HTTPAddr: get("HTTP_ADDR", ":8080"),
		LogLevel: get("LOG_LEVEL", ""),

		Database: DatabaseConfig{
			Host:     get("DATABASE_HOST", "127.0.0.1"),
			Port:     getInt("DATABASE_PORT", 3306),
			User:     get("DATABASE_USER", "root"),
			Password: get("DATABASE_PASSWORD", ""),
			Name:     get("DATABASE_NAME", "storefront"),
		},

		JWTSecret:   get("JWT_SECRET", DevJWTSecret),
		JWTIssuer:   get("JWT_ISSUER", "storefront"),
		JWTTTLHours: getInt("JWT_TTL_HOURS", 72),

		CORSOrigin: get("CORS_ORIGIN", "http://localhost:5173"),
		UploadDir:  get("UPLOAD_DIR", "./uploads"),
		BaseURL:    strings.TrimRight(get("BASE_URL", "http://localhost:8080"), "/"),

		SeedOnStartup:       getBool("SEED_ON_STARTUP", true),
		PublicCatalogWrites: getBool("PUBLIC_CATALOG_WRITES", false),
	}
}

func (c Config) IsDevelopment() bool {
	return c.AppEnv == "development" || c.AppEnv == "dev"
}

// Validate refuses settings that are only safe on a developer machine.
func (c Config) Validate() error {
	if c.IsDevelopment() {
		return nil
	}
	if c.JWTSecret == "" || c.JWTSecret == DevJWTSecret {
		return errors.New("JWT_SECRET must be set outside development")
	}
	return nil
}

func (c Config) JWTTTL() time.Duration {
	return time.Duration(c.JWTTTLHours) * time.Hour
}

func get(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getBool(k string, def bool) bool {
	if v := os.Getenv(k); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}
