// Package config loads the process-wide configuration snapshot. The
// snapshot is built once at startup, validated, and never mutated.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/upb/retrieval-gateway/services"
)

// Auth modes supported by the principal resolver.
const (
	// AuthModeHeaders trusts identity headers. Inherently a low-trust dev
	// path; it must be explicitly opted into.
	AuthModeHeaders = "headers"
	// AuthModeClaims derives identity from a verified bearer token.
	AuthModeClaims = "claims"
)

// Store drivers.
const (
	StoreDriverMemory   = "memory"
	StoreDriverPostgres = "postgres"
)

// Config represents the complete application configuration
type Config struct {
	Server        ServerConfig
	Auth          AuthConfig
	Store         StoreConfig
	Observability ObservabilityConfig
	Environment   string
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// AuthConfig holds principal resolution configuration.
type AuthConfig struct {
	// Mode selects how principals are resolved: "headers" or "claims".
	Mode string
	// AllowInsecureHeaders is the explicit opt-in required for header
	// mode. Absence of the opt-in is a configuration error, not a
	// fallback.
	AllowInsecureHeaders bool
	// JWTSecret is the HMAC secret used to verify bearer tokens in claims
	// mode.
	JWTSecret string
}

// StoreConfig selects and configures the document store backend. A single
// instance is constructed at startup and injected; there is no runtime
// backend switching.
type StoreConfig struct {
	Driver   string
	Postgres DatabaseConfig
}

// DatabaseConfig holds PostgreSQL configuration. When ConnectionString
// (from DATABASE_URL) is set, it takes precedence over individual fields.
type DatabaseConfig struct {
	ConnectionString string
	Host             string
	Port             int
	User             string
	Password         string
	Database         string
	SSLMode          string
	MaxOpenConns     int
	MaxIdleConns     int
	ConnMaxLifetime  time.Duration
}

// ObservabilityConfig holds logging configuration
type ObservabilityConfig struct {
	LogLevel  string
	LogFormat string // json or text
}

// New creates a new Config instance by loading environment variables
func New() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load(".env")

	cfg := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Server: ServerConfig{
			Host:            getEnv("SERVER_HOST", "0.0.0.0"),
			Port:            getEnvAsInt("SERVER_PORT", 8080),
			ReadTimeout:     getEnvAsDuration("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout:    getEnvAsDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
			ShutdownTimeout: getEnvAsDuration("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Auth: AuthConfig{
			Mode:                 getEnv("AUTH_MODE", AuthModeClaims),
			AllowInsecureHeaders: getEnvAsBool("AUTH_ALLOW_INSECURE_HEADERS", false),
			JWTSecret:            getEnv("AUTH_JWT_SECRET", ""),
		},
		Store: StoreConfig{
			Driver:   getEnv("STORE_DRIVER", StoreDriverMemory),
			Postgres: loadDatabaseConfig(),
		},
		Observability: ObservabilityConfig{
			LogLevel:  getEnv("LOG_LEVEL", "info"),
			LogFormat: getEnv("LOG_FORMAT", "json"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for missing or contradictory security
// settings. Validation failures prevent the server from serving any
// authenticated route.
func (c *Config) Validate() error {
	switch c.Auth.Mode {
	case AuthModeHeaders:
		if !c.Auth.AllowInsecureHeaders {
			return services.NewConfigurationError(
				"AUTH_MODE=headers requires the explicit AUTH_ALLOW_INSECURE_HEADERS=true opt-in")
		}
	case AuthModeClaims:
		if c.Auth.JWTSecret == "" {
			return services.NewConfigurationError(
				"AUTH_MODE=claims requires AUTH_JWT_SECRET")
		}
	default:
		return services.NewConfigurationError(
			fmt.Sprintf("unknown AUTH_MODE %q", c.Auth.Mode))
	}

	switch c.Store.Driver {
	case StoreDriverMemory:
	case StoreDriverPostgres:
		if c.Store.Postgres.ConnectionString == "" && c.Store.Postgres.Host == "" {
			return services.NewConfigurationError(
				"STORE_DRIVER=postgres requires DATABASE_URL or DB_HOST")
		}
	default:
		return services.NewConfigurationError(
			fmt.Sprintf("unknown STORE_DRIVER %q", c.Store.Driver))
	}

	if c.Observability.LogLevel == "" {
		return services.NewConfigurationError("log level is required")
	}
	return nil
}

// IsProduction returns true if running in production environment
func (c *Config) IsProduction() bool {
	return c.Environment == "production" || c.Environment == "prod"
}

// DSN returns the PostgreSQL connection string. Uses ConnectionString when
// set; otherwise builds from individual fields.
func (c *DatabaseConfig) DSN() string {
	if c.ConnectionString != "" {
		return c.ConnectionString
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

// LogString returns a safe string for logging (no password).
func (c *DatabaseConfig) LogString() string {
	if c.ConnectionString != "" {
		u, err := url.Parse(c.ConnectionString)
		if err == nil {
			host := u.Hostname()
			port := u.Port()
			if port == "" {
				port = "5432"
			}
			db := strings.TrimPrefix(u.Path, "/")
			return fmt.Sprintf("host=%s port=%s database=%s", host, port, db)
		}
		return "host=<from DATABASE_URL>"
	}
	return fmt.Sprintf("host=%s port=%d database=%s", c.Host, c.Port, c.Database)
}

// Address returns the HTTP server address
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func loadDatabaseConfig() DatabaseConfig {
	dbURL := getEnv("DATABASE_URL", "")
	if dbURL != "" {
		return DatabaseConfig{
			ConnectionString: dbURL,
			MaxOpenConns:     getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:     getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime:  getEnvAsDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
		}
	}
	return DatabaseConfig{
		Host:            getEnv("DB_HOST", ""),
		Port:            getEnvAsInt("DB_PORT", 5432),
		User:            getEnv("DB_USER", ""),
		Password:        getEnv("DB_PASSWORD", ""),
		Database:        getEnv("DB_NAME", ""),
		SSLMode:         getEnv("DB_SSLMODE", "disable"),
		MaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
		MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
		ConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
	}
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
