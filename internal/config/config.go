package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/joho/godotenv"
)

// Backends the event data can be read from.
const (
	BackendSupabase = "supabase"
	BackendPostgres = "postgres"
)

// Config holds all application configuration
type Config struct {
	Env string

	// Server configuration
	Server ServerConfig

	// Backend selects where events, tips and pages are stored
	Backend string

	// Supabase REST configuration
	Supabase SupabaseConfig

	// Database configuration
	Database DatabaseConfig

	// Submission rate limiting
	RateLimit RateLimitConfig

	// Path to the site yaml, empty for the built-in one
	SiteConfigPath string

	// CORS configuration
	CORS CORSConfig

	// Logging configuration
	Logging LoggingConfig

	// Warnings are problems worth logging that do not stop startup
	Warnings []string
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            int
	Host            string
	ShutdownTimeout time.Duration
}

// Addr is the listen address of the HTTP server.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// SupabaseConfig holds the REST endpoint and public key
type SupabaseConfig struct {
	URL     string
	AnonKey string
	Timeout time.Duration
	Role    string // role claim of AnonKey when it is a JWT
}

// DatabaseConfig holds direct PostgreSQL settings
type DatabaseConfig struct {
	URL    string
	Driver string // pgx or postgres
}

// RateLimitConfig holds the tip submission limiter settings
type RateLimitConfig struct {
	Max      int
	Window   time.Duration
	Sweep    time.Duration
	RedisURL string
}

// CORSConfig holds CORS settings
type CORSConfig struct {
	AllowedOrigins []string
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, text
}

// Load reads configuration from config/local.env and the environment
func Load() (*Config, error) {
	_ = godotenv.Load("config/local.env")

	cfg := &Config{Env: strings.ToLower(os.Getenv("ENV"))}

	if err := cfg.loadServer(); err != nil {
		return nil, fmt.Errorf("load server config: %w", err)
	}

	if err := cfg.loadSupabase(); err != nil {
		return nil, fmt.Errorf("load supabase config: %w", err)
	}

	cfg.loadDatabase()
	cfg.loadBackend()

	if err := cfg.loadRateLimit(); err != nil {
		return nil, fmt.Errorf("load rate limit config: %w", err)
	}

	cfg.SiteConfigPath = os.Getenv("SITE_CONFIG")
	cfg.loadCORS()
	cfg.loadLogging()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

func (c *Config) loadServer() error {
	port, err := strconv.Atoi(getEnvOrDefault("PORT", "8080"))
	if err != nil {
		return fmt.Errorf("invalid PORT: %w", err)
	}
	c.Server.Port = port
	c.Server.Host = os.Getenv("HOST")

	timeout, err := durationEnv("SHUTDOWN_TIMEOUT", 10*time.Second)
	if err != nil {
		return err
	}
	c.Server.ShutdownTimeout = timeout
	return nil
}

func (c *Config) loadSupabase() error {
	c.Supabase.URL = strings.TrimRight(firstEnv("SUPABASE_URL", "VITE_SUPABASE_URL"), "/")
	c.Supabase.AnonKey = firstEnv("SUPABASE_ANON_KEY", "VITE_SUPABASE_ANON_KEY")

	timeout, err := durationEnv("SUPABASE_TIMEOUT", 10*time.Second)
	if err != nil {
		return err
	}
	c.Supabase.Timeout = timeout
	return nil
}

func (c *Config) loadDatabase() {
	c.Database.URL = os.Getenv("DATABASE_URL")
	c.Database.Driver = getEnvOrDefault("DATABASE_DRIVER", "pgx")
}

func (c *Config) loadBackend() {
	c.Backend = strings.ToLower(os.Getenv("DATA_BACKEND"))
	if c.Backend != "" {
		return
	}
	if c.Database.URL != "" {
		c.Backend = BackendPostgres
	} else {
		c.Backend = BackendSupabase
	}
}

func (c *Config) loadRateLimit() error {
	limit, err := strconv.Atoi(getEnvOrDefault("RATE_LIMIT_MAX", "10"))
	if err != nil {
		return fmt.Errorf("invalid RATE_LIMIT_MAX: %w", err)
	}
	c.RateLimit.Max = limit

	if c.RateLimit.Window, err = durationEnv("RATE_LIMIT_WINDOW", 5*time.Minute); err != nil {
		return err
	}
	if c.RateLimit.Sweep, err = durationEnv("RATE_LIMIT_SWEEP", 10*time.Minute); err != nil {
		return err
	}
	c.RateLimit.RedisURL = os.Getenv("REDIS_URL")
	return nil
}

func (c *Config) loadCORS() {
	originsEnv := os.Getenv("CORS_ALLOWED_ORIGINS")
	if originsEnv != "" {
		for _, origin := range strings.Split(originsEnv, ",") {
			if trimmed := strings.TrimSpace(origin); trimmed != "" {
				c.CORS.AllowedOrigins = append(c.CORS.AllowedOrigins, trimmed)
			}
		}
	} else {
		// Default for local development
		c.CORS.AllowedOrigins = []string{
			"http://localhost:5173",
			"http://localhost:8080",
		}
	}
}

func (c *Config) loadLogging() {
	c.Logging.Level = getEnvOrDefault("LOG_LEVEL", "info")
	c.Logging.Format = getEnvOrDefault("LOG_FORMAT", "json")
}

// Validate checks that all required configuration is present and valid
func (c *Config) Validate() error {
	var errors []string

	switch c.Backend {
	case BackendSupabase:
		if c.Supabase.URL == "" {
			errors = append(errors, "SUPABASE_URL is required for the supabase backend")
		}
		if c.Supabase.AnonKey == "" {
			errors = append(errors, "SUPABASE_ANON_KEY is required for the supabase backend")
		}
	case BackendPostgres:
		if c.Database.URL == "" {
			errors = append(errors, "DATABASE_URL is required for the postgres backend")
		}
		if c.Database.Driver != "pgx" && c.Database.Driver != "postgres" {
			errors = append(errors, "DATABASE_DRIVER must be one of: pgx, postgres")
		}
	default:
		errors = append(errors, "DATA_BACKEND must be one of: supabase, postgres")
	}

	if c.Supabase.AnonKey != "" {
		if problem := c.inspectSupabaseKey(time.Now()); problem != "" {
			errors = append(errors, problem)
		}
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errors = append(errors, "PORT must be between 1 and 65535")
	}

	if c.RateLimit.Max < 1 {
		errors = append(errors, "RATE_LIMIT_MAX must be at least 1")
	}
	if c.RateLimit.Window <= 0 {
		errors = append(errors, "RATE_LIMIT_WINDOW must be positive")
	}
	if c.RateLimit.Sweep <= 0 {
		errors = append(errors, "RATE_LIMIT_SWEEP must be positive")
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Logging.Level] {
		errors = append(errors, "LOG_LEVEL must be one of: debug, info, warn, error")
	}

	validLogFormats := map[string]bool{"json": true, "text": true}
	if !validLogFormats[c.Logging.Format] {
		errors = append(errors, "LOG_FORMAT must be one of: json, text")
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errors, "\n  - "))
	}

	return nil
}

// inspectSupabaseKey reads the claims of a JWT-shaped key without verifying
// it. Only expiry is an error; a service role key is reported as a warning.
func (c *Config) inspectSupabaseKey(now time.Time) string {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(c.Supabase.AnonKey, claims); err != nil {
		// Publishable keys are not JWTs.
		return ""
	}

	if role, ok := claims["role"].(string); ok {
		c.Supabase.Role = role
		if role == "service_role" {
			c.Warnings = append(c.Warnings, "SUPABASE_ANON_KEY carries the service_role claim; use the anon key for this public service")
		}
	}

	exp, err := claims.GetExpirationTime()
	if err != nil {
		return "SUPABASE_ANON_KEY has an unreadable exp claim"
	}
	if exp != nil && exp.Before(now) {
		return fmt.Sprintf("SUPABASE_ANON_KEY expired at %s", exp.Time.UTC().Format(time.RFC3339))
	}
	return ""
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Env == "" || c.Env == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// getEnvOrDefault returns the environment variable value or a default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func firstEnv(keys ...string) string {
	for _, key := range keys {
		if value := os.Getenv(key); value != "" {
			return value
		}
	}
	return ""
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
