package config

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

const devDatabaseURL = "host=localhost user=postgres password=postgres dbname=linkhub port=5432 sslmode=disable"

const devSessionSecret = "secret_key_change_me"

type Config struct {
	Env  string // APP_ENV: development | production | test
	Port int    // PORT

	DatabaseURL     string // DATABASE_URL
	DBMaxOpenConns  int    // DB_MAX_OPEN_CONNS
	DBMaxIdleConns  int    // DB_MAX_IDLE_CONNS
	DBConnMaxLife   time.Duration
	SessionSecret   string        // SESSION_SECRET, signs the SESSION cookie
	SessionTTL      time.Duration // SESSION_TTL, 0 disables expiry
	BcryptCost      int           // BCRYPT_COST
	LoginRateLimit  int           // LOGIN_RATE_LIMIT, attempts per minute per client IP
	LogLevel        string        // LOG_LEVEL
	LogFormat       string        // LOG_FORMAT: text | json
	TemplatesDir    string        // TEMPLATES_DIR
	StaticDir       string        // STATIC_DIR
	ShutdownTimeout time.Duration // SHUTDOWN_TIMEOUT
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	// A missing .env is fine; system env vars still apply.
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv builds a Config from the process environment only.
func FromEnv() (*Config, error) {
	cfg := &Config{}
	var errs []error
	add := func(err error) {
		if err != nil {
			errs = append(errs, err)
		}
	}

	loadEnvString(&cfg.Env, "APP_ENV", "development")
	add(loadEnvInt(&cfg.Port, "PORT", 8080))

	loadEnvString(&cfg.DatabaseURL, "DATABASE_URL", devDatabaseURL)
	add(loadEnvInt(&cfg.DBMaxOpenConns, "DB_MAX_OPEN_CONNS", 10))
	add(loadEnvInt(&cfg.DBMaxIdleConns, "DB_MAX_IDLE_CONNS", 5))
	add(loadEnvDuration(&cfg.DBConnMaxLife, "DB_CONN_MAX_LIFETIME", 30*time.Minute))

	loadEnvString(&cfg.SessionSecret, "SESSION_SECRET", devSessionSecret)
	add(loadEnvDuration(&cfg.SessionTTL, "SESSION_TTL", 30*24*time.Hour))
	add(loadEnvInt(&cfg.BcryptCost, "BCRYPT_COST", 10))
	add(loadEnvInt(&cfg.LoginRateLimit, "LOGIN_RATE_LIMIT", 20))

	loadEnvString(&cfg.LogLevel, "LOG_LEVEL", "info")
	loadEnvString(&cfg.LogFormat, "LOG_FORMAT", "text")
	loadEnvString(&cfg.TemplatesDir, "TEMPLATES_DIR", "./web/templates")
	loadEnvString(&cfg.StaticDir, "STATIC_DIR", "./web/static")
	add(loadEnvDuration(&cfg.ShutdownTimeout, "SHUTDOWN_TIMEOUT", 10*time.Second))

	if len(errs) > 0 {
		msgs := make([]string, len(errs))
		for i, err := range errs {
			msgs[i] = err.Error()
		}
		return nil, fmt.Errorf("load config: %s", strings.Join(msgs, "; "))
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadEnvString(target *string, key, defaultValue string) {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		*target = value
	} else {
		*target = defaultValue
	}
}

func loadEnvInt(target *int, key string, defaultValue int) error {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer value for %s: %v", key, err)
		}
		*target = parsed
	} else {
		*target = defaultValue
	}
	return nil
}

func loadEnvDuration(target *time.Duration, key string, defaultValue time.Duration) error {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration value for %s: %v", key, err)
		}
		*target = parsed
	} else {
		*target = defaultValue
	}
	return nil
}

// Validate performs validation on the loaded configuration
func (c *Config) Validate() error {
	var problems []string

	if c.Port < 1 || c.Port > 65535 {
		problems = append(problems, "PORT must be between 1 and 65535")
	}
	if c.DBMaxOpenConns < 1 {
		problems = append(problems, "DB_MAX_OPEN_CONNS must be at least 1")
	}
	if c.DBMaxIdleConns < 0 {
		problems = append(problems, "DB_MAX_IDLE_CONNS must not be negative")
	}
	if c.BcryptCost < 10 || c.BcryptCost > bcrypt.MaxCost {
		problems = append(problems, fmt.Sprintf("BCRYPT_COST must be between 10 and %d", bcrypt.MaxCost))
	}
	if c.SessionTTL < 0 {
		problems = append(problems, "SESSION_TTL must not be negative")
	}
	if c.LoginRateLimit < 1 {
		problems = append(problems, "LOGIN_RATE_LIMIT must be at least 1")
	}
	if !slices.Contains([]string{"debug", "info", "warn", "error"}, c.LogLevel) {
		problems = append(problems, "LOG_LEVEL must be one of: debug, info, warn, error")
	}
	if !slices.Contains([]string{"text", "json"}, c.LogFormat) {
		problems = append(problems, "LOG_FORMAT must be one of: text, json")
	}
	if c.IsProduction() && (c.SessionSecret == devSessionSecret || len(c.SessionSecret) < 32) {
		problems = append(problems, "SESSION_SECRET must be set to at least 32 characters in production")
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(problems, "; "))
	}
	return nil
}

// IsProduction returns true if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + strconv.Itoa(c.Port)
}
