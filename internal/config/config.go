package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

type Config struct {
	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Auth
	JWTSecret  string
	JWTExpiry  time.Duration
	BcryptCost int
	// RateLimitEnabled toggles the password reset attempt limiter.
	RateLimitEnabled bool

	// SMTP
	SMTPHost       string
	SMTPPort       int
	SMTPUser       string
	SMTPPassword   string
	SMTPFrom       string
	SMTPFromName   string
	SendRealEmails bool

	// Retention
	LogRetention   time.Duration
	ResetRetention time.Duration

	// Server
	Port        string
	CORSOrigins string
	SentryDSN   string
	AppEnv      string
}

// defaults maps every config key to its fallback. Each key is also read
// from the environment as upper snake case (db.host -> DB_HOST).
var defaults = map[string]string{
	"db.host":            "localhost",
	"db.port":            "5432",
	"db.user":            "postgres",
	"db.password":        "",
	"db.name":            "dentalcare",
	"db.sslmode":         "disable",
	"jwt.secret":         "",
	"jwt.expiry":         "168h",
	"bcrypt.cost":        "10",
	"rate_limit.enabled": "true",
	"smtp.host":          "smtp.gmail.com",
	"smtp.port":          "587",
	"smtp.user":          "",
	"smtp.password":      "",
	"smtp.from":          "",
	"smtp.from_name":     "Dental Care",
	"send_real_emails":   "false",
	"log.retention":      "720h",
	"reset.retention":    "168h",
	"port":               "8080",
	"cors.origins":       "*",
	"sentry.dsn":         "",
	"app.env":            "development",
}

// Load builds the configuration from defaults, an optional YAML file,
// environment variables (a .env file is loaded first when present) and
// finally any flags the caller explicitly set.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	_ = godotenv.Load()

	k := koanf.New(".")
	for key, val := range defaults {
		if err := k.Set(key, val); err != nil {
			return nil, fmt.Errorf("config default %s: %w", key, err)
		}
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	for key := range defaults {
		if val := os.Getenv(EnvName(key)); val != "" {
			if err := k.Set(key, val); err != nil {
				return nil, fmt.Errorf("config env %s: %w", EnvName(key), err)
			}
		}
	}

	if flags != nil {
		if err := k.Load(posflag.Provider(flags, ".", k), nil); err != nil {
			return nil, fmt.Errorf("failed to read flags: %w", err)
		}
	}

	return &Config{
		DBHost:     k.String("db.host"),
		DBPort:     k.String("db.port"),
		DBUser:     k.String("db.user"),
		DBPassword: k.String("db.password"),
		DBName:     k.String("db.name"),
		DBSSLMode:  k.String("db.sslmode"),

		JWTSecret:        k.String("jwt.secret"),
		JWTExpiry:        parseDuration(k.String("jwt.expiry"), 7*24*time.Hour),
		BcryptCost:       parseInt(k.String("bcrypt.cost"), 10),
		RateLimitEnabled: parseBool(k.String("rate_limit.enabled"), true),

		SMTPHost:       k.String("smtp.host"),
		SMTPPort:       parseInt(k.String("smtp.port"), 587),
		SMTPUser:       k.String("smtp.user"),
		SMTPPassword:   k.String("smtp.password"),
		SMTPFrom:       k.String("smtp.from"),
		SMTPFromName:   k.String("smtp.from_name"),
		SendRealEmails: parseBool(k.String("send_real_emails"), false),

		LogRetention:   parseDuration(k.String("log.retention"), 30*24*time.Hour),
		ResetRetention: parseDuration(k.String("reset.retention"), 7*24*time.Hour),

		Port:        k.String("port"),
		CORSOrigins: k.String("cors.origins"),
		SentryDSN:   k.String("sentry.dsn"),
		AppEnv:      k.String("app.env"),
	}, nil
}

// Validate checks the settings the HTTP server cannot start without.
func (c *Config) Validate() error {
	var errs []error
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET environment variable is required"))
	}
	if c.DBPassword == "" {
		errs = append(errs, errors.New("DB_PASSWORD environment variable is required"))
	}
	if c.SendRealEmails && c.SMTPUser == "" {
		errs = append(errs, errors.New("SMTP_USER is required when SEND_REAL_EMAILS is true"))
	}
	return errors.Join(errs...)
}

func (c *Config) DSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}

// EnvName maps a config key to its environment variable.
func EnvName(key string) string {
	return strings.ToUpper(strings.NewReplacer(".", "_", "-", "_").Replace(key))
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}

func parseInt(s string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fallback
	}
	return n
}

func parseBool(s string, fallback bool) bool {
	b, err := strconv.ParseBool(strings.TrimSpace(s))
	if err != nil {
		return fallback
	}
	return b
}
