package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	Log       LogConfig
	Redis     RedisConfig
	Ledger    LedgerConfig
	Scheduler SchedulerConfig
}

type AppConfig struct {
	Name  string
	Env   string
	Port  string
	Debug bool
}

type DatabaseConfig struct {
	Driver          string // postgres or sqlite
	Host            string
	Port            string
	Name            string
	User            string
	Password        string
	SSLMode         string
	Timezone        string
	Path            string // sqlite file path
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	LogLevel        string
	SlowThreshold   time.Duration
}

type JWTConfig struct {
	Secret string
	Issuer string
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

type RateLimitConfig struct {
	Requests int
	Duration int
}

type LogConfig struct {
	Level  string
	Format string
	Output string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LedgerConfig tunes the inventory and ledger engine
type LedgerConfig struct {
	AllowNegativeStock bool
	MaxRetries         int
	RetryBackoff       time.Duration
	LockBackend        string // local or redis
	LockTTL            time.Duration
	CashAccountCode    string
	BankAccountCode    string
}

type SchedulerConfig struct {
	Enabled            bool
	IdempotencyCleanup string // cron spec
	LowStockReport     string // cron spec
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()

	// A missing .env is fine; the environment may carry everything
	_ = v.ReadInConfig()

	setDefaults(v)

	cfg := &Config{
		App: AppConfig{
			Name:  v.GetString("APP_NAME"),
			Env:   v.GetString("APP_ENV"),
			Port:  v.GetString("APP_PORT"),
			Debug: v.GetBool("APP_DEBUG"),
		},
		Database: DatabaseConfig{
			Driver:          strings.ToLower(v.GetString("DB_DRIVER")),
			Host:            v.GetString("DB_HOST"),
			Port:            v.GetString("DB_PORT"),
			Name:            v.GetString("DB_NAME"),
			User:            v.GetString("DB_USER"),
			Password:        v.GetString("DB_PASSWORD"),
			SSLMode:         v.GetString("DB_SSL_MODE"),
			Timezone:        v.GetString("DB_TIMEZONE"),
			Path:            v.GetString("DB_PATH"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: time.Duration(v.GetInt("DB_CONN_MAX_LIFETIME_MINUTES")) * time.Minute,
			LogLevel:        v.GetString("DB_LOG_LEVEL"),
			SlowThreshold:   time.Duration(v.GetInt("DB_SLOW_THRESHOLD_MS")) * time.Millisecond,
		},
		JWT: JWTConfig{
			Secret: v.GetString("JWT_SECRET"),
			Issuer: v.GetString("JWT_ISSUER"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
			AllowedMethods: splitList(v.GetString("CORS_ALLOWED_METHODS")),
			AllowedHeaders: splitList(v.GetString("CORS_ALLOWED_HEADERS")),
		},
		RateLimit: RateLimitConfig{
			Requests: v.GetInt("RATE_LIMIT_REQUESTS"),
			Duration: v.GetInt("RATE_LIMIT_DURATION"),
		},
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
			Output: v.GetString("LOG_OUTPUT"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Ledger: LedgerConfig{
			AllowNegativeStock: v.GetBool("LEDGER_ALLOW_NEGATIVE_STOCK"),
			MaxRetries:         v.GetInt("LEDGER_MAX_RETRIES"),
			RetryBackoff:       time.Duration(v.GetInt("LEDGER_RETRY_BACKOFF_MS")) * time.Millisecond,
			LockBackend:        strings.ToLower(v.GetString("LEDGER_LOCK_BACKEND")),
			LockTTL:            time.Duration(v.GetInt("LEDGER_LOCK_TTL_SECONDS")) * time.Second,
			CashAccountCode:    v.GetString("CASH_ACCOUNT_CODE"),
			BankAccountCode:    v.GetString("BANK_ACCOUNT_CODE"),
		},
		Scheduler: SchedulerConfig{
			Enabled:            v.GetBool("SCHEDULER_ENABLED"),
			IdempotencyCleanup: v.GetString("SCHEDULER_IDEMPOTENCY_CLEANUP"),
			LowStockReport:     v.GetString("SCHEDULER_LOW_STOCK_REPORT"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_NAME", "posledger")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("APP_DEBUG", true)
	v.SetDefault("DB_DRIVER", "postgres")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_NAME", "posledger")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_TIMEZONE", "UTC")
	v.SetDefault("DB_PATH", "posledger.db")
	v.SetDefault("DB_MAX_OPEN_CONNS", 50)
	v.SetDefault("DB_MAX_IDLE_CONNS", 10)
	v.SetDefault("DB_CONN_MAX_LIFETIME_MINUTES", 30)
	v.SetDefault("DB_LOG_LEVEL", "warn")
	v.SetDefault("DB_SLOW_THRESHOLD_MS", 200)
	v.SetDefault("JWT_SECRET", "change-this-secret-in-production")
	v.SetDefault("JWT_ISSUER", "")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("CORS_ALLOWED_METHODS", "")
	v.SetDefault("CORS_ALLOWED_HEADERS", "")
	v.SetDefault("RATE_LIMIT_REQUESTS", 100)
	v.SetDefault("RATE_LIMIT_DURATION", 60)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")
	v.SetDefault("LOG_OUTPUT", "stdout")
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("LEDGER_ALLOW_NEGATIVE_STOCK", false)
	v.SetDefault("LEDGER_MAX_RETRIES", 3)
	v.SetDefault("LEDGER_RETRY_BACKOFF_MS", 25)
	v.SetDefault("LEDGER_LOCK_BACKEND", "local")
	v.SetDefault("LEDGER_LOCK_TTL_SECONDS", 30)
	v.SetDefault("CASH_ACCOUNT_CODE", "CASH")
	v.SetDefault("BANK_ACCOUNT_CODE", "BANK")
	v.SetDefault("SCHEDULER_ENABLED", true)
	v.SetDefault("SCHEDULER_IDEMPOTENCY_CLEANUP", "@hourly")
	v.SetDefault("SCHEDULER_LOW_STOCK_REPORT", "0 7 * * *")
}

// Validate rejects settings the service cannot start with
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.Database.Driver)
	}
	switch c.Ledger.LockBackend {
	case "local":
	case "redis":
		if c.Redis.Addr == "" {
			return fmt.Errorf("LEDGER_LOCK_BACKEND=redis requires REDIS_ADDR")
		}
	default:
		return fmt.Errorf("unsupported LEDGER_LOCK_BACKEND %q", c.Ledger.LockBackend)
	}
	if c.Ledger.MaxRetries < 0 {
		return fmt.Errorf("LEDGER_MAX_RETRIES must not be negative")
	}
	if c.RateLimit.Duration <= 0 {
		return fmt.Errorf("RATE_LIMIT_DURATION must be positive")
	}
	return nil
}

func (c *DatabaseConfig) DSN() string {
	if c.Driver == "sqlite" {
		return c.Path
	}
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.Timezone
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
