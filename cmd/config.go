package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string
	LogLevel   slog.Level

	PaymentGatewayDelay        time.Duration
	PaymentGatewayTimeout      time.Duration
	PaymentGatewayMaxRetries   uint64
	PaymentGatewayDeclineAbove *kernel.Money

	PaymentStaleAfter         time.Duration
	PaymentTimeoutSchedule    string
	FailedOrderExpireAfter    time.Duration
	FailedOrderExpirySchedule string
}

// DSN is the PostgreSQL connection string for gorm.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// LoadConfig reads the configuration from the environment. Values missing there are
// taken from the given .env files (".env" when none are named); missing files are ignored.
func LoadConfig(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}

	fileVars := map[string]string{}
	for _, name := range envFiles {
		vars, err := godotenv.Read(name)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return Config{}, fmt.Errorf("read %s: %w", name, err)
		}
		for k, v := range vars {
			if _, seen := fileVars[k]; !seen {
				fileVars[k] = v
			}
		}
	}

	return configFrom(func(key string) string {
		if v, ok := os.LookupEnv(key); ok {
			return v
		}
		return fileVars[key]
	})
}

func configFrom(getenv func(string) string) (Config, error) {
	r := envReader{getenv: getenv}
	cfg := Config{
		HTTPPort:   r.str("HTTP_PORT", "8080"),
		DBHost:     r.required("DB_HOST"),
		DBPort:     r.str("DB_PORT", "5432"),
		DBUser:     r.required("DB_USER"),
		DBPassword: r.str("DB_PASSWORD", ""),
		DBName:     r.required("DB_NAME"),
		DBSslMode:  r.str("DB_SSLMODE", "disable"),
		LogLevel:   r.level("LOG_LEVEL", slog.LevelInfo),

		PaymentGatewayDelay:        r.duration("PAYMENT_GATEWAY_DELAY", 3*time.Second),
		PaymentGatewayTimeout:      r.duration("PAYMENT_GATEWAY_TIMEOUT", 10*time.Second),
		PaymentGatewayMaxRetries:   r.uint("PAYMENT_GATEWAY_MAX_RETRIES", 3),
		PaymentGatewayDeclineAbove: r.money("PAYMENT_GATEWAY_DECLINE_ABOVE"),

		PaymentStaleAfter:         r.duration("PAYMENT_STALE_AFTER", 2*time.Minute),
		PaymentTimeoutSchedule:    r.str("PAYMENT_TIMEOUT_SCHEDULE", "@every 30s"),
		FailedOrderExpireAfter:    r.duration("FAILED_ORDER_EXPIRE_AFTER", 30*time.Minute),
		FailedOrderExpirySchedule: r.str("FAILED_ORDER_EXPIRY_SCHEDULE", "@every 1m"),
	}
	if err := errors.Join(r.errs...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// envReader collects every configuration problem instead of stopping at the first.
type envReader struct {
	getenv func(string) string
	errs   []error
}

func (r *envReader) lookup(key string) string {
	return strings.TrimSpace(r.getenv(key))
}

func (r *envReader) str(key, def string) string {
	if v := r.lookup(key); v != "" {
		return v
	}
	return def
}

func (r *envReader) required(key string) string {
	v := r.lookup(key)
	if v == "" {
		r.errs = append(r.errs, errs.NewValueIsRequiredError(key))
	}
	return v
}

func (r *envReader) duration(key string, def time.Duration) time.Duration {
	v := r.lookup(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d < 0 {
		r.errs = append(r.errs, errs.NewValueIsInvalidErrorWithCause(key, err))
		return def
	}
	return d
}

func (r *envReader) uint(key string, def uint64) uint64 {
	v := r.lookup(key)
	if v == "" {
		return def
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		r.errs = append(r.errs, errs.NewValueIsInvalidErrorWithCause(key, err))
		return def
	}
	return n
}

func (r *envReader) level(key string, def slog.Level) slog.Level {
	v := r.lookup(key)
	if v == "" {
		return def
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(v)); err != nil {
		r.errs = append(r.errs, errs.NewValueIsInvalidErrorWithCause(key, err))
		return def
	}
	return level
}

func (r *envReader) money(key string) *kernel.Money {
	v := r.lookup(key)
	if v == "" {
		return nil
	}
	amount, err := decimal.NewFromString(v)
	if err != nil {
		r.errs = append(r.errs, errs.NewValueIsInvalidErrorWithCause(key, err))
		return nil
	}
	m, err := kernel.NewMoney(amount)
	if err != nil {
		r.errs = append(r.errs, errs.NewValueIsInvalidErrorWithCause(key, err))
		return nil
	}
	return &m
}
