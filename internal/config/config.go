package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/rezonia/efactura/internal/logger"
	"github.com/rezonia/efactura/internal/refdata"
)

// Config is the process configuration read from the environment
type Config struct {
	// Document defaults
	Currency          string
	DefaultTaxPercent decimal.Decimal
	StrictIdentifiers bool

	// HTTP server
	ServerAddress string

	// Logging
	LogLevel      string
	LogFormat     string
	LogTimeFormat string
	LogOutput     string
}

// Load reads the configuration from the environment
func Load() (*Config, error) {
	config := &Config{
		Currency:      strings.ToUpper(getEnv("EFACTURA_CURRENCY", refdata.DefaultCurrency)),
		ServerAddress: getEnv("EFACTURA_SERVER_ADDRESS", ":8080"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogFormat:     getEnv("LOG_FORMAT", "console"),
		LogTimeFormat: getEnv("LOG_TIME_FORMAT", "2006-01-02T15:04:05Z07:00"),
		LogOutput:     getEnv("LOG_OUTPUT", "stderr"),
	}

	pct, err := decimal.NewFromString(getEnv("EFACTURA_DEFAULT_TAX_PERCENT", strconv.Itoa(refdata.DefaultTaxPercent)))
	if err != nil {
		return nil, fmt.Errorf("EFACTURA_DEFAULT_TAX_PERCENT: %w", err)
	}
	config.DefaultTaxPercent = pct

	if v := getEnv("EFACTURA_STRICT_IDENTIFIERS", ""); v != "" {
		strict, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("EFACTURA_STRICT_IDENTIFIERS: %w", err)
		}
		config.StrictIdentifiers = strict
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

func (c *Config) validate() error {
	if len(c.Currency) != 3 {
		return fmt.Errorf("EFACTURA_CURRENCY must be an ISO 4217 code, got %q", c.Currency)
	}
	if c.DefaultTaxPercent.IsNegative() || c.DefaultTaxPercent.GreaterThan(decimal.NewFromInt(100)) {
		return fmt.Errorf("EFACTURA_DEFAULT_TAX_PERCENT must be between 0 and 100")
	}
	return nil
}

// GetLoggerConfig returns a logger configuration from the main config
func (c *Config) GetLoggerConfig() logger.LogConfig {
	return logger.LogConfig{
		Level:      c.LogLevel,
		Format:     c.LogFormat,
		TimeFormat: c.LogTimeFormat,
		Output:     c.LogOutput,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
