package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	SpreadsheetID string
	Port          string
	IsProduction  bool

	// Service account credentials, either inline JSON or a file path.
	// The inline form wins when both are set.
	GoogleServiceAccountJSON string `mapstructure:"GOOGLE_SERVICE_ACCOUNT_JSON"`
	GoogleServiceAccountFile string `mapstructure:"GOOGLE_SERVICE_ACCOUNT_JSON_FILE"`

	// Remote store call discipline.
	RetryMaxAttempts int
	RetryBaseDelay   time.Duration
	RetryMaxDelay    time.Duration
	MinCallInterval  time.Duration
	CallTimeout      time.Duration

	// HTTP rate limit per client IP.
	RateLimitPerMinute int64

	// Recurring invoice generation cadence.
	SchedulerInterval time.Duration
}

// ServiceAccountJSON returns the service account key material, preferring the
// inline environment value over a key file on disk.
func (c *Config) ServiceAccountJSON() ([]byte, error) {
	if c.GoogleServiceAccountJSON != "" {
		return []byte(c.GoogleServiceAccountJSON), nil
	}
	if c.GoogleServiceAccountFile != "" {
		data, err := os.ReadFile(c.GoogleServiceAccountFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read service account file %s: %w", c.GoogleServiceAccountFile, err)
		}
		return data, nil
	}
	return nil, fmt.Errorf("no service account credentials configured")
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("SPREADSHEET_ID", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("GOOGLE_SERVICE_ACCOUNT_JSON", "")
	viper.SetDefault("GOOGLE_SERVICE_ACCOUNT_JSON_FILE", "")
	viper.SetDefault("RETRY_MAX_ATTEMPTS", 4)
	viper.SetDefault("RETRY_BASE_DELAY", "500ms")
	viper.SetDefault("RETRY_MAX_DELAY", "10s")
	viper.SetDefault("MIN_CALL_INTERVAL", "1100ms")
	viper.SetDefault("CALL_TIMEOUT", "30s")
	viper.SetDefault("RATE_LIMIT_PER_MINUTE", 120)
	viper.SetDefault("SCHEDULER_INTERVAL", "1h")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.SpreadsheetID = viper.GetString("SPREADSHEET_ID")
	if cfg.SpreadsheetID == "" {
		log.Println("Warning: SPREADSHEET_ID environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.GoogleServiceAccountJSON = viper.GetString("GOOGLE_SERVICE_ACCOUNT_JSON")
	cfg.GoogleServiceAccountFile = viper.GetString("GOOGLE_SERVICE_ACCOUNT_JSON_FILE")
	if cfg.GoogleServiceAccountJSON == "" && cfg.GoogleServiceAccountFile == "" {
		log.Println("Warning: neither GOOGLE_SERVICE_ACCOUNT_JSON nor GOOGLE_SERVICE_ACCOUNT_JSON_FILE is set. The sheet store will not function.")
	}

	cfg.RetryMaxAttempts = viper.GetInt("RETRY_MAX_ATTEMPTS")
	cfg.RetryBaseDelay = parseDurationOr("RETRY_BASE_DELAY", 500*time.Millisecond)
	cfg.RetryMaxDelay = parseDurationOr("RETRY_MAX_DELAY", 10*time.Second)
	cfg.MinCallInterval = parseDurationOr("MIN_CALL_INTERVAL", 1100*time.Millisecond)
	cfg.CallTimeout = parseDurationOr("CALL_TIMEOUT", 30*time.Second)

	cfg.RateLimitPerMinute = viper.GetInt64("RATE_LIMIT_PER_MINUTE")
	if cfg.RateLimitPerMinute <= 0 {
		cfg.RateLimitPerMinute = 120
		log.Printf("Warning: invalid RATE_LIMIT_PER_MINUTE. Defaulting to %d.\n", cfg.RateLimitPerMinute)
	}

	cfg.SchedulerInterval = parseDurationOr("SCHEDULER_INTERVAL", time.Hour)

	return cfg, nil
}

func parseDurationOr(key string, fallback time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, fallback.String())
		}
		return fallback
	}
	return d
}
