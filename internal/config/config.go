package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
)

// Config represents the full application configuration surface.
type Config struct {
	Server    ServerConfig
	Log       LogConfig
	Inventory InventoryConfig
	WhatsApp  WhatsAppConfig
	Sheets    SheetsConfig
	Reporting ReportingConfig
	MongoDB   MongoDBConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port string
}

// LogConfig selects the zap level.
type LogConfig struct {
	Level string
}

// InventoryConfig points at the remote inventory API.
type InventoryConfig struct {
	BaseURL           string
	StatisticsURL     string
	Timeout           time.Duration
	LowStockThreshold int
}

// WhatsAppConfig contains credentials for the Meta WhatsApp Cloud API.
// Sending is disabled when AccessToken is empty.
type WhatsAppConfig struct {
	AccessToken   string
	PhoneNumberID string
	BaseURL       string
	APIVersion    string
	AlertTo       string
}

// Enabled reports whether messages can be sent at all.
func (c WhatsAppConfig) Enabled() bool {
	return c.AccessToken != "" && c.PhoneNumberID != ""
}

// AlertsEnabled reports whether the low-stock alert has a recipient.
func (c WhatsAppConfig) AlertsEnabled() bool {
	return c.Enabled() && c.AlertTo != ""
}

// SheetsConfig contains configuration required to export inventory to Google Sheets.
type SheetsConfig struct {
	CredentialsPath string
	SpreadsheetID   string
	InventoryRange  string
}

// Enabled reports whether the spreadsheet export is configured.
func (c SheetsConfig) Enabled() bool {
	return c.CredentialsPath != "" && c.SpreadsheetID != ""
}

// ReportingConfig holds scheduler-related settings.
type ReportingConfig struct {
	ExportSchedule   string
	AlertSchedule    string
	SnapshotSchedule string
	Timezone         string
}

// MongoDBConfig holds settings for the adjustment journal. The journal is
// disabled when URI is empty.
type MongoDBConfig struct {
	URI    string
	DBName string
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// A missing .env is fine when everything comes from the environment.
		_ = godotenv.Load()
	}

	timeout, err := cast.ToDurationE(getenvWithDefault("INVENTORY_API_TIMEOUT", "15s"))
	if err != nil {
		return nil, fmt.Errorf("INVENTORY_API_TIMEOUT: %w", err)
	}

	threshold, err := cast.ToIntE(getenvWithDefault("LOW_STOCK_THRESHOLD", "10"))
	if err != nil {
		return nil, fmt.Errorf("LOW_STOCK_THRESHOLD: %w", err)
	}

	baseURL := strings.TrimSuffix(getenvWithDefault("INVENTORY_API_URL", "http://localhost:3001"), "/")

	cfg := &Config{
		Server: ServerConfig{
			Port: getenvWithDefault("APP_PORT", "8080"),
		},
		Log: LogConfig{
			Level: getenvWithDefault("LOG_LEVEL", "info"),
		},
		Inventory: InventoryConfig{
			BaseURL:           baseURL,
			StatisticsURL:     strings.TrimSuffix(getenvWithDefault("STATISTICS_API_URL", baseURL), "/"),
			Timeout:           timeout,
			LowStockThreshold: threshold,
		},
		WhatsApp: WhatsAppConfig{
			AccessToken:   os.Getenv("WHATSAPP_TOKEN"),
			PhoneNumberID: os.Getenv("WHATSAPP_PHONE_NUMBER_ID"),
			BaseURL:       getenvWithDefault("WHATSAPP_BASE_URL", "https://graph.facebook.com"),
			APIVersion:    getenvWithDefault("WHATSAPP_API_VERSION", "v20.0"),
			AlertTo:       os.Getenv("WHATSAPP_ALERT_TO"),
		},
		Sheets: SheetsConfig{
			CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("GOOGLE_SHEET_DATABASE_ID"),
			InventoryRange:  getenvWithDefault("INVENTORY_SHEET_RANGE", "Inventory!A:H"),
		},
		Reporting: ReportingConfig{
			ExportSchedule:   getenvWithDefault("EXPORT_CRON_SCHEDULE", "0 20 * * *"),
			AlertSchedule:    getenvWithDefault("ALERT_CRON_SCHEDULE", "0 8 * * *"),
			SnapshotSchedule: getenvWithDefault("SNAPSHOT_CRON_SCHEDULE", "@hourly"),
			Timezone:         getenvWithDefault("TIMEZONE", "Africa/Dakar"),
		},
		MongoDB: MongoDBConfig{
			URI:    os.Getenv("MONGODB_URI"),
			DBName: getenvWithDefault("MONGODB_DB_NAME", "warehouse"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	switch {
	case c.Inventory.BaseURL == "":
		return errors.New("INVENTORY_API_URL must be provided")
	case !strings.HasPrefix(c.Inventory.BaseURL, "http://") && !strings.HasPrefix(c.Inventory.BaseURL, "https://"):
		return fmt.Errorf("INVENTORY_API_URL must be an http(s) url, got %q", c.Inventory.BaseURL)
	case c.Inventory.Timeout <= 0:
		return errors.New("INVENTORY_API_TIMEOUT must be positive")
	case c.Inventory.LowStockThreshold < 0:
		return errors.New("LOW_STOCK_THRESHOLD must not be negative")
	}

	if c.Inventory.StatisticsURL == "" {
		c.Inventory.StatisticsURL = c.Inventory.BaseURL
	}

	if c.WhatsApp.AccessToken != "" {
		if c.WhatsApp.PhoneNumberID == "" {
			return errors.New("WHATSAPP_PHONE_NUMBER_ID must be provided with WHATSAPP_TOKEN")
		}
		if c.WhatsApp.BaseURL == "" {
			return errors.New("WHATSAPP_BASE_URL must not be empty")
		}
		if c.WhatsApp.APIVersion == "" {
			return errors.New("WHATSAPP_API_VERSION must not be empty")
		}
	}

	if c.Sheets.CredentialsPath != "" && c.Sheets.SpreadsheetID == "" {
		return errors.New("GOOGLE_SHEET_DATABASE_ID must be provided with GOOGLE_SHEETS_CREDENTIALS_PATH")
	}

	if c.Reporting.Timezone == "" {
		return errors.New("TIMEZONE must be provided")
	}

	if c.MongoDB.URI != "" && c.MongoDB.DBName == "" {
		return errors.New("MONGODB_DB_NAME must be provided with MONGODB_URI")
	}

	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
