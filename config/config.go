package config

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Sheets   SheetsConfig   `mapstructure:"sheets"`
	Slack    SlackConfig    `mapstructure:"slack"`
	Scrape   ScrapeConfig   `mapstructure:"scrape"`
	Alert    AlertConfig    `mapstructure:"alert"`
	Log      LogConfig      `mapstructure:"log"`
	Postgres PostgresConfig `mapstructure:"postgres"`
}

// SheetsConfig identifies the spreadsheet holding snapshot columns.
type SheetsConfig struct {
	BaseURL       string        `mapstructure:"base_url"`
	SpreadsheetID string        `mapstructure:"spreadsheet_id"`
	SheetName     string        `mapstructure:"sheet_name"`
	APIKey        string        `mapstructure:"api_key"`
	Timeout       time.Duration `mapstructure:"timeout"`

	// WorkbookPath, when set, switches the jobs to a local xlsx
	// workbook instead of the remote sheet.
	WorkbookPath string `mapstructure:"workbook_path"`
}

type SlackConfig struct {
	WebhookURL string        `mapstructure:"webhook_url"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

type ScrapeConfig struct {
	Timeout   time.Duration `mapstructure:"timeout"`
	Delay     time.Duration `mapstructure:"delay"`    // politeness delay between page fetches
	Interval  time.Duration `mapstructure:"interval"` // 0 means run once and exit
	UserAgent string        `mapstructure:"user_agent"`
}

// AlertConfig controls the volume alert jobs.
type AlertConfig struct {
	Timezone         string `mapstructure:"timezone"`          // civil zone for window dispatch, e.g. "Asia/Kolkata"
	HeaderPrefix     string `mapstructure:"header_prefix"`     // snapshot column marker, e.g. "Snapshot"
	ToleranceMinutes int    `mapstructure:"tolerance_minutes"` // max distance between a column and its target time
	GapMinutes       int    `mapstructure:"gap_minutes"`       // max gap between consecutive columns before an interval is dropped
}

// LogConfig defines the logger configuration options.
type LogConfig struct {
	Level       string `mapstructure:"level"`       // log level: "debug", "info", "warn", "error"
	Format      string `mapstructure:"format"`      // log format: "json" or "console"
	OutputFile  string `mapstructure:"output_file"` // file path to store logs (optional)
	Environment string `mapstructure:"environment"` // environment: "dev" or "prod"
}

// Load loads application configuration using Viper.
// It reads from config.yaml and overrides with environment variables.
func Load() *Config {
	v := viper.New()

	v.SetConfigName("config") // config.yaml
	v.SetConfigType("yaml")

	ex, _ := os.Executable()
	if strings.Contains(ex, "go-build") {
		pwd, _ := os.Getwd()
		v.AddConfigPath(filepath.Join(pwd, "../../config"))
	} else {
		v.AddConfigPath(filepath.Join(filepath.Dir(ex), "../config"))
	}

	// Support environment variables with dot notation (e.g., SLACK_WEBHOOK_URL)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		log.Fatalf("failed to read config: %v", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		log.Fatalf("failed to unmarshal config: %v", err)
	}

	return &cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("sheets.base_url", "https://sheets.googleapis.com/v4/spreadsheets")
	v.SetDefault("sheets.sheet_name", "Sheet1")
	v.SetDefault("sheets.timeout", "15s")
	v.SetDefault("slack.timeout", "10s")
	v.SetDefault("scrape.timeout", "20s")
	v.SetDefault("scrape.delay", "2s")
	v.SetDefault("alert.timezone", "Asia/Kolkata")
	v.SetDefault("alert.header_prefix", "Snapshot")
	v.SetDefault("alert.tolerance_minutes", 30)
	v.SetDefault("alert.gap_minutes", 90)
	v.SetDefault("log.level", "info")
}

// Location resolves the configured civil time zone.
func (a AlertConfig) Location() (*time.Location, error) {
	return time.LoadLocation(a.Timezone)
}
