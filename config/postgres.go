package config

import (
	"fmt"
	"time"
)

// PostgresConfig defines the configuration for connecting to a PostgreSQL database.
type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
	TimeZone string `mapstructure:"timezone"`

	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

func (cfg *PostgresConfig) DSN(env string) string {
	if env == "prod" {
		dbHost := getParameterStoreValue("BONDWATCH_DB_HOST", true)
		dbUser := getParameterStoreValue("BONDWATCH_DB_USER", true)
		dbPassword := getParameterStoreValue("BONDWATCH_DB_PASSWORD", true)

		dsn := fmt.Sprintf(
			"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			dbHost, cfg.Port, dbUser, dbPassword, cfg.DBName, cfg.SSLMode,
		)

		if cfg.TimeZone != "" {
			dsn += fmt.Sprintf(" TimeZone=%s", cfg.TimeZone)
		}

		return dsn
	}

	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode,
	)

	if cfg.TimeZone != "" {
		dsn += fmt.Sprintf(" TimeZone=%s", cfg.TimeZone)
	}

	return dsn
}
