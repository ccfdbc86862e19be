package config

import (
	"fmt"
	"net/url"
	"time"
)

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	Host            string        `env:"POSTGRES_LINK_CHECKER_HOST"     yaml:"host"`
	Port            int           `env:"POSTGRES_LINK_CHECKER_PORT"     yaml:"port"`
	User            string        `env:"POSTGRES_LINK_CHECKER_USER"     yaml:"user"`
	Password        string        `env:"POSTGRES_LINK_CHECKER_PASSWORD" yaml:"password"`
	Database        string        `env:"POSTGRES_LINK_CHECKER_DB"       yaml:"database"`
	SSLMode         string        `env:"POSTGRES_LINK_CHECKER_SSLMODE"  yaml:"sslmode"`
	MaxConnections  int           `yaml:"max_connections"`
	MaxIdleConns    int           `yaml:"max_idle_connections"`
	ConnMaxLifetime time.Duration `yaml:"connection_max_lifetime"`
}

// DSN returns the lib/pq keyword connection string.
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

// MigrateURL returns the postgres:// URL form golang-migrate expects.
func (c *DatabaseConfig) MigrateURL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     c.Database,
		RawQuery: "sslmode=" + c.SSLMode,
	}
	return u.String()
}

// SetDefaults fills unset connection and pool settings.
func (c *DatabaseConfig) SetDefaults() {
	if c.Host == "" {
		c.Host = "localhost"
	}
	if c.Port == 0 {
		c.Port = 5432
	}
	if c.SSLMode == "" {
		c.SSLMode = "disable"
	}
	if c.MaxConnections == 0 {
		c.MaxConnections = 25
	}
	if c.MaxIdleConns == 0 {
		c.MaxIdleConns = 5
	}
	if c.ConnMaxLifetime == 0 {
		c.ConnMaxLifetime = 5 * time.Minute
	}
}

// Validate checks the fields needed to open a connection.
func (c *DatabaseConfig) Validate() error {
	if c.Host == "" {
		return &ValidationError{Field: "database.host", Message: "is required"}
	}
	if err := ValidatePort("database.port", c.Port); err != nil {
		return err
	}
	if c.User == "" {
		return &ValidationError{Field: "database.user", Message: "is required"}
	}
	if c.Database == "" {
		return &ValidationError{Field: "database.database", Message: "is required"}
	}
	return nil
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `env:"LOG_LEVEL"  yaml:"level"`
	Format string `env:"LOG_FORMAT" yaml:"format"`
}

// SetDefaults applies info/json.
func (c *LoggingConfig) SetDefaults() {
	if c.Level == "" {
		c.Level = "info"
	}
	if c.Format == "" {
		c.Format = "json"
	}
}

// Validate checks level and format.
func (c *LoggingConfig) Validate() error {
	if err := ValidateLogLevel(c.Level); err != nil {
		return err
	}
	return ValidateLogFormat(c.Format)
}
