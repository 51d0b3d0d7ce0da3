package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Config holds all configuration options for the farm tracker
type Config struct {
	Database    DatabaseConfig    `mapstructure:"database"`
	Time        TimeConfig        `mapstructure:"time"`
	Clock       ClockConfig       `mapstructure:"clock"`
	Soil        SoilConfig        `mapstructure:"soil"`
	Server      ServerConfig      `mapstructure:"server"`
	Application ApplicationConfig `mapstructure:"application"`
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Dir            string        `mapstructure:"dir"`
	Filename       string        `mapstructure:"filename"`
	QueryTimeout   time.Duration `mapstructure:"query_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	DirPermissions string        `mapstructure:"dir_permissions"` // octal, e.g. "0755"
}

// TimeConfig holds time formatting configuration
type TimeConfig struct {
	DisplayFormat string `mapstructure:"display_format"`
	DateFormat    string `mapstructure:"date_format"`
	Location      string `mapstructure:"location"` // IANA zone; empty keeps the process zone
}

// ClockConfig holds time clock rules
type ClockConfig struct {
	OvertimeThreshold float64 `mapstructure:"overtime_threshold"`
	HoursPrecision    int     `mapstructure:"hours_precision"`
}

// SoilConfig holds soil interpretation settings
type SoilConfig struct {
	RecentMaxAgeDays int    `mapstructure:"recent_max_age_days"`
	ThresholdsFile   string `mapstructure:"thresholds_file"`
}

// ServerConfig holds HTTP API settings
type ServerConfig struct {
	Address         string        `mapstructure:"address"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Timeout     time.Duration `mapstructure:"timeout"`
	Verbose     bool          `mapstructure:"verbose"`
	Environment string        `mapstructure:"environment"`
}

// defaults lists every key with its default value. Keys must be registered
// here for environment overrides to reach them.
func defaults() map[string]interface{} {
	homeDir, _ := os.UserHomeDir()

	return map[string]interface{}{
		"database.dir":             filepath.Join(homeDir, ".farm"),
		"database.filename":        "farm.db",
		"database.query_timeout":   10 * time.Second,
		"database.write_timeout":   5 * time.Second,
		"database.dir_permissions": "0755",

		"time.display_format": "2006-01-02 15:04",
		"time.date_format":    "2006-01-02",
		"time.location":       "",

		"clock.overtime_threshold": 40.0,
		"clock.hours_precision":    2,

		"soil.recent_max_age_days": 1095,
		"soil.thresholds_file":     "",

		"server.address":          ":8080",
		"server.read_timeout":     10 * time.Second,
		"server.write_timeout":    10 * time.Second,
		"server.shutdown_timeout": 5 * time.Second,

		"application.timeout":     60 * time.Second,
		"application.verbose":     false,
		"application.environment": string(Production),
	}
}

// GetDatabasePath returns the full path to the database file
func (c *Config) GetDatabasePath() string {
	return filepath.Join(c.Database.Dir, c.Database.Filename)
}

// DirMode parses the configured database directory permissions.
func (c *Config) DirMode() (os.FileMode, error) {
	p, err := strconv.ParseUint(c.Database.DirPermissions, 8, 32)
	if err != nil {
		return 0, err
	}
	return os.FileMode(p), nil
}

// LoadLocation resolves the configured time zone, defaulting to time.Local.
func (c *Config) LoadLocation() (*time.Location, error) {
	if c.Time.Location == "" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Time.Location)
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	if c.Database.Dir == "" {
		return &ConfigError{Field: "database.dir", Message: "database directory cannot be empty"}
	}
	if c.Database.Filename == "" {
		return &ConfigError{Field: "database.filename", Message: "database filename cannot be empty"}
	}
	if c.Database.QueryTimeout <= 0 {
		return &ConfigError{Field: "database.query_timeout", Message: "query timeout must be positive"}
	}
	if c.Database.WriteTimeout <= 0 {
		return &ConfigError{Field: "database.write_timeout", Message: "write timeout must be positive"}
	}
	if _, err := c.DirMode(); err != nil {
		return &ConfigError{Field: "database.dir_permissions", Message: "permissions must be an octal mode such as 0755"}
	}

	if c.Time.DisplayFormat == "" {
		return &ConfigError{Field: "time.display_format", Message: "display format cannot be empty"}
	}
	if c.Time.DateFormat == "" {
		return &ConfigError{Field: "time.date_format", Message: "date format cannot be empty"}
	}
	if _, err := c.LoadLocation(); err != nil {
		return &ConfigError{Field: "time.location", Message: "unknown time zone " + c.Time.Location}
	}

	if c.Clock.OvertimeThreshold <= 0 {
		return &ConfigError{Field: "clock.overtime_threshold", Message: "overtime threshold must be positive"}
	}
	if c.Clock.HoursPrecision < 0 || c.Clock.HoursPrecision > 6 {
		return &ConfigError{Field: "clock.hours_precision", Message: "hours precision must be between 0 and 6"}
	}

	if c.Soil.RecentMaxAgeDays <= 0 {
		return &ConfigError{Field: "soil.recent_max_age_days", Message: "recent test age must be positive"}
	}

	if c.Server.Address == "" {
		return &ConfigError{Field: "server.address", Message: "server address cannot be empty"}
	}
	if c.Server.ReadTimeout <= 0 || c.Server.WriteTimeout <= 0 {
		return &ConfigError{Field: "server.timeouts", Message: "server timeouts must be positive"}
	}

	if c.Application.Timeout <= 0 {
		return &ConfigError{Field: "application.timeout", Message: "application timeout must be positive"}
	}
	if _, ok := ParseEnvironment(c.Application.Environment); !ok {
		return &ConfigError{Field: "application.environment", Message: "environment must be development, testing or production"}
	}

	return nil
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
