package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment key, so database.dir is read
// from FARM_DATABASE_DIR.
const EnvPrefix = "FARM"

// Loader handles loading configuration from multiple sources
type Loader struct {
	v       *viper.Viper
	envFile string
}

// NewLoader creates a new configuration loader
func NewLoader() *Loader {
	return &Loader{
		v:       viper.New(),
		envFile: ".env",
	}
}

// WithEnvFile sets the dotenv file read before the environment. An empty
// path disables it.
func (l *Loader) WithEnvFile(path string) *Loader {
	l.envFile = path
	return l
}

// Load loads configuration using the cascading strategy:
// 1. Defaults
// 2. Variables from the .env file, when present
// 3. Process environment (FARM_*), which wins over the .env file
// 4. Command line flags (see LoadWithOverrides)
func (l *Loader) Load() (*Config, error) {
	if l.envFile != "" {
		if err := godotenv.Load(l.envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read %s: %w", l.envFile, err)
		}
	}

	for key, value := range defaults() {
		l.v.SetDefault(key, value)
	}
	l.v.SetEnvPrefix(EnvPrefix)
	l.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	l.v.AutomaticEnv()

	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadWithOverrides loads configuration and applies command line overrides
func (l *Loader) LoadWithOverrides(overrides *ConfigOverrides) (*Config, error) {
	cfg, err := l.Load()
	if err != nil {
		return nil, err
	}

	if overrides != nil {
		overrides.apply(cfg)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ConfigOverrides holds command line flag overrides. Nil fields were not set.
type ConfigOverrides struct {
	DBDir      *string
	DBFilename *string

	OvertimeThreshold *float64
	ThresholdsFile    *string

	ServerAddress *string

	Timeout *time.Duration
	Verbose *bool
}

func (o *ConfigOverrides) apply(cfg *Config) {
	if o.DBDir != nil {
		cfg.Database.Dir = *o.DBDir
	}
	if o.DBFilename != nil {
		cfg.Database.Filename = *o.DBFilename
	}
	if o.OvertimeThreshold != nil {
		cfg.Clock.OvertimeThreshold = *o.OvertimeThreshold
	}
	if o.ThresholdsFile != nil {
		cfg.Soil.ThresholdsFile = *o.ThresholdsFile
	}
	if o.ServerAddress != nil {
		cfg.Server.Address = *o.ServerAddress
	}
	if o.Timeout != nil {
		cfg.Application.Timeout = *o.Timeout
	}
	if o.Verbose != nil {
		cfg.Application.Verbose = *o.Verbose
	}
}
