package config

import (
	"fmt"
	"os"

	"farm-tracker/internal/repository/sqlite"
)

// Environment represents the current environment
type Environment string

const (
	Development Environment = "development"
	Testing     Environment = "testing"
	Production  Environment = "production"
)

// ParseEnvironment maps a configured name to an Environment.
func ParseEnvironment(s string) (Environment, bool) {
	switch Environment(s) {
	case Development, Testing, Production:
		return Environment(s), true
	default:
		return Production, false
	}
}

// RepositoryOptions converts the database settings for the store.
func (c *Config) RepositoryOptions() sqlite.Options {
	return sqlite.Options{
		QueryTimeout: c.Database.QueryTimeout,
		WriteTimeout: c.Database.WriteTimeout,
	}
}

// CreateRepository opens the store selected by the configured environment:
// an in-memory database for testing, ./farm.db for development, and the
// configured path otherwise.
func CreateRepository(cfg *Config) (sqlite.Repository, error) {
	env, _ := ParseEnvironment(cfg.Application.Environment)

	switch env {
	case Testing:
		return openRepository(":memory:", cfg)
	case Development:
		return openRepository(cfg.Database.Filename, cfg)
	default:
		mode, err := cfg.DirMode()
		if err != nil {
			return nil, fmt.Errorf("invalid database directory permissions: %w", err)
		}
		if err := os.MkdirAll(cfg.Database.Dir, mode); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
		return openRepository(cfg.GetDatabasePath(), cfg)
	}
}

func openRepository(dbPath string, cfg *Config) (sqlite.Repository, error) {
	repo, err := sqlite.NewWithOptions(dbPath, cfg.RepositoryOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database %s: %w", dbPath, err)
	}
	return repo, nil
}
