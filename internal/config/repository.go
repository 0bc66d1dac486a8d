package config

import (
	"fmt"
	"os"

	"worktime/internal/repository/sqlite"
)

// Environment represents the current environment
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvTesting     Environment = "testing"
	EnvProduction  Environment = "production"
)

// DevelopmentDBPath is the database used in development, relative to the working directory
const DevelopmentDBPath = "wt.db"

// Valid reports whether e is a known environment
func (e Environment) Valid() bool {
	switch e {
	case EnvDevelopment, EnvTesting, EnvProduction:
		return true
	default:
		return false
	}
}

// RepositoryFactory creates repository instances based on environment
type RepositoryFactory struct {
	config *Config
}

// NewRepositoryFactory creates a new repository factory for the given configuration
func NewRepositoryFactory(config *Config) *RepositoryFactory {
	return &RepositoryFactory{config: config}
}

// CreateRepository creates a repository instance based on the configured environment
func (rf *RepositoryFactory) CreateRepository() (sqlite.Repository, error) {
	path := rf.DatabasePath()

	repo, err := sqlite.NewWithOptions(path, rf.options())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize %s database: %w", rf.config.Application.Environment, err)
	}

	return repo, nil
}

// DatabasePath returns the database location for the configured environment
func (rf *RepositoryFactory) DatabasePath() string {
	switch rf.config.Application.Environment {
	case EnvTesting:
		return sqlite.MemoryPath
	case EnvDevelopment:
		return DevelopmentDBPath
	default:
		return rf.config.GetDatabasePath()
	}
}

func (rf *RepositoryFactory) options() sqlite.Options {
	return sqlite.Options{
		QueryTimeout:   rf.config.GetQueryTimeout(),
		WriteTimeout:   rf.config.GetWriteTimeout(),
		DirPermissions: os.FileMode(rf.config.Database.DirPermissions),
	}
}

// CreateTestRepository creates an in-memory repository for testing
func CreateTestRepository() (sqlite.Repository, error) {
	repo, err := sqlite.New(sqlite.MemoryPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize test database: %w", err)
	}

	return repo, nil
}
