// Package domain defines the core interfaces and types for Socle.
package domain

import (
	"context"
	"time"
)

// Repository defines the interface for data persistence.
// All methods require tenantID for strict multi-tenancy isolation.
type Repository interface {
	// Simulation operations
	SaveSimulation(ctx context.Context, tenantID string, sim *CreditSimulation) error
	GetSimulation(ctx context.Context, tenantID string, simID string) (*CreditSimulation, error)

	// Check configuration operations
	SaveCheckConfig(ctx context.Context, tenantID string, check *CheckConfig) error
	GetCheckConfig(ctx context.Context, tenantID string, checkID string) (*CheckConfig, error)
	ListCheckConfigs(ctx context.Context, tenantID string) ([]*CheckConfig, error)

	// Fiscal settings (per tax year).
	// GetFiscalSettings returns nil, nil when no settings are stored for
	// the year, so callers can fall back to statutory defaults.
	SaveFiscalSettings(ctx context.Context, tenantID string, settings *FiscalSettings) error
	GetFiscalSettings(ctx context.Context, tenantID string, year int) (*FiscalSettings, error)

	// Health check
	Ping(ctx context.Context) error

	// Lifecycle
	Close() error
}

// RepositoryConfig holds configuration for repository initialization.
type RepositoryConfig struct {
	// Driver is the database driver: "sqlite" or "postgres"
	Driver string

	// SQLite specific
	SQLitePath string

	// PostgreSQL specific
	PostgresHost     string
	PostgresPort     int
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string

	// Connection pool settings
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}
