// Package repository provides data persistence implementations.
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/openpatrimoine/socle/internal/domain"
)

var (
	ErrNotFound     = errors.New("record not found")
	ErrInvalidInput = errors.New("invalid input")
)

// SQLRepository implements domain.Repository using database/sql.
// Works with both SQLite and PostgreSQL drivers.
type SQLRepository struct {
	db     *sql.DB
	driver string
}

// New creates a new repository based on configuration.
func New(cfg domain.RepositoryConfig) (domain.Repository, error) {
	var db *sql.DB
	var err error

	switch cfg.Driver {
	case "sqlite":
		db, err = openSQLite(cfg)
	case "postgres":
		db, err = openPostgres(cfg)
	default:
		return nil, fmt.Errorf("unsupported driver: %s", cfg.Driver)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Configure connection pool
	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	repo := &SQLRepository{
		db:     db,
		driver: cfg.Driver,
	}

	// Run migrations
	if err := repo.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return repo, nil
}

func (r *SQLRepository) migrate() error {
	for _, schema := range AllSchemas() {
		if _, err := r.db.Exec(schema); err != nil {
			return err
		}
	}
	return nil
}

// SaveSimulation stores a credit simulation with tenant isolation.
func (r *SQLRepository) SaveSimulation(ctx context.Context, tenantID string, sim *domain.CreditSimulation) error {
	if tenantID == "" {
		return fmt.Errorf("%w: tenantID is required", ErrInvalidInput)
	}

	loans, _ := json.Marshal(sim.Loans)
	global, _ := json.Marshal(sim.Global)
	perLoan, _ := json.Marshal(sim.PerLoan)
	checkResults, _ := json.Marshal(sim.CheckResults)
	advisory, _ := json.Marshal(sim.Advisory)

	query := `
		INSERT INTO simulations (
			id, tenant_id, loans, global_schedule, per_loan_schedules,
			check_results, advisory, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, r.rebind(query),
		sim.ID, tenantID,
		string(loans), string(global), string(perLoan),
		string(checkResults), string(advisory),
		sim.CreatedAt,
	)
	return err
}

// GetSimulation retrieves a credit simulation by ID with tenant isolation.
func (r *SQLRepository) GetSimulation(ctx context.Context, tenantID string, simID string) (*domain.CreditSimulation, error) {
	if tenantID == "" {
		return nil, fmt.Errorf("%w: tenantID is required", ErrInvalidInput)
	}

	query := `
		SELECT id, tenant_id, loans, global_schedule, per_loan_schedules,
			   check_results, advisory, created_at
		FROM simulations
		WHERE tenant_id = ? AND id = ?
	`

	var sim domain.CreditSimulation
	var loans, global, perLoan, checkResults, advisory string

	err := r.db.QueryRowContext(ctx, r.rebind(query), tenantID, simID).Scan(
		&sim.ID, &sim.TenantID,
		&loans, &global, &perLoan,
		&checkResults, &advisory,
		&sim.CreatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	json.Unmarshal([]byte(loans), &sim.Loans)
	json.Unmarshal([]byte(global), &sim.Global)
	json.Unmarshal([]byte(perLoan), &sim.PerLoan)
	json.Unmarshal([]byte(checkResults), &sim.CheckResults)
	if advisory != "" && advisory != "null" {
		sim.Advisory = &domain.Advisory{}
		json.Unmarshal([]byte(advisory), sim.Advisory)
	}

	return &sim, nil
}

// SaveCheckConfig stores a check configuration with tenant isolation.
func (r *SQLRepository) SaveCheckConfig(ctx context.Context, tenantID string, check *domain.CheckConfig) error {
	if tenantID == "" {
		return fmt.Errorf("%w: tenantID is required", ErrInvalidInput)
	}

	bands, _ := json.Marshal(check.Bands)

	enabled := 0
	if check.Enabled {
		enabled = 1
	}

	now := time.Now().UTC()

	query := `
		INSERT INTO check_configs (
			id, tenant_id, name, description, version, expression, bands, weight, enabled, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id, tenant_id, version) DO UPDATE SET
			name = excluded.name,
			description = excluded.description,
			expression = excluded.expression,
			bands = excluded.bands,
			weight = excluded.weight,
			enabled = excluded.enabled,
			updated_at = excluded.updated_at
	`

	_, err := r.db.ExecContext(ctx, r.rebind(query),
		check.ID, tenantID, check.Name, check.Description,
		check.Version, check.Expression, string(bands), check.Weight, enabled,
		now, now,
	)
	return err
}

// GetCheckConfig retrieves a check configuration with tenant isolation.
func (r *SQLRepository) GetCheckConfig(ctx context.Context, tenantID string, checkID string) (*domain.CheckConfig, error) {
	if tenantID == "" {
		return nil, fmt.Errorf("%w: tenantID is required", ErrInvalidInput)
	}

	query := `
		SELECT id, tenant_id, name, description, version, expression, bands, weight, enabled
		FROM check_configs
		WHERE tenant_id = ? AND id = ? AND enabled = 1
		ORDER BY version DESC
		LIMIT 1
	`

	var cfg domain.CheckConfig
	var bands string
	var enabled int

	err := r.db.QueryRowContext(ctx, r.rebind(query), tenantID, checkID).Scan(
		&cfg.ID, &cfg.TenantID, &cfg.Name, &cfg.Description,
		&cfg.Version, &cfg.Expression, &bands, &cfg.Weight, &enabled,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	cfg.Enabled = enabled == 1
	json.Unmarshal([]byte(bands), &cfg.Bands)

	return &cfg, nil
}

// ListCheckConfigs retrieves all active check configurations for a tenant.
func (r *SQLRepository) ListCheckConfigs(ctx context.Context, tenantID string) ([]*domain.CheckConfig, error) {
	if tenantID == "" {
		return nil, fmt.Errorf("%w: tenantID is required", ErrInvalidInput)
	}

	query := `
		SELECT id, tenant_id, name, description, version, expression, bands, weight, enabled
		FROM check_configs
		WHERE tenant_id = ? AND enabled = 1
		ORDER BY name
	`

	rows, err := r.db.QueryContext(ctx, r.rebind(query), tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var configs []*domain.CheckConfig
	for rows.Next() {
		var cfg domain.CheckConfig
		var bands string
		var enabled int

		if err := rows.Scan(
			&cfg.ID, &cfg.TenantID, &cfg.Name, &cfg.Description,
			&cfg.Version, &cfg.Expression, &bands, &cfg.Weight, &enabled,
		); err != nil {
			return nil, err
		}

		cfg.Enabled = enabled == 1
		json.Unmarshal([]byte(bands), &cfg.Bands)
		configs = append(configs, &cfg)
	}

	return configs, rows.Err()
}

// SaveFiscalSettings stores the fiscal settings of a tax year with tenant isolation.
func (r *SQLRepository) SaveFiscalSettings(ctx context.Context, tenantID string, settings *domain.FiscalSettings) error {
	if tenantID == "" {
		return fmt.Errorf("%w: tenantID is required", ErrInvalidInput)
	}
	if settings == nil || settings.Year <= 0 {
		return fmt.Errorf("%w: settings with a positive year are required", ErrInvalidInput)
	}

	query := `
		INSERT INTO fiscal_settings (tenant_id, year, plancher, plafond, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(tenant_id, year) DO UPDATE SET
			plancher = excluded.plancher,
			plafond = excluded.plafond,
			updated_at = excluded.updated_at
	`

	_, err := r.db.ExecContext(ctx, r.rebind(query),
		tenantID, settings.Year,
		settings.Deduction.Plancher, settings.Deduction.Plafond,
		settings.UpdatedAt,
	)
	return err
}

// GetFiscalSettings retrieves the fiscal settings of a tax year with tenant
// isolation. Returns nil, nil when the tenant has no stored settings for
// the year, so callers can fall back to defaults.
func (r *SQLRepository) GetFiscalSettings(ctx context.Context, tenantID string, year int) (*domain.FiscalSettings, error) {
	if tenantID == "" {
		return nil, fmt.Errorf("%w: tenantID is required", ErrInvalidInput)
	}

	query := `
		SELECT year, plancher, plafond, updated_at
		FROM fiscal_settings
		WHERE tenant_id = ? AND year = ?
	`

	var settings domain.FiscalSettings

	err := r.db.QueryRowContext(ctx, r.rebind(query), tenantID, year).Scan(
		&settings.Year,
		&settings.Deduction.Plancher, &settings.Deduction.Plafond,
		&settings.UpdatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &settings, nil
}

// Ping checks database connectivity.
func (r *SQLRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// Close closes the database connection.
func (r *SQLRepository) Close() error {
	return r.db.Close()
}

// rebind converts ? placeholders to $1, $2, etc. for PostgreSQL.
func (r *SQLRepository) rebind(query string) string {
	if r.driver != "postgres" {
		return query
	}

	// Convert ? to $1, $2, etc.
	var result []byte
	n := 1
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			result = append(result, '$')
			result = append(result, fmt.Sprintf("%d", n)...)
			n++
		} else {
			result = append(result, query[i])
		}
	}
	return string(result)
}
