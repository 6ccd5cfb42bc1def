package repository

// Schema definitions for the Socle database.
// Compatible with both SQLite and PostgreSQL.

const schemaSimulations = `
CREATE TABLE IF NOT EXISTS simulations (
    id TEXT PRIMARY KEY,
    tenant_id TEXT NOT NULL,
    loans TEXT NOT NULL,
    global_schedule TEXT NOT NULL,
    per_loan_schedules TEXT,
    check_results TEXT,
    advisory TEXT,
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_simulations_tenant ON simulations(tenant_id);
CREATE INDEX IF NOT EXISTS idx_simulations_created ON simulations(tenant_id, created_at);
`

const schemaCheckConfigs = `
CREATE TABLE IF NOT EXISTS check_configs (
    id TEXT NOT NULL,
    tenant_id TEXT NOT NULL,
    name TEXT NOT NULL,
    description TEXT,
    version TEXT NOT NULL,
    expression TEXT NOT NULL,
    bands TEXT NOT NULL,
    weight REAL NOT NULL DEFAULT 1.0,
    enabled INTEGER NOT NULL DEFAULT 1,
    created_at TIMESTAMP NOT NULL,
    updated_at TIMESTAMP NOT NULL,
    PRIMARY KEY (id, tenant_id, version)
);

CREATE INDEX IF NOT EXISTS idx_check_configs_tenant ON check_configs(tenant_id);
CREATE INDEX IF NOT EXISTS idx_check_configs_enabled ON check_configs(tenant_id, enabled);
`

const schemaFiscalSettings = `
CREATE TABLE IF NOT EXISTS fiscal_settings (
    tenant_id TEXT NOT NULL,
    year INTEGER NOT NULL,
    plancher REAL NOT NULL,
    plafond REAL NOT NULL,
    updated_at TIMESTAMP NOT NULL,
    PRIMARY KEY (tenant_id, year)
);
`

// AllSchemas returns all schema statements in order.
func AllSchemas() []string {
	return []string{
		schemaSimulations,
		schemaCheckConfigs,
		schemaFiscalSettings,
	}
}
