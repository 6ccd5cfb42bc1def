package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/openpatrimoine/socle/internal/domain"
)

func TestSQLiteRepository(t *testing.T) {
	// Create temp database file
	tmpFile, err := os.CreateTemp("", "socle-test-*.db")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	tmpPath := tmpFile.Name()
	tmpFile.Close()
	defer os.Remove(tmpPath)

	cfg := domain.RepositoryConfig{
		Driver:     "sqlite",
		SQLitePath: tmpPath,
	}

	repo, err := New(cfg)
	if err != nil {
		t.Fatalf("failed to create repository: %v", err)
	}
	defer repo.Close()

	ctx := context.Background()
	tenantID := "tenant-001"

	t.Run("Ping", func(t *testing.T) {
		if err := repo.Ping(ctx); err != nil {
			t.Errorf("Ping failed: %v", err)
		}
	})

	t.Run("SaveAndGetSimulation", func(t *testing.T) {
		sim := &domain.CreditSimulation{
			ID: "sim-001",
			Loans: []domain.Loan{
				{
					LoanParams: domain.LoanParams{Capital: 200000, TauxAssur: 0.3, AssurMode: domain.InsuranceCRD},
					Taux:       3.0,
					DureeMois:  240,
				},
			},
			Global: []domain.ScheduleRow{
				{Mois: 1, Interet: 500, Amort: 400, Mensu: 900, Crd: 199600, AssuranceDeces: 200000},
			},
			CheckResults: []domain.CheckResult{
				{CheckID: "check-001", Score: 0.1, Outcome: domain.CheckOutcomeOK},
			},
			Advisory: &domain.Advisory{
				ID:     "adv-001",
				Status: domain.AdvisoryOK,
				Score:  0.1,
			},
			CreatedAt: time.Now().UTC(),
		}

		if err := repo.SaveSimulation(ctx, tenantID, sim); err != nil {
			t.Fatalf("SaveSimulation failed: %v", err)
		}

		retrieved, err := repo.GetSimulation(ctx, tenantID, sim.ID)
		if err != nil {
			t.Fatalf("GetSimulation failed: %v", err)
		}

		if retrieved.ID != sim.ID {
			t.Errorf("expected ID %s, got %s", sim.ID, retrieved.ID)
		}
		if retrieved.TenantID != tenantID {
			t.Errorf("expected TenantID %s, got %s", tenantID, retrieved.TenantID)
		}
		if len(retrieved.Loans) != 1 || retrieved.Loans[0].Capital != 200000 {
			t.Errorf("loans not round-tripped: %+v", retrieved.Loans)
		}
		if len(retrieved.Global) != 1 || retrieved.Global[0].AssuranceDeces != 200000 {
			t.Errorf("global schedule not round-tripped: %+v", retrieved.Global)
		}
		if retrieved.Advisory == nil || retrieved.Advisory.Status != domain.AdvisoryOK {
			t.Errorf("advisory not round-tripped: %+v", retrieved.Advisory)
		}
	})

	t.Run("TenantIsolation", func(t *testing.T) {
		otherTenant := "tenant-002"

		// Try to get simulation from different tenant
		_, err := repo.GetSimulation(ctx, otherTenant, "sim-001")
		if err != ErrNotFound {
			t.Errorf("expected ErrNotFound for different tenant, got: %v", err)
		}
	})

	t.Run("RequiresTenantID", func(t *testing.T) {
		sim := &domain.CreditSimulation{ID: "sim-test"}

		err := repo.SaveSimulation(ctx, "", sim)
		if err == nil {
			t.Error("expected error for empty tenantID")
		}

		_, err = repo.GetSimulation(ctx, "", "sim-001")
		if err == nil {
			t.Error("expected error for empty tenantID")
		}
	})

	t.Run("SaveAndGetCheckConfig", func(t *testing.T) {
		one := 1.0
		cfg := &domain.CheckConfig{
			ID:         "check-001",
			Name:       "Couverture deces",
			Version:    "1.0.0",
			Expression: "capital_deces_initial >= capital_emprunte",
			Bands: []domain.CheckBand{
				{LowerLimit: &one, Outcome: domain.CheckOutcomeOK, Reason: "Couvert"},
			},
			Weight:  1.0,
			Enabled: true,
		}

		if err := repo.SaveCheckConfig(ctx, tenantID, cfg); err != nil {
			t.Fatalf("SaveCheckConfig failed: %v", err)
		}

		retrieved, err := repo.GetCheckConfig(ctx, tenantID, cfg.ID)
		if err != nil {
			t.Fatalf("GetCheckConfig failed: %v", err)
		}

		if retrieved.Expression != cfg.Expression {
			t.Errorf("expected expression %q, got %q", cfg.Expression, retrieved.Expression)
		}
		if len(retrieved.Bands) != 1 || retrieved.Bands[0].Outcome != domain.CheckOutcomeOK {
			t.Errorf("bands not round-tripped: %+v", retrieved.Bands)
		}

		configs, err := repo.ListCheckConfigs(ctx, tenantID)
		if err != nil {
			t.Fatalf("ListCheckConfigs failed: %v", err)
		}
		if len(configs) != 1 {
			t.Errorf("expected 1 config, got %d", len(configs))
		}
	})

	t.Run("DisabledConfigNotListed", func(t *testing.T) {
		cfg := &domain.CheckConfig{
			ID:         "check-disabled",
			Name:       "Disabled",
			Version:    "1.0.0",
			Expression: "duree_mois > 0",
			Enabled:    false,
		}

		if err := repo.SaveCheckConfig(ctx, tenantID, cfg); err != nil {
			t.Fatalf("SaveCheckConfig failed: %v", err)
		}

		_, err := repo.GetCheckConfig(ctx, tenantID, cfg.ID)
		if err != ErrNotFound {
			t.Errorf("expected ErrNotFound for disabled config, got: %v", err)
		}
	})

	t.Run("FiscalSettings", func(t *testing.T) {
		// Missing settings resolve to nil, nil
		settings, err := repo.GetFiscalSettings(ctx, tenantID, 2025)
		if err != nil {
			t.Fatalf("GetFiscalSettings failed: %v", err)
		}
		if settings != nil {
			t.Errorf("expected nil for missing settings, got %+v", settings)
		}

		saved := &domain.FiscalSettings{
			Year:      2025,
			Deduction: domain.DeductionConfig{Plancher: 495, Plafond: 14426},
			UpdatedAt: time.Now().UTC(),
		}
		if err := repo.SaveFiscalSettings(ctx, tenantID, saved); err != nil {
			t.Fatalf("SaveFiscalSettings failed: %v", err)
		}

		settings, err = repo.GetFiscalSettings(ctx, tenantID, 2025)
		if err != nil {
			t.Fatalf("GetFiscalSettings failed: %v", err)
		}
		if settings == nil || settings.Deduction.Plafond != 14426 {
			t.Errorf("settings not round-tripped: %+v", settings)
		}

		// Upsert replaces the bounds
		saved.Deduction.Plafond = 15000
		if err := repo.SaveFiscalSettings(ctx, tenantID, saved); err != nil {
			t.Fatalf("SaveFiscalSettings upsert failed: %v", err)
		}
		settings, _ = repo.GetFiscalSettings(ctx, tenantID, 2025)
		if settings.Deduction.Plafond != 15000 {
			t.Errorf("expected upserted plafond 15000, got %.0f", settings.Deduction.Plafond)
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		_, err := repo.GetSimulation(ctx, tenantID, "nonexistent")
		if err != ErrNotFound {
			t.Errorf("expected ErrNotFound, got: %v", err)
		}

		_, err = repo.GetCheckConfig(ctx, tenantID, "nonexistent")
		if err != ErrNotFound {
			t.Errorf("expected ErrNotFound, got: %v", err)
		}
	})
}

func TestUnsupportedDriver(t *testing.T) {
	cfg := domain.RepositoryConfig{
		Driver: "mysql",
	}

	_, err := New(cfg)
	if err == nil {
		t.Error("expected error for unsupported driver")
	}
}

func TestRebind(t *testing.T) {
	repo := &SQLRepository{driver: "postgres"}

	tests := []struct {
		input    string
		expected string
	}{
		{"SELECT * FROM t WHERE id = ?", "SELECT * FROM t WHERE id = $1"},
		{"INSERT INTO t (a, b) VALUES (?, ?)", "INSERT INTO t (a, b) VALUES ($1, $2)"},
		{"SELECT * FROM t", "SELECT * FROM t"},
	}

	for _, tt := range tests {
		result := repo.rebind(tt.input)
		if result != tt.expected {
			t.Errorf("rebind(%q) = %q, want %q", tt.input, result, tt.expected)
		}
	}
}
