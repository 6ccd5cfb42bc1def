package settings

import (
	"context"
	"os"
	"testing"

	"github.com/openpatrimoine/socle/internal/cache"
	"github.com/openpatrimoine/socle/internal/domain"
	"github.com/openpatrimoine/socle/internal/repository"
)

func newTestService(t *testing.T) *Service {
	t.Helper()

	tmpFile, err := os.CreateTemp("", "settings-test-*.db")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	tmpPath := tmpFile.Name()
	tmpFile.Close()
	t.Cleanup(func() { os.Remove(tmpPath) })

	repo, err := repository.New(domain.RepositoryConfig{
		Driver:     "sqlite",
		SQLitePath: tmpPath,
	})
	if err != nil {
		t.Fatalf("failed to create repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })

	lruCache := cache.NewLRUCache(100)
	t.Cleanup(func() { lruCache.Close() })

	return NewService(repo, lruCache)
}

func TestSettingsService(t *testing.T) {
	svc := newTestService(t)

	ctx := context.Background()
	tenantID := "tenant-001"

	t.Run("DefaultsWhenUnset", func(t *testing.T) {
		settings, err := svc.Get(ctx, tenantID, 2025)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if settings.Year != 2025 {
			t.Errorf("expected year 2025, got %d", settings.Year)
		}
		if settings.Deduction.Plancher != 495 || settings.Deduction.Plafond != 14426 {
			t.Errorf("expected statutory defaults, got %+v", settings.Deduction)
		}
	})

	t.Run("SaveAndGet", func(t *testing.T) {
		saved := &domain.FiscalSettings{
			Year:      2026,
			Deduction: domain.DeductionConfig{Plancher: 500, Plafond: 15000},
		}
		if err := svc.Save(ctx, tenantID, saved); err != nil {
			t.Fatalf("Save failed: %v", err)
		}

		settings, err := svc.Get(ctx, tenantID, 2026)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if settings.Deduction.Plafond != 15000 {
			t.Errorf("expected plafond 15000, got %.0f", settings.Deduction.Plafond)
		}
		if settings.UpdatedAt.IsZero() {
			t.Error("Save must stamp UpdatedAt")
		}
	})

	t.Run("SaveInvalidatesCache", func(t *testing.T) {
		// Warm the cache
		if _, err := svc.Get(ctx, tenantID, 2026); err != nil {
			t.Fatalf("Get failed: %v", err)
		}

		updated := &domain.FiscalSettings{
			Year:      2026,
			Deduction: domain.DeductionConfig{Plancher: 510, Plafond: 15500},
		}
		if err := svc.Save(ctx, tenantID, updated); err != nil {
			t.Fatalf("Save failed: %v", err)
		}

		settings, err := svc.Get(ctx, tenantID, 2026)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if settings.Deduction.Plafond != 15500 {
			t.Errorf("stale cache: expected plafond 15500, got %.0f", settings.Deduction.Plafond)
		}
	})

	t.Run("TenantIsolation", func(t *testing.T) {
		settings, err := svc.Get(ctx, "other-tenant", 2026)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		// Other tenant never saved anything, so it gets defaults.
		if settings.Deduction.Plafond != 14426 {
			t.Errorf("expected defaults for other tenant, got %+v", settings.Deduction)
		}
	})

	t.Run("RequiresTenantID", func(t *testing.T) {
		if _, err := svc.Get(ctx, "", 2025); err == nil {
			t.Error("expected error for empty tenantID")
		}
		if err := svc.Save(ctx, "", DefaultSettings(2025)); err == nil {
			t.Error("expected error for empty tenantID")
		}
	})

	t.Run("RequiresPositiveYear", func(t *testing.T) {
		if _, err := svc.Get(ctx, tenantID, 0); err == nil {
			t.Error("expected error for year 0")
		}
	})

	t.Run("SettingsGetter", func(t *testing.T) {
		getter := svc.GetSettingsGetter()
		if getter == nil {
			t.Fatal("GetSettingsGetter returned nil")
		}

		settings, err := getter(ctx, tenantID, 2026)
		if err != nil {
			t.Fatalf("SettingsGetter failed: %v", err)
		}
		if settings.Deduction.Plafond != 15500 {
			t.Errorf("expected plafond 15500, got %.0f", settings.Deduction.Plafond)
		}
	})
}

func TestNoDataSource(t *testing.T) {
	svc := &Service{} // No repo or cache

	ctx := context.Background()
	_, err := svc.Get(ctx, "tenant", 2025)
	if err == nil {
		t.Error("expected error with no data source")
	}
}
