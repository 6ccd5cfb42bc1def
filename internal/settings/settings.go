// Package settings provides per-tenant fiscal settings lookup.
package settings

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/openpatrimoine/socle/internal/domain"
)

// cacheTTL bounds how stale a cached settings entry can get after an
// update through the API.
const cacheTTL = 5 * time.Minute

// Service loads the fiscal settings in force for a tenant and tax year.
type Service struct {
	repo  domain.Repository
	cache domain.Cache
}

// NewService creates a new settings service.
func NewService(repo domain.Repository, cache domain.Cache) *Service {
	return &Service{
		repo:  repo,
		cache: cache,
	}
}

// DefaultSettings returns the statutory deduction bounds shipped as
// defaults for a tax year. Tenants override them through the API.
func DefaultSettings(year int) *domain.FiscalSettings {
	return &domain.FiscalSettings{
		Year: year,
		Deduction: domain.DeductionConfig{
			Plancher: 495,
			Plafond:  14426,
		},
		UpdatedAt: time.Now().UTC(),
	}
}

func settingsCacheKey(year int) string {
	return fmt.Sprintf("settings:%d", year)
}

// Get returns the fiscal settings for a tenant and year, consulting the
// cache first and falling back to the repository. A tenant with no stored
// settings gets the statutory defaults.
func (s *Service) Get(ctx context.Context, tenantID string, year int) (*domain.FiscalSettings, error) {
	if tenantID == "" {
		return nil, fmt.Errorf("tenantID is required")
	}
	if year <= 0 {
		return nil, fmt.Errorf("year must be positive")
	}

	key := settingsCacheKey(year)

	if s.cache != nil {
		if data, err := s.cache.Get(ctx, tenantID, key); err == nil && data != nil {
			var settings domain.FiscalSettings
			if err := json.Unmarshal(data, &settings); err == nil {
				return &settings, nil
			}
		}
	}

	if s.repo == nil {
		return nil, fmt.Errorf("no data source available")
	}

	settings, err := s.repo.GetFiscalSettings(ctx, tenantID, year)
	if err != nil {
		return nil, fmt.Errorf("failed to load fiscal settings: %w", err)
	}
	if settings == nil {
		settings = DefaultSettings(year)
	}

	if s.cache != nil {
		if data, err := json.Marshal(settings); err == nil {
			_ = s.cache.Set(ctx, tenantID, key, data, cacheTTL)
		}
	}

	return settings, nil
}

// Save persists settings for a tenant and invalidates the cache entry.
func (s *Service) Save(ctx context.Context, tenantID string, settings *domain.FiscalSettings) error {
	if tenantID == "" {
		return fmt.Errorf("tenantID is required")
	}
	if settings == nil || settings.Year <= 0 {
		return fmt.Errorf("settings with a positive year are required")
	}

	settings.UpdatedAt = time.Now().UTC()

	if err := s.repo.SaveFiscalSettings(ctx, tenantID, settings); err != nil {
		return fmt.Errorf("failed to save fiscal settings: %w", err)
	}

	if s.cache != nil {
		_ = s.cache.Delete(ctx, tenantID, settingsCacheKey(settings.Year))
	}

	return nil
}

// GetSettingsGetter returns a SettingsGetter function for the check engine.
func (s *Service) GetSettingsGetter() func(ctx context.Context, tenantID string, year int) (*domain.FiscalSettings, error) {
	return s.Get
}
