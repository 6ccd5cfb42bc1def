// Package profile composes envelope mapping and rule resolution into
// display-ready fiscal profiles.
package profile

import (
	"github.com/openpatrimoine/socle/internal/catalog"
	"github.com/openpatrimoine/socle/internal/domain"
	"github.com/openpatrimoine/socle/internal/rules"
)

// BuildFiscalProfile wraps resolved rules into a profile, deriving HasRules
// from the three phase-array lengths.
func BuildFiscalProfile(catalogID string, audience domain.Audience, r domain.ProductRules) domain.FiscalProfile {
	return domain.FiscalProfile{
		CatalogID: catalogID,
		Audience:  audience,
		Rules:     r,
		HasRules:  !r.IsEmpty(),
	}
}

// EmptyFiscalProfile returns a profile with all three phase arrays empty
// and HasRules false. Used when the envelope mapping failed or the catalog
// product could not be found.
func EmptyFiscalProfile(catalogID string, audience domain.Audience) domain.FiscalProfile {
	return domain.FiscalProfile{
		CatalogID: catalogID,
		Audience:  audience,
		Rules: domain.ProductRules{
			Constitution: []domain.RuleBlock{},
			Sortie:       []domain.RuleBlock{},
			Deces:        []domain.RuleBlock{},
		},
		HasRules: false,
	}
}

// Service resolves fiscal profiles from envelope inputs.
type Service struct {
	catalog  domain.Catalog
	resolver *rules.Resolver
}

// NewService creates a profile resolution service.
func NewService(cat domain.Catalog, resolver *rules.Resolver) *Service {
	return &Service{catalog: cat, resolver: resolver}
}

// ResolveEnvelope runs the full composition: envelope to catalog ID, catalog
// lookup, rule resolution, profile construction.
//
// When the envelope mapping fails, the returned profile carries the envelope
// code itself as a degraded catalog ID. That value is not a real catalog ID;
// downstream display relies on it, so it must not be replaced by anything
// else.
func (s *Service) ResolveEnvelope(envelope domain.EnvelopeCode, audience domain.Audience, perBancaire bool) domain.FiscalProfile {
	catalogID, ok := catalog.EnvelopeCatalogID(envelope, audience, perBancaire)
	if !ok {
		return EmptyFiscalProfile(string(envelope), audience)
	}

	product, found := s.catalog.Product(catalogID)
	if !found {
		return EmptyFiscalProfile(catalogID, audience)
	}

	r := s.resolver.GetRulesForProduct(product, audience)
	return BuildFiscalProfile(catalogID, audience, r)
}
