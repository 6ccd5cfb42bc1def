// Package rules provides the fiscal rule block library and its resolver.
//
// Rule content is static reference data keyed by catalog product ID and
// audience, grouped in per-family tables. Resolution walks a fixed ordered
// chain of family resolvers; the first match wins. The chain order encodes
// domain precedence for the rare cases where product-ID namespaces could
// overlap.
package rules

import (
	"github.com/openpatrimoine/socle/internal/domain"
)

// resolverFunc is the uniform signature of a per-family resolver.
// A nil return means "no match for this family".
type resolverFunc func(productID string, audience domain.Audience) *domain.ProductRules

// Resolver resolves fiscal rules for a catalog product. GetRules is total:
// it always returns a well-formed ProductRules, falling back to the
// placeholder when no family matches.
type Resolver struct {
	chain []resolverFunc
}

// NewResolver creates a resolver with the fixed family precedence order.
func NewResolver() *Resolver {
	return &Resolver{
		chain: []resolverFunc{
			assuranceEpargneTable.resolve,
			epargneBancaireTable.resolve,
			retraiteTable.resolve,
			immobilierTable.resolve,
			prevoyanceTable.resolve,
			valeursMobilieresTable.resolve,
			autresTable.resolve,
			fiscauxImmobilierTable.resolve,
		},
	}
}

// placeholderTag marks the fallback rules internally. It is consulted only
// by HasSocleRules and never surfaced to callers as meaningful content.
const placeholderTag = "placeholder"

// placeholder is the singleton fallback returned when no family matches.
var placeholder = domain.ProductRules{
	Constitution: []domain.RuleBlock{{
		Title:   "Fiscalité en cours de constitution",
		Bullets: []string{"Les règles fiscales détaillées de ce produit ne sont pas encore disponibles. Rapprochez-vous de votre conseiller."},
		Tags:    []string{placeholderTag},
	}},
	Sortie: []domain.RuleBlock{{
		Title:   "Fiscalité à la sortie",
		Bullets: []string{"Les règles fiscales détaillées de ce produit ne sont pas encore disponibles. Rapprochez-vous de votre conseiller."},
		Tags:    []string{placeholderTag},
	}},
	Deces: []domain.RuleBlock{{
		Title:   "Fiscalité en cas de décès",
		Bullets: []string{"Les règles fiscales détaillées de ce produit ne sont pas encore disponibles. Rapprochez-vous de votre conseiller."},
		Tags:    []string{placeholderTag},
	}},
}

// GetRules resolves the fiscal rules for a product and audience.
// It never returns empty-handed: when no family resolver matches, the
// placeholder rules are returned.
func (r *Resolver) GetRules(productID string, audience domain.Audience) domain.ProductRules {
	if res := r.resolve(productID, audience); res != nil {
		return *res
	}
	return placeholder
}

// GetRulesForProduct resolves by a catalog product record's ID.
func (r *Resolver) GetRulesForProduct(product *domain.Product, audience domain.Audience) domain.ProductRules {
	if product == nil {
		return placeholder
	}
	return r.GetRules(product.ID, audience)
}

// HasSocleRules reports whether some family produces real (non-placeholder)
// rules for either audience. It tries pp first and falls back to pm only
// when the pp attempt yields nothing at all; used to gate UI affordances
// without the full audience context.
func (r *Resolver) HasSocleRules(productID string) bool {
	res := r.resolve(productID, domain.AudiencePP)
	if res == nil {
		res = r.resolve(productID, domain.AudiencePM)
	}
	return res != nil && !isPlaceholder(*res)
}

// resolve walks the chain, first match wins. Nil when no family matches.
func (r *Resolver) resolve(productID string, audience domain.Audience) *domain.ProductRules {
	for _, fn := range r.chain {
		if res := fn(productID, audience); res != nil {
			return res
		}
	}
	return nil
}

func isPlaceholder(r domain.ProductRules) bool {
	for _, block := range r.Constitution {
		for _, tag := range block.Tags {
			if tag == placeholderTag {
				return true
			}
		}
	}
	return false
}

// audienceRules pairs the per-audience variants of a product's rules.
// A nil member means the product has no rules for that audience.
type audienceRules struct {
	pp *domain.ProductRules
	pm *domain.ProductRules
}

// familyTable maps catalog product IDs to their per-audience rules.
type familyTable map[string]audienceRules

func (t familyTable) resolve(productID string, audience domain.Audience) *domain.ProductRules {
	entry, ok := t[productID]
	if !ok {
		return nil
	}
	if audience == domain.AudiencePM {
		return entry.pm
	}
	return entry.pp
}

// shared builds an audienceRules entry with identical content for both
// audiences.
func shared(r *domain.ProductRules) audienceRules {
	return audienceRules{pp: r, pm: r}
}

// ppOnly builds an audienceRules entry with no legal-entity variant.
func ppOnly(r *domain.ProductRules) audienceRules {
	return audienceRules{pp: r}
}
