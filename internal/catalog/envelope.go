// Package catalog provides the product catalog and the envelope-to-catalog
// mapping used by the fiscal profile resolution.
package catalog

import "github.com/openpatrimoine/socle/internal/domain"

// catalogIDPair holds the per-audience catalog IDs of an envelope.
// An empty pm means the combination has no legal-entity form.
type catalogIDPair struct {
	pp string
	pm string
}

// envelopeCatalogIDs maps the four table-driven envelopes to their catalog
// IDs. PER is intentionally absent from the lookup path: its banking vs.
// insurance sub-variant cuts across the audience axis and is handled by a
// dedicated branch in EnvelopeCatalogID. The PER entry is kept for
// completeness but never consulted.
var envelopeCatalogIDs = map[domain.EnvelopeCode]catalogIDPair{
	domain.EnvelopeAV:   {pp: "assurance_vie", pm: "contrat_capitalisation"},
	domain.EnvelopePER:  {pp: "perin_assurance", pm: "perin_assurance"},
	domain.EnvelopePEA:  {pp: "pea", pm: ""},
	domain.EnvelopeCTO:  {pp: "cto", pm: "cto"},
	domain.EnvelopeSCPI: {pp: "scpi", pm: "scpi"},
}

// EnvelopeCatalogID maps a coarse envelope code to a concrete catalog
// product ID. The second return value is false when the combination is
// unsupported (unknown envelope, or no legal-entity form).
//
// PER ignores the audience entirely: the catalog ID is decided by the
// banking-vs-insurance sub-flag and is identical for pp and pm.
func EnvelopeCatalogID(envelope domain.EnvelopeCode, audience domain.Audience, perBancaire bool) (string, bool) {
	if envelope == domain.EnvelopePER {
		if perBancaire {
			return "perin_bancaire", true
		}
		return "perin_assurance", true
	}

	pair, ok := envelopeCatalogIDs[envelope]
	if !ok {
		return "", false
	}

	id := pair.pp
	if audience == domain.AudiencePM {
		id = pair.pm
	}
	if id == "" {
		return "", false
	}
	return id, true
}
