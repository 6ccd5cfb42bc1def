package domain

// Audience distinguishes natural persons from legal entities.
// It selects both the catalog product variant and the applicable rule set.
type Audience string

const (
	// AudiencePP is a natural person (personne physique).
	AudiencePP Audience = "pp"

	// AudiencePM is a legal entity (personne morale).
	AudiencePM Audience = "pm"
)

// RuleBlock is a titled list of fiscal disclosure bullet points.
// Tags are internal classification markers and are never user-facing.
type RuleBlock struct {
	Title   string   `json:"title"`
	Bullets []string `json:"bullets"`
	Tags    []string `json:"tags,omitempty"`
}

// ProductRules holds the fiscal treatment of a product across its three
// lifecycle phases: funding (constitution), exit (sortie) and
// death/transmission (deces). All three slices are always non-nil,
// possibly empty.
type ProductRules struct {
	Constitution []RuleBlock `json:"constitution"`
	Sortie       []RuleBlock `json:"sortie"`
	Deces        []RuleBlock `json:"deces"`
}

// IsEmpty reports whether no phase carries any rule block.
func (r ProductRules) IsEmpty() bool {
	return len(r.Constitution) == 0 && len(r.Sortie) == 0 && len(r.Deces) == 0
}

// FiscalProfile is the display-ready record composed from the envelope
// mapping and the rule resolution. It is an immutable snapshot; HasRules
// is derived at construction from the three phase arrays.
type FiscalProfile struct {
	CatalogID string       `json:"catalogId"`
	Audience  Audience     `json:"audience"`
	Rules     ProductRules `json:"rules"`
	HasRules  bool         `json:"hasRules"`
}
