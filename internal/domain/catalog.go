package domain

// EnvelopeCode is a coarse product wrapper type at the calculation-engine
// layer, distinct from fine-grained catalog product IDs.
type EnvelopeCode string

const (
	// EnvelopeAV is a life-insurance style wrapper (assurance vie).
	EnvelopeAV EnvelopeCode = "AV"

	// EnvelopePER is a retirement savings plan (plan d'épargne retraite).
	EnvelopePER EnvelopeCode = "PER"

	// EnvelopePEA is an equity savings plan (plan d'épargne en actions).
	EnvelopePEA EnvelopeCode = "PEA"

	// EnvelopeCTO is an ordinary securities account (compte-titres).
	EnvelopeCTO EnvelopeCode = "CTO"

	// EnvelopeSCPI is real-estate investment trust units.
	EnvelopeSCPI EnvelopeCode = "SCPI"
)

// Product is a catalog product record looked up by catalog ID.
type Product struct {
	ID     string `json:"id"`
	Family string `json:"family"`
	Label  string `json:"label"`

	// PMEligible reports whether the product has a legal-entity form.
	PMEligible bool `json:"pmEligible"`
}

// Catalog is the synchronous product lookup collaborator.
// A false second return value means "unknown product".
type Catalog interface {
	Product(catalogID string) (*Product, bool)
}
