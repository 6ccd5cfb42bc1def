package catalog

import "github.com/openpatrimoine/socle/internal/domain"

// Static implements domain.Catalog with the built-in product table.
// The table is constant reference data loaded once at process start.
type Static struct {
	products map[string]domain.Product
}

// NewStatic creates the built-in catalog.
func NewStatic() *Static {
	return &Static{products: builtinProducts()}
}

// Product looks up a catalog product by ID.
func (c *Static) Product(catalogID string) (*domain.Product, bool) {
	p, ok := c.products[catalogID]
	if !ok {
		return nil, false
	}
	return &p, true
}

// List returns all catalog products.
func (c *Static) List() []domain.Product {
	out := make([]domain.Product, 0, len(c.products))
	for _, p := range c.products {
		out = append(out, p)
	}
	return out
}

func builtinProducts() map[string]domain.Product {
	list := []domain.Product{
		{ID: "assurance_vie", Family: "assurance-epargne", Label: "Assurance vie", PMEligible: false},
		{ID: "contrat_capitalisation", Family: "assurance-epargne", Label: "Contrat de capitalisation", PMEligible: true},
		{ID: "livret_a", Family: "epargne-bancaire", Label: "Livret A", PMEligible: false},
		{ID: "ldds", Family: "epargne-bancaire", Label: "Livret de développement durable et solidaire", PMEligible: false},
		{ID: "pel", Family: "epargne-bancaire", Label: "Plan d'épargne logement", PMEligible: false},
		{ID: "compte_a_terme", Family: "epargne-bancaire", Label: "Compte à terme", PMEligible: true},
		{ID: "perin_assurance", Family: "retraite", Label: "PER individuel assurantiel", PMEligible: true},
		{ID: "perin_bancaire", Family: "retraite", Label: "PER individuel bancaire", PMEligible: true},
		{ID: "madelin", Family: "retraite", Label: "Contrat Madelin", PMEligible: false},
		{ID: "scpi", Family: "immobilier", Label: "Parts de SCPI", PMEligible: true},
		{ID: "opci", Family: "immobilier", Label: "Parts d'OPCI", PMEligible: true},
		{ID: "prevoyance_deces", Family: "prevoyance", Label: "Prévoyance décès", PMEligible: false},
		{ID: "garantie_emprunteur", Family: "prevoyance", Label: "Assurance emprunteur", PMEligible: false},
		{ID: "pea", Family: "valeurs-mobilieres", Label: "Plan d'épargne en actions", PMEligible: false},
		{ID: "pea_pme", Family: "valeurs-mobilieres", Label: "PEA-PME", PMEligible: false},
		{ID: "cto", Family: "valeurs-mobilieres", Label: "Compte-titres ordinaire", PMEligible: true},
		{ID: "fcpi_fip", Family: "autres", Label: "FCPI / FIP", PMEligible: false},
		{ID: "girardin", Family: "autres", Label: "Girardin industriel", PMEligible: false},
		{ID: "pinel", Family: "fiscaux-immobilier", Label: "Pinel", PMEligible: false},
		{ID: "deficit_foncier", Family: "fiscaux-immobilier", Label: "Déficit foncier", PMEligible: false},
		{ID: "malraux", Family: "fiscaux-immobilier", Label: "Malraux", PMEligible: false},
	}

	m := make(map[string]domain.Product, len(list))
	for _, p := range list {
		m[p.ID] = p
	}
	return m
}
